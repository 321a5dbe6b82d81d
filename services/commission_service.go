package services

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"servicepro-server/apperr"
	"servicepro-server/models"
)

// CommissionService exposes the admin view of the commission ledger.
// Rows are created by BookingService at booking time; this service only
// reads them and flips the paid flag.
type CommissionService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewCommissionService(db *gorm.DB, logger *zap.Logger) *CommissionService {
	return &CommissionService{db: db, logger: logger}
}

// List returns the full ledger. Admin only.
func (s *CommissionService) List(actor Actor) ([]models.Commission, error) {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	var commissions []models.Commission
	if err := s.db.Preload("Booking").Preload("Handyman").
		Order("id").Find(&commissions).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	return commissions, nil
}

// MarkPaid flips a commission to paid. Idempotent; there is no reversal.
// Admin only.
func (s *CommissionService) MarkPaid(actor Actor, id uint) error {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return err
	}
	var commission models.Commission
	if err := s.db.First(&commission, id).Error; err != nil {
		return wrapDBError(err, "commission")
	}
	if commission.IsPaid {
		return nil
	}
	if err := s.db.Model(&commission).Update("is_paid", true).Error; err != nil {
		return apperr.Persistence(err)
	}
	return nil
}

// UnpaidTotals sums commission and earnings across unpaid rows only.
// Admin only.
func (s *CommissionService) UnpaidTotals(actor Actor) (commission, earnings float64, err error) {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return 0, 0, err
	}
	var totals struct {
		Commission float64
		Earnings   float64
	}
	err = s.db.Model(&models.Commission{}).
		Where("is_paid = ?", false).
		Select("COALESCE(SUM(commission_amount),0) AS commission, COALESCE(SUM(handyman_earnings),0) AS earnings").
		Scan(&totals).Error
	if err != nil {
		return 0, 0, apperr.Persistence(err)
	}
	return totals.Commission, totals.Earnings, nil
}
