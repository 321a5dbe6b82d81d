package services

import (
	"gorm.io/gorm"

	"servicepro-server/apperr"
	"servicepro-server/models"
)

// DashboardService assembles the role-gated summary blocks served by both
// surfaces.
type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

type UserDashboard struct {
	User     *models.User     `json:"user"`
	Bookings []models.Booking `json:"bookings"`
}

// ForUser returns the customer's bookings with service and handyman detail.
func (s *DashboardService) ForUser(actor Actor) (*UserDashboard, error) {
	if err := requireRole(actor, models.RoleCustomer); err != nil {
		return nil, err
	}
	var user models.User
	if err := s.db.First(&user, actor.ID).Error; err != nil {
		return nil, wrapDBError(err, "user")
	}
	var bookings []models.Booking
	if err := s.db.Where("user_id = ?", actor.ID).
		Preload("Service").Preload("Handyman").
		Order("id").Find(&bookings).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	return &UserDashboard{User: &user, Bookings: bookings}, nil
}

type HandymanDashboard struct {
	Handyman *models.User     `json:"handyman"`
	Bookings []models.Booking `json:"bookings"`
	Services []models.Service `json:"services"`
}

// ForHandyman returns the handyman's assigned bookings and own services.
func (s *DashboardService) ForHandyman(actor Actor) (*HandymanDashboard, error) {
	if err := requireRole(actor, models.RoleHandyman); err != nil {
		return nil, err
	}
	var handyman models.User
	if err := s.db.First(&handyman, actor.ID).Error; err != nil {
		return nil, wrapDBError(err, "user")
	}
	var bookings []models.Booking
	if err := s.db.Where("handyman_id = ?", actor.ID).
		Preload("Service").Preload("User").
		Order("id").Find(&bookings).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	var services []models.Service
	if err := s.db.Where("handyman_id = ?", actor.ID).
		Order("id").Find(&services).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	return &HandymanDashboard{Handyman: &handyman, Bookings: bookings, Services: services}, nil
}

// AdminStats mirrors the admin dashboard summary block.
type AdminStats struct {
	TotalUsers             int64   `json:"total_users"`
	TotalServices          int64   `json:"total_services"`
	TotalBookings          int64   `json:"total_bookings"`
	PendingBookings        int64   `json:"pending_bookings"`
	PendingHandymen        int64   `json:"pending_handymen"`
	PendingServicesCount   int64   `json:"pending_services_count"`
	TotalServiceGroups     int64   `json:"total_service_groups"`
	TotalEarnings          float64 `json:"total_earnings"`
	InProgressJobs         int64   `json:"in_progress_jobs"`
	CompletedJobs          int64   `json:"completed_jobs"`
	ApprovedHandymenCount  int64   `json:"approved_handymen_count"`
	TotalCommissionAmount  float64 `json:"total_commission_amount"`
	TotalHandymanEarnings  float64 `json:"total_handyman_earnings"`
}

// ForAdmin computes platform-wide counters and the unpaid commission sums.
func (s *DashboardService) ForAdmin(actor Actor) (*AdminStats, error) {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}

	stats := &AdminStats{}
	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&stats.TotalUsers, s.db.Model(&models.User{})},
		{&stats.TotalServices, s.db.Model(&models.Service{}).Where("is_approved = ?", true)},
		{&stats.TotalBookings, s.db.Model(&models.Booking{})},
		{&stats.PendingBookings, s.db.Model(&models.Booking{}).Where("status = ?", models.BookingStatusPending)},
		{&stats.PendingHandymen, s.db.Model(&models.User{}).Where("role = ? AND is_approved = ?", models.RoleHandyman, false)},
		{&stats.PendingServicesCount, s.db.Model(&models.Service{}).Where("is_approved = ?", false)},
		{&stats.TotalServiceGroups, s.db.Model(&models.ServiceGroup{}).Where("is_active = ?", true)},
		{&stats.ApprovedHandymenCount, s.db.Model(&models.User{}).Where("role = ? AND is_approved = ?", models.RoleHandyman, true)},
		{&stats.InProgressJobs, s.db.Model(&models.Booking{}).Where("status = ? AND handyman_id IS NOT NULL", models.BookingStatusInProgress)},
		{&stats.CompletedJobs, s.db.Model(&models.Booking{}).Where("status = ? AND handyman_id IS NOT NULL", models.BookingStatusCompleted)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dst).Error; err != nil {
			return nil, apperr.Persistence(err)
		}
	}

	if err := s.db.Model(&models.Booking{}).
		Where("status = ? AND handyman_id IS NOT NULL", models.BookingStatusCompleted).
		Select("COALESCE(SUM(total_price),0)").Scan(&stats.TotalEarnings).Error; err != nil {
		return nil, apperr.Persistence(err)
	}

	var totals struct {
		Commission float64
		Earnings   float64
	}
	if err := s.db.Model(&models.Commission{}).
		Where("is_paid = ?", false).
		Select("COALESCE(SUM(commission_amount),0) AS commission, COALESCE(SUM(handyman_earnings),0) AS earnings").
		Scan(&totals).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	stats.TotalCommissionAmount = totals.Commission
	stats.TotalHandymanEarnings = totals.Earnings

	return stats, nil
}
