package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"servicepro-server/apperr"
	"servicepro-server/mailer"
	"servicepro-server/models"
)

// BookingService drives the booking state machine:
//
//	pending -> approved -> in_progress -> completed
//	pending/approved -> declined (terminal)
//
// and records the derived commission at creation time.
type BookingService struct {
	db     *gorm.DB
	logger *zap.Logger
	mailer mailer.Mailer
}

func NewBookingService(db *gorm.DB, logger *zap.Logger, m mailer.Mailer) *BookingService {
	return &BookingService{db: db, logger: logger, mailer: m}
}

type CreateBookingInput struct {
	ServiceID       uint
	BookingDate     time.Time
	SpecialRequests string
}

// Create places a booking for the acting customer. The service must be
// active and approved and the date strictly in the future. The price is
// snapshotted and the commission row written in the same transaction, so a
// booking without its commission can never be observed. Notification mail
// goes out after commit and never fails the booking.
func (s *BookingService) Create(actor Actor, input CreateBookingInput) (*models.Booking, error) {
	if err := requireRole(actor, models.RoleCustomer); err != nil {
		return nil, err
	}

	var service models.Service
	if err := s.db.Preload("Handyman").First(&service, input.ServiceID).Error; err != nil {
		return nil, wrapDBError(err, "service")
	}
	if !service.IsApproved || !service.IsActive {
		return nil, apperr.Validation("service is not available for booking")
	}
	if !input.BookingDate.After(time.Now()) {
		return nil, apperr.Validation("please select a future date and time")
	}

	booking := models.Booking{
		UserID:          actor.ID,
		ServiceID:       service.ID,
		BookingDate:     input.BookingDate,
		SpecialRequests: input.SpecialRequests,
		TotalPrice:      service.Price, // snapshot; later price edits do not apply
		Status:          models.BookingStatusPending,
		AdminApproved:   false,
	}
	commissionAmount, handymanEarnings := models.SplitCommission(service.Price)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		commission := models.Commission{
			BookingID:        booking.ID,
			HandymanID:       service.HandymanID, // the service owner, fixed at creation
			ServicePrice:     service.Price,
			CommissionAmount: commissionAmount,
			HandymanEarnings: handymanEarnings,
			IsPaid:           false,
		}
		return tx.Create(&commission).Error
	})
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	s.notifyBookingCreated(&booking, &service)
	return &booking, nil
}

// notifyBookingCreated mails customer, service owner and admins. Best-effort:
// errors are logged and swallowed.
func (s *BookingService) notifyBookingCreated(booking *models.Booking, service *models.Service) {
	var customer models.User
	if err := s.db.First(&customer, booking.UserID).Error; err != nil {
		s.logger.Error("booking notification: customer lookup failed", zap.Error(err))
		return
	}

	when := booking.BookingDate.Format("2006-01-02 15:04")
	customerBody := fmt.Sprintf(
		"Dear %s,\n\nYour booking has been placed successfully!\n\nService: %s\nProvider: %s\nDate & Time: %s\nPrice: $%.2f\nStatus: Pending approval\n\nYou will receive another email once your booking is confirmed.\n",
		customer.FirstName, service.Name, service.Handyman.FullName(), when, booking.TotalPrice)
	if err := s.mailer.Send([]string{customer.Email}, "Booking Confirmation - Service PRO", customerBody); err != nil {
		s.logger.Error("booking notification: customer mail failed", zap.Error(err))
	}

	handymanBody := fmt.Sprintf(
		"New booking for your service!\n\nCustomer: %s\nService: %s\nDate & Time: %s\nPrice: $%.2f\n\nPlease check your dashboard for details.\n",
		customer.FullName(), service.Name, when, booking.TotalPrice)
	if err := s.mailer.Send([]string{service.Handyman.Email}, "New Booking - Service PRO", handymanBody); err != nil {
		s.logger.Error("booking notification: handyman mail failed", zap.Error(err))
	}

	var adminEmails []string
	if err := s.db.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).Pluck("email", &adminEmails).Error; err != nil {
		s.logger.Error("booking notification: admin lookup failed", zap.Error(err))
		return
	}
	if len(adminEmails) > 0 {
		if err := s.mailer.Send(adminEmails, "New Booking Placed - Service PRO", handymanBody); err != nil {
			s.logger.Error("booking notification: admin mail failed", zap.Error(err))
		}
	}
}

// Get loads a booking the actor may see: its customer, its assigned
// handyman, or an admin.
func (s *BookingService) Get(actor Actor, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.Preload("Service").Preload("Handyman").Preload("User").
		First(&booking, id).Error
	if err != nil {
		return nil, wrapDBError(err, "booking")
	}

	switch {
	case actor.Role == models.RoleAdmin:
	case booking.UserID == actor.ID:
	case booking.HandymanID != nil && *booking.HandymanID == actor.ID:
	default:
		return nil, apperr.AccessDenied()
	}
	return &booking, nil
}

// ListForCustomer returns the actor's own bookings.
func (s *BookingService) ListForCustomer(actor Actor) ([]models.Booking, error) {
	if err := requireRole(actor, models.RoleCustomer); err != nil {
		return nil, err
	}
	var bookings []models.Booking
	if err := s.db.Where("user_id = ?", actor.ID).
		Preload("Service").Preload("Handyman").
		Order("id").Find(&bookings).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	return bookings, nil
}

// ListForHandyman returns bookings assigned to the acting handyman.
func (s *BookingService) ListForHandyman(actor Actor) ([]models.Booking, error) {
	if err := requireRole(actor, models.RoleHandyman); err != nil {
		return nil, err
	}
	var bookings []models.Booking
	if err := s.db.Where("handyman_id = ?", actor.ID).
		Preload("Service").Preload("User").
		Order("id").Find(&bookings).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	return bookings, nil
}

// ListAll returns every booking. Admin only.
func (s *BookingService) ListAll(actor Actor) ([]models.Booking, error) {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	var bookings []models.Booking
	if err := s.db.Preload("Service").Preload("User").Preload("Handyman").
		Order("id").Find(&bookings).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	return bookings, nil
}

// Approve moves pending -> approved. Admin only.
func (s *BookingService) Approve(actor Actor, id uint) error {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return err
	}
	var booking models.Booking
	if err := s.db.First(&booking, id).Error; err != nil {
		return wrapDBError(err, "booking")
	}
	if booking.Status != models.BookingStatusPending {
		return apperr.InvalidTransition(fmt.Sprintf("cannot approve a %s booking", booking.Status))
	}
	if err := s.db.Model(&booking).Updates(map[string]interface{}{
		"status":         models.BookingStatusApproved,
		"admin_approved": true,
	}).Error; err != nil {
		return apperr.Persistence(err)
	}
	return nil
}

// Decline moves pending or approved -> declined (terminal). Admin only.
func (s *BookingService) Decline(actor Actor, id uint) error {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return err
	}
	var booking models.Booking
	if err := s.db.First(&booking, id).Error; err != nil {
		return wrapDBError(err, "booking")
	}
	if booking.Status != models.BookingStatusPending && booking.Status != models.BookingStatusApproved {
		return apperr.InvalidTransition(fmt.Sprintf("cannot decline a %s booking", booking.Status))
	}
	if err := s.db.Model(&booking).Updates(map[string]interface{}{
		"status":         models.BookingStatusDeclined,
		"admin_approved": false,
	}).Error; err != nil {
		return apperr.Persistence(err)
	}
	return nil
}

// AssignHandyman sets the worker on a booking and transitions it to
// approved in the same write. The target must be an approved handyman.
// The commission row is deliberately left untouched: it belongs to the
// service's owner as of booking creation.
func (s *BookingService) AssignHandyman(actor Actor, id, handymanID uint) error {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return err
	}
	var booking models.Booking
	if err := s.db.First(&booking, id).Error; err != nil {
		return wrapDBError(err, "booking")
	}
	if booking.Status != models.BookingStatusPending && booking.Status != models.BookingStatusApproved {
		return apperr.InvalidTransition(fmt.Sprintf("cannot assign a handyman to a %s booking", booking.Status))
	}

	var handyman models.User
	if err := s.db.First(&handyman, handymanID).Error; err != nil {
		return wrapDBError(err, "handyman")
	}
	if handyman.Role != models.RoleHandyman || !handyman.IsApproved {
		return apperr.Validation("user is not an approved handyman")
	}

	if err := s.db.Model(&booking).Updates(map[string]interface{}{
		"handyman_id": handymanID,
		"status":      models.BookingStatusApproved,
	}).Error; err != nil {
		return apperr.Persistence(err)
	}
	return nil
}

// UpdateStatus lets the assigned handyman progress their booking:
// approved/in_progress -> in_progress or completed. Anything else is an
// invalid transition; terminal states never move.
func (s *BookingService) UpdateStatus(actor Actor, id uint, status models.BookingStatus) error {
	if err := requireRole(actor, models.RoleHandyman); err != nil {
		return err
	}
	var booking models.Booking
	if err := s.db.First(&booking, id).Error; err != nil {
		return wrapDBError(err, "booking")
	}
	if booking.HandymanID == nil || *booking.HandymanID != actor.ID {
		return apperr.AccessDenied()
	}

	if status != models.BookingStatusInProgress && status != models.BookingStatusCompleted {
		return apperr.InvalidTransition(fmt.Sprintf("handymen cannot set status %s", status))
	}
	if booking.Status != models.BookingStatusApproved && booking.Status != models.BookingStatusInProgress {
		return apperr.InvalidTransition(fmt.Sprintf("cannot move a %s booking to %s", booking.Status, status))
	}
	// setting in_progress again is a harmless no-op
	if booking.Status == models.BookingStatusInProgress && status == models.BookingStatusInProgress {
		return nil
	}

	if err := s.db.Model(&booking).Update("status", status).Error; err != nil {
		return apperr.Persistence(err)
	}
	return nil
}
