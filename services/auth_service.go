package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"servicepro-server/apperr"
	"servicepro-server/mailer"
	"servicepro-server/models"
	"servicepro-server/utils"
)

const resetTokenTTL = time.Hour

// AuthService covers account lifecycle: registration, credential checks,
// password reset, profile edits and the admin user-management operations.
type AuthService struct {
	db      *gorm.DB
	logger  *zap.Logger
	mailer  mailer.Mailer
	baseURL string
}

func NewAuthService(db *gorm.DB, logger *zap.Logger, m mailer.Mailer, baseURL string) *AuthService {
	return &AuthService{db: db, logger: logger, mailer: m, baseURL: baseURL}
}

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Role      models.UserRole
}

// Register creates a new account. Accounts self-register as customer or
// handyman only and are auto-approved; admin accounts are seeded.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	if len(input.Username) < 3 || len(input.Username) > 80 {
		return nil, apperr.Validation("username must be between 3 and 80 characters")
	}
	if !strings.Contains(input.Email, "@") {
		return nil, apperr.Validation("a valid email address is required")
	}
	if len(input.Password) < 6 {
		return nil, apperr.Validation("password must be at least 6 characters")
	}
	if input.Role != models.RoleCustomer && input.Role != models.RoleHandyman {
		return nil, apperr.Validation("role must be customer or handyman")
	}

	var count int64
	if err := s.db.Model(&models.User{}).
		Where("username = ?", input.Username).Count(&count).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	if count > 0 {
		return nil, apperr.DuplicateIdentity("username already exists")
	}
	if err := s.db.Model(&models.User{}).
		Where("email = ?", input.Email).Count(&count).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	if count > 0 {
		return nil, apperr.DuplicateIdentity("email already registered")
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	user := models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		IsApproved:   true, // auto-approve, including handymen
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	return &user, nil
}

// Authenticate matches the identifier (username or email) and password.
// Every failure mode returns the same InvalidCredentials error so the
// response cannot reveal which part was wrong.
func (s *AuthService) Authenticate(identifier, password string) (*models.User, error) {
	identifier = strings.TrimSpace(identifier)

	var user models.User
	err := s.db.Where("username = ? OR email = ?", identifier, strings.ToLower(identifier)).
		First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.InvalidCredentials()
		}
		return nil, apperr.Persistence(err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.InvalidCredentials()
	}
	return &user, nil
}

// GetUser loads a user by id.
func (s *AuthService) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, wrapDBError(err, "user")
	}
	return &user, nil
}

// RequestPasswordReset issues a single-use, one-hour token and mails the
// reset link. The outcome is intentionally identical whether or not the
// email matched an account.
func (s *AuthService) RequestPasswordReset(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return apperr.Persistence(err)
	}

	token := uuid.NewString()
	expiry := time.Now().Add(resetTokenTTL)
	if err := s.db.Model(&user).Updates(map[string]interface{}{
		"reset_token":        token,
		"reset_token_expiry": expiry,
	}).Error; err != nil {
		return apperr.Persistence(err)
	}

	resetURL := fmt.Sprintf("%s/password-reset/%s", s.baseURL, token)
	body := fmt.Sprintf("To reset your password, visit the following link:\n%s\n\nIf you did not make this request, simply ignore this email.\n", resetURL)
	if err := s.mailer.Send([]string{user.Email}, "Password Reset Request", body); err != nil {
		s.logger.Error("failed to send password reset email",
			zap.Uint("user_id", user.ID), zap.Error(err))
	}
	return nil
}

// ResetPassword consumes a reset token: on success the hash is replaced and
// the token cleared in one transaction, so a second use of the same token
// fails.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	if len(newPassword) < 6 {
		return apperr.Validation("password must be at least 6 characters")
	}

	var user models.User
	err := s.db.Where("reset_token = ?", token).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.InvalidOrExpiredToken()
		}
		return apperr.Persistence(err)
	}
	if user.ResetTokenExpiry == nil || !user.ResetTokenExpiry.After(time.Now()) {
		return apperr.InvalidOrExpiredToken()
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return apperr.Persistence(err)
	}

	if err := s.db.Model(&user).Updates(map[string]interface{}{
		"password_hash":      hash,
		"reset_token":        nil,
		"reset_token_expiry": nil,
	}).Error; err != nil {
		return apperr.Persistence(err)
	}
	return nil
}

// UpdateScore recomputes a handyman's aggregate rating from all of their
// feedback rows. Zeroes both fields when no feedback exists.
func (s *AuthService) UpdateScore(handymanID uint) error {
	return recomputeHandymanScore(s.db, handymanID)
}

type ProfileInput struct {
	Email     string
	FirstName string
	LastName  string
	Phone     string
}

// UpdateProfile edits a user's contact fields. Self-service or admin.
func (s *AuthService) UpdateProfile(actor Actor, userID uint, input ProfileInput) (*models.User, error) {
	if err := requireOwnerOrAdmin(actor, userID); err != nil {
		return nil, err
	}

	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if !strings.Contains(input.Email, "@") {
		return nil, apperr.Validation("a valid email address is required")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, wrapDBError(err, "user")
	}

	var count int64
	if err := s.db.Model(&models.User{}).
		Where("email = ? AND id <> ?", input.Email, userID).Count(&count).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	if count > 0 {
		return nil, apperr.DuplicateIdentity("email already registered to another user")
	}

	user.Email = input.Email
	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.Phone = input.Phone
	if err := s.db.Save(&user).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	return &user, nil
}

// ListUsers returns every account. Admin only.
func (s *AuthService) ListUsers(actor Actor) ([]models.User, error) {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	var users []models.User
	if err := s.db.Order("id").Find(&users).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	return users, nil
}

// ApproveHandyman flips the approval flag on a handyman account. Admin only.
func (s *AuthService) ApproveHandyman(actor Actor, userID uint) error {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return err
	}
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return wrapDBError(err, "user")
	}
	if user.Role != models.RoleHandyman {
		return apperr.Validation("user is not a handyman")
	}
	if err := s.db.Model(&user).Update("is_approved", true).Error; err != nil {
		return apperr.Persistence(err)
	}
	return nil
}

// DeleteUser removes an account and everything hanging off it: feedback
// given and received, bookings placed (with their commissions and feedback),
// owned services and work hours. Bookings on a deleted handyman's services
// are removed with them; bookings merely assigned to the handyman on someone
// else's service are unassigned, not removed. One transaction, no orphans.
func (s *AuthService) DeleteUser(actor Actor, userID uint) error {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return err
	}
	if actor.ID == userID {
		return apperr.Validation("you cannot delete your own account")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return wrapDBError(err, "user")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var bookingIDs []uint
		if err := tx.Model(&models.Booking{}).
			Where("user_id = ?", userID).Pluck("id", &bookingIDs).Error; err != nil {
			return err
		}
		if len(bookingIDs) > 0 {
			if err := tx.Where("booking_id IN ?", bookingIDs).Delete(&models.Commission{}).Error; err != nil {
				return err
			}
			if err := tx.Where("booking_id IN ?", bookingIDs).Delete(&models.Feedback{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", bookingIDs).Delete(&models.Booking{}).Error; err != nil {
				return err
			}
		}
		var serviceIDs []uint
		if err := tx.Model(&models.Service{}).
			Where("handyman_id = ?", userID).Pluck("id", &serviceIDs).Error; err != nil {
			return err
		}
		if len(serviceIDs) > 0 {
			var serviceBookingIDs []uint
			if err := tx.Model(&models.Booking{}).
				Where("service_id IN ?", serviceIDs).Pluck("id", &serviceBookingIDs).Error; err != nil {
				return err
			}
			if len(serviceBookingIDs) > 0 {
				if err := tx.Where("booking_id IN ?", serviceBookingIDs).Delete(&models.Commission{}).Error; err != nil {
					return err
				}
				if err := tx.Where("booking_id IN ?", serviceBookingIDs).Delete(&models.Feedback{}).Error; err != nil {
					return err
				}
				if err := tx.Where("id IN ?", serviceBookingIDs).Delete(&models.Booking{}).Error; err != nil {
					return err
				}
			}
		}
		if err := tx.Where("user_id = ? OR handyman_id = ?", userID, userID).Delete(&models.Feedback{}).Error; err != nil {
			return err
		}
		if err := tx.Where("handyman_id = ?", userID).Delete(&models.Commission{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Booking{}).
			Where("handyman_id = ?", userID).Update("handyman_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("handyman_id = ?", userID).Delete(&models.Service{}).Error; err != nil {
			return err
		}
		if err := tx.Where("handyman_id = ?", userID).Delete(&models.WorkHours{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return apperr.Persistence(err)
	}

	s.logger.Info("user deleted", zap.Uint("user_id", userID), zap.Uint("admin_id", actor.ID))
	return nil
}

// CleanupExpiredResetTokens clears reset tokens past their expiry. Run
// periodically by the maintenance job.
func (s *AuthService) CleanupExpiredResetTokens() (int64, error) {
	res := s.db.Model(&models.User{}).
		Where("reset_token IS NOT NULL AND reset_token_expiry < ?", time.Now()).
		Updates(map[string]interface{}{"reset_token": nil, "reset_token_expiry": nil})
	if res.Error != nil {
		return 0, apperr.Persistence(res.Error)
	}
	return res.RowsAffected, nil
}

func recomputeHandymanScore(db *gorm.DB, handymanID uint) error {
	var count int64
	if err := db.Model(&models.Feedback{}).
		Where("handyman_id = ?", handymanID).Count(&count).Error; err != nil {
		return apperr.Persistence(err)
	}

	var avg float64
	if count > 0 {
		if err := db.Model(&models.Feedback{}).
			Where("handyman_id = ?", handymanID).
			Select("AVG(rating)").Scan(&avg).Error; err != nil {
			return apperr.Persistence(err)
		}
	}

	if err := db.Model(&models.User{}).Where("id = ?", handymanID).
		Updates(map[string]interface{}{
			"average_score":   avg,
			"total_feedbacks": count,
		}).Error; err != nil {
		return apperr.Persistence(err)
	}
	return nil
}
