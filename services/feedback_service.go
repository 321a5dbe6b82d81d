package services

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"servicepro-server/apperr"
	"servicepro-server/models"
)

// FeedbackService accepts one post-completion rating per booking and keeps
// the handyman's aggregate score in step with it.
type FeedbackService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewFeedbackService(db *gorm.DB, logger *zap.Logger) *FeedbackService {
	return &FeedbackService{db: db, logger: logger}
}

type FeedbackInput struct {
	BookingID uint
	Rating    int
	Comment   string
}

// Submit records feedback on the actor's own completed booking. The insert
// and the score recompute commit together; a rejected duplicate leaves the
// score untouched.
func (s *FeedbackService) Submit(actor Actor, input FeedbackInput) (*models.Feedback, error) {
	if err := requireRole(actor, models.RoleCustomer); err != nil {
		return nil, err
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperr.Validation("rating must be between 1 and 5")
	}
	if len(input.Comment) > 500 {
		return nil, apperr.Validation("comment must be at most 500 characters")
	}

	var booking models.Booking
	if err := s.db.First(&booking, input.BookingID).Error; err != nil {
		return nil, wrapDBError(err, "booking")
	}
	if booking.UserID != actor.ID {
		return nil, apperr.AccessDenied()
	}
	if booking.Status != models.BookingStatusCompleted {
		return nil, apperr.Validation("feedback is only accepted on completed bookings")
	}
	if booking.HandymanID == nil {
		return nil, apperr.Validation("booking has no assigned handyman")
	}

	var count int64
	if err := s.db.Model(&models.Feedback{}).
		Where("booking_id = ?", booking.ID).Count(&count).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	if count > 0 {
		return nil, apperr.Validation("feedback has already been submitted for this booking")
	}

	feedback := models.Feedback{
		BookingID:  booking.ID,
		UserID:     actor.ID,
		HandymanID: *booking.HandymanID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&feedback).Error; err != nil {
			return err
		}
		return recomputeHandymanScore(tx, feedback.HandymanID)
	})
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	return &feedback, nil
}

// HandymanFeedbackSummary aggregates a handyman's received ratings.
type HandymanFeedbackSummary struct {
	Feedbacks      []models.Feedback `json:"feedbacks"`
	TotalFeedbacks int               `json:"total_feedbacks"`
	AverageRating  float64           `json:"average_rating"`
	FiveStarCount  int               `json:"five_star_count"`
	FourPlusCount  int               `json:"four_plus_count"`
}

// ListForHandyman returns the acting handyman's feedback with summary stats.
func (s *FeedbackService) ListForHandyman(actor Actor) (*HandymanFeedbackSummary, error) {
	if err := requireRole(actor, models.RoleHandyman); err != nil {
		return nil, err
	}
	var feedbacks []models.Feedback
	if err := s.db.Where("handyman_id = ?", actor.ID).
		Preload("Booking").Preload("User").
		Order("id DESC").Find(&feedbacks).Error; err != nil {
		return nil, apperr.Persistence(err)
	}

	summary := &HandymanFeedbackSummary{
		Feedbacks:      feedbacks,
		TotalFeedbacks: len(feedbacks),
	}
	if len(feedbacks) > 0 {
		total := 0
		for _, f := range feedbacks {
			total += f.Rating
			if f.Rating == 5 {
				summary.FiveStarCount++
			}
			if f.Rating >= 4 {
				summary.FourPlusCount++
			}
		}
		summary.AverageRating = float64(total) / float64(len(feedbacks))
	}
	return summary, nil
}
