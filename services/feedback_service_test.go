package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"servicepro-server/apperr"
	"servicepro-server/models"
)

func TestSubmitFeedbackUpdatesScore(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedbackService(db, zap.NewNop())

	customer := createUser(t, db, "mari", models.RoleCustomer)
	handyman := createUser(t, db, "jaan", models.RoleHandyman)
	group := createGroup(t, db, "Koristus")
	service := createService(t, db, handyman.ID, group.ID, 50, true)

	for _, rating := range []int{5, 3, 4} {
		booking := createBooking(t, db, customer.ID, service.ID, models.BookingStatusCompleted, &handyman.ID)
		_, err := svc.Submit(actorFor(customer), FeedbackInput{
			BookingID: booking.ID,
			Rating:    rating,
			Comment:   "all good",
		})
		require.NoError(t, err)
	}

	var stored models.User
	require.NoError(t, db.First(&stored, handyman.ID).Error)
	assert.InDelta(t, 4.0, stored.AverageScore, 0.001)
	assert.Equal(t, 3, stored.TotalFeedbacks)
}

func TestSubmitFeedbackRejectsDuplicate(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedbackService(db, zap.NewNop())

	customer := createUser(t, db, "mari", models.RoleCustomer)
	handyman := createUser(t, db, "jaan", models.RoleHandyman)
	group := createGroup(t, db, "Koristus")
	service := createService(t, db, handyman.ID, group.ID, 50, true)
	booking := createBooking(t, db, customer.ID, service.ID, models.BookingStatusCompleted, &handyman.ID)

	_, err := svc.Submit(actorFor(customer), FeedbackInput{BookingID: booking.ID, Rating: 5})
	require.NoError(t, err)

	_, err = svc.Submit(actorFor(customer), FeedbackInput{BookingID: booking.ID, Rating: 1})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	// the rejected duplicate leaves the score untouched
	var stored models.User
	require.NoError(t, db.First(&stored, handyman.ID).Error)
	assert.InDelta(t, 5.0, stored.AverageScore, 0.001)
	assert.Equal(t, 1, stored.TotalFeedbacks)
}

func TestSubmitFeedbackRequiresCompletedBooking(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedbackService(db, zap.NewNop())

	customer := createUser(t, db, "mari", models.RoleCustomer)
	handyman := createUser(t, db, "jaan", models.RoleHandyman)
	group := createGroup(t, db, "Koristus")
	service := createService(t, db, handyman.ID, group.ID, 50, true)

	for _, status := range []models.BookingStatus{
		models.BookingStatusPending,
		models.BookingStatusApproved,
		models.BookingStatusInProgress,
		models.BookingStatusDeclined,
	} {
		booking := createBooking(t, db, customer.ID, service.ID, status, &handyman.ID)
		_, err := svc.Submit(actorFor(customer), FeedbackInput{BookingID: booking.ID, Rating: 5})
		assert.True(t, apperr.IsKind(err, apperr.KindValidation), "status %s", status)
	}
}

func TestSubmitFeedbackOwnBookingOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedbackService(db, zap.NewNop())

	customer := createUser(t, db, "mari", models.RoleCustomer)
	other := createUser(t, db, "liis", models.RoleCustomer)
	handyman := createUser(t, db, "jaan", models.RoleHandyman)
	group := createGroup(t, db, "Koristus")
	service := createService(t, db, handyman.ID, group.ID, 50, true)
	booking := createBooking(t, db, customer.ID, service.ID, models.BookingStatusCompleted, &handyman.ID)

	_, err := svc.Submit(actorFor(other), FeedbackInput{BookingID: booking.ID, Rating: 5})
	assert.True(t, apperr.IsKind(err, apperr.KindAccessDenied))
}

func TestSubmitFeedbackValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedbackService(db, zap.NewNop())

	customer := createUser(t, db, "mari", models.RoleCustomer)
	handyman := createUser(t, db, "jaan", models.RoleHandyman)
	group := createGroup(t, db, "Koristus")
	service := createService(t, db, handyman.ID, group.ID, 50, true)
	booking := createBooking(t, db, customer.ID, service.ID, models.BookingStatusCompleted, &handyman.ID)

	_, err := svc.Submit(actorFor(customer), FeedbackInput{BookingID: booking.ID, Rating: 0})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.Submit(actorFor(customer), FeedbackInput{BookingID: booking.ID, Rating: 6})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.Submit(actorFor(customer), FeedbackInput{
		BookingID: booking.ID, Rating: 4, Comment: strings.Repeat("a", 501),
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestHandymanFeedbackSummary(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedbackService(db, zap.NewNop())

	customer := createUser(t, db, "mari", models.RoleCustomer)
	handyman := createUser(t, db, "jaan", models.RoleHandyman)
	group := createGroup(t, db, "Koristus")
	service := createService(t, db, handyman.ID, group.ID, 50, true)

	for _, rating := range []int{5, 5, 4, 2} {
		booking := createBooking(t, db, customer.ID, service.ID, models.BookingStatusCompleted, &handyman.ID)
		_, err := svc.Submit(actorFor(customer), FeedbackInput{BookingID: booking.ID, Rating: rating})
		require.NoError(t, err)
	}

	summary, err := svc.ListForHandyman(actorFor(handyman))
	require.NoError(t, err)
	assert.Equal(t, 4, summary.TotalFeedbacks)
	assert.InDelta(t, 4.0, summary.AverageRating, 0.001)
	assert.Equal(t, 2, summary.FiveStarCount)
	assert.Equal(t, 3, summary.FourPlusCount)
	assert.Len(t, summary.Feedbacks, 4)
}
