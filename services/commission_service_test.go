package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"servicepro-server/apperr"
	"servicepro-server/models"
)

func TestCommissionLedger(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommissionService(db, zap.NewNop())

	admin := createUser(t, db, "admin", models.RoleAdmin)
	customer := createUser(t, db, "mari", models.RoleCustomer)
	handyman := createUser(t, db, "jaan", models.RoleHandyman)
	group := createGroup(t, db, "Ehitus")
	service := createService(t, db, handyman.ID, group.ID, 100, true)

	first := createBooking(t, db, customer.ID, service.ID, models.BookingStatusCompleted, &handyman.ID)
	second := createBooking(t, db, customer.ID, service.ID, models.BookingStatusCompleted, &handyman.ID)
	require.NoError(t, db.Create(&models.Commission{
		BookingID: first.ID, HandymanID: handyman.ID,
		ServicePrice: 100, CommissionAmount: 10, HandymanEarnings: 90,
	}).Error)
	require.NoError(t, db.Create(&models.Commission{
		BookingID: second.ID, HandymanID: handyman.ID,
		ServicePrice: 50, CommissionAmount: 5, HandymanEarnings: 45,
	}).Error)

	_, err := svc.List(actorFor(handyman))
	assert.True(t, apperr.IsKind(err, apperr.KindAccessDenied))

	list, err := svc.List(actorFor(admin))
	require.NoError(t, err)
	require.Len(t, list, 2)

	commission, earnings, err := svc.UnpaidTotals(actorFor(admin))
	require.NoError(t, err)
	assert.InDelta(t, 15.0, commission, 0.001)
	assert.InDelta(t, 135.0, earnings, 0.001)

	require.NoError(t, svc.MarkPaid(actorFor(admin), list[0].ID))
	// marking twice is a no-op
	require.NoError(t, svc.MarkPaid(actorFor(admin), list[0].ID))

	commission, earnings, err = svc.UnpaidTotals(actorFor(admin))
	require.NoError(t, err)
	assert.InDelta(t, 5.0, commission, 0.001)
	assert.InDelta(t, 45.0, earnings, 0.001)

	err = svc.MarkPaid(actorFor(admin), 9999)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
