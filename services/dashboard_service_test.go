package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicepro-server/apperr"
	"servicepro-server/models"
)

func TestAdminStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(db)

	admin := createUser(t, db, "admin", models.RoleAdmin)
	customer := createUser(t, db, "mari", models.RoleCustomer)
	handyman := createUser(t, db, "jaan", models.RoleHandyman)
	unapproved := createUser(t, db, "peeter", models.RoleHandyman)
	require.NoError(t, db.Model(unapproved).Update("is_approved", false).Error)

	group := createGroup(t, db, "Ehitus")
	createService(t, db, handyman.ID, group.ID, 100, true)
	createService(t, db, handyman.ID, group.ID, 50, false)

	service := createService(t, db, handyman.ID, group.ID, 200, true)
	createBooking(t, db, customer.ID, service.ID, models.BookingStatusPending, nil)
	createBooking(t, db, customer.ID, service.ID, models.BookingStatusInProgress, &handyman.ID)
	done := createBooking(t, db, customer.ID, service.ID, models.BookingStatusCompleted, &handyman.ID)
	require.NoError(t, db.Model(done).Update("total_price", 200).Error)
	require.NoError(t, db.Create(&models.Commission{
		BookingID: done.ID, HandymanID: handyman.ID,
		ServicePrice: 200, CommissionAmount: 20, HandymanEarnings: 180,
	}).Error)

	_, err := svc.ForAdmin(actorFor(customer))
	assert.True(t, apperr.IsKind(err, apperr.KindAccessDenied))

	stats, err := svc.ForAdmin(actorFor(admin))
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.TotalServices)
	assert.Equal(t, int64(3), stats.TotalBookings)
	assert.Equal(t, int64(1), stats.PendingBookings)
	assert.Equal(t, int64(1), stats.PendingHandymen)
	assert.Equal(t, int64(1), stats.PendingServicesCount)
	assert.Equal(t, int64(1), stats.TotalServiceGroups)
	assert.Equal(t, int64(1), stats.ApprovedHandymenCount)
	assert.Equal(t, int64(1), stats.InProgressJobs)
	assert.Equal(t, int64(1), stats.CompletedJobs)
	assert.InDelta(t, 200.0, stats.TotalEarnings, 0.001)
	assert.InDelta(t, 20.0, stats.TotalCommissionAmount, 0.001)
	assert.InDelta(t, 180.0, stats.TotalHandymanEarnings, 0.001)
}

func TestUserAndHandymanDashboards(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(db)

	customer := createUser(t, db, "mari", models.RoleCustomer)
	handyman := createUser(t, db, "jaan", models.RoleHandyman)
	group := createGroup(t, db, "Ehitus")
	service := createService(t, db, handyman.ID, group.ID, 100, true)
	createBooking(t, db, customer.ID, service.ID, models.BookingStatusApproved, &handyman.ID)

	userDash, err := svc.ForUser(actorFor(customer))
	require.NoError(t, err)
	assert.Equal(t, customer.ID, userDash.User.ID)
	assert.Len(t, userDash.Bookings, 1)

	handyDash, err := svc.ForHandyman(actorFor(handyman))
	require.NoError(t, err)
	assert.Len(t, handyDash.Bookings, 1)
	assert.Len(t, handyDash.Services, 1)

	_, err = svc.ForUser(actorFor(handyman))
	assert.True(t, apperr.IsKind(err, apperr.KindAccessDenied))
	_, err = svc.ForHandyman(actorFor(customer))
	assert.True(t, apperr.IsKind(err, apperr.KindAccessDenied))
}
