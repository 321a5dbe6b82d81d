package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"servicepro-server/apperr"
	"servicepro-server/models"
)

func TestServiceVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db, zap.NewNop())

	admin := createUser(t, db, "admin", models.RoleAdmin)
	customer := createUser(t, db, "mari", models.RoleCustomer)
	owner := createUser(t, db, "jaan", models.RoleHandyman)
	other := createUser(t, db, "peeter", models.RoleHandyman)
	group := createGroup(t, db, "Ehitus")

	visible := createService(t, db, owner.ID, group.ID, 100, true)
	ownPending := createService(t, db, owner.ID, group.ID, 50, false)
	otherPending := createService(t, db, other.ID, group.ID, 75, false)

	inactive := createService(t, db, owner.ID, group.ID, 60, true)
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)

	ids := func(list []models.Service) []uint {
		out := make([]uint, 0, len(list))
		for _, s := range list {
			out = append(out, s.ID)
		}
		return out
	}

	// anonymous and customer: active and approved only
	list, err := svc.ListServices(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint{visible.ID}, ids(list))

	customerActor := actorFor(customer)
	list, err = svc.ListServices(&customerActor, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint{visible.ID}, ids(list))

	// a handyman additionally sees their own pending and inactive services
	ownerActor := actorFor(owner)
	list, err = svc.ListServices(&ownerActor, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint{visible.ID, ownPending.ID, inactive.ID}, ids(list))

	// admin sees all
	adminActor := actorFor(admin)
	list, err = svc.ListServices(&adminActor, nil)
	require.NoError(t, err)
	assert.Len(t, list, 4)

	// the same rule applies to single lookups
	_, err = svc.GetService(nil, otherPending.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	_, err = svc.GetService(&ownerActor, otherPending.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	_, err = svc.GetService(&adminActor, otherPending.ID)
	assert.NoError(t, err)
}

func TestListServicesByGroup(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db, zap.NewNop())

	owner := createUser(t, db, "jaan", models.RoleHandyman)
	ehitus := createGroup(t, db, "Ehitus")
	koristus := createGroup(t, db, "Koristus")
	inEhitus := createService(t, db, owner.ID, ehitus.ID, 100, true)
	createService(t, db, owner.ID, koristus.ID, 50, true)

	list, err := svc.ListServices(nil, &ehitus.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, inEhitus.ID, list[0].ID)
}

func TestCreateServiceApprovalGate(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db, zap.NewNop())

	admin := createUser(t, db, "admin", models.RoleAdmin)
	customer := createUser(t, db, "mari", models.RoleCustomer)
	handyman := createUser(t, db, "jaan", models.RoleHandyman)
	group := createGroup(t, db, "Ehitus")

	input := ServiceInput{
		Name:           "Wall painting",
		Description:    "Interior walls, two coats",
		Price:          120,
		DurationHours:  4,
		ServiceGroupID: group.ID,
	}

	_, err := svc.CreateService(actorFor(customer), input)
	assert.True(t, apperr.IsKind(err, apperr.KindAccessDenied))

	// handyman-created services start unapproved and belong to the creator
	created, err := svc.CreateService(actorFor(handyman), input)
	require.NoError(t, err)
	assert.False(t, created.IsApproved)
	assert.Equal(t, handyman.ID, created.HandymanID)

	// admin-created services start approved, for the named handyman
	adminInput := input
	adminInput.HandymanID = handyman.ID
	created, err = svc.CreateService(actorFor(admin), adminInput)
	require.NoError(t, err)
	assert.True(t, created.IsApproved)
	assert.Equal(t, handyman.ID, created.HandymanID)
}

func TestCreateServiceValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db, zap.NewNop())

	handyman := createUser(t, db, "jaan", models.RoleHandyman)
	group := createGroup(t, db, "Ehitus")

	base := ServiceInput{
		Name:           "Wall painting",
		Description:    "Interior walls",
		Price:          120,
		DurationHours:  4,
		ServiceGroupID: group.ID,
	}

	cases := []struct {
		name   string
		mutate func(*ServiceInput)
	}{
		{"empty name", func(in *ServiceInput) { in.Name = "  " }},
		{"empty description", func(in *ServiceInput) { in.Description = "" }},
		{"negative price", func(in *ServiceInput) { in.Price = -1 }},
		{"zero duration", func(in *ServiceInput) { in.DurationHours = 0 }},
		{"missing group", func(in *ServiceInput) { in.ServiceGroupID = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := base
			tc.mutate(&input)
			_, err := svc.CreateService(actorFor(handyman), input)
			assert.True(t, apperr.IsKind(err, apperr.KindValidation))
		})
	}
}

func TestUpdateServiceOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db, zap.NewNop())

	admin := createUser(t, db, "admin", models.RoleAdmin)
	owner := createUser(t, db, "jaan", models.RoleHandyman)
	other := createUser(t, db, "peeter", models.RoleHandyman)
	group := createGroup(t, db, "Ehitus")
	service := createService(t, db, owner.ID, group.ID, 100, true)

	input := ServiceInput{
		Name:           "Renamed",
		Description:    "Updated description",
		Price:          150,
		DurationHours:  3,
		ServiceGroupID: group.ID,
	}

	_, err := svc.UpdateService(actorFor(other), service.ID, input)
	assert.True(t, apperr.IsKind(err, apperr.KindAccessDenied))

	// The ownership gate answers before input validation does.
	_, err = svc.UpdateService(actorFor(other), service.ID, ServiceInput{Price: -1})
	assert.True(t, apperr.IsKind(err, apperr.KindAccessDenied))

	updated, err := svc.UpdateService(actorFor(owner), service.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, 150.0, updated.Price)

	_, err = svc.UpdateService(actorFor(admin), service.ID, input)
	assert.NoError(t, err)

	err = svc.DeleteService(actorFor(other), service.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindAccessDenied))
	require.NoError(t, svc.DeleteService(actorFor(owner), service.ID))
}

func TestDeleteServiceRemovesReferencingBookings(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db, zap.NewNop())

	customer := createUser(t, db, "mari", models.RoleCustomer)
	owner := createUser(t, db, "jaan", models.RoleHandyman)
	group := createGroup(t, db, "Ehitus")
	service := createService(t, db, owner.ID, group.ID, 100, true)
	booking := createBooking(t, db, customer.ID, service.ID, models.BookingStatusPending, nil)
	require.NoError(t, db.Create(&models.Commission{
		BookingID: booking.ID, HandymanID: owner.ID,
		ServicePrice: 100, CommissionAmount: 10, HandymanEarnings: 90,
	}).Error)

	require.NoError(t, svc.DeleteService(actorFor(owner), service.ID))

	var count int64
	db.Model(&models.Booking{}).Where("service_id = ?", service.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Commission{}).Where("booking_id = ?", booking.ID).Count(&count)
	assert.Zero(t, count)
}

func TestApproveAndRejectService(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db, zap.NewNop())

	admin := createUser(t, db, "admin", models.RoleAdmin)
	handyman := createUser(t, db, "jaan", models.RoleHandyman)
	group := createGroup(t, db, "Ehitus")
	first := createService(t, db, handyman.ID, group.ID, 100, false)
	second := createService(t, db, handyman.ID, group.ID, 50, false)

	pending, err := svc.PendingServices(actorFor(admin))
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	approved, err := svc.ApproveService(actorFor(admin), first.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)

	_, err = svc.RejectService(actorFor(admin), second.ID)
	require.NoError(t, err)

	var count int64
	db.Model(&models.Service{}).Where("id = ?", second.ID).Count(&count)
	assert.Zero(t, count)

	pending, err = svc.PendingServices(actorFor(admin))
	require.NoError(t, err)
	assert.Empty(t, pending)

	// non-admins cannot reach the review queue
	_, err = svc.PendingServices(actorFor(handyman))
	assert.True(t, apperr.IsKind(err, apperr.KindAccessDenied))
}

func TestServiceGroupCRUD(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db, zap.NewNop())

	admin := createUser(t, db, "admin", models.RoleAdmin)
	customer := createUser(t, db, "mari", models.RoleCustomer)

	_, err := svc.CreateServiceGroup(actorFor(customer), ServiceGroupInput{Name: "Ehitus"})
	assert.True(t, apperr.IsKind(err, apperr.KindAccessDenied))

	_, err = svc.CreateServiceGroup(actorFor(admin), ServiceGroupInput{Name: "x"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	group, err := svc.CreateServiceGroup(actorFor(admin), ServiceGroupInput{
		Name:   "Ehitus",
		NameRu: "Строительство",
	})
	require.NoError(t, err)
	// missing localized names fall back to the base name
	assert.Equal(t, "Ehitus", group.NameEt)
	assert.Equal(t, "Ehitus", group.NameEn)
	assert.Equal(t, "Строительство", group.NameRu)

	updated, err := svc.UpdateServiceGroup(actorFor(admin), group.ID, ServiceGroupInput{
		Name:   "Ehitus ja remont",
		NameEn: "Construction and repair",
	})
	require.NoError(t, err)
	assert.Equal(t, "Construction and repair", updated.NameEn)

	require.NoError(t, svc.DeleteServiceGroup(actorFor(admin), group.ID))
	_, err = svc.GetServiceGroup(group.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestLocalizedName(t *testing.T) {
	group := models.ServiceGroup{Name: "Ehitus", NameEt: "Ehitus", NameEn: "Construction", NameRu: "Строительство"}
	assert.Equal(t, "Ehitus", group.LocalizedName("et"))
	assert.Equal(t, "Construction", group.LocalizedName("en"))
	assert.Equal(t, "Строительство", group.LocalizedName("ru"))
	assert.Equal(t, "Ehitus", group.LocalizedName("de"))
}
