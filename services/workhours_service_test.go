package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicepro-server/apperr"
	"servicepro-server/models"
)

func TestWorkHoursLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewWorkHoursService(db)

	handyman := createUser(t, db, "jaan", models.RoleHandyman)
	other := createUser(t, db, "peeter", models.RoleHandyman)
	customer := createUser(t, db, "mari", models.RoleCustomer)

	_, err := svc.Add(actorFor(customer), WorkHoursInput{DayOfWeek: 0, StartTime: "09:00", EndTime: "17:00"})
	assert.True(t, apperr.IsKind(err, apperr.KindAccessDenied))

	window, err := svc.Add(actorFor(handyman), WorkHoursInput{DayOfWeek: 0, StartTime: "09:00", EndTime: "17:00"})
	require.NoError(t, err)
	assert.Equal(t, "Monday", window.DayName())

	list, err := svc.List(actorFor(handyman))
	require.NoError(t, err)
	assert.Len(t, list, 1)

	// windows are private to their owner
	list, err = svc.List(actorFor(other))
	require.NoError(t, err)
	assert.Empty(t, list)
	err = svc.Delete(actorFor(other), window.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindAccessDenied))

	require.NoError(t, svc.Delete(actorFor(handyman), window.ID))
	list, err = svc.List(actorFor(handyman))
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestWorkHoursValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewWorkHoursService(db)
	handyman := createUser(t, db, "jaan", models.RoleHandyman)

	cases := []struct {
		name  string
		input WorkHoursInput
	}{
		{"day too large", WorkHoursInput{DayOfWeek: 7, StartTime: "09:00", EndTime: "17:00"}},
		{"negative day", WorkHoursInput{DayOfWeek: -1, StartTime: "09:00", EndTime: "17:00"}},
		{"bad start", WorkHoursInput{DayOfWeek: 2, StartTime: "9am", EndTime: "17:00"}},
		{"bad end", WorkHoursInput{DayOfWeek: 2, StartTime: "09:00", EndTime: "later"}},
		{"end before start", WorkHoursInput{DayOfWeek: 2, StartTime: "17:00", EndTime: "09:00"}},
		{"zero length", WorkHoursInput{DayOfWeek: 2, StartTime: "09:00", EndTime: "09:00"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Add(actorFor(handyman), tc.input)
			assert.True(t, apperr.IsKind(err, apperr.KindValidation))
		})
	}
}
