package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"servicepro-server/database"
	"servicepro-server/mailer"
	"servicepro-server/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func testMailer() mailer.Mailer {
	return mailer.NewLogMailer(zap.NewNop())
}

func createUser(t *testing.T, db *gorm.DB, username string, role models.UserRole) *models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         role,
		IsApproved:   true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createGroup(t *testing.T, db *gorm.DB, name string) *models.ServiceGroup {
	t.Helper()
	group := models.ServiceGroup{Name: name, NameEt: name, IsActive: true}
	require.NoError(t, db.Create(&group).Error)
	return &group
}

func createService(t *testing.T, db *gorm.DB, handymanID, groupID uint, price float64, approved bool) *models.Service {
	t.Helper()
	svc := models.Service{
		Name:           "Test service",
		Price:          price,
		DurationHours:  2,
		ServiceGroupID: groupID,
		HandymanID:     handymanID,
		IsActive:       true,
		IsApproved:     approved,
	}
	require.NoError(t, db.Create(&svc).Error)
	return &svc
}

func createBooking(t *testing.T, db *gorm.DB, userID, serviceID uint, status models.BookingStatus, handymanID *uint) *models.Booking {
	t.Helper()
	booking := models.Booking{
		UserID:      userID,
		ServiceID:   serviceID,
		HandymanID:  handymanID,
		BookingDate: time.Now().Add(24 * time.Hour),
		TotalPrice:  100,
		Status:      status,
	}
	require.NoError(t, db.Create(&booking).Error)
	return &booking
}

func actorFor(user *models.User) Actor {
	return Actor{ID: user.ID, Role: user.Role}
}
