package services

import (
	"time"

	"gorm.io/gorm"

	"servicepro-server/apperr"
	"servicepro-server/models"
)

// WorkHoursService maintains a handyman's declared weekly availability.
// The windows are informational only: booking creation never checks them.
type WorkHoursService struct {
	db *gorm.DB
}

func NewWorkHoursService(db *gorm.DB) *WorkHoursService {
	return &WorkHoursService{db: db}
}

// List returns the acting handyman's availability windows.
func (s *WorkHoursService) List(actor Actor) ([]models.WorkHours, error) {
	if err := requireRole(actor, models.RoleHandyman); err != nil {
		return nil, err
	}
	var hours []models.WorkHours
	if err := s.db.Where("handyman_id = ?", actor.ID).
		Order("day_of_week, start_time").Find(&hours).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	return hours, nil
}

type WorkHoursInput struct {
	DayOfWeek int
	StartTime string // HH:MM
	EndTime   string // HH:MM
}

// Add records one availability window for the acting handyman.
func (s *WorkHoursService) Add(actor Actor, input WorkHoursInput) (*models.WorkHours, error) {
	if err := requireRole(actor, models.RoleHandyman); err != nil {
		return nil, err
	}
	if input.DayOfWeek < 0 || input.DayOfWeek > 6 {
		return nil, apperr.Validation("day of week must be between 0 and 6")
	}
	start, err := time.Parse("15:04", input.StartTime)
	if err != nil {
		return nil, apperr.Validation("start time must be in HH:MM format")
	}
	end, err := time.Parse("15:04", input.EndTime)
	if err != nil {
		return nil, apperr.Validation("end time must be in HH:MM format")
	}
	if !end.After(start) {
		return nil, apperr.Validation("end time must be after start time")
	}

	hours := models.WorkHours{
		HandymanID: actor.ID,
		DayOfWeek:  input.DayOfWeek,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		IsActive:   true,
	}
	if err := s.db.Create(&hours).Error; err != nil {
		return nil, apperr.Persistence(err)
	}
	return &hours, nil
}

// Delete removes one of the acting handyman's windows.
func (s *WorkHoursService) Delete(actor Actor, id uint) error {
	if err := requireRole(actor, models.RoleHandyman); err != nil {
		return err
	}
	var hours models.WorkHours
	if err := s.db.First(&hours, id).Error; err != nil {
		return wrapDBError(err, "work hours")
	}
	if hours.HandymanID != actor.ID {
		return apperr.AccessDenied()
	}
	if err := s.db.Delete(&hours).Error; err != nil {
		return apperr.Persistence(err)
	}
	return nil
}
