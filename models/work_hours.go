package models

import (
	"time"
)

// WorkHours is a handyman's declared weekly availability window.
// Purely informational: booking creation does not check it.
type WorkHours struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	HandymanID uint   `json:"handyman_id" gorm:"not null"`
	DayOfWeek  int    `json:"day_of_week" gorm:"not null;check:day_of_week >= 0 AND day_of_week <= 6"` // 0=Monday, 6=Sunday
	StartTime  string `json:"start_time" gorm:"size:5;not null"`                                       // HH:MM
	EndTime    string `json:"end_time" gorm:"size:5;not null"`                                         // HH:MM
	IsActive   bool   `json:"is_active" gorm:"default:true"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Handyman User `json:"handyman,omitempty" gorm:"foreignKey:HandymanID"`
}

var dayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayName returns the weekday label for display.
func (w WorkHours) DayName() string {
	if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
		return ""
	}
	return dayNames[w.DayOfWeek]
}

// TableName specifies the table name for the WorkHours model
func (WorkHours) TableName() string {
	return "work_hours"
}
