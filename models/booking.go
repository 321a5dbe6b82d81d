package models

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusApproved   BookingStatus = "approved"
	BookingStatusDeclined   BookingStatus = "declined"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
)

// IsTerminal reports whether no further transition may leave this status.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusDeclined || s == BookingStatusCompleted
}

type Booking struct {
	ID         uint  `json:"id" gorm:"primaryKey"`
	UserID     uint  `json:"user_id" gorm:"not null"`
	ServiceID  uint  `json:"service_id" gorm:"not null"`
	HandymanID *uint `json:"handyman_id"` // Null until an admin assigns one

	BookingDate     time.Time     `json:"booking_date" gorm:"not null"`
	Status          BookingStatus `json:"status" gorm:"type:varchar(20);default:'pending';check:status IN ('pending','approved','declined','in_progress','completed')"`
	SpecialRequests string        `json:"special_requests" gorm:"type:text"`

	// Snapshot of Service.Price at creation; later price edits never touch it
	TotalPrice float64 `json:"total_price" gorm:"type:decimal(10,2);not null"`

	AdminApproved bool      `json:"admin_approved" gorm:"default:false"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	User     User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Service  Service `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	Handyman *User   `json:"handyman,omitempty" gorm:"foreignKey:HandymanID"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}
