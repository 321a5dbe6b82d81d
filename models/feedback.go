package models

import (
	"time"
)

// Feedback is a customer's post-completion rating of the serving handyman,
// at most one per booking.
type Feedback struct {
	ID         uint `json:"id" gorm:"primaryKey"`
	BookingID  uint `json:"booking_id" gorm:"uniqueIndex;not null"`
	UserID     uint `json:"user_id" gorm:"not null"`
	HandymanID uint `json:"handyman_id" gorm:"not null"`

	Rating  int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment string `json:"comment" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Relationships
	Booking  Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	User     User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Handyman User    `json:"handyman,omitempty" gorm:"foreignKey:HandymanID"`
}

// TableName specifies the table name for the Feedback model
func (Feedback) TableName() string {
	return "feedbacks"
}
