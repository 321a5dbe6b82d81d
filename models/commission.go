package models

import (
	"math"
	"time"
)

// Commission is the platform's earned-commission record, derived once per
// booking at creation time. HandymanID is the service's owner as of that
// moment and is never rewritten by later reassignment.
type Commission struct {
	ID         uint `json:"id" gorm:"primaryKey"`
	BookingID  uint `json:"booking_id" gorm:"uniqueIndex;not null"`
	HandymanID uint `json:"handyman_id" gorm:"not null"`

	ServicePrice     float64 `json:"service_price" gorm:"type:decimal(10,2);not null"`
	CommissionAmount float64 `json:"commission_amount" gorm:"type:decimal(10,2);not null"` // 10% of service price
	HandymanEarnings float64 `json:"handyman_earnings" gorm:"type:decimal(10,2);not null"` // the remaining 90%
	IsPaid           bool    `json:"is_paid" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Relationships
	Booking  Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	Handyman User    `json:"handyman,omitempty" gorm:"foreignKey:HandymanID"`
}

// TableName specifies the table name for the Commission model
func (Commission) TableName() string {
	return "commissions"
}

// SplitCommission divides a price into the platform's 10% cut and the
// handyman's 90%. The arithmetic runs in integer cents and the earnings are
// the remainder, so commission + earnings always equals the price exactly.
func SplitCommission(totalPrice float64) (commission, earnings float64) {
	totalCents := int64(math.Round(totalPrice * 100))
	commissionCents := int64(math.Round(float64(totalCents) * 0.10))
	return float64(commissionCents) / 100, float64(totalCents-commissionCents) / 100
}
