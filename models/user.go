package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleHandyman UserRole = "handyman"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Username     string   `json:"username" gorm:"size:80;uniqueIndex;not null"`
	Email        string   `json:"email" gorm:"size:120;uniqueIndex;not null"`
	PasswordHash string   `json:"-" gorm:"size:255;not null"` // Hidden from JSON
	Role         UserRole `json:"role" gorm:"type:varchar(20);not null;default:'customer';check:role IN ('customer','handyman','admin')"`
	FirstName    string   `json:"first_name" gorm:"size:50"`
	LastName     string   `json:"last_name" gorm:"size:50"`
	Phone        string   `json:"phone" gorm:"size:20"`
	Address      string   `json:"address" gorm:"type:text"`
	IsApproved   bool     `json:"is_approved" gorm:"default:true"`

	// Aggregate rating, recomputed whenever feedback lands
	AverageScore   float64 `json:"average_score" gorm:"default:0"`
	TotalFeedbacks int     `json:"total_feedbacks" gorm:"default:0"`

	// Password reset, single use
	ResetToken       *string    `json:"-" gorm:"size:100;uniqueIndex"`
	ResetTokenExpiry *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Services []Service `json:"services,omitempty" gorm:"foreignKey:HandymanID"`
	Bookings []Booking `json:"bookings,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate is a GORM hook that runs before creating a user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleCustomer
	}
	return nil
}

// IsValidRole checks if the user role is valid
func (u *User) IsValidRole() bool {
	switch u.Role {
	case RoleCustomer, RoleHandyman, RoleAdmin:
		return true
	default:
		return false
	}
}

// FullName returns the user's display name
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	return u.FirstName + " " + u.LastName
}

// IsHandyman checks if the user is a handyman
func (u *User) IsHandyman() bool {
	return u.Role == RoleHandyman
}

// IsAdmin checks if the user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsCustomer checks if the user is a customer
func (u *User) IsCustomer() bool {
	return u.Role == RoleCustomer
}
