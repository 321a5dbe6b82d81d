package models

import (
	"encoding/json"
	"time"
)

// Service is a bookable offering owned by a handyman. It is invisible to
// customers until an admin flips IsApproved.
type Service struct {
	ID             uint    `json:"id" gorm:"primaryKey"`
	Name           string  `json:"name" gorm:"size:100;not null"`
	Description    string  `json:"description" gorm:"type:text;not null"`
	Price          float64 `json:"price" gorm:"type:decimal(10,2);not null"`
	DurationHours  int     `json:"duration_hours" gorm:"not null"`
	Category       string  `json:"category" gorm:"size:50"`
	ServiceGroupID uint    `json:"service_group_id" gorm:"not null"`
	HandymanID     uint    `json:"handyman_id" gorm:"not null"`
	IsActive       bool    `json:"is_active" gorm:"default:true"`
	IsApproved     bool    `json:"is_approved" gorm:"default:false"`

	// Flat list of example image URLs, serialized as JSON text
	ExampleImages *string `json:"-" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	ServiceGroup ServiceGroup `json:"service_group,omitempty" gorm:"foreignKey:ServiceGroupID"`
	Handyman     User         `json:"handyman,omitempty" gorm:"foreignKey:HandymanID"`
}

// TableName specifies the table name for the Service model
func (Service) TableName() string {
	return "services"
}

// ImageURLs decodes the serialized example image list.
func (s *Service) ImageURLs() []string {
	if s.ExampleImages == nil || *s.ExampleImages == "" {
		return nil
	}
	var urls []string
	if err := json.Unmarshal([]byte(*s.ExampleImages), &urls); err != nil {
		return nil
	}
	return urls
}

// SetImageURLs serializes the example image list. An empty list clears the column.
func (s *Service) SetImageURLs(urls []string) {
	if len(urls) == 0 {
		s.ExampleImages = nil
		return
	}
	raw, err := json.Marshal(urls)
	if err != nil {
		return
	}
	encoded := string(raw)
	s.ExampleImages = &encoded
}
