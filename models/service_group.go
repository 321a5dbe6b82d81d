package models

import (
	"time"
)

// ServiceGroup is a browsable service category with localized display names.
type ServiceGroup struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	NameEt      string    `json:"name_et" gorm:"size:100"`
	NameEn      string    `json:"name_en" gorm:"size:100"`
	NameRu      string    `json:"name_ru" gorm:"size:100"`
	Description string    `json:"description" gorm:"type:text"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`

	Services []Service `json:"services,omitempty" gorm:"foreignKey:ServiceGroupID"`
}

// TableName specifies the table name for the ServiceGroup model
func (ServiceGroup) TableName() string {
	return "service_groups"
}

// LocalizedName picks the display name for a session locale.
// Falls back to the base name when the localized field is empty.
func (g *ServiceGroup) LocalizedName(locale string) string {
	var name string
	switch locale {
	case "en":
		name = g.NameEn
	case "ru":
		name = g.NameRu
	default: // "et" is the default locale
		name = g.NameEt
	}
	if name == "" {
		return g.Name
	}
	return name
}
