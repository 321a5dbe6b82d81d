package main

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"servicepro-server/models"
	"servicepro-server/utils"
)

// seedServiceGroups inserts the default catalog groups once.
func seedServiceGroups(db *gorm.DB, logger *zap.Logger) error {
	groups := []models.ServiceGroup{
		{
			Name:        "Kondiiter",
			NameEt:      "Kondiiter",
			NameEn:      "Confectionery",
			NameRu:      "Кондитер",
			Description: "Cakes, pastries and catering for events",
			IsActive:    true,
		},
		{
			Name:        "Ehitus",
			NameEt:      "Ehitus",
			NameEn:      "Construction",
			NameRu:      "Строительство",
			Description: "Renovation, carpentry and general construction work",
			IsActive:    true,
		},
		{
			Name:        "Koristus",
			NameEt:      "Koristus",
			NameEn:      "Cleaning",
			NameRu:      "Уборка",
			Description: "Home and office cleaning services",
			IsActive:    true,
		},
		{
			Name:        "IT abi",
			NameEt:      "IT abi",
			NameEn:      "IT help",
			NameRu:      "ИТ помощь",
			Description: "Computer setup, repair and troubleshooting",
			IsActive:    true,
		},
	}

	for _, group := range groups {
		var existing models.ServiceGroup
		err := db.Where("name = ?", group.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&group).Error; err != nil {
			return err
		}
		logger.Info("seeded service group", zap.String("name", group.Name))
	}
	return nil
}

// seedAdmin creates the initial admin account if no admin exists yet.
func seedAdmin(db *gorm.DB, logger *zap.Logger, password string) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	admin := models.User{
		Username:     "admin",
		Email:        "admin@servicepro.ee",
		PasswordHash: hash,
		FirstName:    "Site",
		LastName:     "Admin",
		Role:         models.RoleAdmin,
		IsApproved:   true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	logger.Info("seeded admin account", zap.String("username", admin.Username))
	return nil
}
