package database

import (
	"errors"
	"log"

	"btc-backoffice/config"
	"btc-backoffice/internal/models"
	"btc-backoffice/internal/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func SeedRolesAndAdmin() {
	roles := []string{"admin", "salesperson"}
	for _, r := range roles {
		var role models.Role
		if err := DB.FirstOrCreate(&role, models.Role{Name: r}).Error; err != nil {
			log.Printf("Failed to seed role %s: %v", r, err)
		}
	}

	var adminRole models.Role
	DB.Where("name = ?", "admin").First(&adminRole)

	var adminUser models.User
	if err := DB.Where("employee_id = ?", config.AppConfig.Defaults.AdminEmployeeID).First(&adminUser).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			hashedPassword, _ := utils.HashPassword(config.AppConfig.Defaults.AdminPassword)
			admin := models.User{
				EmployeeID:   config.AppConfig.Defaults.AdminEmployeeID,
				Username:     "Back Office Admin",
				PasswordHash: hashedPassword,
				RoleID:       adminRole.ID,
				IsActive:     true,
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("Failed to seed admin user: %v", err)
			} else {
				log.Println("Admin user seeded successfully.")
			}
		}
	}

	// The rate board needs a row to serve; start at zero so the warning flag
	// nudges the admin to set a real rate.
	var count int64
	DB.Model(&models.GoldRate{}).Count(&count)
	if count == 0 {
		if err := DB.Create(&models.GoldRate{Rate: decimal.Zero}).Error; err != nil {
			log.Printf("Failed to seed gold rate: %v", err)
		}
	}
}
