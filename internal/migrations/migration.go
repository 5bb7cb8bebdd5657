package migrations

import (
	"log"
	"time"

	"github.com/HITECHSERVICE25/inventory-backend/internal/models"
	"github.com/HITECHSERVICE25/inventory-backend/internal/repository"
	"github.com/shopspring/decimal"

	"gorm.io/gorm"
)

// RunMigrations seeds the default data a fresh install needs. Schema
// creation itself happens through AutoMigrate at connection time.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	if err := createDefaultData(db); err != nil {
		log.Printf("Warning: Failed to create default data: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

// createDefaultData creates the admin user and the initial installation
// charge version.
func createDefaultData(db *gorm.DB) error {
	log.Println("Creating default data...")

	userRepo := repository.NewUserRepository(db)

	admin, err := userRepo.GetByUsername("admin")
	if err == nil && admin != nil {
		log.Println("Admin user already exists")
	} else {
		log.Println("Creating admin user...")
		admin = &models.User{
			Name:     "Administrator",
			Username: "admin",
			Email:    "admin@hitechservice.in",
			Role:     string(models.RoleAdmin),
			IsActive: true,
		}
		if err := userRepo.Create(admin); err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			log.Println("Admin user created successfully")
		}
	}

	installationRepo := repository.NewInstallationRepository(db)
	if _, err := installationRepo.GetCurrent(); err == nil {
		log.Println("Installation charge already configured")
		return nil
	}

	log.Println("Creating initial installation charge...")
	charge := &models.InstallationCharge{
		Amount:        decimal.NewFromInt(250),
		EffectiveDate: time.Now(),
		IsCurrent:     true,
		UpdatedByID:   admin.ID,
	}
	if err := db.Create(charge).Error; err != nil {
		log.Printf("Warning: Failed to create installation charge: %v", err)
		return err
	}

	log.Println("Default data created successfully!")
	return nil
}
