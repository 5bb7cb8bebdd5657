package repository

import (
	"github.com/HITECHSERVICE25/inventory-backend/internal/models"

	"gorm.io/gorm"
)

type InstallationRepository interface {
	// GetCurrent derives the live version from the latest effective date
	// rather than trusting the is_current flag.
	GetCurrent() (*models.InstallationCharge, error)
	GetHistory() ([]models.InstallationCharge, error)
}

type installationRepository struct {
	db *gorm.DB
}

func NewInstallationRepository(db *gorm.DB) InstallationRepository {
	return &installationRepository{db: db}
}

func (r *installationRepository) GetCurrent() (*models.InstallationCharge, error) {
	var charge models.InstallationCharge
	err := r.db.Preload("UpdatedBy").Order("effective_date DESC, id DESC").First(&charge).Error
	if err != nil {
		return nil, err
	}
	return &charge, nil
}

func (r *installationRepository) GetHistory() ([]models.InstallationCharge, error) {
	var charges []models.InstallationCharge
	err := r.db.Preload("UpdatedBy").Order("effective_date DESC, id DESC").Find(&charges).Error
	return charges, err
}
