package services

import (
	"fmt"
	"log"

	"github.com/HITECHSERVICE25/inventory-backend/internal/models"
	"github.com/HITECHSERVICE25/inventory-backend/internal/redis"
	"github.com/HITECHSERVICE25/inventory-backend/internal/repository"
)

// InstallationService reads the versioned default installation charge.
// Creating a new version is a settlement operation.
type InstallationService interface {
	Current() (*models.InstallationCharge, error)
	History() ([]models.InstallationCharge, error)
}

type installationService struct {
	installationRepo repository.InstallationRepository
	cache            *redis.Client
}

func NewInstallationService(installationRepo repository.InstallationRepository, cache *redis.Client) InstallationService {
	return &installationService{installationRepo: installationRepo, cache: cache}
}

func (s *installationService) Current() (*models.InstallationCharge, error) {
	if cached, ok := s.cache.GetCurrentCharge(); ok {
		return cached, nil
	}

	charge, err := s.installationRepo.GetCurrent()
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("no installation charge configured: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load installation charge: %w", err)
	}

	if err := s.cache.SetCurrentCharge(charge); err != nil {
		log.Printf("Failed to cache installation charge: %v", err)
	}
	return charge, nil
}

func (s *installationService) History() ([]models.InstallationCharge, error) {
	return s.installationRepo.GetHistory()
}
