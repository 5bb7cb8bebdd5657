package services

import (
	"fmt"

	"github.com/HITECHSERVICE25/inventory-backend/internal/models"
	"github.com/HITECHSERVICE25/inventory-backend/internal/repository"
	"github.com/shopspring/decimal"
)

type CommissionInput struct {
	TechnicianID uint            `json:"technician_id"`
	ProductID    uint            `json:"product_id"`
	Amount       decimal.Decimal `json:"amount"`
}

type CommissionService interface {
	Create(input CommissionInput) (*models.CommissionAgreement, error)
	Update(id uint, amount decimal.Decimal) (*models.CommissionAgreement, error)
	List(technicianID uint, offset, limit int) ([]models.CommissionAgreement, int64, error)
	Delete(id uint) error
}

type commissionService struct {
	commissionRepo repository.CommissionRepository
	technicianRepo repository.TechnicianRepository
	productRepo    repository.ProductRepository
}

func NewCommissionService(
	commissionRepo repository.CommissionRepository,
	technicianRepo repository.TechnicianRepository,
	productRepo repository.ProductRepository,
) CommissionService {
	return &commissionService{
		commissionRepo: commissionRepo,
		technicianRepo: technicianRepo,
		productRepo:    productRepo,
	}
}

// Create registers the per-unit commission for a technician/product pair.
// At most one agreement per pair; an existing one must be updated or
// deleted, never silently replaced.
func (s *commissionService) Create(input CommissionInput) (*models.CommissionAgreement, error) {
	if input.Amount.IsNegative() {
		return nil, invalidField("amount", "commission amount cannot be negative")
	}
	if _, err := s.technicianRepo.GetByID(input.TechnicianID); err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("technician %d: %w", input.TechnicianID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load technician: %w", err)
	}
	if _, err := s.productRepo.GetByID(input.ProductID); err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("product %d: %w", input.ProductID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	if _, err := s.commissionRepo.GetByPair(input.TechnicianID, input.ProductID); err == nil {
		return nil, fmt.Errorf("agreement for technician %d product %d: %w",
			input.TechnicianID, input.ProductID, ErrDuplicateKey)
	} else if !repository.IsNotFound(err) {
		return nil, fmt.Errorf("failed to check commission agreement: %w", err)
	}

	agreement := &models.CommissionAgreement{
		TechnicianID: input.TechnicianID,
		ProductID:    input.ProductID,
		Amount:       input.Amount,
	}
	if err := s.commissionRepo.Create(agreement); err != nil {
		// The pair pre-check can lose a race; the unique index on
		// (technician_id, product_id) is the authoritative guard.
		if repository.IsDuplicate(err) {
			return nil, fmt.Errorf("agreement for technician %d product %d: %w",
				input.TechnicianID, input.ProductID, ErrDuplicateKey)
		}
		return nil, fmt.Errorf("failed to create commission agreement: %w", err)
	}
	return agreement, nil
}

func (s *commissionService) Update(id uint, amount decimal.Decimal) (*models.CommissionAgreement, error) {
	if amount.IsNegative() {
		return nil, invalidField("amount", "commission amount cannot be negative")
	}

	agreement, err := s.commissionRepo.GetByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("commission agreement %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load commission agreement: %w", err)
	}

	agreement.Amount = amount
	if err := s.commissionRepo.Update(agreement); err != nil {
		return nil, fmt.Errorf("failed to update commission agreement: %w", err)
	}
	return agreement, nil
}

func (s *commissionService) List(technicianID uint, offset, limit int) ([]models.CommissionAgreement, int64, error) {
	return s.commissionRepo.List(technicianID, offset, limit)
}

func (s *commissionService) Delete(id uint) error {
	if err := s.commissionRepo.Delete(id); err != nil {
		if repository.IsNotFound(err) {
			return fmt.Errorf("commission agreement %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to delete commission agreement: %w", err)
	}
	return nil
}
