package services

import (
	"fmt"

	"github.com/HITECHSERVICE25/inventory-backend/internal/models"
	"github.com/HITECHSERVICE25/inventory-backend/internal/repository"
)

// PaymentService answers collection-history queries. Recording a payment
// is a settlement operation and lives on SettlementService.
type PaymentService interface {
	Get(id uint) (*models.Payment, error)
	ListByTechnician(technicianID uint, offset, limit int) ([]models.Payment, int64, error)
	List(filter repository.PaymentFilter, offset, limit int) ([]models.Payment, int64, error)
	TechniciansWithBalances(offset, limit int) ([]models.Technician, int64, error)
}

type paymentService struct {
	paymentRepo    repository.PaymentRepository
	technicianRepo repository.TechnicianRepository
}

func NewPaymentService(paymentRepo repository.PaymentRepository, technicianRepo repository.TechnicianRepository) PaymentService {
	return &paymentService{paymentRepo: paymentRepo, technicianRepo: technicianRepo}
}

func (s *paymentService) Get(id uint) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("payment %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}
	return payment, nil
}

func (s *paymentService) ListByTechnician(technicianID uint, offset, limit int) ([]models.Payment, int64, error) {
	if _, err := s.technicianRepo.GetByID(technicianID); err != nil {
		if repository.IsNotFound(err) {
			return nil, 0, fmt.Errorf("technician %d: %w", technicianID, ErrNotFound)
		}
		return nil, 0, fmt.Errorf("failed to load technician: %w", err)
	}
	return s.paymentRepo.ListByTechnician(technicianID, offset, limit)
}

func (s *paymentService) List(filter repository.PaymentFilter, offset, limit int) ([]models.Payment, int64, error) {
	return s.paymentRepo.ListAll(filter, offset, limit)
}

func (s *paymentService) TechniciansWithBalances(offset, limit int) ([]models.Technician, int64, error) {
	return s.technicianRepo.ListWithOutstanding(offset, limit)
}
