package services

import (
	"fmt"

	"github.com/HITECHSERVICE25/inventory-backend/internal/models"
	"github.com/HITECHSERVICE25/inventory-backend/internal/repository"
	"github.com/shopspring/decimal"
)

type CreateTechnicianInput struct {
	Name        string          `json:"name"`
	Phone       string          `json:"phone"`
	Email       string          `json:"email"`
	Aadhaar     string          `json:"aadhaar"`
	PAN         string          `json:"pan"`
	ServiceRate decimal.Decimal `json:"service_rate"`
	MiscShare   float64         `json:"misc_share"`
	Address     models.Address  `json:"address"`
	CompanyIDs  []uint          `json:"company_ids"`
}

type UpdateTechnicianInput struct {
	Name        *string          `json:"name"`
	Phone       *string          `json:"phone"`
	Email       *string          `json:"email"`
	ServiceRate *decimal.Decimal `json:"service_rate"`
	MiscShare   *float64         `json:"misc_share"`
	Address     *models.Address  `json:"address"`
}

// BalanceReport compares the cached outstanding balance against the
// ledger journal, which is the source of truth.
type BalanceReport struct {
	TechnicianID  uint            `json:"technician_id"`
	CachedBalance decimal.Decimal `json:"cached_balance"`
	LedgerBalance decimal.Decimal `json:"ledger_balance"`
	Drift         decimal.Decimal `json:"drift"`
	Consistent    bool            `json:"consistent"`
}

type TechnicianService interface {
	Create(input CreateTechnicianInput) (*models.Technician, error)
	Get(id uint) (*models.Technician, error)
	List(search string, offset, limit int) ([]models.Technician, int64, error)
	Update(id uint, input UpdateTechnicianInput) (*models.Technician, error)
	SetBlocked(id uint, blocked bool) error
	Delete(id uint) error
	Ledger(id uint, offset, limit int) ([]models.LedgerEntry, int64, error)
	ReconcileBalance(id uint) (*BalanceReport, error)
}

type technicianService struct {
	technicianRepo repository.TechnicianRepository
	ledgerRepo     repository.LedgerRepository
}

func NewTechnicianService(technicianRepo repository.TechnicianRepository, ledgerRepo repository.LedgerRepository) TechnicianService {
	return &technicianService{technicianRepo: technicianRepo, ledgerRepo: ledgerRepo}
}

func (s *technicianService) Create(input CreateTechnicianInput) (*models.Technician, error) {
	if input.Name == "" {
		return nil, invalidField("name", "name is required")
	}
	if input.Phone == "" {
		return nil, invalidField("phone", "phone is required")
	}
	if input.ServiceRate.IsNegative() {
		return nil, invalidField("service_rate", "service rate cannot be negative")
	}
	if input.MiscShare < 0 || input.MiscShare > 100 {
		return nil, invalidField("misc_share", "misc share must be between 0 and 100")
	}

	technician := &models.Technician{
		Name:        input.Name,
		Phone:       input.Phone,
		Email:       input.Email,
		Aadhaar:     input.Aadhaar,
		PAN:         input.PAN,
		ServiceRate: input.ServiceRate,
		MiscShare:   input.MiscShare,
		Address:     input.Address,
	}
	for _, companyID := range input.CompanyIDs {
		technician.Companies = append(technician.Companies, models.Company{ID: companyID})
	}

	if err := s.technicianRepo.Create(technician); err != nil {
		if repository.IsDuplicate(err) {
			return nil, fmt.Errorf("phone, email or tax identifier already registered: %w", ErrDuplicateKey)
		}
		return nil, fmt.Errorf("failed to create technician: %w", err)
	}
	return s.technicianRepo.GetByID(technician.ID)
}

func (s *technicianService) Get(id uint) (*models.Technician, error) {
	technician, err := s.technicianRepo.GetByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("technician %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load technician: %w", err)
	}
	return technician, nil
}

func (s *technicianService) List(search string, offset, limit int) ([]models.Technician, int64, error) {
	return s.technicianRepo.List(search, offset, limit)
}

func (s *technicianService) Update(id uint, input UpdateTechnicianInput) (*models.Technician, error) {
	technician, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, invalidField("name", "name is required")
		}
		technician.Name = *input.Name
	}
	if input.Phone != nil {
		if *input.Phone == "" {
			return nil, invalidField("phone", "phone is required")
		}
		technician.Phone = *input.Phone
	}
	if input.Email != nil {
		technician.Email = *input.Email
	}
	if input.ServiceRate != nil {
		if input.ServiceRate.IsNegative() {
			return nil, invalidField("service_rate", "service rate cannot be negative")
		}
		technician.ServiceRate = *input.ServiceRate
	}
	if input.MiscShare != nil {
		if *input.MiscShare < 0 || *input.MiscShare > 100 {
			return nil, invalidField("misc_share", "misc share must be between 0 and 100")
		}
		technician.MiscShare = *input.MiscShare
	}
	if input.Address != nil {
		technician.Address = *input.Address
	}

	if err := s.technicianRepo.Update(technician); err != nil {
		if repository.IsDuplicate(err) {
			return nil, fmt.Errorf("phone or email already registered: %w", ErrDuplicateKey)
		}
		return nil, fmt.Errorf("failed to update technician: %w", err)
	}
	return s.technicianRepo.GetByID(id)
}

func (s *technicianService) SetBlocked(id uint, blocked bool) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.technicianRepo.SetBlocked(id, blocked)
}

func (s *technicianService) Delete(id uint) error {
	technician, err := s.Get(id)
	if err != nil {
		return err
	}
	if !technician.OutstandingBalance.IsZero() {
		return fmt.Errorf("technician %d still owes %s: %w",
			id, technician.OutstandingBalance.StringFixed(2), ErrWorkflowConflict)
	}
	return s.technicianRepo.Delete(id)
}

func (s *technicianService) Ledger(id uint, offset, limit int) ([]models.LedgerEntry, int64, error) {
	if _, err := s.Get(id); err != nil {
		return nil, 0, err
	}
	return s.ledgerRepo.ListByTechnician(id, offset, limit)
}

func (s *technicianService) ReconcileBalance(id uint) (*BalanceReport, error) {
	technician, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	ledgerSum, err := s.ledgerRepo.SumByTechnician(id)
	if err != nil {
		return nil, fmt.Errorf("failed to sum ledger entries: %w", err)
	}

	drift := technician.OutstandingBalance.Sub(ledgerSum)
	return &BalanceReport{
		TechnicianID:  id,
		CachedBalance: technician.OutstandingBalance,
		LedgerBalance: ledgerSum,
		Drift:         drift,
		Consistent:    drift.IsZero(),
	}, nil
}
