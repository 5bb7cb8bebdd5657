package services

import (
	"fmt"

	"github.com/HITECHSERVICE25/inventory-backend/internal/models"
	"github.com/HITECHSERVICE25/inventory-backend/internal/repository"
	"github.com/shopspring/decimal"
)

type CompanyInput struct {
	Name               string          `json:"name"`
	InstallationCharge decimal.Decimal `json:"installation_charge"`
}

type CompanyService interface {
	Create(input CompanyInput) (*models.Company, error)
	Get(id uint) (*models.Company, error)
	List() ([]models.Company, error)
	Update(id uint, input CompanyInput) (*models.Company, error)
	Delete(id uint) error
}

type companyService struct {
	companyRepo repository.CompanyRepository
}

func NewCompanyService(companyRepo repository.CompanyRepository) CompanyService {
	return &companyService{companyRepo: companyRepo}
}

func (s *companyService) Create(input CompanyInput) (*models.Company, error) {
	if err := validateCompany(input); err != nil {
		return nil, err
	}

	company := &models.Company{
		Name:               input.Name,
		InstallationCharge: input.InstallationCharge,
	}
	if err := s.companyRepo.Create(company); err != nil {
		if repository.IsDuplicate(err) {
			return nil, fmt.Errorf("company name %q: %w", input.Name, ErrDuplicateKey)
		}
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return company, nil
}

func (s *companyService) Get(id uint) (*models.Company, error) {
	company, err := s.companyRepo.GetByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("company %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load company: %w", err)
	}
	return company, nil
}

func (s *companyService) List() ([]models.Company, error) {
	return s.companyRepo.GetAll()
}

func (s *companyService) Update(id uint, input CompanyInput) (*models.Company, error) {
	company, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := validateCompany(input); err != nil {
		return nil, err
	}

	company.Name = input.Name
	company.InstallationCharge = input.InstallationCharge
	if err := s.companyRepo.Update(company); err != nil {
		if repository.IsDuplicate(err) {
			return nil, fmt.Errorf("company name %q: %w", input.Name, ErrDuplicateKey)
		}
		return nil, fmt.Errorf("failed to update company: %w", err)
	}
	return company, nil
}

func (s *companyService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.companyRepo.Delete(id)
}

func validateCompany(input CompanyInput) error {
	if input.Name == "" {
		return invalidField("name", "name is required")
	}
	if input.InstallationCharge.IsNegative() {
		return invalidField("installation_charge", "installation charge cannot be negative")
	}
	return nil
}
