package services

import (
	"fmt"
	"time"

	"github.com/HITECHSERVICE25/inventory-backend/internal/models"
	"github.com/HITECHSERVICE25/inventory-backend/internal/repository"
	"github.com/shopspring/decimal"
)

// CustomerInput mirrors the customer snapshot captured at order time.
type CustomerInput struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	AlternatePhone string `json:"alternate_phone"`
	Street         string `json:"street"`
	City           string `json:"city"`
	State          string `json:"state"`
	Pincode        string `json:"pincode"`
}

type CreateOrderInput struct {
	TCRNumber        string        `json:"tcr_number"`
	CompanyID        uint          `json:"company_id"`
	TechnicianID     uint          `json:"technician_id"`
	FreeInstallation bool          `json:"free_installation"`
	Remarks          string        `json:"remarks"`
	Customer         CustomerInput `json:"customer"`
}

// UpdateOrderInput is a partial merge; nil fields are left untouched.
type UpdateOrderInput struct {
	TCRNumber        *string        `json:"tcr_number"`
	CompanyID        *uint          `json:"company_id"`
	TechnicianID     *uint          `json:"technician_id"`
	FreeInstallation *bool          `json:"free_installation"`
	Remarks          *string        `json:"remarks"`
	Customer         *CustomerInput `json:"customer"`
}

type OrderService interface {
	CreateDraft(input CreateOrderInput) (*models.Order, error)
	UpdateDraft(id uint, input UpdateOrderInput) (*models.Order, error)
	GetOrder(id uint) (*models.Order, error)
	ListOrders(offset, limit int) ([]models.Order, int64, error)
	DeleteOrder(id uint) error
}

type orderService struct {
	orderRepo      repository.OrderRepository
	companyRepo    repository.CompanyRepository
	technicianRepo repository.TechnicianRepository
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	companyRepo repository.CompanyRepository,
	technicianRepo repository.TechnicianRepository,
) OrderService {
	return &orderService{
		orderRepo:      orderRepo,
		companyRepo:    companyRepo,
		technicianRepo: technicianRepo,
	}
}

func (s *orderService) CreateDraft(input CreateOrderInput) (*models.Order, error) {
	if err := validateCustomer(input.Customer); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.GetByID(input.CompanyID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("company %d: %w", input.CompanyID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load company: %w", err)
	}

	technician, err := s.technicianRepo.GetByID(input.TechnicianID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("technician %d: %w", input.TechnicianID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load technician: %w", err)
	}
	if technician.IsBlocked {
		return nil, invalidField("technician_id", "technician is blocked")
	}

	if input.TCRNumber != "" {
		if _, err := s.orderRepo.GetByTCRNumber(input.TCRNumber); err == nil {
			return nil, fmt.Errorf("tcr_number %q: %w", input.TCRNumber, ErrDuplicateKey)
		} else if !repository.IsNotFound(err) {
			return nil, fmt.Errorf("failed to check TCR number: %w", err)
		}
	}

	order := &models.Order{
		OrderDate:          time.Now(),
		CompanyID:          input.CompanyID,
		TechnicianID:       input.TechnicianID,
		FreeInstallation:   input.FreeInstallation,
		InstallationCharge: installationChargeFor(company, input.FreeInstallation),
		Remarks:            input.Remarks,
		Status:             models.OrderDraft,
		DiscountApproved:   models.DiscountPending,
		DiscountSplit:      models.DiscountSplit{OwnerPercentage: 100, TechnicianPercentage: 0},
		Customer:           customerFromInput(input.Customer),
	}
	if input.TCRNumber != "" {
		tcr := input.TCRNumber
		order.TCRNumber = &tcr
	}

	if err := s.orderRepo.Create(order); err != nil {
		// The TCR pre-check can lose a race to a concurrent create; the
		// unique index is the authoritative guard.
		if repository.IsDuplicate(err) {
			return nil, fmt.Errorf("tcr_number %q: %w", input.TCRNumber, ErrDuplicateKey)
		}
		return nil, fmt.Errorf("failed to create draft order: %w", err)
	}
	return s.orderRepo.GetByID(order.ID)
}

func (s *orderService) UpdateDraft(id uint, input UpdateOrderInput) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order.Status != models.OrderDraft {
		return nil, fmt.Errorf("order %d is %s, only drafts can be updated: %w", id, order.Status, ErrWorkflowConflict)
	}

	if input.TCRNumber != nil {
		if *input.TCRNumber == "" {
			order.TCRNumber = nil
		} else {
			if existing, err := s.orderRepo.GetByTCRNumber(*input.TCRNumber); err == nil && existing.ID != id {
				return nil, fmt.Errorf("tcr_number %q: %w", *input.TCRNumber, ErrDuplicateKey)
			}
			order.TCRNumber = input.TCRNumber
		}
	}
	if input.TechnicianID != nil {
		technician, err := s.technicianRepo.GetByID(*input.TechnicianID)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, fmt.Errorf("technician %d: %w", *input.TechnicianID, ErrNotFound)
			}
			return nil, fmt.Errorf("failed to load technician: %w", err)
		}
		if technician.IsBlocked {
			return nil, invalidField("technician_id", "technician is blocked")
		}
		order.TechnicianID = *input.TechnicianID
	}

	companyChanged := input.CompanyID != nil && *input.CompanyID != order.CompanyID
	freeChanged := input.FreeInstallation != nil && *input.FreeInstallation != order.FreeInstallation
	if companyChanged {
		order.CompanyID = *input.CompanyID
	}
	if input.FreeInstallation != nil {
		order.FreeInstallation = *input.FreeInstallation
	}
	if companyChanged || freeChanged {
		company, err := s.companyRepo.GetByID(order.CompanyID)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, fmt.Errorf("company %d: %w", order.CompanyID, ErrNotFound)
			}
			return nil, fmt.Errorf("failed to load company: %w", err)
		}
		order.InstallationCharge = installationChargeFor(company, order.FreeInstallation)
	}

	if input.Remarks != nil {
		order.Remarks = *input.Remarks
	}
	if input.Customer != nil {
		mergeCustomer(&order.Customer, *input.Customer)
		if err := validateCustomerInfo(order.Customer); err != nil {
			return nil, err
		}
	}

	// The conditional UPDATE re-checks the draft status so a concurrent
	// completion cannot be overwritten.
	if err := s.orderRepo.UpdateDraft(order, models.OrderDraft); err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("order %d is no longer a draft: %w", id, ErrWorkflowConflict)
		}
		if repository.IsDuplicate(err) {
			return nil, fmt.Errorf("tcr_number conflicts with another order: %w", ErrDuplicateKey)
		}
		return nil, fmt.Errorf("failed to update draft order: %w", err)
	}
	return s.orderRepo.GetByID(id)
}

func (s *orderService) GetOrder(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return order, nil
}

func (s *orderService) ListOrders(offset, limit int) ([]models.Order, int64, error) {
	return s.orderRepo.List(offset, limit)
}

func (s *orderService) DeleteOrder(id uint) error {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to load order: %w", err)
	}
	if order.Status == models.OrderCompleted {
		return fmt.Errorf("completed orders cannot be deleted: %w", ErrWorkflowConflict)
	}
	return s.orderRepo.Delete(id)
}

func installationChargeFor(company *models.Company, freeInstallation bool) decimal.Decimal {
	if freeInstallation {
		return decimal.Zero
	}
	return company.InstallationCharge
}

func customerFromInput(in CustomerInput) models.CustomerInfo {
	return models.CustomerInfo{
		Name:           in.Name,
		Phone:          in.Phone,
		AlternatePhone: in.AlternatePhone,
		Street:         in.Street,
		City:           in.City,
		State:          in.State,
		Pincode:        in.Pincode,
	}
}

func mergeCustomer(dst *models.CustomerInfo, in CustomerInput) {
	if in.Name != "" {
		dst.Name = in.Name
	}
	if in.Phone != "" {
		dst.Phone = in.Phone
	}
	if in.AlternatePhone != "" {
		dst.AlternatePhone = in.AlternatePhone
	}
	if in.Street != "" {
		dst.Street = in.Street
	}
	if in.City != "" {
		dst.City = in.City
	}
	if in.State != "" {
		dst.State = in.State
	}
	if in.Pincode != "" {
		dst.Pincode = in.Pincode
	}
}

func validateCustomer(in CustomerInput) error {
	return validateCustomerInfo(models.CustomerInfo{Name: in.Name, Phone: in.Phone, Pincode: in.Pincode})
}

func validateCustomerInfo(c models.CustomerInfo) error {
	if c.Name == "" {
		return invalidField("customer.name", "name is required")
	}
	if c.Phone == "" {
		return invalidField("customer.phone", "phone is required")
	}
	if c.Pincode == "" {
		return invalidField("customer.pincode", "pincode is required")
	}
	return nil
}
