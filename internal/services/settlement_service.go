package services

import (
	"fmt"
	"log"
	"time"

	"github.com/HITECHSERVICE25/inventory-backend/internal/models"
	"github.com/HITECHSERVICE25/inventory-backend/internal/redis"
	"github.com/HITECHSERVICE25/inventory-backend/internal/repository"
	"github.com/shopspring/decimal"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderLineInput struct {
	ProductID            uint            `json:"product_id"`
	Quantity             int             `json:"quantity"`
	SalePrice            decimal.Decimal `json:"sale_price"`
	TechnicianPercentage float64         `json:"technician_percentage"`
}

type CompletionInput struct {
	Lines             []OrderLineInput `json:"lines"`
	MiscellaneousCost decimal.Decimal  `json:"miscellaneous_cost"`
	FittingCost       decimal.Decimal  `json:"fitting_cost"`
	Discount          models.Discount  `json:"discount"`
}

type PaymentInput struct {
	Amount    decimal.Decimal      `json:"amount"`
	Method    models.PaymentMethod `json:"method"`
	Reference string               `json:"reference"`
	Notes     string               `json:"notes"`
}

type AllocationInput struct {
	ProductID    uint   `json:"product_id"`
	TechnicianID uint   `json:"technician_id"`
	Quantity     int    `json:"quantity"`
	Notes        string `json:"notes"`
}

// SettlementService owns every mutation that spans more than one entity.
// Each operation runs in a single transaction and re-validates its guard
// condition on locked rows, so a stale pre-check can never commit.
type SettlementService interface {
	CompleteOrder(orderID uint, input CompletionInput) (*models.Order, error)
	ApproveDiscount(orderID, approverID uint, split models.DiscountSplit) (*models.Order, error)
	RejectDiscount(orderID, approverID uint) (*models.Order, error)
	RecordPayment(technicianID, receivedByID uint, input PaymentInput) (*models.Payment, error)
	AllocateProduct(input AllocationInput) (*models.AllocationLog, error)
	UpdateInstallationCharge(amount decimal.Decimal, updatedByID uint) (*models.InstallationCharge, error)
}

type settlementService struct {
	db       *gorm.DB
	cache    *redis.Client
	notifier *NotificationService
}

func NewSettlementService(db *gorm.DB, cache *redis.Client, notifier *NotificationService) SettlementService {
	return &settlementService{db: db, cache: cache, notifier: notifier}
}

func (s *settlementService) CompleteOrder(orderID uint, input CompletionInput) (*models.Order, error) {
	if len(input.Lines) == 0 {
		return nil, invalidField("lines", "at least one product line is required")
	}
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return nil, invalidField("lines.quantity", "quantity must be greater than zero")
		}
		if line.SalePrice.IsNegative() {
			return nil, invalidField("lines.sale_price", "sale price cannot be negative")
		}
	}
	if input.Discount.Value.IsNegative() {
		return nil, invalidField("discount.value", "discount value cannot be negative")
	}
	if input.MiscellaneousCost.IsNegative() || input.FittingCost.IsNegative() {
		return nil, invalidField("costs", "costs cannot be negative")
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, orderID).Error; err != nil {
			if repository.IsNotFound(err) {
				return fmt.Errorf("order %d: %w", orderID, ErrNotFound)
			}
			return fmt.Errorf("failed to lock order: %w", err)
		}
		if order.Status != models.OrderDraft {
			return fmt.Errorf("order %d is %s, only drafts can be completed: %w", orderID, order.Status, ErrWorkflowConflict)
		}

		var technician models.Technician
		if err := tx.First(&technician, order.TechnicianID).Error; err != nil {
			if repository.IsNotFound(err) {
				return fmt.Errorf("technician %d: %w", order.TechnicianID, ErrNotFound)
			}
			return fmt.Errorf("failed to load technician: %w", err)
		}

		lines := make([]models.OrderLine, 0, len(input.Lines))
		for _, in := range input.Lines {
			var product models.Product
			if err := tx.First(&product, in.ProductID).Error; err != nil {
				if repository.IsNotFound(err) {
					return fmt.Errorf("product %d: %w", in.ProductID, ErrNotFound)
				}
				return fmt.Errorf("failed to load product: %w", err)
			}
			lines = append(lines, models.OrderLine{
				OrderID:              order.ID,
				ProductID:            in.ProductID,
				Quantity:             in.Quantity,
				BasePrice:            product.Price,
				SalePrice:            in.SalePrice,
				TechnicianPercentage: in.TechnicianPercentage,
			})
		}

		order.Lines = lines
		order.MiscellaneousCost = input.MiscellaneousCost
		order.FittingCost = input.FittingCost
		order.Discount = input.Discount
		// Every completion routes through approval, even with zero
		// discount, so each order carries an explicit decision.
		order.Status = models.OrderPendingApproval
		order.DiscountApproved = models.DiscountPending
		now := time.Now()
		order.CompletionDate = &now

		catalog := NewCatalog(repository.NewProductRepository(tx), repository.NewCommissionRepository(tx))
		breakdown, err := CalculateFinancials(&order, &technician, catalog)
		if err != nil {
			return err
		}
		applyBreakdown(&order, breakdown)

		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderLine{}).Error; err != nil {
			return fmt.Errorf("failed to clear order lines: %w", err)
		}
		if err := tx.Create(&lines).Error; err != nil {
			return fmt.Errorf("failed to write order lines: %w", err)
		}
		order.Lines = lines
		if err := tx.Omit("Lines").Save(&order).Error; err != nil {
			return fmt.Errorf("failed to save completed order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.OrderSubmitted(&order)
	return &order, nil
}

func (s *settlementService) ApproveDiscount(orderID, approverID uint, split models.DiscountSplit) (*models.Order, error) {
	if err := validateSplit(split); err != nil {
		return nil, err
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, orderID).Error; err != nil {
			if repository.IsNotFound(err) {
				return fmt.Errorf("order %d: %w", orderID, ErrNotFound)
			}
			return fmt.Errorf("failed to lock order: %w", err)
		}
		if err := ensureDiscountPending(&order); err != nil {
			return err
		}

		var technician models.Technician
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&technician, order.TechnicianID).Error; err != nil {
			if repository.IsNotFound(err) {
				return fmt.Errorf("technician %d: %w", order.TechnicianID, ErrNotFound)
			}
			return fmt.Errorf("failed to lock technician: %w", err)
		}

		if err := tx.Where("order_id = ?", order.ID).Find(&order.Lines).Error; err != nil {
			return fmt.Errorf("failed to load order lines: %w", err)
		}

		order.DiscountSplit = split
		order.DiscountApproved = models.DiscountApproved
		order.DiscountApprovedByID = &approverID
		order.Status = models.OrderCompleted

		catalog := NewCatalog(repository.NewProductRepository(tx), repository.NewCommissionRepository(tx))
		breakdown, err := CalculateFinancials(&order, &technician, catalog)
		if err != nil {
			return err
		}
		applyBreakdown(&order, breakdown)

		if err := tx.Omit("Lines").Save(&order).Error; err != nil {
			return fmt.Errorf("failed to save approved order: %w", err)
		}

		// Settlement and balance move together or not at all.
		entry := models.LedgerEntry{
			TechnicianID: technician.ID,
			Kind:         models.LedgerOrderSettlement,
			Amount:       breakdown.OutstandingAmount,
			OrderID:      &order.ID,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to append ledger entry: %w", err)
		}

		technician.OutstandingBalance = technician.OutstandingBalance.Add(breakdown.OutstandingAmount)
		if split.TechnicianPercentage > 0 {
			technician.DueFromDiscounts = technician.DueFromDiscounts.Add(breakdown.TechnicianDiscountShare)
		}
		if err := tx.Save(&technician).Error; err != nil {
			return fmt.Errorf("failed to update technician balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.DiscountDecided(&order, "approved")
	return &order, nil
}

func (s *settlementService) RejectDiscount(orderID, approverID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, orderID).Error; err != nil {
			if repository.IsNotFound(err) {
				return fmt.Errorf("order %d: %w", orderID, ErrNotFound)
			}
			return fmt.Errorf("failed to lock order: %w", err)
		}
		if err := ensureDiscountPending(&order); err != nil {
			return err
		}

		var technician models.Technician
		if err := tx.First(&technician, order.TechnicianID).Error; err != nil {
			if repository.IsNotFound(err) {
				return fmt.Errorf("technician %d: %w", order.TechnicianID, ErrNotFound)
			}
			return fmt.Errorf("failed to load technician: %w", err)
		}
		if err := tx.Where("order_id = ?", order.ID).Find(&order.Lines).Error; err != nil {
			return fmt.Errorf("failed to load order lines: %w", err)
		}

		order.DiscountApprovedByID = &approverID
		catalog := NewCatalog(repository.NewProductRepository(tx), repository.NewCommissionRepository(tx))
		if err := applyRejection(&order, &technician, catalog); err != nil {
			return err
		}

		if err := tx.Omit("Lines").Save(&order).Error; err != nil {
			return fmt.Errorf("failed to save rejected order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.DiscountDecided(&order, "rejected")
	return &order, nil
}

func (s *settlementService) RecordPayment(technicianID, receivedByID uint, input PaymentInput) (*models.Payment, error) {
	if err := validatePayment(input); err != nil {
		return nil, err
	}

	var payment models.Payment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var technician models.Technician
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&technician, technicianID).Error; err != nil {
			if repository.IsNotFound(err) {
				return fmt.Errorf("technician %d: %w", technicianID, ErrNotFound)
			}
			return fmt.Errorf("failed to lock technician: %w", err)
		}
		if err := ensurePaymentWithinBalance(input.Amount, technician.OutstandingBalance); err != nil {
			return err
		}

		payment = models.Payment{
			TechnicianID: technicianID,
			Amount:       input.Amount,
			Method:       input.Method,
			Reference:    input.Reference,
			ReceivedByID: receivedByID,
			Status:       "collected",
			CollectedAt:  time.Now(),
			Notes:        input.Notes,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		entry := models.LedgerEntry{
			TechnicianID: technicianID,
			Kind:         models.LedgerPayment,
			Amount:       input.Amount.Neg(),
			PaymentID:    &payment.ID,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to append ledger entry: %w", err)
		}

		technician.OutstandingBalance = technician.OutstandingBalance.Sub(input.Amount)
		if err := tx.Save(&technician).Error; err != nil {
			return fmt.Errorf("failed to update technician balance: %w", err)
		}

		log.Printf("Payment of %s recorded for technician %d, new balance %s",
			input.Amount.StringFixed(2), technicianID, technician.OutstandingBalance.StringFixed(2))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *settlementService) AllocateProduct(input AllocationInput) (*models.AllocationLog, error) {
	if input.Quantity < 1 {
		return nil, invalidField("quantity", "minimum allocation quantity is 1")
	}

	var allocation models.AllocationLog
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, input.ProductID).Error; err != nil {
			if repository.IsNotFound(err) {
				return fmt.Errorf("product %d: %w", input.ProductID, ErrNotFound)
			}
			return fmt.Errorf("failed to lock product: %w", err)
		}

		var technician models.Technician
		if err := tx.First(&technician, input.TechnicianID).Error; err != nil {
			if repository.IsNotFound(err) {
				return fmt.Errorf("technician %d: %w", input.TechnicianID, ErrNotFound)
			}
			return fmt.Errorf("failed to load technician: %w", err)
		}

		if err := ensureStockAvailable(&product, input.Quantity); err != nil {
			return err
		}

		allocation = models.AllocationLog{
			ProductID:    input.ProductID,
			TechnicianID: input.TechnicianID,
			Quantity:     input.Quantity,
			AllocatedAt:  time.Now(),
			Notes:        input.Notes,
		}
		if err := tx.Create(&allocation).Error; err != nil {
			return fmt.Errorf("failed to create allocation log: %w", err)
		}

		product.AllocatedCount += input.Quantity
		if err := tx.Save(&product).Error; err != nil {
			return fmt.Errorf("failed to update product counts: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateProduct(input.ProductID)
	return &allocation, nil
}

func (s *settlementService) UpdateInstallationCharge(amount decimal.Decimal, updatedByID uint) (*models.InstallationCharge, error) {
	if amount.IsNegative() {
		return nil, invalidField("amount", "charge amount cannot be negative")
	}

	var charge models.InstallationCharge
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var previous models.InstallationCharge
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Order("effective_date DESC, id DESC").
			First(&previous).Error
		if err != nil && !repository.IsNotFound(err) {
			return fmt.Errorf("failed to lock current charge: %w", err)
		}

		charge = models.InstallationCharge{
			Amount:        amount,
			EffectiveDate: time.Now(),
			IsCurrent:     true,
			UpdatedByID:   updatedByID,
		}
		if err == nil {
			// The ordered locking read can hand back a stale head if
			// another rollover committed while we waited on the lock.
			var head models.InstallationCharge
			if err := tx.Order("effective_date DESC, id DESC").First(&head).Error; err != nil {
				return fmt.Errorf("failed to re-read current charge: %w", err)
			}
			if err := ensureChargeHead(&previous, &head); err != nil {
				return err
			}
			charge.PreviousVersionID = &previous.ID
			if previous.IsCurrent {
				if err := tx.Model(&previous).Update("is_current", false).Error; err != nil {
					return fmt.Errorf("failed to archive previous charge: %w", err)
				}
			}
		}
		if err := tx.Create(&charge).Error; err != nil {
			return fmt.Errorf("failed to create installation charge: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateCurrentCharge()
	log.Printf("Installation charge updated to %s by user %d", amount.StringFixed(2), updatedByID)
	return &charge, nil
}

// ensureDiscountPending is the guard for discount decisions; it must be
// evaluated on a row locked inside the deciding transaction.
func ensureDiscountPending(order *models.Order) error {
	if order.Status != models.OrderPendingApproval {
		return fmt.Errorf("order %d is %s, expected pending-approval: %w", order.ID, order.Status, ErrWorkflowConflict)
	}
	if order.DiscountApproved != models.DiscountPending {
		return fmt.Errorf("discount on order %d already %s: %w", order.ID, order.DiscountApproved, ErrWorkflowConflict)
	}
	return nil
}

// applyRejection marks the discount rejected and recomputes the order as
// if no discount was requested. The stored descriptor keeps its original
// value for audit display.
func applyRejection(order *models.Order, technician *models.Technician, catalog CatalogLookup) error {
	order.DiscountApproved = models.DiscountRejected
	order.DiscountSplit = models.DiscountSplit{OwnerPercentage: 100, TechnicianPercentage: 0}

	recompute := *order
	recompute.Discount = models.Discount{Kind: order.Discount.Kind, Value: decimal.Zero}
	breakdown, err := CalculateFinancials(&recompute, technician, catalog)
	if err != nil {
		return err
	}
	applyBreakdown(order, breakdown)
	return nil
}

func ensurePaymentWithinBalance(amount, balance decimal.Decimal) error {
	if amount.GreaterThan(balance) {
		return fmt.Errorf("amount %s exceeds outstanding balance %s: %w",
			amount.StringFixed(2), balance.StringFixed(2), ErrOverpaymentRejected)
	}
	return nil
}

func ensureStockAvailable(product *models.Product, quantity int) error {
	if product.AvailableCount() < quantity {
		return fmt.Errorf("available %d, requested %d: %w", product.AvailableCount(), quantity, ErrInsufficientStock)
	}
	return nil
}

// ensureChargeHead verifies that the locked charge row is still the
// newest version, so a concurrent rollover cannot chain two versions
// onto the same parent.
func ensureChargeHead(locked, head *models.InstallationCharge) error {
	if locked.ID != head.ID {
		return fmt.Errorf("installation charge changed concurrently: %w", ErrWorkflowConflict)
	}
	return nil
}

func validatePayment(input PaymentInput) error {
	if !input.Amount.IsPositive() {
		return invalidField("amount", "amount must be greater than zero")
	}
	switch input.Method {
	case models.PaymentCash, models.PaymentCheck, models.PaymentOnline, models.PaymentBankTransfer:
	default:
		return invalidField("method", "unknown payment method")
	}
	if input.Method != models.PaymentCash && input.Reference == "" {
		return invalidField("reference", "reference is required for non-cash payments")
	}
	return nil
}
