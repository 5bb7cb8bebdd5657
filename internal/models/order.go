package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderDraft           OrderStatus = "draft"
	OrderPendingApproval OrderStatus = "pending-approval"
	OrderCompleted       OrderStatus = "completed"
)

type DiscountState string

const (
	DiscountPending  DiscountState = "pending"
	DiscountApproved DiscountState = "approved"
	DiscountRejected DiscountState = "rejected"
)

type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountFixed      DiscountKind = "amount"
)

// Discount descriptor as submitted at completion time. Preserved unchanged
// after rejection so the requested discount stays visible for audit.
type Discount struct {
	Kind  DiscountKind    `json:"kind" gorm:"default:'percentage'"`
	Value decimal.Decimal `json:"value" gorm:"type:decimal(12,2);default:0"`
}

// DiscountSplit apportions an approved discount's cost between the company
// owner and the technician. Percentages must total 100.
type DiscountSplit struct {
	OwnerPercentage      float64 `json:"owner_percentage" gorm:"default:100"`
	TechnicianPercentage float64 `json:"technician_percentage" gorm:"default:0"`
}

// CustomerInfo is a snapshot captured at order time, not a registry entity.
type CustomerInfo struct {
	Name           string `json:"name" gorm:"not null"`
	Phone          string `json:"phone" gorm:"not null"`
	AlternatePhone string `json:"alternate_phone"`
	Street         string `json:"street"`
	City           string `json:"city"`
	State          string `json:"state"`
	Pincode        string `json:"pincode" gorm:"not null"`
}

type OrderLine struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	OrderID   uint `json:"order_id" gorm:"not null;index"`
	ProductID uint `json:"product_id" gorm:"not null"`
	Quantity  int  `json:"quantity" gorm:"not null"`

	// BasePrice is the catalog price snapshotted at completion time.
	// SalePrice, when positive, overrides it.
	BasePrice            decimal.Decimal `json:"base_price" gorm:"type:decimal(12,2)"`
	SalePrice            decimal.Decimal `json:"sale_price" gorm:"type:decimal(12,2);default:0"`
	TechnicianPercentage float64         `json:"technician_percentage" gorm:"default:0"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// EffectivePrice is the per-unit price used for settlement.
func (l *OrderLine) EffectivePrice() decimal.Decimal {
	if l.SalePrice.IsPositive() {
		return l.SalePrice
	}
	return l.BasePrice
}

type Order struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	TCRNumber      *string    `json:"tcr_number" gorm:"uniqueIndex:idx_orders_tcr_number,where:deleted_at IS NULL"`
	OrderDate      time.Time  `json:"order_date"`
	CompletionDate *time.Time `json:"completion_date"`
	Remarks        string     `json:"remarks"`

	CompanyID    uint        `json:"company_id" gorm:"not null"`
	TechnicianID uint        `json:"technician_id" gorm:"not null"`
	Company      *Company    `json:"company,omitempty" gorm:"foreignKey:CompanyID"`
	Technician   *Technician `json:"technician,omitempty" gorm:"foreignKey:TechnicianID"`

	// Cost inputs. InstallationCharge is snapshotted from the company at
	// draft time, zero when FreeInstallation is set.
	InstallationCharge decimal.Decimal `json:"installation_charge" gorm:"type:decimal(12,2);default:0"`
	FreeInstallation   bool            `json:"free_installation" gorm:"default:false"`
	MiscellaneousCost  decimal.Decimal `json:"miscellaneous_cost" gorm:"type:decimal(12,2);default:0"`
	FittingCost        decimal.Decimal `json:"fitting_cost" gorm:"type:decimal(12,2);default:0"`

	Discount             Discount      `json:"discount" gorm:"embedded;embeddedPrefix:discount_"`
	DiscountApproved     DiscountState `json:"discount_approved" gorm:"default:'pending'"`
	DiscountSplit        DiscountSplit `json:"discount_split" gorm:"embedded;embeddedPrefix:split_"`
	DiscountApprovedByID *uint         `json:"discount_approved_by_id"`
	DiscountApprovedBy   *User         `json:"discount_approved_by,omitempty" gorm:"foreignKey:DiscountApprovedByID"`

	Lines []OrderLine `json:"lines" gorm:"foreignKey:OrderID"`

	// Derived financials; written only from calculator output.
	Subtotal          decimal.Decimal `json:"subtotal" gorm:"type:decimal(12,2);default:0"`
	TotalAmount       decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2);default:0"`
	DiscountAmount    decimal.Decimal `json:"discount_amount" gorm:"type:decimal(12,2);default:0"`
	NetAmount         decimal.Decimal `json:"net_amount" gorm:"type:decimal(12,2);default:0"`
	TechnicianCut     decimal.Decimal `json:"technician_cut" gorm:"type:decimal(12,2);default:0"`
	CompanyCut        decimal.Decimal `json:"company_cut" gorm:"type:decimal(12,2);default:0"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount" gorm:"type:decimal(12,2);default:0"`

	Status OrderStatus `json:"status" gorm:"default:'draft';index"`

	Customer CustomerInfo `json:"customer" gorm:"embedded;embeddedPrefix:customer_"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
