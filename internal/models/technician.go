package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

type Technician struct {
	ID      uint    `json:"id" gorm:"primaryKey"`
	Name    string  `json:"name" gorm:"not null"`
	Phone   string  `json:"phone" gorm:"unique;not null"`
	Email   string  `json:"email" gorm:"unique;not null"`
	Address Address `json:"address" gorm:"embedded;embeddedPrefix:address_"`

	// Tax identifiers
	Aadhaar string `json:"aadhaar" gorm:"unique;not null"`
	PAN     string `json:"pan" gorm:"unique;not null"`

	// Flat per-order service rate and share of miscellaneous cost revenue.
	ServiceRate decimal.Decimal `json:"service_rate" gorm:"type:decimal(12,2);not null"`
	MiscShare   float64         `json:"misc_share" gorm:"default:0"` // percentage

	Companies []Company `json:"companies,omitempty" gorm:"many2many:technician_companies"`
	IsBlocked bool      `json:"is_blocked" gorm:"default:false"`

	// Cached ledger aggregates. Mutated only inside settlement transactions,
	// alongside a LedgerEntry row; reconcilable against the journal sum.
	OutstandingBalance decimal.Decimal `json:"outstanding_balance" gorm:"type:decimal(12,2);default:0"`
	DueFromDiscounts   decimal.Decimal `json:"due_from_discounts" gorm:"type:decimal(12,2);default:0"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
