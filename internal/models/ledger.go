package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type LedgerEntryKind string

const (
	LedgerOrderSettlement LedgerEntryKind = "order_settlement"
	LedgerPayment         LedgerEntryKind = "payment"
)

// LedgerEntry is an append-only journal row. Settlements add positive
// amounts (money the technician owes the company), payments add negative
// ones. Technician.OutstandingBalance is the cached sum of these entries,
// updated in the same transaction that appends the row.
type LedgerEntry struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	TechnicianID uint            `json:"technician_id" gorm:"not null;index"`
	Kind         LedgerEntryKind `json:"kind" gorm:"not null"`
	Amount       decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"` // signed
	OrderID      *uint           `json:"order_id"`
	PaymentID    *uint           `json:"payment_id"`
	Notes        string          `json:"notes"`
	CreatedAt    time.Time       `json:"created_at"`
}
