package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCheck        PaymentMethod = "check"
	PaymentOnline       PaymentMethod = "online"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

// Payment is an immutable record of money collected from a technician.
// Its balance effect is applied exactly once, in the recording transaction.
type Payment struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	TechnicianID uint            `json:"technician_id" gorm:"not null;index:idx_payment_tech_collected"`
	Amount       decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Method       PaymentMethod   `json:"method" gorm:"not null"`
	Reference    string          `json:"reference"` // required unless method is cash
	ReceivedByID uint            `json:"received_by_id" gorm:"not null"`
	Status       string          `json:"status" gorm:"default:'collected'"`
	CollectedAt  time.Time       `json:"collected_at" gorm:"index:idx_payment_tech_collected"`
	Notes        string          `json:"notes"`

	Technician *Technician `json:"technician,omitempty" gorm:"foreignKey:TechnicianID"`
	ReceivedBy *User       `json:"received_by,omitempty" gorm:"foreignKey:ReceivedByID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
