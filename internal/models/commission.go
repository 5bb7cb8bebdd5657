package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionAgreement maps a (technician, product) pair to a flat per-unit
// commission amount. At most one agreement per pair.
type CommissionAgreement struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	TechnicianID uint            `json:"technician_id" gorm:"not null;uniqueIndex:idx_commission_pair"`
	ProductID    uint            `json:"product_id" gorm:"not null;uniqueIndex:idx_commission_pair"`
	Amount       decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Technician   *Technician     `json:"technician,omitempty" gorm:"foreignKey:TechnicianID"`
	Product      *Product        `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
