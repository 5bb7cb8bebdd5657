package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	Name           string          `json:"name" gorm:"not null;index"`
	UnitOfMeasure  string          `json:"unit_of_measure" gorm:"not null"`
	Price          decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	TotalCount     int             `json:"total_count" gorm:"not null"`
	AllocatedCount int             `json:"allocated_count" gorm:"default:0"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `json:"deleted_at" gorm:"index"`
}

// AvailableCount is derived; it must never go negative because allocations
// are guarded inside the allocation transaction.
func (p *Product) AvailableCount() int {
	return p.TotalCount - p.AllocatedCount
}
