package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstallationCharge is a versioned value object. Each update inserts a new
// row referencing the previous one; the current version is the row with the
// latest effective date. IsCurrent marks that row for history display; the
// partial unique index keeps concurrent rollovers from leaving two rows
// flagged current.
type InstallationCharge struct {
	ID                uint            `json:"id" gorm:"primaryKey"`
	Amount            decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	EffectiveDate     time.Time       `json:"effective_date" gorm:"not null;index"`
	IsCurrent         bool            `json:"is_current" gorm:"default:true;uniqueIndex:idx_installation_charges_current,where:is_current"`
	UpdatedByID       uint            `json:"updated_by_id" gorm:"not null"`
	PreviousVersionID *uint           `json:"previous_version_id"`

	UpdatedBy       *User               `json:"updated_by,omitempty" gorm:"foreignKey:UpdatedByID"`
	PreviousVersion *InstallationCharge `json:"previous_version,omitempty" gorm:"foreignKey:PreviousVersionID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
