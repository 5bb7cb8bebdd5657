package repository

import (
	"github.com/HITECHSERVICE25/inventory-backend/internal/models"
	"github.com/shopspring/decimal"

	"gorm.io/gorm"
)

type LedgerRepository interface {
	ListByTechnician(technicianID uint, offset, limit int) ([]models.LedgerEntry, int64, error)
	// SumByTechnician aggregates the signed journal; the result is what the
	// cached outstanding balance should equal.
	SumByTechnician(technicianID uint) (decimal.Decimal, error)
}

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) ListByTechnician(technicianID uint, offset, limit int) ([]models.LedgerEntry, int64, error) {
	var entries []models.LedgerEntry
	var total int64

	query := r.db.Model(&models.LedgerEntry{}).Where("technician_id = ?", technicianID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.
		Where("technician_id = ?", technicianID).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&entries).Error
	return entries, total, err
}

func (r *ledgerRepository) SumByTechnician(technicianID uint) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.Model(&models.LedgerEntry{}).
		Where("technician_id = ?", technicianID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}
