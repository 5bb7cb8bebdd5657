package repository

import (
	"github.com/HITECHSERVICE25/inventory-backend/internal/models"

	"gorm.io/gorm"
)

type AllocationRepository interface {
	List(productID, technicianID uint, offset, limit int) ([]models.AllocationLog, int64, error)
}

type allocationRepository struct {
	db *gorm.DB
}

func NewAllocationRepository(db *gorm.DB) AllocationRepository {
	return &allocationRepository{db: db}
}

func (r *allocationRepository) List(productID, technicianID uint, offset, limit int) ([]models.AllocationLog, int64, error) {
	var logs []models.AllocationLog
	var total int64

	build := func() *gorm.DB {
		query := r.db.Model(&models.AllocationLog{})
		if productID != 0 {
			query = query.Where("product_id = ?", productID)
		}
		if technicianID != 0 {
			query = query.Where("technician_id = ?", technicianID)
		}
		return query
	}

	if err := build().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := build().
		Preload("Product").
		Preload("Technician").
		Order("allocated_at DESC").
		Offset(offset).Limit(limit).
		Find(&logs).Error
	return logs, total, err
}
