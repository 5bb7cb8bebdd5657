package repository

import (
	"time"

	"github.com/HITECHSERVICE25/inventory-backend/internal/models"

	"gorm.io/gorm"
)

// PaymentFilter narrows ListAll. Zero values are ignored.
type PaymentFilter struct {
	TechnicianID uint
	Method       models.PaymentMethod
	StartDate    *time.Time
	EndDate      *time.Time
}

type PaymentRepository interface {
	GetByID(id uint) (*models.Payment, error)
	ListByTechnician(technicianID uint, offset, limit int) ([]models.Payment, int64, error)
	ListAll(filter PaymentFilter, offset, limit int) ([]models.Payment, int64, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) GetByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Preload("Technician").Preload("ReceivedBy").First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) ListByTechnician(technicianID uint, offset, limit int) ([]models.Payment, int64, error) {
	var payments []models.Payment
	var total int64

	query := r.db.Model(&models.Payment{}).Where("technician_id = ?", technicianID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.
		Where("technician_id = ?", technicianID).
		Preload("ReceivedBy").
		Order("collected_at DESC").
		Offset(offset).Limit(limit).
		Find(&payments).Error
	return payments, total, err
}

func (r *paymentRepository) ListAll(filter PaymentFilter, offset, limit int) ([]models.Payment, int64, error) {
	var payments []models.Payment
	var total int64

	build := func() *gorm.DB {
		query := r.db.Model(&models.Payment{})
		if filter.TechnicianID != 0 {
			query = query.Where("technician_id = ?", filter.TechnicianID)
		}
		if filter.Method != "" {
			query = query.Where("method = ?", filter.Method)
		}
		if filter.StartDate != nil {
			query = query.Where("collected_at >= ?", *filter.StartDate)
		}
		if filter.EndDate != nil {
			query = query.Where("collected_at <= ?", *filter.EndDate)
		}
		return query
	}

	if err := build().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := build().
		Preload("Technician").
		Preload("ReceivedBy").
		Order("collected_at DESC").
		Offset(offset).Limit(limit).
		Find(&payments).Error
	return payments, total, err
}
