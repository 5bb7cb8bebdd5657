package repository

import (
	"github.com/HITECHSERVICE25/inventory-backend/internal/models"

	"gorm.io/gorm"
)

type TechnicianRepository interface {
	Create(technician *models.Technician) error
	GetByID(id uint) (*models.Technician, error)
	List(search string, offset, limit int) ([]models.Technician, int64, error)
	ListWithOutstanding(offset, limit int) ([]models.Technician, int64, error)
	Update(technician *models.Technician) error
	SetBlocked(id uint, blocked bool) error
	Delete(id uint) error
}

type technicianRepository struct {
	db *gorm.DB
}

func NewTechnicianRepository(db *gorm.DB) TechnicianRepository {
	return &technicianRepository{db: db}
}

func (r *technicianRepository) Create(technician *models.Technician) error {
	return r.db.Create(technician).Error
}

func (r *technicianRepository) GetByID(id uint) (*models.Technician, error) {
	var technician models.Technician
	err := r.db.Preload("Companies").First(&technician, id).Error
	if err != nil {
		return nil, err
	}
	return &technician, nil
}

func (r *technicianRepository) List(search string, offset, limit int) ([]models.Technician, int64, error) {
	var technicians []models.Technician
	var total int64

	query := r.db.Model(&models.Technician{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR phone ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("name ASC").Offset(offset).Limit(limit).Find(&technicians).Error
	return technicians, total, err
}

func (r *technicianRepository) ListWithOutstanding(offset, limit int) ([]models.Technician, int64, error) {
	var technicians []models.Technician
	var total int64

	query := r.db.Model(&models.Technician{}).Where("outstanding_balance > 0")
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.
		Where("outstanding_balance > 0").
		Order("outstanding_balance DESC").
		Offset(offset).Limit(limit).
		Find(&technicians).Error
	return technicians, total, err
}

func (r *technicianRepository) Update(technician *models.Technician) error {
	return r.db.Save(technician).Error
}

func (r *technicianRepository) SetBlocked(id uint, blocked bool) error {
	result := r.db.Model(&models.Technician{}).Where("id = ?", id).Update("is_blocked", blocked)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *technicianRepository) Delete(id uint) error {
	return r.db.Delete(&models.Technician{}, id).Error
}
