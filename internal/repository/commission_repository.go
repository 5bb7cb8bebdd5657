package repository

import (
	"github.com/HITECHSERVICE25/inventory-backend/internal/models"

	"gorm.io/gorm"
)

type CommissionRepository interface {
	Create(agreement *models.CommissionAgreement) error
	GetByID(id uint) (*models.CommissionAgreement, error)
	GetByPair(technicianID, productID uint) (*models.CommissionAgreement, error)
	List(technicianID uint, offset, limit int) ([]models.CommissionAgreement, int64, error)
	Update(agreement *models.CommissionAgreement) error
	Delete(id uint) error
}

type commissionRepository struct {
	db *gorm.DB
}

func NewCommissionRepository(db *gorm.DB) CommissionRepository {
	return &commissionRepository{db: db}
}

func (r *commissionRepository) Create(agreement *models.CommissionAgreement) error {
	return r.db.Create(agreement).Error
}

func (r *commissionRepository) GetByID(id uint) (*models.CommissionAgreement, error) {
	var agreement models.CommissionAgreement
	err := r.db.Preload("Technician").Preload("Product").First(&agreement, id).Error
	if err != nil {
		return nil, err
	}
	return &agreement, nil
}

func (r *commissionRepository) GetByPair(technicianID, productID uint) (*models.CommissionAgreement, error) {
	var agreement models.CommissionAgreement
	err := r.db.Where("technician_id = ? AND product_id = ?", technicianID, productID).First(&agreement).Error
	if err != nil {
		return nil, err
	}
	return &agreement, nil
}

func (r *commissionRepository) List(technicianID uint, offset, limit int) ([]models.CommissionAgreement, int64, error) {
	var agreements []models.CommissionAgreement
	var total int64

	query := r.db.Model(&models.CommissionAgreement{})
	if technicianID != 0 {
		query = query.Where("technician_id = ?", technicianID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := r.db.Preload("Technician").Preload("Product")
	if technicianID != 0 {
		listQuery = listQuery.Where("technician_id = ?", technicianID)
	}
	err := listQuery.Order("created_at DESC").Offset(offset).Limit(limit).Find(&agreements).Error
	return agreements, total, err
}

func (r *commissionRepository) Update(agreement *models.CommissionAgreement) error {
	return r.db.Save(agreement).Error
}

func (r *commissionRepository) Delete(id uint) error {
	result := r.db.Delete(&models.CommissionAgreement{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
