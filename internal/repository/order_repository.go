package repository

import (
	"errors"

	"github.com/HITECHSERVICE25/inventory-backend/internal/models"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByTCRNumber(tcr string) (*models.Order, error)
	List(offset, limit int) ([]models.Order, int64, error)
	ListByTechnician(technicianID uint, offset, limit int) ([]models.Order, int64, error)
	// UpdateDraft persists order fields only while the stored status still
	// matches fromStatus; the conditional UPDATE closes the race between
	// the caller's status check and the write.
	UpdateDraft(order *models.Order, fromStatus models.OrderStatus) error
	Delete(id uint) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.
		Preload("Company").
		Preload("Technician").
		Preload("Lines.Product").
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByTCRNumber(tcr string) (*models.Order, error) {
	var order models.Order
	err := r.db.Where("tcr_number = ?", tcr).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(offset, limit int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	if err := r.db.Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.
		Preload("Company").
		Preload("Technician").
		Preload("Lines.Product").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	return orders, total, err
}

func (r *orderRepository) ListByTechnician(technicianID uint, offset, limit int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := r.db.Model(&models.Order{}).Where("technician_id = ?", technicianID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.
		Where("technician_id = ?", technicianID).
		Preload("Lines.Product").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	return orders, total, err
}

func (r *orderRepository) UpdateDraft(order *models.Order, fromStatus models.OrderStatus) error {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, fromStatus).
		Select("tcr_number", "company_id", "technician_id", "remarks", "installation_charge", "free_installation",
			"customer_name", "customer_phone", "customer_alternate_phone",
			"customer_street", "customer_city", "customer_state", "customer_pincode").
		Updates(order)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *orderRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderLine{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Order{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// IsNotFound reports whether err is gorm's missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate reports whether err is a translated unique-constraint
// violation. Relies on TranslateError being set on the gorm config.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
