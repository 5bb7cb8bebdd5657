package models

import "time"

type AllocationLog struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	ProductID    uint      `json:"product_id" gorm:"not null;index"`
	TechnicianID uint      `json:"technician_id" gorm:"not null;index"`
	Quantity     int       `json:"quantity" gorm:"not null"`
	AllocatedAt  time.Time `json:"allocated_at"`
	Notes        string    `json:"notes"`

	Product    *Product    `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Technician *Technician `json:"technician,omitempty" gorm:"foreignKey:TechnicianID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
