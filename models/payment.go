package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment is a partial payment against one product of one purchase. The
// product is referenced by id only; deleting a product does not cascade here.
type Payment struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	PurchaseID uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductID  uuid.UUID `gorm:"type:uuid;index;not null"`

	PaidAmount      float64 `gorm:"type:decimal(10,2);not null"`
	ProductQuantity int     `gorm:"not null"`
	Description     string

	Purchase Purchase `gorm:"foreignKey:PurchaseID"`
	Product  Product  `gorm:"foreignKey:ProductID"`

	gorm.Model
}

func (p *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
