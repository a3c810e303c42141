package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key"`

	Name        string   `gorm:"uniqueIndex;not null"`
	Slug        string   `gorm:"uniqueIndex;not null"`
	Price       float64  `gorm:"type:decimal(10,2);not null"`
	OldPrice    *float64 `gorm:"type:decimal(10,2)"`
	Description string

	PurchaseProducts []PurchaseProduct `gorm:"foreignKey:ProductID"`

	gorm.Model
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
