package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Supply is raw material bought from a customer. Its balance is a single
// running amount/paid pair, independent of the purchase/payment machinery.
type Supply struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index"`

	Name        string  `gorm:"not null"`
	Slug        string  `gorm:"index;not null"`
	Amount      float64 `gorm:"type:decimal(10,2);not null"`
	PaidAmount  float64 `gorm:"type:decimal(10,2);default:0.0"`
	Quantity    float64 `gorm:"not null"`
	Unit        string  `gorm:"type:varchar(50);not null"`
	Description string

	Customer *Customer `gorm:"foreignKey:CustomerID"`

	gorm.Model
}

func (s *Supply) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
