package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key"`

	Name        string `gorm:"not null"`
	Surname     string `gorm:"not null"`
	FullName    string `gorm:"index"`
	Email       string
	Phone       string `gorm:"type:varchar(50)"`
	Address     string
	Description string

	Purchases []Purchase `gorm:"foreignKey:CustomerID"`
	Supplies  []Supply   `gorm:"foreignKey:CustomerID"`

	gorm.Model
}

// Initialize UUID and derived full name before creating
func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.FullName == "" {
		c.FullName = c.Name + " " + c.Surname
	}
	return
}
