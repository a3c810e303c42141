package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment method tags accepted on purchases.
const (
	PaymentMethodCash       = "cash"
	PaymentMethodBasakKart  = "basak_kart"
	PaymentMethodImeceKart  = "imece_kart"
	PaymentMethodKrediKarti = "kredi_karti"
	PaymentMethodCek        = "cek"
)

type Purchase struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`

	RepaymentDate time.Time `gorm:"not null"`
	BargainPrice  float64   `gorm:"type:decimal(10,2);default:0.0"`
	PaymentMethod string    `gorm:"type:varchar(20)"`
	Description   string

	// Derived cache: always the SUM of this purchase's payments' PaidAmount.
	// Written only by the payment service inside its transaction.
	PaidAmount float64 `gorm:"type:decimal(10,2);default:0.0"`

	Customer Customer          `gorm:"foreignKey:CustomerID"`
	Products []PurchaseProduct `gorm:"foreignKey:PurchaseID"`
	Payments []Payment         `gorm:"foreignKey:PurchaseID"`

	gorm.Model
}

func (p *Purchase) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

// PurchaseProduct is one line of a purchase. PurchaseTimeUnitPrice snapshots
// the product price at sale time; the product's current price lives on Product.
type PurchaseProduct struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	PurchaseID uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductID  uuid.UUID `gorm:"type:uuid;index;not null"`

	Quantity              int     `gorm:"not null;default:1"`
	PurchaseTimeUnitPrice float64 `gorm:"type:decimal(10,2);not null"`

	Product Product `gorm:"foreignKey:ProductID"`

	gorm.Model
}

func (pp *PurchaseProduct) BeforeCreate(tx *gorm.DB) (err error) {
	if pp.ID == uuid.Nil {
		pp.ID = uuid.New()
	}
	return
}
