// services/purchase_service.go
package services

import (
	"errors"
	"time"

	"creditbook-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrEmptyPurchase is returned when a purchase is created without line items.
	ErrEmptyPurchase = errors.New("purchase must contain at least one product")

	// ErrDuplicateProduct is returned when two line items reference the same
	// product. Payments target products by id, so a product may appear in a
	// purchase only once.
	ErrDuplicateProduct = errors.New("purchase contains the same product twice")

	// ErrInvalidQuantity is returned for line items with quantity below 1.
	ErrInvalidQuantity = errors.New("line item quantity must be at least 1")

	// ErrCustomerNotFound is returned when the referenced customer does not exist.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrProductNotFound is returned when a referenced product does not exist.
	ErrProductNotFound = errors.New("product not found")
)

// PurchaseLineInput is one product entry of a purchase being created.
type PurchaseLineInput struct {
	ProductID             uuid.UUID
	Quantity              int
	PurchaseTimeUnitPrice float64
}

// CreatePurchaseInput carries everything needed to record a credit sale.
type CreatePurchaseInput struct {
	CustomerID    uuid.UUID
	RepaymentDate time.Time
	BargainPrice  float64
	PaymentMethod string
	Description   string
	Products      []PurchaseLineInput
}

type PurchaseService struct {
	db *gorm.DB
}

func NewPurchaseService(db *gorm.DB) *PurchaseService {
	return &PurchaseService{db: db}
}

// Create records a purchase and its line items in one transaction. The line
// item set is fixed here and never edited afterwards.
func (s *PurchaseService) Create(input CreatePurchaseInput) (*models.Purchase, error) {
	if len(input.Products) == 0 {
		return nil, ErrEmptyPurchase
	}

	seen := make(map[uuid.UUID]bool, len(input.Products))
	for _, line := range input.Products {
		if line.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		if seen[line.ProductID] {
			return nil, ErrDuplicateProduct
		}
		seen[line.ProductID] = true
	}

	purchase := models.Purchase{
		CustomerID:    input.CustomerID,
		RepaymentDate: input.RepaymentDate,
		BargainPrice:  input.BargainPrice,
		PaymentMethod: input.PaymentMethod,
		Description:   input.Description,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.First(&customer, "id = ?", input.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCustomerNotFound
			}
			return err
		}

		for _, line := range input.Products {
			var product models.Product
			if err := tx.First(&product, "id = ?", line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return err
			}

			purchase.Products = append(purchase.Products, models.PurchaseProduct{
				ProductID:             line.ProductID,
				Quantity:              line.Quantity,
				PurchaseTimeUnitPrice: line.PurchaseTimeUnitPrice,
			})
		}

		return tx.Create(&purchase).Error
	})
	if err != nil {
		return nil, err
	}

	return &purchase, nil
}
