// services/payment_service.go
package services

import (
	"errors"

	"creditbook-backend/ledger"
	"creditbook-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrPurchaseNotFound is returned when the referenced purchase does not exist.
	ErrPurchaseNotFound = errors.New("purchase not found")

	// ErrPaymentNotFound is returned when the referenced payment does not exist.
	ErrPaymentNotFound = errors.New("payment not found")
)

// CreatePaymentInput carries a partial payment against one product of a purchase.
type CreatePaymentInput struct {
	PurchaseID      uuid.UUID
	ProductID       uuid.UUID
	PaidAmount      float64
	ProductQuantity int
	Description     string
}

type PaymentService struct {
	db *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

// Create records a partial payment. The purchase row is locked for the
// duration of the transaction, so concurrent payments against the same
// purchase serialize: the quantity cap is checked against all committed
// payments, and the purchase's cached paid amount is recomputed from the
// full payment sum, never incremented.
//
// Returns ErrPurchaseNotFound, ledger.ErrLineNotFound when the purchase has
// no line for the product, or a *ledger.QuantityExceededError when the
// payment would exceed the line's remaining unpaid quantity. In every error
// case no payment row is created.
func (s *PaymentService) Create(input CreatePaymentInput) (*models.Payment, error) {
	payment := models.Payment{
		PurchaseID:      input.PurchaseID,
		ProductID:       input.ProductID,
		PaidAmount:      input.PaidAmount,
		ProductQuantity: input.ProductQuantity,
		Description:     input.Description,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var purchase models.Purchase
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Products.Product").Preload("Payments").
			First(&purchase, "id = ?", input.PurchaseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPurchaseNotFound
			}
			return err
		}

		snapshot := ledger.FromPurchase(purchase)
		if err := ledger.CheckPaymentQuantity(snapshot, input.ProductID, input.ProductQuantity); err != nil {
			return err
		}

		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		return recomputePaidAmount(tx, input.PurchaseID)
	})
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

// Delete removes a payment and recomputes the owning purchase's cached paid
// amount in the same transaction, holding the purchase row lock. Payments
// have no edit operation; deletion is the only way to correct one.
func (s *PaymentService) Delete(paymentID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.First(&payment, "id = ?", paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}

		var purchase models.Purchase
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&purchase, "id = ?", payment.PurchaseID).Error; err != nil {
			return err
		}

		if err := tx.Delete(&payment).Error; err != nil {
			return err
		}

		return recomputePaidAmount(tx, payment.PurchaseID)
	})
}

// recomputePaidAmount writes the full payment sum into the purchase's
// cached paid_amount column. Callers must hold the purchase row lock so the
// sum cannot miss a concurrently committed payment.
func recomputePaidAmount(tx *gorm.DB, purchaseID uuid.UUID) error {
	var total float64
	if err := tx.Model(&models.Payment{}).
		Where("purchase_id = ?", purchaseID).
		Select("COALESCE(SUM(paid_amount), 0)").
		Scan(&total).Error; err != nil {
		return err
	}

	return tx.Model(&models.Purchase{}).
		Where("id = ?", purchaseID).
		Update("paid_amount", total).Error
}
