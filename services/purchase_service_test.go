package services

import (
	"errors"
	"testing"

	"creditbook-backend/models"

	"github.com/google/uuid"
)

func TestPurchaseService_Create(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestCustomer(t, db)
	seed := createTestProduct(t, db, "seed", 120)
	diesel := createTestProduct(t, db, "diesel", 45)

	svc := NewPurchaseService(db)

	purchase, err := svc.Create(CreatePurchaseInput{
		CustomerID:    customer.ID,
		RepaymentDate: testRepaymentDate(),
		BargainPrice:  200,
		PaymentMethod: models.PaymentMethodCash,
		Products: []PurchaseLineInput{
			{ProductID: seed.ID, Quantity: 10, PurchaseTimeUnitPrice: 100},
			{ProductID: diesel.ID, Quantity: 2, PurchaseTimeUnitPrice: 40},
		},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	var found models.Purchase
	if err := db.Preload("Products").First(&found, "id = ?", purchase.ID).Error; err != nil {
		t.Fatalf("failed to find created purchase: %v", err)
	}

	if len(found.Products) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(found.Products))
	}
	if found.BargainPrice != 200 {
		t.Errorf("expected bargain price 200, got %v", found.BargainPrice)
	}
	if found.PaidAmount != 0 {
		t.Errorf("expected zero paid amount on a fresh purchase, got %v", found.PaidAmount)
	}
	if found.Products[0].PurchaseTimeUnitPrice != 100 {
		t.Errorf("expected snapshotted unit price 100, got %v", found.Products[0].PurchaseTimeUnitPrice)
	}
}

func TestPurchaseService_Create_Rejections(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestCustomer(t, db)
	product := createTestProduct(t, db, "seed", 120)

	svc := NewPurchaseService(db)

	tests := []struct {
		name    string
		input   CreatePurchaseInput
		wantErr error
	}{
		{
			name: "no line items",
			input: CreatePurchaseInput{
				CustomerID:    customer.ID,
				RepaymentDate: testRepaymentDate(),
			},
			wantErr: ErrEmptyPurchase,
		},
		{
			name: "duplicate product",
			input: CreatePurchaseInput{
				CustomerID:    customer.ID,
				RepaymentDate: testRepaymentDate(),
				Products: []PurchaseLineInput{
					{ProductID: product.ID, Quantity: 1, PurchaseTimeUnitPrice: 100},
					{ProductID: product.ID, Quantity: 2, PurchaseTimeUnitPrice: 100},
				},
			},
			wantErr: ErrDuplicateProduct,
		},
		{
			name: "zero quantity",
			input: CreatePurchaseInput{
				CustomerID:    customer.ID,
				RepaymentDate: testRepaymentDate(),
				Products: []PurchaseLineInput{
					{ProductID: product.ID, Quantity: 0, PurchaseTimeUnitPrice: 100},
				},
			},
			wantErr: ErrInvalidQuantity,
		},
		{
			name: "unknown customer",
			input: CreatePurchaseInput{
				CustomerID:    uuid.New(),
				RepaymentDate: testRepaymentDate(),
				Products: []PurchaseLineInput{
					{ProductID: product.ID, Quantity: 1, PurchaseTimeUnitPrice: 100},
				},
			},
			wantErr: ErrCustomerNotFound,
		},
		{
			name: "unknown product",
			input: CreatePurchaseInput{
				CustomerID:    customer.ID,
				RepaymentDate: testRepaymentDate(),
				Products: []PurchaseLineInput{
					{ProductID: uuid.New(), Quantity: 1, PurchaseTimeUnitPrice: 100},
				},
			},
			wantErr: ErrProductNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, wantErr %v", err, tt.wantErr)
			}

			var count int64
			db.Model(&models.Purchase{}).Count(&count)
			if count != 0 {
				t.Errorf("expected no purchase rows after rejection, got %d", count)
			}
		})
	}
}
