package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRollup_GroupsAcrossPurchases(t *testing.T) {
	productA := uuid.New()
	productB := uuid.New()
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	purchases := []DatedPurchase{
		{
			CreatedAt: base,
			Purchase: Purchase{
				ID:           uuid.New(),
				BargainPrice: 100,
				Lines: []Line{
					{ProductID: productA, ProductName: "Fertilizer", Quantity: 5, PurchaseTimeUnitPrice: 50, CurrentUnitPrice: 60},
					{ProductID: productB, ProductName: "Diesel", Quantity: 5, PurchaseTimeUnitPrice: 150, CurrentUnitPrice: 160},
				},
				Payments: []PaymentRecord{
					{ProductID: productA, PaidAmount: 100, ProductQuantity: 2},
				},
			},
		},
		{
			CreatedAt: base.AddDate(0, 0, 10),
			Purchase: Purchase{
				ID:           uuid.New(),
				BargainPrice: 0,
				Lines: []Line{
					{ProductID: productA, ProductName: "Fertilizer", Quantity: 3, PurchaseTimeUnitPrice: 55, CurrentUnitPrice: 60},
				},
			},
		},
	}

	result := ProductRollup(purchases)
	require.Len(t, result, 2)

	// Product A: 8 units total across two purchases, sorted first
	a := result[0]
	assert.Equal(t, productA, a.ProductID)
	assert.Equal(t, "Fertilizer", a.ProductName)
	assert.Equal(t, 8, a.TotalQuantity)
	assert.InDelta(t, 480, a.TotalCurrentValue, 1e-9) // 5x60 + 3x60
	assert.InDelta(t, 100, a.TotalPaidAmount, 1e-9)
	assert.Equal(t, 2, a.PaidProductQuantity)
	// First purchase's discount share: 250/1000 x 100 = 25
	assert.InDelta(t, 25, a.TotalBargainDiscount, 1e-9)
	// 6 units remain: 6x60 - 25 x 6/8 = 360 - 18.75
	assert.InDelta(t, 341.25, a.RemainingDebt, 1e-9)
	require.Len(t, a.Purchases, 2)
	assert.Equal(t, 5, a.Purchases[0].Quantity)
	assert.Equal(t, 3, a.Purchases[1].Quantity)

	// Product B: 5 units, second in the order
	b := result[1]
	assert.Equal(t, productB, b.ProductID)
	assert.Equal(t, 5, b.TotalQuantity)
	assert.InDelta(t, 75, b.TotalBargainDiscount, 1e-9)
	// Nothing paid: 5x160 - 75
	assert.InDelta(t, 725, b.RemainingDebt, 1e-9)
}

func TestProductRollup_SortOrder(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	third := uuid.New()

	purchases := []DatedPurchase{
		{
			Purchase: Purchase{
				Lines: []Line{
					{ProductID: first, Quantity: 2, PurchaseTimeUnitPrice: 1, CurrentUnitPrice: 1},
					{ProductID: second, Quantity: 9, PurchaseTimeUnitPrice: 1, CurrentUnitPrice: 1},
					{ProductID: third, Quantity: 2, PurchaseTimeUnitPrice: 1, CurrentUnitPrice: 1},
				},
			},
		},
	}

	result := ProductRollup(purchases)
	require.Len(t, result, 3)

	// Highest quantity first; the two tied products keep insertion order
	assert.Equal(t, second, result[0].ProductID)
	assert.Equal(t, first, result[1].ProductID)
	assert.Equal(t, third, result[2].ProductID)
}

func TestProductRollup_FullyPaidProductOwesNothing(t *testing.T) {
	productID := uuid.New()

	purchases := []DatedPurchase{
		{
			Purchase: Purchase{
				Lines: []Line{
					{ProductID: productID, Quantity: 4, PurchaseTimeUnitPrice: 10, CurrentUnitPrice: 12},
				},
				Payments: []PaymentRecord{
					{ProductID: productID, PaidAmount: 40, ProductQuantity: 4},
				},
			},
		},
	}

	result := ProductRollup(purchases)
	require.Len(t, result, 1)
	assert.Zero(t, result[0].RemainingDebt)
}

func TestComputeWindowTotals(t *testing.T) {
	productA := uuid.New()
	productB := uuid.New()

	window := []Purchase{
		{
			BargainPrice: 200,
			Lines: []Line{
				{ProductID: productA, Quantity: 10, PurchaseTimeUnitPrice: 100, CurrentUnitPrice: 120},
			},
			Payments: []PaymentRecord{
				{ProductID: productA, PaidAmount: 400, ProductQuantity: 4},
			},
		},
		{
			BargainPrice: 50,
			Lines: []Line{
				{ProductID: productB, Quantity: 2, PurchaseTimeUnitPrice: 75, CurrentUnitPrice: 80},
			},
		},
	}

	totals := ComputeWindowTotals(window)

	// 600 from the partially paid purchase, 2x80-50=110 from the untouched one
	assert.InDelta(t, 710, totals.TotalDebt, 1e-9)
	assert.InDelta(t, 400, totals.TotalPaid, 1e-9)
	assert.InDelta(t, 250, totals.TotalBargainDiscount, 1e-9)
	assert.InDelta(t, 710, totals.RemainingDebt, 1e-9)
}

func TestComputeWindowTotals_EmptyWindow(t *testing.T) {
	totals := ComputeWindowTotals(nil)

	assert.Zero(t, totals.TotalDebt)
	assert.Zero(t, totals.TotalPaid)
	assert.Zero(t, totals.TotalBargainDiscount)
	assert.Zero(t, totals.RemainingDebt)
}
