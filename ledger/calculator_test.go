package ledger

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// singleLinePurchase is a purchase with one line: 10 units sold at 100,
// worth 120 today, with a 200 bargain discount.
func singleLinePurchase(productID uuid.UUID) Purchase {
	return Purchase{
		ID:           uuid.New(),
		BargainPrice: 200,
		Lines: []Line{
			{
				ProductID:             productID,
				ProductName:           "Wheat Seed",
				Quantity:              10,
				PurchaseTimeUnitPrice: 100,
				CurrentUnitPrice:      120,
			},
		},
	}
}

func TestTotalReceivable(t *testing.T) {
	p := singleLinePurchase(uuid.New())

	// 10 x 120 - 200
	assert.InDelta(t, 1000, TotalReceivable(p), 1e-9)
}

func TestRemainingDebtForPurchase_NoPayments(t *testing.T) {
	p := singleLinePurchase(uuid.New())

	assert.InDelta(t, 1000, RemainingDebtForPurchase(p), 1e-9)
}

func TestRemainingDebtForPurchase_PartialPayment(t *testing.T) {
	productID := uuid.New()
	p := singleLinePurchase(productID)
	p.Payments = []PaymentRecord{
		{ProductID: productID, PaidAmount: 400, ProductQuantity: 4},
	}

	// 6 units remain; discount share for them is 200 x 6/10 = 120,
	// so 6 x 120 - 120 = 600
	assert.InDelta(t, 600, RemainingDebtForPurchase(p), 1e-9)
}

func TestRemainingDebtForLine_Monotonic(t *testing.T) {
	productID := uuid.New()

	prev := 0.0
	for paid := 0; paid <= 10; paid++ {
		p := singleLinePurchase(productID)
		p.Payments = []PaymentRecord{
			{ProductID: productID, PaidAmount: float64(paid) * 100, ProductQuantity: paid},
		}

		debt := RemainingDebtForLine(p, 0)
		if paid > 0 {
			assert.LessOrEqual(t, debt, prev, "debt must not grow as paid quantity grows (paid=%d)", paid)
		}
		prev = debt
	}

	// Fully paid line owes exactly zero
	p := singleLinePurchase(productID)
	p.Payments = []PaymentRecord{{ProductID: productID, ProductQuantity: 10}}
	assert.Zero(t, RemainingDebtForLine(p, 0))
}

func TestRemainingDebtForPurchase_ClampedAtZero(t *testing.T) {
	productID := uuid.New()
	p := Purchase{
		BargainPrice: 100,
		Lines: []Line{
			// Current price collapsed far below the negotiated discount
			{ProductID: productID, Quantity: 1, PurchaseTimeUnitPrice: 100, CurrentUnitPrice: 10},
		},
	}

	assert.Zero(t, RemainingDebtForPurchase(p))
}

func TestAllocateDiscount(t *testing.T) {
	productA := uuid.New()
	productB := uuid.New()

	tests := []struct {
		name     string
		purchase Purchase
		want     []float64
	}{
		{
			name:     "single line takes the full discount",
			purchase: singleLinePurchase(productA),
			want:     []float64{200},
		},
		{
			name: "two lines split by historical value share",
			purchase: Purchase{
				BargainPrice: 100,
				Lines: []Line{
					{ProductID: productA, Quantity: 5, PurchaseTimeUnitPrice: 50, CurrentUnitPrice: 50},
					{ProductID: productB, Quantity: 5, PurchaseTimeUnitPrice: 150, CurrentUnitPrice: 150},
				},
			},
			// Historical total 250+750=1000: shares 25 and 75
			want: []float64{25, 75},
		},
		{
			name:     "no lines yields no shares",
			purchase: Purchase{BargainPrice: 100},
			want:     []float64{},
		},
		{
			name: "zero historical total defaults every share to zero",
			purchase: Purchase{
				BargainPrice: 100,
				Lines: []Line{
					{ProductID: productA, Quantity: 3, PurchaseTimeUnitPrice: 0, CurrentUnitPrice: 10},
				},
			},
			want: []float64{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AllocateDiscount(tt.purchase)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-9)
			}
		})
	}
}

func TestAllocateDiscount_IsPartition(t *testing.T) {
	// Shares must sum back to the bargain price whenever it can be allocated
	p := Purchase{
		BargainPrice: 333.33,
		Lines: []Line{
			{ProductID: uuid.New(), Quantity: 7, PurchaseTimeUnitPrice: 19.99, CurrentUnitPrice: 22},
			{ProductID: uuid.New(), Quantity: 3, PurchaseTimeUnitPrice: 149.5, CurrentUnitPrice: 140},
			{ProductID: uuid.New(), Quantity: 11, PurchaseTimeUnitPrice: 5.25, CurrentUnitPrice: 6},
		},
	}

	var sum float64
	for _, share := range AllocateDiscount(p) {
		sum += share
	}
	assert.InDelta(t, p.BargainPrice, sum, 1e-9)
}

func TestAllocatePayments(t *testing.T) {
	productA := uuid.New()
	productB := uuid.New()

	p := Purchase{
		Lines: []Line{
			{ProductID: productA, Quantity: 10, PurchaseTimeUnitPrice: 10, CurrentUnitPrice: 10},
			{ProductID: productB, Quantity: 10, PurchaseTimeUnitPrice: 10, CurrentUnitPrice: 10},
		},
		Payments: []PaymentRecord{
			{ProductID: productA, PaidAmount: 30, ProductQuantity: 3},
			{ProductID: productB, PaidAmount: 50, ProductQuantity: 5},
			{ProductID: productA, PaidAmount: 20, ProductQuantity: 2},
		},
	}

	amount, qty := AllocatePayments(p, productA)
	assert.InDelta(t, 50, amount, 1e-9)
	assert.Equal(t, 5, qty)

	amount, qty = AllocatePayments(p, productB)
	assert.InDelta(t, 50, amount, 1e-9)
	assert.Equal(t, 5, qty)

	amount, qty = AllocatePayments(p, uuid.New())
	assert.Zero(t, amount)
	assert.Zero(t, qty)
}

func TestCheckPaymentQuantity(t *testing.T) {
	productID := uuid.New()
	p := singleLinePurchase(productID)
	p.Payments = []PaymentRecord{
		{ProductID: productID, PaidAmount: 400, ProductQuantity: 4},
	}

	t.Run("within remaining capacity", func(t *testing.T) {
		assert.NoError(t, CheckPaymentQuantity(p, productID, 6))
	})

	t.Run("exceeding remaining capacity", func(t *testing.T) {
		err := CheckPaymentQuantity(p, productID, 7)

		var exceeded *QuantityExceededError
		require.ErrorAs(t, err, &exceeded)
		assert.Equal(t, 6, exceeded.Max)
	})

	t.Run("product not in purchase", func(t *testing.T) {
		err := CheckPaymentQuantity(p, uuid.New(), 1)
		assert.True(t, errors.Is(err, ErrLineNotFound))
	})
}

func TestPaidAmountTotal(t *testing.T) {
	productID := uuid.New()
	p := singleLinePurchase(productID)
	p.Payments = []PaymentRecord{
		{ProductID: productID, PaidAmount: 400, ProductQuantity: 4},
		{ProductID: productID, PaidAmount: 150.5, ProductQuantity: 1},
	}

	assert.InDelta(t, 550.5, PaidAmountTotal(p), 1e-9)

	// Recomputing without an intervening change yields the same value
	assert.Equal(t, PaidAmountTotal(p), PaidAmountTotal(p))
}
