package ledger

import "github.com/google/uuid"

// AllocateDiscount prorates the purchase's bargain price across its lines by
// historical value share. The returned slice is index-aligned with p.Lines
// and sums to the bargain price exactly when the historical total is
// non-zero. With no lines or a zero historical total every share is zero;
// the division-by-zero case is never surfaced to callers.
func AllocateDiscount(p Purchase) []float64 {
	shares := make([]float64, len(p.Lines))

	total := HistoricalTotal(p)
	if total == 0 {
		return shares
	}

	for i, l := range p.Lines {
		shares[i] = p.BargainPrice * (LineHistoricalTotal(l) / total)
	}
	return shares
}

// AllocatePayments sums the paid amount and paid quantity across all
// payments targeting the given product within the purchase. Payments are
// per-product, not purchase-wide: a purchase may hold several products paid
// down independently.
func AllocatePayments(p Purchase, productID uuid.UUID) (amount float64, quantity int) {
	for _, pay := range p.Payments {
		if pay.ProductID == productID {
			amount += pay.PaidAmount
			quantity += pay.ProductQuantity
		}
	}
	return amount, quantity
}

// RemainingDebtForLine computes what is still owed on one line: the unpaid
// units valued at the current price, minus the share of the line's discount
// proportional to how much of the original quantity remains unpaid. A
// partial payment consumes its proportional share of the discount.
func RemainingDebtForLine(p Purchase, idx int) float64 {
	line := p.Lines[idx]
	_, paidQty := AllocatePayments(p, line.ProductID)

	remainingQty := line.Quantity - paidQty
	if remainingQty <= 0 {
		return 0
	}

	lineDiscount := AllocateDiscount(p)[idx]
	discountForRemaining := lineDiscount * float64(remainingQty) / float64(line.Quantity)

	return float64(remainingQty)*line.CurrentUnitPrice - discountForRemaining
}

// RemainingDebtForPurchase sums the remaining debt over all lines, clamped
// at zero.
func RemainingDebtForPurchase(p Purchase) float64 {
	var debt float64
	for i := range p.Lines {
		debt += RemainingDebtForLine(p, i)
	}
	if debt < 0 {
		return 0
	}
	return debt
}

// TotalReceivable is the point-of-sale total: all lines at current prices
// minus the bargain price. Unclamped; it is legitimately shown before any
// payment exists.
func TotalReceivable(p Purchase) float64 {
	return CurrentTotal(p) - p.BargainPrice
}

// PaidAmountTotal is the authoritative sum backing the purchase's cached
// paid_amount column. Always a full recomputation, never an increment.
func PaidAmountTotal(p Purchase) float64 {
	var total float64
	for _, pay := range p.Payments {
		total += pay.PaidAmount
	}
	return total
}

// CheckPaymentQuantity verifies that a payment of the given quantity against
// the given product fits within the line's remaining unpaid quantity.
// Returns ErrLineNotFound when the purchase has no line for the product, or
// a QuantityExceededError carrying the maximum still payable.
func CheckPaymentQuantity(p Purchase, productID uuid.UUID, quantity int) error {
	var line *Line
	for i := range p.Lines {
		if p.Lines[i].ProductID == productID {
			line = &p.Lines[i]
			break
		}
	}
	if line == nil {
		return ErrLineNotFound
	}

	_, paidQty := AllocatePayments(p, productID)
	remaining := line.Quantity - paidQty
	if quantity > remaining {
		return &QuantityExceededError{Max: remaining}
	}
	return nil
}
