// Package ledger implements the debt arithmetic for purchases made on
// credit: prorating a negotiated lump-sum discount across line items,
// allocating product-targeted partial payments, and deriving outstanding
// balances. Everything here is a pure computation over snapshots of the
// ledger state; persistence and transport live elsewhere.
package ledger

import "github.com/google/uuid"

// Line is one product entry of a purchase. PurchaseTimeUnitPrice is the
// price snapshotted when the sale was made; CurrentUnitPrice is the
// product's price today. Remaining debt is valued at the current price,
// while the discount was negotiated against purchase-time totals.
type Line struct {
	ProductID             uuid.UUID
	ProductName           string
	Quantity              int
	PurchaseTimeUnitPrice float64
	CurrentUnitPrice      float64
}

// PaymentRecord is a partial payment targeting one product of a purchase.
type PaymentRecord struct {
	ProductID       uuid.UUID
	PaidAmount      float64
	ProductQuantity int
}

// Purchase is the snapshot a computation runs against: the negotiated
// discount, the lines, and the payments recorded so far.
type Purchase struct {
	ID           uuid.UUID
	BargainPrice float64
	Lines        []Line
	Payments     []PaymentRecord
}

// LineHistoricalTotal values a line at its purchase-time price.
func LineHistoricalTotal(l Line) float64 {
	return float64(l.Quantity) * l.PurchaseTimeUnitPrice
}

// LineCurrentTotal values a line at the product's current price.
func LineCurrentTotal(l Line) float64 {
	return float64(l.Quantity) * l.CurrentUnitPrice
}

// HistoricalTotal is the purchase-time value of all lines, the basis the
// bargain price was negotiated against.
func HistoricalTotal(p Purchase) float64 {
	var total float64
	for _, l := range p.Lines {
		total += LineHistoricalTotal(l)
	}
	return total
}

// CurrentTotal is the value of all lines at today's prices.
func CurrentTotal(p Purchase) float64 {
	var total float64
	for _, l := range p.Lines {
		total += LineCurrentTotal(l)
	}
	return total
}
