package ledger

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// PurchaseBreakdown is one purchase's contribution to a product's rollup.
type PurchaseBreakdown struct {
	PurchaseID        uuid.UUID `json:"purchaseId"`
	PurchaseDate      time.Time `json:"purchaseDate"`
	Quantity          int       `json:"quantity"`
	PurchaseTimePrice float64   `json:"purchaseTimePrice"`
	CurrentPrice      float64   `json:"currentPrice"`
	PurchaseTimeTotal float64   `json:"purchaseTimeTotal"`
	CurrentTotal      float64   `json:"currentTotal"`
	PaidAmount        float64   `json:"paidAmount"`
	PaidQuantity      int       `json:"paidQuantity"`
	BargainDiscount   float64   `json:"bargainDiscount"`
}

// ProductSales aggregates one product across all of a customer's purchases.
type ProductSales struct {
	ProductID            uuid.UUID           `json:"productId"`
	ProductName          string              `json:"productName"`
	TotalQuantity        int                 `json:"totalQuantity"`
	CurrentPrice         float64             `json:"currentPrice"`
	TotalCurrentValue    float64             `json:"totalCurrentValue"`
	TotalPaidAmount      float64             `json:"totalPaidAmount"`
	PaidProductQuantity  int                 `json:"paidProductQuantity"`
	TotalBargainDiscount float64             `json:"totalBargainDiscount"`
	RemainingDebt        float64             `json:"remainingDebt"`
	Purchases            []PurchaseBreakdown `json:"purchases"`
}

// DatedPurchase pairs a purchase snapshot with its creation time for
// rollups that report per-purchase breakdown rows.
type DatedPurchase struct {
	Purchase
	CreatedAt time.Time
}

// ProductRollup groups every line of the given purchases by product and
// accumulates quantities, values, payments and allocated discounts, then
// derives the aggregate remaining debt with the same formula used per line.
// The result is sorted by total quantity descending; equal quantities keep
// insertion order.
func ProductRollup(purchases []DatedPurchase) []ProductSales {
	byProduct := make(map[uuid.UUID]*ProductSales)
	var order []uuid.UUID

	for _, p := range purchases {
		discounts := AllocateDiscount(p.Purchase)

		for i, line := range p.Lines {
			sale, ok := byProduct[line.ProductID]
			if !ok {
				sale = &ProductSales{
					ProductID:    line.ProductID,
					ProductName:  line.ProductName,
					CurrentPrice: line.CurrentUnitPrice,
				}
				byProduct[line.ProductID] = sale
				order = append(order, line.ProductID)
			}

			paidAmount, paidQty := AllocatePayments(p.Purchase, line.ProductID)

			sale.TotalQuantity += line.Quantity
			sale.TotalCurrentValue += LineCurrentTotal(line)
			sale.TotalPaidAmount += paidAmount
			sale.PaidProductQuantity += paidQty
			sale.TotalBargainDiscount += discounts[i]

			sale.Purchases = append(sale.Purchases, PurchaseBreakdown{
				PurchaseID:        p.ID,
				PurchaseDate:      p.CreatedAt,
				Quantity:          line.Quantity,
				PurchaseTimePrice: line.PurchaseTimeUnitPrice,
				CurrentPrice:      line.CurrentUnitPrice,
				PurchaseTimeTotal: LineHistoricalTotal(line),
				CurrentTotal:      LineCurrentTotal(line),
				PaidAmount:        paidAmount,
				PaidQuantity:      paidQty,
				BargainDiscount:   discounts[i],
			})
		}
	}

	result := make([]ProductSales, 0, len(order))
	for _, id := range order {
		sale := byProduct[id]

		remainingQty := sale.TotalQuantity - sale.PaidProductQuantity
		if remainingQty <= 0 {
			sale.RemainingDebt = 0
		} else {
			discountForRemaining := sale.TotalBargainDiscount * float64(remainingQty) / float64(sale.TotalQuantity)
			sale.RemainingDebt = float64(remainingQty)*sale.CurrentPrice - discountForRemaining
		}

		result = append(result, *sale)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalQuantity > result[j].TotalQuantity
	})
	return result
}

// WindowTotals are sums over a filtered/paginated window of purchases, not
// global customer totals: changing the window changes them.
type WindowTotals struct {
	TotalDebt            float64 `json:"totalDebt"`
	TotalPaid            float64 `json:"totalPaid"`
	TotalBargainDiscount float64 `json:"totalBargainDiscount"`
	RemainingDebt        float64 `json:"remainingDebt"`
}

// ComputeWindowTotals rolls up remaining debt, paid amounts and discounts
// across the purchases in a window.
func ComputeWindowTotals(purchases []Purchase) WindowTotals {
	var t WindowTotals
	for _, p := range purchases {
		t.TotalDebt += RemainingDebtForPurchase(p)
		t.TotalPaid += PaidAmountTotal(p)
		t.TotalBargainDiscount += p.BargainPrice
	}
	t.RemainingDebt = t.TotalDebt
	if t.RemainingDebt < 0 {
		t.RemainingDebt = 0
	}
	return t
}
