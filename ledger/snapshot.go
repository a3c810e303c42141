package ledger

import "creditbook-backend/models"

// FromPurchase builds a computation snapshot from a loaded purchase. The
// purchase must have its Products (with their Product relation) and
// Payments preloaded.
func FromPurchase(p models.Purchase) Purchase {
	snap := Purchase{
		ID:           p.ID,
		BargainPrice: p.BargainPrice,
	}

	for _, pp := range p.Products {
		snap.Lines = append(snap.Lines, Line{
			ProductID:             pp.ProductID,
			ProductName:           pp.Product.Name,
			Quantity:              pp.Quantity,
			PurchaseTimeUnitPrice: pp.PurchaseTimeUnitPrice,
			CurrentUnitPrice:      pp.Product.Price,
		})
	}

	for _, pay := range p.Payments {
		snap.Payments = append(snap.Payments, PaymentRecord{
			ProductID:       pay.ProductID,
			PaidAmount:      pay.PaidAmount,
			ProductQuantity: pay.ProductQuantity,
		})
	}

	return snap
}

// FromPurchases maps loaded purchases to dated snapshots, keeping order.
func FromPurchases(purchases []models.Purchase) []DatedPurchase {
	snaps := make([]DatedPurchase, 0, len(purchases))
	for _, p := range purchases {
		snaps = append(snaps, DatedPurchase{
			Purchase:  FromPurchase(p),
			CreatedAt: p.CreatedAt,
		})
	}
	return snaps
}
