package ledger

import (
	"errors"
	"fmt"
)

// ErrLineNotFound is returned when a payment targets a (purchase, product)
// pair with no matching line item.
var ErrLineNotFound = errors.New("product not found in this purchase")

// QuantityExceededError is returned when a payment's product quantity is
// larger than the line item's remaining unpaid quantity. Max is the largest
// quantity a payment could still cover.
type QuantityExceededError struct {
	Max int
}

func (e *QuantityExceededError) Error() string {
	return fmt.Sprintf("at most %d units of this product can still be paid for", e.Max)
}
