// Package discount computes cart discounts in two ordered passes:
// per-line bulk discounts first, then a single order discount over the
// bulk-adjusted total. The ordering is part of the pricing contract —
// the order discount must not credit dollars a bulk discount already
// removed.
package discount

import "github.com/psolovev/storefront/internal/core/domain"

const (
	bulkQuantityThreshold = 10
	bulkRate              = 0.10

	orderTotalThreshold = 1000.0
	orderRate           = 0.05
)

// BulkDiscount returns the per-line discount: 10% of the line subtotal
// once the quantity reaches the bulk threshold (inclusive).
func BulkDiscount(item domain.LineItem) float64 {
	if item.Quantity >= bulkQuantityThreshold {
		return item.Subtotal() * bulkRate
	}
	return 0
}

// OrderDiscount returns the whole-order discount: 5% of the total that
// remains after subtracting every line's bulk discount, once that
// reduced total reaches the order threshold (inclusive).
func OrderDiscount(items []domain.LineItem) float64 {
	var reduced float64
	for _, item := range items {
		reduced += item.Subtotal() - BulkDiscount(item)
	}
	if reduced >= orderTotalThreshold {
		return reduced * orderRate
	}
	return 0
}

// TotalDiscount is the sum of every bulk discount plus the order
// discount. An empty item set yields zero.
func TotalDiscount(items []domain.LineItem) float64 {
	var bulk float64
	for _, item := range items {
		bulk += BulkDiscount(item)
	}
	return bulk + OrderDiscount(items)
}
