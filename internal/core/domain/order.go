package domain

import "time"

// Order is the immutable record of a completed checkout. Items is a
// snapshot of the cart taken at charge time.
type Order struct {
	ID            string
	Items         []LineItem
	Subtotal      float64
	TotalDiscount float64
	FinalAmount   float64
	CreatedAt     time.Time
}

// CheckoutResult is the single outcome of a checkout attempt. Order is
// populated exactly when Success is true; failures are reported here
// rather than as errors so callers cannot skip handling them.
type CheckoutResult struct {
	Success bool
	Message string
	Order   *Order
}
