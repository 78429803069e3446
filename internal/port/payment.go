package port

import "context"

// PaymentGateway captures payments. The bool reports whether the
// charge was captured; the error is reserved for transport failures.
type PaymentGateway interface {
	Charge(ctx context.Context, amount float64, paymentToken string) (bool, error)
}
