package port

import (
	"context"

	"github.com/psolovev/storefront/internal/core/domain"
)

// OrderRepository persists completed orders.
type OrderRepository interface {
	// Save persists a new order exactly once
	Save(ctx context.Context, order domain.Order) error

	// FindByID returns the order, or nil when no such order exists
	FindByID(ctx context.Context, id string) (*domain.Order, error)
}
