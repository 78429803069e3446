package port

import "context"

// InventoryLedger tracks available stock per SKU. Implementations
// serialize mutations per SKU, so two concurrent reservations for the
// same product never both succeed when only one has sufficient stock,
// and operations on distinct products never contend.
type InventoryLedger interface {
	// AvailableQuantity returns the current count, 0 for unknown SKUs
	AvailableQuantity(ctx context.Context, sku string) (int, error)

	// Reserve atomically decrements available stock, returns false if insufficient
	Reserve(ctx context.Context, sku string, quantity int) (bool, error)

	// Release restores stock held by a reservation that was aborted
	Release(ctx context.Context, sku string, quantity int) error

	// AddStock is the administrative increment; quantity must be positive
	AddStock(ctx context.Context, sku string, quantity int) error
}
