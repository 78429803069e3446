package domain

import "errors"

// Validation errors raised before any state is mutated.
var (
	ErrInvalidQuantity       = errors.New("quantity must be positive")
	ErrProductNotFound       = errors.New("product not found")
	ErrInsufficientInventory = errors.New("insufficient inventory")

	ErrEmptySKU      = errors.New("sku cannot be empty")
	ErrEmptyName     = errors.New("product name cannot be empty")
	ErrNegativePrice = errors.New("price cannot be negative")
)
