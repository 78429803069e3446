package port

import "github.com/psolovev/storefront/internal/core/domain"

// Catalog looks up products by SKU.
type Catalog interface {
	FindProduct(sku string) (domain.Product, bool)
}
