package storage

import (
	"sync"

	"github.com/psolovev/storefront/internal/core/domain"
)

// MemoryCatalog is a concurrency-safe product lookup.
type MemoryCatalog struct {
	mu       sync.RWMutex
	products map[string]domain.Product
}

func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{products: make(map[string]domain.Product)}
}

func (c *MemoryCatalog) AddProduct(product domain.Product) {
	c.mu.Lock()
	c.products[product.SKU] = product
	c.mu.Unlock()
}

func (c *MemoryCatalog) FindProduct(sku string) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	product, ok := c.products[sku]
	return product, ok
}

func (c *MemoryCatalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.products)
}
