package service

import (
	"context"
	"fmt"

	"github.com/psolovev/storefront/internal/core/domain"
	"github.com/psolovev/storefront/internal/port"
)

// Cart collects line items for a single checkout session, admitting
// quantity changes against the catalog and a live snapshot of the
// ledger. It holds at most one line item per SKU and is not safe for
// concurrent use: create one per session and discard it after
// checkout.
type Cart struct {
	catalog port.Catalog
	ledger  port.InventoryLedger
	items   map[string]domain.LineItem
}

func NewCart(catalog port.Catalog, ledger port.InventoryLedger) *Cart {
	return &Cart{
		catalog: catalog,
		ledger:  ledger,
		items:   make(map[string]domain.LineItem),
	}
}

// AddItem admits quantity more units of sku, merging into any existing
// line item. The availability check is advisory only — no stock is
// reserved until checkout validation, so availability can still change
// before the order is placed. A failed add leaves the cart untouched.
func (c *Cart) AddItem(ctx context.Context, sku string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("add %q: %w", sku, domain.ErrInvalidQuantity)
	}

	product, ok := c.catalog.FindProduct(sku)
	if !ok {
		return fmt.Errorf("add %q: %w", sku, domain.ErrProductNotFound)
	}

	available, err := c.ledger.AvailableQuantity(ctx, sku)
	if err != nil {
		return fmt.Errorf("availability of %q: %w", sku, err)
	}

	inCart := 0
	existing, merging := c.items[sku]
	if merging {
		inCart = existing.Quantity
		// merging only adds quantity; the line keeps its product
		product = existing.Product
	}
	if inCart+quantity > available {
		return fmt.Errorf("%w for %s: requested %d, in cart %d, available %d",
			domain.ErrInsufficientInventory, sku, quantity, inCart, available)
	}

	item, err := domain.NewLineItem(product, inCart+quantity)
	if err != nil {
		return err
	}
	c.items[sku] = item
	return nil
}

// RemoveItem drops the line item for sku; no-op when absent.
func (c *Cart) RemoveItem(sku string) {
	delete(c.items, sku)
}

// UpdateQuantity replaces the quantity of an existing line item. A
// non-positive quantity removes the item. Unknown SKUs are ignored.
// No availability check happens here; checkout validation is the
// backstop.
func (c *Cart) UpdateQuantity(sku string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(sku)
		return
	}
	existing, ok := c.items[sku]
	if !ok {
		return
	}
	item, err := existing.WithQuantity(quantity)
	if err != nil {
		return
	}
	c.items[sku] = item
}

// Total sums every line item's subtotal.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.items {
		total += item.Subtotal()
	}
	return total
}

// Items returns a copy of the cart contents keyed by SKU.
func (c *Cart) Items() map[string]domain.LineItem {
	items := make(map[string]domain.LineItem, len(c.items))
	for sku, item := range c.items {
		items[sku] = item
	}
	return items
}

// Len returns the number of distinct line items.
func (c *Cart) Len() int {
	return len(c.items)
}
