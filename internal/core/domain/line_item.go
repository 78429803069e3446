package domain

// LineItem pairs a product with a positive quantity. It is a value:
// changing the quantity produces a new LineItem via WithQuantity.
type LineItem struct {
	Product  Product
	Quantity int
}

func NewLineItem(product Product, quantity int) (LineItem, error) {
	if quantity <= 0 {
		return LineItem{}, ErrInvalidQuantity
	}
	return LineItem{Product: product, Quantity: quantity}, nil
}

// Subtotal is the line total before any discount.
func (li LineItem) Subtotal() float64 {
	return li.Product.Price * float64(li.Quantity)
}

// WithQuantity returns a copy of the item holding the new quantity.
func (li LineItem) WithQuantity(quantity int) (LineItem, error) {
	return NewLineItem(li.Product, quantity)
}
