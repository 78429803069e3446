package domain

import "strings"

// Product is an immutable catalog entry. Construct via NewProduct so
// the validation rules hold for every instance in circulation.
type Product struct {
	SKU   string
	Name  string
	Price float64
}

func NewProduct(sku, name string, price float64) (Product, error) {
	sku = strings.TrimSpace(sku)
	name = strings.TrimSpace(name)
	if sku == "" {
		return Product{}, ErrEmptySKU
	}
	if name == "" {
		return Product{}, ErrEmptyName
	}
	if price < 0 {
		return Product{}, ErrNegativePrice
	}
	return Product{SKU: sku, Name: name, Price: price}, nil
}
