package service

import (
	"context"
	"sync"

	"github.com/psolovev/storefront/internal/core/domain"
)

// mockCatalog is a fixed product map.
type mockCatalog struct {
	products map[string]domain.Product
}

func newMockCatalog(products ...domain.Product) *mockCatalog {
	m := &mockCatalog{products: make(map[string]domain.Product)}
	for _, p := range products {
		m.products[p.SKU] = p
	}
	return m
}

func (m *mockCatalog) FindProduct(sku string) (domain.Product, bool) {
	p, ok := m.products[sku]
	return p, ok
}

// mockLedger is an in-memory ledger with a single lock, enough to
// exercise the service under concurrency.
type mockLedger struct {
	mu           sync.Mutex
	stock        map[string]int
	reserveCalls int
	releaseCalls int
}

func newMockLedger(stock map[string]int) *mockLedger {
	if stock == nil {
		stock = make(map[string]int)
	}
	return &mockLedger{stock: stock}
}

func (m *mockLedger) AvailableQuantity(_ context.Context, sku string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stock[sku], nil
}

func (m *mockLedger) Reserve(_ context.Context, sku string, quantity int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reserveCalls++
	if m.stock[sku] >= quantity {
		m.stock[sku] -= quantity
		return true, nil
	}
	return false, nil
}

func (m *mockLedger) Release(_ context.Context, sku string, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releaseCalls++
	m.stock[sku] += quantity
	return nil
}

func (m *mockLedger) AddStock(_ context.Context, sku string, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stock[sku] += quantity
	return nil
}

func (m *mockLedger) available(sku string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stock[sku]
}

// mockGateway records charges and answers with a fixed outcome.
type mockGateway struct {
	mu         sync.Mutex
	capture    bool
	err        error
	calls      int
	lastAmount float64
	lastToken  string
}

func (m *mockGateway) Charge(_ context.Context, amount float64, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastAmount = amount
	m.lastToken = token
	return m.capture, m.err
}

func (m *mockGateway) chargeCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockOrderRepo collects saved orders and can be told to fail.
type mockOrderRepo struct {
	mu      sync.Mutex
	saved   []domain.Order
	saveErr error
}

func (m *mockOrderRepo) Save(_ context.Context, order domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, order)
	return nil
}

func (m *mockOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, order := range m.saved {
		if order.ID == id {
			o := order
			return &o, nil
		}
	}
	return nil, nil
}

func (m *mockOrderRepo) saveCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.saved)
}
