package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/psolovev/storefront/internal/core/domain"
)

// MemoryOrderRepository keeps completed orders in process memory,
// keyed by order ID.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{orders: make(map[string]domain.Order)}
}

func (m *MemoryOrderRepository) Save(_ context.Context, order domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.orders[order.ID]; exists {
		return fmt.Errorf("order %s already saved", order.ID)
	}
	m.orders[order.ID] = order
	return nil
}

func (m *MemoryOrderRepository) FindByID(_ context.Context, id string) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	order, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	return &order, nil
}

func (m *MemoryOrderRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.orders)
}
