package storage

import (
	"context"
	"sync"

	"github.com/psolovev/storefront/internal/core/domain"
)

// MemoryLedger tracks available stock per SKU in process memory. Each
// SKU owns an independent lock, so reservations for distinct products
// never contend; the outer RWMutex only guards the map itself.
type MemoryLedger struct {
	mu      sync.RWMutex
	entries map[string]*ledgerEntry
}

type ledgerEntry struct {
	mu        sync.Mutex
	available int
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{entries: make(map[string]*ledgerEntry)}
}

// entry returns the counter for sku, creating it on first use.
func (l *MemoryLedger) entry(sku string) *ledgerEntry {
	l.mu.RLock()
	e, ok := l.entries[sku]
	l.mu.RUnlock()
	if ok {
		return e
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.entries[sku]; ok {
		return e
	}
	e = &ledgerEntry{}
	l.entries[sku] = e
	return e
}

func (l *MemoryLedger) AvailableQuantity(_ context.Context, sku string) (int, error) {
	l.mu.RLock()
	e, ok := l.entries[sku]
	l.mu.RUnlock()
	if !ok {
		return 0, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.available, nil
}

func (l *MemoryLedger) Reserve(_ context.Context, sku string, quantity int) (bool, error) {
	e := l.entry(sku)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.available < quantity {
		return false, nil
	}
	e.available -= quantity
	return true, nil
}

func (l *MemoryLedger) Release(_ context.Context, sku string, quantity int) error {
	e := l.entry(sku)
	e.mu.Lock()
	e.available += quantity
	e.mu.Unlock()
	return nil
}

func (l *MemoryLedger) AddStock(_ context.Context, sku string, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}

	e := l.entry(sku)
	e.mu.Lock()
	e.available += quantity
	e.mu.Unlock()
	return nil
}
