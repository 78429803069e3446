package storage

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psolovev/storefront/internal/core/domain"
)

func TestMemoryLedger_AddStockAndAvailability(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger()

	qty, err := ledger.AvailableQuantity(ctx, "SKU-1")
	require.NoError(t, err)
	assert.Zero(t, qty, "unknown SKU reads as zero")

	require.NoError(t, ledger.AddStock(ctx, "SKU-1", 30))
	require.NoError(t, ledger.AddStock(ctx, "SKU-1", 12))

	qty, err = ledger.AvailableQuantity(ctx, "SKU-1")
	require.NoError(t, err)
	assert.Equal(t, 42, qty)
}

func TestMemoryLedger_AddStock_RejectsNonPositive(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger()
	require.NoError(t, ledger.AddStock(ctx, "SKU-1", 5))

	assert.ErrorIs(t, ledger.AddStock(ctx, "SKU-1", 0), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, ledger.AddStock(ctx, "SKU-1", -4), domain.ErrInvalidQuantity)

	qty, err := ledger.AvailableQuantity(ctx, "SKU-1")
	require.NoError(t, err)
	assert.Equal(t, 5, qty)
}

func TestMemoryLedger_Reserve(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger()
	require.NoError(t, ledger.AddStock(ctx, "SKU-1", 10))

	ok, err := ledger.Reserve(ctx, "SKU-1", 10)
	require.NoError(t, err)
	assert.True(t, ok, "reserving exactly the available count succeeds")

	ok, err = ledger.Reserve(ctx, "SKU-1", 1)
	require.NoError(t, err)
	assert.False(t, ok)

	qty, err := ledger.AvailableQuantity(ctx, "SKU-1")
	require.NoError(t, err)
	assert.Zero(t, qty)
}

func TestMemoryLedger_RefusedReserveLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger()
	require.NoError(t, ledger.AddStock(ctx, "SKU-1", 3))

	ok, err := ledger.Reserve(ctx, "SKU-1", 4)
	require.NoError(t, err)
	assert.False(t, ok)

	qty, err := ledger.AvailableQuantity(ctx, "SKU-1")
	require.NoError(t, err)
	assert.Equal(t, 3, qty)
}

func TestMemoryLedger_ReleaseRestoresCountExactly(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger()
	require.NoError(t, ledger.AddStock(ctx, "SKU-1", 8))

	ok, err := ledger.Reserve(ctx, "SKU-1", 5)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, ledger.Release(ctx, "SKU-1", 5))

	qty, err := ledger.AvailableQuantity(ctx, "SKU-1")
	require.NoError(t, err)
	assert.Equal(t, 8, qty)
}

func TestMemoryLedger_ConcurrentReserves(t *testing.T) {
	ctx := context.Background()
	initialStock := 20
	attempts := 50

	ledger := NewMemoryLedger()
	require.NoError(t, ledger.AddStock(ctx, "SKU-1", initialStock))

	var successCount atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := ledger.Reserve(ctx, "SKU-1", 1)
			if err == nil && ok {
				successCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(initialStock), successCount.Load())

	qty, err := ledger.AvailableQuantity(ctx, "SKU-1")
	require.NoError(t, err)
	assert.Zero(t, qty, "available count never goes negative")
}

func TestMemoryLedger_DistinctSKUsAreIndependent(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger()
	require.NoError(t, ledger.AddStock(ctx, "SKU-1", 5))
	require.NoError(t, ledger.AddStock(ctx, "SKU-2", 7))

	ok, err := ledger.Reserve(ctx, "SKU-1", 5)
	require.NoError(t, err)
	require.True(t, ok)

	qty, err := ledger.AvailableQuantity(ctx, "SKU-2")
	require.NoError(t, err)
	assert.Equal(t, 7, qty)
}
