package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psolovev/storefront/internal/core/domain"
)

func sampleOrder(t *testing.T) domain.Order {
	t.Helper()
	product, err := domain.NewProduct("SKU-1", "Widget", 100.0)
	require.NoError(t, err)
	item, err := domain.NewLineItem(product, 2)
	require.NoError(t, err)

	return domain.Order{
		ID:            uuid.New().String(),
		Items:         []domain.LineItem{item},
		Subtotal:      200.0,
		TotalDiscount: 0,
		FinalAmount:   200.0,
		CreatedAt:     time.Now().UTC(),
	}
}

func TestMemoryOrderRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryOrderRepository()
	order := sampleOrder(t)

	require.NoError(t, repo.Save(ctx, order))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, order.ID, found.ID)
	assert.InDelta(t, 200.0, found.FinalAmount, 0.001)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "SKU-1", found.Items[0].Product.SKU)
}

func TestMemoryOrderRepository_FindMissing(t *testing.T) {
	repo := NewMemoryOrderRepository()

	found, err := repo.FindByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestMemoryOrderRepository_RejectsDuplicateSave(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryOrderRepository()
	order := sampleOrder(t)

	require.NoError(t, repo.Save(ctx, order))
	assert.Error(t, repo.Save(ctx, order))
	assert.Equal(t, 1, repo.Len())
}

func TestMemoryCatalog_AddAndFind(t *testing.T) {
	catalog := NewMemoryCatalog()

	_, ok := catalog.FindProduct("SKU-1")
	assert.False(t, ok)

	product, err := domain.NewProduct("SKU-1", "Widget", 9.99)
	require.NoError(t, err)
	catalog.AddProduct(product)

	found, ok := catalog.FindProduct("SKU-1")
	require.True(t, ok)
	assert.Equal(t, "Widget", found.Name)
	assert.Equal(t, 1, catalog.Len())
}
