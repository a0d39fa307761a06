package command

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubstack/inventory-service/internal/inventory/domain"
	"github.com/hubstack/inventory-service/internal/inventory/repository"
)

func seedStock(t *testing.T, store *repository.MemoryStore, hubID, sku string, quantity, reorderLevel int) *domain.StockRecord {
	t.Helper()
	record, err := NewCreateStockHandler(store.StockRepository()).Handle(CreateStockCommand{
		HubID:        hubID,
		SKU:          sku,
		Name:         sku,
		Quantity:     quantity,
		ReorderLevel: reorderLevel,
	})
	require.NoError(t, err)
	return record
}

func TestSetQuantity(t *testing.T) {
	store := repository.NewMemoryStore()
	record := seedStock(t, store, "hub-alpha", "MANGO-ALP", 50, 10)
	handler := NewSetQuantityHandler(store.StockRepository())

	updated, err := handler.Handle(SetQuantityCommand{ID: record.ID, Quantity: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)
	assert.Equal(t, domain.StatusReorderNeeded, updated.Status)

	updated, err = handler.Handle(SetQuantityCommand{ID: record.ID, Quantity: 0})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOutOfStock, updated.Status)
}

func TestSetQuantityNegative(t *testing.T) {
	store := repository.NewMemoryStore()
	record := seedStock(t, store, "hub-alpha", "MANGO-ALP", 50, 10)
	handler := NewSetQuantityHandler(store.StockRepository())

	_, err := handler.Handle(SetQuantityCommand{ID: record.ID, Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	// The record is untouched.
	current, err := store.StockRepository().FindByID(record.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, current.Quantity)
}

func TestSetQuantityIncreaseBumpsRestockTime(t *testing.T) {
	store := repository.NewMemoryStore()
	record := seedStock(t, store, "hub-alpha", "MANGO-ALP", 0, 10)
	handler := NewSetQuantityHandler(store.StockRepository())

	before := time.Now()
	updated, err := handler.Handle(SetQuantityCommand{ID: record.ID, Quantity: 20})
	require.NoError(t, err)

	require.NotNil(t, updated.LastRestockedAt)
	assert.False(t, updated.LastRestockedAt.Before(before))
	assert.Equal(t, domain.StatusInStock, updated.Status)
}

func TestMarkOutOfStock(t *testing.T) {
	store := repository.NewMemoryStore()
	record := seedStock(t, store, "hub-alpha", "MANGO-ALP", 50, 10)
	handler := NewMarkOutOfStockHandler(store.StockRepository())

	updated, err := handler.Handle(MarkOutOfStockCommand{ID: record.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Quantity)
	assert.Equal(t, domain.StatusOutOfStock, updated.Status)
}

func TestRestock(t *testing.T) {
	store := repository.NewMemoryStore()
	record := seedStock(t, store, "hub-alpha", "MANGO-ALP", 5, 10)
	handler := NewRestockHandler(store.StockRepository())

	updated, err := handler.Handle(context.Background(), RestockCommand{ID: record.ID, Amount: 20})
	require.NoError(t, err)
	assert.Equal(t, 25, updated.Quantity)
	assert.Equal(t, domain.StatusInStock, updated.Status)
	assert.NotNil(t, updated.LastRestockedAt)

	_, err = handler.Handle(context.Background(), RestockCommand{ID: record.ID, Amount: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestRestockConcurrentDeltasAllApply(t *testing.T) {
	store := repository.NewMemoryStore()
	record := seedStock(t, store, "hub-alpha", "MANGO-ALP", 0, 10)
	handler := NewRestockHandler(store.StockRepository())

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := handler.Handle(context.Background(), RestockCommand{ID: record.ID, Amount: 10})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Both deltas land; neither read-modify-write overwrites the other.
	current, err := store.StockRepository().FindByID(record.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, current.Quantity)
	assert.Equal(t, domain.StatusInStock, current.Status)
}

func TestDeleteStock(t *testing.T) {
	store := repository.NewMemoryStore()
	record := seedStock(t, store, "hub-alpha", "MANGO-ALP", 50, 10)
	handler := NewDeleteStockHandler(store.StockRepository())

	require.NoError(t, handler.Handle(DeleteStockCommand{ID: record.ID}))

	_, err := store.StockRepository().FindByID(record.ID)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	err = handler.Handle(DeleteStockCommand{ID: record.ID})
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestUpdateStockMetadata(t *testing.T) {
	store := repository.NewMemoryStore()
	record := seedStock(t, store, "hub-alpha", "MANGO-ALP", 11, 10)
	handler := NewUpdateStockHandler(store.StockRepository())

	name := "Alphonso Mango"
	reorder := 20
	updated, err := handler.Handle(UpdateStockCommand{
		ID:           record.ID,
		Name:         &name,
		ReorderLevel: &reorder,
	})
	require.NoError(t, err)

	assert.Equal(t, "Alphonso Mango", updated.Name)
	assert.Equal(t, 11, updated.Quantity)
	// Raising the reorder level above the quantity re-derives the status.
	assert.Equal(t, domain.StatusReorderNeeded, updated.Status)

	bad := -1
	_, err = handler.Handle(UpdateStockCommand{ID: record.ID, ReorderLevel: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}
