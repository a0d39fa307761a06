package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubstack/inventory-service/internal/inventory/domain"
)

func newStock(hubID, sku string, quantity, reorderLevel int) *domain.StockRecord {
	record := &domain.StockRecord{
		HubID:        hubID,
		SKU:          sku,
		Name:         sku,
		Quantity:     quantity,
		ReorderLevel: reorderLevel,
	}
	record.RecomputeStatus()
	return record
}

func TestMemoryStockRepositoryCreate(t *testing.T) {
	store := NewMemoryStore()
	repo := store.StockRepository()

	record := newStock("hub-alpha", "MANGO-ALP", 50, 10)
	require.NoError(t, repo.Create(record))
	assert.NotZero(t, record.ID)
	assert.False(t, record.CreatedAt.IsZero())

	err := repo.Create(newStock("hub-alpha", "MANGO-ALP", 1, 1))
	assert.ErrorIs(t, err, domain.ErrDuplicateSKU)
}

func TestMemoryStockRepositoryReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	repo := store.StockRepository()

	record := newStock("hub-alpha", "MANGO-ALP", 50, 10)
	require.NoError(t, repo.Create(record))

	got, err := repo.FindByID(record.ID)
	require.NoError(t, err)
	got.Quantity = 0

	// Mutating the returned record must not leak into the store.
	again, err := repo.FindByID(record.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, again.Quantity)
}

func TestMemoryTransfer(t *testing.T) {
	store := NewMemoryStore()
	repo := store.StockRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(newStock("hub-alpha", "MANGO-ALP", 50, 10)))

	outcome, err := repo.Transfer(ctx, "hub-alpha", "hub-beta", "MANGO-ALP", 45)
	require.NoError(t, err)

	assert.Equal(t, 5, outcome.Source.Quantity)
	assert.Equal(t, domain.StatusReorderNeeded, outcome.Source.Status)
	assert.True(t, outcome.DestinationCreated)
	assert.Equal(t, 45, outcome.Destination.Quantity)

	// Second transfer credits the now-existing destination record.
	outcome, err = repo.Transfer(ctx, "hub-alpha", "hub-beta", "MANGO-ALP", 5)
	require.NoError(t, err)
	assert.False(t, outcome.DestinationCreated)
	assert.Equal(t, 50, outcome.Destination.Quantity)
	assert.Equal(t, 0, outcome.Source.Quantity)
	assert.Equal(t, domain.StatusOutOfStock, outcome.Source.Status)
}

func TestMemoryTransferErrors(t *testing.T) {
	store := NewMemoryStore()
	repo := store.StockRepository()
	ctx := context.Background()

	_, err := repo.Transfer(ctx, "hub-alpha", "hub-beta", "MANGO-ALP", 1)
	assert.ErrorIs(t, err, domain.ErrSourceNotFound)

	require.NoError(t, repo.Create(newStock("hub-alpha", "MANGO-ALP", 5, 10)))

	_, err = repo.Transfer(ctx, "hub-alpha", "hub-beta", "MANGO-ALP", 30)
	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 5, insufficient.Available)
	assert.Equal(t, 30, insufficient.Requested)
}

func TestMemoryAdjustQuantity(t *testing.T) {
	store := NewMemoryStore()
	repo := store.StockRepository()
	ctx := context.Background()

	record := newStock("hub-alpha", "MANGO-ALP", 5, 10)
	require.NoError(t, repo.Create(record))

	adjusted, err := repo.AdjustQuantity(ctx, record.ID, 20)
	require.NoError(t, err)
	assert.Equal(t, 25, adjusted.Quantity)
	assert.Equal(t, domain.StatusInStock, adjusted.Status)
	assert.NotNil(t, adjusted.LastRestockedAt)

	adjusted, err = repo.AdjustQuantity(ctx, record.ID, -25)
	require.NoError(t, err)
	assert.Equal(t, 0, adjusted.Quantity)
	assert.Equal(t, domain.StatusOutOfStock, adjusted.Status)

	_, err = repo.AdjustQuantity(ctx, 999, 1)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestMemoryAdjustQuantityRejectsBelowZero(t *testing.T) {
	store := NewMemoryStore()
	repo := store.StockRepository()
	ctx := context.Background()

	record := newStock("hub-alpha", "MANGO-ALP", 5, 10)
	require.NoError(t, repo.Create(record))

	_, err := repo.AdjustQuantity(ctx, record.ID, -30)
	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 5, insufficient.Available)
	assert.Equal(t, 30, insufficient.Requested)

	// The failed debit leaves the record untouched.
	current, err := repo.FindByID(record.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, current.Quantity)
}

func TestMemoryTransferConcurrentNeverNegative(t *testing.T) {
	store := NewMemoryStore()
	repo := store.StockRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(newStock("hub-alpha", "MANGO-ALP", 100, 10)))

	// 20 goroutines each try to move 10 units; only 10 can succeed.
	var wg sync.WaitGroup
	succeeded := make(chan struct{}, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Transfer(ctx, "hub-alpha", "hub-beta", "MANGO-ALP", 10); err == nil {
				succeeded <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(succeeded)

	assert.Equal(t, 10, len(succeeded))

	source, err := repo.FindByHubAndSKU("hub-alpha", "MANGO-ALP")
	require.NoError(t, err)
	assert.Equal(t, 0, source.Quantity)

	dest, err := repo.FindByHubAndSKU("hub-beta", "MANGO-ALP")
	require.NoError(t, err)
	assert.Equal(t, 100, dest.Quantity)
}

func TestMemoryTransferRepositoryDecideLifecycle(t *testing.T) {
	store := NewMemoryStore()
	stock := store.StockRepository()
	requests := store.TransferRepository()
	ctx := context.Background()

	require.NoError(t, stock.Create(newStock("hub-alpha", "MANGO-ALP", 50, 10)))

	request := &domain.TransferRequest{
		RequestCode:      "TR-TEST0001",
		SourceHubID:      "hub-alpha",
		DestinationHubID: "hub-beta",
		SKU:              "MANGO-ALP",
		ItemName:         "MANGO-ALP",
		Quantity:         20,
		Status:           domain.TransferPending,
		RequestedBy:      "alice",
	}
	require.NoError(t, requests.Create(request))

	outcome, err := requests.Decide(ctx, request.ID, domain.Decision{Approve: true, ApprovedBy: "bob"})
	require.NoError(t, err)
	assert.Equal(t, domain.TransferApproved, outcome.Request.Status)
	require.NotNil(t, outcome.Move)
	assert.Equal(t, 30, outcome.Move.Source.Quantity)

	_, err = requests.Decide(ctx, request.ID, domain.Decision{Approve: false, ApprovedBy: "bob"})
	assert.ErrorIs(t, err, domain.ErrNotPending)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, paginate(items, 2, 0))
	assert.Equal(t, []int{3, 4}, paginate(items, 2, 2))
	assert.Equal(t, []int{5}, paginate(items, 2, 4))
	assert.Nil(t, paginate(items, 2, 5))
	assert.Equal(t, items, paginate(items, 0, 0))
}
