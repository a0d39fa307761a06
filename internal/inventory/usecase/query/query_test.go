package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubstack/inventory-service/internal/inventory/domain"
	"github.com/hubstack/inventory-service/internal/inventory/repository"
)

func seedStock(t *testing.T, store *repository.MemoryStore, hubID, sku, name string, quantity, reorderLevel int) *domain.StockRecord {
	t.Helper()
	record := &domain.StockRecord{
		HubID:        hubID,
		SKU:          sku,
		Name:         name,
		Quantity:     quantity,
		ReorderLevel: reorderLevel,
	}
	record.RecomputeStatus()
	require.NoError(t, store.StockRepository().Create(record))
	return record
}

func seedRequest(t *testing.T, store *repository.MemoryStore, code string, status domain.TransferStatus) *domain.TransferRequest {
	t.Helper()
	request := &domain.TransferRequest{
		RequestCode:      code,
		SourceHubID:      "hub-alpha",
		DestinationHubID: "hub-beta",
		SKU:              "MANGO-ALP",
		ItemName:         "Alphonso Mango",
		Quantity:         10,
		Status:           status,
		RequestedBy:      "alice",
	}
	require.NoError(t, store.TransferRepository().Create(request))
	return request
}

func TestGetStock(t *testing.T) {
	store := repository.NewMemoryStore()
	record := seedStock(t, store, "hub-alpha", "MANGO-ALP", "Alphonso Mango", 50, 10)
	handler := NewGetStockHandler(store.StockRepository())

	got, err := handler.Handle(GetStockQuery{ID: record.ID})
	require.NoError(t, err)
	assert.Equal(t, record.SKU, got.SKU)

	_, err = handler.Handle(GetStockQuery{ID: 999})
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	_, err = handler.Handle(GetStockQuery{})
	assert.Error(t, err)
}

func TestListByHub(t *testing.T) {
	store := repository.NewMemoryStore()
	seedStock(t, store, "hub-alpha", "MANGO-ALP", "Alphonso Mango", 50, 10)
	seedStock(t, store, "hub-alpha", "KIWI-GRN", "Green Kiwi", 0, 5)
	seedStock(t, store, "hub-beta", "MANGO-ALP", "Alphonso Mango", 20, 10)
	handler := NewListByHubHandler(store.StockRepository())

	records, err := handler.Handle(ListByHubQuery{HubID: "hub-alpha"})
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = handler.Handle(ListByHubQuery{HubID: "hub-alpha", Status: domain.StatusOutOfStock})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "KIWI-GRN", records[0].SKU)

	records, err = handler.Handle(ListByHubQuery{HubID: "hub-alpha", Search: "mango"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "MANGO-ALP", records[0].SKU)

	_, err = handler.Handle(ListByHubQuery{})
	assert.Error(t, err)
}

func TestListLowStock(t *testing.T) {
	store := repository.NewMemoryStore()
	seedStock(t, store, "hub-alpha", "BELOW", "Below reorder", 5, 10)
	seedStock(t, store, "hub-alpha", "AT", "At reorder", 10, 10)
	seedStock(t, store, "hub-alpha", "ABOVE", "Above reorder", 50, 10)
	seedStock(t, store, "hub-alpha", "EMPTY", "Out of stock", 0, 10)
	seedStock(t, store, "hub-beta", "BELOW", "Below reorder", 5, 10)
	handler := NewListLowStockHandler(store.StockRepository())

	records, err := handler.Handle(ListLowStockQuery{HubID: "hub-alpha"})
	require.NoError(t, err)

	// Strictly below reorder level: AT (quantity == reorder) is excluded,
	// EMPTY (quantity 0) is included.
	require.Len(t, records, 2)
	skus := []string{records[0].SKU, records[1].SKU}
	assert.ElementsMatch(t, []string{"BELOW", "EMPTY"}, skus)
}

func TestListTransferRequests(t *testing.T) {
	store := repository.NewMemoryStore()
	seedRequest(t, store, "TR-AAAA1111", domain.TransferPending)
	seedRequest(t, store, "TR-BBBB2222", domain.TransferApproved)
	seedRequest(t, store, "TR-CCCC3333", domain.TransferPending)
	handler := NewListTransferRequestsHandler(store.TransferRepository())

	requests, err := handler.Handle(ListTransferRequestsQuery{})
	require.NoError(t, err)
	assert.Len(t, requests, 3)

	requests, err = handler.Handle(ListTransferRequestsQuery{Status: domain.TransferPending})
	require.NoError(t, err)
	assert.Len(t, requests, 2)

	requests, err = handler.Handle(ListTransferRequestsQuery{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, requests, 1)
}

func TestPendingTransferCount(t *testing.T) {
	store := repository.NewMemoryStore()
	handler := NewPendingTransferCountHandler(store.TransferRepository())

	count, err := handler.Handle()
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	seedRequest(t, store, "TR-AAAA1111", domain.TransferPending)
	seedRequest(t, store, "TR-BBBB2222", domain.TransferRejected)
	seedRequest(t, store, "TR-CCCC3333", domain.TransferPending)

	count, err = handler.Handle()
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestGetTransferRequest(t *testing.T) {
	store := repository.NewMemoryStore()
	request := seedRequest(t, store, "TR-AAAA1111", domain.TransferPending)
	handler := NewGetTransferRequestHandler(store.TransferRepository())

	got, err := handler.Handle(GetTransferRequestQuery{ID: request.ID})
	require.NoError(t, err)
	assert.Equal(t, request.RequestCode, got.RequestCode)

	got, err = handler.Handle(GetTransferRequestQuery{Code: "TR-AAAA1111"})
	require.NoError(t, err)
	assert.Equal(t, request.ID, got.ID)

	_, err = handler.Handle(GetTransferRequestQuery{Code: "TR-MISSING1"})
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)

	_, err = handler.Handle(GetTransferRequestQuery{})
	assert.Error(t, err)
}
