package command

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubstack/inventory-service/internal/inventory/domain"
	"github.com/hubstack/inventory-service/internal/inventory/repository"
	"github.com/hubstack/inventory-service/kafka"
)

// stubHubDirectory answers hub lookups from a fixed set.
type stubHubDirectory struct {
	known map[string]bool
}

func newStubHubDirectory(hubIDs ...string) *stubHubDirectory {
	known := make(map[string]bool, len(hubIDs))
	for _, id := range hubIDs {
		known[id] = true
	}
	return &stubHubDirectory{known: known}
}

func (d *stubHubDirectory) Exists(ctx context.Context, hubID string) (bool, error) {
	return d.known[hubID], nil
}

func (d *stubHubDirectory) Get(ctx context.Context, hubID string) (*domain.Hub, error) {
	if !d.known[hubID] {
		return nil, domain.ErrDestinationHubNotFound
	}
	return &domain.Hub{ID: hubID, Name: hubID}, nil
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []kafka.StockTransferredEvent
}

func (p *recordingPublisher) PublishStockTransferred(ctx context.Context, event kafka.StockTransferredEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func TestDirectTransfer(t *testing.T) {
	store := repository.NewMemoryStore()
	hubs := newStubHubDirectory("hub-alpha", "hub-beta")
	events := &recordingPublisher{}

	source, err := NewCreateStockHandler(store.StockRepository()).Handle(CreateStockCommand{
		HubID:        "hub-alpha",
		SKU:          "MANGO-ALP",
		Name:         "Alphonso Mango",
		Quantity:     50,
		ReorderLevel: 10,
		Unit:         "kg",
	})
	require.NoError(t, err)

	handler := NewDirectTransferHandler(store.StockRepository(), hubs, events)
	outcome, err := handler.Handle(context.Background(), DirectTransferCommand{
		SourceHubID:      "hub-alpha",
		DestinationHubID: "hub-beta",
		SKU:              "MANGO-ALP",
		Quantity:         45,
	})
	require.NoError(t, err)

	// Source drops to 5, which is below the reorder level of 10.
	assert.Equal(t, 5, outcome.Source.Quantity)
	assert.Equal(t, domain.StatusReorderNeeded, outcome.Source.Status)

	// Destination record is created with the source metadata.
	assert.True(t, outcome.DestinationCreated)
	assert.Equal(t, 45, outcome.Destination.Quantity)
	assert.Equal(t, domain.StatusInStock, outcome.Destination.Status)
	assert.Equal(t, "Alphonso Mango", outcome.Destination.Name)
	assert.Equal(t, 10, outcome.Destination.ReorderLevel)
	assert.Equal(t, "kg", outcome.Destination.Unit)
	assert.NotNil(t, outcome.Destination.LastRestockedAt)

	// Units are conserved across hubs.
	assert.Equal(t, source.Quantity, outcome.Source.Quantity+outcome.Destination.Quantity)

	require.Len(t, events.events, 1)
	assert.Equal(t, kafka.TransferTypeDirect, events.events[0].TransferType)
	assert.Equal(t, 45, events.events[0].Quantity)
}

func TestDirectTransferIntoExistingRecord(t *testing.T) {
	store := repository.NewMemoryStore()
	hubs := newStubHubDirectory("hub-alpha", "hub-beta")
	create := NewCreateStockHandler(store.StockRepository())

	_, err := create.Handle(CreateStockCommand{
		HubID: "hub-alpha", SKU: "MANGO-ALP", Name: "Alphonso Mango", Quantity: 50, ReorderLevel: 10,
	})
	require.NoError(t, err)
	_, err = create.Handle(CreateStockCommand{
		HubID: "hub-beta", SKU: "MANGO-ALP", Name: "Alphonso Mango", Quantity: 3, ReorderLevel: 10,
	})
	require.NoError(t, err)

	handler := NewDirectTransferHandler(store.StockRepository(), hubs, nil)
	outcome, err := handler.Handle(context.Background(), DirectTransferCommand{
		SourceHubID:      "hub-alpha",
		DestinationHubID: "hub-beta",
		SKU:              "MANGO-ALP",
		Quantity:         10,
	})
	require.NoError(t, err)

	assert.False(t, outcome.DestinationCreated)
	assert.Equal(t, 13, outcome.Destination.Quantity)
	assert.Equal(t, 40, outcome.Source.Quantity)
}

func TestDirectTransferSameHub(t *testing.T) {
	store := repository.NewMemoryStore()
	handler := NewDirectTransferHandler(store.StockRepository(), newStubHubDirectory("hub-alpha"), nil)

	_, err := handler.Handle(context.Background(), DirectTransferCommand{
		SourceHubID:      "hub-alpha",
		DestinationHubID: "hub-alpha",
		SKU:              "MANGO-ALP",
		Quantity:         1,
	})
	assert.ErrorIs(t, err, domain.ErrSameHub)
}

func TestDirectTransferSourceNotFound(t *testing.T) {
	store := repository.NewMemoryStore()
	handler := NewDirectTransferHandler(store.StockRepository(), newStubHubDirectory("hub-alpha", "hub-beta"), nil)

	_, err := handler.Handle(context.Background(), DirectTransferCommand{
		SourceHubID:      "hub-alpha",
		DestinationHubID: "hub-beta",
		SKU:              "MANGO-ALP",
		Quantity:         1,
	})
	assert.ErrorIs(t, err, domain.ErrSourceNotFound)
}

func TestDirectTransferDestinationHubNotFound(t *testing.T) {
	store := repository.NewMemoryStore()
	seedStock(t, store, "hub-alpha", "MANGO-ALP", 50, 10)
	handler := NewDirectTransferHandler(store.StockRepository(), newStubHubDirectory("hub-alpha"), nil)

	_, err := handler.Handle(context.Background(), DirectTransferCommand{
		SourceHubID:      "hub-alpha",
		DestinationHubID: "hub-ghost",
		SKU:              "MANGO-ALP",
		Quantity:         1,
	})
	assert.ErrorIs(t, err, domain.ErrDestinationHubNotFound)
}

func TestDirectTransferInsufficientStock(t *testing.T) {
	store := repository.NewMemoryStore()
	seedStock(t, store, "hub-alpha", "MANGO-ALP", 5, 10)
	handler := NewDirectTransferHandler(store.StockRepository(), newStubHubDirectory("hub-alpha", "hub-beta"), nil)

	_, err := handler.Handle(context.Background(), DirectTransferCommand{
		SourceHubID:      "hub-alpha",
		DestinationHubID: "hub-beta",
		SKU:              "MANGO-ALP",
		Quantity:         30,
	})

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 5, insufficient.Available)
	assert.Equal(t, 30, insufficient.Requested)

	// Nothing moved.
	current, err := store.StockRepository().FindByHubAndSKU("hub-alpha", "MANGO-ALP")
	require.NoError(t, err)
	assert.Equal(t, 5, current.Quantity)
	_, err = store.StockRepository().FindByHubAndSKU("hub-beta", "MANGO-ALP")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestDirectTransferInvalidQuantity(t *testing.T) {
	store := repository.NewMemoryStore()
	handler := NewDirectTransferHandler(store.StockRepository(), newStubHubDirectory("hub-alpha", "hub-beta"), nil)

	for _, quantity := range []int{0, -5} {
		_, err := handler.Handle(context.Background(), DirectTransferCommand{
			SourceHubID:      "hub-alpha",
			DestinationHubID: "hub-beta",
			SKU:              "MANGO-ALP",
			Quantity:         quantity,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}
}

func TestDirectTransferConcurrentFullAmount(t *testing.T) {
	store := repository.NewMemoryStore()
	seedStock(t, store, "hub-alpha", "MANGO-ALP", 50, 10)
	hubs := newStubHubDirectory("hub-alpha", "hub-beta", "hub-gamma")
	handler := NewDirectTransferHandler(store.StockRepository(), hubs, nil)

	// Two transfers race for the full amount; exactly one may win.
	destinations := []string{"hub-beta", "hub-gamma"}
	errs := make([]error, len(destinations))

	var wg sync.WaitGroup
	for i, dest := range destinations {
		wg.Add(1)
		go func(i int, dest string) {
			defer wg.Done()
			_, errs[i] = handler.Handle(context.Background(), DirectTransferCommand{
				SourceHubID:      "hub-alpha",
				DestinationHubID: dest,
				SKU:              "MANGO-ALP",
				Quantity:         50,
			})
		}(i, dest)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			var insufficient *domain.InsufficientStockError
			require.ErrorAs(t, err, &insufficient)
		}
	}
	assert.Equal(t, 1, succeeded)

	source, err := store.StockRepository().FindByHubAndSKU("hub-alpha", "MANGO-ALP")
	require.NoError(t, err)
	assert.Equal(t, 0, source.Quantity)
	assert.Equal(t, domain.StatusOutOfStock, source.Status)
}
