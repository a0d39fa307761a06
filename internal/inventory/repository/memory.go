package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hubstack/inventory-service/internal/inventory/domain"
)

// MemoryStore backs the in-memory repositories. A single mutex plays the
// role of the database row locks: every mutating unit runs start to
// finish under it, which preserves the serialization the Postgres
// implementation gets from SELECT ... FOR UPDATE.
type MemoryStore struct {
	mu            sync.Mutex
	stock         map[uint]*domain.StockRecord
	requests      map[uint]*domain.TransferRequest
	nextStockID   uint
	nextRequestID uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		stock:         make(map[uint]*domain.StockRecord),
		requests:      make(map[uint]*domain.TransferRequest),
		nextStockID:   1,
		nextRequestID: 1,
	}
}

// StockRepository returns a domain.StockRepository view of the store.
func (s *MemoryStore) StockRepository() *MemoryStockRepository {
	return &MemoryStockRepository{store: s}
}

// TransferRepository returns a domain.TransferRepository view of the store.
func (s *MemoryStore) TransferRepository() *MemoryTransferRepository {
	return &MemoryTransferRepository{store: s}
}

func (s *MemoryStore) findStock(hubID, sku string) *domain.StockRecord {
	for _, record := range s.stock {
		if record.HubID == hubID && record.SKU == sku {
			return record
		}
	}
	return nil
}

// moveStock mirrors the transactional debit/credit of the GORM
// repository. Caller must hold s.mu.
func (s *MemoryStore) moveStock(sourceHubID, destHubID, sku string, quantity int) (*domain.TransferOutcome, error) {
	source := s.findStock(sourceHubID, sku)
	if source == nil {
		return nil, domain.ErrSourceNotFound
	}
	if source.Quantity < quantity {
		return nil, &domain.InsufficientStockError{
			Available: source.Quantity,
			Requested: quantity,
		}
	}

	source.Quantity -= quantity
	source.RecomputeStatus()
	source.UpdatedAt = time.Now()

	now := time.Now()
	outcome := &domain.TransferOutcome{}

	dest := s.findStock(destHubID, sku)
	if dest == nil {
		dest = &domain.StockRecord{
			ID:              s.nextStockID,
			HubID:           destHubID,
			SKU:             sku,
			Name:            source.Name,
			Quantity:        quantity,
			ReorderLevel:    source.ReorderLevel,
			UnitPrice:       source.UnitPrice,
			Unit:            source.Unit,
			LastRestockedAt: &now,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		dest.RecomputeStatus()
		s.stock[dest.ID] = dest
		s.nextStockID++
		outcome.DestinationCreated = true
	} else {
		dest.Quantity += quantity
		dest.LastRestockedAt = &now
		dest.RecomputeStatus()
		dest.UpdatedAt = now
	}

	sourceCopy := *source
	destCopy := *dest
	outcome.Source = &sourceCopy
	outcome.Destination = &destCopy
	return outcome, nil
}

type MemoryStockRepository struct {
	store *MemoryStore
}

func (r *MemoryStockRepository) Create(record *domain.StockRecord) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findStock(record.HubID, record.SKU) != nil {
		return domain.ErrDuplicateSKU
	}

	now := time.Now()
	record.ID = s.nextStockID
	record.CreatedAt = now
	record.UpdatedAt = now
	s.nextStockID++

	stored := *record
	s.stock[record.ID] = &stored
	return nil
}

func (r *MemoryStockRepository) FindByID(id uint) (*domain.StockRecord, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.stock[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	found := *record
	return &found, nil
}

func (r *MemoryStockRepository) FindByHubAndSKU(hubID, sku string) (*domain.StockRecord, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.findStock(hubID, sku)
	if record == nil {
		return nil, domain.ErrRecordNotFound
	}
	found := *record
	return &found, nil
}

func (r *MemoryStockRepository) FindByHub(hubID string, status domain.StockStatus, search string, limit, offset int) ([]domain.StockRecord, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []domain.StockRecord
	for _, record := range s.stock {
		if record.HubID != hubID {
			continue
		}
		if status != "" && record.Status != status {
			continue
		}
		if search != "" && !matchesSearch(record, search) {
			continue
		}
		records = append(records, *record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].SKU < records[j].SKU })
	return paginate(records, limit, offset), nil
}

func (r *MemoryStockRepository) FindLowStock(hubID string) ([]domain.StockRecord, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []domain.StockRecord
	for _, record := range s.stock {
		if record.HubID == hubID && record.Quantity < record.ReorderLevel {
			records = append(records, *record)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].SKU < records[j].SKU })
	return records, nil
}

func (r *MemoryStockRepository) Update(record *domain.StockRecord) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.stock[record.ID]; !ok {
		return domain.ErrRecordNotFound
	}
	record.RecomputeStatus()
	record.UpdatedAt = time.Now()
	stored := *record
	s.stock[record.ID] = &stored
	return nil
}

func (r *MemoryStockRepository) Delete(id uint) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.stock[id]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(s.stock, id)
	return nil
}

func (r *MemoryStockRepository) AdjustQuantity(ctx context.Context, id uint, delta int) (*domain.StockRecord, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.stock[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	if record.Quantity+delta < 0 {
		return nil, &domain.InsufficientStockError{
			Available: record.Quantity,
			Requested: -delta,
		}
	}

	now := time.Now()
	record.Quantity += delta
	if delta > 0 {
		record.LastRestockedAt = &now
	}
	record.RecomputeStatus()
	record.UpdatedAt = now

	adjusted := *record
	return &adjusted, nil
}

func (r *MemoryStockRepository) Transfer(ctx context.Context, sourceHubID, destHubID, sku string, quantity int) (*domain.TransferOutcome, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moveStock(sourceHubID, destHubID, sku, quantity)
}

type MemoryTransferRepository struct {
	store *MemoryStore
}

func (r *MemoryTransferRepository) Create(request *domain.TransferRequest) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	request.ID = s.nextRequestID
	request.CreatedAt = now
	request.UpdatedAt = now
	s.nextRequestID++

	stored := *request
	s.requests[request.ID] = &stored
	return nil
}

func (r *MemoryTransferRepository) FindByID(id uint) (*domain.TransferRequest, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	request, ok := s.requests[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	found := *request
	return &found, nil
}

func (r *MemoryTransferRepository) FindByCode(code string) (*domain.TransferRequest, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, request := range s.requests {
		if request.RequestCode == code {
			found := *request
			return &found, nil
		}
	}
	return nil, domain.ErrRequestNotFound
}

func (r *MemoryTransferRepository) FindAll(status domain.TransferStatus, limit, offset int) ([]domain.TransferRequest, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var requests []domain.TransferRequest
	for _, request := range s.requests {
		if status != "" && request.Status != status {
			continue
		}
		requests = append(requests, *request)
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
	return paginate(requests, limit, offset), nil
}

func (r *MemoryTransferRepository) CountByStatus(status domain.TransferStatus) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, request := range s.requests {
		if status == "" || request.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *MemoryTransferRepository) Decide(ctx context.Context, id uint, decision domain.Decision) (*domain.DecisionOutcome, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	request, ok := s.requests[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	if !request.IsPending() {
		return nil, domain.ErrNotPending
	}

	outcome := &domain.DecisionOutcome{}
	if decision.Approve {
		move, err := s.moveStock(request.SourceHubID, request.DestinationHubID, request.SKU, request.Quantity)
		if err != nil {
			// Leave the request PENDING so it can be retried or rejected.
			return nil, err
		}
		outcome.Move = move
		request.Status = domain.TransferApproved
	} else {
		request.Status = domain.TransferRejected
	}

	now := time.Now()
	request.ApprovedBy = &decision.ApprovedBy
	request.DecidedAt = &now
	if decision.Notes != "" {
		request.Notes = decision.Notes
	}
	request.UpdatedAt = now

	decided := *request
	outcome.Request = &decided
	return outcome, nil
}

func matchesSearch(record *domain.StockRecord, search string) bool {
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(record.SKU), needle) ||
		strings.Contains(strings.ToLower(record.Name), needle)
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
