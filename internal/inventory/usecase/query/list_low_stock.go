package query

import (
	"fmt"

	"github.com/hubstack/inventory-service/internal/inventory/domain"
)

// ListLowStockQuery represents the query for records needing reorder
type ListLowStockQuery struct {
	HubID string
}

// ListLowStockHandler handles list low stock query
type ListLowStockHandler struct {
	repo domain.StockRepository
}

// NewListLowStockHandler creates a new list low stock handler
func NewListLowStockHandler(repo domain.StockRepository) *ListLowStockHandler {
	return &ListLowStockHandler{repo: repo}
}

// Handle executes the list low stock query. The filter is quantity
// below reorder level, the same comparison the status derivation uses,
// so the report can never disagree with record status.
func (h *ListLowStockHandler) Handle(q ListLowStockQuery) ([]domain.StockRecord, error) {
	if q.HubID == "" {
		return nil, fmt.Errorf("hub_id is required")
	}
	return h.repo.FindLowStock(q.HubID)
}
