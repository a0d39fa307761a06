package query

import (
	"fmt"

	"github.com/hubstack/inventory-service/internal/inventory/domain"
)

// GetStockQuery represents the query to get a stock record
type GetStockQuery struct {
	ID uint
}

// GetStockHandler handles get stock query
type GetStockHandler struct {
	repo domain.StockRepository
}

// NewGetStockHandler creates a new get stock handler
func NewGetStockHandler(repo domain.StockRepository) *GetStockHandler {
	return &GetStockHandler{repo: repo}
}

// Handle executes the get stock query
func (h *GetStockHandler) Handle(q GetStockQuery) (*domain.StockRecord, error) {
	if q.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}
	return h.repo.FindByID(q.ID)
}
