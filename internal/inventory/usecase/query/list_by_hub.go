package query

import (
	"fmt"

	"github.com/hubstack/inventory-service/internal/inventory/domain"
)

// ListByHubQuery represents the query to list stock records at a hub
type ListByHubQuery struct {
	HubID  string
	Status domain.StockStatus
	Search string
	Limit  int
	Offset int
}

// ListByHubHandler handles list by hub query
type ListByHubHandler struct {
	repo domain.StockRepository
}

// NewListByHubHandler creates a new list by hub handler
func NewListByHubHandler(repo domain.StockRepository) *ListByHubHandler {
	return &ListByHubHandler{repo: repo}
}

// Handle executes the list by hub query
func (h *ListByHubHandler) Handle(q ListByHubQuery) ([]domain.StockRecord, error) {
	if q.HubID == "" {
		return nil, fmt.Errorf("hub_id is required")
	}
	if q.Limit <= 0 {
		q.Limit = 50
	}
	return h.repo.FindByHub(q.HubID, q.Status, q.Search, q.Limit, q.Offset)
}
