package query

import (
	"github.com/hubstack/inventory-service/internal/inventory/domain"
)

// ListTransferRequestsQuery represents the query to list transfer requests
type ListTransferRequestsQuery struct {
	Status domain.TransferStatus
	Limit  int
	Offset int
}

// ListTransferRequestsHandler handles list transfer requests query
type ListTransferRequestsHandler struct {
	repo domain.TransferRepository
}

// NewListTransferRequestsHandler creates a new list transfer requests handler
func NewListTransferRequestsHandler(repo domain.TransferRepository) *ListTransferRequestsHandler {
	return &ListTransferRequestsHandler{repo: repo}
}

// Handle executes the list transfer requests query
func (h *ListTransferRequestsHandler) Handle(q ListTransferRequestsQuery) ([]domain.TransferRequest, error) {
	if q.Limit <= 0 {
		q.Limit = 20
	}
	return h.repo.FindAll(q.Status, q.Limit, q.Offset)
}
