package query

import (
	"fmt"

	"github.com/hubstack/inventory-service/internal/inventory/domain"
)

// GetTransferRequestQuery represents the query to fetch one transfer
// request, by numeric id or by request code
type GetTransferRequestQuery struct {
	ID   uint
	Code string
}

// GetTransferRequestHandler handles get transfer request query
type GetTransferRequestHandler struct {
	repo domain.TransferRepository
}

// NewGetTransferRequestHandler creates a new get transfer request handler
func NewGetTransferRequestHandler(repo domain.TransferRepository) *GetTransferRequestHandler {
	return &GetTransferRequestHandler{repo: repo}
}

// Handle executes the get transfer request query
func (h *GetTransferRequestHandler) Handle(q GetTransferRequestQuery) (*domain.TransferRequest, error) {
	switch {
	case q.ID != 0:
		return h.repo.FindByID(q.ID)
	case q.Code != "":
		return h.repo.FindByCode(q.Code)
	default:
		return nil, fmt.Errorf("id or code is required")
	}
}
