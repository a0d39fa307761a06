package query

import (
	"github.com/hubstack/inventory-service/internal/inventory/domain"
)

// PendingTransferCountHandler handles the pending transfer count
// aggregate used by operational dashboards
type PendingTransferCountHandler struct {
	repo domain.TransferRepository
}

// NewPendingTransferCountHandler creates a new pending transfer count handler
func NewPendingTransferCountHandler(repo domain.TransferRepository) *PendingTransferCountHandler {
	return &PendingTransferCountHandler{repo: repo}
}

// Handle executes the pending transfer count query
func (h *PendingTransferCountHandler) Handle() (int64, error) {
	return h.repo.CountByStatus(domain.TransferPending)
}
