package command

import (
	"fmt"

	"github.com/hubstack/inventory-service/internal/inventory/domain"
)

// DeleteStockCommand represents the command to hard-delete a stock record
type DeleteStockCommand struct {
	ID uint
}

// DeleteStockHandler handles delete stock command
type DeleteStockHandler struct {
	repo domain.StockRepository
}

// NewDeleteStockHandler creates a new delete stock handler
func NewDeleteStockHandler(repo domain.StockRepository) *DeleteStockHandler {
	return &DeleteStockHandler{repo: repo}
}

// Handle executes the delete stock command. Historic transfer requests
// keep their SKU and item name as point-in-time text, so no cascading
// cleanup happens here.
func (h *DeleteStockHandler) Handle(cmd DeleteStockCommand) error {
	if cmd.ID == 0 {
		return fmt.Errorf("id is required")
	}
	return h.repo.Delete(cmd.ID)
}
