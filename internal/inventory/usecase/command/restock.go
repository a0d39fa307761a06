package command

import (
	"context"
	"fmt"

	"github.com/hubstack/inventory-service/internal/inventory/domain"
)

// RestockCommand represents the command to add units to a stock record
type RestockCommand struct {
	ID     uint
	Amount int
}

// RestockHandler handles restock command
type RestockHandler struct {
	repo domain.StockRepository
}

// NewRestockHandler creates a new restock handler
func NewRestockHandler(repo domain.StockRepository) *RestockHandler {
	return &RestockHandler{repo: repo}
}

// Handle executes the restock command. The delta goes through the
// repository's locked AdjustQuantity unit, so concurrent restocks of
// the same record serialize and none is lost.
func (h *RestockHandler) Handle(ctx context.Context, cmd RestockCommand) (*domain.StockRecord, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}
	if cmd.Amount <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	return h.repo.AdjustQuantity(ctx, cmd.ID, cmd.Amount)
}
