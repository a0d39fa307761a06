package command

import (
	"github.com/hubstack/inventory-service/internal/inventory/domain"
)

// MarkOutOfStockCommand represents the command to zero a stock record
type MarkOutOfStockCommand struct {
	ID uint
}

// MarkOutOfStockHandler handles mark out of stock command. It is a
// convenience over SetQuantity(0).
type MarkOutOfStockHandler struct {
	setQuantity *SetQuantityHandler
}

// NewMarkOutOfStockHandler creates a new mark out of stock handler
func NewMarkOutOfStockHandler(repo domain.StockRepository) *MarkOutOfStockHandler {
	return &MarkOutOfStockHandler{setQuantity: NewSetQuantityHandler(repo)}
}

// Handle executes the mark out of stock command
func (h *MarkOutOfStockHandler) Handle(cmd MarkOutOfStockCommand) (*domain.StockRecord, error) {
	return h.setQuantity.Handle(SetQuantityCommand{ID: cmd.ID, Quantity: 0})
}
