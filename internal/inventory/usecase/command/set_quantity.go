package command

import (
	"fmt"
	"time"

	"github.com/hubstack/inventory-service/internal/inventory/domain"
)

// SetQuantityCommand represents the command to set an absolute quantity
type SetQuantityCommand struct {
	ID       uint
	Quantity int
}

// SetQuantityHandler handles set quantity command
type SetQuantityHandler struct {
	repo domain.StockRepository
}

// NewSetQuantityHandler creates a new set quantity handler
func NewSetQuantityHandler(repo domain.StockRepository) *SetQuantityHandler {
	return &SetQuantityHandler{repo: repo}
}

// Handle executes the set quantity command
func (h *SetQuantityHandler) Handle(cmd SetQuantityCommand) (*domain.StockRecord, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}
	if cmd.Quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}

	record, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Quantity > record.Quantity {
		now := time.Now()
		record.LastRestockedAt = &now
	}
	record.Quantity = cmd.Quantity
	record.RecomputeStatus()

	if err := h.repo.Update(record); err != nil {
		return nil, fmt.Errorf("failed to set quantity: %w", err)
	}

	return record, nil
}
