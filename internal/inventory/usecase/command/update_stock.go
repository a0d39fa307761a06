package command

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hubstack/inventory-service/internal/inventory/domain"
)

// UpdateStockCommand represents the command to edit stock record metadata.
// Nil fields are left unchanged. Quantity is not editable here; use
// SetQuantityCommand so restock tracking and status derivation stay in
// one path.
type UpdateStockCommand struct {
	ID           uint
	Name         *string
	ReorderLevel *int
	UnitPrice    *decimal.Decimal
	Unit         *string
}

// UpdateStockHandler handles update stock command
type UpdateStockHandler struct {
	repo domain.StockRepository
}

// NewUpdateStockHandler creates a new update stock handler
func NewUpdateStockHandler(repo domain.StockRepository) *UpdateStockHandler {
	return &UpdateStockHandler{repo: repo}
}

// Handle executes the update stock command
func (h *UpdateStockHandler) Handle(cmd UpdateStockCommand) (*domain.StockRecord, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}

	record, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		record.Name = *cmd.Name
	}
	if cmd.ReorderLevel != nil {
		if *cmd.ReorderLevel < 0 {
			return nil, domain.ErrInvalidQuantity
		}
		record.ReorderLevel = *cmd.ReorderLevel
	}
	if cmd.UnitPrice != nil {
		record.UnitPrice = cmd.UnitPrice
	}
	if cmd.Unit != nil {
		record.Unit = *cmd.Unit
	}

	record.RecomputeStatus()
	if err := h.repo.Update(record); err != nil {
		return nil, fmt.Errorf("failed to update stock record: %w", err)
	}

	return record, nil
}
