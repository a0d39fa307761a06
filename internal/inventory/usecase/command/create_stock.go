package command

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hubstack/inventory-service/internal/inventory/domain"
)

// CreateStockCommand represents the command to stock a SKU at a hub
type CreateStockCommand struct {
	HubID        string
	SKU          string
	Name         string
	Quantity     int
	ReorderLevel int
	UnitPrice    *decimal.Decimal
	Unit         string
}

// CreateStockHandler handles create stock command
type CreateStockHandler struct {
	repo domain.StockRepository
}

// NewCreateStockHandler creates a new create stock handler
func NewCreateStockHandler(repo domain.StockRepository) *CreateStockHandler {
	return &CreateStockHandler{repo: repo}
}

// Handle executes the create stock command
func (h *CreateStockHandler) Handle(cmd CreateStockCommand) (*domain.StockRecord, error) {
	if cmd.HubID == "" {
		return nil, fmt.Errorf("hub_id is required")
	}
	if cmd.SKU == "" {
		return nil, fmt.Errorf("sku is required")
	}
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if cmd.Quantity < 0 || cmd.ReorderLevel < 0 {
		return nil, domain.ErrInvalidQuantity
	}

	_, err := h.repo.FindByHubAndSKU(cmd.HubID, cmd.SKU)
	if err == nil {
		return nil, domain.ErrDuplicateSKU
	}
	if !errors.Is(err, domain.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing stock: %w", err)
	}

	record := &domain.StockRecord{
		HubID:        cmd.HubID,
		SKU:          cmd.SKU,
		Name:         cmd.Name,
		Quantity:     cmd.Quantity,
		ReorderLevel: cmd.ReorderLevel,
		UnitPrice:    cmd.UnitPrice,
		Unit:         cmd.Unit,
	}
	if record.Unit == "" {
		record.Unit = "pcs"
	}
	if cmd.Quantity > 0 {
		now := time.Now()
		record.LastRestockedAt = &now
	}
	record.RecomputeStatus()

	if err := h.repo.Create(record); err != nil {
		if errors.Is(err, domain.ErrDuplicateSKU) {
			return nil, domain.ErrDuplicateSKU
		}
		return nil, fmt.Errorf("failed to create stock record: %w", err)
	}

	return record, nil
}
