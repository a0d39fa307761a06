package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hubstack/inventory-service/internal/inventory/domain"
	"github.com/hubstack/inventory-service/pkg/logger"
)

// CreateTransferRequestCommand represents the command to queue an
// approval-gated transfer
type CreateTransferRequestCommand struct {
	SourceHubID      string
	DestinationHubID string
	SKU              string
	Quantity         int
	RequestedBy      string
	Notes            string
}

// CreateTransferRequestHandler handles create transfer request command
type CreateTransferRequestHandler struct {
	requests domain.TransferRepository
	stock    domain.StockRepository
	hubs     domain.HubDirectory
}

// NewCreateTransferRequestHandler creates a new create transfer request handler
func NewCreateTransferRequestHandler(requests domain.TransferRepository, stock domain.StockRepository, hubs domain.HubDirectory) *CreateTransferRequestHandler {
	return &CreateTransferRequestHandler{requests: requests, stock: stock, hubs: hubs}
}

// Handle executes the create transfer request command. Availability is
// deliberately NOT checked here: requests are a queue of intents, not
// reservations, and stock is re-validated when the request is decided.
// The item name is snapshotted so the request stays readable even if
// the stock record is later deleted.
func (h *CreateTransferRequestHandler) Handle(ctx context.Context, cmd CreateTransferRequestCommand) (*domain.TransferRequest, error) {
	if cmd.SourceHubID == "" || cmd.DestinationHubID == "" {
		return nil, fmt.Errorf("source and destination hub are required")
	}
	if cmd.SKU == "" {
		return nil, fmt.Errorf("sku is required")
	}
	if cmd.RequestedBy == "" {
		return nil, fmt.Errorf("requested_by is required")
	}
	if cmd.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if cmd.SourceHubID == cmd.DestinationHubID {
		return nil, domain.ErrSameHub
	}

	exists, err := h.hubs.Exists(ctx, cmd.DestinationHubID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up destination hub: %w", err)
	}
	if !exists {
		return nil, domain.ErrDestinationHubNotFound
	}

	record, err := h.stock.FindByHubAndSKU(cmd.SourceHubID, cmd.SKU)
	if err != nil {
		return nil, domain.ErrSourceNotFound
	}

	request := &domain.TransferRequest{
		RequestCode:      newRequestCode(),
		SourceHubID:      cmd.SourceHubID,
		DestinationHubID: cmd.DestinationHubID,
		SKU:              cmd.SKU,
		ItemName:         record.Name,
		Quantity:         cmd.Quantity,
		Status:           domain.TransferPending,
		RequestedBy:      cmd.RequestedBy,
		Notes:            cmd.Notes,
	}

	if err := h.requests.Create(request); err != nil {
		return nil, fmt.Errorf("failed to create transfer request: %w", err)
	}

	logger.Logger.Info().
		Str("request_code", request.RequestCode).
		Str("source_hub", cmd.SourceHubID).
		Str("destination_hub", cmd.DestinationHubID).
		Str("sku", cmd.SKU).
		Int("quantity", cmd.Quantity).
		Msg("Transfer request created")

	return request, nil
}

func newRequestCode() string {
	return "TR-" + strings.ToUpper(uuid.New().String()[:8])
}
