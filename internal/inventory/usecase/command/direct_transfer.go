package command

import (
	"context"
	"fmt"

	"github.com/hubstack/inventory-service/internal/inventory/domain"
	"github.com/hubstack/inventory-service/kafka"
	"github.com/hubstack/inventory-service/pkg/logger"
)

// EventPublisher publishes stock movement events. A nil publisher
// disables publishing without changing transfer semantics.
type EventPublisher interface {
	PublishStockTransferred(ctx context.Context, event kafka.StockTransferredEvent) error
}

// DirectTransferCommand represents the command to move stock between hubs
type DirectTransferCommand struct {
	SourceHubID      string
	DestinationHubID string
	SKU              string
	Quantity         int
	Notes            string
}

// DirectTransferHandler handles direct transfer command
type DirectTransferHandler struct {
	repo   domain.StockRepository
	hubs   domain.HubDirectory
	events EventPublisher
}

// NewDirectTransferHandler creates a new direct transfer handler
func NewDirectTransferHandler(repo domain.StockRepository, hubs domain.HubDirectory, events EventPublisher) *DirectTransferHandler {
	return &DirectTransferHandler{repo: repo, hubs: hubs, events: events}
}

// Handle executes the direct transfer command. The debit/credit pair is
// applied by the repository as one atomic unit; on any failure nothing
// moves and the caller must re-issue.
func (h *DirectTransferHandler) Handle(ctx context.Context, cmd DirectTransferCommand) (*domain.TransferOutcome, error) {
	if cmd.SourceHubID == "" || cmd.DestinationHubID == "" {
		return nil, fmt.Errorf("source and destination hub are required")
	}
	if cmd.SKU == "" {
		return nil, fmt.Errorf("sku is required")
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

	outcome, err := h.repo.Transfer(ctx, cmd.SourceHubID, cmd.DestinationHubID, cmd.SKU, cmd.Quantity)
	if err != nil {
		return nil, err
	}

	logger.Logger.Info().
		Str("source_hub", cmd.SourceHubID).
		Str("destination_hub", cmd.DestinationHubID).
		Str("sku", cmd.SKU).
		Int("quantity", cmd.Quantity).
		Int("source_remaining", outcome.Source.Quantity).
		Msg("Direct transfer completed")

	if h.events != nil {
		event := kafka.StockTransferredEvent{
			SourceHubID:      cmd.SourceHubID,
			DestinationHubID: cmd.DestinationHubID,
			SKU:              cmd.SKU,
			Quantity:         cmd.Quantity,
			TransferType:     kafka.TransferTypeDirect,
		}
		if err := h.events.PublishStockTransferred(ctx, event); err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to publish stock transferred event")
		}
	}

	return outcome, nil
}
