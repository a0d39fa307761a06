package command

import (
	"context"
	"fmt"

	"github.com/hubstack/inventory-service/internal/inventory/domain"
	"github.com/hubstack/inventory-service/kafka"
	"github.com/hubstack/inventory-service/pkg/logger"
)

// DecideTransferRequestCommand represents the command to approve or
// reject a pending transfer request
type DecideTransferRequestCommand struct {
	RequestID  uint
	Approve    bool
	ApprovedBy string
	Notes      string
}

// DecideTransferRequestHandler handles decide transfer request command
type DecideTransferRequestHandler struct {
	requests domain.TransferRepository
	events   EventPublisher
}

// NewDecideTransferRequestHandler creates a new decide transfer request handler
func NewDecideTransferRequestHandler(requests domain.TransferRepository, events EventPublisher) *DecideTransferRequestHandler {
	return &DecideTransferRequestHandler{requests: requests, events: events}
}

// Handle executes the decide transfer request command. A request is
// decided exactly once; approval moves the stock in the same
// transaction as the status change, and an insufficient-stock approval
// leaves the request PENDING.
func (h *DecideTransferRequestHandler) Handle(ctx context.Context, cmd DecideTransferRequestCommand) (*domain.DecisionOutcome, error) {
	if cmd.RequestID == 0 {
		return nil, fmt.Errorf("request id is required")
	}
	if cmd.ApprovedBy == "" {
		return nil, fmt.Errorf("approved_by is required")
	}

	outcome, err := h.requests.Decide(ctx, cmd.RequestID, domain.Decision{
		Approve:    cmd.Approve,
		ApprovedBy: cmd.ApprovedBy,
		Notes:      cmd.Notes,
	})
	if err != nil {
		return nil, err
	}

	logger.Logger.Info().
		Str("request_code", outcome.Request.RequestCode).
		Str("status", string(outcome.Request.Status)).
		Str("approved_by", cmd.ApprovedBy).
		Msg("Transfer request decided")

	if cmd.Approve && h.events != nil {
		event := kafka.StockTransferredEvent{
			RequestCode:      outcome.Request.RequestCode,
			SourceHubID:      outcome.Request.SourceHubID,
			DestinationHubID: outcome.Request.DestinationHubID,
			SKU:              outcome.Request.SKU,
			Quantity:         outcome.Request.Quantity,
			TransferType:     kafka.TransferTypeApproved,
		}
		if err := h.events.PublishStockTransferred(ctx, event); err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to publish stock transferred event")
		}
	}

	return outcome, nil
}
