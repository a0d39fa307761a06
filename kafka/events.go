package kafka

import "time"

// StockTransferredEvent is emitted after a stock move commits, whether
// it came from a direct transfer or an approved transfer request.
type StockTransferredEvent struct {
	EventID          string    `json:"event_id"`
	EventType        string    `json:"event_type"`
	RequestCode      string    `json:"request_code,omitempty"`
	SourceHubID      string    `json:"source_hub_id"`
	DestinationHubID string    `json:"destination_hub_id"`
	SKU              string    `json:"sku"`
	Quantity         int       `json:"quantity"`
	TransferType     string    `json:"transfer_type"`
	Timestamp        time.Time `json:"timestamp"`
}

// OrderFulfilledEvent is consumed from the order service; fulfilling an
// order consumes stock at the fulfilling hub.
type OrderFulfilledEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	OrderID   string    `json:"order_id"`
	HubID     string    `json:"hub_id"`
	SKU       string    `json:"sku"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeStockTransferred = "stock.transferred"
	EventTypeOrderFulfilled   = "order.fulfilled"
)

// Transfer types
const (
	TransferTypeDirect   = "direct"
	TransferTypeApproved = "approved"
)

// Kafka topics
const (
	TopicStockTransferred = "stock-transferred"
	TopicOrderFulfilled   = "order-fulfilled"
)
