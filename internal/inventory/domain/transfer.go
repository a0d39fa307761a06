package domain

import (
	"context"
	"time"
)

// TransferStatus is the lifecycle state of a transfer request.
type TransferStatus string

const (
	TransferPending  TransferStatus = "PENDING"
	TransferApproved TransferStatus = "APPROVED"
	TransferRejected TransferStatus = "REJECTED"
)

// TransferRequest is an approval-gated stock move between two hubs.
// SKU and ItemName are snapshotted at creation time; only the live
// quantity is re-checked when the request is decided. APPROVED is
// terminal and means the stock move committed in the same transaction
// as the decision; there is no observable approved-but-not-moved state.
type TransferRequest struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	RequestCode      string         `json:"request_code" gorm:"not null;uniqueIndex"`
	SourceHubID      string         `json:"source_hub_id" gorm:"not null;index"`
	DestinationHubID string         `json:"destination_hub_id" gorm:"not null;index"`
	SKU              string         `json:"sku" gorm:"not null;index"`
	ItemName         string         `json:"item_name"`
	Quantity         int            `json:"quantity" gorm:"not null;check:quantity > 0"`
	Status           TransferStatus `json:"status" gorm:"not null;default:'PENDING';index"`
	RequestedBy      string         `json:"requested_by" gorm:"not null"`
	ApprovedBy       *string        `json:"approved_by,omitempty"`
	Notes            string         `json:"notes"`
	DecidedAt        *time.Time     `json:"decided_at,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// TableName specifies the table name
func (TransferRequest) TableName() string {
	return "transfer_requests"
}

// IsPending reports whether the request can still be decided.
func (t *TransferRequest) IsPending() bool {
	return t.Status == TransferPending
}

// Decision is the outcome applied to a pending transfer request.
type Decision struct {
	Approve    bool
	ApprovedBy string
	Notes      string
}

// DecisionOutcome carries the decided request and, for approvals, the
// stock records touched by the move.
type DecisionOutcome struct {
	Request *TransferRequest `json:"request"`
	Move    *TransferOutcome `json:"move,omitempty"`
}

// TransferRepository defines the contract for transfer request data access.
// Decide must lock the request row, verify it is still PENDING, and for
// approvals apply the same atomic debit/credit as StockRepository.Transfer
// inside the same transaction. An insufficient-stock approval rolls back
// and leaves the request PENDING.
type TransferRepository interface {
	Create(request *TransferRequest) error
	FindByID(id uint) (*TransferRequest, error)
	FindByCode(code string) (*TransferRequest, error)
	FindAll(status TransferStatus, limit, offset int) ([]TransferRequest, error)
	CountByStatus(status TransferStatus) (int64, error)
	Decide(ctx context.Context, id uint, decision Decision) (*DecisionOutcome, error)
}
