package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StockStatus is the derived health state of a stock record.
type StockStatus string

const (
	StatusOutOfStock    StockStatus = "OUT_OF_STOCK"
	StatusReorderNeeded StockStatus = "REORDER_NEEDED"
	StatusLowStock      StockStatus = "LOW_STOCK"
	StatusInStock       StockStatus = "IN_STOCK"
)

// StockRecord represents the stock of one SKU at one hub.
// Status is always recomputed from Quantity and ReorderLevel on every
// mutating path; it is persisted for query convenience but never settable
// by callers.
type StockRecord struct {
	ID              uint             `json:"id" gorm:"primaryKey"`
	HubID           string           `json:"hub_id" gorm:"not null;uniqueIndex:idx_hub_sku"`
	SKU             string           `json:"sku" gorm:"not null;uniqueIndex:idx_hub_sku"`
	Name            string           `json:"name" gorm:"not null"`
	Quantity        int              `json:"quantity" gorm:"not null;default:0;check:quantity >= 0"`
	ReorderLevel    int              `json:"reorder_level" gorm:"not null;default:0;check:reorder_level >= 0"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty" gorm:"type:numeric(12,2)"`
	Unit            string           `json:"unit" gorm:"default:'pcs'"`
	Status          StockStatus      `json:"status" gorm:"not null;index"`
	LastRestockedAt *time.Time       `json:"last_restocked_at,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// TableName specifies the table name
func (StockRecord) TableName() string {
	return "stock_records"
}

// ComputeStatus derives the stock status from quantity and reorder level.
// The LOW_STOCK upper bound is reorderLevel * 1.1, evaluated in integer
// arithmetic (quantity*10 <= reorderLevel*11) so the boundary is exact.
func ComputeStatus(quantity, reorderLevel int) StockStatus {
	switch {
	case quantity == 0:
		return StatusOutOfStock
	case quantity < reorderLevel:
		return StatusReorderNeeded
	case quantity*10 <= reorderLevel*11:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// RecomputeStatus refreshes the derived status in place.
func (s *StockRecord) RecomputeStatus() {
	s.Status = ComputeStatus(s.Quantity, s.ReorderLevel)
}

// TransferOutcome reports both affected records of a committed stock move.
type TransferOutcome struct {
	Source             *StockRecord `json:"source"`
	Destination        *StockRecord `json:"destination"`
	DestinationCreated bool         `json:"destination_created"`
}

// StockRepository defines the contract for stock record data access.
// Transfer is the atomic debit/credit unit: the implementation must lock
// the source row, re-check availability under the lock, and apply both
// sides in one transaction or not at all. AdjustQuantity is the atomic
// delta unit for single-record changes (restocks, order consumption):
// the row is locked, the delta applied to the quantity read under that
// lock, and a result below zero fails with InsufficientStockError
// without changing the record. Callers must never do a read-modify-write
// of Quantity through FindByID/Update, because two of those interleave.
type StockRepository interface {
	Create(record *StockRecord) error
	FindByID(id uint) (*StockRecord, error)
	FindByHubAndSKU(hubID, sku string) (*StockRecord, error)
	FindByHub(hubID string, status StockStatus, search string, limit, offset int) ([]StockRecord, error)
	FindLowStock(hubID string) ([]StockRecord, error)
	Update(record *StockRecord) error
	Delete(id uint) error
	AdjustQuantity(ctx context.Context, id uint, delta int) (*StockRecord, error)
	Transfer(ctx context.Context, sourceHubID, destHubID, sku string, quantity int) (*TransferOutcome, error)
}
