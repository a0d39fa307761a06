package domain

import (
	"errors"
	"fmt"
)

// Validation and lookup failures surfaced to callers. None of these are
// retried internally.
var (
	ErrDuplicateSKU           = errors.New("sku already stocked at hub")
	ErrInvalidQuantity        = errors.New("quantity must not be negative")
	ErrSameHub                = errors.New("source and destination hub must differ")
	ErrSourceNotFound         = errors.New("source hub has no stock record for sku")
	ErrDestinationHubNotFound = errors.New("destination hub not found")
	ErrNotPending             = errors.New("transfer request already decided")
	ErrRequestNotFound        = errors.New("transfer request not found")
	ErrRecordNotFound         = errors.New("stock record not found")
)

// InsufficientStockError is returned when a transfer or approval asks for
// more than the source record holds. It carries both sides so the caller
// can adjust and retry.
type InsufficientStockError struct {
	Available int `json:"available"`
	Requested int `json:"requested"`
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: available %d, requested %d", e.Available, e.Requested)
}
