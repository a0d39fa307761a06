//go:build wireinject
// +build wireinject

package inventory

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/hubstack/inventory-service/internal/inventory/delivery/http"
	"github.com/hubstack/inventory-service/internal/inventory/domain"
	"github.com/hubstack/inventory-service/internal/inventory/repository"
	"github.com/hubstack/inventory-service/internal/inventory/usecase/command"
)

// ProvideStockRepository provides the stock repository with tracing
func ProvideStockRepository(db *gorm.DB) domain.StockRepository {
	return repository.NewGormStockRepositoryWithTracing(db)
}

// ProvideTransferRepository provides the transfer request repository with tracing
func ProvideTransferRepository(db *gorm.DB) domain.TransferRepository {
	return repository.NewGormTransferRepositoryWithTracing(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideStockRepository,
	ProvideTransferRepository,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, hubs domain.HubDirectory, events command.EventPublisher) (*http.InventoryHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewInventoryHandler,
	)
	return nil, nil
}
