package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/hubstack/inventory-service/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-repository")

// GormStockRepositoryWithTracing wraps GormStockRepository with tracing
type GormStockRepositoryWithTracing struct {
	*GormStockRepository
}

// NewGormStockRepositoryWithTracing creates a new stock repository with tracing
func NewGormStockRepositoryWithTracing(db *gorm.DB) *GormStockRepositoryWithTracing {
	return &GormStockRepositoryWithTracing{
		GormStockRepository: NewGormStockRepository(db),
	}
}

// CreateWithContext traces record creation
func (r *GormStockRepositoryWithTracing) CreateWithContext(ctx context.Context, record *domain.StockRecord) error {
	_, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.String("stock.hub_id", record.HubID),
			attribute.String("stock.sku", record.SKU),
			attribute.Int("stock.quantity", record.Quantity),
		),
	)
	defer span.End()

	err := r.GormStockRepository.Create(record)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int("stock.id", int(record.ID)))
	return nil
}

// FindByHubAndSKUWithContext traces the (hub, sku) lookup
func (r *GormStockRepositoryWithTracing) FindByHubAndSKUWithContext(ctx context.Context, hubID, sku string) (*domain.StockRecord, error) {
	_, span := tracer.Start(ctx, "repository.FindByHubAndSKU",
		trace.WithAttributes(
			attribute.String("stock.hub_id", hubID),
			attribute.String("stock.sku", sku),
		),
	)
	defer span.End()

	record, err := r.GormStockRepository.FindByHubAndSKU(hubID, sku)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("stock.quantity", record.Quantity),
		attribute.String("stock.status", string(record.Status)),
	)
	return record, nil
}

// AdjustQuantity traces the atomic delta unit
func (r *GormStockRepositoryWithTracing) AdjustQuantity(ctx context.Context, id uint, delta int) (*domain.StockRecord, error) {
	ctx, span := tracer.Start(ctx, "repository.AdjustQuantity",
		trace.WithAttributes(
			attribute.Int("stock.id", int(id)),
			attribute.Int("stock.delta", delta),
		),
	)
	defer span.End()

	record, err := r.GormStockRepository.AdjustQuantity(ctx, id, delta)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("stock.quantity", record.Quantity),
		attribute.String("stock.status", string(record.Status)),
	)
	return record, nil
}

// Transfer traces the atomic debit/credit unit
func (r *GormStockRepositoryWithTracing) Transfer(ctx context.Context, sourceHubID, destHubID, sku string, quantity int) (*domain.TransferOutcome, error) {
	ctx, span := tracer.Start(ctx, "repository.Transfer",
		trace.WithAttributes(
			attribute.String("transfer.source_hub", sourceHubID),
			attribute.String("transfer.destination_hub", destHubID),
			attribute.String("transfer.sku", sku),
			attribute.Int("transfer.quantity", quantity),
		),
	)
	defer span.End()

	outcome, err := r.GormStockRepository.Transfer(ctx, sourceHubID, destHubID, sku, quantity)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("transfer.source_remaining", outcome.Source.Quantity),
		attribute.Bool("transfer.destination_created", outcome.DestinationCreated),
	)
	return outcome, nil
}

// GormTransferRepositoryWithTracing wraps GormTransferRepository with tracing
type GormTransferRepositoryWithTracing struct {
	*GormTransferRepository
}

// NewGormTransferRepositoryWithTracing creates a new transfer repository with tracing
func NewGormTransferRepositoryWithTracing(db *gorm.DB) *GormTransferRepositoryWithTracing {
	return &GormTransferRepositoryWithTracing{
		GormTransferRepository: NewGormTransferRepository(db),
	}
}

// Decide traces the decision transaction
func (r *GormTransferRepositoryWithTracing) Decide(ctx context.Context, id uint, decision domain.Decision) (*domain.DecisionOutcome, error) {
	ctx, span := tracer.Start(ctx, "repository.Decide",
		trace.WithAttributes(
			attribute.Int("request.id", int(id)),
			attribute.Bool("request.approve", decision.Approve),
		),
	)
	defer span.End()

	outcome, err := r.GormTransferRepository.Decide(ctx, id, decision)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("request.status", string(outcome.Request.Status)))
	return outcome, nil
}
