package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hubstack/inventory-service/internal/inventory/domain"
)

type GormStockRepository struct {
	db *gorm.DB
}

func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

func (r *GormStockRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.StockRecord{}, &domain.TransferRequest{})
}

func (r *GormStockRepository) Create(record *domain.StockRecord) error {
	return r.db.Create(record).Error
}

func (r *GormStockRepository) FindByID(id uint) (*domain.StockRecord, error) {
	var record domain.StockRecord
	err := r.db.First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *GormStockRepository) FindByHubAndSKU(hubID, sku string) (*domain.StockRecord, error) {
	var record domain.StockRecord
	err := r.db.Where("hub_id = ? AND sku = ?", hubID, sku).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *GormStockRepository) FindByHub(hubID string, status domain.StockStatus, search string, limit, offset int) ([]domain.StockRecord, error) {
	q := r.db.Where("hub_id = ?", hubID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("sku ILIKE ? OR name ILIKE ?", pattern, pattern)
	}
	var records []domain.StockRecord
	err := q.Order("sku").Limit(limit).Offset(offset).Find(&records).Error
	return records, err
}

func (r *GormStockRepository) FindLowStock(hubID string) ([]domain.StockRecord, error) {
	var records []domain.StockRecord
	err := r.db.
		Where("hub_id = ? AND quantity < reorder_level", hubID).
		Order("sku").
		Find(&records).Error
	return records, err
}

func (r *GormStockRepository) Update(record *domain.StockRecord) error {
	record.RecomputeStatus()
	return r.db.Save(record).Error
}

func (r *GormStockRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.StockRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// AdjustQuantity applies a signed delta to one record as one
// transaction. The row is locked with SELECT ... FOR UPDATE and the
// delta applied to the quantity read under that lock, so concurrent
// adjustments and transfers against the same record serialize instead
// of overwriting each other. A result below zero rolls back.
func (r *GormStockRepository) AdjustQuantity(ctx context.Context, id uint, delta int) (*domain.StockRecord, error) {
	var record domain.StockRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&record, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecordNotFound
		}
		if err != nil {
			return err
		}

		if record.Quantity+delta < 0 {
			return &domain.InsufficientStockError{
				Available: record.Quantity,
				Requested: -delta,
			}
		}

		record.Quantity += delta
		if delta > 0 {
			now := time.Now()
			record.LastRestockedAt = &now
		}
		record.RecomputeStatus()
		return tx.Save(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Transfer moves quantity units of sku from the source hub to the
// destination hub as one transaction. The source row is locked with
// SELECT ... FOR UPDATE and availability is re-checked under that lock,
// so two concurrent transfers debiting the same record serialize and
// the quantity can never go negative.
func (r *GormStockRepository) Transfer(ctx context.Context, sourceHubID, destHubID, sku string, quantity int) (*domain.TransferOutcome, error) {
	var outcome *domain.TransferOutcome
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		outcome, err = moveStock(tx, sourceHubID, destHubID, sku, quantity)
		return err
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// moveStock is the debit/credit unit shared by direct transfers and
// approved transfer requests. It must run inside an open transaction.
func moveStock(tx *gorm.DB, sourceHubID, destHubID, sku string, quantity int) (*domain.TransferOutcome, error) {
	var source domain.StockRecord
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("hub_id = ? AND sku = ?", sourceHubID, sku).
		First(&source).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSourceNotFound
	}
	if err != nil {
		return nil, err
	}

	if source.Quantity < quantity {
		return nil, &domain.InsufficientStockError{
			Available: source.Quantity,
			Requested: quantity,
		}
	}

	source.Quantity -= quantity
	source.RecomputeStatus()
	if err := tx.Save(&source).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	outcome := &domain.TransferOutcome{Source: &source}

	var dest domain.StockRecord
	err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("hub_id = ? AND sku = ?", destHubID, sku).
		First(&dest).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// First time this hub stocks the SKU: copy display metadata
		// from the source record.
		dest = domain.StockRecord{
			HubID:           destHubID,
			SKU:             sku,
			Name:            source.Name,
			Quantity:        quantity,
			ReorderLevel:    source.ReorderLevel,
			UnitPrice:       source.UnitPrice,
			Unit:            source.Unit,
			LastRestockedAt: &now,
		}
		dest.RecomputeStatus()
		if err := tx.Create(&dest).Error; err != nil {
			return nil, err
		}
		outcome.DestinationCreated = true
	case err != nil:
		return nil, err
	default:
		dest.Quantity += quantity
		dest.LastRestockedAt = &now
		dest.RecomputeStatus()
		if err := tx.Save(&dest).Error; err != nil {
			return nil, err
		}
	}

	outcome.Destination = &dest
	return outcome, nil
}

type GormTransferRepository struct {
	db *gorm.DB
}

func NewGormTransferRepository(db *gorm.DB) *GormTransferRepository {
	return &GormTransferRepository{db: db}
}

func (r *GormTransferRepository) Create(request *domain.TransferRequest) error {
	return r.db.Create(request).Error
}

func (r *GormTransferRepository) FindByID(id uint) (*domain.TransferRequest, error) {
	var request domain.TransferRequest
	err := r.db.First(&request, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *GormTransferRepository) FindByCode(code string) (*domain.TransferRequest, error) {
	var request domain.TransferRequest
	err := r.db.Where("request_code = ?", code).First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *GormTransferRepository) FindAll(status domain.TransferStatus, limit, offset int) ([]domain.TransferRequest, error) {
	q := r.db.Order("created_at DESC").Limit(limit).Offset(offset)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var requests []domain.TransferRequest
	err := q.Find(&requests).Error
	return requests, err
}

func (r *GormTransferRepository) CountByStatus(status domain.TransferStatus) (int64, error) {
	var count int64
	q := r.db.Model(&domain.TransferRequest{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Count(&count).Error
	return count, err
}

// Decide applies an approval or rejection to a pending request. The
// request row is locked before the status check, so a second decider
// blocks until the first commits and then fails with ErrNotPending.
// An approval performs the stock move in the same transaction; if the
// source no longer holds enough quantity the whole unit rolls back and
// the request stays PENDING.
func (r *GormTransferRepository) Decide(ctx context.Context, id uint, decision domain.Decision) (*domain.DecisionOutcome, error) {
	var outcome *domain.DecisionOutcome
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var request domain.TransferRequest
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&request, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRequestNotFound
		}
		if err != nil {
			return err
		}
		if !request.IsPending() {
			return domain.ErrNotPending
		}

		outcome = &domain.DecisionOutcome{}
		if decision.Approve {
			move, err := moveStock(tx, request.SourceHubID, request.DestinationHubID, request.SKU, request.Quantity)
			if err != nil {
				return err
			}
			outcome.Move = move
			request.Status = domain.TransferApproved
		} else {
			request.Status = domain.TransferRejected
		}

		now := time.Now()
		request.ApprovedBy = &decision.ApprovedBy
		request.DecidedAt = &now
		if decision.Notes != "" {
			request.Notes = decision.Notes
		}
		if err := tx.Save(&request).Error; err != nil {
			return err
		}

		outcome.Request = &request
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}
