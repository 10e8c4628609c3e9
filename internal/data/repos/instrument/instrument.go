package instrument

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soundgrid/sequencer-backend/internal/domain"
	"github.com/soundgrid/sequencer-backend/internal/platform/logger"
)

type InstrumentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, i *domain.Instrument) (*domain.Instrument, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Instrument, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Instrument, error)
}

type instrumentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInstrumentRepo(db *gorm.DB, baseLog *logger.Logger) InstrumentRepo {
	repoLog := baseLog.With("repo", "InstrumentRepo")
	return &instrumentRepo{db: db, log: repoLog}
}

func (ir *instrumentRepo) Create(ctx context.Context, tx *gorm.DB, i *domain.Instrument) (*domain.Instrument, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	if err := transaction.WithContext(ctx).Create(i).Error; err != nil {
		return nil, err
	}
	return i, nil
}

func (ir *instrumentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Instrument, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var result domain.Instrument
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (ir *instrumentRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Instrument, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	results := make([]*domain.Instrument, 0)
	if err := transaction.WithContext(ctx).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
