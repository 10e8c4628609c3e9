package sample

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soundgrid/sequencer-backend/internal/domain"
	"github.com/soundgrid/sequencer-backend/internal/platform/logger"
)

type SampleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, s *domain.Sample) (*domain.Sample, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Sample, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Sample, error)
	List(ctx context.Context, tx *gorm.DB) ([]*domain.Sample, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) (*domain.Sample, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Sample, error)
}

type sampleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSampleRepo(db *gorm.DB, baseLog *logger.Logger) SampleRepo {
	repoLog := baseLog.With("repo", "SampleRepo")
	return &sampleRepo{db: db, log: repoLog}
}

func (sr *sampleRepo) Create(ctx context.Context, tx *gorm.DB, s *domain.Sample) (*domain.Sample, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if err := transaction.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

func (sr *sampleRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Sample, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var result domain.Sample
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

func (sr *sampleRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Sample, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*domain.Sample
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *sampleRepo) List(ctx context.Context, tx *gorm.DB) ([]*domain.Sample, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	results := make([]*domain.Sample, 0)
	if err := transaction.WithContext(ctx).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// UpdateFields applies a partial patch and returns the updated row, or
// (nil, nil) when the sample does not exist. gorm refreshes updated_at.
func (sr *sampleRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) (*domain.Sample, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	result := transaction.WithContext(ctx).
		Model(&domain.Sample{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return sr.GetByID(ctx, tx, id)
}

// DeleteByID removes the row and returns the deleted record, or (nil, nil)
// when it was not found.
func (sr *sampleRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Sample, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	existing, err := sr.GetByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Sample{}).Error; err != nil {
		return nil, err
	}
	return existing, nil
}
