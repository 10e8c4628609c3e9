package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soundgrid/sequencer-backend/internal/domain"
	"github.com/soundgrid/sequencer-backend/internal/platform/logger"
)

type SessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, s *domain.Session) (*domain.Session, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Session, error)
	Save(ctx context.Context, tx *gorm.DB, s *domain.Session) (*domain.Session, error)
	Touch(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type sessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	repoLog := baseLog.With("repo", "SessionRepo")
	return &sessionRepo{db: db, log: repoLog}
}

func (sr *sessionRepo) Create(ctx context.Context, tx *gorm.DB, s *domain.Session) (*domain.Session, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if err := transaction.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

func (sr *sessionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Session, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var result domain.Session
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

// Save writes the whole session document back. This is the read-modify-write
// persist of the attach mutation: concurrent writers on the same session can
// lose updates, last write wins.
func (sr *sessionRepo) Save(ctx context.Context, tx *gorm.DB, s *domain.Session) (*domain.Session, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if err := transaction.WithContext(ctx).Save(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// Touch refreshes updated_at without changing anything else.
func (sr *sessionRepo) Touch(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).
		Model(&domain.Session{}).
		Where("id = ?", id).
		Update("updated_at", time.Now()).Error
}
