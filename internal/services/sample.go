package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soundgrid/sequencer-backend/internal/data/repos"
	"github.com/soundgrid/sequencer-backend/internal/domain"
	"github.com/soundgrid/sequencer-backend/internal/platform/apierr"
	"github.com/soundgrid/sequencer-backend/internal/platform/logger"
	"github.com/soundgrid/sequencer-backend/internal/validate"
)

// SampleURL is the public URL prefix under which sample files are served.
const SampleURL = "/samples"

type SampleUpdateInput struct {
	Label *string
	Group *string
}

type SampleService interface {
	Create(ctx context.Context, upload *domain.Upload, label, group *string) (*domain.Sample, error)
	Update(ctx context.Context, id string, input SampleUpdateInput) (*domain.Sample, error)
	Delete(ctx context.Context, id string) (*domain.Sample, error)
	List(ctx context.Context) ([]*domain.Sample, error)
}

type sampleService struct {
	db         *gorm.DB
	log        *logger.Logger
	store      FileStore
	sampleRepo repos.SampleRepo
}

func NewSampleService(
	db *gorm.DB,
	baseLog *logger.Logger,
	store FileStore,
	sampleRepo repos.SampleRepo,
) SampleService {
	serviceLog := baseLog.With("service", "SampleService")
	return &sampleService{
		db:         db,
		log:        serviceLog,
		store:      store,
		sampleRepo: sampleRepo,
	}
}

// Create validates the upload, streams it to disk, then records its
// metadata. Validation fails fast before anything is persisted; stream and
// storage errors propagate and abort the mutation.
func (ss *sampleService) Create(ctx context.Context, upload *domain.Upload, label, group *string) (*domain.Sample, error) {
	if !validate.HasFileExtension(upload.Filename) {
		return nil, apierr.Validation("Filename extension required, %s given", upload.Filename)
	}
	if !validate.AudioMIMEType(upload.MimeType) {
		return nil, apierr.Validation("Audio MIME type required, %s given", upload.MimeType)
	}

	stored, err := ss.store.Store(upload.Filename, upload.Content)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s", SampleURL, stored.ID)
	if stored.FileExtension != "" {
		url = fmt.Sprintf("%s/%s.%s", SampleURL, stored.ID, stored.FileExtension)
	}

	sampleLabel := upload.Filename
	if label != nil {
		sampleLabel = *label
	}

	s := &domain.Sample{
		ID:       stored.ID,
		URL:      url,
		Filename: upload.Filename,
		MimeType: upload.MimeType,
		Label:    sampleLabel,
		Group:    group,
	}
	created, err := ss.sampleRepo.Create(ctx, nil, s)
	if err != nil {
		return nil, err
	}

	ss.log.Info("Sample created", "sample_id", created.ID, "url", created.URL)
	return created, nil
}

// Update applies a partial patch: only the provided fields change. Returns
// (nil, nil) when the sample does not exist.
func (ss *sampleService) Update(ctx context.Context, id string, input SampleUpdateInput) (*domain.Sample, error) {
	sampleID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}

	fields := map[string]any{}
	if input.Label != nil {
		fields["label"] = *input.Label
	}
	if input.Group != nil {
		fields["sample_group"] = *input.Group
	}
	if len(fields) == 0 {
		// Nothing to patch, but the touch still refreshes updated_at.
		fields["id"] = sampleID
	}

	return ss.sampleRepo.UpdateFields(ctx, nil, sampleID, fields)
}

// Delete removes the metadata record, then best-effort deletes the backing
// file: the record deletion is the primary outcome, a failing unlink is
// logged and swallowed. Returns (nil, nil) when the sample does not exist.
func (ss *sampleService) Delete(ctx context.Context, id string) (*domain.Sample, error) {
	sampleID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}

	deleted, err := ss.sampleRepo.DeleteByID(ctx, nil, sampleID)
	if err != nil {
		return nil, err
	}
	if deleted == nil {
		return nil, nil
	}

	if err := ss.store.Remove(deleted.URL); err != nil {
		ss.log.Warn("Failed to delete sample file", "sample_id", deleted.ID, "url", deleted.URL, "error", err)
	}

	ss.log.Info("Sample deleted", "sample_id", deleted.ID)
	return deleted, nil
}

func (ss *sampleService) List(ctx context.Context) ([]*domain.Sample, error) {
	return ss.sampleRepo.List(ctx, nil)
}
