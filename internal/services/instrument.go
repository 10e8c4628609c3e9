package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soundgrid/sequencer-backend/internal/data/repos"
	"github.com/soundgrid/sequencer-backend/internal/domain"
	"github.com/soundgrid/sequencer-backend/internal/platform/logger"
)

type InstrumentMappingInput struct {
	Note     int
	SampleID string
	Detune   int
}

type InstrumentCreateInput struct {
	Label   string
	Group   *string
	Mapping []InstrumentMappingInput
}

type InstrumentService interface {
	Create(ctx context.Context, input InstrumentCreateInput) (*domain.InstrumentView, error)
	Get(ctx context.Context, id string) (*domain.InstrumentView, error)
	List(ctx context.Context) ([]*domain.InstrumentView, error)
}

type instrumentService struct {
	db             *gorm.DB
	log            *logger.Logger
	instrumentRepo repos.InstrumentRepo
	sampleRepo     repos.SampleRepo
}

func NewInstrumentService(
	db *gorm.DB,
	baseLog *logger.Logger,
	instrumentRepo repos.InstrumentRepo,
	sampleRepo repos.SampleRepo,
) InstrumentService {
	serviceLog := baseLog.With("service", "InstrumentService")
	return &instrumentService{
		db:             db,
		log:            serviceLog,
		instrumentRepo: instrumentRepo,
		sampleRepo:     sampleRepo,
	}
}

// Create builds an instrument from a note mapping. Construction is
// best-effort, not atomic: mapping entries whose sample cannot be resolved
// are silently dropped, and the stored sample set is the deduplicated union
// of the entries that survive. Only a storage failure aborts the mutation.
func (is *instrumentService) Create(ctx context.Context, input InstrumentCreateInput) (*domain.InstrumentView, error) {
	// Dedupe sample IDs before lookup so shared samples are fetched once.
	seen := map[string]bool{}
	var sampleIDs []string
	for _, m := range input.Mapping {
		if !seen[m.SampleID] {
			seen[m.SampleID] = true
			sampleIDs = append(sampleIDs, m.SampleID)
		}
	}

	resolved, err := resolveSamples(ctx, is.sampleRepo, sampleIDs)
	if err != nil {
		return nil, err
	}

	var mapping []domain.MappingEntry
	for _, m := range input.Mapping {
		if _, ok := resolved[m.SampleID]; !ok {
			continue
		}
		mapping = append(mapping, domain.MappingEntry{
			Note:     m.Note,
			SampleID: m.SampleID,
			Detune:   m.Detune,
		})
	}

	var resolvedIDs []string
	for _, id := range sampleIDs {
		if _, ok := resolved[id]; ok {
			resolvedIDs = append(resolvedIDs, id)
		}
	}

	group := domain.DefaultInstrumentGroup
	if input.Group != nil {
		group = *input.Group
	}

	inst := &domain.Instrument{
		ID:        uuid.New(),
		Label:     input.Label,
		Group:     group,
		SampleIDs: resolvedIDs,
		Mapping:   mapping,
	}
	created, err := is.instrumentRepo.Create(ctx, nil, inst)
	if err != nil {
		return nil, err
	}

	is.log.Info("Instrument created",
		"instrument_id", created.ID,
		"mapping_entries", len(created.Mapping),
		"samples", len(created.SampleIDs),
	)
	return created.Resolve(resolved), nil
}

// Get returns the instrument with its samples resolved, or nil when it does
// not exist.
func (is *instrumentService) Get(ctx context.Context, id string) (*domain.InstrumentView, error) {
	instrumentID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	inst, err := is.instrumentRepo.GetByID(ctx, nil, instrumentID)
	if err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, nil
	}
	resolved, err := resolveSamples(ctx, is.sampleRepo, inst.SampleIDs)
	if err != nil {
		return nil, err
	}
	return inst.Resolve(resolved), nil
}

func (is *instrumentService) List(ctx context.Context) ([]*domain.InstrumentView, error) {
	instruments, err := is.instrumentRepo.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	var allIDs []string
	for _, inst := range instruments {
		allIDs = append(allIDs, inst.SampleIDs...)
	}
	resolved, err := resolveSamples(ctx, is.sampleRepo, allIDs)
	if err != nil {
		return nil, err
	}

	views := make([]*domain.InstrumentView, 0, len(instruments))
	for _, inst := range instruments {
		views = append(views, inst.Resolve(resolved))
	}
	return views, nil
}
