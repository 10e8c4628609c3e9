package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/soundgrid/sequencer-backend/internal/data/repos"
	"github.com/soundgrid/sequencer-backend/internal/domain"
)

// resolveSamples fetches sample references concurrently into a lookup table
// keyed by ID string. Unparseable or unknown IDs simply do not appear in the
// result; only a storage error fails the resolution.
func resolveSamples(ctx context.Context, sampleRepo repos.SampleRepo, ids []string) (map[string]*domain.Sample, error) {
	resolved := make(map[string]*domain.Sample, len(ids))

	seen := map[string]bool{}
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		sampleID, err := uuid.Parse(id)
		if err != nil {
			continue
		}
		key := id
		g.Go(func() error {
			s, err := sampleRepo.GetByID(gctx, nil, sampleID)
			if err != nil {
				return err
			}
			if s != nil {
				mu.Lock()
				resolved[key] = s
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resolved, nil
}

// resolveInstruments fetches instrument references and resolves each against
// the sample table built from their combined sample references.
func resolveInstruments(ctx context.Context, instrumentRepo repos.InstrumentRepo, sampleRepo repos.SampleRepo, ids []string) (map[string]*domain.InstrumentView, error) {
	seen := map[string]bool{}
	var instruments []*domain.Instrument
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		instrumentID, err := uuid.Parse(id)
		if err != nil {
			continue
		}
		inst, err := instrumentRepo.GetByID(ctx, nil, instrumentID)
		if err != nil {
			return nil, err
		}
		if inst != nil {
			instruments = append(instruments, inst)
		}
	}

	var sampleIDs []string
	for _, inst := range instruments {
		sampleIDs = append(sampleIDs, inst.SampleIDs...)
	}
	samples, err := resolveSamples(ctx, sampleRepo, sampleIDs)
	if err != nil {
		return nil, err
	}

	views := make(map[string]*domain.InstrumentView, len(instruments))
	for _, inst := range instruments {
		views[inst.ID.String()] = inst.Resolve(samples)
	}
	return views, nil
}
