package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soundgrid/sequencer-backend/internal/domain"
)

func SeedSample(tb testing.TB, ctx context.Context, tx *gorm.DB, filename string) *domain.Sample {
	tb.Helper()
	id := uuid.New()
	s := &domain.Sample{
		ID:       id,
		URL:      fmt.Sprintf("/samples/%s.wav", id),
		Filename: filename,
		MimeType: "audio/wave",
		Label:    filename,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed sample: %v", err)
	}
	return s
}

func SeedInstrument(tb testing.TB, ctx context.Context, tx *gorm.DB, samples ...*domain.Sample) *domain.Instrument {
	tb.Helper()
	i := &domain.Instrument{
		ID:    uuid.New(),
		Label: "kit",
		Group: domain.DefaultInstrumentGroup,
	}
	for n, s := range samples {
		i.SampleIDs = append(i.SampleIDs, s.ID.String())
		i.Mapping = append(i.Mapping, domain.MappingEntry{
			Note:     60 + n,
			SampleID: s.ID.String(),
			Detune:   0,
		})
	}
	if err := tx.WithContext(ctx).Create(i).Error; err != nil {
		tb.Fatalf("seed instrument: %v", err)
	}
	return i
}

func SeedSession(tb testing.TB, ctx context.Context, tx *gorm.DB, creatorID string) *domain.Session {
	tb.Helper()
	s := domain.NewSession(creatorID)
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed session: %v", err)
	}
	return s
}
