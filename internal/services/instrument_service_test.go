package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/soundgrid/sequencer-backend/internal/data/repos/testutil"
	"github.com/soundgrid/sequencer-backend/internal/domain"
)

func TestInstrumentServiceCreate(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	svc := h.instruments()

	kick := testutil.SeedSample(t, ctx, h.tx, "kick.wav")
	snare := testutil.SeedSample(t, ctx, h.tx, "snare.wav")

	group := "drums"
	view, err := svc.Create(ctx, InstrumentCreateInput{
		Label: "808 kit",
		Group: &group,
		Mapping: []InstrumentMappingInput{
			{Note: 36, SampleID: kick.ID.String(), Detune: 0},
			{Note: 38, SampleID: snare.ID.String(), Detune: -100},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if view.Label != "808 kit" || view.Group != "drums" {
		t.Fatalf("unexpected instrument: %+v", view)
	}
	if len(view.Mapping) != 2 || len(view.Samples) != 2 {
		t.Fatalf("expected 2 mapping entries and 2 samples, got %d/%d", len(view.Mapping), len(view.Samples))
	}
	if view.Mapping[0].Sample == nil || view.Mapping[0].Sample.ID != kick.ID {
		t.Fatalf("mapping sample not resolved: %+v", view.Mapping[0])
	}
}

func TestInstrumentServiceCreateDefaultsGroup(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	svc := h.instruments()

	view, err := svc.Create(ctx, InstrumentCreateInput{Label: "empty kit"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if view.Group != domain.DefaultInstrumentGroup {
		t.Fatalf("expected group %q, got %q", domain.DefaultInstrumentGroup, view.Group)
	}
	if len(view.Mapping) != 0 || len(view.Samples) != 0 {
		t.Fatalf("expected empty instrument, got %+v", view)
	}
}

func TestInstrumentServiceCreateDropsUnresolvedMappings(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	svc := h.instruments()

	kick := testutil.SeedSample(t, ctx, h.tx, "kick.wav")

	view, err := svc.Create(ctx, InstrumentCreateInput{
		Label: "half kit",
		Mapping: []InstrumentMappingInput{
			{Note: 36, SampleID: kick.ID.String(), Detune: 0},
			{Note: 38, SampleID: uuid.NewString(), Detune: 0},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// The entry pointing at a nonexistent sample is dropped, the rest of the
	// instrument is created anyway.
	if len(view.Mapping) != 1 || len(view.Samples) != 1 {
		t.Fatalf("expected unresolved entry dropped, got %d/%d", len(view.Mapping), len(view.Samples))
	}
	if view.Mapping[0].Note != 36 {
		t.Fatalf("wrong surviving entry: %+v", view.Mapping[0])
	}

	// All entries unresolvable: the instrument is still created, just empty.
	empty, err := svc.Create(ctx, InstrumentCreateInput{
		Label: "ghost kit",
		Mapping: []InstrumentMappingInput{
			{Note: 69, SampleID: uuid.NewString(), Detune: 0},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(empty.Mapping) != 0 || len(empty.Samples) != 0 {
		t.Fatalf("expected empty instrument, got %+v", empty)
	}
}

func TestInstrumentServiceCreateSharedSampleStoredOnce(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	svc := h.instruments()

	kick := testutil.SeedSample(t, ctx, h.tx, "kick.wav")

	view, err := svc.Create(ctx, InstrumentCreateInput{
		Label: "layered kick",
		Mapping: []InstrumentMappingInput{
			{Note: 36, SampleID: kick.ID.String(), Detune: 0},
			{Note: 48, SampleID: kick.ID.String(), Detune: 100},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(view.Mapping) != 2 {
		t.Fatalf("expected both mapping entries, got %d", len(view.Mapping))
	}
	if len(view.Samples) != 1 {
		t.Fatalf("expected shared sample stored once, got %d", len(view.Samples))
	}
}

func TestInstrumentServiceGetAndList(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	svc := h.instruments()

	kick := testutil.SeedSample(t, ctx, h.tx, "kick.wav")
	seeded := testutil.SeedInstrument(t, ctx, h.tx, kick)

	view, err := svc.Get(ctx, seeded.ID.String())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view == nil || view.ID != seeded.ID {
		t.Fatalf("expected instrument %s, got %+v", seeded.ID, view)
	}
	if len(view.Samples) != 1 || view.Samples[0].ID != kick.ID {
		t.Fatalf("samples not resolved: %+v", view.Samples)
	}

	missing, err := svc.Get(ctx, uuid.NewString())
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing instrument, got %+v", missing)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 instrument, got %d", len(list))
	}
}
