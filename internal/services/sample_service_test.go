package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soundgrid/sequencer-backend/internal/data/repos/testutil"
	"github.com/soundgrid/sequencer-backend/internal/domain"
	"github.com/soundgrid/sequencer-backend/internal/platform/apierr"
)

func newSampleService(t *testing.T) (SampleService, *harness, string) {
	t.Helper()
	h := newHarness(t)
	staticDir := t.TempDir()
	store := NewLocalFileStore(filepath.Join(staticDir, "samples"), staticDir, h.log)
	return NewSampleService(h.tx, h.log, store, h.sampleRepo), h, staticDir
}

func TestSampleServiceCreate(t *testing.T) {
	ctx := context.Background()
	svc, _, staticDir := newSampleService(t)

	group := "drums"
	sample, err := svc.Create(ctx, &domain.Upload{
		Filename: "Kick.WAV",
		MimeType: "audio/wave",
		Content:  strings.NewReader("audio-bytes"),
	}, nil, &group)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	wantURL := "/samples/" + sample.ID.String() + ".wav"
	if sample.URL != wantURL {
		t.Fatalf("expected url %q, got %q", wantURL, sample.URL)
	}
	if sample.Label != "Kick.WAV" {
		t.Fatalf("label must default to the filename, got %q", sample.Label)
	}
	if sample.Group == nil || *sample.Group != "drums" {
		t.Fatalf("expected group drums, got %v", sample.Group)
	}

	onDisk := filepath.Join(staticDir, "samples", sample.ID.String()+".wav")
	if _, err := os.Stat(onDisk); err != nil {
		t.Fatalf("expected stored file at %s: %v", onDisk, err)
	}
}

func TestSampleServiceCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc, h, _ := newSampleService(t)

	_, err := svc.Create(ctx, &domain.Upload{
		Filename: "noextension",
		MimeType: "audio/wave",
		Content:  strings.NewReader("x"),
	}, nil, nil)
	if !apierr.IsKind(err, apierr.KindValidation) {
		t.Fatalf("expected validation error for missing extension, got %v", err)
	}

	_, err = svc.Create(ctx, &domain.Upload{
		Filename: "movie.mp4",
		MimeType: "video/mp4",
		Content:  strings.NewReader("x"),
	}, nil, nil)
	if !apierr.IsKind(err, apierr.KindValidation) {
		t.Fatalf("expected validation error for non-audio mime, got %v", err)
	}

	// Validation fails before anything is persisted.
	list, err := h.sampleRepo.List(ctx, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no samples persisted, got %d", len(list))
	}
}

func TestSampleServiceUpdate(t *testing.T) {
	ctx := context.Background()
	svc, h, _ := newSampleService(t)

	seeded := testutil.SeedSample(t, ctx, h.tx, "snare.wav")

	label := "snare tight"
	updated, err := svc.Update(ctx, seeded.ID.String(), SampleUpdateInput{Label: &label})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated == nil || updated.Label != "snare tight" {
		t.Fatalf("expected patched label, got %+v", updated)
	}

	missing, err := svc.Update(ctx, "not-a-uuid", SampleUpdateInput{Label: &label})
	if err != nil {
		t.Fatalf("update malformed id: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for malformed id, got %+v", missing)
	}
}

func TestSampleServiceDeleteRemovesFile(t *testing.T) {
	ctx := context.Background()
	svc, h, staticDir := newSampleService(t)

	created, err := svc.Create(ctx, &domain.Upload{
		Filename: "hat.wav",
		MimeType: "audio/wave",
		Content:  strings.NewReader("x"),
	}, nil, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	deleted, err := svc.Delete(ctx, created.ID.String())
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted == nil || deleted.ID != created.ID {
		t.Fatalf("expected deleted record back, got %+v", deleted)
	}

	if got, err := h.sampleRepo.GetByID(ctx, nil, created.ID); err != nil || got != nil {
		t.Fatalf("expected record gone, got %+v err %v", got, err)
	}
	onDisk := filepath.Join(staticDir, "samples", created.ID.String()+".wav")
	if _, err := os.Stat(onDisk); !os.IsNotExist(err) {
		t.Fatalf("expected file gone, stat err: %v", err)
	}
}
