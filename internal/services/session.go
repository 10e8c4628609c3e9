package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/soundgrid/sequencer-backend/internal/data/repos"
	"github.com/soundgrid/sequencer-backend/internal/domain"
	"github.com/soundgrid/sequencer-backend/internal/platform/logger"
)

// SessionResult is the outcome of a session mutation. Business-logic
// failures (unknown session, unknown instrument) are reported here with
// Success=false instead of an error: only storage failures surface as
// errors.
type SessionResult struct {
	Success         bool
	MessageTemplate string
	Message         string
	Session         *domain.SessionView
}

type SessionService interface {
	Create(ctx context.Context, creatorID string) (*SessionResult, error)
	Get(ctx context.Context, id string) (*domain.SessionView, error)
	AttachInstrument(ctx context.Context, sessionID string, instrumentID *string) (*SessionResult, error)
}

type sessionService struct {
	db             *gorm.DB
	log            *logger.Logger
	sessionRepo    repos.SessionRepo
	instrumentRepo repos.InstrumentRepo
	sampleRepo     repos.SampleRepo
}

func NewSessionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	sessionRepo repos.SessionRepo,
	instrumentRepo repos.InstrumentRepo,
	sampleRepo repos.SampleRepo,
) SessionService {
	serviceLog := baseLog.With("service", "SessionService")
	return &sessionService{
		db:             db,
		log:            serviceLog,
		sessionRepo:    sessionRepo,
		instrumentRepo: instrumentRepo,
		sampleRepo:     sampleRepo,
	}
}

// Create persists an empty session for the given creator.
func (ss *sessionService) Create(ctx context.Context, creatorID string) (*SessionResult, error) {
	session := domain.NewSession(creatorID)

	created, err := ss.sessionRepo.Create(ctx, nil, session)
	if err != nil {
		return nil, err
	}

	view, err := ss.resolve(ctx, created)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return &SessionResult{
			Success:         false,
			MessageTemplate: "mutation.createSession.failure",
			Message:         "Failed to create session",
		}, nil
	}

	ss.log.Info("Session created", "session_id", created.ID, "creator_id", creatorID)
	return &SessionResult{
		Success:         true,
		MessageTemplate: "mutation.createSession.success",
		Message:         fmt.Sprintf("Session %s created successfully", created.ID),
		Session:         view,
	}, nil
}

// Get returns the session with every nested reference resolved, or nil when
// it does not exist.
func (ss *sessionService) Get(ctx context.Context, id string) (*domain.SessionView, error) {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	session, err := ss.sessionRepo.GetByID(ctx, nil, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	return ss.resolve(ctx, session)
}

// AttachInstrument grows a session by one track built around an instrument.
// Four collections are appended in lockstep: tracks, trackOrder,
// instruments and samples. The instrument and sample reference lists are
// deliberately NOT deduplicated — attaching the same instrument twice, or
// two instruments sharing samples, produces duplicate entries, and existing
// clients depend on that.
//
// When instrumentID is nil the call degenerates to a no-op update that
// still refreshes updatedAt.
//
// The whole operation is a non-transactional read-modify-write: concurrent
// attaches on the same session can lose updates (last write wins).
func (ss *sessionService) AttachInstrument(ctx context.Context, sessionID string, instrumentID *string) (*SessionResult, error) {
	failure := &SessionResult{
		Success:         false,
		MessageTemplate: "mutation.updateSession.failure",
		Message:         "Failed to update session",
	}

	id, err := uuid.Parse(sessionID)
	if err != nil {
		return failure, nil
	}
	session, err := ss.sessionRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return failure, nil
	}

	if instrumentID == nil {
		// No-op update: nothing to append, but updated_at still advances.
		if err := ss.sessionRepo.Touch(ctx, nil, session.ID); err != nil {
			return nil, err
		}
	} else {
		instID, err := uuid.Parse(*instrumentID)
		if err != nil {
			return failure, nil
		}
		inst, err := ss.instrumentRepo.GetByID(ctx, nil, instID)
		if err != nil {
			return nil, err
		}
		if inst == nil {
			// Same structured failure as a missing session.
			return failure, nil
		}
		samples, err := resolveSamples(ctx, ss.sampleRepo, inst.SampleIDs)
		if err != nil {
			return nil, err
		}

		track := domain.NewTrack(inst.ID.String())
		session.Tracks = append(session.Tracks, track)
		session.TrackOrder = append(session.TrackOrder, track.ID)
		session.InstrumentIDs = append(session.InstrumentIDs, inst.ID.String())
		for _, sid := range inst.SampleIDs {
			if _, ok := samples[sid]; ok {
				session.SampleIDs = append(session.SampleIDs, sid)
			}
		}

		ss.log.Info("Attached instrument to session",
			"session_id", session.ID,
			"instrument_id", inst.ID,
			"track_id", track.ID,
		)

		if _, err := ss.sessionRepo.Save(ctx, nil, session); err != nil {
			return nil, err
		}
	}

	refetched, err := ss.sessionRepo.GetByID(ctx, nil, session.ID)
	if err != nil {
		return nil, err
	}
	if refetched == nil {
		return failure, nil
	}
	view, err := ss.resolve(ctx, refetched)
	if err != nil {
		return nil, err
	}

	return &SessionResult{
		Success:         true,
		MessageTemplate: "mutation.updateSession.success",
		Message:         fmt.Sprintf("Session %s updated successfully", session.ID),
		Session:         view,
	}, nil
}

// resolve materializes tracks[].instrument plus the session-level instrument
// and sample reference lists.
func (ss *sessionService) resolve(ctx context.Context, session *domain.Session) (*domain.SessionView, error) {
	instrumentIDs := append([]string{}, session.InstrumentIDs...)
	for _, t := range session.Tracks {
		instrumentIDs = append(instrumentIDs, t.InstrumentID)
	}
	instruments, err := resolveInstruments(ctx, ss.instrumentRepo, ss.sampleRepo, instrumentIDs)
	if err != nil {
		return nil, err
	}

	samples, err := resolveSamples(ctx, ss.sampleRepo, session.SampleIDs)
	if err != nil {
		return nil, err
	}

	return session.Resolve(instruments, samples), nil
}
