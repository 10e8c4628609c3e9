package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	DefaultTempo      = 120.0
	DefaultMasterGain = 1.0
	DefaultTrackLabel = "Untitled track"

	// TrackCellCount is the fixed size of a track's pattern grid.
	TrackCellCount = 64
)

// Cell is one step slot in a track's 64-cell pattern grid.
type Cell struct {
	Scheduled  bool            `json:"scheduled"`
	Midi       *int            `json:"midi"`
	Processing AudioProcessing `json:"processing"`
}

// NewCell returns an unscheduled cell with default processing.
func NewCell() Cell {
	return Cell{
		Scheduled:  false,
		Midi:       nil,
		Processing: NewAudioProcessing(),
	}
}

// Track is one sequencer lane inside a session. It is embedded in the
// session document, not a table of its own; InstrumentID references a
// top-level instrument.
type Track struct {
	ID             string          `json:"id"`
	Color          string          `json:"color"`
	Label          string          `json:"label"`
	NoteResolution int             `json:"noteResolution"`
	InstrumentID   string          `json:"instrumentID"`
	Muted          bool            `json:"muted"`
	Soloed         bool            `json:"soloed"`
	Cells          []Cell          `json:"cells"`
	Processing     AudioProcessing `json:"processing"`
}

// NewTrack builds a track around an instrument with every default applied
// explicitly: pink color, 16th-note resolution and a fresh 64-cell grid.
func NewTrack(instrumentID string) Track {
	cells := make([]Cell, TrackCellCount)
	for i := range cells {
		cells[i] = NewCell()
	}
	return Track{
		ID:             uuid.NewString(),
		Color:          DefaultTrackColor,
		Label:          DefaultTrackLabel,
		NoteResolution: 1,
		InstrumentID:   instrumentID,
		Muted:          false,
		Soloed:         false,
		Cells:          cells,
		Processing:     NewAudioProcessing(),
	}
}

// Session is the sequencer project aggregate: transport and mixer state, the
// ordered tracks with their pattern grids, and denormalized back-references
// to every instrument and sample the tracks use. Tracks and the reference
// lists are stored as JSONB documents on the session row.
//
// Invariant (by convention, not enforced by storage): every track id appears
// exactly once in TrackOrder, every track's instrument in InstrumentIDs, and
// every sample reachable through a track's instrument in SampleIDs. The only
// mutation that grows these collections maintains it; see
// services.SessionService.AttachInstrument.
type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatorID string    `gorm:"not null;column:creator_id" json:"creatorID"`

	Tempo      float64 `gorm:"not null;column:tempo" json:"tempo"`
	MasterGain float64 `gorm:"not null;column:master_gain" json:"masterGain"`

	ActiveTrackID  *string `gorm:"column:active_track_id" json:"activeTrackID"`
	ActiveCellBeat *int    `gorm:"column:active_cell_beat" json:"activeCellBeat"`

	TrackOrder    datatypes.JSONSlice[string] `gorm:"column:track_order" json:"trackOrder"`
	Tracks        []Track                     `gorm:"type:jsonb;serializer:json;column:tracks" json:"tracks"`
	InstrumentIDs datatypes.JSONSlice[string] `gorm:"column:instrument_ids" json:"instrumentIDs"`
	SampleIDs     datatypes.JSONSlice[string] `gorm:"column:sample_ids" json:"sampleIDs"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Session) TableName() string { return "session" }

// NewSession returns an empty session for the given creator with transport
// defaults applied explicitly.
func NewSession(creatorID string) *Session {
	return &Session{
		ID:            uuid.New(),
		CreatorID:     creatorID,
		Tempo:         DefaultTempo,
		MasterGain:    DefaultMasterGain,
		TrackOrder:    datatypes.JSONSlice[string]{},
		Tracks:        []Track{},
		InstrumentIDs: datatypes.JSONSlice[string]{},
		SampleIDs:     datatypes.JSONSlice[string]{},
	}
}

// TrackView is a track with its instrument reference resolved.
type TrackView struct {
	ID             string          `json:"id"`
	Color          string          `json:"color"`
	Label          string          `json:"label"`
	NoteResolution int             `json:"noteResolution"`
	Instrument     *InstrumentView `json:"instrument"`
	Muted          bool            `json:"muted"`
	Soloed         bool            `json:"soloed"`
	Cells          []Cell          `json:"cells"`
	Processing     AudioProcessing `json:"processing"`
}

// SessionView is a session with every nested reference resolved:
// tracks[].instrument plus the session-level instrument and sample lists.
type SessionView struct {
	ID             uuid.UUID         `json:"id"`
	CreatorID      string            `json:"creatorID"`
	Tempo          float64           `json:"tempo"`
	MasterGain     float64           `json:"masterGain"`
	ActiveTrackID  *string           `json:"activeTrackID"`
	ActiveCellBeat *int              `json:"activeCellBeat"`
	TrackOrder     []string          `json:"trackOrder"`
	Tracks         []TrackView       `json:"tracks"`
	Instruments    []*InstrumentView `json:"instruments"`
	Samples        []*Sample         `json:"samples"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// Resolve materializes every reference held by the session. The instruments
// map is keyed by instrument id, samples by sample id. Duplicate entries in
// InstrumentIDs or SampleIDs stay duplicated in the view; references missing
// from the lookup tables are skipped.
func (s *Session) Resolve(instruments map[string]*InstrumentView, samples map[string]*Sample) *SessionView {
	view := &SessionView{
		ID:             s.ID,
		CreatorID:      s.CreatorID,
		Tempo:          s.Tempo,
		MasterGain:     s.MasterGain,
		ActiveTrackID:  s.ActiveTrackID,
		ActiveCellBeat: s.ActiveCellBeat,
		TrackOrder:     append([]string{}, s.TrackOrder...),
		Tracks:         make([]TrackView, 0, len(s.Tracks)),
		Instruments:    make([]*InstrumentView, 0, len(s.InstrumentIDs)),
		Samples:        make([]*Sample, 0, len(s.SampleIDs)),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
	for _, t := range s.Tracks {
		view.Tracks = append(view.Tracks, TrackView{
			ID:             t.ID,
			Color:          t.Color,
			Label:          t.Label,
			NoteResolution: t.NoteResolution,
			Instrument:     instruments[t.InstrumentID],
			Muted:          t.Muted,
			Soloed:         t.Soloed,
			Cells:          t.Cells,
			Processing:     t.Processing,
		})
	}
	for _, id := range s.InstrumentIDs {
		if iv, ok := instruments[id]; ok {
			view.Instruments = append(view.Instruments, iv)
		}
	}
	for _, id := range s.SampleIDs {
		if sv, ok := samples[id]; ok {
			view.Samples = append(view.Samples, sv)
		}
	}
	return view
}
