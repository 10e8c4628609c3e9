package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const DefaultInstrumentGroup = "NO_GROUP"

// MappingEntry binds one MIDI note to a sample, optionally detuned. Stored
// inside the instrument's JSONB mapping column.
type MappingEntry struct {
	Note     int    `json:"note"`
	SampleID string `json:"sampleID"`
	Detune   int    `json:"detune"`
}

// Instrument is a MIDI-note-to-sample mapping table. SampleIDs is the
// deduplicated union of the sample references of every mapping entry;
// samples are referenced, not owned. Instruments are immutable after
// creation.
type Instrument struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Label string    `gorm:"not null;column:label" json:"label"`
	Group string    `gorm:"not null;column:instrument_group" json:"group"`

	SampleIDs datatypes.JSONSlice[string] `gorm:"column:sample_ids" json:"sampleIDs"`
	Mapping   []MappingEntry              `gorm:"type:jsonb;serializer:json;column:mapping" json:"mapping"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updatedAt"`
}

func (Instrument) TableName() string { return "instrument" }

// MappingEntryView is a mapping entry with its sample reference resolved.
type MappingEntryView struct {
	Note   int     `json:"note"`
	Sample *Sample `json:"sample"`
	Detune int     `json:"detune"`
}

// InstrumentView is an instrument with its sample references resolved.
type InstrumentView struct {
	ID        uuid.UUID          `json:"id"`
	Label     string             `json:"label"`
	Group     string             `json:"group"`
	Samples   []*Sample          `json:"samples"`
	Mapping   []MappingEntryView `json:"mapping"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// Resolve materializes the instrument's sample references from the given
// lookup table. References missing from the table are skipped; relation
// loading is an explicit read path, not a storage hook.
func (i *Instrument) Resolve(samples map[string]*Sample) *InstrumentView {
	view := &InstrumentView{
		ID:        i.ID,
		Label:     i.Label,
		Group:     i.Group,
		Samples:   make([]*Sample, 0, len(i.SampleIDs)),
		Mapping:   make([]MappingEntryView, 0, len(i.Mapping)),
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
	for _, id := range i.SampleIDs {
		if s, ok := samples[id]; ok {
			view.Samples = append(view.Samples, s)
		}
	}
	for _, m := range i.Mapping {
		s, ok := samples[m.SampleID]
		if !ok {
			continue
		}
		view.Mapping = append(view.Mapping, MappingEntryView{
			Note:   m.Note,
			Sample: s,
			Detune: m.Detune,
		})
	}
	return view
}
