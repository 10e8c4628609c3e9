package repos

import (
	"gorm.io/gorm"

	"github.com/soundgrid/sequencer-backend/internal/data/repos/instrument"
	"github.com/soundgrid/sequencer-backend/internal/data/repos/sample"
	"github.com/soundgrid/sequencer-backend/internal/data/repos/session"
	"github.com/soundgrid/sequencer-backend/internal/platform/logger"
)

type SampleRepo = sample.SampleRepo
type InstrumentRepo = instrument.InstrumentRepo
type SessionRepo = session.SessionRepo

func NewSampleRepo(db *gorm.DB, baseLog *logger.Logger) SampleRepo {
	return sample.NewSampleRepo(db, baseLog)
}

func NewInstrumentRepo(db *gorm.DB, baseLog *logger.Logger) InstrumentRepo {
	return instrument.NewInstrumentRepo(db, baseLog)
}

func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	return session.NewSessionRepo(db, baseLog)
}
