package app

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/soundgrid/sequencer-backend/internal/data/repos"
	"github.com/soundgrid/sequencer-backend/internal/db"
	"github.com/soundgrid/sequencer-backend/internal/graph"
	"github.com/soundgrid/sequencer-backend/internal/platform/logger"
	"github.com/soundgrid/sequencer-backend/internal/server"
	"github.com/soundgrid/sequencer-backend/internal/services"
)

type Repos struct {
	Sample     repos.SampleRepo
	Instrument repos.InstrumentRepo
	Session    repos.SessionRepo
}

type Services struct {
	Sample     services.SampleService
	Instrument services.InstrumentService
	Session    services.SessionService
}

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig()

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	reposet := Repos{
		Sample:     repos.NewSampleRepo(theDB, log),
		Instrument: repos.NewInstrumentRepo(theDB, log),
		Session:    repos.NewSessionRepo(theDB, log),
	}

	store := services.NewLocalFileStore(cfg.SampleDir, cfg.StaticDir, log)
	serviceset := Services{
		Sample:     services.NewSampleService(theDB, log, store, reposet.Sample),
		Instrument: services.NewInstrumentService(theDB, log, reposet.Instrument, reposet.Sample),
		Session:    services.NewSessionService(theDB, log, reposet.Session, reposet.Instrument, reposet.Sample),
	}

	resolver := graph.NewResolver(log, serviceset.Sample, serviceset.Instrument, serviceset.Session)
	schema, err := graph.NewSchema(resolver)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("build graphql schema: %w", err)
	}
	handler := graph.NewHandler(log, schema)

	router := server.NewRouter(server.RouterConfig{
		GraphQLHandler: handler,
		SampleDir:      cfg.SampleDir,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	return &App{
		Log:      log,
		DB:       theDB,
		Router:   router,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Server listening", "port", a.Cfg.Port)
	return a.Router.Run(":" + a.Cfg.Port)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
