// Package daemon assembles the database, push service and web service and runs them.
package daemon

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/pushcast/pushcast/internal/config"
	"github.com/pushcast/pushcast/internal/db"
	"github.com/pushcast/pushcast/internal/db/controller/registration"
	"github.com/pushcast/pushcast/internal/db/dsn"
	"github.com/pushcast/pushcast/internal/push"
	"github.com/pushcast/pushcast/internal/web"
	"github.com/pushcast/pushcast/internal/web/handler"
	"github.com/pushcast/pushcast/internal/web/session"
)

const sessionTable = "sessions"

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	webService *web.Service
}

// Start serves HTTP until SIGINT or SIGTERM.
func (d *Daemon) Start() error {
	errCh := make(chan error, 1)

	go func() {
		errCh <- d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
	}()

	go d.webService.WaitShutdown()

	err := <-errCh

	if sqlDB, dbErr := d.db.DB(); dbErr == nil {
		_ = sqlDB.Close()
	}

	return err
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, handler.ErrNilDeps
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}

	if err = seed(cfg, gdb); err != nil {
		return nil, err
	}

	session.Init(sessionStorage(cfg))

	settings, err := push.NewSettingsStore(gdb)
	if err != nil {
		return nil, fmt.Errorf("failed to load gateway settings: %w", err)
	}

	registrations, err := registration.New(gdb)
	if err != nil {
		return nil, err
	}

	deps := &handler.Deps{
		Cfg:  cfg,
		DB:   gdb,
		Push: push.NewService(settings, registrations, push.NewGateway(cfg.Push.Timeout), cfg.Push.BatchSize),
	}

	webService, err := web.New(cfg, deps)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("engine", cfg.DB.GormEngine).
		Int("port", cfg.Webserver.Port).
		Bool("gateway_configured", settings.Get().Configured()).
		Msg("daemon initialized")

	return &Daemon{
		cfg:        cfg,
		db:         gdb,
		webService: webService,
	}, nil
}

// sessionStorage keeps sessions next to the data; sqlite uses fiber's in-memory storage.
func sessionStorage(cfg *config.Config) fiber.Storage {
	switch cfg.DB.GormEngine {
	case config.GormEngineMySQL:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.MySQL(cfg),
			Table:         sessionTable,
		})
	case config.GormEnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.Postgres(cfg),
			Table:         sessionTable,
		})
	default:
		return nil
	}
}
