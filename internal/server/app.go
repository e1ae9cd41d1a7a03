package server

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"EarthsFirewall/internal/game"
	"EarthsFirewall/internal/neo"
	"EarthsFirewall/internal/storage"
)

// App holds the wired-up application state shared by all handlers.
type App struct {
	Config  Config
	Logger  *log.Logger
	Store   *storage.Store
	Hub     *game.Hub
	Catalog []neo.Asteroid
	NASA    *neo.Client
}

// NewApp wires storage, the NEO catalog and the game hub. The NASA API
// is tried once at startup; on failure the built-in catalog serves
// instead.
func NewApp(cfg Config) (*App, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "firewall",
	})
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		Logger: logger,
		Store:  store,
		Hub:    game.NewHub(),
		NASA:   neo.NewClient(cfg.NASABaseURL, cfg.NASAAPIKey),
	}
	app.loadCatalog()
	return app, nil
}

func (a *App) loadCatalog() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	asteroids, err := a.NASA.Browse(ctx, a.Config.CatalogLimit)
	if err != nil || len(asteroids) == 0 {
		a.Logger.Warn("NASA NEO API unavailable, using built-in catalog", "error", err)
		a.Catalog = neo.FallbackCatalog()
		return
	}
	a.Logger.Info("loaded NEO catalog", "asteroids", len(asteroids))
	a.Catalog = asteroids
}

// Close releases the app's resources.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// StartApp builds the app and serves HTTP until the listener fails.
func StartApp(cfg Config) error {
	app, err := NewApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	// Drive all live sessions at the fixed simulation rate.
	go func() {
		ticker := time.NewTicker(time.Duration(float64(time.Second) / game.SimHz))
		defer ticker.Stop()
		for range ticker.C {
			app.tickSessions()
		}
	}()

	app.Logger.Info("starting server", "addr", cfg.Addr, "db", cfg.DBPath)
	return app.serve(cfg.Addr)
}

func (a *App) tickSessions() {
	a.Hub.Mu.Lock()
	sessions := make([]*game.Session, 0, len(a.Hub.Sessions))
	for _, s := range a.Hub.Sessions {
		sessions = append(sessions, s)
	}
	a.Hub.Mu.Unlock()

	for _, s := range sessions {
		s.Tick(game.Dt)
		if s.MarkRecorded() {
			a.recordOutcome(s.Snapshot())
		}
	}
}
