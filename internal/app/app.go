package app

import (
	"context"
	"fmt"
	"log/slog"

	"timetracker/internal/adapter/clipboard"
	"timetracker/internal/adapter/memory"
	msql "timetracker/internal/adapter/mysql"
	"timetracker/internal/adapter/sqlite"
	"timetracker/internal/clock"
	"timetracker/internal/config"
	"timetracker/internal/duration"
	"timetracker/internal/migrate"
	"timetracker/internal/ports"
	"timetracker/internal/usecase"
)

// App wires the store, the tracker and the intent loop.
type App struct {
	log   *slog.Logger
	store ports.Store
	loop  *Loop
}

// New opens the configured store, applies migrations and restores the
// tracker. Any failure here means the initial state is unknown.
func New(ctx context.Context, log *slog.Logger, cfg config.Config) (*App, error) {
	store, err := openStore(ctx, log, cfg)
	if err != nil {
		return nil, err
	}
	order, err := duration.ParseOrder(cfg.UI.Order)
	if err != nil {
		store.Close()
		return nil, err
	}

	tracker, err := usecase.Open(ctx, log, store, clipboard.System{}, clock.System{}, usecase.Options{
		Order:    order,
		DarkMode: cfg.UI.DarkMode,
	})
	if err != nil {
		store.Close()
		return nil, err
	}

	return &App{log: log, store: store, loop: NewLoop(log, tracker, cfg.UI.Tick)}, nil
}

func openStore(ctx context.Context, log *slog.Logger, cfg config.Config) (ports.Store, error) {
	switch cfg.Store.Driver {
	case config.StoreMySQL:
		c, err := msql.NewClient(ctx, cfg.MySQL.DSN, log)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
		// Run migrations before using the store
		if err := migrate.Run(ctx, c.DB(), migrate.MySQL, log); err != nil {
			c.Close()
			return nil, fmt.Errorf("migrate mysql: %w", err)
		}
		return c, nil
	case config.StoreMemory:
		log.Warn("using in-memory store, nothing will be saved")
		return memory.NewStore(), nil
	default:
		c, err := sqlite.NewClient(ctx, cfg.Store.Path, log)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		if err := migrate.Run(ctx, c.DB(), migrate.SQLite, log); err != nil {
			c.Close()
			return nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		return c, nil
	}
}

// Loop returns the intent loop front-ends submit to.
func (a *App) Loop() *Loop { return a.loop }

// Run drives the loop until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	return a.loop.Run(ctx)
}

// Close releases the store. Call after Run has returned.
func (a *App) Close() error { return a.store.Close() }
