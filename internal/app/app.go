package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/phasorcalc/internal/config"
	"github.com/vk/phasorcalc/internal/ctxlog"
	"github.com/vk/phasorcalc/internal/history"
	"github.com/vk/phasorcalc/internal/registry"
	"github.com/vk/phasorcalc/internal/session"
)

// Version is reported in the banner.
const Version = "v0.1.0"

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	model    *config.Model
	registry *registry.Registry
	report   *registry.Report
	session  *session.Session
	history  *history.Store
}

// NewApp is the constructor for the main application. Results go to outW and
// logs to logW. Fatal startup problems such as an unreadable configuration
// file panic; the caller recovers them.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) *App {
	logger, err := newLogger(cfg, logW)
	if err != nil {
		panic(fmt.Errorf("failed to configure logging: %w", err))
	}
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loadModel(ctx, loader, cfg.ConfigPath)
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}

	if len(modules) == 0 {
		modules = coreModules
	}
	reg := registry.New(logger)
	report := reg.Load(ctx, modules, model.Modules)
	logger.Debug("Modules loaded.", "specified", report.Specified, "loaded", len(report.Loaded))

	display, err := resolveDisplay(reg, model, cfg)
	if err != nil {
		panic(err)
	}
	logger.Debug("Display resolved.", "unit", display.Unit, "glyph", display.Glyph, "precision", display.Precision)

	a := &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		model:    model,
		registry: reg,
		report:   report,
		session:  session.New(reg, display),
	}

	if cfg.HistoryPath != "" {
		store, err := history.Open(cfg.HistoryPath)
		if err != nil {
			panic(fmt.Errorf("failed to open history: %w", err))
		}
		a.history = store
		logger.Debug("History enabled.", "path", cfg.HistoryPath, "session", a.session.ID())
	}

	return a
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Session returns the application's session. This is primarily for testing.
func (a *App) Session() *session.Session {
	return a.session
}

// Close releases the history store, if any. It is safe to call twice.
func (a *App) Close() error {
	if a.history == nil {
		return nil
	}
	err := a.history.Close()
	a.history = nil
	return err
}
