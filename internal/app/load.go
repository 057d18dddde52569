package app

import (
	"context"
	"fmt"

	"github.com/vk/phasorcalc/internal/config"
	"github.com/vk/phasorcalc/internal/ctxlog"
	"github.com/vk/phasorcalc/internal/phasor"
	"github.com/vk/phasorcalc/internal/registry"
)

// loadModel reads the configuration file, falling back to the stock module
// list when the file names no modules.
func loadModel(ctx context.Context, loader config.Loader, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	model := &config.Model{}
	if path != "" {
		loaded, err := loader.Load(ctx, path)
		if err != nil {
			return nil, err
		}
		model.Merge(loaded)
		logger.Debug("Configuration loaded.", "path", path, "modules", len(model.Modules))
	}
	if len(model.Modules) == 0 {
		logger.Debug("No modules configured, using defaults.")
		model.Modules = config.DefaultModel().Modules
	}
	return model, nil
}

// resolveDisplay layers the display settings: defaults, module hints, the
// configuration file, then the command line.
func resolveDisplay(reg *registry.Registry, model *config.Model, cfg *Config) (phasor.Display, error) {
	d := reg.AdjustDisplay(phasor.DefaultDisplay)
	d, err := model.ResolveDisplay(d)
	if err != nil {
		return d, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg.applyDisplay(d), nil
}
