package registry

import (
	"context"

	"github.com/vk/phasorcalc/internal/phasor"
	"github.com/zclconf/go-cty/cty"
)

// Module is the interface that all calculator modules must implement.
type Module interface {
	// Name is the identifier used in configuration files.
	Name() string
	// Register adds the module's functions and variables to r.
	Register(r *Registry)
}

// Initializer is implemented by modules that accept configuration. Init is
// called with the validated config before Register.
type Initializer interface {
	Init(ctx context.Context, cfg map[string]cty.Value) error
}

// Configurable is implemented by modules that declare the type of each
// config option they accept. Values are converted to these types before
// Init sees them and unknown options are rejected.
type Configurable interface {
	ConfigSchema() map[string]cty.Type
}

// DisplayAdjuster is implemented by modules whose configuration changes the
// default result display.
type DisplayAdjuster interface {
	AdjustDisplay(d phasor.Display) phasor.Display
}

// Warning is a non-fatal message raised by a module while evaluating.
type Warning struct {
	Module  string
	Message string
}

func (w Warning) String() string {
	return w.Module + ": " + w.Message
}
