package config

import (
	"fmt"

	"github.com/vk/phasorcalc/internal/phasor"
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of a calculator
// configuration.
type Model struct {
	Display *Display
	Prompt  string
	Modules []*ModuleSpec
}

// Display holds the optional display overrides. Empty strings and a nil
// Precision mean "not set".
type Display struct {
	AngleUnit string
	Glyph     string
	Precision *int
}

// ModuleSpec selects one module to load. An empty Namespace merges the
// module's names straight into the root namespace.
type ModuleSpec struct {
	Name      string
	Namespace string
	Config    map[string]cty.Value
}

// DefaultModel mirrors the stock calculator setup: every built-in module
// merged into the root namespace.
func DefaultModel() *Model {
	return &Model{
		Modules: []*ModuleSpec{
			{Name: "std_math", Config: map[string]cty.Value{"degree_mode": cty.True}},
			{Name: "phasor", Config: map[string]cty.Value{"enable_unicode": cty.False}},
			{Name: "circuits", Config: map[string]cty.Value{"abbreviate_names": cty.True}},
			{Name: "util"},
		},
	}
}

// Merge folds other into m. Display fields and the prompt are overridden
// when set in other; modules are appended.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	if other.Display != nil {
		if m.Display == nil {
			m.Display = &Display{}
		}
		if other.Display.AngleUnit != "" {
			m.Display.AngleUnit = other.Display.AngleUnit
		}
		if other.Display.Glyph != "" {
			m.Display.Glyph = other.Display.Glyph
		}
		if other.Display.Precision != nil {
			p := *other.Display.Precision
			m.Display.Precision = &p
		}
	}
	if other.Prompt != "" {
		m.Prompt = other.Prompt
	}
	m.Modules = append(m.Modules, other.Modules...)
}

// ResolveDisplay starts from base and applies the model's display block.
func (m *Model) ResolveDisplay(base phasor.Display) (phasor.Display, error) {
	d := base

	if m.Display != nil {
		if m.Display.AngleUnit != "" {
			u, err := phasor.ParseAngleUnit(m.Display.AngleUnit)
			if err != nil {
				return base, fmt.Errorf("display: %w", err)
			}
			d.Unit = u
		}
		if m.Display.Glyph != "" {
			g, err := phasor.ParseGlyph(m.Display.Glyph)
			if err != nil {
				return base, fmt.Errorf("display: %w", err)
			}
			d.Glyph = g
		}
		if m.Display.Precision != nil {
			d.Precision = *m.Display.Precision
		}
	}

	if err := d.Validate(); err != nil {
		return base, fmt.Errorf("display: %w", err)
	}
	return d, nil
}
