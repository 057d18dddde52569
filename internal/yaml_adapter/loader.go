// Package yaml_adapter provides a YAML implementation of config.Loader for
// users who prefer YAML over HCL:
//
//	display:
//	  angle_unit: degree
//	  precision: 3
//	modules:
//	  - name: std_math
//	    config:
//	      degree_mode: true
//	  - name: phasor
package yaml_adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/phasorcalc/internal/config"
	"github.com/vk/phasorcalc/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

type fileRoot struct {
	Display *displayDoc  `yaml:"display"`
	Prompt  string       `yaml:"prompt"`
	Modules []*moduleDoc `yaml:"modules"`
}

type displayDoc struct {
	AngleUnit string `yaml:"angle_unit"`
	Glyph     string `yaml:"glyph"`
	Precision *int   `yaml:"precision"`
}

type moduleDoc struct {
	Name      string         `yaml:"name"`
	Namespace string         `yaml:"namespace"`
	Config    map[string]any `yaml:"config"`
}

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load decodes each path strictly; unknown keys are errors.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := &config.Model{}

	for _, file := range paths {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}

		var root fileRoot
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to decode YAML file %s: %w", file, err)
		}

		m, err := translate(&root)
		if err != nil {
			return nil, fmt.Errorf("in %s: %w", file, err)
		}
		model.Merge(m)
		logger.Debug("Loaded YAML config file.", "file", file, "modules", len(m.Modules))
	}
	return model, nil
}

func translate(root *fileRoot) (*config.Model, error) {
	m := &config.Model{Prompt: root.Prompt}
	if root.Display != nil {
		m.Display = &config.Display{
			AngleUnit: root.Display.AngleUnit,
			Glyph:     root.Display.Glyph,
			Precision: root.Display.Precision,
		}
	}

	for i, doc := range root.Modules {
		if doc == nil || doc.Name == "" {
			return nil, fmt.Errorf("modules[%d]: name is required", i)
		}
		spec := &config.ModuleSpec{Name: doc.Name, Namespace: doc.Namespace}
		if len(doc.Config) > 0 {
			spec.Config = make(map[string]cty.Value, len(doc.Config))
			for k, raw := range doc.Config {
				v, err := toCtyValue(raw)
				if err != nil {
					return nil, fmt.Errorf("module '%s', config '%s': %w", doc.Name, k, err)
				}
				spec.Config[k] = v
			}
		}
		m.Modules = append(m.Modules, spec)
	}
	return m, nil
}
