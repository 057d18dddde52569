package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/phasorcalc/internal/config"
	"github.com/vk/phasorcalc/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// translate converts the decoded HCL schema into the agnostic model.
func (l *Loader) translate(ctx context.Context, root *fileRoot) (*config.Model, error) {
	m := &config.Model{}

	if root.Display != nil {
		d := &config.Display{Precision: root.Display.Precision}
		if root.Display.AngleUnit != nil {
			d.AngleUnit = *root.Display.AngleUnit
		}
		if root.Display.Glyph != nil {
			d.Glyph = *root.Display.Glyph
		}
		m.Display = d
	}
	if root.Prompt != nil {
		m.Prompt = *root.Prompt
	}

	for _, block := range root.Modules {
		spec, err := translateModule(ctx, block)
		if err != nil {
			return nil, err
		}
		m.Modules = append(m.Modules, spec)
	}
	return m, nil
}

func translateModule(ctx context.Context, block *ModuleBlock) (*config.ModuleSpec, error) {
	spec := &config.ModuleSpec{Name: block.Name}
	if block.Namespace != nil {
		spec.Namespace = *block.Namespace
	}

	if !isExprDefined(ctx, block.Config, "config") {
		return spec, nil
	}

	val, diags := block.Config.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid config for module '%s': %w", block.Name, diags)
	}
	cfg, err := objectToMap(val)
	if err != nil {
		return nil, fmt.Errorf("invalid config for module '%s': %w", block.Name, err)
	}
	spec.Config = cfg
	return spec, nil
}

// objectToMap flattens an object or map value into its attributes.
func objectToMap(val cty.Value) (map[string]cty.Value, error) {
	if val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("config must be an object, got %s", ty.FriendlyName())
	}
	if !val.IsWhollyKnown() {
		return nil, fmt.Errorf("config must be fully known")
	}
	return val.AsValueMap(), nil
}

// isExprDefined checks if an HCL expression was actually present in the source
// code. gohcl fills omitted optional expression fields with a placeholder
// whose source range has zero width, so a nil check alone is not enough.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	defined := r.End.Byte > r.Start.Byte
	ctxlog.FromContext(ctx).Debug("Checked HCL attribute presence.", "attribute", attrName, "hcl_range", r.String(), "is_defined", defined)
	return defined
}
