package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// ValidateConfig checks raw module options against the module's declared
// schema and converts each value to its declared type. Modules that do not
// implement Configurable get raw back unchanged.
func ValidateConfig(mod Module, raw map[string]cty.Value) (map[string]cty.Value, error) {
	c, ok := mod.(Configurable)
	if !ok {
		return raw, nil
	}
	schema := c.ConfigSchema()

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []string
	out := make(map[string]cty.Value, len(raw))
	for _, name := range names {
		ty, ok := schema[name]
		if !ok {
			errs = append(errs, fmt.Sprintf("module '%s': unknown config option '%s'", mod.Name(), name))
			continue
		}
		val, err := convert.Convert(raw[name], ty)
		if err != nil {
			errs = append(errs, fmt.Sprintf("module '%s', option '%s': requires %s: %v", mod.Name(), name, ty.FriendlyName(), err))
			continue
		}
		out[name] = val
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("config validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return out, nil
}

// Bool reads a boolean option, returning def when it is absent or null.
func Bool(cfg map[string]cty.Value, name string, def bool) bool {
	v, ok := cfg[name]
	if !ok || v.IsNull() || !v.IsKnown() || !v.Type().Equals(cty.Bool) {
		return def
	}
	return v.True()
}

// Float reads a numeric option, returning def when it is absent or null.
func Float(cfg map[string]cty.Value, name string, def float64) float64 {
	v, ok := cfg[name]
	if !ok || v.IsNull() || !v.IsKnown() || !v.Type().Equals(cty.Number) {
		return def
	}
	f, _ := v.AsBigFloat().Float64()
	return f
}
