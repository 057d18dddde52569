package registry

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/phasorcalc/internal/config"
	"github.com/vk/phasorcalc/internal/ctxlog"
)

// ErrModuleNotFound is recorded for configured modules that are not compiled in.
var ErrModuleNotFound = errors.New("module not found")

// Failure records why one configured module was skipped.
type Failure struct {
	Module string
	Err    error
}

// Report is the bookkeeping of a Load call.
type Report struct {
	Specified int
	Loaded    []string
	Failed    []Failure
}

// Summary renders the one-line load summary shown at startup.
func (rep *Report) Summary() string {
	return fmt.Sprintf("%d modules specified (%d loaded successfully).", rep.Specified, len(rep.Loaded))
}

// Load loads every spec in order using the matching module from available.
// Failures are recorded in the report and do not stop later modules.
func (r *Registry) Load(ctx context.Context, available []Module, specs []*config.ModuleSpec) *Report {
	logger := ctxlog.FromContext(ctx)

	byName := make(map[string]Module, len(available))
	for _, mod := range available {
		byName[mod.Name()] = mod
	}

	report := &Report{Specified: len(specs)}
	for _, spec := range specs {
		if err := r.loadModule(ctx, byName, spec); err != nil {
			logger.Warn("Module could not be loaded.", "module", spec.Name, "error", err)
			report.Failed = append(report.Failed, Failure{Module: spec.Name, Err: err})
			continue
		}
		logger.Debug("Module loaded successfully.", "module", spec.Name, "namespace", spec.Namespace)
		report.Loaded = append(report.Loaded, spec.Name)
		r.loaded = append(r.loaded, spec.Name)
	}
	return report
}

func (r *Registry) loadModule(ctx context.Context, byName map[string]Module, spec *config.ModuleSpec) error {
	proto, ok := byName[spec.Name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrModuleNotFound, spec.Name)
	}
	mod := fresh(proto)
	if spec.Namespace != "" && !hclsyntax.ValidIdentifier(spec.Namespace) {
		return fmt.Errorf("invalid namespace %q: must be a valid identifier", spec.Namespace)
	}

	cfg, err := ValidateConfig(mod, spec.Config)
	if err != nil {
		return err
	}
	if init, ok := mod.(Initializer); ok {
		if err := init.Init(ctx, cfg); err != nil {
			return fmt.Errorf("init failed: %w", err)
		}
	} else if len(cfg) > 0 {
		return fmt.Errorf("module '%s' does not accept configuration", spec.Name)
	}

	s := newScope(spec.Name)
	r.current = s
	func() {
		defer func() { r.current = nil }()
		mod.Register(r)
	}()

	r.merge(ctx, s, spec.Namespace)
	if a, ok := mod.(DisplayAdjuster); ok {
		r.adjusters = append(r.adjusters, a)
	}
	return nil
}

// fresh returns a zero instance of mod's type so a module loaded under two
// namespaces keeps two configurations.
func fresh(mod Module) Module {
	t := reflect.TypeOf(mod)
	if t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return mod
	}
	return reflect.New(t.Elem()).Interface().(Module)
}

// merge exports the public names of s into the root namespace or into ns.
func (r *Registry) merge(ctx context.Context, s *scope, ns string) {
	logger := ctxlog.FromContext(ctx)

	if ns == "" {
		for name, fn := range s.functions {
			if isPrivate(name) {
				continue
			}
			if _, exists := r.functions[name]; exists {
				logger.Debug("Function shadowed by later module.", "name", name, "module", s.module)
			}
			r.functions[name] = fn
		}
		for name, v := range s.variables {
			if isPrivate(name) {
				continue
			}
			if r.shadowVariable(name) {
				logger.Debug("Variable shadowed by later module.", "name", name, "module", s.module)
			}
			r.variables[name] = v
		}
		for name, get := range s.dynamic {
			if isPrivate(name) {
				continue
			}
			if r.shadowVariable(name) {
				logger.Debug("Variable shadowed by later module.", "name", name, "module", s.module)
			}
			r.dynamic[name] = get
		}
		return
	}

	target, ok := r.namespaces[ns]
	if !ok {
		target = newScope(s.module)
		r.namespaces[ns] = target
	}
	for name, fn := range s.functions {
		if !isPrivate(name) {
			r.functions[ns+NamespaceSeparator+name] = fn
		}
	}
	for name, v := range s.variables {
		if !isPrivate(name) {
			delete(target.dynamic, name)
			target.variables[name] = v
		}
	}
	for name, get := range s.dynamic {
		if !isPrivate(name) {
			delete(target.variables, name)
			target.dynamic[name] = get
		}
	}
}

// shadowVariable removes any existing root variable called name and reports
// whether there was one.
func (r *Registry) shadowVariable(name string) bool {
	_, v := r.variables[name]
	_, d := r.dynamic[name]
	delete(r.variables, name)
	delete(r.dynamic, name)
	return v || d
}
