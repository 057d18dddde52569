package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/phasorcalc/internal/phasor"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// NamespaceSeparator joins a namespace and a function name in expressions.
const NamespaceSeparator = "::"

// scope collects what one module registers.
type scope struct {
	module    string
	functions map[string]function.Function
	variables map[string]cty.Value
	dynamic   map[string]func() cty.Value
}

func newScope(module string) *scope {
	return &scope{
		module:    module,
		functions: make(map[string]function.Function),
		variables: make(map[string]cty.Value),
		dynamic:   make(map[string]func() cty.Value),
	}
}

// Registry holds the merged namespace of every loaded module.
type Registry struct {
	logger *slog.Logger

	// current is the scope of the module being registered.
	current *scope

	functions  map[string]function.Function
	variables  map[string]cty.Value
	dynamic    map[string]func() cty.Value
	namespaces map[string]*scope
	loaded     []string
	adjusters  []DisplayAdjuster

	mu       sync.Mutex
	warnings []Warning
}

// New creates an empty Registry. A nil logger means slog.Default.
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		logger:     logger,
		functions:  make(map[string]function.Function),
		variables:  make(map[string]cty.Value),
		dynamic:    make(map[string]func() cty.Value),
		namespaces: make(map[string]*scope),
	}
}

func (r *Registry) target() *scope {
	if r.current != nil {
		return r.current
	}
	// Registration outside Load goes straight to the root namespace.
	return &scope{functions: r.functions, variables: r.variables, dynamic: r.dynamic}
}

// RegisterFunction adds a function to the module being registered.
func (r *Registry) RegisterFunction(name string, fn function.Function) {
	s := r.target()
	if _, exists := s.functions[name]; exists {
		panic(fmt.Sprintf("function '%s' already registered by module '%s'", name, s.module))
	}
	r.logger.Debug("Registering function.", "module", s.module, "name", name)
	s.functions[name] = fn
}

// RegisterVariable adds a constant to the module being registered.
func (r *Registry) RegisterVariable(name string, val cty.Value) {
	s := r.target()
	if _, exists := s.variables[name]; exists {
		panic(fmt.Sprintf("variable '%s' already registered by module '%s'", name, s.module))
	}
	if _, exists := s.dynamic[name]; exists {
		panic(fmt.Sprintf("variable '%s' already registered by module '%s'", name, s.module))
	}
	r.logger.Debug("Registering variable.", "module", s.module, "name", name)
	s.variables[name] = val
}

// RegisterDynamic adds a variable whose value is read again every time an
// evaluation context is built.
func (r *Registry) RegisterDynamic(name string, get func() cty.Value) {
	s := r.target()
	if _, exists := s.variables[name]; exists {
		panic(fmt.Sprintf("variable '%s' already registered by module '%s'", name, s.module))
	}
	if _, exists := s.dynamic[name]; exists {
		panic(fmt.Sprintf("variable '%s' already registered by module '%s'", name, s.module))
	}
	r.logger.Debug("Registering dynamic variable.", "module", s.module, "name", name)
	s.dynamic[name] = get
}

// Warn records a warning raised by module and logs it.
func (r *Registry) Warn(module, message string) {
	r.logger.Warn(message, "module", module)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, Warning{Module: module, Message: message})
}

// DrainWarnings returns and clears the recorded warnings.
func (r *Registry) DrainWarnings() []Warning {
	r.mu.Lock()
	defer r.mu.Unlock()
	w := r.warnings
	r.warnings = nil
	return w
}

// HasFunction reports whether name (possibly `ns::name`) resolves.
func (r *Registry) HasFunction(name string) bool {
	_, ok := r.functions[name]
	return ok
}

// Functions returns every callable name, sorted.
func (r *Registry) Functions() []string {
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Variables returns every root-level variable name, sorted. Namespaces
// appear as their object name.
func (r *Registry) Variables() []string {
	seen := make(map[string]struct{})
	for name := range r.variables {
		seen[name] = struct{}{}
	}
	for name := range r.dynamic {
		seen[name] = struct{}{}
	}
	for ns, s := range r.namespaces {
		if len(s.variables)+len(s.dynamic) > 0 {
			seen[ns] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Modules returns the names of the successfully loaded modules in load order.
func (r *Registry) Modules() []string {
	return append([]string(nil), r.loaded...)
}

// EvalContext builds an HCL evaluation context holding the merged namespace.
// Dynamic variables are read at this point.
func (r *Registry) EvalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(r.variables)+len(r.dynamic)+len(r.namespaces))
	for name, v := range r.variables {
		vars[name] = v
	}
	for name, get := range r.dynamic {
		vars[name] = get()
	}
	for ns, s := range r.namespaces {
		attrs := make(map[string]cty.Value, len(s.variables)+len(s.dynamic))
		for name, v := range s.variables {
			attrs[name] = v
		}
		for name, get := range s.dynamic {
			attrs[name] = get()
		}
		if len(attrs) > 0 {
			vars[ns] = cty.ObjectVal(attrs)
		}
	}

	funcs := make(map[string]function.Function, len(r.functions))
	for name, fn := range r.functions {
		funcs[name] = fn
	}
	return &hcl.EvalContext{Variables: vars, Functions: funcs}
}

// AdjustDisplay passes d through every loaded module that adjusts the
// display, in load order.
func (r *Registry) AdjustDisplay(d phasor.Display) phasor.Display {
	for _, a := range r.adjusters {
		d = a.AdjustDisplay(d)
	}
	return d
}

func isPrivate(name string) bool {
	return strings.HasPrefix(name, "_")
}
