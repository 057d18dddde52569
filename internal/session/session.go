// Package session evaluates calculator input lines against the loaded
// modules and keeps the user's variables between lines.
package session

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/agext/levenshtein"
	"github.com/google/uuid"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/phasorcalc/internal/calcexpr"
	"github.com/vk/phasorcalc/internal/ctxlog"
	"github.com/vk/phasorcalc/internal/phasor"
	"github.com/vk/phasorcalc/internal/registry"
)

// AnswerName is the variable holding the last successful result.
const AnswerName = "ans"

const inputFilename = "<input>"

// Result is the outcome of one evaluated line.
type Result struct {
	Input string
	// Name is the assigned variable, empty for plain expressions.
	Name     string
	Value    cty.Value
	Text     string
	Warnings []registry.Warning
}

// Variable is one session variable with its rendered value.
type Variable struct {
	Name  string
	Value cty.Value
	Text  string
}

// Session is one interactive calculator session. It is safe for concurrent
// use, though lines are evaluated one at a time.
type Session struct {
	id      string
	reg     *registry.Registry
	display phasor.Display

	mu   sync.Mutex
	vars map[string]cty.Value
}

// New creates a session over the loaded registry. Results are rendered
// with display.
func New(reg *registry.Registry, display phasor.Display) *Session {
	return &Session{
		id:      uuid.NewString(),
		reg:     reg,
		display: display,
		vars:    make(map[string]cty.Value),
	}
}

// ID identifies the session in the history store.
func (s *Session) ID() string { return s.id }

// Display returns the display used to render results.
func (s *Session) Display() phasor.Display { return s.display }

// line is a parsed input line.
type line struct {
	name string
	expr hclsyntax.Expression
}

// parse reads an assignment `name = expr` or a bare expression.
func parse(src string) (*line, hcl.Diagnostics) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Empty input",
			Detail:   "Enter an expression or an assignment of the form name = expression.",
		}}
	}

	if file, diags := hclsyntax.ParseConfig([]byte(src), inputFilename, hcl.InitialPos); !diags.HasErrors() {
		body := file.Body.(*hclsyntax.Body)
		if len(body.Blocks) == 0 && len(body.Attributes) == 1 {
			for name, attr := range body.Attributes {
				return &line{name: name, expr: attr.Expr}, nil
			}
		}
	}

	expr, diags := hclsyntax.ParseExpression([]byte(src), inputFilename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, diags
	}
	return &line{expr: expr}, nil
}

// Analyze parses src and returns its expression analysis without
// evaluating it.
func (s *Session) Analyze(src string) (*calcexpr.Analysis, error) {
	l, diags := parse(src)
	if diags.HasErrors() {
		return nil, &EvalError{Diags: diags}
	}
	return calcexpr.Analyze(l.expr), nil
}

// Eval evaluates one input line. Assignments store their value under the
// given name. Every successful result becomes `ans`.
func (s *Session) Eval(ctx context.Context, src string) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	l, diags := parse(src)
	if diags.HasErrors() {
		return nil, &EvalError{Diags: diags}
	}
	if l.name != "" {
		if err := s.checkAssignable(l.name); err != nil {
			return nil, err
		}
	}
	if err := s.checkFunctions(calcexpr.Analyze(l.expr)); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Drop warnings raised outside of evaluation.
	s.reg.DrainWarnings()

	val, diags := l.expr.Value(s.evalContext())
	warnings := s.reg.DrainWarnings()
	if diags.HasErrors() {
		logger.Debug("Evaluation failed.", "input", src, "error", diags.Error())
		return nil, newEvalError(diags)
	}

	if l.name != "" {
		s.vars[l.name] = val
	}
	s.vars[AnswerName] = val

	res := &Result{
		Input:    strings.TrimSpace(src),
		Name:     l.name,
		Value:    val,
		Text:     FormatValue(val, s.display),
		Warnings: warnings,
	}
	logger.Debug("Evaluated.", "input", res.Input, "result", res.Text)
	return res, nil
}

// Variables returns the session variables sorted by name, `ans` included.
func (s *Session) Variables() []Variable {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.vars))
	for name := range s.vars {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Variable, 0, len(names))
	for _, name := range names {
		v := s.vars[name]
		out = append(out, Variable{Name: name, Value: v, Text: FormatValue(v, s.display)})
	}
	return out
}

// evalContext layers the session variables over the module namespace.
func (s *Session) evalContext() *hcl.EvalContext {
	child := s.reg.EvalContext().NewChild()
	child.Variables = make(map[string]cty.Value, len(s.vars))
	for name, v := range s.vars {
		child.Variables[name] = v
	}
	return child
}

func (s *Session) checkAssignable(name string) error {
	if name == AnswerName {
		return fmt.Errorf("cannot assign to %q: it always holds the last result", name)
	}
	for _, v := range s.reg.Variables() {
		if v == name {
			return fmt.Errorf("cannot assign to %q: it is defined by a module", name)
		}
	}
	return nil
}

// checkFunctions rejects calls to functions no module provides, suggesting
// the closest known name.
func (s *Session) checkFunctions(a *calcexpr.Analysis) error {
	for _, name := range a.Unknown(s.reg.HasFunction) {
		if suggestion := nameSuggestion(name, s.reg.Functions()); suggestion != "" {
			return fmt.Errorf("%w %q; did you mean %q?", ErrUnknownFunction, name, suggestion)
		}
		return fmt.Errorf("%w %q", ErrUnknownFunction, name)
	}
	return nil
}

// nameSuggestion returns the candidate closest to given, or "" when none
// is within an edit distance of 2.
func nameSuggestion(given string, candidates []string) string {
	best, bestDist := "", 3
	for _, c := range candidates {
		if d := levenshtein.Distance(given, c, nil); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
