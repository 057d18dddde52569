package session

import (
	"errors"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// ErrUnknownFunction is returned for calls to functions no module provides.
var ErrUnknownFunction = errors.New("unknown function")

// EvalError carries the diagnostics of a failed parse or evaluation. When a
// module function failed, Cause is that function's error, so sentinel errors
// such as phasor.ErrDivisionByZero match with errors.Is.
type EvalError struct {
	Diags hcl.Diagnostics
	Cause error
}

func newEvalError(diags hcl.Diagnostics) *EvalError {
	e := &EvalError{Diags: diags}
	for _, d := range diags {
		if extra, ok := hcl.DiagnosticExtra[hclsyntax.FunctionCallDiagExtra](d); ok {
			if err := extra.FunctionCallError(); err != nil {
				e.Cause = err
				break
			}
		}
	}
	return e
}

func (e *EvalError) Error() string {
	var parts []string
	for _, d := range e.Diags {
		if d.Severity != hcl.DiagError {
			continue
		}
		msg := d.Summary
		if d.Detail != "" {
			msg += ": " + d.Detail
		}
		parts = append(parts, msg)
	}
	return strings.Join(parts, "; ")
}

func (e *EvalError) Unwrap() error { return e.Cause }
