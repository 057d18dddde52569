// Package repl runs the interactive calculator loop.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vk/phasorcalc/internal/ctxlog"
	"github.com/vk/phasorcalc/internal/history"
	"github.com/vk/phasorcalc/internal/registry"
	"github.com/vk/phasorcalc/internal/session"
)

// DefaultPrompt is shown before every input line.
const DefaultPrompt = ">>> "

const defaultHistoryLimit = 10

// Recorder stores evaluated lines.
type Recorder interface {
	Record(ctx context.Context, e history.Entry) (int64, error)
	Recent(ctx context.Context, n int) ([]history.Entry, error)
}

// REPL reads lines, evaluates them in a session and prints the results.
type REPL struct {
	sess    *session.Session
	reg     *registry.Registry
	out     io.Writer
	prompt  string
	history Recorder
}

// Option configures a REPL.
type Option func(*REPL)

// WithPrompt replaces DefaultPrompt.
func WithPrompt(p string) Option {
	return func(r *REPL) {
		if p != "" {
			r.prompt = p
		}
	}
}

// WithHistory records every evaluated line in h and enables :history.
func WithHistory(h Recorder) Option {
	return func(r *REPL) { r.history = h }
}

// New creates a REPL writing to out.
func New(sess *session.Session, reg *registry.Registry, out io.Writer, opts ...Option) *REPL {
	r := &REPL{sess: sess, reg: reg, out: out, prompt: DefaultPrompt}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reads lines from in until EOF, an exit keyword or ctx is done.
func (r *REPL) Run(ctx context.Context, in io.Reader) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("REPL started.")

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(r.out, r.prompt)
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			logger.Debug("REPL input closed.")
			return nil
		}
		if !r.Exec(ctx, scanner.Text()) {
			logger.Debug("REPL exit requested.")
			return nil
		}
	}
}

// Exec handles one line: a keyword, a colon command or an expression. It
// reports whether the loop should continue.
func (r *REPL) Exec(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return true
	case line == "exit" || line == "quit":
		return false
	case line == "man" || line == "help":
		r.printManual()
		return true
	case line == "ls" && r.reg.HasFunction("ls"):
		r.eval(ctx, "ls()")
		return true
	case strings.HasPrefix(line, ":"):
		r.command(ctx, line)
		return true
	default:
		r.eval(ctx, line)
		return true
	}
}

// Eval evaluates one expression, prints the outcome and records it. It
// returns the evaluation error, if any.
func (r *REPL) Eval(ctx context.Context, line string) error {
	return r.eval(ctx, line)
}

func (r *REPL) eval(ctx context.Context, line string) error {
	res, err := r.sess.Eval(ctx, line)
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		r.record(ctx, history.Entry{SessionID: r.sess.ID(), Input: line, Output: err.Error(), Failed: true})
		return err
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(r.out, "Warning: %s\n", w.Message)
	}
	if res.Name != "" {
		fmt.Fprintf(r.out, "%s = %s\n", res.Name, res.Text)
	} else {
		fmt.Fprintln(r.out, res.Text)
	}
	r.record(ctx, history.Entry{SessionID: r.sess.ID(), Input: res.Input, Output: res.Text})
	return nil
}

func (r *REPL) record(ctx context.Context, e history.Entry) {
	if r.history == nil {
		return
	}
	if _, err := r.history.Record(ctx, e); err != nil {
		ctxlog.FromContext(ctx).Warn("Failed to record history entry.", "error", err)
	}
}

func (r *REPL) command(ctx context.Context, line string) {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case ":vars":
		r.printVariables()
	case ":modules":
		r.printModules()
	case ":history":
		r.printHistory(ctx, arg)
	case ":explain":
		r.explain(arg)
	default:
		fmt.Fprintf(r.out, "Error: unknown command '%s'. Type 'man' for help.\n", name)
	}
}

func (r *REPL) printVariables() {
	vars := r.sess.Variables()
	if len(vars) == 0 {
		fmt.Fprintln(r.out, "No variables defined.")
		return
	}
	for _, v := range vars {
		fmt.Fprintf(r.out, "%s = %s\n", v.Name, v.Text)
	}
}

func (r *REPL) printModules() {
	for _, name := range r.reg.Modules() {
		fmt.Fprintf(r.out, "  %s\n", name)
	}
}

func (r *REPL) printHistory(ctx context.Context, arg string) {
	if r.history == nil {
		fmt.Fprintln(r.out, "History is not enabled. Start with -history <path>.")
		return
	}
	n := defaultHistoryLimit
	if arg != "" {
		v, err := strconv.Atoi(arg)
		if err != nil || v <= 0 {
			fmt.Fprintf(r.out, "Error: invalid history length '%s'\n", arg)
			return
		}
		n = v
	}
	entries, err := r.history.Recent(ctx, n)
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	for _, e := range entries {
		marker := "="
		if e.Failed {
			marker = "!"
		}
		fmt.Fprintf(r.out, "%4d  %s %s %s\n", e.ID, e.Input, marker, e.Output)
	}
}

func (r *REPL) explain(arg string) {
	if arg == "" {
		fmt.Fprintln(r.out, "Usage: :explain <expression>")
		return
	}
	a, err := r.sess.Analyze(arg)
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}

	funcs := r.reg.EvalContext().Functions
	fmt.Fprintln(r.out, "Functions:")
	if len(a.Functions) == 0 {
		fmt.Fprintln(r.out, "  (none)")
	}
	for _, name := range a.Functions {
		fn, ok := funcs[name]
		if !ok {
			fmt.Fprintf(r.out, "  %-12s (unknown)\n", name)
			continue
		}
		fmt.Fprintf(r.out, "  %-12s %s\n", name, fn.Description())
	}

	fmt.Fprintln(r.out, "Variables:")
	if len(a.Roots) == 0 {
		fmt.Fprintln(r.out, "  (none)")
	}
	for _, name := range a.Roots {
		fmt.Fprintf(r.out, "  %s\n", name)
	}
}
