package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vk/phasorcalc/internal/ctxlog"
	"github.com/vk/phasorcalc/internal/repl"
)

// ErrEvaluationFailed is returned by Run when a non-interactive expression
// failed. The failure itself has already been printed.
var ErrEvaluationFailed = errors.New("evaluation failed")

// Run evaluates the configured expressions, or starts the interactive loop
// on in when there are none. The history store is closed on return.
func (a *App) Run(ctx context.Context, in io.Reader) error {
	ctx = ctxlog.With(ctxlog.WithLogger(ctx, a.logger), "session", a.session.ID())
	a.logger.Debug("App.Run method started.")
	defer func() {
		if err := a.Close(); err != nil {
			a.logger.Warn("Failed to close history.", "error", err)
		}
	}()

	r := a.newREPL()

	if len(a.config.Expressions) > 0 {
		failed := 0
		for _, expr := range a.config.Expressions {
			if err := r.Eval(ctx, expr); err != nil {
				failed++
			}
		}
		a.logger.Debug("Expressions evaluated.", "count", len(a.config.Expressions), "failed", failed)
		if failed > 0 {
			return fmt.Errorf("%w: %d of %d expressions", ErrEvaluationFailed, failed, len(a.config.Expressions))
		}
		return nil
	}

	if !a.config.NoBanner {
		a.printBanner()
	}
	err := r.Run(ctx, in)
	a.logger.Debug("App.Run method finished.")
	return err
}

func (a *App) newREPL() *repl.REPL {
	opts := []repl.Option{repl.WithPrompt(a.model.Prompt)}
	if a.history != nil {
		opts = append(opts, repl.WithHistory(a.history))
	}
	return repl.New(a.session, a.registry, a.outW, opts...)
}

// printBanner shows the banner and the outcome of every configured module.
func (a *App) printBanner() {
	fmt.Fprint(a.outW, repl.Banner(Version))
	for _, name := range a.report.Loaded {
		fmt.Fprintf(a.outW, "Module <%s> loaded successfully.\n", name)
	}
	for _, f := range a.report.Failed {
		fmt.Fprintf(a.outW, "Module <%s> could not be loaded: %v\n", f.Module, f.Err)
	}
	fmt.Fprintln(a.outW, a.report.Summary())
}
