package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/phasorcalc/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// expressions collects repeated -e flags.
type expressions []string

func (e *expressions) String() string { return strings.Join(*e, "; ") }

func (e *expressions) Set(v string) error {
	*e = append(*e, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("phasorcalc", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
phasorcalc - An interactive calculator for phasor arithmetic.

Usage:
  phasorcalc [options] [EXPRESSION...]

Arguments:
  EXPRESSION
    Evaluated in order, printing each result, instead of starting the
    interactive prompt.

Options:
`)
		flagSet.PrintDefaults()
	}

	var exprs expressions
	configFlag := flagSet.String("config", "", "Path to a .hcl/.yaml config file or a directory of them.")
	cFlag := flagSet.String("c", "", "Path to the config file or directory (shorthand).")
	flagSet.Var(&exprs, "e", "Expression to evaluate. May be repeated.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	historyFlag := flagSet.String("history", "", "Path to a SQLite file recording evaluated lines. Empty disables history.")
	angleUnitFlag := flagSet.String("angle-unit", "", "Angle unit for results. Options: 'radian' or 'degree'.")
	glyphFlag := flagSet.String("glyph", "", "Angle glyph for results. Options: 'ascii' or 'unicode'.")
	precisionFlag := flagSet.Int("precision", -1, "Decimal places for phasor results. -1 keeps the configured value.")
	noBannerFlag := flagSet.Bool("no-banner", false, "Do not print the banner on interactive start.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := *configFlag
	if path == "" {
		path = *cFlag
	}
	exprs = append(exprs, flagSet.Args()...)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ConfigPath:  path,
		Expressions: exprs,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
		HistoryPath: *historyFlag,
		AngleUnit:   *angleUnitFlag,
		Glyph:       *glyphFlag,
		Precision:   *precisionFlag,
		NoBanner:    *noBannerFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
