package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/vk/phasorcalc/internal/app"
	"github.com/vk/phasorcalc/internal/cli"
	"github.com/vk/phasorcalc/internal/config"
	"github.com/vk/phasorcalc/internal/hcl_adapter"
	"github.com/vk/phasorcalc/internal/yaml_adapter"
)

// main is the entrypoint for the phasorcalc application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// The real main function handles errors and exit codes.
	if err := run(ctx, os.Stdin, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		switch {
		case errors.As(err, &exitErr):
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		case errors.Is(err, app.ErrEvaluationFailed):
			// Already printed next to the failing expression.
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loaders maps config file extensions to their format loader.
func loaders() config.Loaders {
	yamlLoader := yaml_adapter.NewLoader()
	return config.Loaders{
		".hcl":  hcl_adapter.NewLoader(),
		".yaml": yamlLoader,
		".yml":  yamlLoader,
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, in io.Reader, outW, errW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// The app panics on critical config errors, so we recover here to provide
	// a clean exit message to the user.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	calc := app.NewApp(outW, errW, appConfig, loaders())
	return calc.Run(ctx, in)
}
