package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jspack/jspack/internal/app"
	"github.com/jspack/jspack/internal/cli"
	"github.com/jspack/jspack/internal/hclconf"
)

// main is the entrypoint for the jspack bundler.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. The assembled bundle is the only thing written to outW.
func run(outW, errW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, errW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// Instantiate the concrete HCL loader to pass to the app.
	loader := hclconf.NewLoader()
	bundler, err := app.New(outW, errW, appConfig, loader)
	if err != nil {
		return err
	}

	return bundler.Run(context.Background())
}
