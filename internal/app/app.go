package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jspack/jspack/internal/config"
	"github.com/jspack/jspack/internal/ctxlog"
	"github.com/jspack/jspack/internal/jsparse"
)

// App encapsulates the bundler's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	layout *config.Layout
	parser *jsparse.Parser
}

// New is the constructor for the main application. The bundle is the only
// thing written to outW; all logging goes to errW. The parser cache lives
// on the App, so the extraction and transformation stages share one parse
// per source file.
func New(outW, errW io.Writer, appConfig *Config, loader config.Loader) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, errW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	layout, err := loader.Load(ctx, appConfig.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load layout: %w", err)
	}
	if appConfig.SourceDir != "" {
		layout.SourceDir = appConfig.SourceDir
	}
	logger.Debug("Layout resolved.", "source_dir", layout.SourceDir, "template", layout.TemplatePath)

	return &App{
		outW:   outW,
		logger: logger,
		config: appConfig,
		layout: layout,
		parser: jsparse.NewParser(),
	}, nil
}

// Layout returns the resolved layout. This is primarily for testing.
func (a *App) Layout() *config.Layout {
	return a.layout
}
