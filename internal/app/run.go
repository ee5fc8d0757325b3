package app

import (
	"context"
	"fmt"

	"io"

	"github.com/jspack/jspack/internal/assemble"
	"github.com/jspack/jspack/internal/ctxlog"
	"github.com/jspack/jspack/internal/fsutil"
)

// Run executes the bundling pipeline and writes the result to the output
// writer. The run is strictly synchronous: the first parse or validation
// failure aborts it with no partial output.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	files := a.config.Files
	if a.config.Complete {
		found, err := fsutil.FindSourceFiles(a.layout.SourceDir)
		if err != nil {
			return fmt.Errorf("discovering modules: %w", err)
		}
		files = found
		a.logger.Debug("Source directory scanned.", "count", len(files))
	}
	if len(files) == 0 {
		return fmt.Errorf("no modules found under %s", a.layout.SourceDir)
	}

	bundle, err := assemble.New(a.parser, a.layout).Build(ctx, files)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(a.outW, bundle); err != nil {
		return fmt.Errorf("writing bundle: %w", err)
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}
