// package app is the main entrypoint into the application, responsible for
// configuring and starting the application, services, dependency injection,
// etc.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/padtext/pad/internal/document"
	"github.com/padtext/pad/internal/folder"
	"github.com/padtext/pad/internal/logging"
	"github.com/padtext/pad/internal/tui"
	"github.com/padtext/pad/internal/tui/top"
	"github.com/padtext/pad/internal/version"
	"github.com/peterbourgon/ff/v4"
)

// Start pad, blocking until the user quits.
func Start(stdout, stderr io.Writer, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Parse configuration from env vars, flags, and config file
	cfg, err := parse(stderr, args)
	if errors.Is(err, ff.ErrHelp) {
		return nil
	} else if err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Version {
		fmt.Fprintln(stdout, "pad", version.Version)
		return nil
	}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		cfg.loggingOptions.AdditionalWriters = append(cfg.loggingOptions.AdditionalWriters, f)
	}

	app, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.cleanup()

	return top.Start(top.Options{
		Documents: app.documents,
		Folders:   app.folders,
		Logger:    app.logger,
		TabWidth:  cfg.TabWidth,
		Debug:     cfg.Debug,
		Errors:    app.errors,
	})
}

type app struct {
	logger    *logging.Logger
	documents *document.Service
	folders   *folder.Service
	// errors opening the folder and files, reported once the TUI starts.
	errors []tui.ErrorMsg
}

// newApp constructs the services, opening the folder and files given in the
// config. Failure to open the folder or a file is recorded rather than
// returned; a tab is still created for a file that cannot be opened.
func newApp(ctx context.Context, cfg config) (*app, error) {
	// Setup logging
	logger := logging.NewLogger(cfg.loggingOptions)
	slog.SetDefault(logger.Logger)

	// Log some info useful to the user
	logger.Info("loaded config",
		"log_level", cfg.loggingOptions.Level,
		"tab_width", cfg.TabWidth,
		"ignore", cfg.Ignore,
	)

	folders, err := folder.NewService(ctx, folder.ServiceOptions{
		Ignore: cfg.Ignore,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}
	documents := document.NewService(document.ServiceOptions{
		Logger: logger,
	})

	var errs []tui.ErrorMsg
	if cfg.Folder != "" {
		if _, err := folders.Open(cfg.Folder); err != nil {
			errs = append(errs, tui.NewErrorMsg(err, "Cannot open folder"))
		}
	}
	for _, path := range cfg.Files {
		if _, err := documents.Open(path); err != nil {
			errs = append(errs, tui.NewErrorMsg(err, "Cannot open file"))
		}
	}

	return &app{
		logger:    logger,
		documents: documents,
		folders:   folders,
		errors:    errs,
	}, nil
}

func (a *app) cleanup() {
	if err := a.folders.Close(); err != nil {
		a.logger.Error("closing folder", "error", err)
	}
}
