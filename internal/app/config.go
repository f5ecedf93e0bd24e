package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/padtext/pad/internal/logging"
	"github.com/padtext/pad/internal/tui/editor"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/peterbourgon/ff/v4/ffyaml"
)

// defaultIgnore is the list of patterns ignored by the explorer unless
// overridden.
var defaultIgnore = []string{".git"}

type config struct {
	// Folder to open in the explorer upon startup.
	Folder string
	// Files to open upon startup.
	Files    []string
	Ignore   []string
	TabWidth int
	Debug    bool
	LogFile  string
	Version  bool

	loggingOptions logging.Options
}

// set config in order of precedence:
// 1. flags > 2. env vars > 3. config file
func parse(stderr io.Writer, args []string) (config, error) {
	var cfg config

	home, err := os.UserHomeDir()
	if err != nil {
		return config{}, fmt.Errorf("retrieving user's home directory: %w", err)
	}
	defaultConfigFile := filepath.Join(home, ".pad.yaml")

	fs := ff.NewFlagSet("pad")
	fs.StringVar(&cfg.Folder, 'f', "folder", "", "Folder to open in the explorer.")
	fs.IntVar(&cfg.TabWidth, 0, "tab-width", editor.DefaultTabWidth, "Number of spaces inserted by the tab key.")
	fs.StringListVar(&cfg.Ignore, 'i', "ignore", "Glob pattern of files to hide in the explorer. Can set more than once (default: .git).")
	fs.StringVar(&cfg.LogFile, 0, "log-file", "", "Send log output to a file in addition to the logs pane.")
	fs.BoolVar(&cfg.Debug, 'd', "debug", "Log bubbletea messages to messages.log")
	fs.BoolVar(&cfg.Version, 'v', "version", "Print version.")
	_ = fs.String('c', "config", defaultConfigFile, "Path to config file.")

	{
		usage := fmt.Sprintf("Logging level (valid: %s).", strings.Join(logging.ValidLevels(), ","))
		fs.StringEnumVar(&cfg.loggingOptions.Level, 'l', "log-level", usage, logging.ValidLevels()...)
	}

	err = ff.Parse(fs, args,
		ff.WithEnvVarPrefix("PAD"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ffyaml.Parse),
		ff.WithConfigAllowMissingFile(),
	)
	if err != nil {
		// ff.Parse returns an error if there is an error or if -h/--help is
		// passed; in either case print flag usage in addition to error message.
		fmt.Fprintln(stderr, ffhelp.Flags(fs))
		return config{}, err
	}

	if len(cfg.Ignore) == 0 {
		cfg.Ignore = defaultIgnore
	}
	if cfg.TabWidth <= 0 {
		return config{}, fmt.Errorf("invalid tab width: %d", cfg.TabWidth)
	}
	// Remaining arguments are files to open.
	if files := fs.GetArgs(); len(files) > 0 {
		cfg.Files = files
	}

	return cfg, nil
}
