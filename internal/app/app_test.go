package app

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/padtext/pad/internal/logging"
	"github.com/padtext/pad/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_help(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	// Short form
	err := Start(io.Discard, io.Discard, []string{"-h"})
	assert.NoError(t, err)

	// Long form
	err = Start(io.Discard, io.Discard, []string{"--help"})
	assert.NoError(t, err)
}

func TestStart_version(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	var stdout bytes.Buffer

	err := Start(&stdout, io.Discard, []string{"--version"})
	require.NoError(t, err)

	assert.Equal(t, "pad "+version.Version+"\n", stdout.String())
}

func TestNewApp(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	root := t.TempDir()
	existing := filepath.Join(root, "a.txt")
	require.NoError(t, os.WriteFile(existing, []byte("hello"), 0o644))
	missing := filepath.Join(root, "missing.txt")

	app, err := newApp(ctx, config{
		Folder:   root,
		Files:    []string{existing, missing},
		Ignore:   defaultIgnore,
		TabWidth: 4,
		loggingOptions: logging.Options{
			Level:             "debug",
			AdditionalWriters: []io.Writer{&testLogger{t}},
		},
	})
	require.NoError(t, err)
	t.Cleanup(app.cleanup)

	// Both files get a tab, the missing file's tab is empty and untitled.
	docs := app.documents.List()
	require.Len(t, docs, 2)
	assert.Equal(t, "a.txt", docs[0].Title())
	assert.Equal(t, "hello", docs[0].Content)
	assert.True(t, docs[1].IsUntitled())
	assert.Equal(t, "", docs[1].Content)

	f, ok := app.folders.Current()
	require.True(t, ok)
	assert.Equal(t, root, f.Root)

	// The failure to open the missing file is reported once the TUI starts.
	require.Len(t, app.errors, 1)
	assert.Equal(t, "Cannot open file", app.errors[0].Message)
	assert.ErrorIs(t, app.errors[0].Error, fs.ErrNotExist)

	// It is also logged.
	var logged bool
	for _, msg := range app.logger.Messages() {
		if msg.Level == "ERROR" && msg.Message == "opening file" {
			logged = true
		}
	}
	assert.True(t, logged)
}

func TestNewApp_InvalidIgnorePattern(t *testing.T) {
	_, err := newApp(context.Background(), config{
		Ignore: []string{"[unterminated"},
	})
	assert.Error(t, err)
}
