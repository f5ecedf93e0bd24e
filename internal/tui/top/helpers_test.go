package top

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/x/exp/teatest"
	"github.com/padtext/pad/internal/document"
	"github.com/padtext/pad/internal/folder"
	"github.com/padtext/pad/internal/logging"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) Options {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := logging.NewLogger(logging.Options{Level: "debug"})
	folders, err := folder.NewService(ctx, folder.ServiceOptions{Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = folders.Close() })

	return Options{
		Documents: document.NewService(document.ServiceOptions{Logger: logger}),
		Folders:   folders,
		Logger:    logger,
		TabWidth:  4,
	}
}

func waitFor(t *testing.T, tm *teatest.TestModel, s string) {
	t.Helper()

	teatest.WaitFor(
		t, tm.Output(),
		func(bts []byte) bool {
			return bytes.Contains(bts, []byte(s))
		},
		teatest.WithCheckInterval(time.Millisecond*100),
		teatest.WithDuration(time.Second*5),
	)
}
