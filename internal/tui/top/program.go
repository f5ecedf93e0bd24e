package top

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/padtext/pad/internal/document"
	"github.com/padtext/pad/internal/folder"
	"github.com/padtext/pad/internal/logging"
	"github.com/padtext/pad/internal/resource"
	"github.com/padtext/pad/internal/tui"
	"github.com/stretchr/testify/require"
)

// Options for starting the TUI.
type Options struct {
	Documents *document.Service
	Folders   *folder.Service
	Logger    *logging.Logger
	// TabWidth is the number of spaces inserted by the tab key.
	TabWidth int
	// Debug dumps every message received by the TUI to messages.log.
	Debug bool
	// Errors to report as soon as the TUI starts.
	Errors []tui.ErrorMsg
}

// Start starts the TUI and blocks until the user exits.
func Start(opts Options) error {
	m, err := newModel(opts)
	if err != nil {
		return err
	}
	if m.dump != nil {
		defer m.dump.Close()
	}

	p := tea.NewProgram(m,
		// Use the full size of the terminal with its "alternate screen buffer"
		tea.WithAltScreen(),
	)

	ch, unsub := setupSubscriptions(opts)
	defer unsub()

	// Relay events to model in background
	go func() {
		for msg := range ch {
			p.Send(msg)
		}
	}()

	// Blocks until user quits
	_, err = p.Run()
	return err
}

// StartTest starts the TUI and returns a test model for testing purposes.
func StartTest(t *testing.T, opts Options, width, height int) *teatest.TestModel {
	m, err := newModel(opts)
	require.NoError(t, err)

	ch, unsub := setupSubscriptions(opts)
	t.Cleanup(unsub)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(width, height))

	// Relay events to model in background
	go func() {
		for msg := range ch {
			tm.Send(msg)
		}
	}()

	t.Cleanup(func() {
		tm.Quit()
	})
	return tm
}

func setupSubscriptions(opts Options) (chan tea.Msg, func()) {
	// Relay resource events to TUI. Deliberately set up subscriptions *before*
	// any events are triggered, to ensure the TUI receives all messages.
	ch := make(chan tea.Msg)
	wg := sync.WaitGroup{} // sync closure of subscriptions

	ctx, cancel := context.WithCancel(context.Background())

	relay(ctx, &wg, ch, opts.Logger.Subscribe(ctx))
	relay(ctx, &wg, ch, opts.Documents.Subscribe(ctx))
	relay(ctx, &wg, ch, opts.Folders.Subscribe(ctx))

	// cleanup function to be invoked when program is terminated.
	return ch, func() {
		cancel()
		// Wait for relays to finish before closing channel, to avoid sends
		// to a closed channel, which would result in a panic.
		wg.Wait()
		close(ch)
	}
}

// relay sends events from a subscription to the channel until the context is
// canceled.
func relay[T any](ctx context.Context, wg *sync.WaitGroup, ch chan<- tea.Msg, sub <-chan resource.Event[T]) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		for ev := range sub {
			select {
			case ch <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
}
