package logs

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/padtext/pad/internal/logging"
	"github.com/padtext/pad/internal/resource"
	"github.com/padtext/pad/internal/tui"
	"github.com/padtext/pad/internal/tui/keys"
)

const timeFormat = "2006-01-02T15:04:05.000"

// MessageLister lists log messages.
type MessageLister interface {
	Messages() []logging.Message
}

type Maker struct {
	Logger MessageLister
}

func (mm *Maker) Make(width, height int) *Model {
	m := &Model{
		logger: mm.Logger,
		viewport: tui.NewViewport(tui.ViewportOptions{
			Width:  width,
			Height: height,
			Empty:  "No log messages",
		}),
	}
	m.refresh()
	return m
}

// Model lists log messages, newest first.
type Model struct {
	logger   MessageLister
	viewport tui.Viewport
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg.(type) {
	case resource.Event[logging.Message]:
		m.refresh()
		return nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m *Model) SetSize(width, height int) {
	m.viewport.SetDimensions(width, height)
}

func (m *Model) View() string {
	return m.viewport.View()
}

func (m *Model) HelpBindings() []key.Binding {
	return []key.Binding{
		keys.Navigation.LineUp,
		keys.Navigation.LineDown,
		keys.Navigation.GotoTop,
		keys.Navigation.GotoBottom,
	}
}

func (m *Model) refresh() {
	msgs := m.logger.Messages()
	slices.SortFunc(msgs, logging.BySerialDesc)
	lines := make([]string, len(msgs))
	for i, msg := range msgs {
		lines[i] = renderMessage(msg)
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

// renderMessage combines message and attributes, separated by spaces, with
// each attribute key/value joined with a '='.
func renderMessage(msg logging.Message) string {
	var b strings.Builder
	b.WriteString(tui.Regular.Foreground(tui.LightGrey).Render(msg.Time.Format(timeFormat)))
	b.WriteRune(' ')
	b.WriteString(coloredLogLevel(msg.Level))
	b.WriteRune(' ')
	b.WriteString(msg.Message)
	for _, attr := range msg.Attributes {
		b.WriteRune(' ')
		b.WriteString(tui.Bold.Render(attr.Key + "="))
		b.WriteString(attr.Value)
	}
	return b.String()
}

func coloredLogLevel(level string) string {
	var levelColor lipgloss.TerminalColor = lipgloss.NoColor{}
	switch level {
	case "ERROR":
		levelColor = tui.ErrorLogLevel
	case "WARN":
		levelColor = tui.WarnLogLevel
	case "DEBUG":
		levelColor = tui.DebugLogLevel
	case "INFO":
		levelColor = tui.InfoLogLevel
	}
	// pad to width of widest level, ERROR
	return tui.Bold.Foreground(levelColor).Width(len("ERROR")).Render(level)
}
