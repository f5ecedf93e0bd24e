package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/padtext/pad/internal/tui/keys"
)

// Viewport is a wrapper of the upstream viewport bubble, wrapping its content
// and rendering a scrollbar.
type Viewport struct {
	viewport viewport.Model

	content string
	empty   string
}

type ViewportOptions struct {
	Width  int
	Height int
	// Empty is rendered when there is no content.
	Empty string
}

func NewViewport(opts ViewportOptions) Viewport {
	m := Viewport{
		viewport: viewport.New(0, 0),
		empty:    opts.Empty,
	}
	m.SetDimensions(opts.Width, opts.Height)
	return m
}

func (m Viewport) Update(msg tea.Msg) (Viewport, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Navigation.GotoTop):
			m.viewport.SetYOffset(0)
		case key.Matches(msg, keys.Navigation.GotoBottom):
			m.viewport.SetYOffset(m.viewport.TotalLineCount())
		}
	}

	// Handle keyboard events in the viewport
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Viewport) View() string {
	var output string
	if m.content == "" {
		output = Regular.
			Height(m.viewport.Height).
			Width(m.viewport.Width).
			Render(m.empty)
	} else {
		output = m.viewport.View()
	}
	scrollbar := Scrollbar(
		m.viewport.Height,
		m.viewport.TotalLineCount(),
		m.viewport.VisibleLineCount(),
		m.viewport.YOffset,
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, output, scrollbar)
}

func (m *Viewport) SetDimensions(width, height int) {
	width = max(0, width-ScrollbarWidth)
	// If width has changed, re-wrap existing content.
	rewrap := m.viewport.Width != width
	m.viewport.Width = width
	m.viewport.Height = height
	if rewrap {
		m.setContent()
	}
}

// SetContent replaces the content, retaining the scroll position where
// possible.
func (m *Viewport) SetContent(content string) {
	m.content = content
	m.setContent()
}

func (m *Viewport) setContent() {
	// Wrap content to the width of the viewport, whilst respecting ANSI escape
	// codes (i.e. don't split codes across lines).
	wrapped := ansi.Wrap(ansi.Wordwrap(m.content, m.viewport.Width, ""), m.viewport.Width, "")
	m.viewport.SetContent(wrapped)
}
