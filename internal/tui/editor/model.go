package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/padtext/pad/internal/document"
	"github.com/padtext/pad/internal/tui"
	"github.com/padtext/pad/internal/tui/keys"
)

// DefaultTabWidth is the number of spaces inserted by the indent key.
const DefaultTabWidth = 4

// statusHeight is the height of the status line beneath the text area.
const statusHeight = 1

// Maker makes editor models.
type Maker struct {
	Documents tui.DocumentService
	TabWidth  int
}

func (mm *Maker) Make(doc *document.Document, width, height int) *Model {
	tabWidth := mm.TabWidth
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	ta := textarea.New()
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.MaxWidth = 0
	ta.Placeholder = ""

	m := &Model{
		docs:     mm.Documents,
		doc:      doc,
		textarea: ta,
		tabWidth: tabWidth,
	}
	m.SetSize(width, height)
	m.Reset()
	return m
}

// Model edits the content of a document.
type Model struct {
	docs     tui.DocumentService
	doc      *document.Document
	textarea textarea.Model
	tabWidth int
	width    int

	// last is the value of the text area last reported to the document
	// service. Its value is only reported when it differs from this.
	last  string
	codec codec
	// readOnly is non-nil if the document cannot be edited without altering
	// content the text area is unable to represent.
	readOnly error
}

// Document returns the document being edited.
func (m *Model) Document() *document.Document {
	return m.doc
}

// Reset replaces the content of the text area with that of the document,
// placing the cursor at the start.
func (m *Model) Reset() {
	m.codec, m.readOnly = newCodec(m.doc)
	m.textarea.SetValue(m.codec.decode(m.doc.Content))
	for range m.textarea.LineCount() {
		m.textarea.CursorUp()
	}
	m.textarea.CursorStart()
	m.last = m.textarea.Value()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.textarea.SetWidth(width)
	m.textarea.SetHeight(max(1, height-statusHeight))
}

func (m *Model) Focus() tea.Cmd {
	return m.textarea.Focus()
}

func (m *Model) Blur() {
	m.textarea.Blur()
}

func (m *Model) Focused() bool {
	return m.textarea.Focused()
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && m.textarea.Focused() {
		if m.readOnly != nil && !m.navigation(msg) {
			return tui.ReportError(m.readOnly, "Cannot edit %s", m.doc.Name())
		}
		if key.Matches(msg, keys.Editor.Indent) {
			m.textarea.InsertString(strings.Repeat(" ", m.tabWidth))
			return m.sync()
		}
	}
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return tea.Batch(cmd, m.sync())
}

// navigation is true if the key only moves the cursor.
func (m *Model) navigation(msg tea.KeyMsg) bool {
	km := m.textarea.KeyMap
	return key.Matches(msg,
		km.CharacterBackward,
		km.CharacterForward,
		km.LineNext,
		km.LinePrevious,
		km.LineStart,
		km.LineEnd,
		km.WordBackward,
		km.WordForward,
		km.InputBegin,
		km.InputEnd,
	)
}

// sync reports the content and cursor of the text area to the document
// service.
func (m *Model) sync() tea.Cmd {
	if value := m.textarea.Value(); value != m.last {
		m.last = value
		if err := m.docs.Edit(m.doc.ID, m.codec.encode(value)); err != nil {
			return tui.ReportError(err, "editing document")
		}
	}
	info := m.textarea.LineInfo()
	col := info.StartColumn + info.ColumnOffset
	if err := m.docs.MoveCursor(m.doc.ID, m.textarea.Line(), col); err != nil {
		return tui.ReportError(err, "moving cursor")
	}
	return nil
}

var statusStyle = tui.Regular.Foreground(tui.LightGrey)

func (m *Model) View() string {
	status := lipgloss.PlaceHorizontal(
		m.width,
		lipgloss.Right,
		statusStyle.Render(m.Status()),
	)
	return lipgloss.JoinVertical(lipgloss.Left, m.textarea.View(), status)
}

// Status renders the cursor position of the document.
func (m *Model) Status() string {
	return m.doc.Status()
}

func (m *Model) HelpBindings() []key.Binding {
	return []key.Binding{
		keys.Editor.Indent,
	}
}
