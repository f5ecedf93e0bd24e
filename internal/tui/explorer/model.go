package explorer

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	lgtree "github.com/charmbracelet/lipgloss/tree"
	"github.com/charmbracelet/x/ansi"
	"github.com/padtext/pad/internal/document"
	"github.com/padtext/pad/internal/folder"
	"github.com/padtext/pad/internal/resource"
	"github.com/padtext/pad/internal/tui"
	"github.com/padtext/pad/internal/tui/keys"
)

type Maker struct {
	Folders   tui.FolderService
	Documents tui.DocumentService
}

func (mm *Maker) Make(width, height int) *Model {
	m := &Model{
		folders: mm.Folders,
		docs:    mm.Documents,
		closed:  make(map[string]bool),
		tracker: &tracker{},
	}
	m.SetSize(width, height)
	m.Rebuild()
	return m
}

// Model renders the folder open in the explorer as a tree of directories
// and files.
type Model struct {
	folders tui.FolderService
	docs    tui.DocumentService

	tree          *tree
	tracker       *tracker
	closed        map[string]bool
	width, height int
	focused       bool
}

// Visible is true if a folder is open.
func (m *Model) Visible() bool {
	return m.tree != nil
}

// Rebuild rebuilds the tree from the current folder and the open documents.
func (m *Model) Rebuild() {
	f, ok := m.folders.Current()
	if !ok {
		m.tree = nil
		return
	}
	open := make(map[string]bool)
	for _, doc := range m.docs.List() {
		if !doc.IsUntitled() {
			open[doc.Path] = true
		}
	}
	m.tree = newTree(f, open, m.closed)
	m.tracker.reindex(m.tree)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.tracker.setHeight(height)
}

func (m *Model) Focus() {
	m.focused = true
}

func (m *Model) Blur() {
	m.focused = false
}

func (m *Model) Focused() bool {
	return m.focused
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Navigation.LineUp):
			m.tracker.moveCursor(-1)
		case key.Matches(msg, keys.Navigation.LineDown):
			m.tracker.moveCursor(1)
		case key.Matches(msg, keys.Navigation.PageUp):
			m.tracker.moveCursor(-m.height)
		case key.Matches(msg, keys.Navigation.PageDown):
			m.tracker.moveCursor(m.height)
		case key.Matches(msg, keys.Navigation.GotoTop):
			m.tracker.moveCursor(-len(m.tracker.nodes))
		case key.Matches(msg, keys.Navigation.GotoBottom):
			m.tracker.moveCursor(len(m.tracker.nodes))
		case key.Matches(msg, keys.Common.Enter):
			return m.enter()
		case key.Matches(msg, keys.Common.Reload):
			if err := m.folders.Reload(); err != nil {
				return tui.ReportError(err, "reloading folder")
			}
			return tui.ReportInfo("reloaded folder")
		}
	case resource.Event[*folder.Folder], resource.Event[*document.Document]:
		m.Rebuild()
	}
	return nil
}

// enter opens the file under the cursor, or opens or closes the directory
// under the cursor.
func (m *Model) enter() tea.Cmd {
	n, ok := m.tracker.cursorNode()
	if !ok {
		return nil
	}
	switch n := n.(type) {
	case dirNode:
		m.closed[n.path] = !n.closed
		m.Rebuild()
	case fileNode:
		return tui.OpenFile(n.path)
	}
	return nil
}

func (m *Model) View() string {
	if m.tree == nil {
		return ""
	}
	treeStyle := lipgloss.NewStyle().
		Width(m.width - tui.ScrollbarWidth).
		MaxWidth(m.width - tui.ScrollbarWidth).
		Inline(true)
	to := lgtree.New().
		Enumerator(enumerator).
		Indenter(indentor)
	m.tree.render(true, to)
	lines := strings.Split(to.String(), "\n")
	numVisibleLines := clamp(m.height, 0, len(lines)-m.tracker.start)
	visibleLines := lines[m.tracker.start : m.tracker.start+numVisibleLines]
	for i := range visibleLines {
		renderedRow := treeStyle.Render(visibleLines[i])
		// Strip colors from the cursor row and apply background color
		if m.tracker.start+i == m.tracker.cursorIndex {
			style := lipgloss.NewStyle().Reverse(true)
			if m.focused {
				style = lipgloss.NewStyle().
					Foreground(tui.CurrentForeground).
					Background(tui.CurrentBackground)
			}
			renderedRow = style.Render(ansi.Strip(renderedRow))
		}
		visibleLines[i] = renderedRow
	}
	scrollbar := tui.Scrollbar(m.height, len(lines), numVisibleLines, m.tracker.start)
	return lipgloss.JoinHorizontal(lipgloss.Left,
		strings.Join(visibleLines, "\n"),
		scrollbar,
	)
}

func (m *Model) HelpBindings() []key.Binding {
	return []key.Binding{
		keys.Navigation.LineUp,
		keys.Navigation.LineDown,
		keys.Common.Enter,
		keys.Common.Reload,
	}
}
