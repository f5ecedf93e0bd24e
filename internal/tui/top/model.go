package top

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
	"github.com/padtext/pad/internal/document"
	"github.com/padtext/pad/internal/folder"
	"github.com/padtext/pad/internal/logging"
	"github.com/padtext/pad/internal/resource"
	"github.com/padtext/pad/internal/tui"
	"github.com/padtext/pad/internal/tui/editor"
	"github.com/padtext/pad/internal/tui/explorer"
	"github.com/padtext/pad/internal/tui/keys"
	"github.com/padtext/pad/internal/tui/logs"
	"github.com/padtext/pad/internal/tui/tabs"
	"github.com/padtext/pad/internal/version"
)

// pane identifies which pane receives key presses.
type pane int

const (
	editorPane pane = iota
	explorerPane
)

type model struct {
	docs    tui.DocumentService
	folders tui.FolderService

	editorMaker *editor.Maker
	editors     map[resource.ID]*editor.Model
	explorer    *explorer.Model
	logs        *logs.Model

	width  int
	height int

	focus    pane
	showHelp bool
	showLogs bool

	prompt *tui.Prompt

	// Either an error or an informational message is rendered in the footer.
	err  error
	info string

	dump *os.File

	// startupErrors are reported upon initialization.
	startupErrors []tui.ErrorMsg
}

// newModel constructs the top-level TUI model. Documents already open and any
// folder already opened are shown.
func newModel(opts Options) (model, error) {
	var dump *os.File
	if opts.Debug {
		var err error
		dump, err = os.OpenFile("messages.log", os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			return model{}, err
		}
	}
	m := model{
		docs:    opts.Documents,
		folders: opts.Folders,
		editorMaker: &editor.Maker{
			Documents: opts.Documents,
			TabWidth:  opts.TabWidth,
		},
		editors: make(map[resource.ID]*editor.Model),
		explorer: (&explorer.Maker{
			Folders:   opts.Folders,
			Documents: opts.Documents,
		}).Make(0, 0),
		logs:          (&logs.Maker{Logger: opts.Logger}).Make(0, 0),
		dump:          dump,
		startupErrors: opts.Errors,
	}
	for _, doc := range opts.Documents.List() {
		m.makeEditor(doc)
	}
	if _, ok := opts.Documents.Current(); !ok && m.explorer.Visible() {
		m.focus = explorerPane
	}
	return m, nil
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.setFocus(m.focus)}
	for _, msg := range m.startupErrors {
		cmds = append(cmds, tui.CmdHandler(msg))
	}
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.dump != nil {
		spew.Fdump(m.dump, msg)
	}

	if m.prompt != nil {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			closePrompt, cmd := m.prompt.HandleKey(msg)
			if closePrompt {
				m.prompt = nil
			}
			return m, cmd
		default:
			// Send all other messages to the prompt to keep its cursor
			// blinking, and then carry on processing them below.
			cmds = append(cmds, m.prompt.HandleBlink(msg))
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		// Pressing any key makes any info/error message in the footer disappear
		m.info = ""
		m.err = nil

		switch {
		case key.Matches(msg, keys.Global.ForceQuit):
			return m, tea.Quit
		case key.Matches(msg, keys.Global.Quit):
			// ctrl-c quits the app, but not before prompting the user for
			// confirmation.
			return m, tui.YesNoPrompt("Quit pad?", tea.Quit)
		case key.Matches(msg, keys.Global.Help):
			// f1 toggles help
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, keys.Global.Logs):
			m.showLogs = !m.showLogs
			return m, nil
		case key.Matches(msg, keys.Global.Escape) && (m.showHelp || m.showLogs):
			// <esc> closes help and logs
			m.showHelp = false
			m.showLogs = false
			return m, nil
		case key.Matches(msg, keys.Global.New):
			doc := m.docs.New()
			m.makeEditor(doc)
			return m, m.setFocus(editorPane)
		case key.Matches(msg, keys.Global.Open):
			return m, tui.PathPrompt("Open file", m.promptDir(), func(path string) tea.Cmd {
				return tui.OpenFile(path)
			})
		case key.Matches(msg, keys.Global.OpenFolder):
			return m, tui.PathPrompt("Open folder", m.promptDir(), func(path string) tea.Cmd {
				return tui.CmdHandler(tui.OpenFolderMsg{Path: path})
			})
		case key.Matches(msg, keys.Global.Close):
			return m, m.closeCurrent()
		case key.Matches(msg, keys.Global.Save):
			return m, m.save()
		case key.Matches(msg, keys.Global.SaveAs):
			return m, m.saveAsPrompt()
		case key.Matches(msg, keys.Navigation.TabNext):
			m.docs.Next()
			return m, m.setFocus(editorPane)
		case key.Matches(msg, keys.Navigation.TabPrev):
			m.docs.Prev()
			return m, m.setFocus(editorPane)
		case key.Matches(msg, keys.Global.Focus):
			if m.focus == editorPane && m.explorer.Visible() {
				return m, m.setFocus(explorerPane)
			}
			return m, m.setFocus(editorPane)
		default:
			// Send other keys to the current pane.
			return m, m.updateCurrent(msg)
		}
	case tui.OpenFileMsg:
		return m, m.openFile(msg.Path)
	case tui.OpenFolderMsg:
		if _, err := m.folders.Open(msg.Path); err != nil {
			return m, tui.ReportError(err, "Cannot open folder")
		}
		m.explorer.Rebuild()
		m.resize()
		return m, m.setFocus(explorerPane)
	case tui.SaveAsMsg:
		return m, m.saveAs(msg.Path)
	case tui.PromptMsg:
		// Enable prompt widget
		var blink tea.Cmd
		m.prompt, blink = tui.NewPrompt(msg)
		return m, blink
	case tui.ErrorMsg:
		if msg.Error != nil {
			err := msg.Error
			msg := fmt.Sprintf(msg.Message, msg.Args...)

			// Both print error in footer as well as log it.
			m.err = fmt.Errorf("%s: %w", msg, err)
			slog.Error(msg, "error", err)
		}
	case tui.InfoMsg:
		m.info = string(msg)
	case resource.Event[*folder.Folder], resource.Event[*document.Document]:
		visible := m.explorer.Visible()
		cmds = append(cmds, m.explorer.Update(msg))
		if visible != m.explorer.Visible() {
			m.resize()
		}
	case resource.Event[logging.Message]:
		cmds = append(cmds, m.logs.Update(msg))
	default:
		// Send remaining msg types, i.e. cursor blinks, to the current editor.
		if ed, ok := m.currentEditor(); ok {
			cmds = append(cmds, ed.Update(msg))
		}
	}
	return m, tea.Batch(cmds...)
}

type paneModel interface {
	Update(tea.Msg) tea.Cmd
}

// currentPane returns whichever pane or overlay is visible and focused, or
// nil if there is none.
func (m *model) currentPane() paneModel {
	switch {
	case m.showLogs:
		return m.logs
	case m.focus == explorerPane:
		return m.explorer
	}
	if ed, ok := m.currentEditor(); ok {
		return ed
	}
	return nil
}

// updateCurrent sends a key press to the current pane.
func (m *model) updateCurrent(msg tea.KeyMsg) tea.Cmd {
	if m.showHelp {
		return nil
	}
	if current := m.currentPane(); current != nil {
		return current.Update(msg)
	}
	return nil
}

// openFile opens the file at path in a new tab. The tab is created even if
// the file cannot be read.
func (m *model) openFile(path string) tea.Cmd {
	doc, err := m.docs.Open(path)
	m.makeEditor(doc)
	focus := m.setFocus(editorPane)
	if err != nil {
		return tea.Batch(focus, tui.ReportError(err, "Cannot open file"))
	}
	return tea.Batch(focus, tui.ReportInfo("opened %s", doc.Name()))
}

func (m *model) closeCurrent() tea.Cmd {
	index := m.docs.CurrentIndex()
	if index < 0 {
		return nil
	}
	doc, _ := m.docs.Current()
	if err := m.docs.Close(index); err != nil {
		return tui.ReportError(err, "closing file")
	}
	delete(m.editors, doc.ID)
	return m.setFocus(m.focus)
}

// save saves the current document, or prompts for a path if the document has
// never been saved.
func (m *model) save() tea.Cmd {
	err := m.docs.Save()
	switch {
	case errors.Is(err, document.ErrUntitled):
		return m.saveAsPrompt()
	case err != nil:
		return tui.ReportError(err, "Cannot save file")
	}
	doc, _ := m.docs.Current()
	return tui.ReportInfo("saved %s", doc.Name())
}

func (m *model) saveAsPrompt() tea.Cmd {
	doc, ok := m.docs.Current()
	if !ok {
		return tui.ReportError(document.ErrNoDocuments, "Cannot save file")
	}
	initial := m.promptDir()
	if !doc.IsUntitled() {
		initial = doc.Path
	}
	return tui.PathPrompt("Save as", initial, func(path string) tea.Cmd {
		return tui.CmdHandler(tui.SaveAsMsg{Path: path})
	})
}

func (m *model) saveAs(path string) tea.Cmd {
	if err := m.docs.SaveAs(path); err != nil {
		return tui.ReportError(err, "Cannot save file")
	}
	doc, _ := m.docs.Current()
	if ed, ok := m.editors[doc.ID]; ok {
		ed.Reset()
	}
	return tui.ReportInfo("saved %s", doc.Name())
}

// promptDir is the initial value of a path prompt: the root of the open
// folder, if any.
func (m *model) promptDir() string {
	if f, ok := m.folders.Current(); ok {
		return f.Root + string(os.PathSeparator)
	}
	return ""
}

func (m *model) makeEditor(doc *document.Document) {
	m.editors[doc.ID] = m.editorMaker.Make(doc, m.mainWidth(), m.editorHeight())
}

func (m *model) currentEditor() (*editor.Model, bool) {
	doc, ok := m.docs.Current()
	if !ok {
		return nil, false
	}
	ed, ok := m.editors[doc.ID]
	return ed, ok
}

// setFocus focuses the given pane, falling back to the other pane if the
// given pane cannot take focus.
func (m *model) setFocus(p pane) tea.Cmd {
	if p == explorerPane && !m.explorer.Visible() {
		p = editorPane
	}
	for _, ed := range m.editors {
		ed.Blur()
	}
	m.explorer.Blur()
	m.focus = p
	if p == explorerPane {
		m.explorer.Focus()
		return nil
	}
	if ed, ok := m.currentEditor(); ok {
		return ed.Focus()
	}
	return nil
}

func (m *model) resize() {
	for _, ed := range m.editors {
		ed.SetSize(m.mainWidth(), m.editorHeight())
	}
	m.explorer.SetSize(max(0, m.explorerWidth()-explorerBorderWidth), m.viewHeight())
	m.logs.SetSize(m.width, m.viewHeight())
}

var (
	logo = tui.Bold.
		Margin(0, 1).
		Foreground(tui.Pink).
		Render("pad")
	logoWidth            = lipgloss.Width(logo)
	headerHeight         = 2
	horizontalRuleHeight = 1
	messageFooterHeight  = 1
	explorerBorderWidth  = 1

	pathIcon = tui.Bold.
			Foreground(tui.Pink).
			Margin(0, 2, 0, 1).
			Render("🗀")
	versionIcon = tui.Bold.
			Foreground(tui.Pink).
			Margin(0, 2, 0, 1).
			Render("ⓥ")
	explorerBorder = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false)
	placeholderStyle = tui.Regular.Foreground(tui.LightGrey)
)

func (m model) View() string {
	var (
		content           string
		shortHelpBindings []key.Binding
		paneBindings      []key.Binding
	)

	if bindings, ok := m.currentPane().(tui.ModelHelpBindings); ok {
		paneBindings = bindings.HelpBindings()
	}

	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().
			Margin(1).
			Render(
				fullHelpView(
					helpSection{heading: "PANE", bindings: paneBindings},
					helpSection{heading: "GENERAL", bindings: keys.KeyMapToSlice(keys.Global)},
					helpSection{heading: "NAVIGATION", bindings: keys.KeyMapToSlice(keys.Navigation)},
				),
			)
		shortHelpBindings = []key.Binding{
			key.NewBinding(
				key.WithKeys("f1"),
				key.WithHelp("f1", "close help"),
			),
		}
	case m.showLogs:
		content = m.logs.View()
		shortHelpBindings = append(paneBindings, keys.Global.Escape)
	default:
		content = m.mainView()
		shortHelpBindings = append(
			paneBindings,
			keys.KeyMapToSlice(keys.Global)...,
		)
	}
	if m.prompt != nil {
		shortHelpBindings = m.prompt.HelpBindings()
	}

	// Render the path of the current document, and the version, in the top
	// left corner.
	currentPath := document.Untitled
	if doc, ok := m.docs.Current(); ok {
		currentPath = contractUserPath(doc.Path)
	}
	maxPathWidth := max(0, m.width/3)
	globalStatic := lipgloss.JoinVertical(lipgloss.Top,
		lipgloss.JoinHorizontal(lipgloss.Left, pathIcon, tui.TruncateLeft(currentPath, maxPathWidth)),
		lipgloss.JoinHorizontal(lipgloss.Left, versionIcon, version.Version),
	)

	// Render help bindings in between the static info and logo. Set its
	// available width to the width of the terminal minus the width of the
	// global static info, the width of the logo, and the width of its margins.
	shortHelpWidth := max(0, m.width-tui.Width(globalStatic)-logoWidth-6)
	shortHelp := lipgloss.NewStyle().
		Margin(0, 2, 0, 4).
		Width(shortHelpWidth).
		Render(shortHelpView(shortHelpBindings, shortHelpWidth))

	// Tab position goes in the bottom right corner in the footer.
	var metadata string
	if n := len(m.docs.List()); n > 0 {
		metadata = tui.Padded.Render(
			fmt.Sprintf("%d/%d", m.docs.CurrentIndex()+1, n),
		)
	}

	// Render the prompt, or any info/error message, in the bottom left corner
	// in the footer, using whatever space is remaining to the left of the
	// metadata.
	var footerMsg string
	switch {
	case m.prompt != nil:
		footerMsg = tui.Padded.Render(m.prompt.View())
	case m.err != nil:
		footerMsg = tui.Padded.
			Foreground(tui.Red).
			Render("Error: " + m.err.Error())
	case m.info != "":
		footerMsg = tui.Padded.Render(m.info)
	}

	return lipgloss.JoinVertical(
		lipgloss.Top,
		// header
		lipgloss.NewStyle().
			Height(headerHeight).
			MaxHeight(headerHeight).
			Render(
				lipgloss.JoinHorizontal(
					lipgloss.Left,
					globalStatic,
					shortHelp,
					logo,
				),
			),
		// horizontal rule
		strings.Repeat("─", m.width),
		// content
		lipgloss.NewStyle().
			Height(m.viewHeight()).
			MaxHeight(m.viewHeight()).
			Render(content),
		// horizontal rule
		strings.Repeat("─", m.width),
		// footer
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			tui.Regular.
				Inline(true).
				MaxWidth(max(0, m.width-tui.Width(metadata))).
				Width(max(0, m.width-tui.Width(metadata))).
				Render(footerMsg),
			metadata,
		),
	)
}

// mainView renders the explorer, if a folder is open, alongside the tab strip
// and the current editor.
func (m model) mainView() string {
	docs := m.docs.List()
	titles := make([]string, len(docs))
	for i, doc := range docs {
		titles[i] = doc.Title()
	}
	strip := tabs.Strip{
		Titles: titles,
		Active: m.docs.CurrentIndex(),
		Width:  m.mainWidth(),
	}
	var body string
	if ed, ok := m.currentEditor(); ok {
		body = ed.View()
	} else {
		body = lipgloss.Place(
			m.mainWidth(),
			m.editorHeight(),
			lipgloss.Center,
			lipgloss.Center,
			placeholderStyle.Render("No open files. Press ^n for a new file or ^o to open a file."),
		)
	}
	main := lipgloss.JoinVertical(lipgloss.Left, strip.View(), body)
	if !m.explorer.Visible() {
		return main
	}
	var borderColor lipgloss.TerminalColor = tui.InactivePaneBorder
	if m.focus == explorerPane {
		borderColor = tui.ActivePaneBorder
	}
	explorer := explorerBorder.
		BorderForeground(borderColor).
		Width(max(0, m.explorerWidth()-explorerBorderWidth)).
		Height(m.viewHeight()).
		MaxHeight(m.viewHeight()).
		Render(m.explorer.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, explorer, main)
}

// viewHeight retrieves the height available beneath the header and above the
// message footer.
func (m model) viewHeight() int {
	// Take total terminal height and subtract the height of the header, the
	// horizontal rule under the header, and then in the footer, the
	// horizontal rule and the message underneath.
	return max(0, m.height-headerHeight-2*horizontalRuleHeight-messageFooterHeight)
}

// explorerWidth is the width of the explorer including its border, or zero if
// the explorer is hidden.
func (m model) explorerWidth() int {
	if !m.explorer.Visible() {
		return 0
	}
	return m.width / 4
}

// mainWidth retrieves the width available to the tab strip and editor.
func (m model) mainWidth() int {
	return max(0, m.width-m.explorerWidth())
}

func (m model) editorHeight() int {
	return max(0, m.viewHeight()-tabs.Height)
}
