package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// CmdHandler wraps a message in a command.
func CmdHandler(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

func ReportInfo(msg string, args ...any) tea.Cmd {
	return CmdHandler(InfoMsg(fmt.Sprintf(msg, args...)))
}

func ReportError(err error, msg string, args ...any) tea.Cmd {
	return CmdHandler(NewErrorMsg(err, msg, args...))
}

// OpenFile requests the file at path be opened.
func OpenFile(path string) tea.Cmd {
	return CmdHandler(OpenFileMsg{Path: path})
}
