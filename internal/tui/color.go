package tui

import "github.com/charmbracelet/lipgloss"

const (
	Black      = lipgloss.Color("#000000")
	Red        = lipgloss.Color("#FF5353")
	Pink       = lipgloss.Color("205")
	Yellow     = lipgloss.Color("#DBBD70")
	Green      = lipgloss.Color("34")
	LightGreen = lipgloss.Color("86")
	Blue       = lipgloss.Color("63")
	Grey       = lipgloss.Color("#737373")
	LightGrey  = lipgloss.Color("245")
	White      = lipgloss.Color("#ffffff")
)

var (
	DebugLogLevel = Blue
	InfoLogLevel  = lipgloss.AdaptiveColor{Dark: string(LightGreen), Light: string(Green)}
	ErrorLogLevel = Red
	WarnLogLevel  = Yellow

	ActiveTabColor   = lipgloss.AdaptiveColor{Dark: string(White), Light: string(Black)}
	InactiveTabColor = lipgloss.AdaptiveColor{Dark: string(LightGrey), Light: string(Grey)}

	CurrentBackground = Grey
	CurrentForeground = White

	ActivePaneBorder   = Pink
	InactivePaneBorder = lipgloss.AdaptiveColor{Dark: "244", Light: "250"}
)
