package tabs

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/padtext/pad/internal/tui"
)

// Height of the tab strip
const Height = 2

// Minimum width of a tab title before it is truncated any further.
const minTitleWidth = 6

var (
	activeTabStyle   = tui.Bold.Foreground(tui.ActiveTabColor)
	inactiveTabStyle = tui.Regular.Foreground(tui.InactiveTabColor)
)

// Strip renders a row of tab headings, one per open document, with the
// active tab underlined.
type Strip struct {
	Titles []string
	Active int
	Width  int
}

func (s Strip) View() string {
	titles, offset := s.fit()
	var (
		tabHeaders       []string
		tabsHeadersWidth int
	)
	for i, title := range titles {
		var (
			headingStyle  lipgloss.Style
			underlineChar string
		)
		if offset+i == s.Active {
			headingStyle = activeTabStyle
			underlineChar = "━"
		} else {
			headingStyle = inactiveTabStyle
			underlineChar = "─"
		}
		heading := headingStyle.Padding(0, 1).Render(title)
		underline := headingStyle.Render(strings.Repeat(underlineChar, tui.Width(heading)))
		tabHeaders = append(tabHeaders, lipgloss.JoinVertical(lipgloss.Top, heading, underline))
		tabsHeadersWidth += tui.Width(heading)
	}

	// Populate remaining space to the right of the tab headers with a faint
	// grey underline.
	remainingWidth := max(0, s.Width-tabsHeadersWidth)
	tabHeadersFiller := lipgloss.JoinVertical(lipgloss.Top,
		strings.Repeat(" ", remainingWidth),
		inactiveTabStyle.Render(strings.Repeat("─", remainingWidth)),
	)
	tabHeaders = append(tabHeaders, tabHeadersFiller)

	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabHeaders...)
}

// fit truncates titles so that they fit the width of the strip. If there
// are too many to fit even when truncated then leading tabs are dropped until
// the active tab fits, and then trailing tabs are dropped until the strip
// fits. The index of the first returned tab is also returned.
func (s Strip) fit() ([]string, int) {
	if len(s.Titles) == 0 {
		return nil, 0
	}
	const padding = 2
	active := min(max(s.Active, 0), len(s.Titles)-1)
	titles := make([]string, len(s.Titles))
	maxWidth := max(minTitleWidth, s.Width/len(s.Titles)-padding)
	total := 0
	for i, title := range s.Titles {
		titles[i] = tui.TruncateRight(title, maxWidth)
		total += tui.Width(titles[i]) + padding
	}
	start, end := 0, len(titles)
	for start < active && total > s.Width {
		total -= tui.Width(titles[start]) + padding
		start++
	}
	for end > active+1 && total > s.Width {
		end--
		total -= tui.Width(titles[end]) + padding
	}
	if total > s.Width {
		// only the active tab remains
		titles[active] = tui.TruncateRight(titles[active], s.Width-padding)
	}
	return titles[start:end], start
}
