package tui

import (
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

// TruncateRight truncates s to width w, replacing the end with an ellipsis.
func TruncateRight(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return truncate.StringWithTail(s, uint(w), "…")
}

// TruncateLeft truncates s to width w, replacing the start with an ellipsis.
// Suitable for paths, where the base name is more informative than the
// leading directories.
func TruncateLeft(s string, w int) string {
	width := runewidth.StringWidth(s)
	if width <= w {
		return s
	}
	if w <= 0 {
		return ""
	}
	return runewidth.TruncateLeft(s, width-w+1, "…")
}
