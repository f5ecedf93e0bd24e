package explorer

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
)

const (
	openDirIcon   string = "▾"
	closedDirIcon string = "▸"
	fileIcon      string = " "
)

type node interface {
	fmt.Stringer

	// ID uniquely identifies the node
	ID() string
}

type dirNode struct {
	path   string
	root   bool
	closed bool
}

func (d dirNode) ID() string {
	return d.path
}

func (d dirNode) String() string {
	icon := openDirIcon
	if d.closed {
		icon = closedDirIcon
	}
	if d.root {
		return fmt.Sprintf("%s %s", icon, d.path)
	}
	return fmt.Sprintf("%s %s", icon, filepath.Base(d.path))
}

type fileNode struct {
	path string
	// open is true if the file is open in a tab.
	open bool
}

func (f fileNode) ID() string {
	return f.path
}

func (f fileNode) String() string {
	name := lipgloss.NewStyle().
		Bold(f.open).
		Render(filepath.Base(f.path))
	return fmt.Sprintf("%s %s", fileIcon, name)
}
