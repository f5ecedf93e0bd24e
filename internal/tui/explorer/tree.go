package explorer

import (
	"path"
	"slices"
	"strings"

	lgtree "github.com/charmbracelet/lipgloss/tree"
	"github.com/padtext/pad/internal/folder"
)

type tree struct {
	value    node
	children []*tree
}

// newTree builds a tree from a folder snapshot. Files with a path in open are
// marked as open, and directories with a path in closed are closed.
func newTree(f *folder.Folder, open, closed map[string]bool) *tree {
	t := &tree{
		value: dirNode{root: true, path: f.Root, closed: closed[f.Root]},
	}
	// Entries are sorted by relative path, so a directory is always added
	// before its contents.
	dirs := map[string]*tree{".": t}
	for _, entry := range f.Entries {
		parent, ok := dirs[path.Dir(entry.Rel)]
		if !ok {
			continue
		}
		if entry.Dir {
			dirs[entry.Rel] = parent.addChild(dirNode{
				path:   entry.Path,
				closed: closed[entry.Path],
			})
		} else {
			parent.addChild(fileNode{
				path: entry.Path,
				open: open[entry.Path],
			})
		}
	}
	t.sort()
	return t
}

func (t *tree) render(root bool, to *lgtree.Tree) {
	s := t.value.String()
	lgnode := lgtree.Root(s)
	// First node in tracker is the root node.
	if root {
		to.Root(s)
		lgnode = to
	} else {
		to.Child(lgnode)
	}
	if dir, ok := t.value.(dirNode); ok && dir.closed {
		return
	}
	for _, child := range t.children {
		child.render(false, lgnode)
	}
}

func (t *tree) addChild(child node) *tree {
	newTree := &tree{value: child}
	t.children = append(t.children, newTree)
	return newTree
}

// sort orders children recursively, directories first and then files, each
// lexicographically ordered.
func (t *tree) sort() {
	slices.SortFunc(t.children, func(a, b *tree) int {
		_, aDir := a.value.(dirNode)
		_, bDir := b.value.(dirNode)
		if aDir != bDir {
			if aDir {
				return -1
			}
			return 1
		}
		return strings.Compare(a.value.ID(), b.value.ID())
	})
	for _, child := range t.children {
		child.sort()
	}
}

func indentor(children lgtree.Children, index int) string {
	if children.Length()-1 == index {
		return " "
	}
	return "│"
}

func enumerator(children lgtree.Children, index int) string {
	if children.Length()-1 == index {
		return "└"
	}
	return "├"
}
