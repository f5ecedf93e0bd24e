package folder

import (
	"path"
	"strings"
)

// Folder is a snapshot of a directory tree opened in the explorer.
type Folder struct {
	// Root is the absolute path of the directory.
	Root string
	// Entries are the files and directories beneath the root, sorted by their
	// relative path. The root itself is not included.
	Entries []Entry
}

// Entry is a file or directory in a folder.
type Entry struct {
	// Path is the absolute path of the entry.
	Path string
	// Rel is the slash-separated path of the entry relative to the root.
	Rel string
	// Dir is true if the entry is a directory.
	Dir bool
}

// Name is the base name of the entry.
func (e Entry) Name() string {
	return path.Base(e.Rel)
}

// Depth is the number of directories between the root and the entry.
func (e Entry) Depth() int {
	return strings.Count(e.Rel, "/")
}
