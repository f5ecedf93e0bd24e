package document

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/padtext/pad/internal/resource"
)

// Untitled is the path of a document that has never been saved to disk.
const Untitled = "Untitled"

// dirtyPrefix prefixes the title of a document with unsaved edits.
const dirtyPrefix = "*"

// Document is an open document, i.e. the contents of a tab.
type Document struct {
	resource.ID

	// Path is the absolute path of the backing file, or Untitled.
	Path string
	// Content is the in-memory text buffer.
	Content string
	// Dirty is true if Content has been edited since it was last loaded or
	// saved.
	Dirty bool
	// LineEnding is the line terminator found in the file when it was last
	// loaded. Untitled documents use LF.
	LineEnding LineEnding
	// Line and Column are the 1-based position of the cursor.
	Line   int
	Column int
}

// LineEnding identifies the line terminators used by a document's content.
type LineEnding int

const (
	LF LineEnding = iota
	CRLF
	// MixedLineEndings is a mix of LF and CRLF, or carriage returns that do not
	// terminate a line.
	MixedLineEndings
)

func (e LineEnding) String() string {
	switch e {
	case LF:
		return "LF"
	case CRLF:
		return "CRLF"
	default:
		return "mixed"
	}
}

func detectLineEnding(content string) LineEnding {
	cr := strings.Count(content, "\r")
	switch {
	case cr == 0:
		return LF
	case cr == strings.Count(content, "\r\n") && cr == strings.Count(content, "\n"):
		return CRLF
	default:
		return MixedLineEndings
	}
}

func newDocument() *Document {
	return &Document{
		ID:     resource.NewID(resource.Document),
		Path:   Untitled,
		Line:   1,
		Column: 1,
	}
}

// IsUntitled is true if the document has never been saved to disk.
func (d *Document) IsUntitled() bool {
	return d.Path == Untitled
}

// Name is the base name of the backing file, or Untitled.
func (d *Document) Name() string {
	if d.IsUntitled() {
		return Untitled
	}
	return filepath.Base(d.Path)
}

// Title is the document's name, prefixed with an asterisk if it has unsaved
// edits.
func (d *Document) Title() string {
	if d.Dirty {
		return dirtyPrefix + d.Name()
	}
	return d.Name()
}

// Status reports the cursor position.
func (d *Document) Status() string {
	return fmt.Sprintf("Line %d, Column %d", d.Line, d.Column)
}

func (d *Document) String() string {
	return d.Title()
}
