package editor

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/padtext/pad/internal/document"
)

var (
	errMixedLineEndings = errors.New("file has mixed line endings")
	errUnprintable      = errors.New("file contains control characters or invalid UTF-8")
	errNoTabMarker      = errors.New("file contains tabs along with every tab marker")
)

// tabMarkers stand in for tabs in the text area, which would otherwise expand
// them to spaces. The first marker absent from a document is used.
var tabMarkers = []rune{'␉', '→', '⇥'}

// codec translates between the content of a document and the value of a text
// area. The text area holds only printable runes, tabs excepted, separated by
// LF.
type codec struct {
	crlf bool
	// tab is the marker standing in for tabs, or zero if the content has none.
	tab rune
}

// newCodec constructs a codec for the document's content. If the content
// cannot be represented in the text area then an error is returned along
// with a codec that is suitable only for displaying the content.
func newCodec(doc *document.Document) (codec, error) {
	c := codec{crlf: doc.LineEnding != document.LF}
	if strings.ContainsRune(doc.Content, '\t') {
		for _, marker := range tabMarkers {
			if !strings.ContainsRune(doc.Content, marker) {
				c.tab = marker
				break
			}
		}
		if c.tab == 0 {
			return c, errNoTabMarker
		}
	}
	if doc.LineEnding == document.MixedLineEndings {
		return c, errMixedLineEndings
	}
	if !printable(doc.Content) {
		return c, errUnprintable
	}
	return c, nil
}

// printable is true if the text area preserves every rune in s, other than
// tabs and carriage returns.
func printable(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		switch {
		case r == '\t', r == '\r', r == '\n':
		case r == utf8.RuneError, unicode.IsControl(r):
			return false
		}
	}
	return true
}

func (c codec) decode(content string) string {
	if c.crlf {
		content = strings.ReplaceAll(content, "\r\n", "\n")
	}
	if c.tab != 0 {
		content = strings.ReplaceAll(content, "\t", string(c.tab))
	}
	return content
}

func (c codec) encode(value string) string {
	if c.tab != 0 {
		value = strings.ReplaceAll(value, string(c.tab), "\t")
	}
	if c.crlf {
		value = strings.ReplaceAll(value, "\n", "\r\n")
	}
	return value
}
