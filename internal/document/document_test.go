package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument(t *testing.T) {
	t.Run("untitled", func(t *testing.T) {
		doc := newDocument()

		assert.True(t, doc.IsUntitled())
		assert.Equal(t, "Untitled", doc.Title())
		assert.Equal(t, "Line 1, Column 1", doc.Status())
	})

	t.Run("dirty", func(t *testing.T) {
		doc := newDocument()
		doc.Path = "/tmp/a.txt"
		doc.Dirty = true

		assert.False(t, doc.IsUntitled())
		assert.Equal(t, "a.txt", doc.Name())
		assert.Equal(t, "*a.txt", doc.Title())
	})

	t.Run("status", func(t *testing.T) {
		doc := newDocument()
		doc.Line = 3
		doc.Column = 14

		assert.Equal(t, "Line 3, Column 14", doc.Status())
	})
}

func TestDetectLineEnding(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    LineEnding
	}{
		{"empty", "", LF},
		{"lf", "a\nb\n", LF},
		{"crlf", "a\r\nb\r\n", CRLF},
		{"crlf without trailing newline", "a\r\nb", CRLF},
		{"mixed", "a\r\nb\n", MixedLineEndings},
		{"lone carriage return", "a\rb", MixedLineEndings},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectLineEnding(tt.content))
		})
	}
}
