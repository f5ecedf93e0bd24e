package editor

import (
	"testing"

	"github.com/padtext/pad/internal/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		lineEnding document.LineEnding
		value      string
	}{
		{"plain", "a\nb", document.LF, "a\nb"},
		{"crlf", "a\r\nb\r\n", document.CRLF, "a\nb\n"},
		{"tab", "\ta", document.LF, "␉a"},
		{"tab and marker", "\t␉", document.LF, "→␉"},
		{"tab and crlf", "\ta\r\n", document.CRLF, "␉a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &document.Document{Content: tt.content, LineEnding: tt.lineEnding}

			c, err := newCodec(doc)
			require.NoError(t, err)

			assert.Equal(t, tt.value, c.decode(tt.content))
			assert.Equal(t, tt.content, c.encode(tt.value))
		})
	}
}

func TestCodec_Unrepresentable(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		lineEnding document.LineEnding
		want       error
	}{
		{"form feed", "a\fb", document.LF, errUnprintable},
		{"nul", "a\x00b", document.LF, errUnprintable},
		{"invalid utf-8", "a\xffb", document.LF, errUnprintable},
		{"replacement character", "a�b", document.LF, errUnprintable},
		{"mixed line endings", "a\r\nb\n", document.MixedLineEndings, errMixedLineEndings},
		{"every marker", "\t␉→⇥", document.LF, errNoTabMarker},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &document.Document{Content: tt.content, LineEnding: tt.lineEnding}

			_, err := newCodec(doc)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
