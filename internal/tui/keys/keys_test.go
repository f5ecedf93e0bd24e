package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
)

func Test_keyMapToSlice(t *testing.T) {
	got := KeyMapToSlice(Common)
	want := []key.Binding{
		key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open/toggle"),
		),
		key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("^r", "reload"),
		),
	}
	assert.Equal(t, want, got)
}

func Test_keyMapToSlice_NotStruct(t *testing.T) {
	assert.Nil(t, KeyMapToSlice("ctrl+n"))
}

// Every global binding must be distinct, otherwise one action would shadow
// another.
func TestGlobal_Unique(t *testing.T) {
	seen := make(map[string]string)
	for _, b := range KeyMapToSlice(Global) {
		for _, k := range b.Keys() {
			if prev, ok := seen[k]; ok {
				t.Errorf("key %q bound to both %q and %q", k, prev, b.Help().Desc)
			}
			seen[k] = b.Help().Desc
		}
	}
}
