package folder

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/otiai10/copy"
	"github.com/padtext/pad/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Open(t *testing.T) {
	root := setupFolder(t)
	svc, err := NewService(context.Background(), ServiceOptions{
		Ignore: []string{"node_modules", "*.log"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })

	got, err := svc.Open(root)
	require.NoError(t, err)

	assert.Equal(t, root, got.Root)
	assert.Equal(t, []Entry{
		{Path: filepath.Join(root, "README.md"), Rel: "README.md"},
		{Path: filepath.Join(root, "build"), Rel: "build", Dir: true},
		{Path: filepath.Join(root, "src"), Rel: "src", Dir: true},
		{Path: filepath.Join(root, "src", "lib"), Rel: "src/lib", Dir: true},
		{Path: filepath.Join(root, "src", "lib", "util.txt"), Rel: "src/lib/util.txt"},
		{Path: filepath.Join(root, "src", "main.txt"), Rel: "src/main.txt"},
	}, got.Entries)

	current, ok := svc.Current()
	require.True(t, ok)
	assert.Equal(t, got, current)
}

func TestService_OpenFile(t *testing.T) {
	root := setupFolder(t)
	svc, err := NewService(context.Background(), ServiceOptions{})
	require.NoError(t, err)

	_, err = svc.Open(filepath.Join(root, "README.md"))
	assert.Error(t, err)

	_, ok := svc.Current()
	assert.False(t, ok)
}

func TestService_InvalidPattern(t *testing.T) {
	_, err := NewService(context.Background(), ServiceOptions{
		Ignore: []string{"[unterminated"},
	})
	assert.Error(t, err)
}

func TestService_Watch(t *testing.T) {
	root := setupFolder(t)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	svc, err := NewService(ctx, ServiceOptions{Ignore: []string{"node_modules"}})
	require.NoError(t, err)
	sub := svc.Subscribe(ctx)

	_, err = svc.Open(root)
	require.NoError(t, err)
	assert.Equal(t, resource.CreatedEvent, (<-sub).Type)

	// create a file in a sub-directory
	err = os.WriteFile(filepath.Join(root, "src", "new.txt"), []byte("new"), 0o644)
	require.NoError(t, err)

	timeout := time.After(5 * time.Second)
	for {
		select {
		case event := <-sub:
			require.Equal(t, resource.UpdatedEvent, event.Type)
			for _, entry := range event.Payload.Entries {
				if entry.Rel == "src/new.txt" {
					return
				}
			}
		case <-timeout:
			t.Fatal("timed out waiting for folder to be reloaded")
		}
	}
}

func TestService_Reload(t *testing.T) {
	root := setupFolder(t)
	svc, err := NewService(context.Background(), ServiceOptions{Ignore: []string{"node_modules"}})
	require.NoError(t, err)
	require.Error(t, svc.Reload(), "no folder opened yet")

	_, err = svc.Open(root)
	require.NoError(t, err)
	// stop watching so that only the explicit reload picks up the removal
	require.NoError(t, svc.Close())
	require.NoError(t, os.RemoveAll(filepath.Join(root, "build")))

	require.NoError(t, svc.Reload())

	current, _ := svc.Current()
	for _, entry := range current.Entries {
		assert.NotEqual(t, "build", entry.Rel)
	}
}

func TestEntry(t *testing.T) {
	entry := Entry{Rel: "src/lib/util.txt"}

	assert.Equal(t, "util.txt", entry.Name())
	assert.Equal(t, 2, entry.Depth())
}

// setupFolder copies the test project into a temporary directory.
func setupFolder(t *testing.T) string {
	t.Helper()

	root := filepath.Join(t.TempDir(), "project")
	err := copy.Copy("./testdata/project", root)
	require.NoError(t, err)
	return root
}
