package document

import (
	"context"
	"errors"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/padtext/pad/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_New(t *testing.T) {
	svc := NewService(ServiceOptions{})

	doc := svc.New()

	assert.Equal(t, "Untitled", doc.Title())
	assert.Equal(t, "", doc.Content)
	assert.Equal(t, 1, svc.Len())

	current, ok := svc.Current()
	require.True(t, ok)
	assert.Equal(t, doc, current)
}

func TestService_NewAndCloseCount(t *testing.T) {
	svc := NewService(ServiceOptions{})
	r := rand.New(rand.NewSource(1))

	var created, closed int
	for range 200 {
		if r.Intn(2) == 0 {
			svc.New()
			created++
			continue
		}
		if svc.Len() == 0 {
			err := svc.Close(0)
			assert.ErrorIs(t, err, resource.ErrNotFound)
			continue
		}
		require.NoError(t, svc.Close(r.Intn(svc.Len())))
		closed++
	}
	assert.Equal(t, created-closed, svc.Len())
	assert.GreaterOrEqual(t, svc.Len(), 0)
}

func TestService_Close(t *testing.T) {
	setup := func(t *testing.T, n int) (*Service, []*Document) {
		svc := NewService(ServiceOptions{})
		docs := make([]*Document, n)
		for i := range docs {
			docs[i] = svc.New()
		}
		return svc, docs
	}

	t.Run("close current selects right neighbour", func(t *testing.T) {
		svc, docs := setup(t, 3)
		require.NoError(t, svc.SetCurrent(1))

		require.NoError(t, svc.Close(1))

		current, _ := svc.Current()
		assert.Equal(t, docs[2], current)
	})

	t.Run("close last current selects new last", func(t *testing.T) {
		svc, docs := setup(t, 3)

		require.NoError(t, svc.Close(2))

		current, _ := svc.Current()
		assert.Equal(t, docs[1], current)
	})

	t.Run("close before current keeps current", func(t *testing.T) {
		svc, docs := setup(t, 3)

		require.NoError(t, svc.Close(0))

		current, _ := svc.Current()
		assert.Equal(t, docs[2], current)
		assert.Equal(t, 1, svc.CurrentIndex())
	})

	t.Run("close only document", func(t *testing.T) {
		svc, _ := setup(t, 1)

		require.NoError(t, svc.Close(0))

		assert.Equal(t, 0, svc.Len())
		assert.Equal(t, -1, svc.CurrentIndex())
		placeholder, ok := svc.Current()
		assert.False(t, ok)
		assert.Equal(t, "", placeholder.Content)
		assert.True(t, placeholder.IsUntitled())
	})

	t.Run("discards unsaved edits", func(t *testing.T) {
		svc, docs := setup(t, 1)
		require.NoError(t, svc.Edit(docs[0].ID, "unsaved"))

		require.NoError(t, svc.Close(0))

		_, err := svc.Get(docs[0].ID)
		assert.ErrorIs(t, err, resource.ErrNotFound)
	})

	t.Run("out of range", func(t *testing.T) {
		svc, _ := setup(t, 1)

		assert.ErrorIs(t, svc.Close(1), resource.ErrNotFound)
		assert.ErrorIs(t, svc.Close(-1), resource.ErrNotFound)
		assert.Equal(t, 1, svc.Len())
	})
}

func TestService_Open(t *testing.T) {
	t.Run("existing file", func(t *testing.T) {
		path := writeFile(t, "a.txt", "hello\nworld\n")
		svc := NewService(ServiceOptions{})

		doc, err := svc.Open(path)
		require.NoError(t, err)

		assert.Equal(t, "a.txt", doc.Title())
		assert.Equal(t, path, doc.Path)
		assert.Equal(t, "hello\nworld\n", doc.Content)
		assert.Equal(t, LF, doc.LineEnding)
		assert.False(t, doc.Dirty)
	})

	t.Run("crlf file", func(t *testing.T) {
		path := writeFile(t, "a.txt", "hello\r\nworld\r\n")
		svc := NewService(ServiceOptions{})

		doc, err := svc.Open(path)
		require.NoError(t, err)

		assert.Equal(t, CRLF, doc.LineEnding)
	})

	t.Run("relative path is made absolute", func(t *testing.T) {
		path := writeFile(t, "a.txt", "hello")
		wd, err := os.Getwd()
		require.NoError(t, err)
		rel, err := filepath.Rel(wd, path)
		require.NoError(t, err)
		svc := NewService(ServiceOptions{})

		doc, err := svc.Open(rel)
		require.NoError(t, err)

		assert.Equal(t, path, doc.Path)
	})

	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing.txt")
		svc := NewService(ServiceOptions{})

		doc, err := svc.Open(path)

		assert.ErrorIs(t, err, fs.ErrNotExist)
		// the tab is created nonetheless
		assert.Equal(t, 1, svc.Len())
		assert.Equal(t, "", doc.Content)
		assert.Equal(t, "Untitled", doc.Title())
		current, ok := svc.Current()
		require.True(t, ok)
		assert.Equal(t, doc, current)
	})
}

func TestService_Edit(t *testing.T) {
	svc := NewService(ServiceOptions{})
	doc := svc.New()

	require.NoError(t, svc.Edit(doc.ID, "h"))
	assert.Equal(t, "*Untitled", doc.Title())

	require.NoError(t, svc.Edit(doc.ID, "he"))
	assert.Equal(t, "*Untitled", doc.Title())
	assert.Equal(t, "he", doc.Content)

	err := svc.Edit(resource.NewID(resource.Document), "x")
	assert.ErrorIs(t, err, resource.ErrNotFound)
}

func TestService_Save(t *testing.T) {
	t.Run("round trip without edits", func(t *testing.T) {
		want := "line one\r\n\tindented\nno trailing newline"
		path := writeFile(t, "a.txt", want)
		svc := NewService(ServiceOptions{})
		_, err := svc.Open(path)
		require.NoError(t, err)

		require.NoError(t, svc.Save())

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, want, string(got))
	})

	t.Run("clears dirty marker", func(t *testing.T) {
		path := writeFile(t, "a.txt", "old content that is longer")
		svc := NewService(ServiceOptions{})
		doc, err := svc.Open(path)
		require.NoError(t, err)
		require.NoError(t, svc.Edit(doc.ID, "new"))
		require.Equal(t, "*a.txt", doc.Title())

		require.NoError(t, svc.Save())

		assert.Equal(t, "a.txt", doc.Title())
		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got), "existing file should be truncated")
	})

	t.Run("untitled", func(t *testing.T) {
		svc := NewService(ServiceOptions{})
		svc.New()

		assert.ErrorIs(t, svc.Save(), ErrUntitled)
	})

	t.Run("no documents", func(t *testing.T) {
		svc := NewService(ServiceOptions{})

		assert.ErrorIs(t, svc.Save(), ErrNoDocuments)
	})

	t.Run("unwritable path keeps dirty marker", func(t *testing.T) {
		path := writeFile(t, "a.txt", "content")
		svc := NewService(ServiceOptions{})
		doc, err := svc.Open(path)
		require.NoError(t, err)
		require.NoError(t, svc.Edit(doc.ID, "edited"))
		// replace the file with a directory so that it cannot be written
		require.NoError(t, os.Remove(path))
		require.NoError(t, os.Mkdir(path, 0o755))

		err = svc.Save()

		assert.Error(t, err)
		assert.Equal(t, "*a.txt", doc.Title())
		assert.Equal(t, "edited", doc.Content)
	})
}

func TestService_SaveAs(t *testing.T) {
	t.Run("new document", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.txt")
		svc := NewService(ServiceOptions{})
		doc := svc.New()
		require.NoError(t, svc.Edit(doc.ID, "hello"))
		require.Equal(t, "*Untitled", doc.Title())

		require.NoError(t, svc.SaveAs(path))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(got))

		assert.Equal(t, 1, svc.Len())
		assert.Equal(t, "a.txt", doc.Title())
		assert.Equal(t, path, doc.Path)
		assert.Equal(t, "hello", doc.Content)
	})

	t.Run("no documents", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.txt")
		svc := NewService(ServiceOptions{})

		err := svc.SaveAs(path)

		assert.ErrorIs(t, err, ErrNoDocuments)
		_, err = os.Stat(path)
		assert.True(t, errors.Is(err, fs.ErrNotExist), "no file should be written")
	})

	t.Run("unwritable path", func(t *testing.T) {
		svc := NewService(ServiceOptions{})
		doc := svc.New()
		require.NoError(t, svc.Edit(doc.ID, "hello"))

		err := svc.SaveAs(filepath.Join(t.TempDir(), "missing", "a.txt"))

		assert.ErrorIs(t, err, fs.ErrNotExist)
		assert.Equal(t, "*Untitled", doc.Title())
	})
}

func TestService_MoveCursor(t *testing.T) {
	svc := NewService(ServiceOptions{})
	doc := svc.New()

	require.NoError(t, svc.MoveCursor(doc.ID, 2, 0))

	assert.Equal(t, "Line 3, Column 1", doc.Status())
}

func TestService_Cycle(t *testing.T) {
	svc := NewService(ServiceOptions{})
	first := svc.New()
	second := svc.New()

	svc.Next()
	current, _ := svc.Current()
	assert.Equal(t, first, current)

	svc.Prev()
	current, _ = svc.Current()
	assert.Equal(t, second, current)

	assert.Equal(t, []*Document{first, second}, svc.List())
	assert.Equal(t, 1, svc.Index(second.ID))
}

func TestService_Events(t *testing.T) {
	svc := NewService(ServiceOptions{})
	sub := svc.Subscribe(context.Background())

	doc := svc.New()
	assert.Equal(t, resource.NewEvent(resource.CreatedEvent, doc), <-sub)

	require.NoError(t, svc.Edit(doc.ID, "a"))
	assert.Equal(t, resource.NewEvent(resource.UpdatedEvent, doc), <-sub)

	require.NoError(t, svc.Close(0))
	assert.Equal(t, resource.NewEvent(resource.DeletedEvent, doc), <-sub)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(content), 0o644)
	require.NoError(t, err)
	return path
}
