package tui

import (
	"github.com/padtext/pad/internal/document"
	"github.com/padtext/pad/internal/folder"
	"github.com/padtext/pad/internal/resource"
)

type DocumentService interface {
	New() *document.Document
	Open(path string) (*document.Document, error)
	Close(index int) error
	Save() error
	SaveAs(path string) error
	Edit(id resource.ID, content string) error
	MoveCursor(id resource.ID, row, col int) error
	Current() (*document.Document, bool)
	CurrentIndex() int
	Next()
	Prev()
	List() []*document.Document
}

type FolderService interface {
	Open(path string) (*folder.Folder, error)
	Current() (*folder.Folder, bool)
	Reload() error
}
