package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/padtext/pad/internal/logging"
	"github.com/padtext/pad/internal/pubsub"
	"github.com/padtext/pad/internal/resource"
)

// noCurrent is the index of the current document when there are none.
const noCurrent = -1

// Service manages the ordered collection of open documents, one of which is
// current.
type Service struct {
	// docs is in tab order
	docs    []*Document
	byID    map[resource.ID]*Document
	current int
	mu      sync.Mutex

	broker *pubsub.Broker[*Document]
	logger logging.Interface
}

type ServiceOptions struct {
	Logger logging.Interface
}

func NewService(opts ServiceOptions) *Service {
	if opts.Logger == nil {
		opts.Logger = logging.Discard
	}
	return &Service{
		current: noCurrent,
		byID:    make(map[resource.ID]*Document),
		broker:  pubsub.NewBroker[*Document](opts.Logger),
		logger:  opts.Logger,
	}
}

// Subscribe to document events.
func (s *Service) Subscribe(ctx context.Context) <-chan resource.Event[*Document] {
	return s.broker.Subscribe(ctx)
}

// New creates an empty untitled document and makes it the current document.
func (s *Service) New() *Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.add()
	s.logger.Debug("created document", "document", doc.ID)
	return doc
}

// Open creates a document, makes it the current document, and loads the file
// at path into it. The document is created regardless of whether the file can
// be read; if it cannot then the document is left empty and untitled, and the
// error is returned.
func (s *Service) Open(path string) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.add()
	if err := s.load(doc, path); err != nil {
		s.logger.Error("opening file", "path", path, "document", doc.ID, "error", err)
		return doc, err
	}
	s.broker.Publish(resource.UpdatedEvent, doc)
	s.logger.Info("opened file", "path", doc.Path, "document", doc.ID)
	return doc, nil
}

// Close removes the document at the given index. Unsaved edits are discarded.
func (s *Service) Close(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.docs) {
		return fmt.Errorf("closing document at index %d: %w", index, resource.ErrNotFound)
	}
	doc := s.docs[index]
	s.docs = append(s.docs[:index], s.docs[index+1:]...)
	delete(s.byID, doc.ID)

	switch {
	case len(s.docs) == 0:
		s.current = noCurrent
	case index < s.current:
		s.current--
	case index == s.current:
		// the document to the right becomes current, or the last document if
		// the closed document was the last one.
		s.current = min(index, len(s.docs)-1)
	}
	s.broker.Publish(resource.DeletedEvent, doc)
	s.logger.Debug("closed document", "document", doc.ID, "dirty", doc.Dirty)
	return nil
}

// Save writes the current document to its backing file. If the document has
// never been saved then ErrUntitled is returned and nothing is written.
func (s *Service) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.currentDocument()
	if !ok {
		return ErrNoDocuments
	}
	if doc.IsUntitled() {
		return ErrUntitled
	}
	if err := os.WriteFile(doc.Path, []byte(doc.Content), 0o644); err != nil {
		s.logger.Error("saving file", "path", doc.Path, "document", doc.ID, "error", err)
		return err
	}
	doc.Dirty = false
	s.broker.Publish(resource.UpdatedEvent, doc)
	s.logger.Info("saved file", "path", doc.Path, "document", doc.ID)
	return nil
}

// SaveAs writes the current document to path, and then loads the written file
// back into the current document, which thereafter is backed by path.
func (s *Service) SaveAs(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.currentDocument()
	if !ok {
		return ErrNoDocuments
	}
	if err := os.WriteFile(path, []byte(doc.Content), 0o644); err != nil {
		s.logger.Error("saving file", "path", path, "document", doc.ID, "error", err)
		return err
	}
	if err := s.load(doc, path); err != nil {
		s.logger.Error("reloading saved file", "path", path, "document", doc.ID, "error", err)
		return err
	}
	s.broker.Publish(resource.UpdatedEvent, doc)
	s.logger.Info("saved file", "path", doc.Path, "document", doc.ID)
	return nil
}

// Edit replaces the content of a document, marking it as having unsaved
// edits.
func (s *Service) Edit(id resource.ID, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.get(id)
	if err != nil {
		return err
	}
	doc.Content = content
	if !doc.Dirty {
		doc.Dirty = true
		s.broker.Publish(resource.UpdatedEvent, doc)
	}
	return nil
}

// MoveCursor records the position of the cursor in a document. The row and
// col are 0-based.
func (s *Service) MoveCursor(id resource.ID, row, col int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.get(id)
	if err != nil {
		return err
	}
	doc.Line = row + 1
	doc.Column = col + 1
	return nil
}

// Current returns the current document. If there are no documents then an
// empty untitled placeholder that belongs to no tab is returned along with
// false.
func (s *Service) Current() (*Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc, ok := s.currentDocument(); ok {
		return doc, true
	}
	return newDocument(), false
}

// CurrentIndex returns the index of the current document, or -1 if there are
// no documents.
func (s *Service) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current
}

// SetCurrent makes the document at the given index the current document.
func (s *Service) SetCurrent(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.docs) {
		return fmt.Errorf("selecting document at index %d: %w", index, resource.ErrNotFound)
	}
	s.current = index
	return nil
}

// Next makes the next document current, cycling back to the first document
// after the last.
func (s *Service) Next() {
	s.cycle(1)
}

// Prev makes the previous document current, cycling to the last document
// before the first.
func (s *Service) Prev() {
	s.cycle(-1)
}

func (s *Service) cycle(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.docs) == 0 {
		return
	}
	s.current = (s.current + delta + len(s.docs)) % len(s.docs)
}

// List returns the documents in tab order.
func (s *Service) List() []*Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*Document(nil), s.docs...)
}

// Len returns the number of documents.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.docs)
}

func (s *Service) Get(id resource.ID) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.get(id)
}

// Index returns the position of the document with the given ID, or -1 if
// there is no such document.
func (s *Service) Index(id resource.ID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.index(id)
}

// add appends a new untitled document and makes it current. Must be called
// with the lock held.
func (s *Service) add() *Document {
	doc := newDocument()
	s.docs = append(s.docs, doc)
	s.byID[doc.ID] = doc
	s.current = len(s.docs) - 1
	s.broker.Publish(resource.CreatedEvent, doc)
	return doc
}

// load reads the file at path into the document, leaving it clean. The
// document is left untouched if the file cannot be read.
func (s *Service) load(doc *Document, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(abs)
	if err != nil {
		return err
	}
	doc.Path = abs
	doc.Content = string(content)
	doc.LineEnding = detectLineEnding(doc.Content)
	doc.Dirty = false
	doc.Line = 1
	doc.Column = 1
	return nil
}

func (s *Service) currentDocument() (*Document, bool) {
	if s.current == noCurrent {
		return nil, false
	}
	return s.docs[s.current], true
}

func (s *Service) get(id resource.ID) (*Document, error) {
	if doc, ok := s.byID[id]; ok {
		return doc, nil
	}
	return nil, fmt.Errorf("%s: %w", id, resource.ErrNotFound)
}

func (s *Service) index(id resource.ID) int {
	for i, doc := range s.docs {
		if doc.ID == id {
			return i
		}
	}
	return -1
}
