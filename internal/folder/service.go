package folder

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"github.com/fsnotify/fsnotify"
	"github.com/padtext/pad/internal/logging"
	"github.com/padtext/pad/internal/pubsub"
	"github.com/padtext/pad/internal/resource"
)

// Service scans a directory for the explorer and keeps the scan up to date as
// files are created and removed.
type Service struct {
	ctx    context.Context
	ignore []string
	logger logging.Interface
	broker *pubsub.Broker[*Folder]

	mu      sync.Mutex
	current *Folder
	watcher *fsnotify.Watcher
}

type ServiceOptions struct {
	// Ignore is a list of doublestar glob patterns. Entries whose relative
	// path or name matches a pattern are skipped, along with the contents of
	// matching directories.
	Ignore []string
	Logger logging.Interface
}

func NewService(ctx context.Context, opts ServiceOptions) (*Service, error) {
	for _, pattern := range opts.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid ignore pattern: %s", pattern)
		}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard
	}
	return &Service{
		ctx:    ctx,
		ignore: opts.Ignore,
		logger: opts.Logger,
		broker: pubsub.NewBroker[*Folder](opts.Logger),
	}, nil
}

// Subscribe to folder events.
func (s *Service) Subscribe(ctx context.Context) <-chan resource.Event[*Folder] {
	return s.broker.Subscribe(ctx)
}

// Open scans the directory at path and watches it for changes, replacing any
// previously opened directory.
func (s *Service) Open(path string) (*Folder, error) {
	root, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", root)
	}
	folder, err := s.scan(root)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watching folder: %w", err)
	}
	s.watch(watcher, folder)

	s.mu.Lock()
	if s.watcher != nil {
		s.watcher.Close()
	}
	s.watcher = watcher
	s.current = folder
	s.mu.Unlock()

	go s.handleEvents(watcher, root)

	s.broker.Publish(resource.CreatedEvent, folder)
	s.logger.Info("opened folder", "path", root, "entries", len(folder.Entries))
	return folder, nil
}

// Current returns the opened folder, or false if no folder has been opened.
func (s *Service) Current() (*Folder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current, s.current != nil
}

// Reload rescans the opened folder.
func (s *Service) Reload() error {
	s.mu.Lock()
	current, watcher := s.current, s.watcher
	s.mu.Unlock()

	if current == nil {
		return errors.New("no folder has been opened")
	}
	return s.reload(watcher, current.Root)
}

// Close stops watching the opened folder.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watcher == nil {
		return nil
	}
	err := s.watcher.Close()
	s.watcher = nil
	return err
}

func (s *Service) reload(watcher *fsnotify.Watcher, root string) error {
	folder, err := s.scan(root)
	if err != nil {
		return err
	}
	if watcher != nil {
		s.watch(watcher, folder)
	}

	s.mu.Lock()
	if s.current == nil || s.current.Root != root {
		// another folder has since been opened
		s.mu.Unlock()
		return nil
	}
	s.current = folder
	s.mu.Unlock()

	s.broker.Publish(resource.UpdatedEvent, folder)
	s.logger.Debug("reloaded folder", "path", root, "entries", len(folder.Entries))
	return nil
}

func (s *Service) scan(root string) (*Folder, error) {
	var (
		entries []Entry
		mu      sync.Mutex
	)
	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip unreadable entries rather than abandon the scan.
			s.logger.Warn("scanning folder", "path", path, "error", err)
			return nil
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if s.ignored(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		// walk func is invoked concurrently
		mu.Lock()
		entries = append(entries, Entry{Path: path, Rel: rel, Dir: d.IsDir()})
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning folder: %w", err)
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Rel, b.Rel)
	})
	return &Folder{Root: root, Entries: entries}, nil
}

func (s *Service) ignored(rel string) bool {
	name := filepath.Base(rel)
	for _, pattern := range s.ignore {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// watch adds the root and its directories to the watcher; fsnotify does not
// watch recursively.
func (s *Service) watch(watcher *fsnotify.Watcher, folder *Folder) {
	if err := watcher.Add(folder.Root); err != nil {
		s.logger.Warn("watching folder", "path", folder.Root, "error", err)
	}
	for _, entry := range folder.Entries {
		if !entry.Dir {
			continue
		}
		if err := watcher.Add(entry.Path); err != nil {
			s.logger.Warn("watching folder", "path", entry.Path, "error", err)
		}
	}
}

func (s *Service) handleEvents(watcher *fsnotify.Watcher, root string) {
	for {
		select {
		case <-s.ctx.Done():
			watcher.Close()
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			// Writes and chmods leave the tree unchanged.
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if err := s.reload(watcher, root); err != nil {
				s.logger.Error("reloading folder", "path", root, "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Error("watching folder", "path", root, "error", err)
		}
	}
}
