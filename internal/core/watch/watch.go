// Package watch emits an event when a convention source file changes on disk.
//
// The watch is placed on the file's parent directory rather than the file
// itself: editors that save atomically (write a temp file, rename it over
// the target) would otherwise detach the watch on every save. Events are
// debounced and deduplicated by content hash, so a save that leaves the
// bytes unchanged emits nothing.
package watch

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	// DefaultDebounce is used when no debounce interval is configured.
	DefaultDebounce = 200 * time.Millisecond

	eventChannelBuffer = 16
)

// Op indicates what happened to the watched file.
type Op string

const (
	OpModify Op = "modify"
	OpRemove Op = "remove"
)

// Event reports a debounced change to the watched file.
type Event struct {
	Path string
	Op   Op
}

// Watcher watches a single source file and emits at most one Event per
// debounce interval in which its content actually changed.
type Watcher struct {
	path     string
	dir      string
	base     string
	debounce time.Duration
	fsw      *fsnotify.Watcher
	logger   *slog.Logger

	mu      sync.Mutex
	pending bool
	hash    string

	events chan Event
}

// New creates a watcher for path. A debounce of zero or less selects
// DefaultDebounce.
func New(path string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		path:     abs,
		dir:      filepath.Dir(abs),
		base:     filepath.Base(abs),
		debounce: debounce,
		fsw:      fsw,
		logger:   logger,
		events:   make(chan Event, eventChannelBuffer),
	}, nil
}

// Events returns the channel of debounced change events. It is closed
// when the event loop exits.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start seeds the content hash from the file's current bytes and begins
// watching its parent directory.
func (w *Watcher) Start(ctx context.Context) error {
	if content, err := os.ReadFile(w.path); err == nil {
		w.mu.Lock()
		w.hash = contentHash(content)
		w.mu.Unlock()
	}

	if err := w.fsw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	go w.run(ctx)

	w.logger.Info("watching source file",
		"path", w.path,
		"debounce", w.debounce)

	return nil
}

// Close stops the underlying filesystem watcher. The events channel is
// closed by the event loop when it exits.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.events)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", "error", err)

		case <-ticker.C:
			w.flush()
		}
	}
}

// handleFSEvent marks the file dirty. In-place saves arrive as a Write,
// atomic saves as a Create of the target name, backup rotation as a
// Rename then a Create. All ops funnel into the same pending flag and
// flush decides what actually happened by looking at the file.
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	if filepath.Base(event.Name) != w.base {
		return
	}

	w.mu.Lock()
	w.pending = true
	w.mu.Unlock()

	w.logger.Debug("source change detected",
		"path", w.path,
		"op", event.Op.String())
}

func (w *Watcher) flush() {
	w.mu.Lock()
	if !w.pending {
		w.mu.Unlock()
		return
	}
	w.pending = false
	w.mu.Unlock()

	content, err := os.ReadFile(w.path)
	if err != nil {
		if os.IsNotExist(err) {
			// Clear the hash so the file reappearing emits even when
			// its content matches the last compiled version.
			w.mu.Lock()
			w.hash = ""
			w.mu.Unlock()
			w.send(Event{Path: w.path, Op: OpRemove})
			return
		}
		w.logger.Warn("failed to read watched file",
			"path", w.path,
			"error", err)
		return
	}

	newHash := contentHash(content)
	w.mu.Lock()
	unchanged := w.hash == newHash
	w.hash = newHash
	w.mu.Unlock()
	if unchanged {
		return
	}

	w.send(Event{Path: w.path, Op: OpModify})
}

func (w *Watcher) send(event Event) {
	select {
	case w.events <- event:
		w.logger.Debug("sent watch event", "path", event.Path, "op", event.Op)
	default:
		w.logger.Warn("event channel full, dropping event", "path", event.Path)
	}
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return fmt.Sprintf("%x", sum)
}
