// Package watcher provides file system watching with debouncing for the
// opened document. Change notifications carry a line-level summary of what
// moved under us so the UI can decide between silent reload and prompting.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/zjrosen/fold/internal/log"
)

// Change describes one external modification of the watched file.
type Change struct {
	// LinesAdded and LinesRemoved summarize the diff against the content
	// at the previous notification (or the snapshot taken at Start).
	LinesAdded   int
	LinesRemoved int

	// Removed is set when the file disappeared instead of changing.
	Removed bool
}

// Watcher monitors a single file for external changes.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	filePath  string
	debounce  time.Duration
	onChange  chan Change
	done      chan struct{}
	snapshot  string
}

// Config holds watcher configuration options.
type Config struct {
	FilePath    string
	DebounceDur time.Duration
}

// DefaultConfig returns sensible defaults for the watcher.
func DefaultConfig(filePath string) Config {
	return Config{
		FilePath:    filePath,
		DebounceDur: 500 * time.Millisecond,
	}
}

// New creates a new file watcher.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		filePath:  cfg.FilePath,
		debounce:  cfg.DebounceDur,
		onChange:  make(chan Change, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching the file's directory and returns the notification
// channel. The directory rather than the file is watched because most
// editors replace files via rename, which drops a direct file watch.
func (w *Watcher) Start() (<-chan Change, error) {
	dir := filepath.Dir(w.filePath)
	if err := w.fsWatcher.Add(dir); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}

	if content, err := os.ReadFile(w.filePath); err == nil { //nolint:gosec // path is the opened document
		w.snapshot = string(content)
	}

	go w.loop()

	return w.onChange, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

// loop processes file system events with debouncing.
func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		pending bool
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if !w.isRelevantEvent(event) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
				pending = true
			} else {
				if !timer.Stop() {
					// Drain the timer channel if it already fired
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
				pending = true
			}

		case <-func() <-chan time.Time {
			if timer != nil {
				return timer.C
			}
			return nil
		}():
			if pending {
				w.notify()
				pending = false
			}

		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// notify diffs the file against the last snapshot and sends a summary.
// The send is non-blocking; an unread notification is superseded.
func (w *Watcher) notify() {
	change := Change{}

	content, err := os.ReadFile(w.filePath) //nolint:gosec // path is the opened document
	if err != nil {
		if os.IsNotExist(err) {
			change.Removed = true
		} else {
			log.Warn(log.CatWatcher, "Failed to read changed file", "path", w.filePath, "error", err.Error())
			return
		}
	} else {
		change.LinesAdded, change.LinesRemoved = diffLineCounts(w.snapshot, string(content))
		if change.LinesAdded == 0 && change.LinesRemoved == 0 {
			// Touch without content change; stay quiet.
			return
		}
		w.snapshot = string(content)
	}

	log.Debug(log.CatWatcher, "External change",
		"path", w.filePath, "added", change.LinesAdded, "removed", change.LinesRemoved, "gone", change.Removed)

	select {
	case w.onChange <- change:
	default:
	}
}

// isRelevantEvent checks if the event should trigger a refresh.
// Create and Rename matter because editors commonly write a temp file and
// rename it over the original.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	return filepath.Base(event.Name) == filepath.Base(w.filePath)
}

// diffLineCounts returns how many lines the new content adds and removes
// relative to the old content.
func diffLineCounts(oldContent, newContent string) (added, removed int) {
	dmp := diffmatchpatch.New()
	oldRunes, newRunes, lines := dmp.DiffLinesToRunes(oldContent, newContent)
	diffs := dmp.DiffMainRunes(oldRunes, newRunes, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	for _, d := range diffs {
		n := strings.Count(d.Text, "\n")
		if n == 0 && d.Text != "" {
			n = 1
		}
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += n
		case diffmatchpatch.DiffDelete:
			removed += n
		}
	}
	return added, removed
}
