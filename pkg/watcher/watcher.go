// Package watcher provides debounced file watching, used to live-reload a
// sheet options file while tuning gesture constants.
package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kraitsura/sheet/pkg/task"
)

// DefaultDebounce is the default coalescing window for change events.
const DefaultDebounce = 250 * time.Millisecond

// FileWatcher watches a single file and invokes a callback after changes
// settle. Rapid write bursts (editors, atomic renames) coalesce into one
// invocation.
type FileWatcher struct {
	path     string
	fsw      *fsnotify.Watcher
	debounce time.Duration
	pending  task.Single
	done     chan struct{}
	stopped  chan struct{}
}

// Watch starts watching path, calling onChange after each settled change.
// The watch is attached to the parent directory so atomic replace-by-rename
// saves keep working. If debounce is 0, DefaultDebounce is used.
func Watch(path string, debounce time.Duration, onChange func()) (*FileWatcher, error) {
	if debounce == 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watcher: %w", err)
	}

	fw := &FileWatcher{
		path:     abs,
		fsw:      fsw,
		debounce: debounce,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go fw.run(onChange)
	return fw, nil
}

func (fw *FileWatcher) run(onChange func()) {
	defer close(fw.stopped)
	for {
		select {
		case ev, ok := <-fw.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != fw.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			fw.pending.Schedule(fw.debounce, onChange)
		case _, ok := <-fw.fsw.Errors:
			if !ok {
				return
			}
			// Watch errors are not actionable here; the next event
			// still triggers a reload.
		case <-fw.done:
			return
		}
	}
}

// Close stops the watcher and cancels any pending callback. It waits for the
// event loop to drain so no callback can be scheduled after it returns.
func (fw *FileWatcher) Close() error {
	close(fw.done)
	err := fw.fsw.Close()
	<-fw.stopped
	fw.pending.Cancel()
	return err
}
