package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/philipparndt/probeview/internal/logging"
)

// FileWatcher watches files for changes and triggers debounced callbacks.
// The parent directory is watched rather than the file itself, so editors
// that save by renaming a temporary file keep triggering events.
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	mu        sync.Mutex
	callbacks map[string]func(string)
	dirs      map[string]int
	debounce  time.Duration
	timers    map[string]*time.Timer
	log       logging.Logger
	started   bool
	done      chan struct{} // closed when the event goroutine exits
}

// NewFileWatcher creates a new file watcher
func NewFileWatcher(debounce time.Duration, log logging.Logger) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &FileWatcher{
		watcher:   watcher,
		callbacks: make(map[string]func(string)),
		dirs:      make(map[string]int),
		debounce:  debounce,
		timers:    make(map[string]*time.Timer),
		log:       logging.OrNop(log),
		done:      make(chan struct{}),
	}, nil
}

// Watch registers callback for the given files
func (fw *FileWatcher) Watch(files []string, callback func(string)) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}
		if _, exists := fw.callbacks[absPath]; exists {
			fw.callbacks[absPath] = callback
			continue
		}

		dir := filepath.Dir(absPath)
		if fw.dirs[dir] == 0 {
			if err := fw.watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
		}
		fw.dirs[dir]++
		fw.callbacks[absPath] = callback
		fw.log.Debugf("watching %s", absPath)
	}

	return nil
}

// Start begins watching for file changes
func (fw *FileWatcher) Start() {
	fw.mu.Lock()
	if fw.started {
		fw.mu.Unlock()
		return
	}
	fw.started = true
	fw.mu.Unlock()

	go func() {
		defer close(fw.done)
		for {
			select {
			case event, ok := <-fw.watcher.Events:
				if !ok {
					return
				}

				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					fw.handleFileChange(event.Name)
				}

			case err, ok := <-fw.watcher.Errors:
				if !ok {
					return
				}
				fw.log.Warnf("watcher error: %v", err)
			}
		}
	}()
}

// handleFileChange handles a file change event with debouncing
func (fw *FileWatcher) handleFileChange(filePath string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return
	}
	callback, exists := fw.callbacks[absPath]
	if !exists {
		return
	}

	if timer, exists := fw.timers[absPath]; exists {
		timer.Stop()
	}

	fw.timers[absPath] = time.AfterFunc(fw.debounce, func() {
		fw.log.Debugf("changed: %s", absPath)
		callback(absPath)
	})
}

// Close stops the watcher and pending callbacks. Once it returns, no further
// events are handled.
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	for _, timer := range fw.timers {
		timer.Stop()
	}
	started := fw.started
	fw.mu.Unlock()

	err := fw.watcher.Close()
	if started {
		<-fw.done
	}
	return err
}

// RemoveAll removes all watched files
func (fw *FileWatcher) RemoveAll() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for dir := range fw.dirs {
		if err := fw.watcher.Remove(dir); err != nil {
			return err
		}
	}
	for _, timer := range fw.timers {
		timer.Stop()
	}

	fw.callbacks = make(map[string]func(string))
	fw.dirs = make(map[string]int)
	fw.timers = make(map[string]*time.Timer)
	return nil
}
