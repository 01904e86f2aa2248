package state

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/Paintersrp/curio/internal/pathutil"
)

// DataWatcher observes a catalog data directory and reports changed JSON
// documents so in-memory state can be refreshed lazily.
type DataWatcher struct {
	watcher  *fsnotify.Watcher
	dataDir  string
	done     chan struct{}
	once     sync.Once
	mu       sync.Mutex
	onChange func(string)
	onClose  func()
}

func NewDataWatcher(dataDir string) (*DataWatcher, error) {
	normalized := pathutil.NormalizePath(dataDir)
	if normalized == "" {
		return nil, errors.New("data directory cannot be empty")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watcher := &DataWatcher{
		watcher: w,
		dataDir: normalized,
		done:    make(chan struct{}),
	}

	if err := watcher.addRecursive(normalized); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	go watcher.run()

	return watcher, nil
}

func (w *DataWatcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.addRecursive(event.Name)
					continue
				}
			}

			if !w.isRelevant(event) {
				continue
			}

			rel, err := w.relativePath(event.Name)
			if err != nil || rel == "" {
				continue
			}

			if fn := w.changeFn(); fn != nil {
				fn(rel)
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *DataWatcher) Close() error {
	if w == nil {
		return nil
	}

	var closeErr error
	w.once.Do(func() {
		close(w.done)
		closeErr = w.watcher.Close()
		if fn := w.closeFn(); fn != nil {
			fn()
		}
	})

	return closeErr
}

// OnChange registers a callback that receives relative document paths whenever
// the watcher detects a relevant change.
func (w *DataWatcher) OnChange(fn func(string)) {
	if w == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// OnClose registers a callback that is invoked exactly once when the watcher
// shuts down.
func (w *DataWatcher) OnClose(fn func()) {
	if w == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onClose = fn
}

func (w *DataWatcher) changeFn() func(string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.onChange
}

func (w *DataWatcher) closeFn() func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.onClose
}

func (w *DataWatcher) addRecursive(root string) error {
	normalized := pathutil.NormalizePath(root)
	return filepath.WalkDir(normalized, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return filepath.SkipDir
			}
			return err
		}

		if !d.IsDir() {
			return nil
		}

		return w.watcher.Add(path)
	})
}

func (w *DataWatcher) isRelevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	rel, err := w.relativePath(event.Name)
	if err != nil || rel == "" {
		return false
	}

	return strings.EqualFold(filepath.Ext(rel), ".json")
}

func (w *DataWatcher) relativePath(path string) (string, error) {
	normalized := pathutil.NormalizePath(path)
	rel, err := pathutil.DataRelative(w.dataDir, normalized)
	if err != nil {
		return "", err
	}

	if rel == "." || rel == "" || strings.HasPrefix(rel, "..") {
		return "", nil
	}

	return rel, nil
}
