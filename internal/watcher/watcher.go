// Package watcher signals when Flutter sources change, so watch mode can
// re-run the pipeline. Rapid event bursts (editor saves, git checkouts)
// collapse into a single trigger after a settle period.
package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Config controls what is watched and how events are coalesced.
type Config struct {
	// Root is the project directory to watch recursively.
	Root string

	// Patterns are base-name globs that count as source changes.
	Patterns []string

	// IgnoreDirs are directory names skipped entirely. The build output
	// tree must be here or the pipeline would trigger itself.
	IgnoreDirs []string

	// Settle is how long the tree must stay quiet before a trigger fires.
	Settle time.Duration
}

// DefaultConfig watches Dart sources and the pubspec manifest.
func DefaultConfig(root string) *Config {
	return &Config{
		Root:     root,
		Patterns: []string{"*.dart", "pubspec.yaml", "pubspec.lock"},
		IgnoreDirs: []string{
			".git",
			".dart_tool",
			".idea",
			".tailship",
			"build",
			"android",
			"ios",
		},
		Settle: 500 * time.Millisecond,
	}
}

// Watcher emits a trigger per settled burst of source changes.
type Watcher struct {
	cfg *Config
	fs  *fsnotify.Watcher

	triggers chan string
	errs     chan error
	done     chan struct{}

	mu    sync.Mutex
	timer *time.Timer
	last  string
}

// New creates a Watcher; call Start to begin receiving triggers.
func New(cfg *Config) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		cfg:      cfg,
		fs:       fsWatcher,
		triggers: make(chan string, 1),
		errs:     make(chan error, 10),
		done:     make(chan struct{}),
	}, nil
}

// Start registers the directory tree and begins processing events.
func (w *Watcher) Start() error {
	if err := w.addRecursive(w.cfg.Root); err != nil {
		return err
	}
	go w.loop()
	return nil
}

// Triggers delivers the path that caused each settled rebuild signal.
func (w *Watcher) Triggers() <-chan string {
	return w.triggers
}

// Errors delivers non-fatal watch errors.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	close(w.done)
	return w.fs.Close()
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if w.ignoredDir(info.Name()) && path != dir {
			return filepath.SkipDir
		}
		return w.fs.Add(path)
	})
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	// Newly created directories need to be watched too.
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !w.ignoredDir(info.Name()) {
				_ = w.addRecursive(event.Name)
			}
			return
		}
	}

	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return
	}
	if !w.matches(event.Name) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.last = event.Name
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.cfg.Settle, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	path := w.last
	w.mu.Unlock()

	select {
	case <-w.done:
	case w.triggers <- path:
	default:
		// A trigger is already pending; the rebuild will pick up this
		// change anyway.
	}
}

func (w *Watcher) matches(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range w.cfg.Patterns {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

func (w *Watcher) ignoredDir(name string) bool {
	for _, ignore := range w.cfg.IgnoreDirs {
		if name == ignore {
			return true
		}
	}
	return false
}
