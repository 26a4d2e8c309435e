// Package watch calls back when watched files are written.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a path must stay quiet before onChange runs.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches files through their parent directories, so a file that
// an editor saves by renaming a new copy over it keeps being watched.
type Watcher struct {
	fw *fsnotify.Watcher
	db *debouncer

	mu    sync.Mutex
	files map[string]bool
	dirs  map[string]bool
}

// New returns a Watcher that calls onChange with the absolute path of every
// written file, once per burst of writes.
func New(onChange func(path string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	return &Watcher{
		fw:    fw,
		db:    newDebouncer(onChange),
		files: make(map[string]bool),
		dirs:  make(map[string]bool),
	}, nil
}

// SetDebounce changes the quiet period; call before Run.
func (w *Watcher) SetDebounce(d time.Duration) { w.db.setDelay(d) }

// Add starts watching path, which must exist.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if _, err := filepath.EvalSymlinks(abs); err != nil {
		return fmt.Errorf("watch %s: %w", abs, err)
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.dirs[dir] {
		if err := w.fw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	w.files[abs] = true
	return nil
}

// Run handles events until ctx is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.db.stop()
			return nil
		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch: %w", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return
	}
	path := filepath.Clean(ev.Name)
	w.mu.Lock()
	watched := w.files[path]
	w.mu.Unlock()
	if watched {
		w.db.fire(path)
	}
}

// Close stops pending callbacks and releases the watcher.
func (w *Watcher) Close() error {
	w.db.stop()
	return w.fw.Close()
}

// debouncer coalesces bursts of events per path into one callback.
type debouncer struct {
	mu       sync.Mutex
	delay    time.Duration
	timers   map[string]*time.Timer
	onChange func(string)
}

func newDebouncer(onChange func(string)) *debouncer {
	return &debouncer{delay: DefaultDebounce, timers: make(map[string]*time.Timer), onChange: onChange}
}

func (d *debouncer) setDelay(delay time.Duration) {
	d.mu.Lock()
	d.delay = delay
	d.mu.Unlock()
}

func (d *debouncer) fire(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.timers[path]; ok {
		t.Stop()
	}
	d.timers[path] = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		delete(d.timers, path)
		d.mu.Unlock()
		d.onChange(path)
	})
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for p, t := range d.timers {
		t.Stop()
		delete(d.timers, p)
	}
}
