package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/backlogtree/pkg/observability"
)

// Watcher signals on Changes whenever the watched file is written, created,
// renamed over or removed.
//
// The parent directory is watched rather than the file itself, so editors
// that save by writing a temp file and renaming it keep being tracked.
type Watcher struct {
	path     string
	fs       *fsnotify.Watcher
	debounce *Debouncer
	changes  chan struct{}
	errs     chan error

	closeOnce sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

// New starts watching path. A debounce of zero means DefaultDebounce.
func New(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:     abs,
		fs:       fw,
		debounce: NewDebouncer(debounce),
		changes:  make(chan struct{}, 1),
		errs:     make(chan error, 1),
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Changes delivers one value per debounced burst. A slow reader sees at most
// one pending change.
func (w *Watcher) Changes() <-chan struct{} { return w.changes }

// Errors delivers watcher errors. Only the most recent unread error is kept.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		w.debounce.Cancel()
		err = w.fs.Close()
		w.wg.Wait()
	})
	return err
}

// Run calls fn after every change until ctx is done or the watcher is
// closed. Errors from fn are passed to the watch hooks and otherwise ignored.
func (w *Watcher) Run(ctx context.Context, fn func(context.Context) error) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case <-w.changes:
			start := time.Now()
			err := fn(ctx)
			observability.Watch().OnReload(ctx, w.path, time.Since(start), err)
		}
	}
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			observability.Watch().OnFileChange(context.Background(), w.path)
			w.debounce.Trigger(w.notify)
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

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove)
}

func (w *Watcher) notify() {
	select {
	case <-w.done:
	case w.changes <- struct{}{}:
	default:
	}
}
