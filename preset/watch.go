package preset

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/fx"
)

// DefaultDebounce is how long a watcher waits after the last change before
// reloading.
const DefaultDebounce = 200 * time.Millisecond

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce sets the quiet period after the last file event.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// Watcher reloads a preset file whenever it changes on disk.
//
// The directory holding the file is watched rather than the file itself,
// so editors that save by renaming a temporary file are picked up.
// Reloaded presets are delivered on [Watcher.Presets]; the receiver is
// expected to hand them to the goroutine driving the scene.
type Watcher struct {
	path     string
	file     string
	debounce time.Duration

	fsw     *fsnotify.Watcher
	presets chan *Preset
	errs    chan error

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// Watch starts watching path. The watcher stops when ctx is done or
// [Watcher.Close] is called; both close the channels it delivers on.
func Watch(ctx context.Context, path string, opts ...WatchOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("preset: resolve %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("preset: create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("preset: watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:     abs,
		file:     filepath.Base(abs),
		debounce: DefaultDebounce,
		fsw:      fsw,
		presets:  make(chan *Preset),
		errs:     make(chan error, 1),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	fx.Logger().Debug("preset: watching", "path", abs, "debounce", w.debounce)

	w.wg.Add(1)
	go w.loop(ctx)
	return w, nil
}

// Presets delivers every successfully reloaded preset.
func (w *Watcher) Presets() <-chan *Preset { return w.presets }

// Errors delivers reload failures. Failures that arrive while an earlier
// one is still unread are dropped.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Close stops the watcher and waits for it to exit.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		w.wg.Wait()
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()
	defer close(w.errs)
	defer close(w.presets)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != w.file {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				if ev.Has(fsnotify.Remove) {
					fx.Logger().Warn("preset: file removed", "path", ev.Name)
				}
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			p, err := Load(w.path)
			if err != nil {
				fx.Logger().Warn("preset: reload failed", "path", w.path, "error", err)
				select {
				case w.errs <- err:
				default:
				}
				continue
			}
			fx.Logger().Debug("preset: reloaded", "path", w.path, "steps", len(p.Steps))
			select {
			case w.presets <- p:
			case <-ctx.Done():
				return
			case <-w.done:
				return
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			fx.Logger().Error("preset: watch error", "error", err)
		}
	}
}
