// Package watch recompiles a wireframe source file whenever it changes and
// pushes the result to preview clients. Compile errors are delivered like
// results: the preview shows them, the watcher keeps running.
package watch

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the bursts of events editors emit per save.
const debounceDelay = 100 * time.Millisecond

// Watch invokes onChange (already debounced) whenever path's content
// changes. The directory is watched rather than the file itself because
// many editors save by rename, which drops a file-level watch. The
// returned stop function releases the watcher.
func Watch(path string, onChange func()) (stop func() error, err error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, err
	}

	deb := newDebouncer(debounceDelay, onChange)
	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Name != abs {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					deb.trigger()
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return watcher.Close, nil
}

// debouncer runs fn once per quiet period: each trigger resets the timer.
type debouncer struct {
	delay time.Duration
	fn    func()
	timer *time.Timer
}

func newDebouncer(delay time.Duration, fn func()) *debouncer {
	return &debouncer{delay: delay, fn: fn}
}

func (d *debouncer) trigger() {
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fn)
}
