// Package watch reports changes to translation files so that loaded
// documents can be refreshed when they are edited outside the manager.
package watch

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay is how long the watcher waits for a burst of events to
// settle before reporting it.
const DefaultDelay = 150 * time.Millisecond

// Watcher watches directories for JSON file changes.
type Watcher struct {
	w     *fsnotify.Watcher
	delay time.Duration
	// OnError receives watcher errors. May be nil.
	OnError func(error)
}

// New watches each of dirs.
func New(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, err
		}
	}
	return &Watcher{w: w, delay: DefaultDelay}, nil
}

// SetDelay changes the settle delay.
func (w *Watcher) SetDelay(d time.Duration) { w.delay = d }

// Close stops watching.
func (w *Watcher) Close() error { return w.w.Close() }

// relevant reports whether an event touches a JSON file.
func relevant(event fsnotify.Event) bool {
	if !strings.EqualFold(filepath.Ext(event.Name), ".json") {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

// Run calls fn with the changed file names once each burst of changes has
// settled. It returns when ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context, fn func(changed []string)) error {
	var (
		pending = make(map[string]bool)
		timer   *time.Timer
		fire    <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.w.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			pending[event.Name] = true
			if timer == nil {
				timer = time.NewTimer(w.delay)
			} else {
				timer.Reset(w.delay)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
			}
			sort.Strings(changed)
			pending = make(map[string]bool)
			fn(changed)
		case err, ok := <-w.w.Errors:
			if !ok {
				return nil
			}
			if w.OnError != nil {
				w.OnError(err)
			}
		}
	}
}
