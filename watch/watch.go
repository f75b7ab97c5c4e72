// Package watch reports changes made to item documents behind the back of the store.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDelay is the quiescence window of a Debouncer created with a zero delay.
const DefaultDelay = 100 * time.Millisecond

// Debouncer collapses bursts of triggers into a single call of its function.
// The function runs once no trigger has been received for the delay.
type Debouncer struct {
	delay time.Duration
	fn    func()

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// NewDebouncer returns a debouncer calling fn. A delay of zero selects DefaultDelay.
func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}

	return &Debouncer{
		delay: delay,
		fn:    fn,
	}
}

// Trigger restarts the quiescence window.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.fn()
}

// Stop cancels a pending call. Later triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Watcher calls its function after documents with the given extension are changed in a set of
// directories.
type Watcher struct {
	dirs      []string
	ext       string
	logger    zerolog.Logger
	debouncer *Debouncer

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New returns a watcher over dirs. Directories which do not exist are skipped on Start.
func New(dirs []string, ext string, delay time.Duration, logger zerolog.Logger, onChange func()) *Watcher {
	return &Watcher{
		dirs:      dirs,
		ext:       ext,
		logger:    logger,
		debouncer: NewDebouncer(delay, onChange),
	}
}

// Start begins watching. It returns an error if no directory could be watched.
func (w *Watcher) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("Start: create watcher: %w", err)
	}

	watched := 0
	for _, dir := range w.dirs {
		err := filepath.WalkDir(dir, func(path string, entry os.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if !entry.IsDir() {
				return nil
			}

			if err := watcher.Add(path); err != nil {
				return err
			}
			watched++
			return nil
		})
		if err != nil {
			w.logger.Debug().Err(err).Str("dir", dir).Msg("not watching directory")
		}
	}

	if watched == 0 {
		watcher.Close()
		return fmt.Errorf("Start: no directory to watch in %s", strings.Join(w.dirs, ", "))
	}

	w.watcher = watcher
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	go w.watchLoop()

	w.logger.Info().Strs("dirs", w.dirs).Msg("watching item documents")
	return nil
}

// Stop stops watching and cancels a pending notification.
func (w *Watcher) Stop() {
	w.debouncer.Stop()
	if w.watcher == nil {
		return
	}

	close(w.stopCh)
	w.watcher.Close()
	<-w.doneCh
	w.watcher = nil
}

func (w *Watcher) watchLoop() {
	defer close(w.doneCh)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.watcher.Add(event.Name); err != nil {
						w.logger.Error().Err(err).Str("dir", event.Name).Msg("failed to watch new directory")
					}
					continue
				}
			}

			if !w.relevant(event) {
				continue
			}

			w.logger.Debug().
				Str("event", event.Op.String()).
				Str("file", event.Name).
				Msg("item document changed")
			w.debouncer.Trigger()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error().Err(err).Msg("file watcher error")

		case <-w.stopCh:
			return
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") || filepath.Ext(name) != w.ext {
		return false
	}

	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}
