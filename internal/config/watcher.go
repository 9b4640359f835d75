package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// ReloadHandler is called with the freshly parsed configuration after a
// change settles. Parse failures are logged and the handler is not
// called; the previous configuration stays active.
type ReloadHandler func(*Config)

// Watcher reloads a configuration file when it changes on disk.
// Editors typically replace the file via rename, so the parent
// directory is watched and events filtered by name. Rapid event bursts
// are debounced into a single reload.
type Watcher struct {
	log zerolog.Logger

	path    string
	dir     string
	handler ReloadHandler

	fsw      *fsnotify.Watcher
	debounce time.Duration

	mu     sync.Mutex
	closed bool
	done   chan struct{}
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher for the given configuration file.
func NewWatcher(path string, handler ReloadHandler, logger *zerolog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fs watcher: %w", err)
	}

	w := &Watcher{
		path:     abs,
		dir:      filepath.Dir(abs),
		handler:  handler,
		fsw:      fsw,
		debounce: 250 * time.Millisecond,
		done:     make(chan struct{}),
	}
	if logger != nil {
		w.log = logger.With().Str("subsystem", "config").Logger()
	} else {
		w.log = zerolog.Nop()
	}

	if err := fsw.Add(w.dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", w.dir, err)
	}

	w.wg.Add(1)
	go w.loop()

	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.done)
	w.mu.Unlock()

	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

// loop coalesces change events and fires reloads once the file settles.
func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Name != w.path {
				continue
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			w.reload()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("fs watcher error")
		}
	}
}

// reload parses the file and hands it to the handler. A parse failure
// keeps the previous configuration.
func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.log.Error().Err(err).Str("path", w.path).Msg("config reload failed, keeping previous")
		return
	}
	for _, verr := range cfg.Validate() {
		w.log.Warn().Err(verr).Msg("config item invalid, skipping it")
	}
	w.log.Info().Str("path", w.path).Msg("configuration reloaded")
	w.handler(cfg)
}
