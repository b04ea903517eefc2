package config

import (
	"context"
	"log"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher is a Config connected with a file path watcher that reloads the
// file when it is modified, for long-running consumers such as the serve
// subcommand. A Watcher is safe for concurrent use.
type Watcher struct {
	path string
	fw   *fsnotify.Watcher

	μ         sync.Mutex
	cfg       *Config
	hasUpdate bool
}

// NewWatcher creates a watcher that automatically reloads the config at path
// when that path is modified. The path need not exist yet; NewWatcher treats
// a missing file the same as an empty config. Run watches only a file that
// exists when it starts; a file created later is not picked up.
func NewWatcher(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	var c Config
	if err := c.Load(path); err != nil && !os.IsNotExist(err) {
		fw.Close()
		return nil, err
	}
	return &Watcher{path: path, fw: fw, cfg: &c}, nil
}

// Config returns the current configuration. If an update is pending, Config
// tries to load it first, but falls back to the existing value on error so
// a transient or partial write never takes down a running server.
func (w *Watcher) Config() *Config {
	w.μ.Lock()
	defer w.μ.Unlock()

	for w.hasUpdate {
		var c Config
		if err := c.Load(w.path); err != nil {
			if !os.IsNotExist(err) {
				log.Printf("WARNING: reload config: %v (skipped)", err)
			}
			w.hasUpdate = false
			break
		}
		log.Printf("Reloaded configuration %q", w.path)
		w.hasUpdate = false
		w.cfg = &c
	}
	return w.cfg
}

// Run monitors for changes to the watched path, marking an update pending
// whenever the file is written or created. Run should be started in its own
// goroutine; it exits when the watcher closes or ctx ends.
func (w *Watcher) Run(ctx context.Context) {
	w.fw.Add(w.path)
	defer w.fw.Close()

	for {
		select {
		case evt, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if evt.Op&fsnotify.Rename != 0 {
				log.Printf("Config %q has moved; stopping the watcher", w.path)
				return
			} else if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Chmod) == 0 {
				continue
			}
			w.μ.Lock()
			w.hasUpdate = true
			w.μ.Unlock()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			log.Printf("WARNING: error watching %q: %v", w.path, err)
		case <-ctx.Done():
			return
		}
	}
}
