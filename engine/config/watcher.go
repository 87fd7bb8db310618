package config

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/YannUFLL/HumanGL/engine/core"
)

// Watcher reloads a config file whenever it changes on disk and publishes
// the parsed result. Files that fail to parse are reported on Errors and the
// previous configuration stays in effect.
type Watcher struct {
	path string

	fsnotify  *fsnotify.Watcher
	configs   chan *Config
	errors    chan error
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewWatcher watches the directory holding path, so editors that replace the
// file through a rename are still picked up.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatch.Add(filepath.Dir(abs)); err != nil {
		fsWatch.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		fsnotify: fsWatch,
		configs:  make(chan *Config, 1),
		errors:   make(chan error, 1),
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.start()
	return w, nil
}

// Configs delivers each successfully reloaded configuration. Only the most
// recent one is kept if the reader falls behind.
func (w *Watcher) Configs() <-chan *Config {
	return w.configs
}

func (w *Watcher) Errors() <-chan error {
	return w.errors
}

func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		w.wg.Wait()
		err = w.fsnotify.Close()
	})
	return err
}

func (w *Watcher) start() {
	defer w.wg.Done()
	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != w.path {
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			w.reload()

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("config watcher: %s", err)
			w.publishError(err)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		core.LogWarn("config reload of %s failed: %s", w.path, err)
		w.publishError(err)
		return
	}
	core.LogInfo("config reloaded from %s", w.path)

	// Drop a stale, unread config in favour of the new one.
	select {
	case <-w.configs:
	default:
	}
	select {
	case w.configs <- cfg:
	case <-w.done:
	}
}

func (w *Watcher) publishError(err error) {
	if errors.Is(err, fsnotify.ErrEventOverflow) {
		core.LogWarn("config watcher dropped events")
	}
	select {
	case w.errors <- err:
	default:
	}
}
