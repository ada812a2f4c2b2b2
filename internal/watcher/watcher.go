// Package watcher reloads the system prompt when its file changes on disk.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"aegnt-unltd/pkg/log"
)

const (
	DefaultDebounce = 500 * time.Millisecond

	LogPrefix = "internal.watcher.Run"
)

var ErrPathRequired = errors.New("watcher: path is required")

// Reloader re-reads the prompt file. brain.Dispatcher satisfies it.
type Reloader interface {
	LoadSystemPrompt(ctx context.Context, path string) error
}

// Watcher debounces filesystem events on one file into reloads.
type Watcher struct {
	l        log.Logger
	path     string
	target   Reloader
	debounce time.Duration
	fs       *fsnotify.Watcher
}

// New starts watching the directory holding path. Events are buffered by
// fsnotify until Run consumes them.
func New(l log.Logger, path string, target Reloader, debounce time.Duration) (*Watcher, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, ErrPathRequired
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watcher: %w", err)
	}
	// Watch the directory so editors that replace the file by rename are seen.
	if err := fs.Add(filepath.Dir(path)); err != nil {
		_ = fs.Close()
		return nil, fmt.Errorf("watcher: add %s: %w", filepath.Dir(path), err)
	}

	return &Watcher{
		l:        l,
		path:     filepath.Clean(path),
		target:   target,
		debounce: debounce,
		fs:       fs,
	}, nil
}

// Run blocks until ctx is done, reloading after each quiet period that
// follows a change to the file.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	w.l.Infof(ctx, "%s: watching %s", LogPrefix, w.path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.l.Warnf(ctx, "%s: %v", LogPrefix, err)

		case <-fire:
			fire = nil
			w.reload(ctx)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Clean(ev.Name) == w.path
}

func (w *Watcher) reload(ctx context.Context) {
	if err := w.target.LoadSystemPrompt(ctx, w.path); err != nil {
		w.l.Warnf(ctx, "%s: reload failed, keeping previous prompt: %v", LogPrefix, err)
		return
	}
	w.l.Infof(ctx, "%s: system prompt reloaded from %s", LogPrefix, w.path)
}
