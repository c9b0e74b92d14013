package core

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// Watcher calls onChange once per burst of file events under its roots, with
// the paths touched during the burst.
type Watcher struct {
	fs       *fsnotify.Watcher
	onChange func(changed []string)
	logger   *slog.Logger
	debounce time.Duration
}

// NewWatcher watches every directory below each existing root. Missing roots
// are skipped.
func NewWatcher(roots []string, onChange func(changed []string), logger *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{fs: fw, onChange: onChange, logger: logger, debounce: reloadDebounce}
	for _, root := range roots {
		if root == "" {
			continue
		}
		if _, err := os.Stat(root); err != nil {
			continue
		}
		if err := w.addTree(root); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fs.Add(path)
		}
		return nil
	})
}

func (w *Watcher) WatchList() []string {
	return w.fs.WatchList()
}

// Run delivers change notifications until ctx is done, then closes the
// watcher.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fs.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	var pending []string
	seen := map[string]bool{}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ignoreEvent(event) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.addTree(event.Name)
				}
			}
			w.logger.Debug("file changed", "path", event.Name, "op", event.Op.String())
			if !seen[event.Name] {
				seen[event.Name] = true
				pending = append(pending, event.Name)
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			changed := pending
			pending = nil
			seen = map[string]bool{}
			w.onChange(changed)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

func ignoreEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return true
	}
	base := filepath.Base(event.Name)
	return strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~")
}
