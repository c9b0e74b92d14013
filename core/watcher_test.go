package core

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestWatcher_NotifiesOnChange(t *testing.T) {
	root := t.TempDir()
	writeTempFile(t, root, "pages/home.html", "old")

	changed := make(chan []string, 4)
	w, err := NewWatcher([]string{root}, func(paths []string) { changed <- paths }, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	if err := os.WriteFile(filepath.Join(root, "pages", "home.html"), []byte("new"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case paths := <-changed:
		want := filepath.Join(root, "pages", "home.html")
		found := false
		for _, p := range paths {
			if p == want {
				found = true
			}
		}
		if !found {
			t.Errorf("expected %s in changed paths, got %v", want, paths)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("expected change notification")
	}
}

func TestWatcher_WatchesNestedDirsAndSkipsMissingRoots(t *testing.T) {
	root := t.TempDir()
	writeTempFile(t, root, "a/b/c.html", "x")

	w, err := NewWatcher([]string{root, "", filepath.Join(root, "missing")}, func([]string) {}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer w.fs.Close()

	watched := map[string]bool{}
	for _, p := range w.WatchList() {
		watched[p] = true
	}
	for _, want := range []string{root, filepath.Join(root, "a"), filepath.Join(root, "a", "b")} {
		if !watched[want] {
			t.Errorf("expected %s to be watched, got %v", want, w.WatchList())
		}
	}
}

func TestIgnoreEvent(t *testing.T) {
	tests := []struct {
		event  fsnotify.Event
		ignore bool
	}{
		{fsnotify.Event{Name: "views/home.html", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: "views/home.html", Op: fsnotify.Chmod}, true},
		{fsnotify.Event{Name: "views/.home.html.swp", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "views/home.html~", Op: fsnotify.Create}, true},
	}

	for _, test := range tests {
		if got := ignoreEvent(test.event); got != test.ignore {
			t.Errorf("ignoreEvent(%v) = %v, want %v", test.event, got, test.ignore)
		}
	}
}
