package watch

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestRelevant(t *testing.T) {
	tests := []struct {
		event fsnotify.Event
		want  bool
	}{
		{fsnotify.Event{Name: "/i18n/en.json", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/i18n/EN.JSON", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "/i18n/en.json", Op: fsnotify.Remove}, true},
		{fsnotify.Event{Name: "/i18n/en.json", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/i18n/notes.txt", Op: fsnotify.Write}, false},
	}

	for _, tc := range tests {
		t.Run(tc.event.String(), func(t *testing.T) {
			if got := relevant(tc.event); got != tc.want {
				t.Errorf("relevant(%v) = %v, want %v", tc.event, got, tc.want)
			}
		})
	}
}

func TestRunCoalescesChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	w.SetDelay(100 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(changed []string) { got <- changed })
	}()

	path := filepath.Join(dir, "en.json")
	for _, content := range []string{`{}`, `{"a":"b"}`} {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case changed := <-got:
		if want := []string{path}; !reflect.DeepEqual(changed, want) {
			t.Errorf("changed = %v, want %v", changed, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run returned %v, want %v", err, context.Canceled)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestNewMissingDirectory(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("New succeeded on a missing directory")
	}
}
