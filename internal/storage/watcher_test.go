package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type fakeReloader struct {
	path    string
	reloads chan struct{}
}

func (f *fakeReloader) Path() string { return f.path }

func (f *fakeReloader) Reload() error {
	f.reloads <- struct{}{}
	return nil
}

func TestWatcherReloadsEditedTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "games.csv")
	if err := os.WriteFile(path, []byte("id\n"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	table := &fakeReloader{path: path, reloads: make(chan struct{}, 10)}
	w, err := NewWatcher(10*time.Millisecond, table)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Watch(ctx)

	// Unrelated files are ignored.
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644)
	if err := os.WriteFile(path, []byte("id\n1\n"), 0o644); err != nil {
		t.Fatalf("Failed to edit file: %v", err)
	}

	select {
	case <-table.reloads:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected table to be reloaded after edit")
	}
}

func TestWatcherStop(t *testing.T) {
	table := &fakeReloader{path: filepath.Join(t.TempDir(), "games.csv"), reloads: make(chan struct{}, 1)}
	w, err := NewWatcher(0, table)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- w.Watch(context.Background()) }()

	w.Stop()
	w.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected nil error after Stop, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after Stop")
	}
}
