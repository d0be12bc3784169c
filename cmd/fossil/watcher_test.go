package main

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCoalesces(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(100*time.Millisecond, func() { calls.Add(1) })

	for i := 0; i < 5; i++ {
		d.Trigger()
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(400 * time.Millisecond)

	if got := calls.Load(); got != 1 {
		t.Errorf("action ran %d times, want 1", got)
	}
}

func TestDebouncerCancel(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(30*time.Millisecond, func() { calls.Add(1) })

	d.Trigger()
	d.Cancel()
	time.Sleep(100 * time.Millisecond)

	if got := calls.Load(); got != 0 {
		t.Errorf("action ran %d times after Cancel, want 0", got)
	}
}

func TestFileWatcherPoll(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.csv")

	fw := &FileWatcher{path: path, debouncer: NewDebouncer(time.Hour, func() {})}
	log := testLogger()

	if fw.poll(log) {
		t.Error("poll() reported a change for a missing file")
	}

	if err := os.WriteFile(path, []byte("a"), 0o600); err != nil {
		t.Fatal(err)
	}
	if !fw.poll(log) {
		t.Error("poll() missed the file appearing")
	}
	if fw.poll(log) {
		t.Error("poll() reported a change for an unchanged file")
	}

	if err := os.WriteFile(path, []byte("abc"), 0o600); err != nil {
		t.Fatal(err)
	}
	if !fw.poll(log) {
		t.Error("poll() missed a size change")
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if !fw.poll(log) {
		t.Error("poll() missed the file disappearing")
	}
}

func TestFileWatcherDetectsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.csv")
	if err := os.WriteFile(path, []byte("a"), 0o600); err != nil {
		t.Fatal(err)
	}

	changed := make(chan struct{}, 1)
	fw, err := NewFileWatcher(path, 20*time.Millisecond, 20*time.Millisecond, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("NewFileWatcher() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fw.Start(ctx, testLogger())
	defer func() { _ = fw.Close() }()

	// Give the watcher goroutine a moment before writing.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte("abcdef"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification within 5s")
	}
}
