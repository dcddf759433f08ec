package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherDeliversSettledBatch(t *testing.T) {
	root := t.TempDir()

	batches := make(chan []string, 1)
	w, err := New(root, 50*time.Millisecond, func(paths []string) {
		select {
		case batches <- paths:
		default:
		}
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		_ = w.Start(ctx)
		close(done)
	}()

	// Give the watch a moment to establish before writing
	time.Sleep(100 * time.Millisecond)

	for _, name := range []string{"a.py", "b.py"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte("x = 1\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case batch := <-batches:
		got := make(map[string]bool)
		for _, p := range batch {
			got[p] = true
		}
		if !got["a.py"] || !got["b.py"] {
			t.Errorf("batch = %v, want both a.py and b.py", batch)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for batch")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}

func TestWatcherSkipsGitDir(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".git", "objects"), 0o755); err != nil {
		t.Fatal(err)
	}

	batches := make(chan []string, 4)
	w, err := New(root, 50*time.Millisecond, func(paths []string) {
		batches <- paths
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Start(ctx) }()

	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(root, ".git", "index.lock"), []byte{}, 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case batch := <-batches:
		t.Errorf("unexpected batch for .git writes: %v", batch)
	case <-time.After(300 * time.Millisecond):
		// No batch delivered for .git internals
	}
}
