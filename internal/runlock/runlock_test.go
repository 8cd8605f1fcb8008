package runlock_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/AquaHorizonGaming/digitarr/internal/runlock"
)

func TestAcquireAndRelease(t *testing.T) {
	dir := t.TempDir()

	lock, err := runlock.Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	if lock.Path() != filepath.Join(dir, "digitarr.lock") {
		t.Fatalf("unexpected lock path %q", lock.Path())
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release returned error: %v", err)
	}
}

func TestAcquireSecondHolderGetsBusy(t *testing.T) {
	dir := t.TempDir()

	lock, err := runlock.Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	t.Cleanup(func() { _ = lock.Release() })

	if _, err := runlock.Acquire(dir); !errors.Is(err, runlock.ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
}

func TestAcquireCreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "locks")

	lock, err := runlock.Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release returned error: %v", err)
	}
}
