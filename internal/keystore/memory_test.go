package keystore

import (
	"errors"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemory()

	if _, err := store.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}

	if err := store.Set("a", "1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := store.Get("a")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "1" {
		t.Errorf("Get() = %q, want 1", got)
	}

	// Overwrite.
	store.Set("a", "2")
	if got, _ := store.Get("a"); got != "2" {
		t.Errorf("Get() after overwrite = %q, want 2", got)
	}

	if err := store.Delete("a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get("a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}

	// Deleting an absent slot is not an error.
	if err := store.Delete("a"); err != nil {
		t.Errorf("Delete(absent) error = %v", err)
	}
}
