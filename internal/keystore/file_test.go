package keystore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault")
	store := NewFile(path, []byte("correct horse"))

	if _, err := store.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}

	if err := store.Set("api_key", "abc"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Set("config", `{"identity":"u"}`); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// A fresh store instance with the same passphrase reads it back.
	reopened := NewFile(path, []byte("correct horse"))
	got, err := reopened.Get("api_key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "abc" {
		t.Errorf("Get() = %q, want abc", got)
	}

	if err := reopened.Delete("api_key"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := reopened.Get("api_key"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
	// The other slot is untouched.
	if _, err := reopened.Get("config"); err != nil {
		t.Errorf("Get(config) error = %v", err)
	}
}

func TestFileStoreWrongPassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault")
	if err := NewFile(path, []byte("right")).Set("a", "1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	_, err := NewFile(path, []byte("wrong")).Get("a")
	if !errors.Is(err, ErrBadPassphrase) {
		t.Errorf("Get() error = %v, want ErrBadPassphrase", err)
	}
}

func TestFileStoreDeleteAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault")
	store := NewFile(path, []byte("pw"))

	// Deleting from a vault that does not exist yet must not create it.
	if err := store.Delete("a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Delete on an empty vault created the vault file")
	}
}

func TestFileStoreRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault")
	if err := os.WriteFile(path, []byte("not a vault file at all"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFile(path, []byte("pw")).Get("a"); err == nil {
		t.Error("expected error reading a non-vault file")
	}
}

func TestFileStorePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault")
	if err := NewFile(path, []byte("pw")).Set("a", "1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("vault file mode = %o, want 600", perm)
	}
}
