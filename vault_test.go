package onetimesecret

import (
	"errors"
	"fmt"
	"testing"

	"github.com/onetimesecret/desktop-go/internal/keystore"
)

func validCredential() Credential {
	return Credential{
		Identity: "user@example.test",
		APIKey:   "abc",
		Endpoint: "https://example.test",
	}
}

func TestVaultRoundTrip(t *testing.T) {
	vault := NewVault(keystore.NewMemory())
	cred := validCredential()

	if err := vault.Save(cred); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	cfg, err := vault.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() = nil after Save")
	}
	if cfg.Identity != cred.Identity || cfg.Endpoint != cred.Endpoint || cfg.APIKey != cred.APIKey {
		t.Errorf("Load() = %+v, want %+v", cfg, cred)
	}

	loaded, err := cfg.Credential()
	if err != nil {
		t.Fatalf("Credential() error = %v", err)
	}
	if loaded != cred {
		t.Errorf("Credential() = %+v, want %+v", loaded, cred)
	}
}

func TestVaultLoadUnconfigured(t *testing.T) {
	vault := NewVault(keystore.NewMemory())

	cfg, err := vault.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != nil {
		t.Errorf("Load() = %+v, want nil for an unconfigured vault", cfg)
	}
}

func TestVaultSaveRejectsInvalid(t *testing.T) {
	store := keystore.NewMemory()
	vault := NewVault(store)

	err := vault.Save(Credential{Identity: "", APIKey: "abc", Endpoint: "https://example.test"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	var e *Error
	if !errors.As(err, &e) || e.Kind != KindConfiguration {
		t.Errorf("error = %v, want KindConfiguration", err)
	}

	// Nothing may be written on a validation failure.
	if _, err := store.Get("api_key"); !errors.Is(err, keystore.ErrNotFound) {
		t.Error("api_key slot was written despite failed validation")
	}
}

func TestVaultDelete(t *testing.T) {
	vault := NewVault(keystore.NewMemory())

	if err := vault.Save(validCredential()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := vault.Delete(); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	cfg, err := vault.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != nil {
		t.Errorf("Load() = %+v after Delete, want nil", cfg)
	}

	// Deleting again is idempotent.
	if err := vault.Delete(); err != nil {
		t.Errorf("second Delete() error = %v", err)
	}
}

func TestVaultPartialState(t *testing.T) {
	store := keystore.NewMemory()
	vault := NewVault(store)

	if err := vault.Save(validCredential()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	// Remove only the secret slot: config exists but unauthenticated.
	if err := store.Delete("api_key"); err != nil {
		t.Fatalf("Delete(api_key) error = %v", err)
	}

	cfg, err := vault.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() = nil, want config with absent secret")
	}
	if cfg.APIKey != "" {
		t.Errorf("APIKey = %q, want empty", cfg.APIKey)
	}

	// Building a credential from it is an authentication failure.
	_, err = cfg.Credential()
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Credential() error = %v, want ErrMissingAPIKey", err)
	}
}

func TestVaultAPIKeyOnly(t *testing.T) {
	vault := NewVault(keystore.NewMemory())

	key, err := vault.APIKey()
	if err != nil {
		t.Fatalf("APIKey() error = %v", err)
	}
	if key != "" {
		t.Errorf("APIKey() = %q, want empty for an unconfigured vault", key)
	}

	if err := vault.Save(validCredential()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	key, err = vault.APIKey()
	if err != nil {
		t.Fatalf("APIKey() error = %v", err)
	}
	if key != "abc" {
		t.Errorf("APIKey() = %q, want abc", key)
	}
}

func TestVaultCorruptedConfig(t *testing.T) {
	store := keystore.NewMemory()
	if err := store.Set("config", "{not json"); err != nil {
		t.Fatal(err)
	}
	vault := NewVault(store)

	_, err := vault.Load()
	if err == nil {
		t.Fatal("expected error for corrupted config")
	}
	var e *Error
	if !errors.As(err, &e) || e.Kind != KindSerialization {
		t.Errorf("error = %v, want KindSerialization", err)
	}
}

// failingStore errors on every operation, simulating a broken backend.
type failingStore struct{}

func (failingStore) Get(string) (string, error) { return "", fmt.Errorf("backend exploded") }
func (failingStore) Set(string, string) error   { return fmt.Errorf("backend exploded") }
func (failingStore) Delete(string) error        { return fmt.Errorf("backend exploded") }

func TestVaultStorageFailures(t *testing.T) {
	vault := NewVault(failingStore{})

	assertStorage := func(t *testing.T, err error) {
		t.Helper()
		if err == nil {
			t.Fatal("expected storage error")
		}
		var e *Error
		if !errors.As(err, &e) || e.Kind != KindStorage {
			t.Errorf("error = %v, want KindStorage", err)
		}
	}

	assertStorage(t, vault.Save(validCredential()))
	_, err := vault.Load()
	assertStorage(t, err)
	_, err = vault.APIKey()
	assertStorage(t, err)
	assertStorage(t, vault.Delete())
}

func TestVaultLoadStartup(t *testing.T) {
	// Unconfigured: no config, no warning.
	cfg, warn := NewVault(keystore.NewMemory()).LoadStartup()
	if cfg != nil || warn != nil {
		t.Errorf("LoadStartup() = (%v, %v), want (nil, nil)", cfg, warn)
	}

	// Corrupted: no config, warning reported instead of a hard failure.
	store := keystore.NewMemory()
	store.Set("config", "garbage")
	cfg, warn = NewVault(store).LoadStartup()
	if cfg != nil {
		t.Errorf("LoadStartup() cfg = %+v, want nil for corrupted store", cfg)
	}
	if warn == nil {
		t.Error("LoadStartup() warn = nil, want corruption warning")
	}
}
