package onetimesecret

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/onetimesecret/desktop-go/internal/keystore"
)

// Backing-store slot names. The API key is kept apart from the rest of
// the configuration so backends with differing protection levels can
// place each appropriately, and so a "configured but not yet
// authenticated" state is representable.
const (
	slotConfig = "config"
	slotAPIKey = "api_key"
)

// StoredConfig is the persisted form of a Credential. APIKey is empty
// when the secret slot is absent; such a config is valid but cannot
// authenticate.
type StoredConfig struct {
	Identity string `json:"identity"`
	Endpoint string `json:"endpoint"`
	APIKey   string `json:"-"`
}

// Credential converts the stored config into a usable Credential.
// A missing API key is an authentication failure: the config exists but
// cannot sign requests.
func (s *StoredConfig) Credential() (Credential, error) {
	if s.APIKey == "" {
		return Credential{}, &Error{
			Kind:    KindAuthentication,
			Message: "no API key configured",
			Err:     ErrMissingAPIKey,
		}
	}
	return Credential{Identity: s.Identity, APIKey: s.APIKey, Endpoint: s.Endpoint}, nil
}

// Vault persists credentials in a secure backing store. All failures
// surface as KindStorage errors; an absent entry is a normal result, not
// an error, decided solely by the store's not-found signal.
type Vault struct {
	store keystore.Store
}

// NewVault creates a Vault over the given backing store.
func NewVault(store keystore.Store) *Vault {
	return &Vault{store: store}
}

// NewKeyringVault creates a Vault backed by the platform secure store
// (Keychain, Credential Manager, or Secret Service).
func NewKeyringVault() *Vault {
	return NewVault(keystore.NewKeyring())
}

// NewFileVault creates a Vault backed by a passphrase-sealed file, for
// platforms without a usable system keyring.
func NewFileVault(path string, passphrase []byte) *Vault {
	return NewVault(keystore.NewFile(path, passphrase))
}

// Save validates the credential and writes both slots: the API key
// first, then the config. A partial failure is surfaced as-is with no
// rollback; there is no cross-slot transaction, callers retry Save
// wholesale.
func (v *Vault) Save(cred Credential) error {
	if err := cred.Validate(IdentityAny); err != nil {
		return err
	}

	if err := v.store.Set(slotAPIKey, cred.APIKey); err != nil {
		return storageErrorf(err, "failed to save API key")
	}

	cfg, err := json.Marshal(StoredConfig{Identity: cred.Identity, Endpoint: cred.Endpoint})
	if err != nil {
		return &Error{
			Kind:    KindSerialization,
			Message: fmt.Sprintf("failed to encode configuration: %v", err),
			Err:     err,
		}
	}
	if err := v.store.Set(slotConfig, string(cfg)); err != nil {
		return storageErrorf(err, "failed to save configuration")
	}
	return nil
}

// Load reads the stored configuration. It returns (nil, nil) when the
// vault was never configured. A present config with a missing API key
// loads successfully with APIKey empty.
func (v *Vault) Load() (*StoredConfig, error) {
	raw, err := v.store.Get(slotConfig)
	if err != nil {
		if errors.Is(err, keystore.ErrNotFound) {
			return nil, nil
		}
		return nil, storageErrorf(err, "failed to read configuration")
	}

	var cfg StoredConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return nil, &Error{
			Kind:    KindSerialization,
			Message: fmt.Sprintf("stored configuration is corrupted: %v", err),
			Err:     err,
		}
	}

	key, err := v.store.Get(slotAPIKey)
	if err != nil {
		if errors.Is(err, keystore.ErrNotFound) {
			return &cfg, nil
		}
		return nil, storageErrorf(err, "failed to read API key")
	}
	cfg.APIKey = key
	return &cfg, nil
}

// APIKey reads only the secret slot. It returns ("", nil) when the slot
// is absent.
func (v *Vault) APIKey() (string, error) {
	key, err := v.store.Get(slotAPIKey)
	if err != nil {
		if errors.Is(err, keystore.ErrNotFound) {
			return "", nil
		}
		return "", storageErrorf(err, "failed to read API key")
	}
	return key, nil
}

// Delete removes both slots. Deleting an unconfigured vault is not an
// error.
func (v *Vault) Delete() error {
	if err := v.store.Delete(slotAPIKey); err != nil {
		return storageErrorf(err, "failed to delete API key")
	}
	if err := v.store.Delete(slotConfig); err != nil {
		return storageErrorf(err, "failed to delete configuration")
	}
	return nil
}

// LoadStartup is the tolerant load used at application start. It never
// fails hard: a missing configuration yields (nil, nil), and a corrupted
// or unreadable one yields nil plus a warning the caller may log before
// continuing in the unconfigured state.
func (v *Vault) LoadStartup() (cfg *StoredConfig, warn error) {
	cfg, err := v.Load()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
