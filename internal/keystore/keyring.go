package keystore

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// Service is the fixed service identifier namespacing all entries in the
// platform secure store.
const Service = "com.onetimesecret.desktop"

// ErrKeyringUnsupported indicates the platform has no usable secure
// store; callers should fall back to a File store.
var ErrKeyringUnsupported = keyring.ErrUnsupportedPlatform

// Keyring stores slots in the operating system secure store.
type Keyring struct {
	service string
}

// NewKeyring creates a Keyring store under the default service name.
func NewKeyring() *Keyring {
	return &Keyring{service: Service}
}

func (k *Keyring) Get(name string) (string, error) {
	value, err := keyring.Get(k.service, name)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return "", fmt.Errorf("keyring get %q: %w", name, err)
	}
	return value, nil
}

func (k *Keyring) Set(name, value string) error {
	if err := keyring.Set(k.service, name, value); err != nil {
		return fmt.Errorf("keyring set %q: %w", name, err)
	}
	return nil
}

func (k *Keyring) Delete(name string) error {
	err := keyring.Delete(k.service, name)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("keyring delete %q: %w", name, err)
	}
	return nil
}
