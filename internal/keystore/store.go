// Package keystore provides named-slot secret storage for the desktop
// client's credentials.
//
// Three backends implement the same Store interface:
//   - Keyring: the platform secure store (macOS Keychain, Windows
//     Credential Manager, Secret Service on Linux) via zalando/go-keyring
//   - File: a passphrase-sealed fallback vault for headless platforms
//   - Memory: an in-process map for tests
//
// Absence of a slot is a normal state, signalled by ErrNotFound, never
// by inspecting error messages.
package keystore

import "errors"

// ErrNotFound is returned by Get when the named slot does not exist.
var ErrNotFound = errors.New("keystore: entry not found")

// Store is a key-value secret store over named string slots.
type Store interface {
	// Get returns the value of the named slot, or ErrNotFound.
	Get(name string) (string, error)

	// Set writes the named slot, overwriting any prior value.
	Set(name, value string) error

	// Delete removes the named slot. Deleting an absent slot is not an
	// error.
	Delete(name string) error
}
