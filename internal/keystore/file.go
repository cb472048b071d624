package keystore

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/argon2"
)

// Vault file layout: magic || version || salt || nonce || ciphertext.
// The ciphertext is AES-256-GCM over the JSON slot map, keyed by
// Argon2id over the passphrase. Salt and nonce are regenerated on every
// write.
const (
	fileVersion = 0x01

	saltSize  = 16
	keySize   = 32
	nonceSize = 12

	// Argon2id parameters.
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

var fileMagic = []byte("OTSVAULT")

// ErrBadPassphrase is returned when the vault file cannot be decrypted
// with the supplied passphrase.
var ErrBadPassphrase = errors.New("keystore: wrong passphrase or corrupted vault")

// File is a passphrase-sealed file-backed Store for platforms without a
// usable system keyring.
type File struct {
	path       string
	passphrase []byte
}

// NewFile creates a file-backed store at path, sealed with passphrase.
// The file is created on first write.
func NewFile(path string, passphrase []byte) *File {
	return &File{path: path, passphrase: passphrase}
}

func (f *File) Get(name string) (string, error) {
	slots, err := f.load()
	if err != nil {
		return "", err
	}
	value, ok := slots[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return value, nil
}

func (f *File) Set(name, value string) error {
	slots, err := f.load()
	if err != nil {
		return err
	}
	slots[name] = value
	return f.save(slots)
}

func (f *File) Delete(name string) error {
	slots, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := slots[name]; !ok {
		return nil
	}
	delete(slots, name)
	return f.save(slots)
}

func (f *File) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("keystore: read vault: %w", err)
	}

	header := len(fileMagic) + 1
	if len(data) < header+saltSize+nonceSize {
		return nil, fmt.Errorf("keystore: vault file too short")
	}
	if !bytes.Equal(data[:len(fileMagic)], fileMagic) {
		return nil, fmt.Errorf("keystore: not a vault file")
	}
	if data[len(fileMagic)] != fileVersion {
		return nil, fmt.Errorf("keystore: unsupported vault version %d", data[len(fileMagic)])
	}

	salt := data[header : header+saltSize]
	nonce := data[header+saltSize : header+saltSize+nonceSize]
	ciphertext := data[header+saltSize+nonceSize:]

	aead, err := f.aead(salt)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, fileMagic)
	if err != nil {
		return nil, ErrBadPassphrase
	}

	var slots map[string]string
	if err := json.Unmarshal(plaintext, &slots); err != nil {
		return nil, fmt.Errorf("keystore: corrupted vault contents: %w", err)
	}
	return slots, nil
}

func (f *File) save(slots map[string]string) error {
	plaintext, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("keystore: encode vault: %w", err)
	}

	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("keystore: generate salt: %w", err)
	}
	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("keystore: generate nonce: %w", err)
	}

	aead, err := f.aead(salt)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.Write(fileMagic)
	buf.WriteByte(fileVersion)
	buf.Write(salt)
	buf.Write(nonce)
	buf.Write(aead.Seal(nil, nonce, plaintext, fileMagic))

	// Write-then-rename so a crash mid-write never leaves a torn vault.
	tmp := f.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("keystore: create vault directory: %w", err)
	}
	if err := os.WriteFile(tmp, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("keystore: write vault: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("keystore: replace vault: %w", err)
	}
	return nil
}

func (f *File) aead(salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey(f.passphrase, salt, argonTime, argonMemory, argonThreads, keySize)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("keystore: create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("keystore: create GCM: %w", err)
	}
	return aead, nil
}
