package credential

import (
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "mail-triage"

// Store reads and writes secrets in the system keyring
type Store struct {
	open func() (keyring.Keyring, error)
}

// NewStore creates a store backed by the platform keyring, falling back to an
// encrypted file under fileDir
func NewStore(fileDir string) *Store {
	return &Store{
		open: func() (keyring.Keyring, error) {
			return keyring.Open(keyring.Config{
				ServiceName: serviceName,
				AllowedBackends: []keyring.BackendType{
					keyring.KeychainBackend,
					keyring.SecretServiceBackend,
					keyring.WinCredBackend,
					keyring.PassBackend,
					keyring.FileBackend,
				},
				FileDir:                  fileDir,
				FilePasswordFunc:         keyring.FixedStringPrompt("mail-triage-file-key"),
				KeychainTrustApplication: true,
			})
		},
	}
}

// NewStoreFromKeyring wraps an already opened keyring
func NewStoreFromKeyring(ring keyring.Keyring) *Store {
	return &Store{
		open: func() (keyring.Keyring, error) { return ring, nil },
	}
}

// IMAPPasswordKey is the keyring key holding the IMAP password for a user
func IMAPPasswordKey(username string) string {
	return "imap:" + username
}

// Get retrieves a credential value by key
func (s *Store) Get(key string) (string, error) {
	ring, err := s.open()
	if err != nil {
		return "", fmt.Errorf("opening keyring: %w", err)
	}

	item, err := ring.Get(key)
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}

	return string(item.Data), nil
}

// Set stores a credential value by key
func (s *Store) Set(key string, value string) error {
	ring, err := s.open()
	if err != nil {
		return fmt.Errorf("opening keyring: %w", err)
	}

	err = ring.Set(keyring.Item{
		Key:   key,
		Data:  []byte(value),
		Label: "mail-triage " + key,
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}

	return nil
}

// Delete removes a credential by key
func (s *Store) Delete(key string) error {
	ring, err := s.open()
	if err != nil {
		return fmt.Errorf("opening keyring: %w", err)
	}

	if err := ring.Remove(key); err != nil {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}

	return nil
}
