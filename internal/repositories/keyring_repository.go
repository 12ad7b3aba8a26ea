package repositories

import (
	"errors"
	"fmt"

	"github.com/alimgiray/gcommits/internal/models"
	"github.com/zalando/go-keyring"
)

// KeyringService is the service name credentials are filed under in the OS keychain
const KeyringService = "gcommits"

// KeyringRepository stores credentials in the OS keychain
// (macOS Keychain, Windows Credential Manager, Secret Service on Linux)
type KeyringRepository struct {
	service string
}

func NewKeyringRepository() *KeyringRepository {
	return &KeyringRepository{service: KeyringService}
}

func (r *KeyringRepository) Get(key string) (string, bool, error) {
	value, err := keyring.Get(r.service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read from OS keychain: %w", err)
	}
	return value, true, nil
}

func (r *KeyringRepository) Set(key, value string) error {
	if err := keyring.Set(r.service, key, value); err != nil {
		return fmt.Errorf("failed to save to OS keychain: %w", err)
	}
	return nil
}

func (r *KeyringRepository) remove(key string) error {
	err := keyring.Delete(r.service, key)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete from OS keychain: %w", err)
	}
	return nil
}

// Clear removes every credential key this application writes
func (r *KeyringRepository) Clear() error {
	for _, key := range []string{models.CredentialUsername, models.CredentialToken, models.CredentialEmail} {
		if err := r.remove(key); err != nil {
			return err
		}
	}
	return nil
}
