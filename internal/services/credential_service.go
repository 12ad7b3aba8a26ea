package services

import (
	"fmt"

	"github.com/alimgiray/gcommits/internal/models"
)

// CredentialStore is a key/value store for remembered credentials
type CredentialStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Clear() error
}

// CredentialService remembers the last submitted username and token.
// The aggregation service never uses it; callers load credentials and pass them in.
type CredentialService struct {
	store CredentialStore
}

func NewCredentialService(store CredentialStore) *CredentialService {
	return &CredentialService{
		store: store,
	}
}

// Save replaces any previously stored credentials
func (s *CredentialService) Save(creds models.Credentials) error {
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear stored credentials: %w", err)
	}
	if err := s.store.Set(models.CredentialUsername, creds.Username); err != nil {
		return fmt.Errorf("failed to store username: %w", err)
	}
	if err := s.store.Set(models.CredentialToken, creds.Token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

// SaveUsername replaces any stored credentials with just a username
func (s *CredentialService) SaveUsername(username string) error {
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear stored credentials: %w", err)
	}
	if err := s.store.Set(models.CredentialUsername, username); err != nil {
		return fmt.Errorf("failed to store username: %w", err)
	}
	return nil
}

// Load returns stored credentials; missing keys come back empty
func (s *CredentialService) Load() (models.Credentials, error) {
	var creds models.Credentials

	username, _, err := s.store.Get(models.CredentialUsername)
	if err != nil {
		return creds, fmt.Errorf("failed to load username: %w", err)
	}
	token, _, err := s.store.Get(models.CredentialToken)
	if err != nil {
		return creds, fmt.Errorf("failed to load token: %w", err)
	}

	creds.Username = username
	creds.Token = token
	return creds, nil
}

// Merge fills empty fields of creds from the store
func (s *CredentialService) Merge(creds models.Credentials) (models.Credentials, error) {
	if creds.Username != "" && creds.Token != "" {
		return creds, nil
	}

	stored, err := s.Load()
	if err != nil {
		return creds, err
	}
	if creds.Username == "" {
		creds.Username = stored.Username
	}
	if creds.Token == "" {
		creds.Token = stored.Token
	}
	return creds, nil
}

func (s *CredentialService) Clear() error {
	return s.store.Clear()
}
