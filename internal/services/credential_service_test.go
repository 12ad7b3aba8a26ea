package services

import (
	"errors"
	"testing"

	"github.com/alimgiray/gcommits/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	values   map[string]string
	clears   int
	failKeys map[string]bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}, failKeys: map[string]bool{}}
}

func (m *memoryStore) Get(key string) (string, bool, error) {
	if m.failKeys[key] {
		return "", false, errors.New("store unavailable")
	}
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *memoryStore) Set(key, value string) error {
	m.values[key] = value
	return nil
}

func (m *memoryStore) Clear() error {
	m.clears++
	m.values = map[string]string{}
	return nil
}

func TestCredentialServiceSaveReplaces(t *testing.T) {
	store := newMemoryStore()
	store.values[models.CredentialEmail] = "old@example.com"
	service := NewCredentialService(store)

	require.NoError(t, service.Save(models.Credentials{Username: "alice", Token: "glpat-1"}))

	assert.Equal(t, 1, store.clears)
	assert.Equal(t, map[string]string{"username": "alice", "token": "glpat-1"}, store.values)

	creds, err := service.Load()
	require.NoError(t, err)
	assert.Equal(t, models.Credentials{Username: "alice", Token: "glpat-1"}, creds)
}

func TestCredentialServiceMerge(t *testing.T) {
	store := newMemoryStore()
	service := NewCredentialService(store)
	require.NoError(t, service.Save(models.Credentials{Username: "alice", Token: "glpat-1"}))

	merged, err := service.Merge(models.Credentials{Username: "bob"})
	require.NoError(t, err)
	assert.Equal(t, models.Credentials{Username: "bob", Token: "glpat-1"}, merged)

	store.failKeys[models.CredentialToken] = true
	complete := models.Credentials{Username: "carol", Token: "t"}
	merged, err = service.Merge(complete)
	require.NoError(t, err)
	assert.Equal(t, complete, merged)

	_, err = service.Merge(models.Credentials{})
	assert.Error(t, err)
}

func TestCredentialServiceClear(t *testing.T) {
	store := newMemoryStore()
	service := NewCredentialService(store)
	require.NoError(t, service.Save(models.Credentials{Username: "alice", Token: "glpat-1"}))

	require.NoError(t, service.Clear())

	creds, err := service.Load()
	require.NoError(t, err)
	assert.Equal(t, models.Credentials{}, creds)
}

func TestCredentialServiceSaveUsernameDropsToken(t *testing.T) {
	store := newMemoryStore()
	service := NewCredentialService(store)
	require.NoError(t, service.Save(models.Credentials{Username: "alice", Token: "glpat-1"}))

	require.NoError(t, service.SaveUsername("bob"))

	assert.Equal(t, map[string]string{"username": "bob"}, store.values)
	creds, err := service.Load()
	require.NoError(t, err)
	assert.Equal(t, models.Credentials{Username: "bob"}, creds)
}
