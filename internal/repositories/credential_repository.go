package repositories

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// CredentialRepository is a key/value credential store backed by SQLite
type CredentialRepository struct {
	db *sql.DB
}

func NewCredentialRepository(db *sql.DB) *CredentialRepository {
	return &CredentialRepository{
		db: db,
	}
}

// Get returns the value stored under key; ok is false when nothing is stored
func (r *CredentialRepository) Get(key string) (string, bool, error) {
	query := `SELECT value FROM credentials WHERE key = ?`

	var value string
	err := r.db.QueryRow(query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set creates or replaces the value stored under key
func (r *CredentialRepository) Set(key, value string) error {
	query := `
		INSERT INTO credentials (id, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`

	_, err := r.db.Exec(query, uuid.New().String(), key, value)
	return err
}

// Clear removes every stored credential
func (r *CredentialRepository) Clear() error {
	query := `DELETE FROM credentials`
	_, err := r.db.Exec(query)
	return err
}
