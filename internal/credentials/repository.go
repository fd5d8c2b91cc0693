package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

const tokenKey = "credential:github_token"

// Repository persists the single push credential slot. Set overwrites,
// Delete erases; there is no versioning.
type Repository struct {
	db *badger.DB
}

func NewRepository(db *badger.DB) *Repository {
	return &Repository{
		db: db,
	}
}

// Token reads the current token. Returns ErrNoToken when the slot is empty.
func (r *Repository) Token(_ context.Context) (string, error) {
	var token string

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(tokenKey))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNoToken
			}
			return fmt.Errorf("failed to get token: %w", err)
		}

		return item.Value(func(val []byte) error {
			token = string(val)
			return nil
		})
	})
	if err != nil {
		return "", err
	}

	if token == "" {
		return "", ErrNoToken
	}

	return token, nil
}

// SetToken overwrites the credential slot.
func (r *Repository) SetToken(_ context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}

	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(tokenKey), []byte(token))
	})
	if err != nil {
		return fmt.Errorf("failed to set token: %w", err)
	}

	return nil
}

// DeleteToken erases the credential slot. Deleting an empty slot is not an
// error.
func (r *Repository) DeleteToken(_ context.Context) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(tokenKey))
	})
	if err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}

	return nil
}

// HasToken reports whether a token is currently stored.
func (r *Repository) HasToken(ctx context.Context) (bool, error) {
	_, err := r.Token(ctx)
	if errors.Is(err, ErrNoToken) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}
