package credentials

import (
	"context"
	"errors"
	"testing"

	"github.com/dgraph-io/badger/v4"
)

func newTestDB(t *testing.T) *badger.DB {
	t.Helper()

	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func TestRepository_TokenRoundTrip(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	if _, err := repo.Token(ctx); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken on empty slot, got %v", err)
	}

	if err := repo.SetToken(ctx, "  ghp_example123  "); err != nil {
		t.Fatalf("SetToken failed: %v", err)
	}

	token, err := repo.Token(ctx)
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if token != "ghp_example123" {
		t.Fatalf("expected trimmed token, got %q", token)
	}

	hasToken, err := repo.HasToken(ctx)
	if err != nil {
		t.Fatalf("HasToken failed: %v", err)
	}
	if !hasToken {
		t.Fatal("expected HasToken to be true")
	}
}

func TestRepository_SetTokenEmpty(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	if err := repo.SetToken(context.Background(), "   "); !errors.Is(err, ErrEmptyToken) {
		t.Fatalf("expected ErrEmptyToken, got %v", err)
	}
}

func TestRepository_SetTokenOverwrites(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	if err := repo.SetToken(ctx, "first"); err != nil {
		t.Fatal(err)
	}
	if err := repo.SetToken(ctx, "second"); err != nil {
		t.Fatal(err)
	}

	token, err := repo.Token(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if token != "second" {
		t.Fatalf("expected overwritten token, got %q", token)
	}
}

func TestRepository_DeleteToken(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	// Deleting an empty slot is not an error.
	if err := repo.DeleteToken(ctx); err != nil {
		t.Fatalf("DeleteToken on empty slot failed: %v", err)
	}

	if err := repo.SetToken(ctx, "ghp_example123"); err != nil {
		t.Fatal(err)
	}
	if err := repo.DeleteToken(ctx); err != nil {
		t.Fatalf("DeleteToken failed: %v", err)
	}

	if _, err := repo.Token(ctx); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken after delete, got %v", err)
	}

	hasToken, err := repo.HasToken(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if hasToken {
		t.Fatal("expected HasToken to be false after delete")
	}
}
