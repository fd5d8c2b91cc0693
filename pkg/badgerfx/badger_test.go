package badgerfx

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap/zaptest"
)

func TestConfigBuild(t *testing.T) {
	opts := Config{Dir: "/var/lib/data"}.Build()
	if opts.Dir != "/var/lib/data" || opts.InMemory {
		t.Fatalf("unexpected on-disk options: dir=%q inMemory=%v", opts.Dir, opts.InMemory)
	}

	opts = Config{InMemory: true}.Build()
	if !opts.InMemory {
		t.Fatal("expected in-memory options")
	}
}

func TestNewInMemory(t *testing.T) {
	db, err := New(Config{InMemory: true}, newLogger(zaptest.NewLogger(t)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	err = db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte("key"), []byte("value"))
	})
	if err != nil {
		t.Fatal(err)
	}

	err = db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte("key"))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if string(val) != "value" {
				t.Fatalf("unexpected value %q", val)
			}
			return nil
		})
	})
	if err != nil {
		t.Fatal(err)
	}
}
