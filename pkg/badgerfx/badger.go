package badgerfx

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

const SeekEnd = byte(0xFF)

const (
	gcInterval     = 10 * time.Minute
	gcDiscardRatio = 0.5
)

func New(config Config, logger *zapLogger) (*badger.DB, error) {
	opts := config.Build().
		WithLogger(logger)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open BadgerDB: %w", err)
	}

	return db, nil
}

// runGC periodically reclaims value-log space. The record log is
// append-mostly, but its time index rewrites and credential overwrites
// still leave garbage behind, and badger never collects it on its own.
func runGC(db *badger.DB, logger *zap.Logger, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(gcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			for {
				err := db.RunValueLogGC(gcDiscardRatio)
				if errors.Is(err, badger.ErrNoRewrite) {
					break
				}
				if err != nil {
					logger.Warn("value log GC failed", zap.Error(err))
					break
				}
			}
		}
	}
}
