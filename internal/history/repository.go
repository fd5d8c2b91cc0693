package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gitpulse/gitpulse/pkg/badgerfx"
	"github.com/google/uuid"
)

const (
	prefix = "record:"

	prefixByID   = prefix + "id:"
	prefixByTime = prefix + "ts:"
)

var commitTypes = []string{"feat", "fix", "docs", "style", "refactor", "test", "chore", "auto"}

// Repository is the append-only commit history store. Records are written
// once by the orchestrator and consumed read-only by the control surface.
type Repository struct {
	db *badger.DB
}

func NewRepository(db *badger.DB) *Repository {
	return &Repository{
		db: db,
	}
}

// Append writes a new record. Records are immutable; there is no update path.
func (r *Repository) Append(_ context.Context, draft *CommitRecordDraft) (*CommitRecord, error) {
	model := newRecordModel(draft)

	data, err := json.Marshal(model)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		if setErr := txn.Set(r.getKey(model.ID), data); setErr != nil {
			return fmt.Errorf("failed to store record: %w", setErr)
		}

		return r.createIndexes(txn, model)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to append record: %w", err)
	}

	return newCommitRecord(model), nil
}

// Last returns the most recent record, or ErrNotFound on empty history.
func (r *Repository) Last(ctx context.Context) (*CommitRecord, error) {
	records, err := r.Recent(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}

	return &records[0], nil
}

// Recent returns up to limit records, newest first.
func (r *Repository) Recent(_ context.Context, limit int) ([]CommitRecord, error) {
	var records []CommitRecord

	err := r.db.View(func(txn *badger.Txn) error {
		return r.iterate(txn, func(model *recordModel) bool {
			records = append(records, *newCommitRecord(model))
			return limit <= 0 || len(records) < limit
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	return records, nil
}

// Count returns the total number of records.
func (r *Repository) Count(_ context.Context) (int, error) {
	count := 0

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		keyPrefix := []byte(prefixByID)
		for it.Seek(keyPrefix); it.ValidForPrefix(keyPrefix); it.Next() {
			count++
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}

	return count, nil
}

// CountSince returns the number of records with a timestamp at or after
// since. The time index walk stops at the first older record.
func (r *Repository) CountSince(_ context.Context, since time.Time) (int, error) {
	count := 0

	err := r.db.View(func(txn *badger.Txn) error {
		return r.iterate(txn, func(model *recordModel) bool {
			if model.Timestamp.Before(since) {
				return false
			}

			count++

			return true
		})
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}

	return count, nil
}

// DailyStats aggregates records per calendar day over the last days days,
// newest day first. Days without records are included with zero counts.
func (r *Repository) DailyStats(_ context.Context, days int) ([]DailyStat, error) {
	if days <= 0 {
		days = 1
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	cutoff := today.AddDate(0, 0, -(days - 1))

	byDate := make(map[string]*DailyStat, days)
	for i := range days {
		date := today.AddDate(0, 0, -i).Format("2006-01-02")
		byDate[date] = &DailyStat{Date: date}
	}

	err := r.db.View(func(txn *badger.Txn) error {
		return r.iterate(txn, func(model *recordModel) bool {
			if model.Timestamp.Before(cutoff) {
				return false
			}

			stat, ok := byDate[model.Timestamp.Format("2006-01-02")]
			if !ok {
				return true
			}

			stat.Total++
			if model.Success {
				stat.Succeeded++
			} else {
				stat.Failed++
			}
			if model.UsedGeneratedMessage {
				stat.Generated++
			}

			return true
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily stats: %w", err)
	}

	stats := make([]DailyStat, 0, days)
	for i := range days {
		date := today.AddDate(0, 0, -i).Format("2006-01-02")
		stats = append(stats, *byDate[date])
	}

	return stats, nil
}

// SuccessRate returns the percentage of successful cycles, 0 on empty history.
func (r *Repository) SuccessRate(ctx context.Context) (float64, error) {
	return r.rate(ctx, func(m *recordModel) bool { return m.Success })
}

// GeneratedRate returns the percentage of records whose message came from
// the summarizer.
func (r *Repository) GeneratedRate(ctx context.Context) (float64, error) {
	return r.rate(ctx, func(m *recordModel) bool { return m.UsedGeneratedMessage })
}

// TypeBreakdown counts records per conventional-commit type prefix; messages
// without a known prefix land in "other".
func (r *Repository) TypeBreakdown(_ context.Context) (map[string]int, error) {
	breakdown := make(map[string]int)

	err := r.db.View(func(txn *badger.Txn) error {
		return r.iterate(txn, func(model *recordModel) bool {
			breakdown[commitType(model.Message)]++
			return true
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate commit types: %w", err)
	}

	return breakdown, nil
}

func (r *Repository) rate(_ context.Context, predicate func(*recordModel) bool) (float64, error) {
	total, matching := 0, 0

	err := r.db.View(func(txn *badger.Txn) error {
		return r.iterate(txn, func(model *recordModel) bool {
			total++
			if predicate(model) {
				matching++
			}
			return true
		})
	})
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate records: %w", err)
	}

	if total == 0 {
		return 0, nil
	}

	return float64(matching) / float64(total) * 100, nil
}

// iterate walks records newest first via the time index until fn returns
// false.
func (r *Repository) iterate(txn *badger.Txn, fn func(*recordModel) bool) error {
	opts := badger.DefaultIteratorOptions
	opts.Reverse = true
	opts.PrefetchSize = 10

	it := txn.NewIterator(opts)
	defer it.Close()

	keyPrefix := []byte(prefixByTime)
	done := false
	for it.Seek(append(keyPrefix, badgerfx.SeekEnd)); it.ValidForPrefix(keyPrefix) && !done; it.Next() {
		item := it.Item()

		if err := item.Value(func(val []byte) error {
			var recordID uuid.UUID
			if err := json.Unmarshal(val, &recordID); err != nil {
				return fmt.Errorf("failed to unmarshal record ID: %w", err)
			}

			model, err := r.getByID(txn, recordID)
			if err != nil {
				return err
			}

			done = !fn(model)

			return nil
		}); err != nil {
			return err
		}
	}

	return nil
}

func (r *Repository) getByID(txn *badger.Txn, id uuid.UUID) (*recordModel, error) {
	item, err := txn.Get(r.getKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	var model recordModel
	if valErr := item.Value(func(val []byte) error { return json.Unmarshal(val, &model) }); valErr != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", valErr)
	}

	return &model, nil
}

func (r *Repository) getKey(id uuid.UUID) []byte {
	return []byte(prefixByID + id.String())
}

// createIndexes writes the time-ordered index `record:ts:<unix_nano>`.
func (r *Repository) createIndexes(txn *badger.Txn, model *recordModel) error {
	timeKey := []byte(prefixByTime + strconv.FormatInt(model.CreatedAt.UnixNano(), 10))
	data, err := json.Marshal(model.ID)
	if err != nil {
		return fmt.Errorf("failed to marshal record ID: %w", err)
	}
	if setErr := txn.Set(timeKey, data); setErr != nil {
		return fmt.Errorf("failed to set time index: %w", setErr)
	}

	return nil
}

func commitType(message string) string {
	head, _, found := strings.Cut(message, ":")
	if !found {
		return "other"
	}

	head = strings.TrimSuffix(strings.TrimSpace(head), "!")
	if i := strings.IndexByte(head, '('); i >= 0 {
		head = head[:i]
	}

	for _, t := range commitTypes {
		if head == t {
			return t
		}
	}

	return "other"
}
