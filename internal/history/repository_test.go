package history

import (
	"context"
	"errors"
	"testing"
	"time"

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

func appendRecord(t *testing.T, repo *Repository, draft CommitRecordDraft) *CommitRecord {
	t.Helper()

	if draft.Timestamp.IsZero() {
		draft.Timestamp = time.Now()
	}

	record, err := repo.Append(context.Background(), &draft)
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	// Keep created-at timestamps strictly ordered across appends.
	time.Sleep(time.Millisecond)

	return record
}

func TestRepository_RecentOrdering(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	appendRecord(t, repo, CommitRecordDraft{Hash: "aaa", Message: "feat: first", Success: true})
	appendRecord(t, repo, CommitRecordDraft{Hash: "bbb", Message: "fix: second", Success: true})
	appendRecord(t, repo, CommitRecordDraft{Hash: "ccc", Message: "chore: third", Success: false})

	records, err := repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	hashes := []string{records[0].Hash, records[1].Hash, records[2].Hash}
	if hashes[0] != "ccc" || hashes[1] != "bbb" || hashes[2] != "aaa" {
		t.Fatalf("expected newest-first order, got %v", hashes)
	}
}

func TestRepository_RecentLimit(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	for range 5 {
		appendRecord(t, repo, CommitRecordDraft{Hash: "aaa", Message: "feat: x", Success: true})
	}

	records, err := repo.Recent(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected limit to cap results at 2, got %d", len(records))
	}
}

func TestRepository_Last(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	if _, err := repo.Last(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty history, got %v", err)
	}

	appendRecord(t, repo, CommitRecordDraft{Hash: "aaa", Message: "feat: first", Success: true})
	appendRecord(t, repo, CommitRecordDraft{Hash: "bbb", Message: "fix: second", Success: true})

	last, err := repo.Last(ctx)
	if err != nil {
		t.Fatalf("Last failed: %v", err)
	}
	if last.Hash != "bbb" {
		t.Fatalf("expected most recent record, got hash %q", last.Hash)
	}
}

func TestRepository_Count(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Fatalf("expected empty count, got %d", count)
	}

	for range 4 {
		appendRecord(t, repo, CommitRecordDraft{Hash: "aaa", Message: "feat: x", Success: true})
	}

	count, err = repo.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 4 {
		t.Fatalf("expected 4 records, got %d", count)
	}
}

func TestRepository_CountSince(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	appendRecord(t, repo, CommitRecordDraft{Message: "feat: old", Success: true,
		Timestamp: time.Now().Add(-48 * time.Hour)})
	appendRecord(t, repo, CommitRecordDraft{Message: "feat: recent", Success: true})
	appendRecord(t, repo, CommitRecordDraft{Message: "fix: recent", Success: true})

	count, err := repo.CountSince(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("CountSince failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 records in the window, got %d", count)
	}
}

func TestRepository_Rates(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	successRate, err := repo.SuccessRate(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if successRate != 0 {
		t.Fatalf("expected zero success rate on empty history, got %v", successRate)
	}

	appendRecord(t, repo, CommitRecordDraft{Message: "feat: a", Success: true, UsedGeneratedMessage: true})
	appendRecord(t, repo, CommitRecordDraft{Message: "fix: b", Success: true})
	appendRecord(t, repo, CommitRecordDraft{Message: "auto: c", Success: false})
	appendRecord(t, repo, CommitRecordDraft{Message: "auto: d", Success: false})

	successRate, err = repo.SuccessRate(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if successRate != 50 {
		t.Fatalf("expected 50%% success rate, got %v", successRate)
	}

	generatedRate, err := repo.GeneratedRate(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if generatedRate != 25 {
		t.Fatalf("expected 25%% generated rate, got %v", generatedRate)
	}
}

func TestRepository_TypeBreakdown(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	appendRecord(t, repo, CommitRecordDraft{Message: "feat: add endpoint", Success: true})
	appendRecord(t, repo, CommitRecordDraft{Message: "feat(api)!: breaking change", Success: true})
	appendRecord(t, repo, CommitRecordDraft{Message: "auto: checkpoint 2 file(s) at 2026-01-01 00:00:00", Success: true})
	appendRecord(t, repo, CommitRecordDraft{Message: "updated some stuff", Success: true})

	breakdown, err := repo.TypeBreakdown(context.Background())
	if err != nil {
		t.Fatalf("TypeBreakdown failed: %v", err)
	}

	if breakdown["feat"] != 2 {
		t.Fatalf("expected 2 feat commits, got %d", breakdown["feat"])
	}
	if breakdown["auto"] != 1 {
		t.Fatalf("expected 1 auto commit, got %d", breakdown["auto"])
	}
	if breakdown["other"] != 1 {
		t.Fatalf("expected 1 other commit, got %d", breakdown["other"])
	}
}

func TestRepository_DailyStats(t *testing.T) {
	repo := NewRepository(newTestDB(t))

	appendRecord(t, repo, CommitRecordDraft{Message: "feat: a", Success: true, UsedGeneratedMessage: true})
	appendRecord(t, repo, CommitRecordDraft{Message: "auto: b", Success: false})

	stats, err := repo.DailyStats(context.Background(), 7)
	if err != nil {
		t.Fatalf("DailyStats failed: %v", err)
	}

	if len(stats) != 7 {
		t.Fatalf("expected 7 day buckets, got %d", len(stats))
	}

	today := stats[0]
	if today.Date != time.Now().Format("2006-01-02") {
		t.Fatalf("expected first bucket to be today, got %s", today.Date)
	}
	if today.Total != 2 || today.Succeeded != 1 || today.Failed != 1 || today.Generated != 1 {
		t.Fatalf("unexpected today bucket: %+v", today)
	}

	for _, stat := range stats[1:] {
		if stat.Total != 0 {
			t.Fatalf("expected empty bucket for %s, got %+v", stat.Date, stat)
		}
	}
}

func TestCommitType(t *testing.T) {
	cases := []struct {
		message  string
		expected string
	}{
		{"feat: add thing", "feat"},
		{"fix(core): repair thing", "fix"},
		{"refactor!: restructure", "refactor"},
		{"auto: checkpoint 1 file(s) at 2026-01-01 00:00:00", "auto"},
		{"no prefix here", "other"},
		{"unknown: prefix", "other"},
	}

	for _, tc := range cases {
		if got := commitType(tc.message); got != tc.expected {
			t.Errorf("commitType(%q) = %q, expected %q", tc.message, got, tc.expected)
		}
	}
}
