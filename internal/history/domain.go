package history

import (
	"time"

	"github.com/google/uuid"
)

// CommitRecordDraft is the write-side shape of a cycle outcome.
type CommitRecordDraft struct {
	Hash                 string // Commit hash, empty when the commit itself failed
	Message              string
	Timestamp            time.Time
	FilesChanged         int
	Success              bool   // Whole-cycle outcome, push included
	UsedGeneratedMessage bool   // Message came from the summarizer
	Reason               string // Human-readable failure reason
}

// CommitRecord is one immutable history entry. Appended once per cycle that
// attempts a commit, never mutated afterwards.
type CommitRecord struct {
	CommitRecordDraft

	ID        uuid.UUID
	CreatedAt time.Time
}

// DailyStat aggregates records for one calendar day.
type DailyStat struct {
	Date      string // YYYY-MM-DD
	Total     int
	Succeeded int
	Failed    int
	Generated int
}
