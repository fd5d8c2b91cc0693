package history

import (
	"time"

	"github.com/gitpulse/gitpulse/internal/history"
	"github.com/google/uuid"
)

// CommitResponse represents one commit history entry.
type CommitResponse struct {
	ID           uuid.UUID `json:"id"`
	Hash         string    `json:"hash"`
	Message      string    `json:"message"`
	Timestamp    time.Time `json:"timestamp"`
	FilesChanged int       `json:"files_changed"`
	Success      bool      `json:"success"`
	Generated    bool      `json:"generated"`
	Reason       string    `json:"reason,omitempty"`
}

// ListResponse represents the response payload for the history listing.
type ListResponse struct {
	Commits []CommitResponse `json:"commits"`
	Total   int              `json:"total"`
}

// DailyStatResponse aggregates commits for one calendar day.
type DailyStatResponse struct {
	Date      string `json:"date"`
	Total     int    `json:"total"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	Generated int    `json:"generated"`
}

// StatsResponse represents the response payload for aggregate statistics.
type StatsResponse struct {
	TotalCommits   int                 `json:"total_commits"`
	SuccessRate    float64             `json:"success_rate"`
	GeneratedRate  float64             `json:"generated_rate"`
	CommitsLast24h int                 `json:"commits_last_24h"`
	CommitsByDay   []DailyStatResponse `json:"commits_by_day"`
	CommitTypes    map[string]int      `json:"commit_types"`
}

func newCommitResponse(record history.CommitRecord) CommitResponse {
	return CommitResponse{
		ID:           record.ID,
		Hash:         record.Hash,
		Message:      record.Message,
		Timestamp:    record.Timestamp,
		FilesChanged: record.FilesChanged,
		Success:      record.Success,
		Generated:    record.UsedGeneratedMessage,
		Reason:       record.Reason,
	}
}

func newDailyStatResponse(stat history.DailyStat) DailyStatResponse {
	return DailyStatResponse{
		Date:      stat.Date,
		Total:     stat.Total,
		Succeeded: stat.Succeeded,
		Failed:    stat.Failed,
		Generated: stat.Generated,
	}
}
