package control

import (
	"time"

	"github.com/gitpulse/gitpulse/internal/history"
)

// LastCommitResponse summarizes the most recent recorded cycle.
type LastCommitResponse struct {
	Hash         string    `json:"hash"`
	Message      string    `json:"message"`
	Timestamp    time.Time `json:"timestamp"`
	FilesChanged int       `json:"files_changed"`
	Success      bool      `json:"success"`
	Generated    bool      `json:"generated"`
}

// StatusResponse represents the response payload for the service status.
type StatusResponse struct {
	Paused         bool       `json:"paused"`
	RepositoryPath string     `json:"repository_path"`
	Branch         string     `json:"branch,omitempty"`
	NextCommitTime *time.Time `json:"next_commit_time,omitempty"`
	// NextCommitIn is the same deadline as seconds from now.
	NextCommitIn        *int64              `json:"next_commit_in,omitempty"`
	SummarizerAvailable bool                `json:"summarizer_available"`
	Theme               string              `json:"theme,omitempty"`
	LastCommit          *LastCommitResponse `json:"last_commit,omitempty"`
}

// ActionResponse acknowledges a control action.
type ActionResponse struct {
	Status string `json:"status"`
}

func newLastCommitResponse(record *history.CommitRecord) *LastCommitResponse {
	return &LastCommitResponse{
		Hash:         shortHash(record.Hash),
		Message:      record.Message,
		Timestamp:    record.Timestamp,
		FilesChanged: record.FilesChanged,
		Success:      record.Success,
		Generated:    record.UsedGeneratedMessage,
	}
}

func shortHash(hash string) string {
	const short = 7
	if len(hash) <= short {
		return hash
	}

	return hash[:short]
}
