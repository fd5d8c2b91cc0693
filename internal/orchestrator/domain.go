package orchestrator

import (
	"context"
	"time"

	"github.com/gitpulse/gitpulse/internal/history"
	"github.com/gitpulse/gitpulse/internal/repo"
)

// Outcome is the terminal result of one commit cycle.
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeNoChanges Outcome = "no_changes"
	OutcomeFailed    Outcome = "failed"
)

// CycleResult is the structured result of a single stage-commit-push-record
// sequence. It crosses the component boundary instead of raw errors.
type CycleResult struct {
	Outcome              Outcome
	Hash                 string
	Message              string
	FilesChanged         int
	UsedGeneratedMessage bool
	Reason               string
}

// Status is the snapshot consumed by the control surface.
type Status struct {
	Paused              bool
	NextCommitTime      *time.Time
	RepositoryPath      string
	Branch              string
	SummarizerAvailable bool
	Theme               string
}

// WorkTree is the repository capability surface the orchestrator drives.
type WorkTree interface {
	Path() string
	CurrentBranch(ctx context.Context) (string, error)
	HasChanges(ctx context.Context) (bool, error)
	ChangedFiles(ctx context.Context) ([]string, error)
	StatusSummary(ctx context.Context) (string, error)
	StageAll(ctx context.Context) error
	Commit(ctx context.Context, message string, author repo.Author) (string, error)
	Pull(ctx context.Context, remote, branch string) error
}

// Pusher delivers local commits to the remote; retry policy lives behind it.
type Pusher interface {
	Push(ctx context.Context) bool
}

// Recorder persists one CommitRecord per recorded cycle.
type Recorder interface {
	Append(ctx context.Context, draft *history.CommitRecordDraft) (*history.CommitRecord, error)
}

// MessageGenerator is the optional commit message collaborator. Errors mean
// unavailability, never a failed cycle.
type MessageGenerator interface {
	Available() bool
	Theme() string
	Generate(ctx context.Context, diff string) (string, error)
}
