package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gitpulse/gitpulse/internal/history"
	"github.com/gitpulse/gitpulse/internal/repo"
	"go.uber.org/zap"
)

// Service decides when to commit and drives each cycle through staging,
// committing, pushing and recording. All cycles, timer-driven and
// triggered, funnel through a single mutual-exclusion gate: at most one is
// ever in flight per working tree.
type Service struct {
	config    Config
	worktree  WorkTree
	pusher    Pusher
	records   Recorder
	generator MessageGenerator

	// gate serializes whole cycles
	gate sync.Mutex

	// stateMu guards paused and nextCommit
	stateMu    sync.Mutex
	paused     bool
	nextCommit time.Time

	// trigger is a single-slot pending-trigger signal; rapid repeated
	// triggers coalesce instead of queueing
	trigger chan struct{}

	cancel context.CancelFunc
	done   chan struct{}

	logger *zap.Logger
}

func NewService(
	config Config,
	worktree WorkTree,
	pusher Pusher,
	records Recorder,
	generator MessageGenerator,
	logger *zap.Logger,
) *Service {
	return &Service{
		config:    config,
		worktree:  worktree,
		pusher:    pusher,
		records:   records,
		generator: generator,
		trigger:   make(chan struct{}, 1),
		logger:    logger,
	}
}

// Start launches the background scheduling loop.
func (s *Service) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(ctx)

	s.logger.Info("orchestrator started",
		zap.Duration("interval", s.config.Interval),
		zap.String("remote", s.config.Remote),
		zap.String("branch", s.config.Branch))
}

// Stop cancels the loop and waits for an in-flight cycle to finish. A cycle
// is never aborted midway.
func (s *Service) Stop() {
	if s.cancel == nil {
		return
	}

	s.cancel()
	<-s.done

	s.logger.Info("orchestrator stopped")
}

func (s *Service) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	s.advanceNextCommit()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			if s.Paused() {
				s.logger.Debug("skipping scheduled cycle, orchestrator is paused")
				s.advanceNextCommit()
				continue
			}
			s.RunCycle(ctx)
			s.advanceNextCommit()

		case <-s.trigger:
			s.RunCycle(ctx)
		}
	}
}

// TriggerNow requests an immediate cycle without blocking the caller. Errors
// from the triggered cycle surface only through status and history reads.
func (s *Service) TriggerNow() {
	select {
	case s.trigger <- struct{}{}:
		s.logger.Info("commit cycle triggered")
	default:
		s.logger.Debug("trigger already pending")
	}
}

// Pause stops the timer from starting new cycles. An in-flight cycle runs to
// completion, and explicit triggers still work.
func (s *Service) Pause() {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.paused = true

	s.logger.Info("orchestrator paused")
}

// Resume re-enables timer-driven cycles starting with the next tick.
func (s *Service) Resume() {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.paused = false

	s.logger.Info("orchestrator resumed")
}

func (s *Service) Paused() bool {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.paused
}

// Status reports the scheduling state for the control surface.
func (s *Service) Status(ctx context.Context) Status {
	s.stateMu.Lock()
	paused := s.paused
	next := s.nextCommit
	s.stateMu.Unlock()

	status := Status{
		Paused:         paused,
		RepositoryPath: s.worktree.Path(),
	}
	if !next.IsZero() {
		status.NextCommitTime = &next
	}

	if branch, err := s.worktree.CurrentBranch(ctx); err == nil {
		status.Branch = branch
	}

	if s.generator != nil {
		status.SummarizerAvailable = s.generator.Available()
		status.Theme = s.generator.Theme()
	}

	return status
}

// RunCycle executes one full cycle under the exclusion gate and records its
// outcome. Concurrent callers serialize; the cycle itself never panics
// across this boundary.
func (s *Service) RunCycle(ctx context.Context) CycleResult {
	s.gate.Lock()
	defer s.gate.Unlock()

	result := s.cycle(ctx)
	cycles.WithLabelValues(string(result.Outcome)).Inc()

	switch result.Outcome {
	case OutcomeNoChanges:
		s.logger.Info("no changes to commit")
	case OutcomeSuccess:
		s.logger.Info("commit cycle succeeded",
			zap.String("hash", result.Hash),
			zap.Int("files_changed", result.FilesChanged))
	case OutcomeFailed:
		s.logger.Error("commit cycle failed", zap.String("reason", result.Reason))
	}

	if result.Outcome != OutcomeNoChanges {
		s.record(ctx, result)
	}

	return result
}

// cycle is the Idle -> Staging -> Committing -> Pushing transition chain.
func (s *Service) cycle(ctx context.Context) CycleResult {
	if s.config.PullBeforeCommit {
		if err := s.worktree.Pull(ctx, s.config.Remote, s.config.Branch); err != nil {
			// A stale base is still committable; report and continue.
			s.logger.Warn("pull before commit failed", zap.Error(err))
		}
	}

	hasChanges, err := s.worktree.HasChanges(ctx)
	if err != nil {
		return CycleResult{Outcome: OutcomeFailed, Reason: fmt.Sprintf("failed to read worktree state: %v", err)}
	}
	if !hasChanges {
		return CycleResult{Outcome: OutcomeNoChanges}
	}

	files, err := s.worktree.ChangedFiles(ctx)
	if err != nil {
		return CycleResult{Outcome: OutcomeFailed, Reason: fmt.Sprintf("failed to list changed files: %v", err)}
	}

	if err := s.worktree.StageAll(ctx); err != nil {
		return CycleResult{Outcome: OutcomeFailed, Reason: fmt.Sprintf("failed to stage changes: %v", err)}
	}

	message, generated := s.composeMessage(ctx, len(files))

	hash, err := s.worktree.Commit(ctx, message, repo.Author{
		Name:  s.config.AuthorName,
		Email: s.config.AuthorEmail,
	})
	if err != nil {
		if errors.Is(err, repo.ErrNothingToCommit) {
			// Changes disappeared between the dirty check and the commit.
			return CycleResult{Outcome: OutcomeNoChanges}
		}
		return CycleResult{Outcome: OutcomeFailed, Reason: fmt.Sprintf("failed to commit: %v", err)}
	}

	result := CycleResult{
		Hash:                 hash,
		Message:              message,
		FilesChanged:         len(files),
		UsedGeneratedMessage: generated,
	}

	if !s.pusher.Push(ctx) {
		result.Outcome = OutcomeFailed
		result.Reason = "commit created but push failed"
		return result
	}

	result.Outcome = OutcomeSuccess
	return result
}

// composeMessage asks the generator first and falls back to a deterministic
// message when it is unavailable or errors.
func (s *Service) composeMessage(ctx context.Context, filesChanged int) (string, bool) {
	if s.generator != nil && s.generator.Available() {
		summary, err := s.worktree.StatusSummary(ctx)
		if err == nil {
			if message, genErr := s.generator.Generate(ctx, summary); genErr == nil && message != "" {
				return message, true
			}
		}
	}

	return FallbackMessage(time.Now(), filesChanged), false
}

// FallbackMessage is the deterministic commit message used when no generator
// is available.
func FallbackMessage(now time.Time, filesChanged int) string {
	return fmt.Sprintf("auto: checkpoint %d file(s) at %s", filesChanged, now.Format("2006-01-02 15:04:05"))
}

func (s *Service) record(ctx context.Context, result CycleResult) {
	draft := &history.CommitRecordDraft{
		Hash:                 result.Hash,
		Message:              result.Message,
		Timestamp:            time.Now(),
		FilesChanged:         result.FilesChanged,
		Success:              result.Outcome == OutcomeSuccess,
		UsedGeneratedMessage: result.UsedGeneratedMessage,
		Reason:               result.Reason,
	}

	if _, err := s.records.Append(ctx, draft); err != nil {
		s.logger.Error("failed to record cycle outcome", zap.Error(err))
	}
}

func (s *Service) advanceNextCommit() {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.nextCommit = time.Now().Add(s.config.Interval)
}
