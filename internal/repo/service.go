package repo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
	"go.uber.org/zap"
)

// Service is a thin client over a single working tree. Every operation
// reopens the repository, so reads always reflect the current HEAD.
type Service struct {
	config Config
	logger *zap.Logger
}

func NewService(config Config, logger *zap.Logger) *Service {
	return &Service{
		config: config,
		logger: logger,
	}
}

func (s *Service) Path() string {
	return s.config.Path
}

func (s *Service) open() (*git.Repository, *git.Worktree, error) {
	repo, err := git.PlainOpen(s.config.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrNotARepository, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidWorktree, err)
	}

	return repo, worktree, nil
}

// CurrentBranch returns the short name of the branch HEAD points at.
func (s *Service) CurrentBranch(_ context.Context) (string, error) {
	repo, _, err := s.open()
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotARepository, err)
	}

	return head.Name().Short(), nil
}

// HeadHash returns the hash of the current HEAD commit.
func (s *Service) HeadHash(_ context.Context) (string, error) {
	repo, _, err := s.open()
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotARepository, err)
	}

	return head.Hash().String(), nil
}

// HasChanges reports whether the worktree has any staged, unstaged or
// untracked difference from HEAD.
func (s *Service) HasChanges(_ context.Context) (bool, error) {
	status, err := s.status()
	if err != nil {
		return false, err
	}

	return !status.IsClean(), nil
}

// ChangedFiles returns the union of modified, staged and untracked paths.
func (s *Service) ChangedFiles(_ context.Context) ([]string, error) {
	status, err := s.status()
	if err != nil {
		return nil, err
	}

	var files []string
	for path, fileStatus := range status {
		if fileStatus.Staging == git.Unmodified && fileStatus.Worktree == git.Unmodified {
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)

	return files, nil
}

// StatusSummary renders a short per-file status listing, suitable as input
// for commit message generation.
func (s *Service) StatusSummary(_ context.Context) (string, error) {
	status, err := s.status()
	if err != nil {
		return "", err
	}

	var lines []string
	for path, fileStatus := range status {
		if fileStatus.Staging == git.Unmodified && fileStatus.Worktree == git.Unmodified {
			continue
		}
		code := fileStatus.Worktree
		if code == git.Unmodified {
			code = fileStatus.Staging
		}
		lines = append(lines, fmt.Sprintf("%c %s", byte(code), path))
	}
	sort.Strings(lines)

	return strings.Join(lines, "\n"), nil
}

// State recomputes the full worktree snapshot.
func (s *Service) State(ctx context.Context) (*State, error) {
	branch, err := s.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}

	files, err := s.ChangedFiles(ctx)
	if err != nil {
		return nil, err
	}

	return &State{
		Branch:       branch,
		IsDirty:      len(files) > 0,
		ChangedFiles: files,
	}, nil
}

// StageAll stages the entire working tree, the equivalent of `git add -A`.
func (s *Service) StageAll(_ context.Context) error {
	_, worktree, err := s.open()
	if err != nil {
		return err
	}

	if err := worktree.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		s.logger.Error("failed to stage changes", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrStageFailed, err)
	}

	s.logger.Debug("staged all changes")

	return nil
}

// Commit creates a commit from the staged tree. A non-zero author overrides
// both author and committer identity for this commit only.
func (s *Service) Commit(_ context.Context, message string, author Author) (string, error) {
	_, worktree, err := s.open()
	if err != nil {
		return "", err
	}

	options := &git.CommitOptions{}
	if !author.IsZero() {
		signature := &object.Signature{
			Name:  author.Name,
			Email: author.Email,
			When:  time.Now(),
		}
		options.Author = signature
		options.Committer = signature
	}

	hash, err := worktree.Commit(message, options)
	if err != nil {
		if errors.Is(err, git.ErrEmptyCommit) {
			return "", fmt.Errorf("%w: %w", ErrNothingToCommit, err)
		}
		s.logger.Error("failed to commit", zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}

	s.logger.Info("created commit",
		zap.String("hash", hash.String()),
		zap.String("message", firstLine(message)))

	return hash.String(), nil
}

// Pull fast-forwards the given branch from the remote. Retry policy belongs
// to the caller, not here.
func (s *Service) Pull(ctx context.Context, remote, branch string) error {
	_, worktree, err := s.open()
	if err != nil {
		return err
	}

	options := &git.PullOptions{
		RemoteName:   remote,
		SingleBranch: true,
	}
	if branch != "" {
		options.ReferenceName = plumbing.NewBranchReferenceName(branch)
	}

	if err := worktree.PullContext(ctx, options); err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		s.logger.Error("failed to pull repository", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPullFailed, err)
	}

	s.logger.Info("pulled repository",
		zap.String("remote", remote),
		zap.String("branch", branch))

	return nil
}

// RemoteURL resolves the first configured URL of the named remote.
func (s *Service) RemoteURL(_ context.Context, remote string) (string, error) {
	repo, _, err := s.open()
	if err != nil {
		return "", err
	}

	rem, err := repo.Remote(remote)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrRemoteNotFound, remote, err)
	}

	urls := rem.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("%w: %q has no URL", ErrRemoteNotFound, remote)
	}

	return urls[0], nil
}

func (s *Service) status() (git.Status, error) {
	_, worktree, err := s.open()
	if err != nil {
		return nil, err
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWorktree, err)
	}

	return status, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
