package repo

import "errors"

var (
	ErrNotARepository  = errors.New("not a git repository")
	ErrInvalidWorktree = errors.New("invalid worktree")
	ErrStageFailed     = errors.New("failed to stage changes")
	ErrCommitFailed    = errors.New("failed to create commit")
	ErrNothingToCommit = errors.New("nothing to commit")
	ErrPullFailed      = errors.New("failed to pull repository")
	ErrRemoteNotFound  = errors.New("remote not found")
)
