package orchestrator

import "time"

type Config struct {
	// Interval between timer-driven commit cycles
	Interval time.Duration
	Remote   string
	Branch   string

	AuthorName  string
	AuthorEmail string

	// PullBeforeCommit fast-forwards from the remote before staging
	PullBeforeCommit bool
}
