package github

import "errors"

var (
	ErrNotGitHubRemote = errors.New("remote is not a GitHub repository")
	ErrInvalidRemote   = errors.New("could not parse owner/repository from remote URL")
)
