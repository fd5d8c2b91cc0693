package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v84/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Service checks candidate tokens against the GitHub API before they are
// committed to the credential slot.
type Service struct {
	logger *zap.Logger
}

func NewService(logger *zap.Logger) *Service {
	return &Service{
		logger: logger,
	}
}

// ValidateToken checks whether token grants push access to the repository
// behind remoteURL. API-level rejections (bad token, missing repo) come back
// as a TokenCheck, not an error; errors are reserved for unusable input and
// transport failures.
func (s *Service) ValidateToken(ctx context.Context, token, remoteURL string) (*TokenCheck, error) {
	owner, name, err := ParseRemote(remoteURL)
	if err != nil {
		return nil, err
	}

	client := github.NewClient(oauth2.NewClient(ctx, oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)))

	repository, resp, err := client.Repositories.Get(ctx, owner, name)
	if err != nil {
		if resp != nil {
			switch resp.StatusCode {
			case http.StatusUnauthorized:
				return &TokenCheck{Valid: false, Reason: "invalid token"}, nil
			case http.StatusForbidden:
				return &TokenCheck{Valid: true, Reason: "token lacks repository access"}, nil
			case http.StatusNotFound:
				return &TokenCheck{Valid: true, Reason: "repository not found or token lacks access"}, nil
			}
		}
		s.logger.Error("failed to query repository", zap.Error(err))
		return nil, fmt.Errorf("failed to query repository: %w", err)
	}

	check := &TokenCheck{Valid: true}
	if repository.GetPermissions().GetPush() {
		check.CanPush = true
	} else {
		check.Reason = "token valid but has no push permission"
	}

	return check, nil
}

// ParseRemote extracts owner and repository name from a GitHub HTTPS or SSH
// remote URL.
func ParseRemote(remoteURL string) (owner, name string, err error) {
	var path string
	switch {
	case strings.HasPrefix(remoteURL, "https://github.com/"):
		path = strings.TrimPrefix(remoteURL, "https://github.com/")
	case strings.HasPrefix(remoteURL, "git@github.com:"):
		path = strings.TrimPrefix(remoteURL, "git@github.com:")
	default:
		return "", "", fmt.Errorf("%w: %s", ErrNotGitHubRemote, remoteURL)
	}

	path = strings.TrimSuffix(strings.TrimSuffix(path, "/"), ".git")
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidRemote, remoteURL)
	}

	return parts[0], parts[1], nil
}
