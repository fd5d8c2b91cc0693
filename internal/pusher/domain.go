package pusher

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// TokenSource is the credential slot, re-read at the start of every push
// attempt so a rotated token takes effect mid-retry.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// RemoteResolver resolves the configured URL of a named remote.
type RemoteResolver interface {
	RemoteURL(ctx context.Context, remote string) (string, error)
}

// Transport performs a single push, or lists remote refs as a reachability
// check. When remoteURL is non-empty it takes precedence over the named
// remote and is never written back to the repository configuration.
type Transport interface {
	Push(ctx context.Context, remote, branch, remoteURL string) error
	List(ctx context.Context, remote, remoteURL string) error
}

// SleepFunc waits between retry attempts; it returns early with the context
// error on cancellation. Injected so tests can observe retry timing without
// real delays.
type SleepFunc func(ctx context.Context, d time.Duration) error

func defaultSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

const githubHTTPSPrefix = "https://github.com/"

// rewriteGitHubURL embeds the token into an unauthenticated GitHub HTTPS
// URL. SSH remotes and URLs that already carry credentials pass through
// untouched.
func rewriteGitHubURL(url, token string) (string, bool) {
	if !strings.HasPrefix(url, githubHTTPSPrefix) || strings.Contains(url, "@") {
		return "", false
	}

	return "https://x-access-token:" + token + "@" + strings.TrimPrefix(url, "https://"), true
}

var credentialedURL = regexp.MustCompile(`(https?://)[^/@\s]+@`)

// redact strips userinfo from any credential-bearing URL inside s before it
// reaches a log line.
func redact(s string) string {
	return credentialedURL.ReplaceAllString(s, "${1}***@")
}
