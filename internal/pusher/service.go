package pusher

import (
	"context"
	"errors"
	"fmt"

	"github.com/gitpulse/gitpulse/internal/credentials"
	"go.uber.org/zap"
)

// Service delivers local commits to the remote, retrying transient failures
// with a fixed delay between attempts.
type Service struct {
	config    Config
	tokens    TokenSource
	resolver  RemoteResolver
	transport Transport
	sleep     SleepFunc

	logger *zap.Logger
}

func NewService(
	config Config,
	tokens TokenSource,
	resolver RemoteResolver,
	transport Transport,
	logger *zap.Logger,
) *Service {
	return NewServiceWithSleep(config, tokens, resolver, transport, defaultSleep, logger)
}

// NewServiceWithSleep injects the inter-attempt sleep, letting tests
// simulate retry timing without real delays.
func NewServiceWithSleep(
	config Config,
	tokens TokenSource,
	resolver RemoteResolver,
	transport Transport,
	sleep SleepFunc,
	logger *zap.Logger,
) *Service {
	if config.RetryAttempts < 1 {
		config.RetryAttempts = 1
	}

	return &Service{
		config:    config,
		tokens:    tokens,
		resolver:  resolver,
		transport: transport,
		sleep:     sleep,
		logger:    logger,
	}
}

// Push attempts to push the configured branch, retrying up to the configured
// number of attempts. It returns true as soon as one attempt succeeds.
func (s *Service) Push(ctx context.Context) bool {
	attempts := s.config.RetryAttempts

	for attempt := 1; attempt <= attempts; attempt++ {
		pushAttempts.Inc()

		err := s.pushOnce(ctx)
		if err == nil {
			s.logger.Info("pushed to remote",
				zap.String("remote", s.config.Remote),
				zap.String("branch", s.config.Branch),
				zap.Int("attempt", attempt))
			return true
		}

		pushFailures.Inc()
		s.logger.Warn("push attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("attempts", attempts),
			zap.String("error", redact(err.Error())))

		if attempt == attempts {
			break
		}

		s.logger.Info("retrying push", zap.Duration("delay", s.config.RetryDelay))
		if sleepErr := s.sleep(ctx, s.config.RetryDelay); sleepErr != nil {
			s.logger.Warn("push retry cancelled", zap.Error(sleepErr))
			return false
		}
	}

	s.logger.Error("failed to push after all attempts", zap.Int("attempts", attempts))

	return false
}

// pushOnce performs one attempt. The credential slot is re-read here, not
// once per retry loop, so a token rotated mid-retry is picked up.
func (s *Service) pushOnce(ctx context.Context) error {
	return s.transport.Push(ctx, s.config.Remote, s.config.Branch, s.authenticatedURL(ctx))
}

// CheckRemote reports whether the push target is reachable, using the same
// URL rewrite a real push would. Nothing is written to the remote, and the
// returned error message is already redacted.
func (s *Service) CheckRemote(ctx context.Context) error {
	if err := s.transport.List(ctx, s.config.Remote, s.authenticatedURL(ctx)); err != nil {
		s.logger.Warn("remote check failed", zap.String("error", redact(err.Error())))
		return fmt.Errorf("%w: %s", ErrRemoteUnreachable, redact(err.Error()))
	}

	s.logger.Info("remote reachable", zap.String("remote", s.config.Remote))

	return nil
}

// authenticatedURL resolves the remote URL with the stored token embedded,
// or "" when the operation should go through the named remote untouched.
func (s *Service) authenticatedURL(ctx context.Context) string {
	token, err := s.tokens.Token(ctx)
	switch {
	case err == nil:
		resolved, resolveErr := s.resolver.RemoteURL(ctx, s.config.Remote)
		if resolveErr != nil {
			s.logger.Debug("failed to resolve remote URL, using the remote name",
				zap.String("error", redact(resolveErr.Error())))
		} else if rewritten, ok := rewriteGitHubURL(resolved, token); ok {
			return rewritten
		}
	case errors.Is(err, credentials.ErrNoToken):
		// No credential stored; rely on ambient auth (SSH agent, credential
		// helper).
	default:
		s.logger.Warn("failed to read push credential", zap.Error(err))
	}

	return ""
}
