package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"
)

const (
	defaultModel     = "claude-3-5-haiku-latest"
	defaultMaxTokens = 256

	systemPrompt = "You write git commit messages. Reply with a single " +
		"conventional-commit subject line (type: summary), at most 72 " +
		"characters, and nothing else."
)

// Service generates commit messages from a worktree status summary. It is an
// optional collaborator: callers must treat any error as unavailability and
// fall back to a deterministic message.
type Service struct {
	config Config
	client anthropic.Client

	logger *zap.Logger
}

func NewService(config Config, logger *zap.Logger) *Service {
	if config.Model == "" {
		config.Model = defaultModel
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = defaultMaxTokens
	}

	s := &Service{
		config: config,
		logger: logger,
	}
	if config.APIKey != "" {
		s.client = anthropic.NewClient(option.WithAPIKey(config.APIKey))
	}

	return s
}

// Available reports whether message generation is configured at all.
func (s *Service) Available() bool {
	return s.config.APIKey != ""
}

// Theme returns the configured message theme.
func (s *Service) Theme() string {
	return s.config.Theme
}

// Generate produces a commit message for the given status summary. Errors
// never carry further than the caller's fallback path.
func (s *Service) Generate(ctx context.Context, diff string) (string, error) {
	if !s.Available() {
		return "", ErrUnavailable
	}

	prompt := "Write a commit message for these changes:\n\n" + diff
	if s.config.Theme != "" {
		prompt += "\n\nStyle the message with a " + s.config.Theme + " theme."
	}

	message, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.config.Model),
		MaxTokens: s.config.MaxTokens,
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		s.logger.Warn("message generation failed", zap.Error(err))
		return "", fmt.Errorf("failed to generate message: %w", err)
	}

	for _, block := range message.Content {
		if text := strings.TrimSpace(block.Text); text != "" {
			return firstLine(text), nil
		}
	}

	return "", ErrEmptyResult
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
