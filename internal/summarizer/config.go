package summarizer

type Config struct {
	// APIKey enables the summarizer; empty disables it entirely.
	APIKey string
	Model  string
	// Theme flavors generated messages ("pirate", "haiku", ...); empty for
	// plain messages.
	Theme     string
	MaxTokens int64
}
