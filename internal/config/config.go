package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-core-fx/config"
)

type http struct {
	Address     string   `koanf:"address"`
	ProxyHeader string   `koanf:"proxy_header"`
	Proxies     []string `koanf:"proxies"`
}

type storageConfig struct {
	DataDir string `koanf:"data_dir"`
}

type repoConfig struct {
	Path        string `koanf:"path"`
	Remote      string `koanf:"remote"`
	Branch      string `koanf:"branch"`
	AuthorName  string `koanf:"author_name"`
	AuthorEmail string `koanf:"author_email"`
	PullBefore  bool   `koanf:"pull_before_commit"`
}

type schedulerConfig struct {
	Interval          time.Duration `koanf:"interval"`
	PushRetryAttempts int           `koanf:"push_retry_attempts"`
	PushRetryDelay    time.Duration `koanf:"push_retry_delay"`
}

type summarizerConfig struct {
	APIKey    string `koanf:"api_key"`
	Model     string `koanf:"model"`
	Theme     string `koanf:"theme"`
	MaxTokens int64  `koanf:"max_tokens"`
}

type Config struct {
	HTTP http `koanf:"http"`

	Storage    storageConfig    `koanf:"storage"`
	Repo       repoConfig       `koanf:"repo"`
	Scheduler  schedulerConfig  `koanf:"scheduler"`
	Summarizer summarizerConfig `koanf:"summarizer"`
}

func Default() Config {
	//nolint:exhaustruct,mnd //default values
	return Config{
		HTTP: http{
			Address:     "127.0.0.1:3000",
			ProxyHeader: "X-Forwarded-For",
			Proxies:     []string{},
		},

		Storage: storageConfig{
			DataDir: "./data",
		},

		Repo: repoConfig{
			Path:   "./repo",
			Remote: "origin",
			Branch: "main",
		},

		Scheduler: schedulerConfig{
			Interval:          30 * time.Minute,
			PushRetryAttempts: 3,
			PushRetryDelay:    30 * time.Second,
		},
	}
}

func New() (Config, error) {
	cfg := Default()

	options := []config.Option{}
	if yamlPath := os.Getenv("CONFIG_PATH"); yamlPath != "" {
		options = append(options, config.WithLocalYAML(yamlPath))
	}

	if err := config.Load(&cfg, options...); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}
