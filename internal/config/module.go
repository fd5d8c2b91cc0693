package config

import (
	"github.com/gitpulse/gitpulse/internal/orchestrator"
	"github.com/gitpulse/gitpulse/internal/pusher"
	"github.com/gitpulse/gitpulse/internal/repo"
	"github.com/gitpulse/gitpulse/internal/summarizer"
	"github.com/gitpulse/gitpulse/pkg/badgerfx"
	"github.com/go-core-fx/fiberfx"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"config",
		fx.Provide(New),
		fx.Provide(func(cfg Config) fiberfx.Config {
			return fiberfx.Config{
				Address:     cfg.HTTP.Address,
				ProxyHeader: cfg.HTTP.ProxyHeader,
				Proxies:     cfg.HTTP.Proxies,
			}
		}),
		fx.Provide(func(cfg Config) badgerfx.Config {
			return badgerfx.Config{
				Dir: cfg.Storage.DataDir,
			}
		}),
		fx.Provide(func(cfg Config) repo.Config {
			return repo.Config{
				Path: cfg.Repo.Path,
			}
		}),
		fx.Provide(func(cfg Config) pusher.Config {
			return pusher.Config{
				Remote:        cfg.Repo.Remote,
				Branch:        cfg.Repo.Branch,
				RetryAttempts: cfg.Scheduler.PushRetryAttempts,
				RetryDelay:    cfg.Scheduler.PushRetryDelay,
			}
		}),
		fx.Provide(func(cfg Config) orchestrator.Config {
			return orchestrator.Config{
				Interval:         cfg.Scheduler.Interval,
				Remote:           cfg.Repo.Remote,
				Branch:           cfg.Repo.Branch,
				AuthorName:       cfg.Repo.AuthorName,
				AuthorEmail:      cfg.Repo.AuthorEmail,
				PullBeforeCommit: cfg.Repo.PullBefore,
			}
		}),
		fx.Provide(func(cfg Config) summarizer.Config {
			return summarizer.Config{
				APIKey:    cfg.Summarizer.APIKey,
				Model:     cfg.Summarizer.Model,
				Theme:     cfg.Summarizer.Theme,
				MaxTokens: cfg.Summarizer.MaxTokens,
			}
		}),
	)
}
