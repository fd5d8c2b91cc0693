package orchestrator

import (
	"context"

	"github.com/gitpulse/gitpulse/internal/history"
	"github.com/gitpulse/gitpulse/internal/pusher"
	"github.com/gitpulse/gitpulse/internal/repo"
	"github.com/gitpulse/gitpulse/internal/summarizer"
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module(
		"orchestrator",
		logger.WithNamedLogger("orchestrator"),
		fx.Provide(func(
			config Config,
			repoSvc *repo.Service,
			pushSvc *pusher.Service,
			records *history.Repository,
			generator *summarizer.Service,
			log *zap.Logger,
		) *Service {
			return NewService(config, repoSvc, pushSvc, records, generator, log)
		}),
		fx.Invoke(func(svc *Service, lifecycle fx.Lifecycle) {
			lifecycle.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					svc.Start()
					return nil
				},
				OnStop: func(_ context.Context) error {
					svc.Stop()
					return nil
				},
			})
		}),
	)
}
