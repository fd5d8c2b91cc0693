package pusher

import (
	"github.com/gitpulse/gitpulse/internal/credentials"
	"github.com/gitpulse/gitpulse/internal/repo"
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module(
		"pusher",
		logger.WithNamedLogger("pusher"),
		fx.Provide(func(repoSvc *repo.Service) Transport {
			return NewGitTransport(repoSvc.Path())
		}, fx.Private),
		fx.Provide(func(
			config Config,
			tokens *credentials.Repository,
			repoSvc *repo.Service,
			transport Transport,
			log *zap.Logger,
		) *Service {
			return NewService(config, tokens, repoSvc, transport, log)
		}),
	)
}
