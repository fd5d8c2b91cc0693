package repo

import (
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"repo",
		logger.WithNamedLogger("repo"),
		fx.Provide(NewService),
	)
}
