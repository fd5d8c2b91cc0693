package github

import (
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"github",
		logger.WithNamedLogger("github"),
		fx.Provide(NewService),
	)
}
