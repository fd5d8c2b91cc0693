package summarizer

import (
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"summarizer",
		logger.WithNamedLogger("summarizer"),
		fx.Provide(NewService),
	)
}
