package credentials

import (
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"credentials",
		fx.Provide(NewRepository),
	)
}
