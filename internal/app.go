package internal

import (
	"context"

	"github.com/capcom6/go-infra-fx/validator"
	"github.com/gitpulse/gitpulse/internal/config"
	"github.com/gitpulse/gitpulse/internal/credentials"
	"github.com/gitpulse/gitpulse/internal/github"
	"github.com/gitpulse/gitpulse/internal/history"
	"github.com/gitpulse/gitpulse/internal/orchestrator"
	"github.com/gitpulse/gitpulse/internal/pusher"
	"github.com/gitpulse/gitpulse/internal/repo"
	"github.com/gitpulse/gitpulse/internal/server"
	"github.com/gitpulse/gitpulse/internal/summarizer"
	"github.com/gitpulse/gitpulse/pkg/badgerfx"
	"github.com/go-core-fx/fiberfx"
	"github.com/go-core-fx/healthfx"
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Run() {
	fx.New(
		// CORE MODULES
		logger.Module(),
		logger.WithFxDefaultLogger(),
		badgerfx.Module(),
		healthfx.Module(),
		fiberfx.Module(),
		validator.Module,
		//
		// APP MODULES
		config.Module(),
		server.Module(),
		//
		// BUSINESS MODULES
		fx.Provide(func() healthfx.Version { return healthfx.Version{Version: "0.1.0", ReleaseID: 1} }),
		repo.Module(),
		credentials.Module(),
		history.Module(),
		summarizer.Module(),
		github.Module(),
		pusher.Module(),
		orchestrator.Module(),
		//
		// LIFECYCLE MANAGEMENT
		fx.Invoke(func(lc fx.Lifecycle, logger *zap.Logger) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					logger.Info("🚀 GitPulse starting up")
					return nil
				},
				OnStop: func(_ context.Context) error {
					logger.Info("🛑 GitPulse shutting down gracefully")
					return nil
				},
			})
		}),
	).Run()
}
