package settings

import (
	"errors"
	"fmt"

	"github.com/gitpulse/gitpulse/internal/credentials"
	"github.com/gitpulse/gitpulse/internal/github"
	"github.com/gitpulse/gitpulse/internal/pusher"
	"github.com/gitpulse/gitpulse/internal/repo"
	"github.com/gitpulse/gitpulse/internal/server/validation"
	"github.com/go-core-fx/fiberfx/handler"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	credentialsRepo *credentials.Repository
	githubSvc       *github.Service
	repoSvc         *repo.Service
	pusherSvc       *pusher.Service
	pushConfig      pusher.Config

	validator *validator.Validate
	logger    *zap.Logger
}

func NewHandler(
	credentialsRepo *credentials.Repository,
	githubSvc *github.Service,
	repoSvc *repo.Service,
	pusherSvc *pusher.Service,
	pushConfig pusher.Config,
	validator *validator.Validate,
	logger *zap.Logger,
) handler.Handler {
	return &Handler{
		credentialsRepo: credentialsRepo,
		githubSvc:       githubSvc,
		repoSvc:         repoSvc,
		pusherSvc:       pusherSvc,
		pushConfig:      pushConfig,

		validator: validator,
		logger:    logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r = r.Group("/settings")

	r.Use(h.errorsHandler)
	r.Get("/token", h.get)
	r.Post("/token", validation.DecorateWithBodyEx(h.validator, h.post))
	r.Delete("/token", h.delete)
	r.Post("/token/test", validation.DecorateWithBodyEx(h.validator, h.test))
	r.Post("/push/test", h.testPush)
}

func (h *Handler) get(c *fiber.Ctx) error {
	hasToken, err := h.credentialsRepo.HasToken(c.Context())
	if err != nil {
		return fmt.Errorf("failed to check token: %w", err)
	}

	return c.JSON(TokenStatusResponse{HasToken: hasToken})
}

func (h *Handler) post(c *fiber.Ctx, req *TokenRequest) error {
	if err := h.credentialsRepo.SetToken(c.Context(), req.Token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	h.logger.Info("push token updated")

	return c.Status(fiber.StatusCreated).JSON(TokenStatusResponse{HasToken: true})
}

func (h *Handler) delete(c *fiber.Ctx) error {
	if err := h.credentialsRepo.DeleteToken(c.Context()); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}

	h.logger.Info("push token removed")

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) test(c *fiber.Ctx, req *TokenRequest) error {
	remoteURL, err := h.repoSvc.RemoteURL(c.Context(), h.pushConfig.Remote)
	if err != nil {
		return fmt.Errorf("failed to resolve remote: %w", err)
	}

	check, err := h.githubSvc.ValidateToken(c.Context(), req.Token, remoteURL)
	if err != nil {
		return fmt.Errorf("failed to validate token: %w", err)
	}

	return c.JSON(newTokenCheckResponse(check))
}

// testPush checks reachability of the configured push remote with the
// stored credential. An unreachable remote is an API-level result, not an
// error.
func (h *Handler) testPush(c *fiber.Ctx) error {
	if err := h.pusherSvc.CheckRemote(c.Context()); err != nil {
		if errors.Is(err, pusher.ErrRemoteUnreachable) {
			return c.JSON(PushCheckResponse{Reachable: false, Reason: err.Error()})
		}
		return fmt.Errorf("failed to check remote: %w", err)
	}

	return c.JSON(PushCheckResponse{Reachable: true})
}

func (h *Handler) errorsHandler(c *fiber.Ctx) error {
	err := c.Next()
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, credentials.ErrEmptyToken):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, github.ErrNotGitHubRemote), errors.Is(err, github.ErrInvalidRemote):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, repo.ErrRemoteNotFound):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}

	return err //nolint:wrapcheck //already wrapped
}
