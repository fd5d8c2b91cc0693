package control

import (
	"errors"
	"time"

	"github.com/gitpulse/gitpulse/internal/history"
	"github.com/gitpulse/gitpulse/internal/orchestrator"
	"github.com/go-core-fx/fiberfx/handler"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	orchestratorSvc *orchestrator.Service
	records         *history.Repository

	logger *zap.Logger
}

func NewHandler(orchestratorSvc *orchestrator.Service, records *history.Repository, logger *zap.Logger) handler.Handler {
	return &Handler{
		orchestratorSvc: orchestratorSvc,
		records:         records,

		logger: logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r.Get("/status", h.status)

	control := r.Group("/control")
	control.Post("/pause", h.pause)
	control.Post("/resume", h.resume)
	control.Post("/trigger", h.trigger)
}

func (h *Handler) status(c *fiber.Ctx) error {
	status := h.orchestratorSvc.Status(c.Context())

	response := StatusResponse{
		Paused:              status.Paused,
		RepositoryPath:      status.RepositoryPath,
		Branch:              status.Branch,
		NextCommitTime:      status.NextCommitTime,
		SummarizerAvailable: status.SummarizerAvailable,
		Theme:               status.Theme,
	}
	if status.NextCommitTime != nil {
		seconds := int64(time.Until(*status.NextCommitTime).Seconds())
		if seconds < 0 {
			seconds = 0
		}
		response.NextCommitIn = &seconds
	}

	last, err := h.records.Last(c.Context())
	switch {
	case err == nil:
		response.LastCommit = newLastCommitResponse(last)
	case !errors.Is(err, history.ErrNotFound):
		h.logger.Warn("failed to read last commit", zap.Error(err))
	}

	return c.JSON(response)
}

func (h *Handler) pause(c *fiber.Ctx) error {
	h.orchestratorSvc.Pause()

	return c.JSON(ActionResponse{Status: "paused"})
}

func (h *Handler) resume(c *fiber.Ctx) error {
	h.orchestratorSvc.Resume()

	return c.JSON(ActionResponse{Status: "resumed"})
}

// trigger is fire-and-forget: the cycle runs in the background and its
// outcome lands in status and history.
func (h *Handler) trigger(c *fiber.Ctx) error {
	h.orchestratorSvc.TriggerNow()

	return c.Status(fiber.StatusAccepted).JSON(ActionResponse{Status: "triggered"})
}
