package history

import (
	"fmt"
	"time"

	"github.com/gitpulse/gitpulse/internal/history"
	"github.com/go-core-fx/fiberfx/handler"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	defaultLimit = 50
	maxLimit     = 500

	statsDays = 7
)

type Handler struct {
	records *history.Repository

	logger *zap.Logger
}

func NewHandler(records *history.Repository, logger *zap.Logger) handler.Handler {
	return &Handler{
		records: records,

		logger: logger,
	}
}

// Register implements handler.Handler.
func (h *Handler) Register(r fiber.Router) {
	r.Get("/history", h.list)
	r.Get("/stats", h.stats)
}

func (h *Handler) list(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultLimit)
	if limit < 1 || limit > maxLimit {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d", maxLimit))
	}

	records, err := h.records.Recent(c.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	total, err := h.records.Count(c.Context())
	if err != nil {
		return fmt.Errorf("failed to count history: %w", err)
	}

	return c.JSON(ListResponse{
		Commits: lo.Map(records, func(record history.CommitRecord, _ int) CommitResponse {
			return newCommitResponse(record)
		}),
		Total: total,
	})
}

func (h *Handler) stats(c *fiber.Ctx) error {
	total, err := h.records.Count(c.Context())
	if err != nil {
		return fmt.Errorf("failed to count history: %w", err)
	}

	successRate, err := h.records.SuccessRate(c.Context())
	if err != nil {
		return fmt.Errorf("failed to compute success rate: %w", err)
	}

	generatedRate, err := h.records.GeneratedRate(c.Context())
	if err != nil {
		return fmt.Errorf("failed to compute generated rate: %w", err)
	}

	last24h, err := h.records.CountSince(c.Context(), time.Now().Add(-24*time.Hour))
	if err != nil {
		return fmt.Errorf("failed to count recent commits: %w", err)
	}

	daily, err := h.records.DailyStats(c.Context(), statsDays)
	if err != nil {
		return fmt.Errorf("failed to aggregate daily stats: %w", err)
	}

	types, err := h.records.TypeBreakdown(c.Context())
	if err != nil {
		return fmt.Errorf("failed to aggregate commit types: %w", err)
	}

	return c.JSON(StatsResponse{
		TotalCommits:   total,
		SuccessRate:    successRate,
		GeneratedRate:  generatedRate,
		CommitsLast24h: last24h,
		CommitsByDay:   lo.Map(daily, func(stat history.DailyStat, _ int) DailyStatResponse { return newDailyStatResponse(stat) }),
		CommitTypes:    types,
	})
}
