package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"fundchamps/internal/service"

	"github.com/labstack/echo/v4"
)

type StatsHandler struct {
	statsService service.StatsService
}

func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

func (h *StatsHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()

	resp, err := h.statsService.Stats(ctx)
	if err != nil {
		return fmt.Errorf("load stats: %w", err)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *StatsHandler) Transactions(c echo.Context) error {
	ctx := c.Request().Context()

	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 500 {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "limit must be between 1 and 500",
			})
		}
		limit = n
	}

	resp, err := h.statsService.RecentTransactions(ctx, limit)
	if err != nil {
		return fmt.Errorf("list transactions: %w", err)
	}

	return c.JSON(http.StatusOK, map[string]any{"items": resp})
}
