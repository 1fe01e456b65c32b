package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

func (h *Handler) NotifyOverdue(c echo.Context) error {
	ctx := c.Request().Context()
	tally, err := h.notifier.NotifyOverdue(ctx)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, tally)
}

func (h *Handler) NotifyOverdueOne(c echo.Context) error {
	ctx := c.Request().Context()
	result, err := h.notifier.NotifyOverdueOne(ctx, c.Param("lendingUid"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) ListAuditLogs(c echo.Context) error {
	ctx := c.Request().Context()
	limit := 100
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = n
	}
	entries, err := h.catalog.ListAudit(ctx, limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, entries)
}
