package handler

import (
	"fmt"
	"net/http"

	"github.com/bookclub/library-service/internal/model"
	"github.com/labstack/echo/v4"
)

func (h *Handler) ListReaders(c echo.Context) error {
	ctx := c.Request().Context()
	readers, err := h.membership.ListReaders(ctx, c.QueryParam("search"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, readers)
}

func (h *Handler) CreateReader(c echo.Context) error {
	var req model.CreateReaderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	reader, err := h.membership.CreateReader(ctx, req)
	if err != nil {
		return httpError(err)
	}
	h.publishAudit(c, "save", "reader", reader.ReaderUid, fmt.Sprintf("Reader %s is saved", reader.Code))
	return c.JSON(http.StatusCreated, reader)
}

func (h *Handler) GetReader(c echo.Context) error {
	ctx := c.Request().Context()
	reader, err := h.membership.GetReader(ctx, c.Param("readerUid"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, reader)
}

func (h *Handler) UpdateReader(c echo.Context) error {
	var req model.UpdateReaderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	readerUid := c.Param("readerUid")
	reader, err := h.membership.UpdateReader(ctx, readerUid, req)
	if err != nil {
		return httpError(err)
	}
	h.publishAudit(c, "update", "reader", readerUid, fmt.Sprintf("Reader %s updated", reader.Code))
	return c.JSON(http.StatusOK, reader)
}

func (h *Handler) DeleteReader(c echo.Context) error {
	ctx := c.Request().Context()
	readerUid := c.Param("readerUid")
	if err := h.membership.DeleteReader(ctx, readerUid); err != nil {
		return httpError(err)
	}
	h.publishAudit(c, "delete", "reader", readerUid, fmt.Sprintf("Reader %s deleted", readerUid))
	return c.NoContent(http.StatusOK)
}
