package handler

import (
	"fmt"
	"net/http"

	"github.com/bookclub/library-service/internal/model"
	"github.com/labstack/echo/v4"
)

func (h *Handler) ListBooks(c echo.Context) error {
	ctx := c.Request().Context()
	books, err := h.catalog.ListBooks(ctx, c.QueryParam("search"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) CreateBook(c echo.Context) error {
	var req model.CreateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	book, err := h.catalog.CreateBook(ctx, req)
	if err != nil {
		return httpError(err)
	}
	h.publishAudit(c, "save", "book", book.BookUid, fmt.Sprintf("Book %s is saved", book.Code))
	return c.JSON(http.StatusCreated, book)
}

func (h *Handler) GetBook(c echo.Context) error {
	ctx := c.Request().Context()
	book, err := h.catalog.GetBook(ctx, c.Param("bookUid"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) UpdateBook(c echo.Context) error {
	var req model.UpdateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	bookUid := c.Param("bookUid")
	book, err := h.catalog.UpdateBook(ctx, bookUid, req)
	if err != nil {
		return httpError(err)
	}
	h.publishAudit(c, "update", "book", bookUid, fmt.Sprintf("Book %s updated", book.Code))
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) DeleteBook(c echo.Context) error {
	ctx := c.Request().Context()
	bookUid := c.Param("bookUid")
	if err := h.catalog.DeleteBook(ctx, bookUid); err != nil {
		return httpError(err)
	}
	h.publishAudit(c, "delete", "book", bookUid, fmt.Sprintf("Book %s deleted", bookUid))
	return c.NoContent(http.StatusOK)
}

func (h *Handler) DashboardStats(c echo.Context) error {
	ctx := c.Request().Context()
	stats, err := h.catalog.DashboardStats(ctx)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
