package handler

import (
	"fmt"
	"net/http"

	"github.com/bookclub/library-service/internal/model"
	"github.com/labstack/echo/v4"
)

func (h *Handler) ListLendings(c echo.Context) error {
	ctx := c.Request().Context()
	filter := model.LendingFilter{
		Status:    model.Status(c.QueryParam("status")),
		BookUid:   c.QueryParam("bookId"),
		ReaderUid: c.QueryParam("readerId"),
	}
	lendings, err := h.ledger.ListLendings(ctx, filter)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, lendings)
}

func (h *Handler) CreateLending(c echo.Context) error {
	var req model.CreateLendingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	lending, err := h.ledger.CreateLending(ctx, req)
	if err != nil {
		return httpError(err)
	}
	h.publishAudit(c, "lend", "lending", lending.LendingUid,
		fmt.Sprintf("Book %s lent to reader %s", req.BookUid, req.ReaderUid))
	return c.JSON(http.StatusCreated, lending)
}

func (h *Handler) GetLending(c echo.Context) error {
	ctx := c.Request().Context()
	lending, err := h.ledger.GetLending(ctx, c.Param("lendingUid"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, lending)
}

func (h *Handler) ListOverdueLendings(c echo.Context) error {
	ctx := c.Request().Context()
	lendings, err := h.ledger.ListOverdue(ctx)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, lendings)
}

func (h *Handler) ReturnLending(c echo.Context) error {
	ctx := c.Request().Context()
	lendingUid := c.Param("lendingUid")
	lending, err := h.ledger.ReturnLending(ctx, lendingUid)
	if err != nil {
		return httpError(err)
	}
	h.publishAudit(c, "return", "lending", lendingUid,
		fmt.Sprintf("Book %s returned by reader %s", lending.BookUid, lending.ReaderUid))
	return c.JSON(http.StatusOK, lending)
}

func (h *Handler) DeleteLending(c echo.Context) error {
	ctx := c.Request().Context()
	lendingUid := c.Param("lendingUid")
	if err := h.ledger.DeleteLending(ctx, lendingUid); err != nil {
		return httpError(err)
	}
	h.publishAudit(c, "delete", "lending", lendingUid,
		fmt.Sprintf("Lending record %s deleted", lendingUid))
	return c.NoContent(http.StatusOK)
}
