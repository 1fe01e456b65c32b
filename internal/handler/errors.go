package handler

import (
	"net/http"

	"github.com/bookclub/library-service/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// httpError translates the typed domain failures into status codes. Anything
// unrecognized is an internal error.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrAlreadyReturned),
		errors.Is(err, errs.ErrDuplicateLoan):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrNoCopies),
		errors.Is(err, errs.ErrHasOpenLoans),
		errors.Is(err, errs.ErrCopiesOnLoan),
		errors.Is(err, errs.ErrNotOverdue):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
