// Package handler maps HTTP requests onto the repository operations. Every
// handler is thin: bind/validate input, call one repository operation,
// translate the error kind into a status code. Invariant enforcement lives
// entirely in the repository layer.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/grapplehq/ringside/internal/repository"
)

// idParam parses a positive integer path parameter.
func idParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// repoError translates repository error kinds into HTTP responses. Order
// matters: the specific kinds are checked before the broad Conflict kind
// they may wrap.
func repoError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrAlreadyResolved):
		return c.JSON(http.StatusConflict, echo.Map{"error": "match already resolved"})
	case errors.Is(err, repository.ErrInvalidParticipant):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "winner is not a match participant"})
	case errors.Is(err, repository.ErrTitleRetired):
		return c.JSON(http.StatusConflict, echo.Map{"error": "title is retired"})
	case errors.Is(err, repository.ErrInvalidRating), errors.Is(err, repository.ErrInvalidPrestige):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}
