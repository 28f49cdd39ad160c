package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/grapplehq/ringside/internal/middleware"
	"github.com/grapplehq/ringside/internal/repository"
)

// RosterHandler exposes the roster assignment operations. The exclusivity
// rule (one active show per wrestler) is enforced by RosterRepo inside a
// single transaction; this layer only maps ids and error kinds.
type RosterHandler struct {
	Rosters *repository.RosterRepo
	Cache   *redis.Client
	Prefix  string
}

// NewRosterHandler constructs a RosterHandler.
func NewRosterHandler(rosters *repository.RosterRepo, cache *redis.Client, prefix string) *RosterHandler {
	return &RosterHandler{Rosters: rosters, Cache: cache, Prefix: prefix}
}

// Assign handles POST /v1/shows/:id/roster. The wrestler is moved from
// whatever show they were active on; re-assigning to the same show is a
// no-op success.
func (h *RosterHandler) Assign(c echo.Context) error {
	showID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var body struct {
		WrestlerID int64 `json:"wrestler_id"`
	}
	if err := c.Bind(&body); err != nil || body.WrestlerID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "wrestler_id is required"})
	}
	if err := h.Rosters.Assign(c.Request().Context(), body.WrestlerID, showID); err != nil {
		return repoError(c, err)
	}
	middleware.Invalidate(h.Cache, h.Prefix)
	return c.NoContent(http.StatusNoContent)
}

// Release handles DELETE /v1/shows/:id/roster/:wrestlerID. Releasing an
// inactive pair succeeds without effect.
func (h *RosterHandler) Release(c echo.Context) error {
	showID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	wrestlerID, err := idParam(c, "wrestlerID")
	if err != nil {
		return err
	}
	if err := h.Rosters.Release(c.Request().Context(), wrestlerID, showID); err != nil {
		return repoError(c, err)
	}
	middleware.Invalidate(h.Cache, h.Prefix)
	return c.NoContent(http.StatusNoContent)
}

// Roster handles GET /v1/shows/:id/roster and lists the show's active
// wrestlers.
func (h *RosterHandler) Roster(c echo.Context) error {
	showID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	ws, err := h.Rosters.RosterOf(c.Request().Context(), showID)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, toWrestlerViews(ws))
}

// Assignments handles GET /v1/wrestlers/:id/assignments, the wrestler's
// full assignment history, inactive rows included.
func (h *RosterHandler) Assignments(c echo.Context) error {
	wrestlerID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	history, err := h.Rosters.AssignmentsFor(c.Request().Context(), wrestlerID)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, toAssignmentViews(history))
}

// ActiveShow handles GET /v1/wrestlers/:id/show. The response carries a
// null show_id when the wrestler is unassigned.
func (h *RosterHandler) ActiveShow(c echo.Context) error {
	wrestlerID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	showID, err := h.Rosters.ActiveShowFor(c.Request().Context(), wrestlerID)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"show_id": showID})
}
