package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/grapplehq/ringside/internal/model"
	"github.com/grapplehq/ringside/internal/repository"
)

// WrestlerHandler exposes wrestler CRUD and profile updates.
type WrestlerHandler struct {
	Wrestlers *repository.WrestlerRepo
}

// NewWrestlerHandler constructs a WrestlerHandler.
func NewWrestlerHandler(wrestlers *repository.WrestlerRepo) *WrestlerHandler {
	return &WrestlerHandler{Wrestlers: wrestlers}
}

// Create handles POST /v1/wrestlers. Name and gender are required; all
// enhanced profile fields are optional and inserted in the same statement
// when present.
func (h *WrestlerHandler) Create(c echo.Context) error {
	var body struct {
		Name   string `json:"name"`
		Gender string `json:"gender"`
		repository.EnhancedProfile
	}
	if err := c.Bind(&body); err != nil || body.Name == "" || body.Gender == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and gender are required"})
	}
	ctx := c.Request().Context()
	var (
		w   *model.Wrestler
		err error
	)
	if body.EnhancedProfile == (repository.EnhancedProfile{}) {
		w, err = h.Wrestlers.Create(ctx, body.Name, body.Gender, true)
	} else {
		w, err = h.Wrestlers.CreateEnhanced(ctx, body.Name, body.Gender, true, body.EnhancedProfile)
	}
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusCreated, toWrestlerView(*w))
}

// Get handles GET /v1/wrestlers/:id.
func (h *WrestlerHandler) Get(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	w, err := h.Wrestlers.GetByID(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, toWrestlerView(*w))
}

// List handles GET /v1/wrestlers.
func (h *WrestlerHandler) List(c echo.Context) error {
	ws, err := h.Wrestlers.List(c.Request().Context())
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, toWrestlerViews(ws))
}

// Delete handles DELETE /v1/wrestlers/:id. Roster history, reigns and
// match slots cascade at the schema level.
func (h *WrestlerHandler) Delete(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.Wrestlers.Delete(c.Request().Context(), id); err != nil {
		return repoError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateRatings handles PUT /v1/wrestlers/:id/ratings.
func (h *WrestlerHandler) UpdateRatings(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var body model.PowerRatings
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.Wrestlers.UpdatePowerRatings(c.Request().Context(), id, body); err != nil {
		return repoError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateStats handles PUT /v1/wrestlers/:id/stats.
func (h *WrestlerHandler) UpdateStats(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var body struct {
		Wins   int     `json:"wins"`
		Losses int     `json:"losses"`
		Height *string `json:"height"`
		Weight *string `json:"weight"`
	}
	if err := c.Bind(&body); err != nil || body.Wins < 0 || body.Losses < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.Wrestlers.UpdateBasicStats(c.Request().Context(), id, body.Wins, body.Losses, body.Height, body.Weight); err != nil {
		return repoError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateProfile handles PATCH /v1/wrestlers/:id/profile. Only the fields
// present in the body are changed.
func (h *WrestlerHandler) UpdateProfile(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var body struct {
		Name      *string `json:"name"`
		RealName  *string `json:"real_name"`
		Biography *string `json:"biography"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()
	if body.Name != nil {
		if *body.Name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "name cannot be empty"})
		}
		if err := h.Wrestlers.UpdateName(ctx, id, *body.Name); err != nil {
			return repoError(c, err)
		}
	}
	if body.RealName != nil {
		if err := h.Wrestlers.UpdateRealName(ctx, id, body.RealName); err != nil {
			return repoError(c, err)
		}
	}
	if body.Biography != nil {
		if err := h.Wrestlers.UpdateBiography(ctx, id, body.Biography); err != nil {
			return repoError(c, err)
		}
	}
	return c.NoContent(http.StatusNoContent)
}
