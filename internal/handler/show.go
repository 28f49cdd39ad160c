package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/grapplehq/ringside/internal/middleware"
	"github.com/grapplehq/ringside/internal/repository"
)

// ShowHandler exposes show CRUD.
type ShowHandler struct {
	Shows  *repository.ShowRepo
	Cache  *redis.Client // may be nil; used only to invalidate cached reads
	Prefix string
}

// NewShowHandler constructs a ShowHandler.
func NewShowHandler(shows *repository.ShowRepo, cache *redis.Client, prefix string) *ShowHandler {
	return &ShowHandler{Shows: shows, Cache: cache, Prefix: prefix}
}

type showBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Create handles POST /v1/shows.
func (h *ShowHandler) Create(c echo.Context) error {
	var body showBody
	if err := c.Bind(&body); err != nil || body.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	s, err := h.Shows.Create(c.Request().Context(), body.Name, body.Description)
	if err != nil {
		return repoError(c, err)
	}
	middleware.Invalidate(h.Cache, h.Prefix)
	return c.JSON(http.StatusCreated, toShowView(*s))
}

// Get handles GET /v1/shows/:id.
func (h *ShowHandler) Get(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	s, err := h.Shows.GetByID(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, toShowView(*s))
}

// List handles GET /v1/shows.
func (h *ShowHandler) List(c echo.Context) error {
	shows, err := h.Shows.List(c.Request().Context())
	if err != nil {
		return repoError(c, err)
	}
	views := make([]showView, 0, len(shows))
	for _, s := range shows {
		views = append(views, toShowView(s))
	}
	return c.JSON(http.StatusOK, views)
}

// Update handles PUT /v1/shows/:id.
func (h *ShowHandler) Update(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var body showBody
	if err := c.Bind(&body); err != nil || body.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if err := h.Shows.Update(c.Request().Context(), id, body.Name, body.Description); err != nil {
		return repoError(c, err)
	}
	middleware.Invalidate(h.Cache, h.Prefix)
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/shows/:id. Rosters and matches cascade.
func (h *ShowHandler) Delete(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.Shows.Delete(c.Request().Context(), id); err != nil {
		return repoError(c, err)
	}
	middleware.Invalidate(h.Cache, h.Prefix)
	return c.NoContent(http.StatusNoContent)
}
