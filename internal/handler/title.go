package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/grapplehq/ringside/internal/middleware"
	"github.com/grapplehq/ringside/internal/queue"
	"github.com/grapplehq/ringside/internal/repository"
	queue_publisher "github.com/grapplehq/ringside/internal/service"
)

// TitleHandler exposes championship CRUD and the holder-history tracker.
// Crowning and vacating commit first; the title.changed event is published
// afterwards and a broker outage never undoes the change.
type TitleHandler struct {
	Titles    *repository.TitleRepo
	Wrestlers *repository.WrestlerRepo
	Cache     *redis.Client
	Prefix    string
}

// NewTitleHandler constructs a TitleHandler.
func NewTitleHandler(titles *repository.TitleRepo, wrestlers *repository.WrestlerRepo, cache *redis.Client, prefix string) *TitleHandler {
	return &TitleHandler{Titles: titles, Wrestlers: wrestlers, Cache: cache, Prefix: prefix}
}

// Create handles POST /v1/titles.
func (h *TitleHandler) Create(c echo.Context) error {
	var body struct {
		Name         string `json:"name"`
		TitleType    string `json:"title_type"`
		Division     string `json:"division"`
		PrestigeTier int    `json:"prestige_tier"`
		Gender       string `json:"gender"`
		ShowID       *int64 `json:"show_id"`
	}
	if err := c.Bind(&body); err != nil || body.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if body.TitleType == "" {
		body.TitleType = "singles"
	}
	if body.Division == "" {
		body.Division = "world"
	}
	if body.Gender == "" {
		body.Gender = "Male"
	}
	t, err := h.Titles.Create(c.Request().Context(), repository.TitleParams{
		Name:         body.Name,
		TitleType:    body.TitleType,
		Division:     body.Division,
		PrestigeTier: body.PrestigeTier,
		Gender:       body.Gender,
		ShowID:       body.ShowID,
		UserCreated:  true,
	})
	if err != nil {
		return repoError(c, err)
	}
	middleware.Invalidate(h.Cache, h.Prefix)
	return c.JSON(http.StatusCreated, toTitleView(*t))
}

// Get handles GET /v1/titles/:id.
func (h *TitleHandler) Get(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	t, err := h.Titles.GetByID(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, toTitleView(*t))
}

// List handles GET /v1/titles.
func (h *TitleHandler) List(c echo.Context) error {
	ts, err := h.Titles.List(c.Request().Context())
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, toTitleViews(ts))
}

// ListWithHolders handles GET /v1/titles/holders: every title with its
// current holder's name, vacant belts included.
func (h *TitleHandler) ListWithHolders(c echo.Context) error {
	ts, err := h.Titles.ListWithHolders(c.Request().Context())
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, toTitleWithHolderViews(ts))
}

// ForShow handles GET /v1/shows/:id/titles.
func (h *TitleHandler) ForShow(c echo.Context) error {
	showID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	ts, err := h.Titles.ForShow(c.Request().Context(), showID)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, toTitleViews(ts))
}

// Unassigned handles GET /v1/titles/unassigned, the active belts reserved to
// no show.
func (h *TitleHandler) Unassigned(c echo.Context) error {
	ts, err := h.Titles.Unassigned(c.Request().Context())
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, toTitleViews(ts))
}

// SetActive handles PUT /v1/titles/:id/active. Retiring a belt blocks
// further crowning but does not vacate it.
func (h *TitleHandler) SetActive(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var body struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.Titles.SetActive(c.Request().Context(), id, body.IsActive); err != nil {
		return repoError(c, err)
	}
	middleware.Invalidate(h.Cache, h.Prefix)
	return c.NoContent(http.StatusNoContent)
}

// AssignToShow handles PUT /v1/titles/:id/show. A null show_id releases the
// reservation so the belt can be booked across shows.
func (h *TitleHandler) AssignToShow(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var body struct {
		ShowID *int64 `json:"show_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := h.Titles.AssignToShow(c.Request().Context(), id, body.ShowID); err != nil {
		return repoError(c, err)
	}
	middleware.Invalidate(h.Cache, h.Prefix)
	return c.NoContent(http.StatusNoContent)
}

// Crown handles POST /v1/titles/:id/crown: a manual title change outside any
// match, with optional event metadata for the reign record.
func (h *TitleHandler) Crown(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var body struct {
		WrestlerID    int64   `json:"wrestler_id"`
		EventName     *string `json:"event_name"`
		EventLocation *string `json:"event_location"`
		ChangeMethod  *string `json:"change_method"`
	}
	if err := c.Bind(&body); err != nil || body.WrestlerID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "wrestler_id is required"})
	}
	ctx := c.Request().Context()
	meta := repository.ReignMeta{
		EventName:     body.EventName,
		EventLocation: body.EventLocation,
		ChangeMethod:  body.ChangeMethod,
	}
	if err := h.Titles.Crown(ctx, id, body.WrestlerID, meta); err != nil {
		return repoError(c, err)
	}
	middleware.Invalidate(h.Cache, h.Prefix)
	h.publishChange(c, id, &body.WrestlerID, nil, body.EventName, body.ChangeMethod)
	return c.NoContent(http.StatusNoContent)
}

// Vacate handles POST /v1/titles/:id/vacate.
func (h *TitleHandler) Vacate(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.Titles.Vacate(c.Request().Context(), id); err != nil {
		return repoError(c, err)
	}
	middleware.Invalidate(h.Cache, h.Prefix)
	h.publishChange(c, id, nil, nil, nil, nil)
	return c.NoContent(http.StatusNoContent)
}

// Holder handles GET /v1/titles/:id/holder. The response carries a null
// wrestler_id when the title is vacant.
func (h *TitleHandler) Holder(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	wrestlerID, err := h.Titles.CurrentHolder(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"wrestler_id": wrestlerID})
}

// History handles GET /v1/titles/:id/history, every reign oldest first.
func (h *TitleHandler) History(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	reigns, err := h.Titles.History(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err)
	}
	views := make([]reignView, 0, len(reigns))
	for _, r := range reigns {
		views = append(views, toReignView(r))
	}
	return c.JSON(http.StatusOK, views)
}

// publishChange builds and publishes a title.changed event after the change
// has committed. Lookup or publish failures are swallowed; the publisher
// already logs them.
func (h *TitleHandler) publishChange(c echo.Context, titleID int64, wrestlerID, matchID *int64, eventName, changeMethod *string) {
	ctx := c.Request().Context()
	ev := queue.TitleChangedEvent{
		TitleID:   titleID,
		MatchID:   matchID,
		ChangedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if t, err := h.Titles.GetByID(ctx, titleID); err == nil {
		ev.TitleName = t.Name
	}
	if wrestlerID != nil {
		ev.WrestlerID = wrestlerID
		if w, err := h.Wrestlers.GetByID(ctx, *wrestlerID); err == nil {
			ev.WrestlerName = w.Name
		}
	}
	if eventName != nil {
		ev.EventName = *eventName
	}
	if changeMethod != nil {
		ev.ChangeMethod = *changeMethod
	}
	_ = queue_publisher.PublishTitleChanged(ctx, ev)
}
