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

// MatchHandler books matches and records their results.
type MatchHandler struct {
	Matches   *repository.MatchRepo
	Titles    *repository.TitleRepo
	Wrestlers *repository.WrestlerRepo
	Cache     *redis.Client
	Prefix    string
}

// NewMatchHandler constructs a MatchHandler.
func NewMatchHandler(matches *repository.MatchRepo, titles *repository.TitleRepo, wrestlers *repository.WrestlerRepo, cache *redis.Client, prefix string) *MatchHandler {
	return &MatchHandler{Matches: matches, Titles: titles, Wrestlers: wrestlers, Cache: cache, Prefix: prefix}
}

type participantBody struct {
	WrestlerID    int64 `json:"wrestler_id"`
	TeamNumber    *int  `json:"team_number"`
	EntranceOrder *int  `json:"entrance_order"`
}

// Book handles POST /v1/shows/:id/matches. The match and all its participant
// slots are inserted in one transaction.
func (h *MatchHandler) Book(c echo.Context) error {
	showID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var body struct {
		MatchName     *string           `json:"match_name"`
		MatchType     string            `json:"match_type"`
		Stipulation   *string           `json:"stipulation"`
		ScheduledDate *string           `json:"scheduled_date"`
		MatchOrder    *int              `json:"match_order"`
		IsTitleMatch  bool              `json:"is_title_match"`
		TitleID       *int64            `json:"title_id"`
		Participants  []participantBody `json:"participants"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.MatchType == "" {
		body.MatchType = "singles"
	}
	if body.IsTitleMatch && body.TitleID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title_id is required for a title match"})
	}
	if body.ScheduledDate != nil {
		if _, err := time.Parse("2006-01-02", *body.ScheduledDate); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "scheduled_date must be YYYY-MM-DD"})
		}
	}
	specs := make([]repository.ParticipantSpec, 0, len(body.Participants))
	for _, p := range body.Participants {
		specs = append(specs, repository.ParticipantSpec{
			WrestlerID:    p.WrestlerID,
			TeamNumber:    p.TeamNumber,
			EntranceOrder: p.EntranceOrder,
		})
	}
	m, err := h.Matches.Book(c.Request().Context(), repository.BookParams{
		ShowID:        showID,
		MatchName:     body.MatchName,
		MatchType:     body.MatchType,
		Stipulation:   body.Stipulation,
		ScheduledDate: body.ScheduledDate,
		MatchOrder:    body.MatchOrder,
		IsTitleMatch:  body.IsTitleMatch,
		TitleID:       body.TitleID,
		Participants:  specs,
	})
	if err != nil {
		return repoError(c, err)
	}
	middleware.Invalidate(h.Cache, h.Prefix)
	return c.JSON(http.StatusCreated, toMatchView(*m))
}

// Get handles GET /v1/matches/:id.
func (h *MatchHandler) Get(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	m, err := h.Matches.GetByID(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, toMatchView(*m))
}

// ForShow handles GET /v1/shows/:id/matches, the card in running order.
func (h *MatchHandler) ForShow(c echo.Context) error {
	showID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	ms, err := h.Matches.ForShow(c.Request().Context(), showID)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, toMatchViews(ms))
}

// Participants handles GET /v1/matches/:id/participants.
func (h *MatchHandler) Participants(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	ps, err := h.Matches.Participants(c.Request().Context(), id)
	if err != nil {
		return repoError(c, err)
	}
	return c.JSON(http.StatusOK, toParticipantViews(ps))
}

// RecordResult handles POST /v1/matches/:id/result. When a title match
// resolves against the current holder, the crowning happens in the same
// transaction as the result; the title.changed event goes out only after
// that transaction commits.
func (h *MatchHandler) RecordResult(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var body struct {
		WinnerID int64 `json:"winner_id"`
	}
	if err := c.Bind(&body); err != nil || body.WinnerID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "winner_id is required"})
	}
	ctx := c.Request().Context()
	m, titleChanged, err := h.Matches.RecordResult(ctx, id, body.WinnerID)
	if err != nil {
		return repoError(c, err)
	}
	middleware.Invalidate(h.Cache, h.Prefix)
	if titleChanged && m.TitleID != nil {
		ev := queue.TitleChangedEvent{
			TitleID:    *m.TitleID,
			WrestlerID: &body.WinnerID,
			MatchID:    &m.ID,
			ChangedAt:  time.Now().UTC().Format(time.RFC3339),
		}
		if t, terr := h.Titles.GetByID(ctx, *m.TitleID); terr == nil {
			ev.TitleName = t.Name
		}
		if w, werr := h.Wrestlers.GetByID(ctx, body.WinnerID); werr == nil {
			ev.WrestlerName = w.Name
		}
		if m.MatchName != nil {
			ev.EventName = *m.MatchName
		}
		if m.Stipulation != nil {
			ev.ChangeMethod = *m.Stipulation
		}
		_ = queue_publisher.PublishTitleChanged(ctx, ev)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"match":         toMatchView(*m),
		"title_changed": titleChanged,
	})
}
