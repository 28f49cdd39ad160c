package handler

import (
	"time"

	"github.com/grapplehq/ringside/internal/model"
)

// View types give each entity a stable JSON shape at the API boundary.
// The mapping is the single camel-free serialization layer: column-style
// snake_case keys, RFC3339 timestamps, nullable fields omitted when unset.

type wrestlerView struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Gender        string  `json:"gender"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	RealName      *string `json:"real_name,omitempty"`
	Nickname      *string `json:"nickname,omitempty"`
	Height        *string `json:"height,omitempty"`
	Weight        *string `json:"weight,omitempty"`
	DebutYear     *int    `json:"debut_year,omitempty"`
	Strength      *int    `json:"strength,omitempty"`
	Speed         *int    `json:"speed,omitempty"`
	Agility       *int    `json:"agility,omitempty"`
	Stamina       *int    `json:"stamina,omitempty"`
	Charisma      *int    `json:"charisma,omitempty"`
	Technique     *int    `json:"technique,omitempty"`
	Biography     *string `json:"biography,omitempty"`
	IsUserCreated bool    `json:"is_user_created"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

func toWrestlerView(w model.Wrestler) wrestlerView {
	return wrestlerView{
		ID: w.ID, Name: w.Name, Gender: w.Gender, Wins: w.Wins, Losses: w.Losses,
		RealName: w.RealName, Nickname: w.Nickname, Height: w.Height, Weight: w.Weight,
		DebutYear: w.DebutYear, Strength: w.Strength, Speed: w.Speed, Agility: w.Agility,
		Stamina: w.Stamina, Charisma: w.Charisma, Technique: w.Technique,
		Biography: w.Biography, IsUserCreated: w.IsUserCreated,
		CreatedAt: w.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: w.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toWrestlerViews(ws []model.Wrestler) []wrestlerView {
	out := make([]wrestlerView, 0, len(ws))
	for _, w := range ws {
		out = append(out, toWrestlerView(w))
	}
	return out
}

type showView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func toShowView(s model.Show) showView {
	return showView{
		ID: s.ID, Name: s.Name, Description: s.Description,
		CreatedAt: s.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type assignmentView struct {
	ID         int64  `json:"id"`
	ShowID     int64  `json:"show_id"`
	WrestlerID int64  `json:"wrestler_id"`
	AssignedAt string `json:"assigned_at"`
	IsActive   bool   `json:"is_active"`
}

func toAssignmentViews(as []model.ShowRoster) []assignmentView {
	out := make([]assignmentView, 0, len(as))
	for _, a := range as {
		out = append(out, assignmentView{
			ID: a.ID, ShowID: a.ShowID, WrestlerID: a.WrestlerID,
			AssignedAt: a.AssignedAt.UTC().Format(time.RFC3339),
			IsActive:   a.IsActive,
		})
	}
	return out
}

type titleView struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	TitleType       string `json:"title_type"`
	Division        string `json:"division"`
	PrestigeTier    int    `json:"prestige_tier"`
	Gender          string `json:"gender"`
	ShowID          *int64 `json:"show_id,omitempty"`
	CurrentHolderID *int64 `json:"current_holder_id,omitempty"`
	IsActive        bool   `json:"is_active"`
	IsUserCreated   bool   `json:"is_user_created"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

func toTitleView(t model.Title) titleView {
	return titleView{
		ID: t.ID, Name: t.Name, TitleType: t.TitleType, Division: t.Division,
		PrestigeTier: t.PrestigeTier, Gender: t.Gender, ShowID: t.ShowID,
		CurrentHolderID: t.CurrentHolderID, IsActive: t.IsActive, IsUserCreated: t.IsUserCreated,
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toTitleViews(ts []model.Title) []titleView {
	out := make([]titleView, 0, len(ts))
	for _, t := range ts {
		out = append(out, toTitleView(t))
	}
	return out
}

type titleWithHolderView struct {
	titleView
	HolderName *string `json:"holder_name,omitempty"`
}

func toTitleWithHolderViews(ts []model.TitleWithHolder) []titleWithHolderView {
	out := make([]titleWithHolderView, 0, len(ts))
	for _, t := range ts {
		out = append(out, titleWithHolderView{titleView: toTitleView(t.Title), HolderName: t.HolderName})
	}
	return out
}

type reignView struct {
	ID             int64   `json:"id"`
	WrestlerID     int64   `json:"wrestler_id"`
	WrestlerName   string  `json:"wrestler_name"`
	WrestlerGender string  `json:"wrestler_gender"`
	HeldSince      string  `json:"held_since"`
	HeldUntil      *string `json:"held_until,omitempty"` // absent while the reign is current
	EventName      *string `json:"event_name,omitempty"`
	EventLocation  *string `json:"event_location,omitempty"`
	ChangeMethod   *string `json:"change_method,omitempty"`
}

func toReignView(r model.Reign) reignView {
	v := reignView{
		ID: r.Holder.ID, WrestlerID: r.Holder.WrestlerID,
		WrestlerName: r.WrestlerName, WrestlerGender: r.WrestlerGender,
		HeldSince:     r.Holder.HeldSince.UTC().Format(time.RFC3339),
		EventName:     r.Holder.EventName,
		EventLocation: r.Holder.EventLocation,
		ChangeMethod:  r.Holder.ChangeMethod,
	}
	if r.Holder.HeldUntil != nil {
		s := r.Holder.HeldUntil.UTC().Format(time.RFC3339)
		v.HeldUntil = &s
	}
	return v
}

type matchView struct {
	ID            int64   `json:"id"`
	ShowID        int64   `json:"show_id"`
	MatchName     *string `json:"match_name,omitempty"`
	MatchType     string  `json:"match_type"`
	Stipulation   *string `json:"stipulation,omitempty"`
	ScheduledDate *string `json:"scheduled_date,omitempty"`
	MatchOrder    *int    `json:"match_order,omitempty"`
	WinnerID      *int64  `json:"winner_id,omitempty"`
	IsTitleMatch  bool    `json:"is_title_match"`
	TitleID       *int64  `json:"title_id,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

func toMatchView(m model.Match) matchView {
	v := matchView{
		ID: m.ID, ShowID: m.ShowID, MatchName: m.MatchName, MatchType: m.MatchType,
		Stipulation: m.Stipulation, MatchOrder: m.MatchOrder, WinnerID: m.WinnerID,
		IsTitleMatch: m.IsTitleMatch, TitleID: m.TitleID,
		CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339),
	}
	if m.ScheduledDate != nil {
		s := m.ScheduledDate.UTC().Format("2006-01-02")
		v.ScheduledDate = &s
	}
	return v
}

func toMatchViews(ms []model.Match) []matchView {
	out := make([]matchView, 0, len(ms))
	for _, m := range ms {
		out = append(out, toMatchView(m))
	}
	return out
}

type participantView struct {
	WrestlerID    int64  `json:"wrestler_id"`
	WrestlerName  string `json:"wrestler_name"`
	TeamNumber    *int   `json:"team_number,omitempty"`
	EntranceOrder *int   `json:"entrance_order,omitempty"`
}

func toParticipantViews(ps []model.Participant) []participantView {
	out := make([]participantView, 0, len(ps))
	for _, p := range ps {
		out = append(out, participantView{
			WrestlerID: p.WrestlerID, WrestlerName: p.WrestlerName,
			TeamNumber: p.TeamNumber, EntranceOrder: p.EntranceOrder,
		})
	}
	return out
}
