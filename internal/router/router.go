// Package router wires the HTTP routes onto an Echo instance. Browse
// endpoints are public and may be served from the response cache; every
// mutating endpoint sits behind JWT authentication.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/grapplehq/ringside/internal/config"
	"github.com/grapplehq/ringside/internal/handler"
	"github.com/grapplehq/ringside/internal/middleware"
)

// Handlers bundles every handler the router registers.
type Handlers struct {
	Auth      *handler.AuthHandler
	Wrestlers *handler.WrestlerHandler
	Shows     *handler.ShowHandler
	Rosters   *handler.RosterHandler
	Titles    *handler.TitleHandler
	Matches   *handler.MatchHandler
}

// RegisterRoutes registers routes that need no authentication and no cache.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the session endpoints. Register, login, refresh and
// logout live under /v1/auth without a JWT; /v1/me requires one.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the browse endpoints. These are read-only, open
// to guests, and served through the response cache when Redis is reachable.
func RegisterPublic(e *echo.Echo, h Handlers, cacheCfg config.CacheConfig, rdb *redis.Client) {
	g := e.Group("/v1", middleware.ResponseCache(cacheCfg, rdb))

	g.GET("/wrestlers", h.Wrestlers.List)
	g.GET("/wrestlers/:id", h.Wrestlers.Get)
	g.GET("/wrestlers/:id/show", h.Rosters.ActiveShow)
	g.GET("/wrestlers/:id/assignments", h.Rosters.Assignments)

	g.GET("/shows", h.Shows.List)
	g.GET("/shows/:id", h.Shows.Get)
	g.GET("/shows/:id/roster", h.Rosters.Roster)
	g.GET("/shows/:id/titles", h.Titles.ForShow)
	g.GET("/shows/:id/matches", h.Matches.ForShow)

	g.GET("/titles", h.Titles.List)
	g.GET("/titles/holders", h.Titles.ListWithHolders)
	g.GET("/titles/unassigned", h.Titles.Unassigned)
	g.GET("/titles/:id", h.Titles.Get)
	g.GET("/titles/:id/holder", h.Titles.Holder)
	g.GET("/titles/:id/history", h.Titles.History)

	g.GET("/matches/:id", h.Matches.Get)
	g.GET("/matches/:id/participants", h.Matches.Participants)
}

// RegisterProtected registers every mutating endpoint behind JWT auth.
func RegisterProtected(e *echo.Echo, h Handlers, jwtSecret string) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret))

	g.POST("/wrestlers", h.Wrestlers.Create)
	g.DELETE("/wrestlers/:id", h.Wrestlers.Delete)
	g.PUT("/wrestlers/:id/ratings", h.Wrestlers.UpdateRatings)
	g.PUT("/wrestlers/:id/stats", h.Wrestlers.UpdateStats)
	g.PATCH("/wrestlers/:id/profile", h.Wrestlers.UpdateProfile)

	g.POST("/shows", h.Shows.Create)
	g.PUT("/shows/:id", h.Shows.Update)
	g.DELETE("/shows/:id", h.Shows.Delete)
	g.POST("/shows/:id/roster", h.Rosters.Assign)
	g.DELETE("/shows/:id/roster/:wrestlerID", h.Rosters.Release)
	g.POST("/shows/:id/matches", h.Matches.Book)

	g.POST("/titles", h.Titles.Create)
	g.PUT("/titles/:id/active", h.Titles.SetActive)
	g.PUT("/titles/:id/show", h.Titles.AssignToShow)
	g.POST("/titles/:id/crown", h.Titles.Crown)
	g.POST("/titles/:id/vacate", h.Titles.Vacate)

	g.POST("/matches/:id/result", h.Matches.RecordResult)
}
