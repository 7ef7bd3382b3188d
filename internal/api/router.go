package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/hvztracker/internal/api/handler"
	apimiddleware "github.com/mcoot/hvztracker/internal/api/middleware"
	"github.com/mcoot/hvztracker/internal/factory"
	"github.com/mcoot/hvztracker/internal/middleware"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger *slog.Logger
	App    *factory.App
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	app := cfg.App

	// Create handlers
	gameHandler := handler.NewGameHandler(app.GameService)
	playerHandler := handler.NewPlayerHandler(app.RosterService, app.RankingService)
	infectionHandler := handler.NewInfectionHandler(app.InfectionService)
	timelineHandler := handler.NewTimelineHandler(app.TimelineService, app.GameService, app.HubManager)
	clanHandler := handler.NewClanHandler(app.RosterService)
	missionHandler := handler.NewMissionHandler(app.MissionService)
	reportHandler := handler.NewReportHandler(app.ReportService)
	scoreboardHandler := handler.NewScoreboardHandler(app.ScoreboardService)

	// Create middleware
	apiKeyMiddleware := apimiddleware.APIKey(app.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	keyed := func(h http.HandlerFunc) http.Handler {
		return apiKeyMiddleware(h)
	}

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Games
	api.HandleFunc("/games", gameHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/games/active", gameHandler.Active).Methods(http.MethodGet)
	api.Handle("/games", keyed(gameHandler.Create)).Methods(http.MethodPost)
	api.Handle("/games/{id}/activate", keyed(gameHandler.Activate)).Methods(http.MethodPost)

	// Players. Fixed paths are registered before /players/{id}.
	api.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	api.Handle("/players", keyed(playerHandler.Register)).Methods(http.MethodPost)
	api.Handle("/players/lookup", keyed(playerHandler.Lookup)).Methods(http.MethodGet)
	api.Handle("/players/discord", keyed(playerHandler.Discord)).Methods(http.MethodGet)
	api.Handle("/players/discord/link", keyed(playerHandler.LinkDiscord)).Methods(http.MethodPost)
	api.HandleFunc("/players/{id}", playerHandler.Get).Methods(http.MethodGet)
	api.Handle("/players/{id}/join", keyed(playerHandler.Join)).Methods(http.MethodPost)
	api.Handle("/players/{id}/link-codes", keyed(playerHandler.CreateLinkCode)).Methods(http.MethodPost)

	// Tags and antiviruses
	api.HandleFunc("/tags", infectionHandler.ListTags).Methods(http.MethodGet)
	api.Handle("/tags", keyed(infectionHandler.Tag)).Methods(http.MethodPost)
	api.Handle("/antiviruses", keyed(infectionHandler.ListAntiviruses)).Methods(http.MethodGet)
	api.Handle("/antiviruses", keyed(infectionHandler.CreateAntivirus)).Methods(http.MethodPost)
	api.Handle("/antiviruses/redeem", keyed(infectionHandler.Redeem)).Methods(http.MethodPost)
	api.Handle("/body-armors", keyed(infectionHandler.ListBodyArmors)).Methods(http.MethodGet)
	api.Handle("/body-armors", keyed(infectionHandler.CreateBodyArmor)).Methods(http.MethodPost)

	// Dashboard
	api.HandleFunc("/timeline", timelineHandler.Timeline).Methods(http.MethodGet)
	api.HandleFunc("/summary", timelineHandler.Summary).Methods(http.MethodGet)
	api.HandleFunc("/infection", timelineHandler.Infection).Methods(http.MethodGet)
	api.HandleFunc("/feed", timelineHandler.Feed).Methods(http.MethodGet)

	// Clans
	api.HandleFunc("/clans", clanHandler.List).Methods(http.MethodGet)
	api.Handle("/clans", keyed(clanHandler.Create)).Methods(http.MethodPost)
	api.Handle("/clans/{name}/history", keyed(clanHandler.History)).Methods(http.MethodGet)
	api.Handle("/clans/{name}/members", keyed(clanHandler.AddMember)).Methods(http.MethodPost)
	api.Handle("/clans/{name}/members/{player_id}", keyed(clanHandler.RemoveMember)).Methods(http.MethodDelete)

	// Missions
	api.Handle("/missions", keyed(missionHandler.List)).Methods(http.MethodGet)
	api.Handle("/missions", keyed(missionHandler.Create)).Methods(http.MethodPost)

	// Scoreboards
	api.HandleFunc("/scoreboards", scoreboardHandler.List).Methods(http.MethodGet)
	api.Handle("/scoreboards", keyed(scoreboardHandler.Create)).Methods(http.MethodPost)
	api.Handle("/scoreboards/{id}", keyed(scoreboardHandler.Update)).Methods(http.MethodPatch)

	// Reports
	api.Handle("/reports", keyed(reportHandler.List)).Methods(http.MethodGet)
	api.HandleFunc("/reports", reportHandler.Create).Methods(http.MethodPost)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
