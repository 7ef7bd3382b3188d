package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mcoot/hvztracker/internal/api/response"
	"github.com/mcoot/hvztracker/internal/services/game"
	"github.com/mcoot/hvztracker/internal/services/timeline"
	"github.com/mcoot/hvztracker/internal/sse"
)

// Recent events shown on the summary unless ?events= is given
const defaultRecentEvents = 10

// TimelineHandler handles the read-only dashboard endpoints and the live feed
type TimelineHandler struct {
	timelineService *timeline.Service
	gameService     *game.Service
	hubManager      *sse.HubManager
}

// NewTimelineHandler creates a new timeline handler
func NewTimelineHandler(timelineService *timeline.Service, gameService *game.Service, hubManager *sse.HubManager) *TimelineHandler {
	return &TimelineHandler{
		timelineService: timelineService,
		gameService:     gameService,
		hubManager:      hubManager,
	}
}

// Timeline handles GET /api/v1/timeline
func (h *TimelineHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	series, err := h.timelineService.Timeline(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TimelineFromSeries(series))
}

// Summary handles GET /api/v1/summary
func (h *TimelineHandler) Summary(w http.ResponseWriter, r *http.Request) {
	n, err := intParam(r, "events", defaultRecentEvents)
	if err != nil {
		WriteError(w, err)
		return
	}

	summary, err := h.timelineService.Summary(r.Context(), n)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SummaryFromModel(summary))
}

// Infection handles GET /api/v1/infection
func (h *TimelineHandler) Infection(w http.ResponseWriter, r *http.Request) {
	inf, err := h.timelineService.Infection(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.InfectionFromModel(inf))
}

// Feed handles GET /api/v1/feed, streaming the active game's events
func (h *TimelineHandler) Feed(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameService.ActiveGame(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	hub := h.hubManager.GetOrCreateHub(g.ID)
	sse.ServeSSE(w, r, hub, uuid.NewString())
}
