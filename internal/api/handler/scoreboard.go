package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/hvztracker/internal/api/request"
	"github.com/mcoot/hvztracker/internal/api/response"
	"github.com/mcoot/hvztracker/internal/model"
	"github.com/mcoot/hvztracker/internal/services/scoreboard"
)

// ScoreboardHandler handles scoreboard endpoints
type ScoreboardHandler struct {
	scoreboardService *scoreboard.Service
}

// NewScoreboardHandler creates a new scoreboard handler
func NewScoreboardHandler(scoreboardService *scoreboard.Service) *ScoreboardHandler {
	return &ScoreboardHandler{scoreboardService: scoreboardService}
}

// List handles GET /api/v1/scoreboards. Only active boards unless ?all=true.
func (h *ScoreboardHandler) List(w http.ResponseWriter, r *http.Request) {
	boards, err := h.scoreboardService.List(r.Context(), r.URL.Query().Get("all") != "true")
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ScoreboardsFromModel(boards))
}

// Create handles POST /api/v1/scoreboards
func (h *ScoreboardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateScoreboardRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	board, err := h.scoreboardService.CreateScoreboard(r.Context(), req.Name, rowsFromRequest(req.Rows))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.ScoreboardFromModel(board))
}

// Update handles PATCH /api/v1/scoreboards/{id}
func (h *ScoreboardHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateScoreboardRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	board, err := h.scoreboardService.UpdateScoreboard(r.Context(), mux.Vars(r)["id"], scoreboard.Update{
		Active: req.Active,
		Rows:   rowsFromRequest(req.Rows),
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ScoreboardFromModel(board))
}

func rowsFromRequest(rows []request.ScoreboardRow) []model.ScoreboardRow {
	if rows == nil {
		return nil
	}
	out := make([]model.ScoreboardRow, len(rows))
	for i, r := range rows {
		out[i] = model.ScoreboardRow{Label: r.Label, Score: r.Score}
	}
	return out
}
