package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/hvztracker/internal/api/request"
	"github.com/mcoot/hvztracker/internal/api/response"
	"github.com/mcoot/hvztracker/internal/model"
	"github.com/mcoot/hvztracker/internal/services/game"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameService *game.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameService *game.Service) *GameHandler {
	return &GameHandler{gameService: gameService}
}

// Active handles GET /api/v1/games/active
func (h *GameHandler) Active(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameService.ActiveGame(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.gameService.ListGames(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	out := make([]response.Game, len(games))
	for i, g := range games {
		out[i] = response.GameFromModel(g)
	}
	response.JSON(w, http.StatusOK, out)
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameService.CreateGame(r.Context(), req.Name, req.StartDate)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.GameFromModel(g))
}

// Activate handles POST /api/v1/games/{id}/activate
func (h *GameHandler) Activate(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	g, err := h.gameService.ActivateGame(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameFromModel(g))
}
