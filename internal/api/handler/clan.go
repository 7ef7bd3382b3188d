package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/hvztracker/internal/api/request"
	"github.com/mcoot/hvztracker/internal/api/response"
	"github.com/mcoot/hvztracker/internal/model"
	"github.com/mcoot/hvztracker/internal/services/roster"
)

// ClanHandler handles clan endpoints
type ClanHandler struct {
	rosterService *roster.Service
}

// NewClanHandler creates a new clan handler
func NewClanHandler(rosterService *roster.Service) *ClanHandler {
	return &ClanHandler{rosterService: rosterService}
}

// List handles GET /api/v1/clans
func (h *ClanHandler) List(w http.ResponseWriter, r *http.Request) {
	clans, err := h.rosterService.ListClans(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	out := make([]response.Clan, len(clans))
	for i, c := range clans {
		out[i] = response.ClanFromModel(c)
	}
	response.JSON(w, http.StatusOK, out)
}

// Create handles POST /api/v1/clans
func (h *ClanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateClanRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	clan, err := h.rosterService.CreateClan(r.Context(), req.Name, model.PlayerID(req.Leader))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.ClanFromModel(clan))
}

// AddMember handles POST /api/v1/clans/{name}/members
func (h *ClanHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var req request.ClanMemberRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	player, err := h.rosterService.JoinClan(r.Context(), name, model.PlayerID(req.PlayerID))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// RemoveMember handles DELETE /api/v1/clans/{name}/members/{player_id}
func (h *ClanHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if _, err := h.rosterService.LeaveClan(r.Context(), vars["name"], model.PlayerID(vars["player_id"])); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// History handles GET /api/v1/clans/{name}/history
func (h *ClanHandler) History(w http.ResponseWriter, r *http.Request) {
	items, err := h.rosterService.ClanHistory(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ClanHistoryFromModel(items))
}
