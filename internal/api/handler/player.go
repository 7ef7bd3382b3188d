package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/hvztracker/internal/api/request"
	"github.com/mcoot/hvztracker/internal/api/response"
	"github.com/mcoot/hvztracker/internal/model"
	"github.com/mcoot/hvztracker/internal/services/ranking"
	"github.com/mcoot/hvztracker/internal/services/roster"
)

// PlayerHandler handles player and roster endpoints
type PlayerHandler struct {
	rosterService  *roster.Service
	rankingService *ranking.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(rosterService *roster.Service, rankingService *ranking.Service) *PlayerHandler {
	return &PlayerHandler{
		rosterService:  rosterService,
		rankingService: rankingService,
	}
}

// List handles GET /api/v1/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	key, err := ranking.ParseSortKey(query.Get("sort"))
	if err != nil {
		WriteError(w, err)
		return
	}
	offset, err := intParam(r, "offset", 0)
	if err != nil {
		WriteError(w, err)
		return
	}
	limit, err := intParam(r, "limit", 0)
	if err != nil {
		WriteError(w, err)
		return
	}

	page, err := h.rankingService.Rank(r.Context(), ranking.Query{
		Filter:  query.Get("q"),
		SortKey: key,
		SortDir: ranking.ParseSortDir(query.Get("dir")),
		Offset:  offset,
		Limit:   limit,
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayersPageFromRanking(page))
}

// Register handles POST /api/v1/players
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterPlayerRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	player, err := h.rosterService.RegisterPlayer(r.Context(), req.DisplayName, req.Email, model.Role(req.Role))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.PlayerFromModel(player))
}

// Get handles GET /api/v1/players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	member, err := h.rosterService.LookupByPlayerID(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.MemberFromRoster(*member))
}

// Lookup handles GET /api/v1/players/lookup?uuid=|zid=
func (h *PlayerHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var (
		member *roster.Member
		err    error
	)
	switch {
	case query.Get("uuid") != "":
		member, err = h.rosterService.LookupByPlayerID(r.Context(), model.PlayerID(query.Get("uuid")))
	case query.Get("zid") != "":
		member, err = h.rosterService.LookupByZombieID(r.Context(), query.Get("zid"))
	default:
		err = NewInvalidRequestError("uuid or zid is required")
	}
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.MemberFromRoster(*member))
}

// Join handles POST /api/v1/players/{id}/join
func (h *PlayerHandler) Join(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	var req request.JoinGameRequest
	if err := decodeOptional(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	status, err := h.rosterService.JoinGame(r.Context(), id, model.StatusCode(req.Status))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.JoinFromModel(status))
}

// Discord handles GET /api/v1/players/discord?id=
func (h *PlayerHandler) Discord(w http.ResponseWriter, r *http.Request) {
	discordID := r.URL.Query().Get("id")
	if discordID == "" {
		WriteError(w, NewInvalidRequestError("id is required"))
		return
	}

	player, err := h.rosterService.LookupByDiscordID(r.Context(), discordID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// CreateLinkCode handles POST /api/v1/players/{id}/link-codes
func (h *PlayerHandler) CreateLinkCode(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	code, err := h.rosterService.CreateLinkCode(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.LinkCode{Code: code.Code})
}

// LinkDiscord handles POST /api/v1/players/discord/link
func (h *PlayerHandler) LinkDiscord(w http.ResponseWriter, r *http.Request) {
	var req request.LinkDiscordRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	player, err := h.rosterService.LinkDiscord(r.Context(), req.LinkCode, req.DiscordID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}
