package handler

import (
	"net/http"

	"github.com/mcoot/hvztracker/internal/api/request"
	"github.com/mcoot/hvztracker/internal/api/response"
	"github.com/mcoot/hvztracker/internal/model"
	"github.com/mcoot/hvztracker/internal/services/infection"
)

// InfectionHandler handles tag and antivirus endpoints
type InfectionHandler struct {
	infectionService *infection.Service
}

// NewInfectionHandler creates a new infection handler
func NewInfectionHandler(infectionService *infection.Service) *InfectionHandler {
	return &InfectionHandler{infectionService: infectionService}
}

// Tag handles POST /api/v1/tags
func (h *InfectionHandler) Tag(w http.ResponseWriter, r *http.Request) {
	var req request.TagRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.Tagger == "" || req.Taggee == "" {
		WriteError(w, NewInvalidRequestError("tagger and taggee are required"))
		return
	}

	tag, err := h.infectionService.RecordTag(r.Context(), model.PlayerID(req.Tagger), req.Taggee)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.TagFromModel(tag))
}

// ListTags handles GET /api/v1/tags, optionally filtered by ?tagger=
func (h *InfectionHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	var (
		tags []*model.Tag
		err  error
	)
	if tagger := r.URL.Query().Get("tagger"); tagger != "" {
		tags, err = h.infectionService.TagsBy(r.Context(), model.PlayerID(tagger))
	} else {
		tags, err = h.infectionService.ListTags(r.Context())
	}
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TagsFromModel(tags))
}

// CreateAntivirus handles POST /api/v1/antiviruses
func (h *InfectionHandler) CreateAntivirus(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAntivirusRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	av, err := h.infectionService.CreateAntivirus(r.Context(), req.Code, req.ExpiresAt)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.AntivirusFromModel(av))
}

// ListAntiviruses handles GET /api/v1/antiviruses
func (h *InfectionHandler) ListAntiviruses(w http.ResponseWriter, r *http.Request) {
	avs, err := h.infectionService.ListAntiviruses(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	out := make([]response.Antivirus, len(avs))
	for i, av := range avs {
		out[i] = response.AntivirusFromModel(av)
	}
	response.JSON(w, http.StatusOK, out)
}

// Redeem handles POST /api/v1/antiviruses/redeem
func (h *InfectionHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	var req request.RedeemAntivirusRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.Code == "" || req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("code and player_id are required"))
		return
	}

	av, err := h.infectionService.RedeemAntivirus(r.Context(), req.Code, model.PlayerID(req.PlayerID))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.AntivirusFromModel(av))
}

// CreateBodyArmor handles POST /api/v1/body-armors
func (h *InfectionHandler) CreateBodyArmor(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBodyArmorRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	armor, err := h.infectionService.CreateBodyArmor(r.Context(), req.Code, req.ExpiresAt)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.BodyArmorFromModel(armor))
}

// ListBodyArmors handles GET /api/v1/body-armors
func (h *InfectionHandler) ListBodyArmors(w http.ResponseWriter, r *http.Request) {
	armors, err := h.infectionService.ListBodyArmors(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	out := make([]response.BodyArmor, len(armors))
	for i, a := range armors {
		out[i] = response.BodyArmorFromModel(a)
	}
	response.JSON(w, http.StatusOK, out)
}
