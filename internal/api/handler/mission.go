package handler

import (
	"net/http"

	"github.com/mcoot/hvztracker/internal/api/request"
	"github.com/mcoot/hvztracker/internal/api/response"
	"github.com/mcoot/hvztracker/internal/model"
	"github.com/mcoot/hvztracker/internal/services/mission"
)

// MissionHandler handles mission endpoints
type MissionHandler struct {
	missionService *mission.Service
}

// NewMissionHandler creates a new mission handler
func NewMissionHandler(missionService *mission.Service) *MissionHandler {
	return &MissionHandler{missionService: missionService}
}

// List handles GET /api/v1/missions?team=
func (h *MissionHandler) List(w http.ResponseWriter, r *http.Request) {
	missions, err := h.missionService.ListForTeam(r.Context(), r.URL.Query().Get("team"))
	if err != nil {
		WriteError(w, err)
		return
	}
	out := make([]response.Mission, len(missions))
	for i, m := range missions {
		out[i] = response.MissionFromModel(m)
	}
	response.JSON(w, http.StatusOK, out)
}

// Create handles POST /api/v1/missions
func (h *MissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMissionRequest
	if err := decode(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	m, err := h.missionService.CreateMission(r.Context(), mission.Draft{
		Team:              model.Team(req.Team),
		StoryForm:         req.StoryForm,
		StoryFormLiveTime: req.StoryFormLiveTime,
		MissionText:       req.MissionText,
		GoLiveTime:        req.GoLiveTime,
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.MissionFromModel(m))
}
