package sse

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/mcoot/hvztracker/internal/model"
)

// Event names sent on the game feed
const (
	EventTag       = "tag"
	EventAntivirus = "antivirus"
	EventStatus    = "status"
)

// TagPayload is the data of a tag event
type TagPayload struct {
	Seq       int64     `json:"seq"`
	Tagger    string    `json:"tagger"`
	Taggee    string    `json:"taggee"`
	Slot      string    `json:"slot"`
	Timestamp time.Time `json:"timestamp"`
}

// AntivirusPayload is the data of an antivirus event
type AntivirusPayload struct {
	Seq       int64     `json:"seq"`
	Code      string    `json:"code"`
	UsedBy    string    `json:"used_by"`
	Timestamp time.Time `json:"timestamp"`
}

// StatusPayload is the data of a status event
type StatusPayload struct {
	PlayerID string `json:"player_id"`
	Status   string `json:"status"`
	Label    string `json:"label"`
	NumTags  int    `json:"num_tags"`
}

// Broadcaster turns committed game events into feed messages
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// PublishTag sends the tag and the taggee's new status to the game's watchers
func (b *Broadcaster) PublishTag(tag *model.Tag, taggee *model.PlayerStatus) {
	hub := b.hubManager.GetHub(tag.GameID)
	if hub == nil {
		return
	}
	b.send(hub, EventTag, TagPayload{
		Seq:       tag.Seq,
		Tagger:    string(tag.Tagger),
		Taggee:    string(tag.Taggee),
		Slot:      tag.Slot.String(),
		Timestamp: tag.Timestamp,
	})
	b.send(hub, EventStatus, statusPayload(taggee))
}

// PublishRedemption sends the redemption and the player's new status
func (b *Broadcaster) PublishRedemption(av *model.Antivirus, status *model.PlayerStatus) {
	hub := b.hubManager.GetHub(av.GameID)
	if hub == nil || !av.Redeemed() {
		return
	}
	b.send(hub, EventAntivirus, AntivirusPayload{
		Seq:       av.Seq,
		Code:      av.Code,
		UsedBy:    string(*av.UsedBy),
		Timestamp: *av.UsedAt,
	})
	b.send(hub, EventStatus, statusPayload(status))
}

func (b *Broadcaster) send(hub *Hub, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		b.logger.Error("sse failed to encode event",
			slog.String("event", event),
			slog.Any("error", err))
		return
	}
	hub.BroadcastEvent(event, string(data))
}

func statusPayload(status *model.PlayerStatus) StatusPayload {
	return StatusPayload{
		PlayerID: string(status.PlayerID),
		Status:   string(status.Status),
		Label:    status.Status.Label(),
		NumTags:  status.NumTags,
	}
}
