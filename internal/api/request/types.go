package request

import "time"

// CreateGameRequest is the request body for creating a game
type CreateGameRequest struct {
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date,omitempty"`
}

// RegisterPlayerRequest is the request body for registering a player
type RegisterPlayerRequest struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Role        string `json:"role,omitempty"`
}

// JoinGameRequest is the request body for joining the active game
type JoinGameRequest struct {
	Status string `json:"status,omitempty"`
}

// LinkDiscordRequest is the request body for linking a Discord account
type LinkDiscordRequest struct {
	DiscordID string `json:"discord_id"`
	LinkCode  string `json:"link_code"`
}

// TagRequest is the request body for recording a tag
type TagRequest struct {
	Tagger string `json:"tagger"`
	Taggee string `json:"taggee"` // one of the taggee's tag targets
}

// CreateAntivirusRequest is the request body for issuing an antivirus code.
// An empty code is generated.
type CreateAntivirusRequest struct {
	Code      string    `json:"code,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RedeemAntivirusRequest is the request body for redeeming an antivirus code
type RedeemAntivirusRequest struct {
	Code     string `json:"code"`
	PlayerID string `json:"player_id"`
}

// CreateBodyArmorRequest is the request body for issuing a body armor code.
// An empty code is generated.
type CreateBodyArmorRequest struct {
	Code      string    `json:"code,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateClanRequest is the request body for creating a clan
type CreateClanRequest struct {
	Name   string `json:"name"`
	Leader string `json:"leader,omitempty"`
}

// ClanMemberRequest is the request body for adding a clan member
type ClanMemberRequest struct {
	PlayerID string `json:"player_id"`
}

// CreateMissionRequest is the request body for publishing a mission
type CreateMissionRequest struct {
	Team              string    `json:"team"`
	StoryForm         string    `json:"story_form"`
	StoryFormLiveTime time.Time `json:"story_form_live_time,omitempty"`
	MissionText       string    `json:"mission_text"`
	GoLiveTime        time.Time `json:"go_live_time,omitempty"`
}

// ScoreboardRow is one line of a scoreboard
type ScoreboardRow struct {
	Label string `json:"label"`
	Score int    `json:"score"`
}

// CreateScoreboardRequest is the request body for adding a scoreboard
type CreateScoreboardRequest struct {
	Name string          `json:"name"`
	Rows []ScoreboardRow `json:"rows,omitempty"`
}

// UpdateScoreboardRequest is the request body for changing a scoreboard.
// Omitted fields are unchanged.
type UpdateScoreboardRequest struct {
	Active *bool           `json:"active,omitempty"`
	Rows   []ScoreboardRow `json:"rows,omitempty"`
}

// CreateReportRequest is the request body for submitting a report
type CreateReportRequest struct {
	Text          string `json:"text"`
	ReporterEmail string `json:"reporter_email"`
	Reporter      string `json:"reporter,omitempty"`
}
