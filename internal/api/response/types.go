package response

import (
	"time"

	"github.com/mcoot/hvztracker/internal/model"
	"github.com/mcoot/hvztracker/internal/services/ranking"
	"github.com/mcoot/hvztracker/internal/services/roster"
	"github.com/mcoot/hvztracker/internal/services/timeline"
)

// Game represents a game in API responses
type Game struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	Active    bool      `json:"active"`
}

// GameFromModel converts a model.Game to a response Game
func GameFromModel(g *model.Game) Game {
	return Game{
		ID:        string(g.ID),
		Name:      g.Name,
		StartDate: g.StartDate,
		Active:    g.Active,
	}
}

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	Clan        string `json:"clan,omitempty"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		Role:        string(p.Role),
		Clan:        p.ClanName,
	}
}

// Status is a player's state in the active game
type Status struct {
	Code     string `json:"code"`
	Label    string `json:"label"`
	RowClass string `json:"row_class"`
	NumTags  int    `json:"num_tags"`
}

// StatusFromModel converts a model.PlayerStatus
func StatusFromModel(s *model.PlayerStatus) Status {
	return Status{
		Code:     string(s.Status),
		Label:    s.Status.Label(),
		RowClass: s.Status.RowClass(),
		NumTags:  s.NumTags,
	}
}

// Member is a player together with their status
type Member struct {
	Player
	Status *Status `json:"status,omitempty"`
}

// MemberFromRoster converts a roster.Member
func MemberFromRoster(m roster.Member) Member {
	out := Member{Player: PlayerFromModel(m.Player)}
	if m.Status != nil {
		st := StatusFromModel(m.Status)
		out.Status = &st
	}
	return out
}

// Identifiers are the opaque ids handed to a player when they join
type Identifiers struct {
	Tag1ID   string `json:"tag1_id"`
	Tag2ID   string `json:"tag2_id"`
	ZombieID string `json:"zombie_id"`
}

// JoinResponse is returned when a player joins the active game
type JoinResponse struct {
	GameID      string      `json:"game_id"`
	PlayerID    string      `json:"player_id"`
	Status      Status      `json:"status"`
	Identifiers Identifiers `json:"identifiers"`
}

// JoinFromModel converts a freshly joined status row
func JoinFromModel(s *model.PlayerStatus) JoinResponse {
	return JoinResponse{
		GameID:   string(s.GameID),
		PlayerID: string(s.PlayerID),
		Status:   StatusFromModel(s),
		Identifiers: Identifiers{
			Tag1ID:   s.Tag1ID,
			Tag2ID:   s.Tag2ID,
			ZombieID: s.ZombieID,
		},
	}
}

// PlayersPage is one page of the ranked roster
type PlayersPage struct {
	Players         []Member `json:"players"`
	TotalMatching   int      `json:"total_matching"`
	TotalUnfiltered int      `json:"total_unfiltered"`
}

// PlayersPageFromRanking converts a ranking.Page
func PlayersPageFromRanking(p *ranking.Page) PlayersPage {
	out := PlayersPage{
		Players:         make([]Member, len(p.Entries)),
		TotalMatching:   p.TotalMatching,
		TotalUnfiltered: p.TotalUnfiltered,
	}
	for i, m := range p.Entries {
		out.Players[i] = MemberFromRoster(m)
	}
	return out
}

// LinkCode is returned when a Discord link code is issued
type LinkCode struct {
	Code string `json:"code"`
}

// Tag represents a tag event
type Tag struct {
	ID        string    `json:"id"`
	Tagger    string    `json:"tagger"`
	Taggee    string    `json:"taggee"`
	Slot      string    `json:"slot"`
	Seq       int64     `json:"seq"`
	Timestamp time.Time `json:"timestamp"`
}

// TagFromModel converts a model.Tag
func TagFromModel(t *model.Tag) Tag {
	return Tag{
		ID:        t.ID,
		Tagger:    string(t.Tagger),
		Taggee:    string(t.Taggee),
		Slot:      t.Slot.String(),
		Seq:       t.Seq,
		Timestamp: t.Timestamp,
	}
}

// TagsFromModel converts a list of tags
func TagsFromModel(tags []*model.Tag) []Tag {
	out := make([]Tag, len(tags))
	for i, t := range tags {
		out[i] = TagFromModel(t)
	}
	return out
}

// Antivirus represents an antivirus code
type Antivirus struct {
	Code      string     `json:"code"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedBy    string     `json:"used_by,omitempty"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
}

// AntivirusFromModel converts a model.Antivirus
func AntivirusFromModel(av *model.Antivirus) Antivirus {
	out := Antivirus{
		Code:      av.Code,
		ExpiresAt: av.ExpiresAt,
		UsedAt:    av.UsedAt,
	}
	if av.UsedBy != nil {
		out.UsedBy = string(*av.UsedBy)
	}
	return out
}

// BodyArmor represents a body armor code
type BodyArmor struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// BodyArmorFromModel converts a model.BodyArmor
func BodyArmorFromModel(a *model.BodyArmor) BodyArmor {
	return BodyArmor{Code: a.Code, ExpiresAt: a.ExpiresAt}
}

// Point is one chart sample
type Point struct {
	Timestamp   time.Time `json:"timestamp"`
	HumanCount  int       `json:"human_count"`
	ZombieCount int       `json:"zombie_count"`
}

// PointsFromModel converts timeline samples
func PointsFromModel(points []model.TimelinePoint) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = Point{Timestamp: p.Timestamp, HumanCount: p.HumanCount, ZombieCount: p.ZombieCount}
	}
	return out
}

// Event is one entry of the recent events list
type Event struct {
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
	Subject   string    `json:"subject"`
	Tagger    string    `json:"tagger,omitempty"`
}

// EventFromModel converts a timeline event
func EventFromModel(e model.TimelineEvent) Event {
	out := Event{
		Kind:      string(e.Kind),
		Timestamp: e.Timestamp,
		Subject:   string(e.SubjectID()),
	}
	if e.Kind == model.EventKindTag {
		out.Tagger = string(e.Tag.Tagger)
	}
	return out
}

// Timeline is the population chart of the active game
type Timeline struct {
	HumanCount  int     `json:"human_count"`
	ZombieCount int     `json:"zombie_count"`
	Points      []Point `json:"points"`
}

// TimelineFromSeries converts a timeline.Series
func TimelineFromSeries(s *timeline.Series) Timeline {
	return Timeline{
		HumanCount:  s.HumanCount,
		ZombieCount: s.ZombieCount,
		Points:      PointsFromModel(s.Points),
	}
}

// Tagger is one row of the most-tags board
type Tagger struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	NumTags     int    `json:"num_tags"`
}

// Summary is the dashboard view
type Summary struct {
	Game         Game         `json:"game"`
	HumanCount   int          `json:"human_count"`
	ZombieCount  int          `json:"zombie_count"`
	TopTaggers   []Tagger     `json:"top_taggers"`
	RecentEvents []Event      `json:"recent_events"`
	Points       []Point      `json:"points"`
	Scoreboards  []Scoreboard `json:"scoreboards"`
}

// SummaryFromModel converts a timeline.Summary
func SummaryFromModel(s *timeline.Summary) Summary {
	out := Summary{
		Game:         GameFromModel(s.Game),
		HumanCount:   s.HumanCount,
		ZombieCount:  s.ZombieCount,
		TopTaggers:   make([]Tagger, len(s.TopTaggers)),
		RecentEvents: make([]Event, len(s.RecentEvents)),
		Points:       PointsFromModel(s.Points),
		Scoreboards:  ScoreboardsFromModel(s.Scoreboards),
	}
	for i, t := range s.TopTaggers {
		out.TopTaggers[i] = Tagger{PlayerID: string(t.Player.ID), DisplayName: t.Player.DisplayName, NumTags: t.NumTags}
	}
	for i, e := range s.RecentEvents {
		out.RecentEvents[i] = EventFromModel(e)
	}
	return out
}

// Infection is the infection tree data
type Infection struct {
	OriginalZombies []Member `json:"original_zombies"`
	Tags            []Tag    `json:"tags"`
}

// InfectionFromModel converts a timeline.Infection
func InfectionFromModel(inf *timeline.Infection) Infection {
	out := Infection{
		OriginalZombies: make([]Member, len(inf.OriginalZombies)),
		Tags:            TagsFromModel(inf.Tags),
	}
	for i, m := range inf.OriginalZombies {
		out.OriginalZombies[i] = MemberFromRoster(m)
	}
	return out
}

// Clan represents a clan
type Clan struct {
	Name   string `json:"name"`
	Leader string `json:"leader,omitempty"`
}

// ClanFromModel converts a model.Clan
func ClanFromModel(c *model.Clan) Clan {
	return Clan{Name: c.Name, Leader: string(c.Leader)}
}

// ClanHistoryItem is one join or leave in a clan's history
type ClanHistoryItem struct {
	PlayerID  string    `json:"player_id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// ClanHistoryFromModel converts clan history items
func ClanHistoryFromModel(items []*model.ClanHistoryItem) []ClanHistoryItem {
	out := make([]ClanHistoryItem, len(items))
	for i, it := range items {
		out[i] = ClanHistoryItem{PlayerID: string(it.PlayerID), Action: string(it.Action), Timestamp: it.Timestamp}
	}
	return out
}

// ScoreboardRow is one line of a scoreboard
type ScoreboardRow struct {
	Label string `json:"label"`
	Score int    `json:"score"`
}

// Scoreboard represents a staff scoreboard
type Scoreboard struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Active    bool            `json:"active"`
	Rows      []ScoreboardRow `json:"rows"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ScoreboardFromModel converts a model.Scoreboard
func ScoreboardFromModel(b *model.Scoreboard) Scoreboard {
	out := Scoreboard{
		ID:        b.ID,
		Name:      b.Name,
		Active:    b.Active,
		Rows:      make([]ScoreboardRow, len(b.Rows)),
		UpdatedAt: b.UpdatedAt,
	}
	for i, r := range b.Rows {
		out.Rows[i] = ScoreboardRow{Label: r.Label, Score: r.Score}
	}
	return out
}

// ScoreboardsFromModel converts a list of scoreboards
func ScoreboardsFromModel(boards []*model.Scoreboard) []Scoreboard {
	out := make([]Scoreboard, len(boards))
	for i, b := range boards {
		out[i] = ScoreboardFromModel(b)
	}
	return out
}

// Mission represents a mission
type Mission struct {
	ID                string    `json:"id"`
	Team              string    `json:"team"`
	StoryForm         string    `json:"story_form"`
	StoryFormLiveTime time.Time `json:"story_form_live_time"`
	MissionText       string    `json:"mission_text"`
	GoLiveTime        time.Time `json:"go_live_time"`
}

// MissionFromModel converts a model.Mission
func MissionFromModel(m *model.Mission) Mission {
	return Mission{
		ID:                m.ID,
		Team:              string(m.Team),
		StoryForm:         m.StoryForm,
		StoryFormLiveTime: m.StoryFormLiveTime,
		MissionText:       m.MissionText,
		GoLiveTime:        m.GoLiveTime,
	}
}

// Report represents an incident report
type Report struct {
	ID            string    `json:"id"`
	Text          string    `json:"text"`
	ReporterEmail string    `json:"reporter_email"`
	Reporter      string    `json:"reporter,omitempty"`
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
}

// ReportFromModel converts a model.Report
func ReportFromModel(r *model.Report) Report {
	return Report{
		ID:            r.ID,
		Text:          r.Text,
		ReporterEmail: r.ReporterEmail,
		Reporter:      string(r.Reporter),
		Status:        string(r.Status),
		Timestamp:     r.CreatedAt,
	}
}
