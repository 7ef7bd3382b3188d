package model

import "time"

// GameID uniquely identifies a game
type GameID string

// Game is a bounded competition instance. All events and statuses are scoped to one.
type Game struct {
	ID        GameID
	Name      string
	StartDate time.Time
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Team selects which side a mission is shown to
type Team string

const (
	TeamHuman  Team = "Human"
	TeamZombie Team = "Zombie"
	TeamStaff  Team = "Staff"
	TeamAll    Team = "All" // shown to every team
)

// ValidTeams returns the teams a mission listing may be requested for
func ValidTeams() []Team {
	return []Team{TeamHuman, TeamZombie, TeamStaff}
}

// ParseTeam validates a requested team name
func ParseTeam(s string) (Team, error) {
	for _, t := range ValidTeams() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", ErrInvalidTeam
}

// Mission is a narrative objective published to one team (or all)
type Mission struct {
	ID                string
	GameID            GameID
	Team              Team
	StoryForm         string
	StoryFormLiveTime time.Time
	MissionText       string
	GoLiveTime        time.Time
	CreatedAt         time.Time
}

// VisibleTo returns true if the mission should be listed for team
func (m *Mission) VisibleTo(team Team) bool {
	return m.Team == TeamAll || m.Team == team
}

// Scoreboard is a staff-maintained board shown on the dashboard while active
type Scoreboard struct {
	ID        string
	GameID    GameID
	Name      string
	Active    bool
	Rows      []ScoreboardRow
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ScoreboardRow is one labelled score on a Scoreboard
type ScoreboardRow struct {
	Label string
	Score int
}

// ReportStatus tracks moderator handling of a report
type ReportStatus string

const (
	ReportStatusNew      ReportStatus = "n"
	ReportStatusOpen     ReportStatus = "o"
	ReportStatusResolved ReportStatus = "r"
)

// Report is a player-submitted incident report
type Report struct {
	ID            string
	GameID        GameID
	Text          string
	ReporterEmail string
	Reporter      PlayerID // empty for anonymous reports
	Status        ReportStatus
	CreatedAt     time.Time
}

// APIKey authorizes the companion bot and other automated callers.
// Only a hash of the secret part is stored.
type APIKey struct {
	Prefix     string
	Name       string
	SecretHash string
	CreatedAt  time.Time
}
