package model

import "time"

// PlayerID uniquely identifies a player across all games
type PlayerID string

// Role is the site-wide permission role of a player
type Role string

const (
	RoleRegular   Role = "regular"
	RoleMod       Role = "mod"
	RoleAdmin     Role = "admin"
	RoleNonPlayer Role = "nonplayer"
)

// Valid returns true if r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleRegular, RoleMod, RoleAdmin, RoleNonPlayer:
		return true
	}
	return false
}

// Player represents a registered participant
type Player struct {
	ID          PlayerID
	DisplayName string
	Email       string
	Role        Role
	ClanName    string // empty when not in a clan
	DiscordID   string // empty until linked
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasClan returns true if the player belongs to a clan
func (p *Player) HasClan() bool {
	return p.ClanName != ""
}

// Clan is a named group of players
type Clan struct {
	Name      string
	Leader    PlayerID // empty when leaderless
	CreatedAt time.Time
}

// ClanAction is what a clan history entry records
type ClanAction string

const (
	ClanActionCreated ClanAction = "created"
	ClanActionJoined  ClanAction = "joined"
	ClanActionLeft    ClanAction = "left"
)

// ClanHistoryItem is one audit entry of a clan's membership changes
type ClanHistoryItem struct {
	Clan      string
	PlayerID  PlayerID // empty for a leaderless creation
	Action    ClanAction
	Timestamp time.Time
}

// LinkCode is a one-time code used to attach a Discord account to a player
type LinkCode struct {
	Code      string
	PlayerID  PlayerID
	CreatedAt time.Time
}
