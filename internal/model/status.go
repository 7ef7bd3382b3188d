package model

import "time"

// StatusCode is a player's infection state within a game
type StatusCode string

const (
	StatusHuman            StatusCode = "h"
	StatusHumanVaccinated  StatusCode = "v"
	StatusHumanExtracted   StatusCode = "e"
	StatusZombie           StatusCode = "z"
	StatusZombieVaccinated StatusCode = "x" // reached from StatusHumanVaccinated via the second tag target
	StatusOriginalZombie   StatusCode = "o"
	StatusAdmin            StatusCode = "a"
	StatusMod              StatusCode = "m"
	StatusNonPlayer        StatusCode = "n"
)

// Family groups status codes for counting
type Family int

const (
	FamilyStaff Family = iota
	FamilyHuman
	FamilyZombie
)

type statusInfo struct {
	label    string
	priority int
	family   Family
	rowClass string
}

var statusTable = map[StatusCode]statusInfo{
	StatusHuman:            {"Human", 0, FamilyHuman, "dt_human"},
	StatusHumanVaccinated:  {"Human", 1, FamilyHuman, "dt_human"},
	StatusHumanExtracted:   {"Human (Extracted)", 2, FamilyHuman, "dt_human"},
	StatusZombie:           {"Zombie", 3, FamilyZombie, "dt_zombie"},
	StatusZombieVaccinated: {"Zombie", 4, FamilyZombie, "dt_zombie"},
	StatusOriginalZombie:   {"Zombie", 5, FamilyZombie, "dt_zombie"},
	StatusMod:              {"Mod", 6, FamilyStaff, "dt_mod"},
	StatusAdmin:            {"Admin", 7, FamilyStaff, "dt_admin"},
	StatusNonPlayer:        {"NonPlayer", 8, FamilyStaff, "dt_nonplayer"},
}

// Valid returns true if c is a known status code
func (c StatusCode) Valid() bool {
	_, ok := statusTable[c]
	return ok
}

// Label returns the public display label
func (c StatusCode) Label() string {
	return statusTable[c].label
}

// ListingPriority is the ordinal used when sorting a roster by status.
// Unknown codes sort last.
func (c StatusCode) ListingPriority() int {
	info, ok := statusTable[c]
	if !ok {
		return len(statusTable)
	}
	return info.priority
}

// Family returns the counting family of the status
func (c StatusCode) Family() Family {
	return statusTable[c].family
}

// RowClass returns the CSS class front-end tables use for the status
func (c StatusCode) RowClass() string {
	return statusTable[c].rowClass
}

// IsHuman returns true for any human-family status
func (c StatusCode) IsHuman() bool {
	return c.Family() == FamilyHuman
}

// IsZombie returns true for any zombie-family status
func (c StatusCode) IsZombie() bool {
	return c.Family() == FamilyZombie
}

// OnRoster returns true if players with this status appear in roster listings
func (c StatusCode) OnRoster() bool {
	return c.Valid() && c != StatusNonPlayer
}

// DefaultStatusForRole returns the status a player starts a game with
func DefaultStatusForRole(role Role) StatusCode {
	switch role {
	case RoleAdmin:
		return StatusAdmin
	case RoleMod:
		return StatusMod
	case RoleNonPlayer:
		return StatusNonPlayer
	default:
		return StatusHuman
	}
}

// TagSlot identifies which of a status row's two tag targets was used
type TagSlot int

const (
	TagSlotNone TagSlot = iota
	TagSlotPrimary
	TagSlotAlternate
)

// String returns the wire name of the slot
func (s TagSlot) String() string {
	switch s {
	case TagSlotPrimary:
		return "tag1"
	case TagSlotAlternate:
		return "tag2"
	default:
		return "none"
	}
}

// PlayerStatus is a player's state within a single game
type PlayerStatus struct {
	GameID   GameID
	PlayerID PlayerID
	Status   StatusCode

	// Opaque identifiers handed to the player. A tag names one of them.
	Tag1ID   string
	Tag2ID   string
	ZombieID string

	// NumTags counts successful tags this player made as tagger
	NumTags int

	ActivatedAt time.Time
	UpdatedAt   time.Time
}

// SlotFor returns which tag target tagID matches, or TagSlotNone
func (s *PlayerStatus) SlotFor(tagID string) TagSlot {
	switch {
	case tagID == "":
		return TagSlotNone
	case tagID == s.Tag1ID:
		return TagSlotPrimary
	case tagID == s.Tag2ID:
		return TagSlotAlternate
	default:
		return TagSlotNone
	}
}
