package model

import "errors"

// Common errors used across the application
var (
	// Lookup errors
	ErrPlayerNotFound     = errors.New("player not found")
	ErrGameNotFound       = errors.New("game not found")
	ErrNoActiveGame       = errors.New("no active game")
	ErrStatusNotFound     = errors.New("player has no status in this game")
	ErrTagTargetNotFound  = errors.New("no player with the given tag id")
	ErrAntivirusNotFound  = errors.New("antivirus code not found")
	ErrClanNotFound       = errors.New("clan not found")
	ErrLinkCodeNotFound   = errors.New("link code not found")
	ErrAPIKeyNotFound     = errors.New("api key not found")
	ErrMissionNotFound    = errors.New("mission not found")
	ErrScoreboardNotFound = errors.New("scoreboard not found")
	ErrZombieIDNotFound   = errors.New("no player with the given zombie id")
	ErrDiscordIDNotFound  = errors.New("no player with the given discord id")

	// Antivirus state conflicts
	ErrAntivirusUsed    = errors.New("antivirus code already used")
	ErrAntivirusExpired = errors.New("antivirus code expired")

	// Transition errors
	ErrInvalidTransition = errors.New("event does not match the player's current status")
	ErrSelfTag           = errors.New("a player cannot tag themselves")

	// Uniqueness errors
	ErrDuplicateCode = errors.New("code already exists")
	ErrDuplicateClan = errors.New("clan already exists")

	// Validation errors
	ErrInvalidTeam    = errors.New("invalid team")
	ErrInvalidStatus  = errors.New("invalid status code")
	ErrInvalidRole    = errors.New("invalid role")
	ErrInvalidSortKey = errors.New("invalid sort key")
	ErrEmptyName      = errors.New("name must not be empty")
	ErrEmptyReport    = errors.New("report text must not be empty")
	ErrNotClanMember  = errors.New("player is not in this clan")
	ErrAlreadyInClan  = errors.New("player is already in a clan")
	ErrEmptyDiscord   = errors.New("discord id must not be empty")
	ErrMissingExpiry  = errors.New("expiration time is required")
)
