package redis

import (
	"fmt"

	"github.com/mcoot/hvztracker/internal/model"
)

// Key prefix for all tracker data
const keyPrefix = "hvz"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// playersIndexKey returns the Redis key for the SET of all player ids
func playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// discordIndexKey returns the Redis key for the discord id -> player id index
func discordIndexKey(discordID string) string {
	return fmt.Sprintf("%s:idx:discord:%s", keyPrefix, discordID)
}

func clanKey(name string) string {
	return fmt.Sprintf("%s:clan:%s", keyPrefix, name)
}

func clansIndexKey() string {
	return fmt.Sprintf("%s:idx:clans", keyPrefix)
}

// clanHistoryKey returns the Redis key for the append-only LIST of a clan's history
func clanHistoryKey(name string) string {
	return fmt.Sprintf("%s:clan_history:%s", keyPrefix, name)
}

func linkCodeKey(code string) string {
	return fmt.Sprintf("%s:linkcode:%s", keyPrefix, code)
}

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

func gamesIndexKey() string {
	return fmt.Sprintf("%s:idx:games", keyPrefix)
}

// activeGameKey holds the id of the single active game
func activeGameKey() string {
	return fmt.Sprintf("%s:active_game", keyPrefix)
}

// statusKey returns the Redis key for a player's status row in a game
func statusKey(gameID model.GameID, playerID model.PlayerID) string {
	return fmt.Sprintf("%s:status:%s:%s", keyPrefix, gameID, playerID)
}

// statusesIndexKey returns the Redis key for the SET of status keys in a game
func statusesIndexKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:idx:statuses:%s", keyPrefix, gameID)
}

// tagTargetIndexKey maps a tag target id to its status key. Tag ids are
// globally unique so the index is not scoped by game.
func tagTargetIndexKey(tagID string) string {
	return fmt.Sprintf("%s:idx:tag_target:%s", keyPrefix, tagID)
}

func zombieIndexKey(gameID model.GameID, zombieID string) string {
	return fmt.Sprintf("%s:idx:zombie:%s:%s", keyPrefix, gameID, zombieID)
}

// tagsKey returns the Redis key for the append-only LIST of tags in a game
func tagsKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:tags:%s", keyPrefix, gameID)
}

func antivirusKey(code string) string {
	return fmt.Sprintf("%s:av:%s", keyPrefix, code)
}

func antivirusesIndexKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:idx:avs:%s", keyPrefix, gameID)
}

func bodyArmorKey(code string) string {
	return fmt.Sprintf("%s:armor:%s", keyPrefix, code)
}

func bodyArmorsIndexKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:idx:armors:%s", keyPrefix, gameID)
}

func failedAttemptsKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:failed_av:%s", keyPrefix, gameID)
}

// seqKey is the per-game event sequence counter
func seqKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:seq:%s", keyPrefix, gameID)
}

// versionKey is bumped by every write that changes a game's counts
func versionKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:version:%s", keyPrefix, gameID)
}

func missionsKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:missions:%s", keyPrefix, gameID)
}

func scoreboardKey(id string) string {
	return fmt.Sprintf("%s:scoreboard:%s", keyPrefix, id)
}

func scoreboardsIndexKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:idx:scoreboards:%s", keyPrefix, gameID)
}

func reportsKey() string {
	return fmt.Sprintf("%s:reports", keyPrefix)
}

func apiKeyKey(prefix string) string {
	return fmt.Sprintf("%s:apikey:%s", keyPrefix, prefix)
}
