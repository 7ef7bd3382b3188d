package storage

import (
	"context"
	"errors"

	"github.com/mcoot/hvztracker/internal/model"
)

// ErrConflict is returned when an atomic commit keeps losing races with
// concurrent writers to the same rows.
var ErrConflict = errors.New("storage: too many concurrent updates")

// TagMutation is run inside the tag commit with private copies of both status
// rows. It mutates them in place and returns the tag to append; storage
// assigns the tag's Seq. Returning an error aborts the commit with nothing
// written.
type TagMutation func(tagger, taggee *model.PlayerStatus) (*model.Tag, error)

// RedemptionMutation is run inside the redemption commit with private copies
// of the antivirus row and the redeeming player's status row. status is nil
// when the player has no status in the code's game; the mutation must then
// fail. Storage assigns the antivirus Seq on success. Returning an error
// aborts the commit.
type RedemptionMutation func(av *model.Antivirus, status *model.PlayerStatus) error

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)
	GetPlayerByDiscordID(ctx context.Context, discordID string) (*model.Player, error)

	// Clan operations
	CreateClan(ctx context.Context, clan *model.Clan) error
	GetClan(ctx context.Context, name string) (*model.Clan, error)
	ListClans(ctx context.Context) ([]*model.Clan, error)
	SaveClan(ctx context.Context, clan *model.Clan) error
	// Clan history is append-only and listed oldest first
	AppendClanHistory(ctx context.Context, item *model.ClanHistoryItem) error
	ListClanHistory(ctx context.Context, clan string) ([]*model.ClanHistoryItem, error)

	// Discord link codes; ConsumeLinkCode reads and deletes in one step
	SaveLinkCode(ctx context.Context, code *model.LinkCode) error
	ConsumeLinkCode(ctx context.Context, code string) (*model.LinkCode, error)

	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	ListGames(ctx context.Context) ([]*model.Game, error)
	SetActiveGame(ctx context.Context, id model.GameID) error
	GetActiveGame(ctx context.Context) (*model.Game, error)

	// Player status operations. EnsureStatus stores status unless a row for
	// the same (game, player) exists, returning the stored row and whether it
	// was created.
	EnsureStatus(ctx context.Context, status *model.PlayerStatus) (*model.PlayerStatus, bool, error)
	GetStatus(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.PlayerStatus, error)
	ListStatuses(ctx context.Context, gameID model.GameID) ([]*model.PlayerStatus, error)
	FindStatusByTagID(ctx context.Context, tagID string) (*model.PlayerStatus, error)
	FindStatusByZombieID(ctx context.Context, gameID model.GameID, zombieID string) (*model.PlayerStatus, error)

	// Atomic event commits
	CommitTag(ctx context.Context, gameID model.GameID, taggerID, taggeeID model.PlayerID, fn TagMutation) (*model.Tag, error)
	CommitRedemption(ctx context.Context, gameID model.GameID, code string, playerID model.PlayerID, fn RedemptionMutation) (*model.Antivirus, error)

	// GameVersion increases with every committed tag, redemption and status creation
	GameVersion(ctx context.Context, gameID model.GameID) (int64, error)

	// Event history
	ListTags(ctx context.Context, gameID model.GameID) ([]*model.Tag, error)
	CreateAntivirus(ctx context.Context, av *model.Antivirus) error
	GetAntivirus(ctx context.Context, code string) (*model.Antivirus, error)
	ListAntiviruses(ctx context.Context, gameID model.GameID) ([]*model.Antivirus, error)
	SaveFailedAttempt(ctx context.Context, attempt *model.FailedAntivirusAttempt) error
	ListFailedAttempts(ctx context.Context, gameID model.GameID, playerID model.PlayerID) ([]*model.FailedAntivirusAttempt, error)

	// Body armor codes are unique across games
	CreateBodyArmor(ctx context.Context, armor *model.BodyArmor) error
	ListBodyArmors(ctx context.Context, gameID model.GameID) ([]*model.BodyArmor, error)

	// Mission operations
	SaveMission(ctx context.Context, mission *model.Mission) error
	ListMissions(ctx context.Context, gameID model.GameID) ([]*model.Mission, error)

	// Scoreboard operations; SaveScoreboard replaces by ID
	SaveScoreboard(ctx context.Context, board *model.Scoreboard) error
	GetScoreboard(ctx context.Context, id string) (*model.Scoreboard, error)
	ListScoreboards(ctx context.Context, gameID model.GameID) ([]*model.Scoreboard, error)

	// Report operations
	SaveReport(ctx context.Context, report *model.Report) error
	ListReports(ctx context.Context) ([]*model.Report, error)

	// API key operations
	SaveAPIKey(ctx context.Context, key *model.APIKey) error
	GetAPIKey(ctx context.Context, prefix string) (*model.APIKey, error)
}
