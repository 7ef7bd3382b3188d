package roster

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mcoot/hvztracker/internal/dependencies/clock"
	"github.com/mcoot/hvztracker/internal/dependencies/random"
	"github.com/mcoot/hvztracker/internal/model"
	"github.com/mcoot/hvztracker/internal/storage"
)

const linkCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const linkCodeLength = 8

// Member is a player joined with their status in one game
type Member struct {
	Player *model.Player
	Status *model.PlayerStatus
}

// Service manages players, their per-game status rows and clans
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// New creates a new roster Service
func New(storage storage.Storage, clock clock.Clock, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger.With(slog.String("component", "roster")),
	}
}

// RegisterPlayer creates a player account
func (s *Service) RegisterPlayer(ctx context.Context, displayName, email string, role model.Role) (*model.Player, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, model.ErrEmptyName
	}
	if role == "" {
		role = model.RoleRegular
	}
	if !role.Valid() {
		return nil, model.ErrInvalidRole
	}

	now := s.clock.Now()
	player := &model.Player{
		ID:          model.PlayerID(s.random.UUID()),
		DisplayName: displayName,
		Email:       strings.TrimSpace(email),
		Role:        role,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Info("player registered",
		slog.String("player_id", string(player.ID)),
		slog.String("role", string(role)),
	)
	return player, nil
}

// GetPlayer retrieves a player by ID
func (s *Service) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, id)
}

// ListPlayers returns every registered player
func (s *Service) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	return s.storage.ListPlayers(ctx)
}

// SetRole changes a player's site-wide role. Existing status rows keep their code.
func (s *Service) SetRole(ctx context.Context, id model.PlayerID, role model.Role) (*model.Player, error) {
	if !role.Valid() {
		return nil, model.ErrInvalidRole
	}
	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	player.Role = role
	player.UpdatedAt = s.clock.Now()
	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

// EnsureStatus returns the player's status row in the game, creating it on
// first sight. An empty initial status is derived from the player's role.
func (s *Service) EnsureStatus(ctx context.Context, gameID model.GameID, playerID model.PlayerID, initial model.StatusCode) (*model.PlayerStatus, error) {
	if initial != "" && !initial.Valid() {
		return nil, model.ErrInvalidStatus
	}

	existing, err := s.storage.GetStatus(ctx, gameID, playerID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, model.ErrStatusNotFound) {
		return nil, err
	}

	if _, err := s.storage.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	player, err := s.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if initial == "" {
		initial = model.DefaultStatusForRole(player.Role)
	}

	now := s.clock.Now()
	status, created, err := s.storage.EnsureStatus(ctx, &model.PlayerStatus{
		GameID:      gameID,
		PlayerID:    playerID,
		Status:      initial,
		Tag1ID:      s.random.UUID(),
		Tag2ID:      s.random.UUID(),
		ZombieID:    s.random.UUID(),
		ActivatedAt: now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.logger.Error("failed to create status",
			slog.String("game_id", string(gameID)),
			slog.String("player_id", string(playerID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	if created {
		s.logger.Info("status created",
			slog.String("game_id", string(gameID)),
			slog.String("player_id", string(playerID)),
			slog.String("status", string(status.Status)),
		)
	}
	return status, nil
}

// JoinGame ensures the player has a status row in the active game
func (s *Service) JoinGame(ctx context.Context, playerID model.PlayerID, initial model.StatusCode) (*model.PlayerStatus, error) {
	game, err := s.storage.GetActiveGame(ctx)
	if err != nil {
		return nil, err
	}
	return s.EnsureStatus(ctx, game.ID, playerID, initial)
}

// Status returns the player's status row in the game
func (s *Service) Status(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.PlayerStatus, error) {
	return s.storage.GetStatus(ctx, gameID, playerID)
}

// Roster joins every roster-visible status row in the game with its player
func (s *Service) Roster(ctx context.Context, gameID model.GameID) ([]Member, error) {
	statuses, err := s.storage.ListStatuses(ctx, gameID)
	if err != nil {
		return nil, err
	}
	members := make([]Member, 0, len(statuses))
	for _, st := range statuses {
		if !st.Status.OnRoster() {
			continue
		}
		player, err := s.storage.GetPlayer(ctx, st.PlayerID)
		if errors.Is(err, model.ErrPlayerNotFound) {
			s.logger.Warn("status row without player",
				slog.String("game_id", string(gameID)),
				slog.String("player_id", string(st.PlayerID)),
			)
			continue
		}
		if err != nil {
			return nil, err
		}
		members = append(members, Member{Player: player, Status: st})
	}
	return members, nil
}

// LookupByZombieID finds the active-game member a zombie id was issued to
func (s *Service) LookupByZombieID(ctx context.Context, zombieID string) (*Member, error) {
	game, err := s.storage.GetActiveGame(ctx)
	if err != nil {
		return nil, err
	}
	status, err := s.storage.FindStatusByZombieID(ctx, game.ID, zombieID)
	if err != nil {
		return nil, err
	}
	player, err := s.storage.GetPlayer(ctx, status.PlayerID)
	if err != nil {
		return nil, err
	}
	return &Member{Player: player, Status: status}, nil
}

// LookupByPlayerID returns the player and, when joined, their active-game status
func (s *Service) LookupByPlayerID(ctx context.Context, playerID model.PlayerID) (*Member, error) {
	player, err := s.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	game, err := s.storage.GetActiveGame(ctx)
	if err != nil {
		return nil, err
	}
	status, err := s.storage.GetStatus(ctx, game.ID, playerID)
	if err != nil && !errors.Is(err, model.ErrStatusNotFound) {
		return nil, err
	}
	return &Member{Player: player, Status: status}, nil
}
