package game

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/mcoot/hvztracker/internal/dependencies/clock"
	"github.com/mcoot/hvztracker/internal/dependencies/random"
	"github.com/mcoot/hvztracker/internal/model"
	"github.com/mcoot/hvztracker/internal/storage"
)

// Service manages game instances and the active game pointer
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// New creates a new game Service
func New(storage storage.Storage, clock clock.Clock, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger.With(slog.String("component", "game")),
	}
}

// CreateGame stores a new inactive game. A zero start date means now.
func (s *Service) CreateGame(ctx context.Context, name string, startDate time.Time) (*model.Game, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrEmptyName
	}

	now := s.clock.Now()
	if startDate.IsZero() {
		startDate = now
	}

	game := &model.Game{
		ID:        model.GameID(s.random.UUID()),
		Name:      name,
		StartDate: startDate.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.storage.SaveGame(ctx, game); err != nil {
		s.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.String("name", game.Name),
		slog.Time("start_date", game.StartDate),
	)
	return game, nil
}

// GetGame retrieves a game by ID
func (s *Service) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	return s.storage.GetGame(ctx, id)
}

// ListGames returns every game ordered by start date
func (s *Service) ListGames(ctx context.Context) ([]*model.Game, error) {
	return s.storage.ListGames(ctx)
}

// ActivateGame makes id the single active game, deactivating any other
func (s *Service) ActivateGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	if err := s.storage.SetActiveGame(ctx, id); err != nil {
		return nil, err
	}
	game, err := s.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("game activated", slog.String("game_id", string(id)))
	return game, nil
}

// ActiveGame returns the game currently accepting events
func (s *Service) ActiveGame(ctx context.Context) (*model.Game, error) {
	return s.storage.GetActiveGame(ctx)
}
