package scoreboard

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mcoot/hvztracker/internal/dependencies/clock"
	"github.com/mcoot/hvztracker/internal/dependencies/random"
	"github.com/mcoot/hvztracker/internal/model"
	"github.com/mcoot/hvztracker/internal/storage"
)

// Update changes a scoreboard. Nil fields are left as they are.
type Update struct {
	Active *bool
	Rows   []model.ScoreboardRow
}

// Service maintains the staff scoreboards of the active game
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// New creates a new scoreboard Service
func New(storage storage.Storage, clock clock.Clock, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger.With(slog.String("component", "scoreboard")),
	}
}

// CreateScoreboard adds an active scoreboard to the active game
func (s *Service) CreateScoreboard(ctx context.Context, name string, rows []model.ScoreboardRow) (*model.Scoreboard, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrEmptyName
	}
	rows, err := cleanRows(rows)
	if err != nil {
		return nil, err
	}
	game, err := s.storage.GetActiveGame(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	board := &model.Scoreboard{
		ID:        s.random.UUID(),
		GameID:    game.ID,
		Name:      name,
		Active:    true,
		Rows:      rows,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.storage.SaveScoreboard(ctx, board); err != nil {
		return nil, err
	}

	s.logger.Info("scoreboard created",
		slog.String("game_id", string(game.ID)),
		slog.String("scoreboard_id", board.ID),
		slog.String("name", name),
	)
	return board, nil
}

// UpdateScoreboard applies u to a scoreboard of the active game
func (s *Service) UpdateScoreboard(ctx context.Context, id string, u Update) (*model.Scoreboard, error) {
	game, err := s.storage.GetActiveGame(ctx)
	if err != nil {
		return nil, err
	}
	board, err := s.storage.GetScoreboard(ctx, id)
	if err != nil {
		return nil, err
	}
	if board.GameID != game.ID {
		return nil, model.ErrScoreboardNotFound
	}

	if u.Active != nil {
		board.Active = *u.Active
	}
	if u.Rows != nil {
		rows, err := cleanRows(u.Rows)
		if err != nil {
			return nil, err
		}
		board.Rows = rows
	}
	board.UpdatedAt = s.clock.Now()
	if err := s.storage.SaveScoreboard(ctx, board); err != nil {
		return nil, err
	}

	s.logger.Info("scoreboard updated",
		slog.String("scoreboard_id", id),
		slog.Bool("active", board.Active),
		slog.Int("rows", len(board.Rows)),
	)
	return board, nil
}

// List returns the active game's scoreboards, oldest first
func (s *Service) List(ctx context.Context, activeOnly bool) ([]*model.Scoreboard, error) {
	game, err := s.storage.GetActiveGame(ctx)
	if err != nil {
		return nil, err
	}
	return ListForGame(ctx, s.storage, game.ID, activeOnly)
}

// ListForGame reads a game's scoreboards straight from storage
func ListForGame(ctx context.Context, store storage.Storage, gameID model.GameID, activeOnly bool) ([]*model.Scoreboard, error) {
	boards, err := store.ListScoreboards(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if !activeOnly {
		return boards, nil
	}
	out := boards[:0]
	for _, b := range boards {
		if b.Active {
			out = append(out, b)
		}
	}
	return out, nil
}

func cleanRows(rows []model.ScoreboardRow) ([]model.ScoreboardRow, error) {
	out := make([]model.ScoreboardRow, len(rows))
	for i, r := range rows {
		r.Label = strings.TrimSpace(r.Label)
		if r.Label == "" {
			return nil, model.ErrEmptyName
		}
		out[i] = r
	}
	return out, nil
}
