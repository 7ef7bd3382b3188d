package mission

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/mcoot/hvztracker/internal/dependencies/clock"
	"github.com/mcoot/hvztracker/internal/dependencies/random"
	"github.com/mcoot/hvztracker/internal/model"
	"github.com/mcoot/hvztracker/internal/storage"
)

// Draft holds the fields a moderator supplies for a new mission
type Draft struct {
	Team              model.Team
	StoryForm         string
	StoryFormLiveTime time.Time
	MissionText       string
	GoLiveTime        time.Time
}

// Service publishes missions for the active game
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// New creates a new mission Service
func New(storage storage.Storage, clock clock.Clock, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger.With(slog.String("component", "mission")),
	}
}

// CreateMission stores a mission in the active game. Team may be TeamAll.
func (s *Service) CreateMission(ctx context.Context, d Draft) (*model.Mission, error) {
	if d.Team != model.TeamAll {
		if _, err := model.ParseTeam(string(d.Team)); err != nil {
			return nil, err
		}
	}
	game, err := s.storage.GetActiveGame(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	m := &model.Mission{
		ID:                s.random.UUID(),
		GameID:            game.ID,
		Team:              d.Team,
		StoryForm:         strings.TrimSpace(d.StoryForm),
		StoryFormLiveTime: orNow(d.StoryFormLiveTime, now),
		MissionText:       strings.TrimSpace(d.MissionText),
		GoLiveTime:        orNow(d.GoLiveTime, now),
		CreatedAt:         now,
	}
	if err := s.storage.SaveMission(ctx, m); err != nil {
		return nil, err
	}

	s.logger.Info("mission created",
		slog.String("game_id", string(game.ID)),
		slog.String("mission_id", m.ID),
		slog.String("team", string(m.Team)),
	)
	return m, nil
}

// ListForTeam returns the active game's missions visible to team, ordered by
// go-live time. Missions for every team are always included.
func (s *Service) ListForTeam(ctx context.Context, team string) ([]*model.Mission, error) {
	t, err := model.ParseTeam(team)
	if err != nil {
		return nil, err
	}
	game, err := s.storage.GetActiveGame(ctx)
	if err != nil {
		return nil, err
	}
	missions, err := s.storage.ListMissions(ctx, game.ID)
	if err != nil {
		return nil, err
	}

	out := make([]*model.Mission, 0, len(missions))
	for _, m := range missions {
		if m.VisibleTo(t) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].GoLiveTime.Before(out[j].GoLiveTime)
	})
	return out, nil
}

func orNow(t, now time.Time) time.Time {
	if t.IsZero() {
		return now
	}
	return t.UTC()
}
