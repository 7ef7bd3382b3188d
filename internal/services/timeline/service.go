package timeline

import (
	"context"
	"log/slog"
	"sort"

	"github.com/mcoot/hvztracker/internal/model"
	"github.com/mcoot/hvztracker/internal/services/roster"
	"github.com/mcoot/hvztracker/internal/services/scoreboard"
	"github.com/mcoot/hvztracker/internal/storage"
)

// Number of taggers listed on the summary
const topTaggerCount = 10

// TaggerCount is one row of the most-tags board
type TaggerCount struct {
	Player  *model.Player
	NumTags int
}

// Summary is the dashboard view of the active game
type Summary struct {
	Game         *model.Game
	HumanCount   int
	ZombieCount  int
	TopTaggers   []TaggerCount
	RecentEvents []model.TimelineEvent // newest first
	Points       []model.TimelinePoint
	Scoreboards  []*model.Scoreboard // active only
}

// Infection lists the original zombies and every tag, enough to draw the infection tree
type Infection struct {
	OriginalZombies []roster.Member
	Tags            []*model.Tag
}

// Service serves timeline read models for the active game
type Service struct {
	storage storage.Storage
	roster  *roster.Service
	cache   *Cache // nil disables caching
	logger  *slog.Logger
}

// New creates a new timeline Service. A nil cache recomputes on every call.
func New(storage storage.Storage, roster *roster.Service, cache *Cache, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		roster:  roster,
		cache:   cache,
		logger:  logger.With(slog.String("component", "timeline")),
	}
}

// Timeline returns the population series of the active game
func (s *Service) Timeline(ctx context.Context) (*Series, error) {
	game, err := s.storage.GetActiveGame(ctx)
	if err != nil {
		return nil, err
	}
	return s.seriesFor(ctx, game)
}

// GameTimeline returns the population series of any game
func (s *Service) GameTimeline(ctx context.Context, gameID model.GameID) (*Series, error) {
	game, err := s.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return s.seriesFor(ctx, game)
}

func (s *Service) seriesFor(ctx context.Context, game *model.Game) (*Series, error) {
	if s.cache == nil {
		return s.compute(ctx, game)
	}
	// Read the version before the rows so a cached series is never older than its key
	version, err := s.storage.GameVersion(ctx, game.ID)
	if err != nil {
		return nil, err
	}
	return s.cache.Get(game.ID, version, func() (*Series, error) {
		return s.compute(ctx, game)
	})
}

func (s *Service) compute(ctx context.Context, game *model.Game) (*Series, error) {
	statuses, err := s.storage.ListStatuses(ctx, game.ID)
	if err != nil {
		return nil, err
	}
	tags, err := s.storage.ListTags(ctx, game.ID)
	if err != nil {
		return nil, err
	}
	avs, err := s.storage.ListAntiviruses(ctx, game.ID)
	if err != nil {
		return nil, err
	}

	series := Reconstruct(Input{
		Start:       game.StartDate,
		Statuses:    statuses,
		Tags:        tags,
		Antiviruses: avs,
	})
	s.logger.Debug("timeline reconstructed",
		slog.String("game_id", string(game.ID)),
		slog.Int("events", len(series.Events)),
	)
	return series, nil
}

// Summary returns counts, the top taggers, active scoreboards and the n most recent events
func (s *Service) Summary(ctx context.Context, n int) (*Summary, error) {
	game, err := s.storage.GetActiveGame(ctx)
	if err != nil {
		return nil, err
	}
	series, err := s.seriesFor(ctx, game)
	if err != nil {
		return nil, err
	}
	members, err := s.roster.Roster(ctx, game.ID)
	if err != nil {
		return nil, err
	}

	var top []TaggerCount
	for _, m := range members {
		if m.Status.NumTags > 0 {
			top = append(top, TaggerCount{Player: m.Player, NumTags: m.Status.NumTags})
		}
	}
	sort.SliceStable(top, func(i, j int) bool {
		if top[i].NumTags != top[j].NumTags {
			return top[i].NumTags > top[j].NumTags
		}
		return top[i].Player.DisplayName < top[j].Player.DisplayName
	})
	if len(top) > topTaggerCount {
		top = top[:topTaggerCount]
	}

	if n < 0 {
		n = 0
	}
	recent := make([]model.TimelineEvent, 0, min(n, len(series.Events)))
	for i := len(series.Events) - 1; i >= 0 && len(recent) < n; i-- {
		recent = append(recent, series.Events[i])
	}

	boards, err := scoreboard.ListForGame(ctx, s.storage, game.ID, true)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Game:         game,
		HumanCount:   series.HumanCount,
		ZombieCount:  series.ZombieCount,
		TopTaggers:   top,
		RecentEvents: recent,
		Points:       series.Points,
		Scoreboards:  boards,
	}, nil
}

// Infection returns the active game's original zombies and tags
func (s *Service) Infection(ctx context.Context) (*Infection, error) {
	game, err := s.storage.GetActiveGame(ctx)
	if err != nil {
		return nil, err
	}
	members, err := s.roster.Roster(ctx, game.ID)
	if err != nil {
		return nil, err
	}
	tags, err := s.storage.ListTags(ctx, game.ID)
	if err != nil {
		return nil, err
	}

	var ozs []roster.Member
	for _, m := range members {
		if m.Status.Status == model.StatusOriginalZombie {
			ozs = append(ozs, m)
		}
	}
	return &Infection{OriginalZombies: ozs, Tags: tags}, nil
}
