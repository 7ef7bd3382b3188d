package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/hvztracker/internal/config"
	"github.com/mcoot/hvztracker/internal/dependencies/clock"
	"github.com/mcoot/hvztracker/internal/dependencies/random"
	"github.com/mcoot/hvztracker/internal/notify"
	"github.com/mcoot/hvztracker/internal/services/auth"
	"github.com/mcoot/hvztracker/internal/services/game"
	"github.com/mcoot/hvztracker/internal/services/infection"
	"github.com/mcoot/hvztracker/internal/services/mission"
	"github.com/mcoot/hvztracker/internal/services/ranking"
	"github.com/mcoot/hvztracker/internal/services/report"
	"github.com/mcoot/hvztracker/internal/services/roster"
	"github.com/mcoot/hvztracker/internal/services/scoreboard"
	"github.com/mcoot/hvztracker/internal/services/timeline"
	"github.com/mcoot/hvztracker/internal/sse"
	"github.com/mcoot/hvztracker/internal/storage"
	"github.com/mcoot/hvztracker/internal/storage/memory"
	redisstorage "github.com/mcoot/hvztracker/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = config.StorageTypeMemory
	StorageTypeRedis  = config.StorageTypeRedis
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	GameService       *game.Service
	RosterService     *roster.Service
	InfectionService  *infection.Service
	TimelineService   *timeline.Service
	RankingService    *ranking.Service
	MissionService    *mission.Service
	ReportService     *report.Service
	ScoreboardService *scoreboard.Service
	AuthService       *auth.Service
	HubManager        *sse.HubManager

	// Notifications is nil when no notifier is configured
	Notifications *notify.Dispatcher
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Notifier receives report notifications (optional)
	Notifier notify.Notifier
	// DisableTimelineCache recomputes the timeline on every request
	DisableTimelineCache bool
}

// FromConfig translates server settings into a factory Config, building the
// notifier chain from whichever sinks are configured
func FromConfig(cfg *config.Config, logger *slog.Logger) (Config, error) {
	out := Config{
		Logger:               logger,
		StorageType:          cfg.StorageType,
		DisableTimelineCache: !cfg.TimelineCache,
	}
	if cfg.StorageType == StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		if cfg.RedisPoolSize > 0 {
			redisCfg.PoolSize = cfg.RedisPoolSize
		}
		out.RedisConfig = &redisCfg
	}

	var notifiers notify.Multi
	if cfg.ReportWebhookURL != "" {
		notifiers = append(notifiers, notify.NewWebhook(cfg.ReportWebhookURL, nil))
	}
	if cfg.TelegramBotToken != "" {
		tg, err := notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			return Config{}, err
		}
		notifiers = append(notifiers, tg)
	}
	if len(notifiers) > 0 {
		out.Notifier = notifiers
	}
	return out, nil
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, cfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *App {
	authCfg := cfg.AuthConfig
	if authCfg == (auth.Config{}) {
		authCfg = auth.DefaultConfig()
	}
	var cache *timeline.Cache
	if !cfg.DisableTimelineCache {
		cache = timeline.NewCache()
	}

	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)

	var dispatcher *notify.Dispatcher
	var sink report.Sink
	if cfg.Notifier != nil {
		dispatcher = notify.NewDispatcher(cfg.Notifier, notify.DefaultQueueSize, logger)
		sink = dispatcher
	}

	// Create services
	gameService := game.New(store, clk, rnd, logger)
	rosterService := roster.New(store, clk, rnd, logger)
	infectionService := infection.New(store, rosterService, clk, rnd, broadcaster, logger)
	timelineService := timeline.New(store, rosterService, cache, logger)
	rankingService := ranking.New(store, rosterService, logger)
	missionService := mission.New(store, clk, rnd, logger)
	reportService := report.New(store, clk, rnd, sink, logger)
	scoreboardService := scoreboard.New(store, clk, rnd, logger)
	authService := auth.New(store, clk, rnd, authCfg, logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		GameService:       gameService,
		RosterService:     rosterService,
		InfectionService:  infectionService,
		TimelineService:   timelineService,
		RankingService:    rankingService,
		MissionService:    missionService,
		ReportService:     reportService,
		ScoreboardService: scoreboardService,
		AuthService:       authService,
		HubManager:        hubManager,
		Notifications:     dispatcher,
	}
}

// Close flushes pending notifications, ends live feeds and releases storage
func (a *App) Close() error {
	if a.Notifications != nil {
		a.Notifications.Close()
	}
	a.HubManager.CloseAll()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
