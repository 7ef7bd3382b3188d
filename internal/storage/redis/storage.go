package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/hvztracker/internal/model"
	"github.com/mcoot/hvztracker/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// watch runs fn under WATCH on keys, retrying while another client
// modifies a watched key before EXEC.
func (s *Storage) watch(ctx context.Context, fn func(tx *redis.Tx) error, keys ...string) error {
	attempts := max(1, s.cfg.MaxTxRetries)
	for i := 0; i < attempts; i++ {
		err := s.client.Watch(ctx, fn, keys...)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return storage.ErrConflict
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// getJSON loads key into out, mapping a missing key to notFound
func getJSON(ctx context.Context, c getter, key string, notFound error, out any) error {
	data, err := c.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return notFound
		}
		return err
	}
	return json.Unmarshal(data, out)
}

// mgetJSON fetches keys with MGET and decodes every present value
func mgetJSON[T any](ctx context.Context, client *redis.Client, keys []string) ([]*T, error) {
	if len(keys) == 0 {
		return []*T{}, nil
	}
	values, err := client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(values))
	for _, val := range values {
		str, ok := val.(string)
		if !ok {
			continue // Key removed since the index was read
		}
		var item T
		if err := json.Unmarshal([]byte(str), &item); err != nil {
			return nil, err
		}
		out = append(out, &item)
	}
	return out, nil
}

// lrangeJSON decodes every element of a LIST
func lrangeJSON[T any](ctx context.Context, client *redis.Client, key string) ([]*T, error) {
	values, err := client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(values))
	for _, val := range values {
		var item T
		if err := json.Unmarshal([]byte(val), &item); err != nil {
			return nil, err
		}
		out = append(out, &item)
	}
	return out, nil
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}
	key := playerKey(player.ID)

	return s.watch(ctx, func(tx *redis.Tx) error {
		var old model.Player
		err := getJSON(ctx, tx, key, model.ErrPlayerNotFound, &old)
		if err != nil && !errors.Is(err, model.ErrPlayerNotFound) {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			pipe.SAdd(ctx, playersIndexKey(), string(player.ID))
			if old.DiscordID != "" && old.DiscordID != player.DiscordID {
				pipe.Del(ctx, discordIndexKey(old.DiscordID))
			}
			if player.DiscordID != "" {
				pipe.Set(ctx, discordIndexKey(player.DiscordID), string(player.ID), 0)
			}
			return nil
		})
		return err
	}, key)
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var player model.Player
	if err := getJSON(ctx, s.client, playerKey(id), model.ErrPlayerNotFound, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	ids, err := s.client.SMembers(ctx, playersIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = playerKey(model.PlayerID(id))
	}
	players, err := mgetJSON[model.Player](ctx, s.client, keys)
	if err != nil {
		return nil, err
	}
	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })
	return players, nil
}

func (s *Storage) GetPlayerByDiscordID(ctx context.Context, discordID string) (*model.Player, error) {
	id, err := s.client.Get(ctx, discordIndexKey(discordID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrDiscordIDNotFound
		}
		return nil, err
	}
	return s.GetPlayer(ctx, model.PlayerID(id))
}

// Clan operations

func (s *Storage) CreateClan(ctx context.Context, clan *model.Clan) error {
	data, err := json.Marshal(clan)
	if err != nil {
		return err
	}
	ok, err := s.client.SetNX(ctx, clanKey(clan.Name), data, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrDuplicateClan
	}
	return s.client.SAdd(ctx, clansIndexKey(), clan.Name).Err()
}

func (s *Storage) GetClan(ctx context.Context, name string) (*model.Clan, error) {
	var clan model.Clan
	if err := getJSON(ctx, s.client, clanKey(name), model.ErrClanNotFound, &clan); err != nil {
		return nil, err
	}
	return &clan, nil
}

func (s *Storage) ListClans(ctx context.Context) ([]*model.Clan, error) {
	names, err := s.client.SMembers(ctx, clansIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(names))
	for i, name := range names {
		keys[i] = clanKey(name)
	}
	clans, err := mgetJSON[model.Clan](ctx, s.client, keys)
	if err != nil {
		return nil, err
	}
	sort.Slice(clans, func(i, j int) bool { return clans[i].Name < clans[j].Name })
	return clans, nil
}

// SaveClan replaces an existing clan
func (s *Storage) SaveClan(ctx context.Context, clan *model.Clan) error {
	data, err := json.Marshal(clan)
	if err != nil {
		return err
	}
	ok, err := s.client.SetXX(ctx, clanKey(clan.Name), data, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrClanNotFound
	}
	return nil
}

func (s *Storage) AppendClanHistory(ctx context.Context, item *model.ClanHistoryItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return s.client.RPush(ctx, clanHistoryKey(item.Clan), data).Err()
}

func (s *Storage) ListClanHistory(ctx context.Context, clan string) ([]*model.ClanHistoryItem, error) {
	return lrangeJSON[model.ClanHistoryItem](ctx, s.client, clanHistoryKey(clan))
}

// Link code operations

func (s *Storage) SaveLinkCode(ctx context.Context, code *model.LinkCode) error {
	data, err := json.Marshal(code)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, linkCodeKey(code.Code), data, s.cfg.LinkCodeTTL).Err()
}

func (s *Storage) ConsumeLinkCode(ctx context.Context, code string) (*model.LinkCode, error) {
	data, err := s.client.GetDel(ctx, linkCodeKey(code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrLinkCodeNotFound
		}
		return nil, err
	}
	var lc model.LinkCode
	if err := json.Unmarshal(data, &lc); err != nil {
		return nil, err
	}
	return &lc, nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, gameKey(game.ID), data, 0)
	pipe.SAdd(ctx, gamesIndexKey(), string(game.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	var game model.Game
	if err := getJSON(ctx, s.client, gameKey(id), model.ErrGameNotFound, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	ids, err := s.client.SMembers(ctx, gamesIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = gameKey(model.GameID(id))
	}
	games, err := mgetJSON[model.Game](ctx, s.client, keys)
	if err != nil {
		return nil, err
	}
	sort.Slice(games, func(i, j int) bool { return games[i].StartDate.Before(games[j].StartDate) })
	return games, nil
}

func (s *Storage) SetActiveGame(ctx context.Context, id model.GameID) error {
	return s.watch(ctx, func(tx *redis.Tx) error {
		var next model.Game
		if err := getJSON(ctx, tx, gameKey(id), model.ErrGameNotFound, &next); err != nil {
			return err
		}

		prevID, err := tx.Get(ctx, activeGameKey()).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}

		var prev *model.Game
		if prevID != "" && prevID != string(id) {
			if err := tx.Watch(ctx, gameKey(model.GameID(prevID))).Err(); err != nil {
				return err
			}
			var g model.Game
			err := getJSON(ctx, tx, gameKey(model.GameID(prevID)), model.ErrGameNotFound, &g)
			switch {
			case err == nil:
				g.Active = false
				prev = &g
			case !errors.Is(err, model.ErrGameNotFound):
				return err
			}
		}

		next.Active = true
		nextData, err := json.Marshal(&next)
		if err != nil {
			return err
		}
		var prevData []byte
		if prev != nil {
			if prevData, err = json.Marshal(prev); err != nil {
				return err
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, gameKey(id), nextData, 0)
			if prev != nil {
				pipe.Set(ctx, gameKey(prev.ID), prevData, 0)
			}
			pipe.Set(ctx, activeGameKey(), string(id), 0)
			return nil
		})
		return err
	}, activeGameKey(), gameKey(id))
}

func (s *Storage) GetActiveGame(ctx context.Context) (*model.Game, error) {
	id, err := s.client.Get(ctx, activeGameKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrNoActiveGame
		}
		return nil, err
	}
	game, err := s.GetGame(ctx, model.GameID(id))
	if errors.Is(err, model.ErrGameNotFound) {
		return nil, model.ErrNoActiveGame
	}
	return game, err
}

// Player status operations

func (s *Storage) EnsureStatus(ctx context.Context, status *model.PlayerStatus) (*model.PlayerStatus, bool, error) {
	key := statusKey(status.GameID, status.PlayerID)
	data, err := json.Marshal(status)
	if err != nil {
		return nil, false, err
	}

	var (
		result  *model.PlayerStatus
		created bool
	)
	err = s.watch(ctx, func(tx *redis.Tx) error {
		var existing model.PlayerStatus
		err := getJSON(ctx, tx, key, model.ErrStatusNotFound, &existing)
		if err == nil {
			result, created = &existing, false
			return nil
		}
		if !errors.Is(err, model.ErrStatusNotFound) {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			pipe.SAdd(ctx, statusesIndexKey(status.GameID), key)
			if status.Tag1ID != "" {
				pipe.Set(ctx, tagTargetIndexKey(status.Tag1ID), key, 0)
			}
			if status.Tag2ID != "" {
				pipe.Set(ctx, tagTargetIndexKey(status.Tag2ID), key, 0)
			}
			if status.ZombieID != "" {
				pipe.Set(ctx, zombieIndexKey(status.GameID, status.ZombieID), key, 0)
			}
			pipe.Incr(ctx, versionKey(status.GameID))
			return nil
		})
		if err != nil {
			return err
		}
		stored := *status
		result, created = &stored, true
		return nil
	}, key)
	if err != nil {
		return nil, false, err
	}
	return result, created, nil
}

func (s *Storage) GetStatus(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.PlayerStatus, error) {
	var status model.PlayerStatus
	if err := getJSON(ctx, s.client, statusKey(gameID, playerID), model.ErrStatusNotFound, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (s *Storage) ListStatuses(ctx context.Context, gameID model.GameID) ([]*model.PlayerStatus, error) {
	keys, err := s.client.SMembers(ctx, statusesIndexKey(gameID)).Result()
	if err != nil {
		return nil, err
	}
	statuses, err := mgetJSON[model.PlayerStatus](ctx, s.client, keys)
	if err != nil {
		return nil, err
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].PlayerID < statuses[j].PlayerID })
	return statuses, nil
}

func (s *Storage) statusByIndex(ctx context.Context, indexKey string, notFound error) (*model.PlayerStatus, error) {
	key, err := s.client.Get(ctx, indexKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, notFound
		}
		return nil, err
	}
	var status model.PlayerStatus
	if err := getJSON(ctx, s.client, key, notFound, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (s *Storage) FindStatusByTagID(ctx context.Context, tagID string) (*model.PlayerStatus, error) {
	return s.statusByIndex(ctx, tagTargetIndexKey(tagID), model.ErrTagTargetNotFound)
}

func (s *Storage) FindStatusByZombieID(ctx context.Context, gameID model.GameID, zombieID string) (*model.PlayerStatus, error) {
	return s.statusByIndex(ctx, zombieIndexKey(gameID, zombieID), model.ErrZombieIDNotFound)
}

// Atomic event commits

func (s *Storage) CommitTag(ctx context.Context, gameID model.GameID, taggerID, taggeeID model.PlayerID, fn storage.TagMutation) (*model.Tag, error) {
	taggerKey := statusKey(gameID, taggerID)
	taggeeKey := statusKey(gameID, taggeeID)

	var result *model.Tag
	err := s.watch(ctx, func(tx *redis.Tx) error {
		var tagger, taggee model.PlayerStatus
		if err := getJSON(ctx, tx, taggerKey, model.ErrStatusNotFound, &tagger); err != nil {
			return err
		}
		if err := getJSON(ctx, tx, taggeeKey, model.ErrStatusNotFound, &taggee); err != nil {
			return err
		}

		tag, err := fn(&tagger, &taggee)
		if err != nil {
			return err
		}

		// The counter is not watched; an aborted EXEC only leaves a gap.
		seq, err := tx.Incr(ctx, seqKey(gameID)).Result()
		if err != nil {
			return err
		}
		tag.Seq = seq

		taggerData, err := json.Marshal(&tagger)
		if err != nil {
			return err
		}
		taggeeData, err := json.Marshal(&taggee)
		if err != nil {
			return err
		}
		tagData, err := json.Marshal(tag)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, taggerKey, taggerData, 0)
			pipe.Set(ctx, taggeeKey, taggeeData, 0)
			pipe.RPush(ctx, tagsKey(gameID), tagData)
			pipe.Incr(ctx, versionKey(gameID))
			return nil
		})
		if err != nil {
			return err
		}
		result = tag
		return nil
	}, taggerKey, taggeeKey)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Storage) CommitRedemption(ctx context.Context, gameID model.GameID, code string, playerID model.PlayerID, fn storage.RedemptionMutation) (*model.Antivirus, error) {
	avKey := antivirusKey(code)
	stKey := statusKey(gameID, playerID)

	var result *model.Antivirus
	err := s.watch(ctx, func(tx *redis.Tx) error {
		var av model.Antivirus
		if err := getJSON(ctx, tx, avKey, model.ErrAntivirusNotFound, &av); err != nil {
			return err
		}
		if av.GameID != gameID {
			return model.ErrAntivirusNotFound
		}

		var status *model.PlayerStatus
		var row model.PlayerStatus
		err := getJSON(ctx, tx, stKey, model.ErrStatusNotFound, &row)
		switch {
		case err == nil:
			status = &row
		case !errors.Is(err, model.ErrStatusNotFound):
			return err
		}

		if err := fn(&av, status); err != nil {
			return err
		}
		if status == nil {
			return model.ErrStatusNotFound
		}

		seq, err := tx.Incr(ctx, seqKey(av.GameID)).Result()
		if err != nil {
			return err
		}
		av.Seq = seq

		avData, err := json.Marshal(&av)
		if err != nil {
			return err
		}
		statusData, err := json.Marshal(status)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, avKey, avData, 0)
			pipe.Set(ctx, stKey, statusData, 0)
			pipe.Incr(ctx, versionKey(av.GameID))
			return nil
		})
		if err != nil {
			return err
		}
		result = &av
		return nil
	}, avKey, stKey)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Storage) GameVersion(ctx context.Context, gameID model.GameID) (int64, error) {
	v, err := s.client.Get(ctx, versionKey(gameID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// Event history

func (s *Storage) ListTags(ctx context.Context, gameID model.GameID) ([]*model.Tag, error) {
	return lrangeJSON[model.Tag](ctx, s.client, tagsKey(gameID))
}

func (s *Storage) CreateAntivirus(ctx context.Context, av *model.Antivirus) error {
	data, err := json.Marshal(av)
	if err != nil {
		return err
	}
	ok, err := s.client.SetNX(ctx, antivirusKey(av.Code), data, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrDuplicateCode
	}
	return s.client.SAdd(ctx, antivirusesIndexKey(av.GameID), av.Code).Err()
}

func (s *Storage) GetAntivirus(ctx context.Context, code string) (*model.Antivirus, error) {
	var av model.Antivirus
	if err := getJSON(ctx, s.client, antivirusKey(code), model.ErrAntivirusNotFound, &av); err != nil {
		return nil, err
	}
	return &av, nil
}

func (s *Storage) ListAntiviruses(ctx context.Context, gameID model.GameID) ([]*model.Antivirus, error) {
	codes, err := s.client.SMembers(ctx, antivirusesIndexKey(gameID)).Result()
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(codes))
	for i, code := range codes {
		keys[i] = antivirusKey(code)
	}
	avs, err := mgetJSON[model.Antivirus](ctx, s.client, keys)
	if err != nil {
		return nil, err
	}
	sort.Slice(avs, func(i, j int) bool { return avs[i].Code < avs[j].Code })
	return avs, nil
}

func (s *Storage) CreateBodyArmor(ctx context.Context, armor *model.BodyArmor) error {
	data, err := json.Marshal(armor)
	if err != nil {
		return err
	}
	ok, err := s.client.SetNX(ctx, bodyArmorKey(armor.Code), data, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrDuplicateCode
	}
	return s.client.SAdd(ctx, bodyArmorsIndexKey(armor.GameID), armor.Code).Err()
}

func (s *Storage) ListBodyArmors(ctx context.Context, gameID model.GameID) ([]*model.BodyArmor, error) {
	codes, err := s.client.SMembers(ctx, bodyArmorsIndexKey(gameID)).Result()
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(codes))
	for i, code := range codes {
		keys[i] = bodyArmorKey(code)
	}
	armors, err := mgetJSON[model.BodyArmor](ctx, s.client, keys)
	if err != nil {
		return nil, err
	}
	sort.Slice(armors, func(i, j int) bool { return armors[i].Code < armors[j].Code })
	return armors, nil
}

func (s *Storage) SaveFailedAttempt(ctx context.Context, attempt *model.FailedAntivirusAttempt) error {
	data, err := json.Marshal(attempt)
	if err != nil {
		return err
	}
	return s.client.RPush(ctx, failedAttemptsKey(attempt.GameID), data).Err()
}

func (s *Storage) ListFailedAttempts(ctx context.Context, gameID model.GameID, playerID model.PlayerID) ([]*model.FailedAntivirusAttempt, error) {
	all, err := lrangeJSON[model.FailedAntivirusAttempt](ctx, s.client, failedAttemptsKey(gameID))
	if err != nil {
		return nil, err
	}
	var attempts []*model.FailedAntivirusAttempt
	for _, attempt := range all {
		if attempt.PlayerID == playerID {
			attempts = append(attempts, attempt)
		}
	}
	return attempts, nil
}

// Mission operations

func (s *Storage) SaveMission(ctx context.Context, mission *model.Mission) error {
	data, err := json.Marshal(mission)
	if err != nil {
		return err
	}
	return s.client.RPush(ctx, missionsKey(mission.GameID), data).Err()
}

func (s *Storage) ListMissions(ctx context.Context, gameID model.GameID) ([]*model.Mission, error) {
	return lrangeJSON[model.Mission](ctx, s.client, missionsKey(gameID))
}

// Scoreboard operations

func (s *Storage) SaveScoreboard(ctx context.Context, board *model.Scoreboard) error {
	data, err := json.Marshal(board)
	if err != nil {
		return err
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, scoreboardKey(board.ID), data, 0)
		pipe.SAdd(ctx, scoreboardsIndexKey(board.GameID), board.ID)
		return nil
	})
	return err
}

func (s *Storage) GetScoreboard(ctx context.Context, id string) (*model.Scoreboard, error) {
	var board model.Scoreboard
	if err := getJSON(ctx, s.client, scoreboardKey(id), model.ErrScoreboardNotFound, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

func (s *Storage) ListScoreboards(ctx context.Context, gameID model.GameID) ([]*model.Scoreboard, error) {
	ids, err := s.client.SMembers(ctx, scoreboardsIndexKey(gameID)).Result()
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = scoreboardKey(id)
	}
	boards, err := mgetJSON[model.Scoreboard](ctx, s.client, keys)
	if err != nil {
		return nil, err
	}
	sort.Slice(boards, func(i, j int) bool {
		if !boards[i].CreatedAt.Equal(boards[j].CreatedAt) {
			return boards[i].CreatedAt.Before(boards[j].CreatedAt)
		}
		return boards[i].ID < boards[j].ID
	})
	return boards, nil
}

// Report operations

func (s *Storage) SaveReport(ctx context.Context, report *model.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return s.client.RPush(ctx, reportsKey(), data).Err()
}

func (s *Storage) ListReports(ctx context.Context) ([]*model.Report, error) {
	return lrangeJSON[model.Report](ctx, s.client, reportsKey())
}

// API key operations

func (s *Storage) SaveAPIKey(ctx context.Context, key *model.APIKey) error {
	data, err := json.Marshal(key)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, apiKeyKey(key.Prefix), data, 0).Err()
}

func (s *Storage) GetAPIKey(ctx context.Context, prefix string) (*model.APIKey, error) {
	var key model.APIKey
	if err := getJSON(ctx, s.client, apiKeyKey(prefix), model.ErrAPIKeyNotFound, &key); err != nil {
		return nil, err
	}
	return &key, nil
}
