package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/hvztracker/internal/model"
	"github.com/mcoot/hvztracker/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Values are copied on the way in and out so callers never share rows.
type Storage struct {
	mu sync.RWMutex

	players      map[model.PlayerID]*model.Player
	discordIndex map[string]model.PlayerID
	clans        map[string]*model.Clan
	clanHistory  map[string][]*model.ClanHistoryItem
	linkCodes    map[string]*model.LinkCode

	games      map[model.GameID]*model.Game
	activeGame model.GameID

	statuses       map[statusKey]*model.PlayerStatus
	tagTargetIndex map[string]statusKey
	zombieIndex    map[string]statusKey

	tags        map[model.GameID][]*model.Tag
	antiviruses map[string]*model.Antivirus
	bodyArmors  map[string]*model.BodyArmor
	failed      map[model.GameID][]*model.FailedAntivirusAttempt
	seq         map[model.GameID]int64
	versions    map[model.GameID]int64

	missions    map[model.GameID][]*model.Mission
	scoreboards map[string]*model.Scoreboard
	reports     []*model.Report
	apiKeys     map[string]*model.APIKey
}

type statusKey struct {
	gameID   model.GameID
	playerID model.PlayerID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:        make(map[model.PlayerID]*model.Player),
		discordIndex:   make(map[string]model.PlayerID),
		clans:          make(map[string]*model.Clan),
		clanHistory:    make(map[string][]*model.ClanHistoryItem),
		linkCodes:      make(map[string]*model.LinkCode),
		games:          make(map[model.GameID]*model.Game),
		statuses:       make(map[statusKey]*model.PlayerStatus),
		tagTargetIndex: make(map[string]statusKey),
		zombieIndex:    make(map[string]statusKey),
		tags:           make(map[model.GameID][]*model.Tag),
		antiviruses:    make(map[string]*model.Antivirus),
		bodyArmors:     make(map[string]*model.BodyArmor),
		failed:         make(map[model.GameID][]*model.FailedAntivirusAttempt),
		seq:            make(map[model.GameID]int64),
		versions:       make(map[model.GameID]int64),
		missions:       make(map[model.GameID][]*model.Mission),
		scoreboards:    make(map[string]*model.Scoreboard),
		apiKeys:        make(map[string]*model.APIKey),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.players[player.ID]; ok && old.DiscordID != "" && old.DiscordID != player.DiscordID {
		delete(s.discordIndex, old.DiscordID)
	}
	p := *player
	s.players[player.ID] = &p
	if p.DiscordID != "" {
		s.discordIndex[p.DiscordID] = p.ID
	}
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	p := *player
	return &p, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.Player, 0, len(s.players))
	for _, player := range s.players {
		p := *player
		players = append(players, &p)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })
	return players, nil
}

func (s *Storage) GetPlayerByDiscordID(ctx context.Context, discordID string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.discordIndex[discordID]
	if !ok {
		return nil, model.ErrDiscordIDNotFound
	}
	p := *s.players[id]
	return &p, nil
}

// Clan operations

func (s *Storage) CreateClan(ctx context.Context, clan *model.Clan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clans[clan.Name]; ok {
		return model.ErrDuplicateClan
	}
	c := *clan
	s.clans[clan.Name] = &c
	return nil
}

func (s *Storage) GetClan(ctx context.Context, name string) (*model.Clan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clan, ok := s.clans[name]
	if !ok {
		return nil, model.ErrClanNotFound
	}
	c := *clan
	return &c, nil
}

func (s *Storage) ListClans(ctx context.Context) ([]*model.Clan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clans := make([]*model.Clan, 0, len(s.clans))
	for _, clan := range s.clans {
		c := *clan
		clans = append(clans, &c)
	}
	sort.Slice(clans, func(i, j int) bool { return clans[i].Name < clans[j].Name })
	return clans, nil
}

func (s *Storage) SaveClan(ctx context.Context, clan *model.Clan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clans[clan.Name]; !ok {
		return model.ErrClanNotFound
	}
	c := *clan
	s.clans[clan.Name] = &c
	return nil
}

func (s *Storage) AppendClanHistory(ctx context.Context, item *model.ClanHistoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	it := *item
	s.clanHistory[item.Clan] = append(s.clanHistory[item.Clan], &it)
	return nil
}

func (s *Storage) ListClanHistory(ctx context.Context, clan string) ([]*model.ClanHistoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]*model.ClanHistoryItem, len(s.clanHistory[clan]))
	for i, item := range s.clanHistory[clan] {
		it := *item
		items[i] = &it
	}
	return items, nil
}

// Link code operations

func (s *Storage) SaveLinkCode(ctx context.Context, code *model.LinkCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *code
	s.linkCodes[code.Code] = &c
	return nil
}

func (s *Storage) ConsumeLinkCode(ctx context.Context, code string) (*model.LinkCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lc, ok := s.linkCodes[code]
	if !ok {
		return nil, model.ErrLinkCodeNotFound
	}
	delete(s.linkCodes, code)
	return lc, nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := *game
	s.games[game.ID] = &g
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	g := *game
	return &g, nil
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	games := make([]*model.Game, 0, len(s.games))
	for _, game := range s.games {
		g := *game
		games = append(games, &g)
	}
	sort.Slice(games, func(i, j int) bool { return games[i].StartDate.Before(games[j].StartDate) })
	return games, nil
}

func (s *Storage) SetActiveGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return model.ErrGameNotFound
	}
	for gid, game := range s.games {
		game.Active = gid == id
	}
	s.activeGame = id
	return nil
}

func (s *Storage) GetActiveGame(ctx context.Context) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[s.activeGame]
	if !ok {
		return nil, model.ErrNoActiveGame
	}
	g := *game
	return &g, nil
}

// Player status operations

func (s *Storage) EnsureStatus(ctx context.Context, status *model.PlayerStatus) (*model.PlayerStatus, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := statusKey{gameID: status.GameID, playerID: status.PlayerID}
	if existing, ok := s.statuses[key]; ok {
		st := *existing
		return &st, false, nil
	}
	st := *status
	s.statuses[key] = &st
	if st.Tag1ID != "" {
		s.tagTargetIndex[st.Tag1ID] = key
	}
	if st.Tag2ID != "" {
		s.tagTargetIndex[st.Tag2ID] = key
	}
	if st.ZombieID != "" {
		s.zombieIndex[st.ZombieID] = key
	}
	s.versions[st.GameID]++
	out := st
	return &out, true, nil
}

func (s *Storage) GetStatus(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.PlayerStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.statuses[statusKey{gameID: gameID, playerID: playerID}]
	if !ok {
		return nil, model.ErrStatusNotFound
	}
	out := *st
	return &out, nil
}

func (s *Storage) ListStatuses(ctx context.Context, gameID model.GameID) ([]*model.PlayerStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var statuses []*model.PlayerStatus
	for key, st := range s.statuses {
		if key.gameID == gameID {
			out := *st
			statuses = append(statuses, &out)
		}
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].PlayerID < statuses[j].PlayerID })
	return statuses, nil
}

func (s *Storage) FindStatusByTagID(ctx context.Context, tagID string) (*model.PlayerStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key, ok := s.tagTargetIndex[tagID]
	if !ok {
		return nil, model.ErrTagTargetNotFound
	}
	out := *s.statuses[key]
	return &out, nil
}

func (s *Storage) FindStatusByZombieID(ctx context.Context, gameID model.GameID, zombieID string) (*model.PlayerStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key, ok := s.zombieIndex[zombieID]
	if !ok || key.gameID != gameID {
		return nil, model.ErrZombieIDNotFound
	}
	out := *s.statuses[key]
	return &out, nil
}

// Atomic event commits

func (s *Storage) CommitTag(ctx context.Context, gameID model.GameID, taggerID, taggeeID model.PlayerID, fn storage.TagMutation) (*model.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	taggerKey := statusKey{gameID: gameID, playerID: taggerID}
	taggeeKey := statusKey{gameID: gameID, playerID: taggeeID}
	storedTagger, ok := s.statuses[taggerKey]
	if !ok {
		return nil, model.ErrStatusNotFound
	}
	storedTaggee, ok := s.statuses[taggeeKey]
	if !ok {
		return nil, model.ErrStatusNotFound
	}

	tagger := *storedTagger
	taggee := *storedTaggee
	tag, err := fn(&tagger, &taggee)
	if err != nil {
		return nil, err
	}

	s.seq[gameID]++
	tag.Seq = s.seq[gameID]
	s.statuses[taggerKey] = &tagger
	s.statuses[taggeeKey] = &taggee
	stored := *tag
	s.tags[gameID] = append(s.tags[gameID], &stored)
	s.versions[gameID]++

	return tag, nil
}

func (s *Storage) CommitRedemption(ctx context.Context, gameID model.GameID, code string, playerID model.PlayerID, fn storage.RedemptionMutation) (*model.Antivirus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	storedAV, ok := s.antiviruses[code]
	if !ok || storedAV.GameID != gameID {
		return nil, model.ErrAntivirusNotFound
	}
	key := statusKey{gameID: gameID, playerID: playerID}
	var status *model.PlayerStatus
	if storedStatus, ok := s.statuses[key]; ok {
		cp := *storedStatus
		status = &cp
	}

	av := copyAntivirus(storedAV)
	if err := fn(av, status); err != nil {
		return nil, err
	}
	if status == nil {
		return nil, model.ErrStatusNotFound
	}

	s.seq[av.GameID]++
	av.Seq = s.seq[av.GameID]
	s.antiviruses[code] = copyAntivirus(av)
	s.statuses[key] = status
	s.versions[av.GameID]++

	return av, nil
}

func (s *Storage) GameVersion(ctx context.Context, gameID model.GameID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.versions[gameID], nil
}

// Event history

func (s *Storage) ListTags(ctx context.Context, gameID model.GameID) ([]*model.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tags := make([]*model.Tag, len(s.tags[gameID]))
	for i, tag := range s.tags[gameID] {
		t := *tag
		tags[i] = &t
	}
	return tags, nil
}

func (s *Storage) CreateAntivirus(ctx context.Context, av *model.Antivirus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.antiviruses[av.Code]; ok {
		return model.ErrDuplicateCode
	}
	s.antiviruses[av.Code] = copyAntivirus(av)
	return nil
}

func (s *Storage) GetAntivirus(ctx context.Context, code string) (*model.Antivirus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	av, ok := s.antiviruses[code]
	if !ok {
		return nil, model.ErrAntivirusNotFound
	}
	return copyAntivirus(av), nil
}

func (s *Storage) ListAntiviruses(ctx context.Context, gameID model.GameID) ([]*model.Antivirus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var avs []*model.Antivirus
	for _, av := range s.antiviruses {
		if av.GameID == gameID {
			avs = append(avs, copyAntivirus(av))
		}
	}
	sort.Slice(avs, func(i, j int) bool { return avs[i].Code < avs[j].Code })
	return avs, nil
}

func (s *Storage) SaveFailedAttempt(ctx context.Context, attempt *model.FailedAntivirusAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := *attempt
	s.failed[attempt.GameID] = append(s.failed[attempt.GameID], &a)
	return nil
}

func (s *Storage) ListFailedAttempts(ctx context.Context, gameID model.GameID, playerID model.PlayerID) ([]*model.FailedAntivirusAttempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var attempts []*model.FailedAntivirusAttempt
	for _, attempt := range s.failed[gameID] {
		if attempt.PlayerID == playerID {
			a := *attempt
			attempts = append(attempts, &a)
		}
	}
	return attempts, nil
}

// Body armor operations

func (s *Storage) CreateBodyArmor(ctx context.Context, armor *model.BodyArmor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bodyArmors[armor.Code]; ok {
		return model.ErrDuplicateCode
	}
	a := *armor
	s.bodyArmors[armor.Code] = &a
	return nil
}

func (s *Storage) ListBodyArmors(ctx context.Context, gameID model.GameID) ([]*model.BodyArmor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var armors []*model.BodyArmor
	for _, armor := range s.bodyArmors {
		if armor.GameID == gameID {
			a := *armor
			armors = append(armors, &a)
		}
	}
	sort.Slice(armors, func(i, j int) bool { return armors[i].Code < armors[j].Code })
	return armors, nil
}

// Mission operations

func (s *Storage) SaveMission(ctx context.Context, mission *model.Mission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := *mission
	s.missions[mission.GameID] = append(s.missions[mission.GameID], &m)
	return nil
}

func (s *Storage) ListMissions(ctx context.Context, gameID model.GameID) ([]*model.Mission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	missions := make([]*model.Mission, len(s.missions[gameID]))
	for i, mission := range s.missions[gameID] {
		m := *mission
		missions[i] = &m
	}
	return missions, nil
}

// Scoreboard operations

func (s *Storage) SaveScoreboard(ctx context.Context, board *model.Scoreboard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scoreboards[board.ID] = copyScoreboard(board)
	return nil
}

func (s *Storage) GetScoreboard(ctx context.Context, id string) (*model.Scoreboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	board, ok := s.scoreboards[id]
	if !ok {
		return nil, model.ErrScoreboardNotFound
	}
	return copyScoreboard(board), nil
}

func (s *Storage) ListScoreboards(ctx context.Context, gameID model.GameID) ([]*model.Scoreboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var boards []*model.Scoreboard
	for _, board := range s.scoreboards {
		if board.GameID == gameID {
			boards = append(boards, copyScoreboard(board))
		}
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
	s.mu.Lock()
	defer s.mu.Unlock()
	r := *report
	s.reports = append(s.reports, &r)
	return nil
}

func (s *Storage) ListReports(ctx context.Context) ([]*model.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reports := make([]*model.Report, len(s.reports))
	for i, report := range s.reports {
		r := *report
		reports[i] = &r
	}
	return reports, nil
}

// API key operations

func (s *Storage) SaveAPIKey(ctx context.Context, key *model.APIKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := *key
	s.apiKeys[key.Prefix] = &k
	return nil
}

func (s *Storage) GetAPIKey(ctx context.Context, prefix string) (*model.APIKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key, ok := s.apiKeys[prefix]
	if !ok {
		return nil, model.ErrAPIKeyNotFound
	}
	k := *key
	return &k, nil
}

func copyScoreboard(board *model.Scoreboard) *model.Scoreboard {
	out := *board
	out.Rows = append([]model.ScoreboardRow(nil), board.Rows...)
	return &out
}

func copyAntivirus(av *model.Antivirus) *model.Antivirus {
	out := *av
	if av.UsedBy != nil {
		usedBy := *av.UsedBy
		out.UsedBy = &usedBy
	}
	if av.UsedAt != nil {
		usedAt := *av.UsedAt
		out.UsedAt = &usedAt
	}
	return &out
}
