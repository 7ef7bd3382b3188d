// Package storagetest holds the behaviour every storage backend must share.
// Backend packages embed Suite in their own test suite and set NewStorage.
package storagetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/hvztracker/internal/model"
	"github.com/mcoot/hvztracker/internal/storage"
)

// Suite runs the shared storage contract against a backend
type Suite struct {
	suite.Suite
	NewStorage func() storage.Storage

	Store storage.Storage
	Ctx   context.Context
}

var baseTime = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func (s *Suite) SetupTest() {
	s.Require().NotNil(s.NewStorage, "NewStorage must be set")
	s.Store = s.NewStorage()
	s.Ctx = context.Background()
}

func (s *Suite) seedGame(id model.GameID) {
	s.Require().NoError(s.Store.SaveGame(s.Ctx, &model.Game{ID: id, Name: string(id), StartDate: baseTime}))
}

func (s *Suite) seedStatus(gameID model.GameID, playerID model.PlayerID, code model.StatusCode) *model.PlayerStatus {
	st := &model.PlayerStatus{
		GameID:   gameID,
		PlayerID: playerID,
		Status:   code,
		Tag1ID:   fmt.Sprintf("%s-%s-t1", gameID, playerID),
		Tag2ID:   fmt.Sprintf("%s-%s-t2", gameID, playerID),
		ZombieID: fmt.Sprintf("%s-%s-z", gameID, playerID),
	}
	stored, created, err := s.Store.EnsureStatus(s.Ctx, st)
	s.Require().NoError(err)
	s.Require().True(created)
	return stored
}

func convert(ts time.Time) storage.TagMutation {
	return func(tagger, taggee *model.PlayerStatus) (*model.Tag, error) {
		if taggee.Status != model.StatusHuman {
			return nil, model.ErrInvalidTransition
		}
		taggee.Status = model.StatusZombie
		tagger.NumTags++
		return &model.Tag{ID: "tag-" + string(taggee.PlayerID), GameID: taggee.GameID, Tagger: tagger.PlayerID, Taggee: taggee.PlayerID, Slot: model.TagSlotPrimary, Timestamp: ts}, nil
	}
}

func redeem(ts time.Time) storage.RedemptionMutation {
	return func(av *model.Antivirus, status *model.PlayerStatus) error {
		if av.Redeemed() {
			return model.ErrAntivirusUsed
		}
		if status == nil {
			return model.ErrStatusNotFound
		}
		if !status.Status.IsZombie() {
			return model.ErrInvalidTransition
		}
		usedBy := status.PlayerID
		av.UsedBy = &usedBy
		av.UsedAt = &ts
		status.Status = model.StatusHuman
		return nil
	}
}

// Players

func (s *Suite) TestSaveAndGetPlayer() {
	player := &model.Player{ID: "p1", DisplayName: "Alice", Email: "alice@example.com", Role: model.RoleRegular, CreatedAt: baseTime}
	s.Require().NoError(s.Store.SavePlayer(s.Ctx, player))

	got, err := s.Store.GetPlayer(s.Ctx, "p1")
	s.Require().NoError(err)
	s.Equal("Alice", got.DisplayName)
	s.Equal(model.RoleRegular, got.Role)
	s.True(got.CreatedAt.Equal(baseTime))
}

func (s *Suite) TestGetPlayerNotFound() {
	_, err := s.Store.GetPlayer(s.Ctx, "missing")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *Suite) TestListPlayersSortedByID() {
	for _, id := range []model.PlayerID{"p3", "p1", "p2"} {
		s.Require().NoError(s.Store.SavePlayer(s.Ctx, &model.Player{ID: id, DisplayName: string(id)}))
	}
	players, err := s.Store.ListPlayers(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal(model.PlayerID("p1"), players[0].ID)
	s.Equal(model.PlayerID("p3"), players[2].ID)
}

func (s *Suite) TestDiscordIndexFollowsRelink() {
	player := &model.Player{ID: "p1", DisplayName: "Alice", DiscordID: "d-old"}
	s.Require().NoError(s.Store.SavePlayer(s.Ctx, player))

	got, err := s.Store.GetPlayerByDiscordID(s.Ctx, "d-old")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p1"), got.ID)

	player.DiscordID = "d-new"
	s.Require().NoError(s.Store.SavePlayer(s.Ctx, player))

	_, err = s.Store.GetPlayerByDiscordID(s.Ctx, "d-old")
	s.ErrorIs(err, model.ErrDiscordIDNotFound)
	got, err = s.Store.GetPlayerByDiscordID(s.Ctx, "d-new")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p1"), got.ID)
}

// Clans and link codes

func (s *Suite) TestCreateClanRejectsDuplicate() {
	s.Require().NoError(s.Store.CreateClan(s.Ctx, &model.Clan{Name: "Wolves", Leader: "p1"}))
	s.ErrorIs(s.Store.CreateClan(s.Ctx, &model.Clan{Name: "Wolves"}), model.ErrDuplicateClan)

	clan, err := s.Store.GetClan(s.Ctx, "Wolves")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p1"), clan.Leader)

	_, err = s.Store.GetClan(s.Ctx, "Bears")
	s.ErrorIs(err, model.ErrClanNotFound)

	clans, err := s.Store.ListClans(s.Ctx)
	s.Require().NoError(err)
	s.Len(clans, 1)
}

func (s *Suite) TestSaveClanReplacesExisting() {
	s.Require().NoError(s.Store.CreateClan(s.Ctx, &model.Clan{Name: "Wolves", Leader: "p1"}))
	s.Require().NoError(s.Store.SaveClan(s.Ctx, &model.Clan{Name: "Wolves"}))

	clan, err := s.Store.GetClan(s.Ctx, "Wolves")
	s.Require().NoError(err)
	s.Empty(clan.Leader)

	s.ErrorIs(s.Store.SaveClan(s.Ctx, &model.Clan{Name: "Bears"}), model.ErrClanNotFound)
	_, err = s.Store.GetClan(s.Ctx, "Bears")
	s.ErrorIs(err, model.ErrClanNotFound)
}

func (s *Suite) TestClanHistoryAppendOnly() {
	for i, action := range []model.ClanAction{model.ClanActionCreated, model.ClanActionJoined, model.ClanActionLeft} {
		s.Require().NoError(s.Store.AppendClanHistory(s.Ctx, &model.ClanHistoryItem{
			Clan:      "Wolves",
			PlayerID:  "p1",
			Action:    action,
			Timestamp: baseTime.Add(time.Duration(i) * time.Minute),
		}))
	}
	s.Require().NoError(s.Store.AppendClanHistory(s.Ctx, &model.ClanHistoryItem{Clan: "Bears", Action: model.ClanActionCreated}))

	items, err := s.Store.ListClanHistory(s.Ctx, "Wolves")
	s.Require().NoError(err)
	s.Require().Len(items, 3)
	s.Equal(model.ClanActionCreated, items[0].Action)
	s.Equal(model.ClanActionLeft, items[2].Action)
	s.True(items[2].Timestamp.Equal(baseTime.Add(2 * time.Minute)))

	none, err := s.Store.ListClanHistory(s.Ctx, "Nobody")
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *Suite) TestConsumeLinkCodeOnce() {
	s.Require().NoError(s.Store.SaveLinkCode(s.Ctx, &model.LinkCode{Code: "ABC123", PlayerID: "p1", CreatedAt: baseTime}))

	lc, err := s.Store.ConsumeLinkCode(s.Ctx, "ABC123")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p1"), lc.PlayerID)

	_, err = s.Store.ConsumeLinkCode(s.Ctx, "ABC123")
	s.ErrorIs(err, model.ErrLinkCodeNotFound)
}

// Games

func (s *Suite) TestActiveGame() {
	_, err := s.Store.GetActiveGame(s.Ctx)
	s.ErrorIs(err, model.ErrNoActiveGame)

	s.seedGame("g1")
	s.seedGame("g2")
	s.ErrorIs(s.Store.SetActiveGame(s.Ctx, "missing"), model.ErrGameNotFound)

	s.Require().NoError(s.Store.SetActiveGame(s.Ctx, "g1"))
	s.Require().NoError(s.Store.SetActiveGame(s.Ctx, "g2"))

	active, err := s.Store.GetActiveGame(s.Ctx)
	s.Require().NoError(err)
	s.Equal(model.GameID("g2"), active.ID)
	s.True(active.Active)

	g1, err := s.Store.GetGame(s.Ctx, "g1")
	s.Require().NoError(err)
	s.False(g1.Active)

	games, err := s.Store.ListGames(s.Ctx)
	s.Require().NoError(err)
	s.Len(games, 2)
}

func (s *Suite) TestGetGameNotFound() {
	_, err := s.Store.GetGame(s.Ctx, "missing")
	s.ErrorIs(err, model.ErrGameNotFound)
}

// Statuses

func (s *Suite) TestEnsureStatusKeepsExistingRow() {
	s.seedGame("g1")
	first := s.seedStatus("g1", "p1", model.StatusHuman)

	again, created, err := s.Store.EnsureStatus(s.Ctx, &model.PlayerStatus{GameID: "g1", PlayerID: "p1", Status: model.StatusAdmin, Tag1ID: "other"})
	s.Require().NoError(err)
	s.False(created)
	s.Equal(first.Tag1ID, again.Tag1ID)
	s.Equal(model.StatusHuman, again.Status)
}

func (s *Suite) TestEnsureStatusBumpsVersion() {
	s.seedGame("g1")
	before, err := s.Store.GameVersion(s.Ctx, "g1")
	s.Require().NoError(err)

	s.seedStatus("g1", "p1", model.StatusHuman)
	after, err := s.Store.GameVersion(s.Ctx, "g1")
	s.Require().NoError(err)
	s.Greater(after, before)

	_, _, err = s.Store.EnsureStatus(s.Ctx, &model.PlayerStatus{GameID: "g1", PlayerID: "p1", Status: model.StatusHuman})
	s.Require().NoError(err)
	unchanged, err := s.Store.GameVersion(s.Ctx, "g1")
	s.Require().NoError(err)
	s.Equal(after, unchanged)
}

func (s *Suite) TestStatusLookups() {
	s.seedGame("g1")
	s.seedGame("g2")
	st := s.seedStatus("g1", "p1", model.StatusHuman)
	s.seedStatus("g2", "p1", model.StatusHuman)
	s.seedStatus("g1", "p2", model.StatusZombie)

	byTag, err := s.Store.FindStatusByTagID(s.Ctx, st.Tag2ID)
	s.Require().NoError(err)
	s.Equal(model.GameID("g1"), byTag.GameID)
	s.Equal(model.PlayerID("p1"), byTag.PlayerID)

	_, err = s.Store.FindStatusByTagID(s.Ctx, "nope")
	s.ErrorIs(err, model.ErrTagTargetNotFound)

	byZombie, err := s.Store.FindStatusByZombieID(s.Ctx, "g1", st.ZombieID)
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p1"), byZombie.PlayerID)

	_, err = s.Store.FindStatusByZombieID(s.Ctx, "g2", st.ZombieID)
	s.ErrorIs(err, model.ErrZombieIDNotFound)

	_, err = s.Store.GetStatus(s.Ctx, "g2", "p2")
	s.ErrorIs(err, model.ErrStatusNotFound)

	statuses, err := s.Store.ListStatuses(s.Ctx, "g1")
	s.Require().NoError(err)
	s.Len(statuses, 2)
}

// Tag commits

func (s *Suite) TestCommitTagAppliesMutation() {
	s.seedGame("g1")
	s.seedStatus("g1", "z1", model.StatusZombie)
	s.seedStatus("g1", "h1", model.StatusHuman)
	v0, _ := s.Store.GameVersion(s.Ctx, "g1")

	tag, err := s.Store.CommitTag(s.Ctx, "g1", "z1", "h1", convert(baseTime))
	s.Require().NoError(err)
	s.Greater(tag.Seq, int64(0))

	taggee, err := s.Store.GetStatus(s.Ctx, "g1", "h1")
	s.Require().NoError(err)
	s.Equal(model.StatusZombie, taggee.Status)

	tagger, err := s.Store.GetStatus(s.Ctx, "g1", "z1")
	s.Require().NoError(err)
	s.Equal(1, tagger.NumTags)

	tags, err := s.Store.ListTags(s.Ctx, "g1")
	s.Require().NoError(err)
	s.Require().Len(tags, 1)
	s.Equal(tag.Seq, tags[0].Seq)
	s.True(tags[0].Timestamp.Equal(baseTime))

	v1, _ := s.Store.GameVersion(s.Ctx, "g1")
	s.Greater(v1, v0)
}

func (s *Suite) TestCommitTagAbortWritesNothing() {
	s.seedGame("g1")
	s.seedStatus("g1", "z1", model.StatusZombie)
	s.seedStatus("g1", "z2", model.StatusZombie)
	v0, _ := s.Store.GameVersion(s.Ctx, "g1")

	_, err := s.Store.CommitTag(s.Ctx, "g1", "z1", "z2", convert(baseTime))
	s.ErrorIs(err, model.ErrInvalidTransition)

	tagger, _ := s.Store.GetStatus(s.Ctx, "g1", "z1")
	s.Equal(0, tagger.NumTags)
	tags, _ := s.Store.ListTags(s.Ctx, "g1")
	s.Empty(tags)
	v1, _ := s.Store.GameVersion(s.Ctx, "g1")
	s.Equal(v0, v1)
}

func (s *Suite) TestCommitTagMissingStatus() {
	s.seedGame("g1")
	s.seedStatus("g1", "z1", model.StatusZombie)
	_, err := s.Store.CommitTag(s.Ctx, "g1", "z1", "ghost", convert(baseTime))
	s.ErrorIs(err, model.ErrStatusNotFound)
}

func (s *Suite) TestCommitTagSequenceIncreases() {
	s.seedGame("g1")
	s.seedStatus("g1", "z1", model.StatusZombie)
	s.seedStatus("g1", "h1", model.StatusHuman)
	s.seedStatus("g1", "h2", model.StatusHuman)

	first, err := s.Store.CommitTag(s.Ctx, "g1", "z1", "h1", convert(baseTime))
	s.Require().NoError(err)
	second, err := s.Store.CommitTag(s.Ctx, "g1", "z1", "h2", convert(baseTime))
	s.Require().NoError(err)
	s.Greater(second.Seq, first.Seq)

	tagger, _ := s.Store.GetStatus(s.Ctx, "g1", "z1")
	s.Equal(2, tagger.NumTags)
}

func (s *Suite) TestConcurrentTagsOnOneTaggeeCommitOnce() {
	s.seedGame("g1")
	s.seedStatus("g1", "h1", model.StatusHuman)
	const taggers = 8
	for i := 0; i < taggers; i++ {
		s.seedStatus("g1", model.PlayerID(fmt.Sprintf("z%d", i)), model.StatusZombie)
	}

	var wg sync.WaitGroup
	errs := make([]error, taggers)
	for i := 0; i < taggers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Store.CommitTag(s.Ctx, "g1", model.PlayerID(fmt.Sprintf("z%d", i)), "h1", convert(baseTime))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		s.True(errors.Is(err, model.ErrInvalidTransition) || errors.Is(err, storage.ErrConflict), "unexpected error: %v", err)
	}
	s.Equal(1, succeeded)

	tags, err := s.Store.ListTags(s.Ctx, "g1")
	s.Require().NoError(err)
	s.Len(tags, 1)
}

// Antiviruses

func (s *Suite) TestCreateAntivirusRejectsDuplicate() {
	s.seedGame("g1")
	av := &model.Antivirus{Code: "AV1", GameID: "g1", ExpiresAt: baseTime.Add(time.Hour), CreatedAt: baseTime}
	s.Require().NoError(s.Store.CreateAntivirus(s.Ctx, av))
	s.ErrorIs(s.Store.CreateAntivirus(s.Ctx, av), model.ErrDuplicateCode)

	got, err := s.Store.GetAntivirus(s.Ctx, "AV1")
	s.Require().NoError(err)
	s.False(got.Redeemed())

	_, err = s.Store.GetAntivirus(s.Ctx, "AV2")
	s.ErrorIs(err, model.ErrAntivirusNotFound)
}

func (s *Suite) TestCommitRedemption() {
	s.seedGame("g1")
	s.seedStatus("g1", "z1", model.StatusZombie)
	s.Require().NoError(s.Store.CreateAntivirus(s.Ctx, &model.Antivirus{Code: "AV1", GameID: "g1", ExpiresAt: baseTime.Add(time.Hour)}))
	v0, _ := s.Store.GameVersion(s.Ctx, "g1")

	usedAt := baseTime.Add(10 * time.Minute)
	av, err := s.Store.CommitRedemption(s.Ctx, "g1", "AV1", "z1", redeem(usedAt))
	s.Require().NoError(err)
	s.Greater(av.Seq, int64(0))

	stored, err := s.Store.GetAntivirus(s.Ctx, "AV1")
	s.Require().NoError(err)
	s.Require().True(stored.Redeemed())
	s.Equal(model.PlayerID("z1"), *stored.UsedBy)
	s.True(stored.UsedAt.Equal(usedAt))

	status, _ := s.Store.GetStatus(s.Ctx, "g1", "z1")
	s.Equal(model.StatusHuman, status.Status)

	v1, _ := s.Store.GameVersion(s.Ctx, "g1")
	s.Greater(v1, v0)

	_, err = s.Store.CommitRedemption(s.Ctx, "g1", "AV1", "z1", redeem(usedAt))
	s.ErrorIs(err, model.ErrAntivirusUsed)
}

func (s *Suite) TestCommitRedemptionErrors() {
	s.seedGame("g1")
	s.seedStatus("g1", "h1", model.StatusHuman)
	s.Require().NoError(s.Store.CreateAntivirus(s.Ctx, &model.Antivirus{Code: "AV1", GameID: "g1", ExpiresAt: baseTime.Add(time.Hour)}))

	_, err := s.Store.CommitRedemption(s.Ctx, "g1", "nope", "h1", redeem(baseTime))
	s.ErrorIs(err, model.ErrAntivirusNotFound)

	_, err = s.Store.CommitRedemption(s.Ctx, "g1", "AV1", "ghost", redeem(baseTime))
	s.ErrorIs(err, model.ErrStatusNotFound)

	_, err = s.Store.CommitRedemption(s.Ctx, "g1", "AV1", "h1", redeem(baseTime))
	s.ErrorIs(err, model.ErrInvalidTransition)

	stored, _ := s.Store.GetAntivirus(s.Ctx, "AV1")
	s.False(stored.Redeemed())
}

func (s *Suite) TestCommitRedemptionScopedToGame() {
	s.seedGame("g1")
	s.seedGame("g2")
	s.seedStatus("g1", "z1", model.StatusZombie)
	s.seedStatus("g2", "z1", model.StatusZombie)
	s.Require().NoError(s.Store.CreateAntivirus(s.Ctx, &model.Antivirus{Code: "OLD", GameID: "g1", ExpiresAt: baseTime.Add(time.Hour)}))

	called := false
	_, err := s.Store.CommitRedemption(s.Ctx, "g2", "OLD", "z1", func(*model.Antivirus, *model.PlayerStatus) error {
		called = true
		return nil
	})
	s.ErrorIs(err, model.ErrAntivirusNotFound)
	s.False(called)

	stored, _ := s.Store.GetAntivirus(s.Ctx, "OLD")
	s.False(stored.Redeemed())
}

func (s *Suite) TestCommitRedemptionWithoutStatusRunsMutation() {
	s.seedGame("g1")
	s.Require().NoError(s.Store.CreateAntivirus(s.Ctx, &model.Antivirus{Code: "AV1", GameID: "g1", ExpiresAt: baseTime.Add(time.Hour)}))

	var seen *model.PlayerStatus
	called := false
	_, err := s.Store.CommitRedemption(s.Ctx, "g1", "AV1", "ghost", func(av *model.Antivirus, st *model.PlayerStatus) error {
		called, seen = true, st
		return model.ErrAntivirusExpired
	})
	s.ErrorIs(err, model.ErrAntivirusExpired)
	s.True(called)
	s.Nil(seen)

	// A mutation that ignores the missing row still cannot commit
	_, err = s.Store.CommitRedemption(s.Ctx, "g1", "AV1", "ghost", func(*model.Antivirus, *model.PlayerStatus) error {
		return nil
	})
	s.ErrorIs(err, model.ErrStatusNotFound)
	stored, _ := s.Store.GetAntivirus(s.Ctx, "AV1")
	s.False(stored.Redeemed())
}

func (s *Suite) TestListAntivirusesByGame() {
	s.seedGame("g1")
	s.seedGame("g2")
	s.Require().NoError(s.Store.CreateAntivirus(s.Ctx, &model.Antivirus{Code: "A", GameID: "g1"}))
	s.Require().NoError(s.Store.CreateAntivirus(s.Ctx, &model.Antivirus{Code: "B", GameID: "g1"}))
	s.Require().NoError(s.Store.CreateAntivirus(s.Ctx, &model.Antivirus{Code: "C", GameID: "g2"}))

	avs, err := s.Store.ListAntiviruses(s.Ctx, "g1")
	s.Require().NoError(err)
	s.Len(avs, 2)
}

func (s *Suite) TestBodyArmors() {
	s.seedGame("g1")
	s.seedGame("g2")
	armor := &model.BodyArmor{Code: "ARMOR1", GameID: "g1", ExpiresAt: baseTime.Add(time.Hour), CreatedAt: baseTime}
	s.Require().NoError(s.Store.CreateBodyArmor(s.Ctx, armor))
	s.ErrorIs(s.Store.CreateBodyArmor(s.Ctx, armor), model.ErrDuplicateCode)
	s.ErrorIs(s.Store.CreateBodyArmor(s.Ctx, &model.BodyArmor{Code: "ARMOR1", GameID: "g2"}), model.ErrDuplicateCode)
	s.Require().NoError(s.Store.CreateBodyArmor(s.Ctx, &model.BodyArmor{Code: "ARMOR0", GameID: "g1"}))
	s.Require().NoError(s.Store.CreateBodyArmor(s.Ctx, &model.BodyArmor{Code: "ARMOR2", GameID: "g2"}))

	armors, err := s.Store.ListBodyArmors(s.Ctx, "g1")
	s.Require().NoError(err)
	s.Require().Len(armors, 2)
	s.Equal("ARMOR0", armors[0].Code)
	s.True(armors[1].ExpiresAt.Equal(baseTime.Add(time.Hour)))
}

func (s *Suite) TestScoreboards() {
	s.seedGame("g1")
	board := &model.Scoreboard{
		ID:        "sb1",
		GameID:    "g1",
		Name:      "Nerf kills",
		Active:    true,
		Rows:      []model.ScoreboardRow{{Label: "Wolves", Score: 3}},
		CreatedAt: baseTime,
	}
	s.Require().NoError(s.Store.SaveScoreboard(s.Ctx, board))
	s.Require().NoError(s.Store.SaveScoreboard(s.Ctx, &model.Scoreboard{ID: "sb2", GameID: "g1", Name: "Later", CreatedAt: baseTime.Add(time.Minute)}))
	s.Require().NoError(s.Store.SaveScoreboard(s.Ctx, &model.Scoreboard{ID: "sb3", GameID: "g2", Name: "Other"}))

	board.Rows[0].Score = 99
	got, err := s.Store.GetScoreboard(s.Ctx, "sb1")
	s.Require().NoError(err)
	s.Require().Len(got.Rows, 1)
	s.Equal(3, got.Rows[0].Score)

	got.Active = false
	s.Require().NoError(s.Store.SaveScoreboard(s.Ctx, got))

	boards, err := s.Store.ListScoreboards(s.Ctx, "g1")
	s.Require().NoError(err)
	s.Require().Len(boards, 2)
	s.Equal("sb1", boards[0].ID)
	s.False(boards[0].Active)

	_, err = s.Store.GetScoreboard(s.Ctx, "missing")
	s.ErrorIs(err, model.ErrScoreboardNotFound)
}

func (s *Suite) TestFailedAttemptsFilteredByPlayer() {
	s.Require().NoError(s.Store.SaveFailedAttempt(s.Ctx, &model.FailedAntivirusAttempt{GameID: "g1", PlayerID: "p1", Code: "X", Reason: "not found", Timestamp: baseTime}))
	s.Require().NoError(s.Store.SaveFailedAttempt(s.Ctx, &model.FailedAntivirusAttempt{GameID: "g1", PlayerID: "p2", Code: "Y", Reason: "expired", Timestamp: baseTime}))

	attempts, err := s.Store.ListFailedAttempts(s.Ctx, "g1", "p1")
	s.Require().NoError(err)
	s.Require().Len(attempts, 1)
	s.Equal("X", attempts[0].Code)
}

// Missions, reports and keys

func (s *Suite) TestMissionsAndReports() {
	s.Require().NoError(s.Store.SaveMission(s.Ctx, &model.Mission{ID: "m1", GameID: "g1", Team: model.TeamHuman, MissionText: "hold the quad"}))
	s.Require().NoError(s.Store.SaveMission(s.Ctx, &model.Mission{ID: "m2", GameID: "g2", Team: model.TeamAll}))

	missions, err := s.Store.ListMissions(s.Ctx, "g1")
	s.Require().NoError(err)
	s.Require().Len(missions, 1)
	s.Equal("hold the quad", missions[0].MissionText)

	s.Require().NoError(s.Store.SaveReport(s.Ctx, &model.Report{ID: "r1", Text: "unsafe play", Status: model.ReportStatusNew}))
	reports, err := s.Store.ListReports(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(reports, 1)
	s.Equal(model.ReportStatusNew, reports[0].Status)
}

func (s *Suite) TestAPIKeys() {
	s.Require().NoError(s.Store.SaveAPIKey(s.Ctx, &model.APIKey{Prefix: "abcd", Name: "bot", SecretHash: "hash"}))
	key, err := s.Store.GetAPIKey(s.Ctx, "abcd")
	s.Require().NoError(err)
	s.Equal("bot", key.Name)

	_, err = s.Store.GetAPIKey(s.Ctx, "zzzz")
	s.ErrorIs(err, model.ErrAPIKeyNotFound)
}
