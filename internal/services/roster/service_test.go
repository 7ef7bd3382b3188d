package roster

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/hvztracker/internal/dependencies/mocks"
	"github.com/mcoot/hvztracker/internal/model"
	"github.com/mcoot/hvztracker/internal/storage/memory"
	"github.com/mcoot/hvztracker/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.service = New(s.storage, s.clock, s.random, testutil.NopLogger())
	s.ctx = context.Background()

	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.Game{ID: "g1", Name: "Spring"}))
	s.Require().NoError(s.storage.SetActiveGame(s.ctx, "g1"))
}

func (s *ServiceSuite) register(name string, role model.Role) *model.Player {
	p, err := s.service.RegisterPlayer(s.ctx, name, name+"@example.com", role)
	s.Require().NoError(err)
	return p
}

// Players

func (s *ServiceSuite) TestRegisterPlayerSucceeds() {
	s.random.QueueUUID("p-alice")
	player, err := s.service.RegisterPlayer(s.ctx, " Alice ", "alice@example.com", "")
	s.Require().NoError(err)

	s.Equal(model.PlayerID("p-alice"), player.ID)
	s.Equal("Alice", player.DisplayName)
	s.Equal(model.RoleRegular, player.Role)

	stored, err := s.service.GetPlayer(s.ctx, "p-alice")
	s.Require().NoError(err)
	s.Equal("alice@example.com", stored.Email)
}

func (s *ServiceSuite) TestRegisterPlayerValidation() {
	_, err := s.service.RegisterPlayer(s.ctx, "", "x@example.com", model.RoleRegular)
	s.ErrorIs(err, model.ErrEmptyName)

	_, err = s.service.RegisterPlayer(s.ctx, "Bob", "", "wizard")
	s.ErrorIs(err, model.ErrInvalidRole)
}

func (s *ServiceSuite) TestSetRole() {
	p := s.register("Alice", model.RoleRegular)
	updated, err := s.service.SetRole(s.ctx, p.ID, model.RoleMod)
	s.Require().NoError(err)
	s.Equal(model.RoleMod, updated.Role)

	_, err = s.service.SetRole(s.ctx, p.ID, "nope")
	s.ErrorIs(err, model.ErrInvalidRole)
}

// Statuses

func (s *ServiceSuite) TestEnsureStatusCreatesOnce() {
	p := s.register("Alice", model.RoleRegular)
	s.random.QueueUUID("t1", "t2", "zid")

	first, err := s.service.EnsureStatus(s.ctx, "g1", p.ID, "")
	s.Require().NoError(err)
	s.Equal(model.StatusHuman, first.Status)
	s.Equal("t1", first.Tag1ID)
	s.Equal("t2", first.Tag2ID)
	s.Equal("zid", first.ZombieID)
	s.True(first.ActivatedAt.Equal(s.clock.CurrentTime))

	second, err := s.service.EnsureStatus(s.ctx, "g1", p.ID, model.StatusZombie)
	s.Require().NoError(err)
	s.Equal(model.StatusHuman, second.Status)
	s.Equal("t1", second.Tag1ID)
}

func (s *ServiceSuite) TestEnsureStatusDerivesFromRole() {
	admin := s.register("Root", model.RoleAdmin)
	st, err := s.service.EnsureStatus(s.ctx, "g1", admin.ID, "")
	s.Require().NoError(err)
	s.Equal(model.StatusAdmin, st.Status)
}

func (s *ServiceSuite) TestEnsureStatusErrors() {
	p := s.register("Alice", model.RoleRegular)

	_, err := s.service.EnsureStatus(s.ctx, "missing", p.ID, "")
	s.ErrorIs(err, model.ErrGameNotFound)

	_, err = s.service.EnsureStatus(s.ctx, "g1", "ghost", "")
	s.ErrorIs(err, model.ErrPlayerNotFound)

	_, err = s.service.EnsureStatus(s.ctx, "g1", p.ID, "q")
	s.ErrorIs(err, model.ErrInvalidStatus)
}

func (s *ServiceSuite) TestJoinGameUsesActiveGame() {
	p := s.register("Alice", model.RoleRegular)
	st, err := s.service.JoinGame(s.ctx, p.ID, model.StatusOriginalZombie)
	s.Require().NoError(err)
	s.Equal(model.GameID("g1"), st.GameID)
	s.Equal(model.StatusOriginalZombie, st.Status)
}

func (s *ServiceSuite) TestRosterSkipsNonPlayers() {
	alice := s.register("Alice", model.RoleRegular)
	npc := s.register("Npc", model.RoleNonPlayer)
	_, _ = s.service.JoinGame(s.ctx, alice.ID, "")
	_, _ = s.service.JoinGame(s.ctx, npc.ID, "")

	members, err := s.service.Roster(s.ctx, "g1")
	s.Require().NoError(err)
	s.Require().Len(members, 1)
	s.Equal("Alice", members[0].Player.DisplayName)
}

func (s *ServiceSuite) TestLookupByZombieID() {
	p := s.register("Alice", model.RoleRegular)
	s.random.QueueUUID("t1", "t2", "zid-alice")
	_, err := s.service.JoinGame(s.ctx, p.ID, "")
	s.Require().NoError(err)

	member, err := s.service.LookupByZombieID(s.ctx, "zid-alice")
	s.Require().NoError(err)
	s.Equal(p.ID, member.Player.ID)

	_, err = s.service.LookupByZombieID(s.ctx, "zid-nobody")
	s.ErrorIs(err, model.ErrZombieIDNotFound)
}

func (s *ServiceSuite) TestLookupByPlayerIDWithoutStatus() {
	p := s.register("Alice", model.RoleRegular)
	member, err := s.service.LookupByPlayerID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Nil(member.Status)
}

// Clans

func (s *ServiceSuite) TestCreateClanWithLeader() {
	leader := s.register("Alice", model.RoleRegular)
	clan, err := s.service.CreateClan(s.ctx, "Wolves", leader.ID)
	s.Require().NoError(err)
	s.Equal(leader.ID, clan.Leader)

	stored, _ := s.service.GetPlayer(s.ctx, leader.ID)
	s.Equal("Wolves", stored.ClanName)

	_, err = s.service.CreateClan(s.ctx, "Wolves", "")
	s.ErrorIs(err, model.ErrDuplicateClan)
}

func (s *ServiceSuite) TestJoinAndLeaveClan() {
	_, err := s.service.CreateClan(s.ctx, "Wolves", "")
	s.Require().NoError(err)
	p := s.register("Bob", model.RoleRegular)

	_, err = s.service.JoinClan(s.ctx, "Wolves", p.ID)
	s.Require().NoError(err)
	_, err = s.service.JoinClan(s.ctx, "Wolves", p.ID)
	s.ErrorIs(err, model.ErrAlreadyInClan)

	members, err := s.service.ClanRoster(s.ctx, "Wolves")
	s.Require().NoError(err)
	s.Len(members, 1)

	_, err = s.service.LeaveClan(s.ctx, "Bears", p.ID)
	s.ErrorIs(err, model.ErrClanNotFound)

	_, err = s.service.CreateClan(s.ctx, "Bears", "")
	s.Require().NoError(err)
	_, err = s.service.LeaveClan(s.ctx, "Bears", p.ID)
	s.ErrorIs(err, model.ErrNotClanMember)

	left, err := s.service.LeaveClan(s.ctx, "Wolves", p.ID)
	s.Require().NoError(err)
	s.False(left.HasClan())
}

func (s *ServiceSuite) TestLeaderLeavingClearsLeader() {
	leader := s.register("Alice", model.RoleRegular)
	_, err := s.service.CreateClan(s.ctx, "Wolves", leader.ID)
	s.Require().NoError(err)

	_, err = s.service.LeaveClan(s.ctx, "Wolves", leader.ID)
	s.Require().NoError(err)

	clan, err := s.service.GetClan(s.ctx, "Wolves")
	s.Require().NoError(err)
	s.Empty(clan.Leader)
}

func (s *ServiceSuite) TestClanHistoryNewestFirst() {
	leader := s.register("Alice", model.RoleRegular)
	bob := s.register("Bob", model.RoleRegular)
	_, err := s.service.CreateClan(s.ctx, "Wolves", leader.ID)
	s.Require().NoError(err)
	s.clock.Advance(time.Minute)
	_, err = s.service.JoinClan(s.ctx, "Wolves", bob.ID)
	s.Require().NoError(err)
	s.clock.Advance(time.Minute)
	_, err = s.service.LeaveClan(s.ctx, "Wolves", bob.ID)
	s.Require().NoError(err)

	history, err := s.service.ClanHistory(s.ctx, "Wolves")
	s.Require().NoError(err)
	s.Require().Len(history, 3)
	s.Equal(model.ClanActionLeft, history[0].Action)
	s.Equal(bob.ID, history[0].PlayerID)
	s.True(history[0].Timestamp.Equal(s.clock.CurrentTime))
	s.Equal(model.ClanActionJoined, history[1].Action)
	s.Equal(model.ClanActionCreated, history[2].Action)
	s.Equal(leader.ID, history[2].PlayerID)

	_, err = s.service.ClanHistory(s.ctx, "Nobody")
	s.ErrorIs(err, model.ErrClanNotFound)
}

func (s *ServiceSuite) TestJoinUnknownClan() {
	p := s.register("Bob", model.RoleRegular)
	_, err := s.service.JoinClan(s.ctx, "Nobody", p.ID)
	s.ErrorIs(err, model.ErrClanNotFound)
}

// Discord

func (s *ServiceSuite) TestLinkDiscord() {
	p := s.register("Alice", model.RoleRegular)
	s.random.QueueString("ABCD2345")

	code, err := s.service.CreateLinkCode(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("ABCD2345", code.Code)

	linked, err := s.service.LinkDiscord(s.ctx, "abcd2345", "discord-42")
	s.Require().NoError(err)
	s.Equal("discord-42", linked.DiscordID)

	found, err := s.service.LookupByDiscordID(s.ctx, "discord-42")
	s.Require().NoError(err)
	s.Equal(p.ID, found.ID)

	_, err = s.service.LinkDiscord(s.ctx, "ABCD2345", "discord-43")
	s.ErrorIs(err, model.ErrLinkCodeNotFound)
}

func (s *ServiceSuite) TestLinkDiscordRequiresID() {
	_, err := s.service.LinkDiscord(s.ctx, "ABCD2345", " ")
	s.ErrorIs(err, model.ErrEmptyDiscord)
}
