package timeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/hvztracker/internal/dependencies/mocks"
	"github.com/mcoot/hvztracker/internal/model"
	"github.com/mcoot/hvztracker/internal/services/infection"
	"github.com/mcoot/hvztracker/internal/services/roster"
	"github.com/mcoot/hvztracker/internal/storage/memory"
	"github.com/mcoot/hvztracker/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage   *memory.Storage
	clock     *mocks.MockClock
	random    *mocks.MockRandom
	roster    *roster.Service
	infection *infection.Service
	service   *Service
	ctx       context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	s.clock.Step = time.Minute
	s.random = mocks.NewMockRandom()
	logger := testutil.NopLogger()
	s.roster = roster.New(s.storage, s.clock, s.random, logger)
	s.infection = infection.New(s.storage, s.roster, s.clock, s.random, nil, logger)
	s.service = New(s.storage, s.roster, NewCache(), logger)
	s.ctx = context.Background()

	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.Game{ID: "g1", StartDate: s.clock.CurrentTime}))
	s.Require().NoError(s.storage.SetActiveGame(s.ctx, "g1"))
}

func (s *ServiceSuite) join(id model.PlayerID, name string, code model.StatusCode) {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: id, DisplayName: name, Role: model.RoleRegular}))
	s.random.QueueUUID(string(id)+"-t1", string(id)+"-t2", string(id)+"-z")
	_, err := s.roster.JoinGame(s.ctx, id, code)
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestTimelineTracksCommittedEvents() {
	s.join("A", "Alice", model.StatusHuman)
	s.join("B", "Bob", model.StatusHumanVaccinated)
	s.join("C", "Cass", model.StatusZombie)

	series, err := s.service.Timeline(s.ctx)
	s.Require().NoError(err)
	s.Len(series.Points, 1)
	s.Equal(2, series.Points[0].HumanCount)
	s.Equal(1, series.Points[0].ZombieCount)

	_, err = s.infection.RecordTag(s.ctx, "C", "A-t1")
	s.Require().NoError(err)

	series, err = s.service.Timeline(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(series.Points, 2)
	s.Equal(1, series.Points[1].HumanCount)
	s.Equal(2, series.Points[1].ZombieCount)
}

func (s *ServiceSuite) TestRejectedEventsNeverAppear() {
	s.join("A", "Alice", model.StatusHuman)
	s.join("C", "Cass", model.StatusZombie)

	_, err := s.infection.RecordTag(s.ctx, "C", "A-t2")
	s.ErrorIs(err, model.ErrInvalidTransition)

	series, err := s.service.Timeline(s.ctx)
	s.Require().NoError(err)
	s.Len(series.Points, 1)
}

func (s *ServiceSuite) TestCachedSeriesReusedUntilVersionChanges() {
	s.join("A", "Alice", model.StatusHuman)
	s.join("C", "Cass", model.StatusZombie)

	first, err := s.service.Timeline(s.ctx)
	s.Require().NoError(err)
	second, err := s.service.Timeline(s.ctx)
	s.Require().NoError(err)
	s.Same(first, second)

	// A new player joining changes the totals, so the cache must miss
	s.join("D", "Dee", model.StatusHuman)
	third, err := s.service.Timeline(s.ctx)
	s.Require().NoError(err)
	s.NotSame(second, third)
	s.Equal(2, third.HumanCount)
}

func (s *ServiceSuite) TestSummary() {
	s.join("A", "Alice", model.StatusHuman)
	s.join("B", "Bob", model.StatusHuman)
	s.join("C", "Cass", model.StatusZombie)
	_, err := s.infection.CreateAntivirus(s.ctx, "CURE", s.clock.CurrentTime.Add(time.Hour))
	s.Require().NoError(err)

	_, err = s.infection.RecordTag(s.ctx, "C", "A-t1")
	s.Require().NoError(err)
	_, err = s.infection.RecordTag(s.ctx, "C", "B-t1")
	s.Require().NoError(err)
	_, err = s.infection.RedeemAntivirus(s.ctx, "CURE", "A")
	s.Require().NoError(err)

	summary, err := s.service.Summary(s.ctx, 2)
	s.Require().NoError(err)
	s.Equal(1, summary.HumanCount)
	s.Equal(2, summary.ZombieCount)

	s.Require().Len(summary.TopTaggers, 1)
	s.Equal("Cass", summary.TopTaggers[0].Player.DisplayName)
	s.Equal(2, summary.TopTaggers[0].NumTags)

	s.Require().Len(summary.RecentEvents, 2)
	s.Equal(model.EventKindAntivirus, summary.RecentEvents[0].Kind)
	s.Equal(model.PlayerID("B"), summary.RecentEvents[1].SubjectID())
	s.Len(summary.Points, 4)
	s.Empty(summary.Scoreboards)
}

func (s *ServiceSuite) TestSummaryListsActiveScoreboards() {
	s.Require().NoError(s.storage.SaveScoreboard(s.ctx, &model.Scoreboard{ID: "on", GameID: "g1", Name: "Clans", Active: true}))
	s.Require().NoError(s.storage.SaveScoreboard(s.ctx, &model.Scoreboard{ID: "off", GameID: "g1", Name: "Hidden"}))
	s.Require().NoError(s.storage.SaveScoreboard(s.ctx, &model.Scoreboard{ID: "other", GameID: "g0", Name: "Old", Active: true}))

	summary, err := s.service.Summary(s.ctx, 5)
	s.Require().NoError(err)
	s.Require().Len(summary.Scoreboards, 1)
	s.Equal("on", summary.Scoreboards[0].ID)
}

func (s *ServiceSuite) TestInfection() {
	s.join("O", "Oscar", model.StatusOriginalZombie)
	s.join("A", "Alice", model.StatusHuman)
	_, err := s.infection.RecordTag(s.ctx, "O", "A-t1")
	s.Require().NoError(err)

	inf, err := s.service.Infection(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(inf.OriginalZombies, 1)
	s.Equal(model.PlayerID("O"), inf.OriginalZombies[0].Player.ID)
	s.Len(inf.Tags, 1)
}

func (s *ServiceSuite) TestNoActiveGame() {
	svc := New(memory.New(), s.roster, nil, testutil.NopLogger())
	_, err := svc.Timeline(s.ctx)
	s.ErrorIs(err, model.ErrNoActiveGame)
}
