package mission

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
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	store := memory.New()
	s.clock = mocks.NewMockClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.service = New(store, s.clock, s.random, testutil.NopLogger())
	s.ctx = context.Background()

	s.Require().NoError(store.SaveGame(s.ctx, &model.Game{ID: "g1"}))
	s.Require().NoError(store.SetActiveGame(s.ctx, "g1"))
}

func (s *ServiceSuite) TestCreateMission() {
	s.random.QueueUUID("m1")
	m, err := s.service.CreateMission(s.ctx, Draft{Team: model.TeamHuman, StoryForm: " Run ", MissionText: "Reach the library"})
	s.Require().NoError(err)
	s.Equal("m1", m.ID)
	s.Equal(model.GameID("g1"), m.GameID)
	s.Equal("Run", m.StoryForm)
	s.True(m.GoLiveTime.Equal(s.clock.CurrentTime))
}

func (s *ServiceSuite) TestCreateMissionRejectsUnknownTeam() {
	_, err := s.service.CreateMission(s.ctx, Draft{Team: "Aliens"})
	s.ErrorIs(err, model.ErrInvalidTeam)
}

func (s *ServiceSuite) TestListForTeamIncludesAllTeams() {
	base := s.clock.CurrentTime
	_, err := s.service.CreateMission(s.ctx, Draft{Team: model.TeamZombie, MissionText: "late", GoLiveTime: base.Add(2 * time.Hour)})
	s.Require().NoError(err)
	_, err = s.service.CreateMission(s.ctx, Draft{Team: model.TeamAll, MissionText: "everyone", GoLiveTime: base.Add(time.Hour)})
	s.Require().NoError(err)
	_, err = s.service.CreateMission(s.ctx, Draft{Team: model.TeamHuman, MissionText: "humans only"})
	s.Require().NoError(err)

	zombie, err := s.service.ListForTeam(s.ctx, "Zombie")
	s.Require().NoError(err)
	s.Require().Len(zombie, 2)
	s.Equal("everyone", zombie[0].MissionText)
	s.Equal("late", zombie[1].MissionText)

	staff, err := s.service.ListForTeam(s.ctx, "Staff")
	s.Require().NoError(err)
	s.Require().Len(staff, 1)
	s.Equal(model.TeamAll, staff[0].Team)
}

func (s *ServiceSuite) TestListForTeamValidatesTeam() {
	_, err := s.service.ListForTeam(s.ctx, "All")
	s.ErrorIs(err, model.ErrInvalidTeam)

	_, err = s.service.ListForTeam(s.ctx, "human")
	s.ErrorIs(err, model.ErrInvalidTeam)
}

func (s *ServiceSuite) TestNoActiveGame() {
	svc := New(memory.New(), s.clock, s.random, testutil.NopLogger())
	_, err := svc.ListForTeam(s.ctx, "Human")
	s.ErrorIs(err, model.ErrNoActiveGame)
}
