package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/hvztracker/internal/dependencies/mocks"
	"github.com/mcoot/hvztracker/internal/model"
	"github.com/mcoot/hvztracker/internal/notify"
	"github.com/mcoot/hvztracker/internal/storage/memory"
	"github.com/mcoot/hvztracker/internal/testutil"
)

type fakeSink struct {
	accept bool
	msgs   []notify.Message
}

func (f *fakeSink) Enqueue(msg notify.Message) bool {
	f.msgs = append(f.msgs, msg)
	return f.accept
}

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	sink    *fakeSink
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
	s.sink = &fakeSink{accept: true}
	s.service = New(s.storage, s.clock, s.random, s.sink, testutil.NopLogger())
	s.ctx = context.Background()

	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.Game{ID: "g1"}))
	s.Require().NoError(s.storage.SetActiveGame(s.ctx, "g1"))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "p1", DisplayName: "Alice"}))
}

func (s *ServiceSuite) TestCreateReportNotifies() {
	s.random.QueueUUID("r1")
	r, err := s.service.CreateReport(s.ctx, " blaster to the face ", "mod@example.com", "p1")
	s.Require().NoError(err)
	s.Equal("r1", r.ID)
	s.Equal(model.ReportStatusNew, r.Status)
	s.Equal("blaster to the face", r.Text)

	s.Require().Len(s.sink.msgs, 1)
	s.Equal("report", s.sink.msgs[0].Kind)
	payload := s.sink.msgs[0].Payload.(Payload)
	s.Equal("r1", payload.ID)
	s.Equal("p1", payload.Reporter)
}

func (s *ServiceSuite) TestAnonymousReport() {
	r, err := s.service.CreateReport(s.ctx, "something happened", "", "")
	s.Require().NoError(err)
	s.Empty(r.Reporter)
}

func (s *ServiceSuite) TestDroppedNotificationStillStoresReport() {
	s.sink.accept = false
	_, err := s.service.CreateReport(s.ctx, "text", "", "")
	s.Require().NoError(err)

	reports, err := s.service.ListReports(s.ctx)
	s.Require().NoError(err)
	s.Len(reports, 1)
}

func (s *ServiceSuite) TestCreateReportValidation() {
	_, err := s.service.CreateReport(s.ctx, "   ", "", "")
	s.ErrorIs(err, model.ErrEmptyReport)

	_, err = s.service.CreateReport(s.ctx, "text", "", "ghost")
	s.ErrorIs(err, model.ErrPlayerNotFound)
	s.Empty(s.sink.msgs)
}

func (s *ServiceSuite) TestListReportsNewestFirst() {
	s.random.QueueUUID("old", "new")
	_, err := s.service.CreateReport(s.ctx, "first", "", "")
	s.Require().NoError(err)
	s.clock.Advance(time.Hour)
	_, err = s.service.CreateReport(s.ctx, "second", "", "")
	s.Require().NoError(err)

	reports, err := s.service.ListReports(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(reports, 2)
	s.Equal("new", reports[0].ID)
}

func (s *ServiceSuite) TestNilSink() {
	svc := New(s.storage, s.clock, s.random, nil, testutil.NopLogger())
	_, err := svc.CreateReport(s.ctx, "text", "", "")
	s.NoError(err)
}
