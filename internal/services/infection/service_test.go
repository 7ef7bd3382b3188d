package infection

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/hvztracker/internal/dependencies/mocks"
	"github.com/mcoot/hvztracker/internal/model"
	"github.com/mcoot/hvztracker/internal/services/roster"
	"github.com/mcoot/hvztracker/internal/storage/memory"
	"github.com/mcoot/hvztracker/internal/testutil"
)

type recordingPublisher struct {
	mu          sync.Mutex
	tags        []*model.Tag
	redemptions []*model.Antivirus
	statuses    []model.PlayerStatus
}

func (p *recordingPublisher) PublishTag(tag *model.Tag, taggee *model.PlayerStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tags = append(p.tags, tag)
	p.statuses = append(p.statuses, *taggee)
}

func (p *recordingPublisher) PublishRedemption(av *model.Antivirus, status *model.PlayerStatus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.redemptions = append(p.redemptions, av)
	p.statuses = append(p.statuses, *status)
}

type ServiceSuite struct {
	suite.Suite
	storage   *memory.Storage
	clock     *mocks.MockClock
	random    *mocks.MockRandom
	roster    *roster.Service
	publisher *recordingPublisher
	service   *Service
	ctx       context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.roster = roster.New(s.storage, s.clock, s.random, testutil.NopLogger())
	s.publisher = &recordingPublisher{}
	s.service = New(s.storage, s.roster, s.clock, s.random, s.publisher, testutil.NopLogger())
	s.ctx = context.Background()

	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.Game{ID: "g1", Name: "Spring"}))
	s.Require().NoError(s.storage.SetActiveGame(s.ctx, "g1"))
}

// join registers a player and joins them to the active game with known tag ids
func (s *ServiceSuite) join(id model.PlayerID, status model.StatusCode) *model.PlayerStatus {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: id, DisplayName: string(id), Role: model.RoleRegular}))
	s.random.QueueUUID(string(id)+"-t1", string(id)+"-t2", string(id)+"-z")
	st, err := s.roster.JoinGame(s.ctx, id, status)
	s.Require().NoError(err)
	return st
}

func (s *ServiceSuite) createAV(code string, expires time.Time) {
	_, err := s.service.CreateAntivirus(s.ctx, code, expires)
	s.Require().NoError(err)
}

// RecordTag tests

func (s *ServiceSuite) TestTagPrimaryConvertsHuman() {
	s.join("z1", model.StatusZombie)
	s.join("h1", model.StatusHuman)

	tag, err := s.service.RecordTag(s.ctx, "z1", "h1-t1")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("z1"), tag.Tagger)
	s.Equal(model.PlayerID("h1"), tag.Taggee)
	s.Equal(model.TagSlotPrimary, tag.Slot)
	s.True(tag.Timestamp.Equal(s.clock.CurrentTime))

	taggee, _ := s.storage.GetStatus(s.ctx, "g1", "h1")
	s.Equal(model.StatusZombie, taggee.Status)
	tagger, _ := s.storage.GetStatus(s.ctx, "g1", "z1")
	s.Equal(1, tagger.NumTags)

	s.Require().Len(s.publisher.tags, 1)
	s.Equal(model.StatusZombie, s.publisher.statuses[0].Status)
}

func (s *ServiceSuite) TestSecondTagOnZombieIsInvalid() {
	s.join("z1", model.StatusZombie)
	s.join("h1", model.StatusHuman)

	_, err := s.service.RecordTag(s.ctx, "z1", "h1-t1")
	s.Require().NoError(err)

	_, err = s.service.RecordTag(s.ctx, "z1", "h1-t1")
	s.ErrorIs(err, model.ErrInvalidTransition)

	tagger, _ := s.storage.GetStatus(s.ctx, "g1", "z1")
	s.Equal(1, tagger.NumTags)
	tags, _ := s.service.ListTags(s.ctx)
	s.Len(tags, 1)
	s.Len(s.publisher.tags, 1)
}

func (s *ServiceSuite) TestTagAlternateConvertsVaccinated() {
	s.join("z1", model.StatusZombie)
	s.join("v1", model.StatusHumanVaccinated)

	tag, err := s.service.RecordTag(s.ctx, "z1", "v1-t2")
	s.Require().NoError(err)
	s.Equal(model.TagSlotAlternate, tag.Slot)

	st, _ := s.storage.GetStatus(s.ctx, "g1", "v1")
	s.Equal(model.StatusZombieVaccinated, st.Status)
}

func (s *ServiceSuite) TestWrongSlotForStatusIsInvalid() {
	s.join("z1", model.StatusZombie)
	s.join("h1", model.StatusHuman)
	s.join("v1", model.StatusHumanVaccinated)

	_, err := s.service.RecordTag(s.ctx, "z1", "h1-t2")
	s.ErrorIs(err, model.ErrInvalidTransition)
	_, err = s.service.RecordTag(s.ctx, "z1", "v1-t1")
	s.ErrorIs(err, model.ErrInvalidTransition)

	h, _ := s.storage.GetStatus(s.ctx, "g1", "h1")
	s.Equal(model.StatusHuman, h.Status)
	v, _ := s.storage.GetStatus(s.ctx, "g1", "v1")
	s.Equal(model.StatusHumanVaccinated, v.Status)
}

func (s *ServiceSuite) TestTagUnknownTarget() {
	s.join("z1", model.StatusZombie)
	_, err := s.service.RecordTag(s.ctx, "z1", "nobody")
	s.ErrorIs(err, model.ErrTagTargetNotFound)
}

func (s *ServiceSuite) TestTagUnknownTagger() {
	s.join("h1", model.StatusHuman)
	_, err := s.service.RecordTag(s.ctx, "ghost", "h1-t1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestSelfTagRejected() {
	s.join("h1", model.StatusHuman)
	_, err := s.service.RecordTag(s.ctx, "h1", "h1-t1")
	s.ErrorIs(err, model.ErrSelfTag)
}

func (s *ServiceSuite) TestTagTargetFromOtherGame() {
	s.join("z1", model.StatusZombie)
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "old", DisplayName: "Old"}))
	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.Game{ID: "g0"}))
	s.random.QueueUUID("old-t1", "old-t2", "old-z")
	_, err := s.roster.EnsureStatus(s.ctx, "g0", "old", model.StatusHuman)
	s.Require().NoError(err)

	_, err = s.service.RecordTag(s.ctx, "z1", "old-t1")
	s.ErrorIs(err, model.ErrTagTargetNotFound)
}

func (s *ServiceSuite) TestTaggerStatusCreatedOnFirstSight() {
	s.join("h1", model.StatusHuman)
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "newz", DisplayName: "New", Role: model.RoleRegular}))

	_, err := s.service.RecordTag(s.ctx, "newz", "h1-t1")
	s.Require().NoError(err)

	tagger, err := s.storage.GetStatus(s.ctx, "g1", "newz")
	s.Require().NoError(err)
	s.Equal(1, tagger.NumTags)
}

func (s *ServiceSuite) TestConcurrentTagsSameTaggeeOneWins() {
	s.join("h1", model.StatusHuman)
	const taggers = 10
	ids := make([]model.PlayerID, taggers)
	for i := range ids {
		ids[i] = model.PlayerID("z" + string(rune('a'+i)))
		s.join(ids[i], model.StatusZombie)
	}

	var wg sync.WaitGroup
	errs := make([]error, taggers)
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id model.PlayerID) {
			defer wg.Done()
			_, errs[i] = s.service.RecordTag(s.ctx, id, "h1-t1")
		}(i, id)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			s.True(errors.Is(err, model.ErrInvalidTransition), "unexpected error: %v", err)
		}
	}
	s.Equal(1, wins)

	total := 0
	for _, id := range ids {
		st, _ := s.storage.GetStatus(s.ctx, "g1", id)
		total += st.NumTags
	}
	s.Equal(1, total)
}

func (s *ServiceSuite) TestTagsBy() {
	s.join("z1", model.StatusZombie)
	s.join("z2", model.StatusZombie)
	s.join("h1", model.StatusHuman)
	s.join("h2", model.StatusHuman)
	_, _ = s.service.RecordTag(s.ctx, "z1", "h1-t1")
	_, _ = s.service.RecordTag(s.ctx, "z2", "h2-t1")

	tags, err := s.service.TagsBy(s.ctx, "z1")
	s.Require().NoError(err)
	s.Require().Len(tags, 1)
	s.Equal(model.PlayerID("h1"), tags[0].Taggee)
}

// Antivirus tests

func (s *ServiceSuite) TestRedeemAntivirusRestoresHuman() {
	s.join("z1", model.StatusZombie)
	s.createAV("CURE1", s.clock.CurrentTime.Add(time.Hour))

	av, err := s.service.RedeemAntivirus(s.ctx, "CURE1", "z1")
	s.Require().NoError(err)
	s.Require().True(av.Redeemed())
	s.Equal(model.PlayerID("z1"), *av.UsedBy)

	st, _ := s.storage.GetStatus(s.ctx, "g1", "z1")
	s.Equal(model.StatusHuman, st.Status)
	s.Equal(0, st.NumTags)
	s.Len(s.publisher.redemptions, 1)
}

func (s *ServiceSuite) TestRedeemFromEveryZombieSubstatus() {
	for i, code := range []model.StatusCode{model.StatusZombie, model.StatusZombieVaccinated, model.StatusOriginalZombie} {
		id := model.PlayerID("zz" + string(rune('0'+i)))
		avCode := "CODE" + string(rune('0'+i))
		s.join(id, code)
		s.createAV(avCode, s.clock.CurrentTime.Add(time.Hour))

		_, err := s.service.RedeemAntivirus(s.ctx, avCode, id)
		s.Require().NoError(err)
		st, _ := s.storage.GetStatus(s.ctx, "g1", id)
		s.Equal(model.StatusHuman, st.Status)
	}
}

func (s *ServiceSuite) TestRedeemUsedCode() {
	s.join("z1", model.StatusZombie)
	s.join("z2", model.StatusZombie)
	s.createAV("CURE1", s.clock.CurrentTime.Add(time.Hour))
	_, err := s.service.RedeemAntivirus(s.ctx, "CURE1", "z1")
	s.Require().NoError(err)

	_, err = s.service.RedeemAntivirus(s.ctx, "CURE1", "z2")
	s.ErrorIs(err, model.ErrAntivirusUsed)

	st, _ := s.storage.GetStatus(s.ctx, "g1", "z2")
	s.Equal(model.StatusZombie, st.Status)
}

func (s *ServiceSuite) TestRedeemExpiredCode() {
	s.join("z1", model.StatusZombie)
	s.createAV("OLD", s.clock.CurrentTime.Add(time.Minute))
	s.clock.Advance(time.Minute)

	_, err := s.service.RedeemAntivirus(s.ctx, "OLD", "z1")
	s.ErrorIs(err, model.ErrAntivirusExpired)

	st, _ := s.storage.GetStatus(s.ctx, "g1", "z1")
	s.Equal(model.StatusZombie, st.Status)
	av, _ := s.storage.GetAntivirus(s.ctx, "OLD")
	s.False(av.Redeemed())
}

func (s *ServiceSuite) TestRedeemUnknownCode() {
	s.join("z1", model.StatusZombie)
	_, err := s.service.RedeemAntivirus(s.ctx, "NOPE", "z1")
	s.ErrorIs(err, model.ErrAntivirusNotFound)
}

func (s *ServiceSuite) TestRedeemCodeFromAnotherGame() {
	s.join("z1", model.StatusZombie)
	s.createAV("OLDCODE", s.clock.CurrentTime.Add(time.Hour))

	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.Game{ID: "g2", Name: "Autumn"}))
	s.Require().NoError(s.storage.SetActiveGame(s.ctx, "g2"))
	s.random.QueueUUID("z1-g2-t1", "z1-g2-t2", "z1-g2-z")
	_, err := s.roster.JoinGame(s.ctx, "z1", model.StatusZombie)
	s.Require().NoError(err)

	_, err = s.service.RedeemAntivirus(s.ctx, "OLDCODE", "z1")
	s.ErrorIs(err, model.ErrAntivirusNotFound)

	attempts, err := s.service.FailedAttempts(s.ctx, "z1")
	s.Require().NoError(err)
	s.Require().Len(attempts, 1)
	s.Equal(model.GameID("g2"), attempts[0].GameID)

	av, _ := s.storage.GetAntivirus(s.ctx, "OLDCODE")
	s.False(av.Redeemed())
}

func (s *ServiceSuite) TestRedeemCodeStateReportedBeforeMissingStatus() {
	s.join("z1", model.StatusZombie)
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "u1", DisplayName: "u1"}))
	s.createAV("USED", s.clock.CurrentTime.Add(time.Hour))
	s.createAV("STALE", s.clock.CurrentTime.Add(time.Minute))
	s.createAV("FRESH", s.clock.CurrentTime.Add(2*time.Hour))
	_, err := s.service.RedeemAntivirus(s.ctx, "USED", "z1")
	s.Require().NoError(err)
	s.clock.Advance(time.Minute)

	_, err = s.service.RedeemAntivirus(s.ctx, "USED", "u1")
	s.ErrorIs(err, model.ErrAntivirusUsed)
	_, err = s.service.RedeemAntivirus(s.ctx, "STALE", "u1")
	s.ErrorIs(err, model.ErrAntivirusExpired)
	_, err = s.service.RedeemAntivirus(s.ctx, "FRESH", "u1")
	s.ErrorIs(err, model.ErrStatusNotFound)

	attempts, err := s.service.FailedAttempts(s.ctx, "u1")
	s.Require().NoError(err)
	s.Len(attempts, 2)
}

func (s *ServiceSuite) TestRedeemByHumanIsInvalid() {
	s.join("h1", model.StatusHuman)
	s.createAV("CURE1", s.clock.CurrentTime.Add(time.Hour))

	_, err := s.service.RedeemAntivirus(s.ctx, "CURE1", "h1")
	s.ErrorIs(err, model.ErrInvalidTransition)

	av, _ := s.storage.GetAntivirus(s.ctx, "CURE1")
	s.False(av.Redeemed())
}

func (s *ServiceSuite) TestFailedAttemptsRecorded() {
	s.join("z1", model.StatusZombie)
	s.createAV("OLD", s.clock.CurrentTime.Add(time.Minute))
	s.clock.Advance(time.Hour)

	_, _ = s.service.RedeemAntivirus(s.ctx, "NOPE", "z1")
	_, _ = s.service.RedeemAntivirus(s.ctx, "OLD", "z1")

	attempts, err := s.service.FailedAttempts(s.ctx, "z1")
	s.Require().NoError(err)
	s.Require().Len(attempts, 2)
	s.Equal("NOPE", attempts[0].Code)
	s.Equal(model.ErrAntivirusNotFound.Error(), attempts[0].Reason)
	s.Equal(model.ErrAntivirusExpired.Error(), attempts[1].Reason)
}

func (s *ServiceSuite) TestCreateBodyArmor() {
	s.random.QueueString("ARMORGEN")
	armor, err := s.service.CreateBodyArmor(s.ctx, "", s.clock.CurrentTime.Add(time.Hour))
	s.Require().NoError(err)
	s.Equal("ARMORGEN", armor.Code)
	s.Equal(model.GameID("g1"), armor.GameID)

	_, err = s.service.CreateBodyArmor(s.ctx, " VEST1 ", s.clock.CurrentTime.Add(time.Hour))
	s.Require().NoError(err)
	_, err = s.service.CreateBodyArmor(s.ctx, "VEST1", s.clock.CurrentTime.Add(time.Hour))
	s.ErrorIs(err, model.ErrDuplicateCode)

	_, err = s.service.CreateBodyArmor(s.ctx, "VEST2", time.Time{})
	s.ErrorIs(err, model.ErrMissingExpiry)

	armors, err := s.service.ListBodyArmors(s.ctx)
	s.Require().NoError(err)
	s.Len(armors, 2)
}

func (s *ServiceSuite) TestCreateAntivirus() {
	s.random.QueueString("GENCODE1")
	av, err := s.service.CreateAntivirus(s.ctx, "", s.clock.CurrentTime.Add(time.Hour))
	s.Require().NoError(err)
	s.Equal("GENCODE1", av.Code)
	s.Equal(model.GameID("g1"), av.GameID)

	_, err = s.service.CreateAntivirus(s.ctx, "GENCODE1", s.clock.CurrentTime.Add(time.Hour))
	s.ErrorIs(err, model.ErrDuplicateCode)

	_, err = s.service.CreateAntivirus(s.ctx, "X", time.Time{})
	s.ErrorIs(err, model.ErrMissingExpiry)

	avs, err := s.service.ListAntiviruses(s.ctx)
	s.Require().NoError(err)
	s.Len(avs, 1)
}

func (s *ServiceSuite) TestNoActiveGame() {
	svc := New(memory.New(), s.roster, s.clock, s.random, nil, testutil.NopLogger())
	_, err := svc.RecordTag(s.ctx, "z1", "h1-t1")
	s.ErrorIs(err, model.ErrNoActiveGame)
	_, err = svc.RedeemAntivirus(s.ctx, "X", "z1")
	s.ErrorIs(err, model.ErrNoActiveGame)
}
