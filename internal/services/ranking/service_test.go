package ranking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/hvztracker/internal/dependencies/mocks"
	"github.com/mcoot/hvztracker/internal/model"
	"github.com/mcoot/hvztracker/internal/services/roster"
	"github.com/mcoot/hvztracker/internal/storage/memory"
	"github.com/mcoot/hvztracker/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	roster  *roster.Service
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	clock := mocks.NewMockClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	logger := testutil.NopLogger()
	s.roster = roster.New(s.storage, clock, mocks.NewMockRandom(), logger)
	s.service = New(s.storage, s.roster, logger)
	s.ctx = context.Background()

	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.Game{ID: "g1"}))
	s.Require().NoError(s.storage.SetActiveGame(s.ctx, "g1"))

	// Inserted deliberately out of every sort order
	s.add("p1", "dave", "Wolves", model.StatusZombie, 3)
	s.add("p2", "Alice", "", model.StatusHuman, 0)
	s.add("p3", "carol", "bears", model.StatusOriginalZombie, 5)
	s.add("p4", "Bob", "Wolves", model.StatusHumanVaccinated, 0)
	s.add("p5", "Eve", "", model.StatusMod, 0)
	s.add("p6", "Npc", "", model.StatusNonPlayer, 0)
}

func (s *ServiceSuite) add(id model.PlayerID, name, clan string, status model.StatusCode, tags int) {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: id, DisplayName: name, ClanName: clan, Role: model.RoleRegular}))
	_, _, err := s.storage.EnsureStatus(s.ctx, &model.PlayerStatus{
		GameID:   "g1",
		PlayerID: id,
		Status:   status,
		Tag1ID:   string(id) + "-t1",
		Tag2ID:   string(id) + "-t2",
		ZombieID: string(id) + "-z",
		NumTags:  tags,
	})
	s.Require().NoError(err)
}

func names(page *Page) []string {
	out := make([]string, len(page.Entries))
	for i, e := range page.Entries {
		out[i] = e.Player.DisplayName
	}
	return out
}

func (s *ServiceSuite) TestSortByNameIgnoresCase() {
	page, err := s.service.Rank(s.ctx, Query{SortKey: SortByName})
	s.Require().NoError(err)
	s.Equal([]string{"Alice", "Bob", "carol", "dave", "Eve"}, names(page))
	s.Equal(5, page.TotalMatching)
	s.Equal(5, page.TotalUnfiltered)
}

func (s *ServiceSuite) TestDefaultSortIsName() {
	page, err := s.service.Rank(s.ctx, Query{})
	s.Require().NoError(err)
	s.Equal("Alice", page.Entries[0].Player.DisplayName)
}

func (s *ServiceSuite) TestSortByStatusUsesListingPriority() {
	page, err := s.service.Rank(s.ctx, Query{SortKey: SortByStatus})
	s.Require().NoError(err)
	// h, v, z, o, m
	s.Equal([]string{"Alice", "Bob", "dave", "carol", "Eve"}, names(page))

	page, err = s.service.Rank(s.ctx, Query{SortKey: SortByStatus, SortDir: Descending})
	s.Require().NoError(err)
	s.Equal([]string{"Eve", "carol", "dave", "Bob", "Alice"}, names(page))
}

func (s *ServiceSuite) TestHumansBeforeZombiesRegardlessOfInsertion() {
	page, err := s.service.Rank(s.ctx, Query{SortKey: SortByStatus})
	s.Require().NoError(err)

	seenZombie := false
	for _, e := range page.Entries {
		if e.Status.Status.IsZombie() {
			seenZombie = true
		}
		if e.Status.Status.IsHuman() {
			s.False(seenZombie, "human %s listed after a zombie", e.Player.DisplayName)
		}
	}
}

func (s *ServiceSuite) TestSortByTagsKeepsNameOrderOnTies() {
	page, err := s.service.Rank(s.ctx, Query{SortKey: SortByTags, SortDir: Descending})
	s.Require().NoError(err)
	s.Equal([]string{"carol", "dave", "Alice", "Bob", "Eve"}, names(page))

	page, err = s.service.Rank(s.ctx, Query{SortKey: SortByTags, SortDir: Ascending})
	s.Require().NoError(err)
	s.Equal([]string{"Alice", "Bob", "Eve", "dave", "carol"}, names(page))
}

func (s *ServiceSuite) TestSortByClanTreatsClanlessAsEmpty() {
	page, err := s.service.Rank(s.ctx, Query{SortKey: SortByClan})
	s.Require().NoError(err)
	s.Equal([]string{"Alice", "Eve", "carol", "Bob", "dave"}, names(page))
}

func (s *ServiceSuite) TestFilterMatchesNameOrClan() {
	page, err := s.service.Rank(s.ctx, Query{Filter: "WOL"})
	s.Require().NoError(err)
	s.Equal([]string{"Bob", "dave"}, names(page))
	s.Equal(2, page.TotalMatching)
	s.Equal(5, page.TotalUnfiltered)

	// "e" appears in names (Alice, dave, Eve) and clans (bears, Wolves)
	page, err = s.service.Rank(s.ctx, Query{Filter: "e"})
	s.Require().NoError(err)
	s.Equal(5, page.TotalMatching)
}

func (s *ServiceSuite) TestFilterByClanSubstring() {
	page, err := s.service.Rank(s.ctx, Query{Filter: "ear"})
	s.Require().NoError(err)
	s.Require().Len(page.Entries, 1)
	s.Equal("bears", page.Entries[0].Player.ClanName)
}

func (s *ServiceSuite) TestPaging() {
	page, err := s.service.Rank(s.ctx, Query{Offset: 1, Limit: 2})
	s.Require().NoError(err)
	s.Equal([]string{"Bob", "carol"}, names(page))
	s.Equal(5, page.TotalMatching)

	page, err = s.service.Rank(s.ctx, Query{Offset: 4, Limit: 10})
	s.Require().NoError(err)
	s.Equal([]string{"Eve"}, names(page))
}

func (s *ServiceSuite) TestOffsetPastEndIsEmpty() {
	page, err := s.service.Rank(s.ctx, Query{Offset: 5, Limit: 10})
	s.Require().NoError(err)
	s.NotNil(page.Entries)
	s.Empty(page.Entries)
	s.Equal(5, page.TotalMatching)

	page, err = s.service.Rank(s.ctx, Query{Filter: "wolves", Offset: 2})
	s.Require().NoError(err)
	s.Empty(page.Entries)
	s.Equal(2, page.TotalMatching)
}

func (s *ServiceSuite) TestInvalidSortKey() {
	_, err := s.service.Rank(s.ctx, Query{SortKey: "height"})
	s.ErrorIs(err, model.ErrInvalidSortKey)

	_, err = ParseSortKey("height")
	s.ErrorIs(err, model.ErrInvalidSortKey)

	key, err := ParseSortKey("TAGS")
	s.Require().NoError(err)
	s.Equal(SortByTags, key)
}

func (s *ServiceSuite) TestParseSortDir() {
	s.Equal(Descending, ParseSortDir("DESC"))
	s.Equal(Ascending, ParseSortDir(""))
	s.Equal(Ascending, ParseSortDir("sideways"))
}

func (s *ServiceSuite) TestNoActiveGame() {
	svc := New(memory.New(), s.roster, testutil.NopLogger())
	_, err := svc.Rank(s.ctx, Query{})
	s.ErrorIs(err, model.ErrNoActiveGame)
}
