package redis

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/hvztracker/internal/model"
	"github.com/mcoot/hvztracker/internal/storage"
	"github.com/mcoot/hvztracker/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
	mini    *miniredis.Miniredis
	storage *Storage
}

func TestStorageSuite(t *testing.T) {
	s := new(StorageSuite)
	s.NewStorage = func() storage.Storage {
		s.mini = miniredis.RunT(s.T())
		client := redis.NewClient(&redis.Options{
			Addr: s.mini.Addr(),
		})
		cfg := DefaultConfig()
		cfg.LinkCodeTTL = time.Hour
		s.storage = NewWithClient(client, cfg)
		return s.storage
	}
	suite.Run(t, s)
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestKeysUsePrefix() {
	s.Require().NoError(s.Store.SavePlayer(s.Ctx, &model.Player{ID: "p1", DisplayName: "Alice"}))
	s.True(s.mini.Exists("hvz:player:p1"))

	members, err := s.mini.Members("hvz:idx:players")
	s.Require().NoError(err)
	s.Equal([]string{"p1"}, members)
}

func (s *StorageSuite) TestLinkCodeExpires() {
	s.Require().NoError(s.Store.SaveLinkCode(s.Ctx, &model.LinkCode{Code: "ABC", PlayerID: "p1"}))
	s.mini.FastForward(2 * time.Hour)

	_, err := s.Store.ConsumeLinkCode(s.Ctx, "ABC")
	s.ErrorIs(err, model.ErrLinkCodeNotFound)
}

func (s *StorageSuite) TestTagSequenceGapsAreTolerated() {
	s.Require().NoError(s.Store.SaveGame(s.Ctx, &model.Game{ID: "g1"}))
	for _, st := range []*model.PlayerStatus{
		{GameID: "g1", PlayerID: "z1", Status: model.StatusZombie},
		{GameID: "g1", PlayerID: "h1", Status: model.StatusHuman},
		{GameID: "g1", PlayerID: "h2", Status: model.StatusHuman},
	} {
		_, _, err := s.Store.EnsureStatus(s.Ctx, st)
		s.Require().NoError(err)
	}

	// Simulate a sequence number consumed by an aborted commit
	_, err := s.mini.Incr("hvz:seq:g1", 5)
	s.Require().NoError(err)

	mutate := func(tagger, taggee *model.PlayerStatus) (*model.Tag, error) {
		taggee.Status = model.StatusZombie
		return &model.Tag{GameID: "g1", Tagger: tagger.PlayerID, Taggee: taggee.PlayerID}, nil
	}
	first, err := s.Store.CommitTag(s.Ctx, "g1", "z1", "h1", mutate)
	s.Require().NoError(err)
	second, err := s.Store.CommitTag(s.Ctx, "g1", "z1", "h2", mutate)
	s.Require().NoError(err)
	s.Equal(int64(6), first.Seq)
	s.Equal(int64(7), second.Seq)
}

func (s *StorageSuite) TestActiveGameMissingRowIsNoActiveGame() {
	s.Require().NoError(s.mini.Set("hvz:active_game", "gone"))
	_, err := s.Store.GetActiveGame(s.Ctx)
	s.ErrorIs(err, model.ErrNoActiveGame)
}
