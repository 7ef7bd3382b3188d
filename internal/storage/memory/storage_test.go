package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/hvztracker/internal/model"
	"github.com/mcoot/hvztracker/internal/storage"
	"github.com/mcoot/hvztracker/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
}

func TestStorageSuite(t *testing.T) {
	s := new(StorageSuite)
	s.NewStorage = func() storage.Storage { return New() }
	suite.Run(t, s)
}

func (s *StorageSuite) TestReturnedRowsAreCopies() {
	s.Require().NoError(s.Store.SavePlayer(s.Ctx, &model.Player{ID: "p1", DisplayName: "Alice"}))

	got, err := s.Store.GetPlayer(s.Ctx, "p1")
	s.Require().NoError(err)
	got.DisplayName = "Mallory"

	again, err := s.Store.GetPlayer(s.Ctx, "p1")
	s.Require().NoError(err)
	s.Equal("Alice", again.DisplayName)
}

func (s *StorageSuite) TestAntivirusPointersAreCopied() {
	s.Require().NoError(s.Store.SaveGame(s.Ctx, &model.Game{ID: "g1"}))
	_, _, err := s.Store.EnsureStatus(s.Ctx, &model.PlayerStatus{GameID: "g1", PlayerID: "z1", Status: model.StatusZombie})
	s.Require().NoError(err)
	s.Require().NoError(s.Store.CreateAntivirus(s.Ctx, &model.Antivirus{Code: "AV1", GameID: "g1", ExpiresAt: time.Now().Add(time.Hour)}))

	_, err = s.Store.CommitRedemption(s.Ctx, "g1", "AV1", "z1", func(av *model.Antivirus, status *model.PlayerStatus) error {
		now := time.Now()
		av.UsedBy = &status.PlayerID
		av.UsedAt = &now
		status.Status = model.StatusHuman
		return nil
	})
	s.Require().NoError(err)

	got, err := s.Store.GetAntivirus(s.Ctx, "AV1")
	s.Require().NoError(err)
	*got.UsedBy = "someone-else"

	again, err := s.Store.GetAntivirus(s.Ctx, "AV1")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("z1"), *again.UsedBy)
}
