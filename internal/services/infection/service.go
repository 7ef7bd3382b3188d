package infection

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/mcoot/hvztracker/internal/dependencies/clock"
	"github.com/mcoot/hvztracker/internal/dependencies/random"
	"github.com/mcoot/hvztracker/internal/model"
	"github.com/mcoot/hvztracker/internal/services/roster"
	"github.com/mcoot/hvztracker/internal/storage"
)

const (
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength   = 8
)

// Publisher receives every committed event. Implementations must not block.
type Publisher interface {
	PublishTag(tag *model.Tag, taggee *model.PlayerStatus)
	PublishRedemption(av *model.Antivirus, status *model.PlayerStatus)
}

type nopPublisher struct{}

func (nopPublisher) PublishTag(*model.Tag, *model.PlayerStatus)              {}
func (nopPublisher) PublishRedemption(*model.Antivirus, *model.PlayerStatus) {}

// Service records tags and antivirus redemptions against the active game
type Service struct {
	storage   storage.Storage
	roster    *roster.Service
	projector Projector
	clock     clock.Clock
	random    random.Random
	publisher Publisher
	logger    *slog.Logger
}

// New creates a new infection Service. A nil publisher discards events.
func New(
	storage storage.Storage,
	roster *roster.Service,
	clock clock.Clock,
	random random.Random,
	publisher Publisher,
	logger *slog.Logger,
) *Service {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &Service{
		storage:   storage,
		roster:    roster,
		clock:     clock,
		random:    random,
		publisher: publisher,
		logger:    logger.With(slog.String("component", "infection")),
	}
}

// RecordTag converts the player holding tagTarget and credits taggerID
func (s *Service) RecordTag(ctx context.Context, taggerID model.PlayerID, tagTarget string) (*model.Tag, error) {
	game, err := s.storage.GetActiveGame(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.roster.EnsureStatus(ctx, game.ID, taggerID, ""); err != nil {
		return nil, err
	}

	target, err := s.storage.FindStatusByTagID(ctx, tagTarget)
	if err != nil {
		return nil, err
	}
	if target.GameID != game.ID {
		return nil, model.ErrTagTargetNotFound
	}
	if target.PlayerID == taggerID {
		return nil, model.ErrSelfTag
	}
	slot := target.SlotFor(tagTarget)

	// Timestamps are taken inside the commit so they follow commit order per row
	var taggee model.PlayerStatus
	tag, err := s.storage.CommitTag(ctx, game.ID, taggerID, target.PlayerID, func(tagger, tagged *model.PlayerStatus) (*model.Tag, error) {
		now := s.clock.Now()
		if err := s.projector.ApplyTag(tagger, tagged, slot, now); err != nil {
			return nil, err
		}
		taggee = *tagged
		return &model.Tag{
			ID:        s.random.UUID(),
			GameID:    game.ID,
			Tagger:    taggerID,
			Taggee:    tagged.PlayerID,
			Slot:      slot,
			Timestamp: now,
		}, nil
	})
	if err != nil {
		s.logCommitFailure("tag rejected", err,
			slog.String("game_id", string(game.ID)),
			slog.String("tagger", string(taggerID)),
			slog.String("taggee", string(target.PlayerID)),
			slog.String("slot", slot.String()),
			slog.String("status", string(target.Status)),
		)
		return nil, err
	}

	s.logger.Info("tag recorded",
		slog.String("game_id", string(game.ID)),
		slog.String("tagger", string(taggerID)),
		slog.String("taggee", string(tag.Taggee)),
		slog.String("status", string(taggee.Status)),
		slog.Int64("seq", tag.Seq),
	)
	s.publisher.PublishTag(tag, &taggee)
	return tag, nil
}

// RedeemAntivirus returns playerID to human using code. Codes are checked
// for existence in the active game, then use, then expiry, before the
// player's status. Domain rejections are kept as FailedAntivirusAttempts.
func (s *Service) RedeemAntivirus(ctx context.Context, code string, playerID model.PlayerID) (*model.Antivirus, error) {
	game, err := s.storage.GetActiveGame(ctx)
	if err != nil {
		return nil, err
	}
	code = strings.TrimSpace(code)

	var status model.PlayerStatus
	av, err := s.storage.CommitRedemption(ctx, game.ID, code, playerID, func(av *model.Antivirus, st *model.PlayerStatus) error {
		now := s.clock.Now()
		switch {
		case av.Redeemed():
			return model.ErrAntivirusUsed
		case av.ExpiredAt(now):
			return model.ErrAntivirusExpired
		case st == nil:
			return model.ErrStatusNotFound
		}
		if err := s.projector.ApplyRedemption(st, now); err != nil {
			return err
		}
		usedBy, usedAt := playerID, now
		av.UsedBy = &usedBy
		av.UsedAt = &usedAt
		status = *st
		return nil
	})
	if err != nil {
		s.logCommitFailure("antivirus rejected", err,
			slog.String("game_id", string(game.ID)),
			slog.String("player_id", string(playerID)),
			slog.String("code", code),
		)
		s.recordFailedAttempt(ctx, game.ID, playerID, code, err, s.clock.Now())
		return nil, err
	}

	s.logger.Info("antivirus redeemed",
		slog.String("game_id", string(game.ID)),
		slog.String("player_id", string(playerID)),
		slog.String("code", code),
		slog.Int64("seq", av.Seq),
	)
	s.publisher.PublishRedemption(av, &status)
	return av, nil
}

// CreateAntivirus issues a code for the active game. An empty code is generated.
func (s *Service) CreateAntivirus(ctx context.Context, code string, expiresAt time.Time) (*model.Antivirus, error) {
	if expiresAt.IsZero() {
		return nil, model.ErrMissingExpiry
	}
	game, err := s.storage.GetActiveGame(ctx)
	if err != nil {
		return nil, err
	}

	code = strings.TrimSpace(code)
	if code == "" {
		code = s.random.String(codeLength, codeAlphabet)
	}

	av := &model.Antivirus{
		Code:      code,
		GameID:    game.ID,
		ExpiresAt: expiresAt.UTC(),
		CreatedAt: s.clock.Now(),
	}
	if err := s.storage.CreateAntivirus(ctx, av); err != nil {
		return nil, err
	}

	s.logger.Info("antivirus created",
		slog.String("game_id", string(game.ID)),
		slog.String("code", code),
		slog.Time("expires_at", av.ExpiresAt),
	)
	return av, nil
}

// CreateBodyArmor issues a body armor code for the active game. An empty
// code is generated.
func (s *Service) CreateBodyArmor(ctx context.Context, code string, expiresAt time.Time) (*model.BodyArmor, error) {
	if expiresAt.IsZero() {
		return nil, model.ErrMissingExpiry
	}
	game, err := s.storage.GetActiveGame(ctx)
	if err != nil {
		return nil, err
	}

	code = strings.TrimSpace(code)
	if code == "" {
		code = s.random.String(codeLength, codeAlphabet)
	}

	armor := &model.BodyArmor{
		Code:      code,
		GameID:    game.ID,
		ExpiresAt: expiresAt.UTC(),
		CreatedAt: s.clock.Now(),
	}
	if err := s.storage.CreateBodyArmor(ctx, armor); err != nil {
		return nil, err
	}

	s.logger.Info("body armor created",
		slog.String("game_id", string(game.ID)),
		slog.String("code", code),
		slog.Time("expires_at", armor.ExpiresAt),
	)
	return armor, nil
}

// ListBodyArmors returns every body armor code issued for the active game
func (s *Service) ListBodyArmors(ctx context.Context) ([]*model.BodyArmor, error) {
	game, err := s.storage.GetActiveGame(ctx)
	if err != nil {
		return nil, err
	}
	return s.storage.ListBodyArmors(ctx, game.ID)
}

// ListTags returns every tag in the active game in commit order
func (s *Service) ListTags(ctx context.Context) ([]*model.Tag, error) {
	game, err := s.storage.GetActiveGame(ctx)
	if err != nil {
		return nil, err
	}
	return s.storage.ListTags(ctx, game.ID)
}

// TagsBy returns the tags playerID made in the active game
func (s *Service) TagsBy(ctx context.Context, playerID model.PlayerID) ([]*model.Tag, error) {
	tags, err := s.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	var out []*model.Tag
	for _, t := range tags {
		if t.Tagger == playerID {
			out = append(out, t)
		}
	}
	return out, nil
}

// ListAntiviruses returns every code issued for the active game
func (s *Service) ListAntiviruses(ctx context.Context) ([]*model.Antivirus, error) {
	game, err := s.storage.GetActiveGame(ctx)
	if err != nil {
		return nil, err
	}
	return s.storage.ListAntiviruses(ctx, game.ID)
}

// FailedAttempts returns playerID's rejected redemptions in the active game
func (s *Service) FailedAttempts(ctx context.Context, playerID model.PlayerID) ([]*model.FailedAntivirusAttempt, error) {
	game, err := s.storage.GetActiveGame(ctx)
	if err != nil {
		return nil, err
	}
	return s.storage.ListFailedAttempts(ctx, game.ID, playerID)
}

func (s *Service) recordFailedAttempt(ctx context.Context, gameID model.GameID, playerID model.PlayerID, code string, cause error, at time.Time) {
	if !isDomainRejection(cause) {
		return
	}
	attempt := &model.FailedAntivirusAttempt{
		GameID:    gameID,
		PlayerID:  playerID,
		Code:      code,
		Reason:    cause.Error(),
		Timestamp: at,
	}
	if err := s.storage.SaveFailedAttempt(ctx, attempt); err != nil {
		s.logger.Error("failed to record antivirus attempt",
			slog.String("player_id", string(playerID)),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Service) logCommitFailure(msg string, err error, attrs ...any) {
	attrs = append(attrs, slog.String("error", err.Error()))
	if isDomainRejection(err) || errors.Is(err, model.ErrStatusNotFound) {
		s.logger.Warn(msg, attrs...)
		return
	}
	s.logger.Error(msg, attrs...)
}

func isDomainRejection(err error) bool {
	return errors.Is(err, model.ErrInvalidTransition) ||
		errors.Is(err, model.ErrAntivirusNotFound) ||
		errors.Is(err, model.ErrAntivirusUsed) ||
		errors.Is(err, model.ErrAntivirusExpired)
}
