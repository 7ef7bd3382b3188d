package roster

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mcoot/hvztracker/internal/model"
)

// CreateLinkCode issues a one-time code the player hands to the bot
func (s *Service) CreateLinkCode(ctx context.Context, playerID model.PlayerID) (*model.LinkCode, error) {
	if _, err := s.storage.GetPlayer(ctx, playerID); err != nil {
		return nil, err
	}
	code := &model.LinkCode{
		Code:      s.random.String(linkCodeLength, linkCodeAlphabet),
		PlayerID:  playerID,
		CreatedAt: s.clock.Now(),
	}
	if err := s.storage.SaveLinkCode(ctx, code); err != nil {
		return nil, err
	}
	return code, nil
}

// LinkDiscord consumes a link code and attaches discordID to its player
func (s *Service) LinkDiscord(ctx context.Context, code, discordID string) (*model.Player, error) {
	discordID = strings.TrimSpace(discordID)
	if discordID == "" {
		return nil, model.ErrEmptyDiscord
	}
	lc, err := s.storage.ConsumeLinkCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	player, err := s.storage.GetPlayer(ctx, lc.PlayerID)
	if err != nil {
		return nil, err
	}
	player.DiscordID = discordID
	player.UpdatedAt = s.clock.Now()
	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}
	s.logger.Info("discord linked", slog.String("player_id", string(player.ID)))
	return player, nil
}

// LookupByDiscordID finds the player linked to a Discord account
func (s *Service) LookupByDiscordID(ctx context.Context, discordID string) (*model.Player, error) {
	return s.storage.GetPlayerByDiscordID(ctx, discordID)
}
