package roster

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/mcoot/hvztracker/internal/model"
)

// CreateClan creates a clan. A non-empty leader must exist and joins the clan.
func (s *Service) CreateClan(ctx context.Context, name string, leader model.PlayerID) (*model.Clan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrEmptyName
	}

	var leaderPlayer *model.Player
	if leader != "" {
		p, err := s.storage.GetPlayer(ctx, leader)
		if err != nil {
			return nil, err
		}
		if p.HasClan() {
			return nil, model.ErrAlreadyInClan
		}
		leaderPlayer = p
	}

	clan := &model.Clan{Name: name, Leader: leader, CreatedAt: s.clock.Now()}
	if err := s.storage.CreateClan(ctx, clan); err != nil {
		return nil, err
	}

	if leaderPlayer != nil {
		if err := s.setClan(ctx, leaderPlayer, name); err != nil {
			return nil, err
		}
	}
	s.recordHistory(ctx, name, leader, model.ClanActionCreated)

	s.logger.Info("clan created", slog.String("clan", name), slog.String("leader", string(leader)))
	return clan, nil
}

// GetClan retrieves a clan by name
func (s *Service) GetClan(ctx context.Context, name string) (*model.Clan, error) {
	return s.storage.GetClan(ctx, name)
}

// ListClans returns every clan ordered by name
func (s *Service) ListClans(ctx context.Context) ([]*model.Clan, error) {
	return s.storage.ListClans(ctx)
}

// JoinClan adds a clanless player to a clan
func (s *Service) JoinClan(ctx context.Context, name string, playerID model.PlayerID) (*model.Player, error) {
	if _, err := s.storage.GetClan(ctx, name); err != nil {
		return nil, err
	}
	player, err := s.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if player.HasClan() {
		return nil, model.ErrAlreadyInClan
	}
	if err := s.setClan(ctx, player, name); err != nil {
		return nil, err
	}
	s.recordHistory(ctx, name, playerID, model.ClanActionJoined)
	return player, nil
}

// LeaveClan removes a player from the named clan. A leader who leaves
// leaves the clan leaderless.
func (s *Service) LeaveClan(ctx context.Context, name string, playerID model.PlayerID) (*model.Player, error) {
	clan, err := s.storage.GetClan(ctx, name)
	if err != nil {
		return nil, err
	}
	player, err := s.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if player.ClanName != name {
		return nil, model.ErrNotClanMember
	}
	if err := s.setClan(ctx, player, ""); err != nil {
		return nil, err
	}
	if clan.Leader == playerID {
		clan.Leader = ""
		if err := s.storage.SaveClan(ctx, clan); err != nil {
			return nil, err
		}
		s.logger.Info("clan leader left", slog.String("clan", name), slog.String("player_id", string(playerID)))
	}
	s.recordHistory(ctx, name, playerID, model.ClanActionLeft)
	return player, nil
}

// ClanHistory returns a clan's membership changes, newest first
func (s *Service) ClanHistory(ctx context.Context, name string) ([]*model.ClanHistoryItem, error) {
	if _, err := s.storage.GetClan(ctx, name); err != nil {
		return nil, err
	}
	items, err := s.storage.ListClanHistory(ctx, name)
	if err != nil {
		return nil, err
	}
	slices.Reverse(items)
	return items, nil
}

// ClanRoster returns the players in a clan
func (s *Service) ClanRoster(ctx context.Context, name string) ([]*model.Player, error) {
	if _, err := s.storage.GetClan(ctx, name); err != nil {
		return nil, err
	}
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	var members []*model.Player
	for _, p := range players {
		if p.ClanName == name {
			members = append(members, p)
		}
	}
	return members, nil
}

// recordHistory appends an audit entry. The membership change has already
// been saved, so a failure here is only logged.
func (s *Service) recordHistory(ctx context.Context, clan string, playerID model.PlayerID, action model.ClanAction) {
	item := &model.ClanHistoryItem{
		Clan:      clan,
		PlayerID:  playerID,
		Action:    action,
		Timestamp: s.clock.Now(),
	}
	if err := s.storage.AppendClanHistory(ctx, item); err != nil {
		s.logger.Error("failed to record clan history",
			slog.String("clan", clan),
			slog.String("action", string(action)),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Service) setClan(ctx context.Context, player *model.Player, name string) error {
	player.ClanName = name
	player.UpdatedAt = s.clock.Now()
	return s.storage.SavePlayer(ctx, player)
}
