package ranking

import (
	"cmp"
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/mcoot/hvztracker/internal/model"
	"github.com/mcoot/hvztracker/internal/services/roster"
	"github.com/mcoot/hvztracker/internal/storage"
)

// SortKey selects the column a roster page is ordered by
type SortKey string

const (
	SortByName   SortKey = "name"
	SortByClan   SortKey = "clan"
	SortByTags   SortKey = "tags"
	SortByStatus SortKey = "status"
)

// SortDir is the ordering direction
type SortDir string

const (
	Ascending  SortDir = "asc"
	Descending SortDir = "desc"
)

// ParseSortKey validates a requested sort key. Empty means name.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(s)); k {
	case "":
		return SortByName, nil
	case SortByName, SortByClan, SortByTags, SortByStatus:
		return k, nil
	}
	return "", model.ErrInvalidSortKey
}

// ParseSortDir maps anything other than "desc" to ascending
func ParseSortDir(s string) SortDir {
	if strings.EqualFold(s, string(Descending)) {
		return Descending
	}
	return Ascending
}

// Query describes one page request
type Query struct {
	Filter  string
	SortKey SortKey
	SortDir SortDir
	Offset  int
	Limit   int // zero or negative returns everything after Offset
}

// Page is one window of the sorted, filtered roster
type Page struct {
	Entries         []roster.Member
	TotalMatching   int
	TotalUnfiltered int
}

// Service pages through the active game's roster
type Service struct {
	storage storage.Storage
	roster  *roster.Service
	logger  *slog.Logger
}

// New creates a new ranking Service
func New(storage storage.Storage, roster *roster.Service, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		roster:  roster,
		logger:  logger.With(slog.String("component", "ranking")),
	}
}

// Rank filters, sorts and pages the active game's roster
func (s *Service) Rank(ctx context.Context, q Query) (*Page, error) {
	if q.SortKey == "" {
		q.SortKey = SortByName
	}
	less, err := comparator(q.SortKey)
	if err != nil {
		return nil, err
	}

	game, err := s.storage.GetActiveGame(ctx)
	if err != nil {
		return nil, err
	}
	members, err := s.roster.Roster(ctx, game.ID)
	if err != nil {
		return nil, err
	}

	matching := Filter(members, q.Filter)
	sortMembers(matching, less, q.SortDir)

	page := &Page{
		Entries:         window(matching, q.Offset, q.Limit),
		TotalMatching:   len(matching),
		TotalUnfiltered: len(members),
	}
	s.logger.Debug("roster ranked",
		slog.String("game_id", string(game.ID)),
		slog.String("sort", string(q.SortKey)),
		slog.String("dir", string(q.SortDir)),
		slog.Int("matching", page.TotalMatching),
	)
	return page, nil
}

// Filter keeps members whose name or clan contains text, ignoring case
func Filter(members []roster.Member, text string) []roster.Member {
	needle := strings.ToLower(strings.TrimSpace(text))
	out := make([]roster.Member, 0, len(members))
	for _, m := range members {
		if needle == "" ||
			strings.Contains(strings.ToLower(m.Player.DisplayName), needle) ||
			strings.Contains(strings.ToLower(m.Player.ClanName), needle) {
			out = append(out, m)
		}
	}
	return out
}

// compareFunc returns a negative number when a sorts before b
type compareFunc func(a, b roster.Member) int

func comparator(key SortKey) (compareFunc, error) {
	switch key {
	case SortByName:
		return func(a, b roster.Member) int { return compareNames(a, b) }, nil
	case SortByClan:
		return func(a, b roster.Member) int {
			return cmp.Compare(strings.ToLower(a.Player.ClanName), strings.ToLower(b.Player.ClanName))
		}, nil
	case SortByTags:
		return func(a, b roster.Member) int { return cmp.Compare(a.Status.NumTags, b.Status.NumTags) }, nil
	case SortByStatus:
		return func(a, b roster.Member) int {
			return cmp.Compare(a.Status.Status.ListingPriority(), b.Status.Status.ListingPriority())
		}, nil
	}
	return nil, model.ErrInvalidSortKey
}

// sortMembers orders by key in dir. Equal keys stay in ascending name order
// whichever direction is requested.
func sortMembers(members []roster.Member, key compareFunc, dir SortDir) {
	sort.SliceStable(members, func(i, j int) bool {
		return compareNames(members[i], members[j]) < 0
	})
	sort.SliceStable(members, func(i, j int) bool {
		c := key(members[i], members[j])
		if dir == Descending {
			return c > 0
		}
		return c < 0
	})
}

func compareNames(a, b roster.Member) int {
	if c := cmp.Compare(strings.ToLower(a.Player.DisplayName), strings.ToLower(b.Player.DisplayName)); c != 0 {
		return c
	}
	return cmp.Compare(a.Player.ID, b.Player.ID)
}

func window(members []roster.Member, offset, limit int) []roster.Member {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(members) {
		return []roster.Member{}
	}
	end := len(members)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return members[offset:end]
}
