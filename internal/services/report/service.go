package report

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/mcoot/hvztracker/internal/dependencies/clock"
	"github.com/mcoot/hvztracker/internal/dependencies/random"
	"github.com/mcoot/hvztracker/internal/model"
	"github.com/mcoot/hvztracker/internal/notify"
	"github.com/mcoot/hvztracker/internal/storage"
)

// Sink accepts notifications without blocking. It reports whether the
// message was accepted.
type Sink interface {
	Enqueue(msg notify.Message) bool
}

// Payload is the body moderators receive for a new report
type Payload struct {
	ID            string    `json:"report_id"`
	Text          string    `json:"report_text"`
	ReporterEmail string    `json:"reporter_email"`
	Reporter      string    `json:"reporter"`
	Timestamp     time.Time `json:"timestamp"`
}

// Service accepts incident reports for the active game
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	sink    Sink
	logger  *slog.Logger
}

// New creates a new report Service. A nil sink disables notifications.
func New(storage storage.Storage, clock clock.Clock, random random.Random, sink Sink, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
		sink:    sink,
		logger:  logger.With(slog.String("component", "report")),
	}
}

// CreateReport stores a new report and notifies moderators. Reporter may be
// empty for anonymous reports.
func (s *Service) CreateReport(ctx context.Context, text, email string, reporter model.PlayerID) (*model.Report, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, model.ErrEmptyReport
	}
	game, err := s.storage.GetActiveGame(ctx)
	if err != nil {
		return nil, err
	}
	if reporter != "" {
		if _, err := s.storage.GetPlayer(ctx, reporter); err != nil {
			return nil, err
		}
	}

	r := &model.Report{
		ID:            s.random.UUID(),
		GameID:        game.ID,
		Text:          text,
		ReporterEmail: strings.TrimSpace(email),
		Reporter:      reporter,
		Status:        model.ReportStatusNew,
		CreatedAt:     s.clock.Now(),
	}
	if err := s.storage.SaveReport(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info("report created",
		slog.String("game_id", string(game.ID)),
		slog.String("report_id", r.ID),
		slog.Bool("anonymous", reporter == ""),
	)
	s.notify(r)
	return r, nil
}

// ListReports returns every report, newest first
func (s *Service) ListReports(ctx context.Context) ([]*model.Report, error) {
	reports, err := s.storage.ListReports(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
	return reports, nil
}

func (s *Service) notify(r *model.Report) {
	if s.sink == nil {
		return
	}
	msg := notify.Message{
		Kind: "report",
		Payload: Payload{
			ID:            r.ID,
			Text:          r.Text,
			ReporterEmail: r.ReporterEmail,
			Reporter:      string(r.Reporter),
			Timestamp:     r.CreatedAt,
		},
	}
	if !s.sink.Enqueue(msg) {
		s.logger.Warn("report notification dropped", slog.String("report_id", r.ID))
	}
}
