package model

import "time"

// Tag records a human being converted by a zombie. Tags are append-only.
type Tag struct {
	ID        string
	GameID    GameID
	Tagger    PlayerID
	Taggee    PlayerID
	Slot      TagSlot // which tag target the tagger submitted
	Seq       int64   // per-game commit order, breaks timestamp ties
	Timestamp time.Time
}

// Antivirus is a one-use code that returns a zombie to human.
// UsedBy and UsedAt stay nil until the code is redeemed.
type Antivirus struct {
	Code      string
	GameID    GameID
	ExpiresAt time.Time
	UsedBy    *PlayerID
	UsedAt    *time.Time
	Seq       int64 // set on redemption
	CreatedAt time.Time
}

// Redeemed returns true once the code has been used
func (a *Antivirus) Redeemed() bool {
	return a.UsedBy != nil && a.UsedAt != nil
}

// ExpiredAt returns true if the code can no longer be redeemed at t
func (a *Antivirus) ExpiredAt(t time.Time) bool {
	return !t.Before(a.ExpiresAt)
}

// BodyArmor is a staff-issued armor code. Codes are unique across games.
type BodyArmor struct {
	Code      string
	GameID    GameID
	ExpiresAt time.Time
	CreatedAt time.Time
}

// FailedAntivirusAttempt is kept for moderators reviewing code guessing
type FailedAntivirusAttempt struct {
	GameID    GameID
	PlayerID  PlayerID
	Code      string
	Reason    string
	Timestamp time.Time
}

// EventKind discriminates the variants of TimelineEvent
type EventKind string

const (
	EventKindTag       EventKind = "tag"
	EventKindAntivirus EventKind = "antivirus"
)

// TimelineEvent is one committed status change in a game's history.
// Exactly one of Tag or Antivirus is set, matching Kind.
type TimelineEvent struct {
	Kind      EventKind
	Timestamp time.Time
	Seq       int64
	Tag       *Tag
	Antivirus *Antivirus
}

// TagEvent wraps a tag as a timeline event
func TagEvent(t *Tag) TimelineEvent {
	return TimelineEvent{Kind: EventKindTag, Timestamp: t.Timestamp, Seq: t.Seq, Tag: t}
}

// AntivirusEvent wraps a redeemed antivirus as a timeline event
func AntivirusEvent(a *Antivirus) TimelineEvent {
	return TimelineEvent{Kind: EventKindAntivirus, Timestamp: *a.UsedAt, Seq: a.Seq, Antivirus: a}
}

// SubjectID returns the player whose status the event changed
func (e TimelineEvent) SubjectID() PlayerID {
	switch e.Kind {
	case EventKindTag:
		return e.Tag.Taggee
	case EventKindAntivirus:
		return *e.Antivirus.UsedBy
	}
	return ""
}

// Before orders events by timestamp, then commit sequence
func (e TimelineEvent) Before(o TimelineEvent) bool {
	if !e.Timestamp.Equal(o.Timestamp) {
		return e.Timestamp.Before(o.Timestamp)
	}
	return e.Seq < o.Seq
}

// TimelinePoint is one sample of the population chart
type TimelinePoint struct {
	Timestamp   time.Time
	HumanCount  int
	ZombieCount int
}
