package timeline

import (
	"sort"
	"time"

	"github.com/mcoot/hvztracker/internal/model"
)

// Input is everything the reconstruction reads for one game
type Input struct {
	Start       time.Time
	Statuses    []*model.PlayerStatus
	Tags        []*model.Tag
	Antiviruses []*model.Antivirus // unredeemed codes are ignored
}

// Series is the replayed population history of a game
type Series struct {
	Points      []model.TimelinePoint
	Events      []model.TimelineEvent // oldest first, only events that moved a count
	HumanCount  int
	ZombieCount int
}

// Reconstruct replays the game's committed events into a population series.
//
// The seed split is derived backwards from the current statuses so the last
// point always agrees with them. Each player is counted in exactly one family
// at every point, so humans plus zombies never changes.
func Reconstruct(in Input) *Series {
	zombie := make(map[model.PlayerID]bool, len(in.Statuses))
	counted := make(map[model.PlayerID]bool, len(in.Statuses))
	for _, st := range in.Statuses {
		switch {
		case st.Status.IsHuman():
			zombie[st.PlayerID] = false
		case st.Status.IsZombie():
			zombie[st.PlayerID] = true
		default:
			continue
		}
		counted[st.PlayerID] = true
	}

	events := consistentEvents(mergeEvents(in.Tags, in.Antiviruses, counted), zombie)

	// zombie now holds each player's family before their first kept event
	h, z := 0, 0
	for id := range counted {
		if zombie[id] {
			z++
		} else {
			h++
		}
	}

	start := in.Start
	if len(events) > 0 && (start.IsZero() || events[0].Timestamp.Before(start)) {
		start = events[0].Timestamp
	}

	series := &Series{
		Points: make([]model.TimelinePoint, 0, len(events)+1),
		Events: events,
	}
	series.Points = append(series.Points, model.TimelinePoint{Timestamp: start, HumanCount: h, ZombieCount: z})
	for _, e := range events {
		if e.Kind == model.EventKindTag {
			h, z = h-1, z+1
		} else {
			h, z = h+1, z-1
		}
		series.Points = append(series.Points, model.TimelinePoint{Timestamp: e.Timestamp, HumanCount: h, ZombieCount: z})
	}
	series.HumanCount, series.ZombieCount = h, z
	return series
}

// consistentEvents walks events newest first from each player's current
// family, keeping only events that are a real transition into the family the
// player holds afterwards. A redemption needs a zombie before and a tag needs
// a human before, so an event that disagrees with the later history is
// dropped. zombie is rewound in place to each player's starting family.
func consistentEvents(events []model.TimelineEvent, zombie map[model.PlayerID]bool) []model.TimelineEvent {
	keep := make([]bool, len(events))
	kept := 0
	for i := len(events) - 1; i >= 0; i-- {
		id := events[i].SubjectID()
		isTag := events[i].Kind == model.EventKindTag
		// After a tag the player is a zombie, after a redemption a human
		if zombie[id] != isTag {
			continue
		}
		zombie[id] = !isTag
		keep[i] = true
		kept++
	}

	out := make([]model.TimelineEvent, 0, kept)
	for i, e := range events {
		if keep[i] {
			out = append(out, e)
		}
	}
	return out
}

// mergeEvents combines tags and redemptions into one stream ordered by
// timestamp then commit sequence. Events for players without a counted
// status row are dropped.
func mergeEvents(tags []*model.Tag, avs []*model.Antivirus, counted map[model.PlayerID]bool) []model.TimelineEvent {
	events := make([]model.TimelineEvent, 0, len(tags)+len(avs))
	for _, t := range tags {
		if counted[t.Taggee] {
			events = append(events, model.TagEvent(t))
		}
	}
	for _, av := range avs {
		if !av.Redeemed() {
			continue
		}
		if counted[*av.UsedBy] {
			events = append(events, model.AntivirusEvent(av))
		}
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Before(events[j]) })
	return events
}
