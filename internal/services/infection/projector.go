package infection

import (
	"time"

	"github.com/mcoot/hvztracker/internal/model"
)

type transition struct {
	from model.StatusCode
	slot model.TagSlot
}

// tagTransitions is the complete set of legal tag conversions. Any
// (status, slot) pair missing from the table is an invalid transition.
var tagTransitions = map[transition]model.StatusCode{
	{model.StatusHuman, model.TagSlotPrimary}:             model.StatusZombie,
	{model.StatusHumanVaccinated, model.TagSlotAlternate}: model.StatusZombieVaccinated,
}

// Projector applies events to player status rows
type Projector struct{}

// NextTagStatus returns the status a taggee in from moves to when tagged via slot
func (Projector) NextTagStatus(from model.StatusCode, slot model.TagSlot) (model.StatusCode, error) {
	next, ok := tagTransitions[transition{from: from, slot: slot}]
	if !ok {
		return "", model.ErrInvalidTransition
	}
	return next, nil
}

// ApplyTag converts taggee and credits the tagger. Both rows are left
// untouched when the transition is invalid.
func (p Projector) ApplyTag(tagger, taggee *model.PlayerStatus, slot model.TagSlot, at time.Time) error {
	next, err := p.NextTagStatus(taggee.Status, slot)
	if err != nil {
		return err
	}
	taggee.Status = next
	taggee.UpdatedAt = at
	tagger.NumTags++
	tagger.UpdatedAt = at
	return nil
}

// ApplyRedemption returns a zombie-family player to human
func (Projector) ApplyRedemption(status *model.PlayerStatus, at time.Time) error {
	if !status.Status.IsZombie() {
		return model.ErrInvalidTransition
	}
	status.Status = model.StatusHuman
	status.UpdatedAt = at
	return nil
}
