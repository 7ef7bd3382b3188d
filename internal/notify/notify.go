// Package notify delivers best-effort notifications to moderator channels.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Message is one notification. Kind selects the bot command prefix and
// Payload is rendered as indented JSON beneath it.
type Message struct {
	Kind    string
	Payload any
}

// Content renders the message in the "!kind" command form the companion bot parses
func (m Message) Content() (string, error) {
	body, err := json.MarshalIndent(m.Payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("render %s notification: %w", m.Kind, err)
	}
	return "!" + m.Kind + " \n" + string(body), nil
}

// Notifier sends a message to one destination
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// Multi fans a message out to every notifier, attempting all of them
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, msg Message) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards every message
type Nop struct{}

func (Nop) Notify(context.Context, Message) error { return nil }
