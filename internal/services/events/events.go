package events

import (
	"time"
)

// Type is the subject suffix of a lifecycle event.
type Type string

const (
	RoomCreated Type = "room.created"
	RoomClosed  Type = "room.closed"
	GameOver    Type = "game.over"
)

// Event is the JSON body published for room lifecycle changes. The secret word
// only appears once the game is decided.
type Event struct {
	Type          Type      `json:"type"`
	Room          string    `json:"room"`
	Instance      string    `json:"instance,omitempty"`
	Host          string    `json:"host,omitempty"`
	Players       int       `json:"players"`
	QuestionCount int       `json:"questionCount"`
	Outcome       string    `json:"outcome,omitempty"`
	FinalWord     string    `json:"finalWord,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	At            time.Time `json:"at"`
}

// Publisher delivers lifecycle events. Implementations must not block the caller
// for long: they are invoked from the hub goroutine.
type Publisher interface {
	Publish(e Event) error
	Check() error
	Close() error
}

// Subject joins the configured prefix and the event type.
func Subject(prefix string, t Type) string {
	if prefix == "" {
		return string(t)
	}
	return prefix + "." + string(t)
}

// Noop drops every event. It is used when NATS is not configured.
type Noop struct{}

func (Noop) Publish(Event) error { return nil }
func (Noop) Check() error        { return nil }
func (Noop) Close() error        { return nil }
