package domain

import "time"

type EventKind string

const (
	EventStarted  EventKind = "started"
	EventMessage  EventKind = "message"
	EventRevealed EventKind = "revealed"
	EventReset    EventKind = "reset"
)

// Event is published after every state change. Revision increases by one per
// event for the lifetime of a sequencer.
type Event struct {
	Kind     EventKind
	Session  Session
	Revision uint64
	At       time.Time
}
