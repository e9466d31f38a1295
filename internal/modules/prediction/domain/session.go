package domain

import (
	"time"

	apperrors "whatdayisit/internal/platform/errors"
)

type Status int

const (
	StatusIdle Status = iota
	StatusCalculating
	StatusRevealed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusCalculating:
		return "calculating"
	case StatusRevealed:
		return "revealed"
	default:
		return "unknown"
	}
}

// Session is the single state record behind the oracle. Transitions return a
// new value and never mutate the receiver.
type Session struct {
	Status         Status
	LoadingMessage string
	MessageIndex   int
	PredictedDate  string
	RunID          string
	StartedAt      time.Time
	RevealedAt     time.Time
}

// Begin enters Calculating showing the first message.
func (s Session) Begin(runID string, at time.Time, first string) (Session, error) {
	if s.Status != StatusIdle {
		return s, apperrors.ErrSequenceActive
	}
	return Session{
		Status:         StatusCalculating,
		LoadingMessage: first,
		MessageIndex:   0,
		RunID:          runID,
		StartedAt:      at,
	}, nil
}

// Advance swaps the loading message. It reports false when nothing changed,
// including every call outside Calculating.
func (s Session) Advance(index int, message string) (Session, bool) {
	if s.Status != StatusCalculating || index == s.MessageIndex {
		return s, false
	}
	s.MessageIndex = index
	s.LoadingMessage = message
	return s, true
}

func (s Session) Reveal(prediction string, at time.Time) (Session, error) {
	if s.Status != StatusCalculating {
		return s, apperrors.ErrBadTransition
	}
	s.Status = StatusRevealed
	s.LoadingMessage = ""
	s.PredictedDate = prediction
	s.RevealedAt = at
	return s, nil
}

// Clear returns to Idle. It is only valid from Revealed.
func (s Session) Clear() (Session, error) {
	if s.Status != StatusRevealed {
		return s, apperrors.ErrNotRevealed
	}
	return Session{Status: StatusIdle}, nil
}
