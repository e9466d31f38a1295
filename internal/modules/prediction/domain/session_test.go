package domain_test

import (
	"errors"
	"testing"
	"time"

	"whatdayisit/internal/modules/prediction/domain"
	apperrors "whatdayisit/internal/platform/errors"
)

func TestSessionFullCycle(t *testing.T) {
	t.Parallel()
	at := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	idle := domain.Session{}
	if idle.Status != domain.StatusIdle {
		t.Fatalf("zero session must be idle, got %s", idle.Status)
	}

	calc, err := idle.Begin("run-1", at, "first")
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if calc.Status != domain.StatusCalculating || calc.LoadingMessage != "first" || calc.RunID != "run-1" {
		t.Fatalf("unexpected calculating session: %+v", calc)
	}

	next, changed := calc.Advance(1, "second")
	if !changed || next.LoadingMessage != "second" || next.MessageIndex != 1 {
		t.Fatalf("advance did not apply: %+v", next)
	}
	if _, changed := next.Advance(1, "second"); changed {
		t.Fatalf("advancing to the same index must be a no-op")
	}

	revealed, err := next.Reveal("Tuesday, June 11, 2024", at.Add(4*time.Second))
	if err != nil {
		t.Fatalf("reveal: %v", err)
	}
	if revealed.Status != domain.StatusRevealed || revealed.PredictedDate != "Tuesday, June 11, 2024" || revealed.LoadingMessage != "" {
		t.Fatalf("unexpected revealed session: %+v", revealed)
	}
	if _, changed := revealed.Advance(2, "late"); changed {
		t.Fatalf("advance after reveal must be a no-op")
	}

	back, err := revealed.Clear()
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if back != (domain.Session{}) {
		t.Fatalf("clear must return a pristine idle session, got %+v", back)
	}
}

func TestSessionRejectsInvalidTransitions(t *testing.T) {
	t.Parallel()
	at := time.Unix(0, 0)
	calc, _ := domain.Session{}.Begin("run-1", at, "first")

	if _, err := calc.Begin("run-2", at, "first"); !errors.Is(err, apperrors.ErrSequenceActive) {
		t.Fatalf("begin while calculating: %v", err)
	}
	if _, err := (domain.Session{}).Clear(); !errors.Is(err, apperrors.ErrNotRevealed) {
		t.Fatalf("clear from idle: %v", err)
	}
	if _, err := calc.Clear(); !errors.Is(err, apperrors.ErrNotRevealed) {
		t.Fatalf("clear while calculating: %v", err)
	}
	if _, err := (domain.Session{}).Reveal("x", at); !errors.Is(err, apperrors.ErrBadTransition) {
		t.Fatalf("reveal from idle: %v", err)
	}
	revealed, _ := calc.Reveal("x", at)
	if _, err := revealed.Begin("run-3", at, "first"); !errors.Is(err, apperrors.ErrSequenceActive) {
		t.Fatalf("begin while revealed: %v", err)
	}
}

func TestStatusString(t *testing.T) {
	t.Parallel()
	for status, want := range map[domain.Status]string{
		domain.StatusIdle:        "idle",
		domain.StatusCalculating: "calculating",
		domain.StatusRevealed:    "revealed",
		domain.Status(42):        "unknown",
	} {
		if status.String() != want {
			t.Fatalf("status %d: got %s want %s", status, status.String(), want)
		}
	}
}
