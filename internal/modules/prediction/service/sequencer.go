// Package service implements the reveal sequencer: the timer-driven state
// machine that walks a session through idle, calculating and revealed.
package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"whatdayisit/internal/modules/prediction/domain"
	predictionout "whatdayisit/internal/modules/prediction/port/out"
	"whatdayisit/internal/platform/clock"
	apperrors "whatdayisit/internal/platform/errors"
	"whatdayisit/internal/platform/id"
)

// Option configures the sequencer.
type Option func(*Sequencer)

// WithTickInterval sets how often the loading message rotates.
func WithTickInterval(d time.Duration) Option {
	return func(s *Sequencer) {
		if d > 0 {
			s.tickInterval = d
		}
	}
}

// WithRevealAfter sets the delay between start and the reveal.
func WithRevealAfter(d time.Duration) Option {
	return func(s *Sequencer) {
		if d > 0 {
			s.revealAfter = d
		}
	}
}

// WithMessages replaces the flavor text. An empty list keeps the default.
func WithMessages(messages []string) Option {
	return func(s *Sequencer) {
		if len(messages) > 0 {
			s.messages = append([]string(nil), messages...)
		}
	}
}

// WithLocation sets the calendar used to work out tomorrow.
func WithLocation(loc *time.Location) Option {
	return func(s *Sequencer) {
		if loc != nil {
			s.location = loc
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Sequencer) {
		if log != nil {
			s.log = log
		}
	}
}

// Sequencer owns the session state record and both of its timers. All
// mutation goes through Start, Reset, Close and the timer callbacks, which
// are serialized by mu.
type Sequencer struct {
	clock        clock.Clock
	idGen        id.Generator
	publisher    predictionout.Publisher
	log          *zap.Logger
	tickInterval time.Duration
	revealAfter  time.Duration
	messages     []string
	location     *time.Location

	mu       sync.Mutex
	state    domain.Session
	revision uint64
	epoch    uint64 // bumped on every transition that invalidates pending timers
	ticker   clock.Timer
	reveal   clock.Timer
	closed   bool
}

func NewSequencer(clk clock.Clock, idGen id.Generator, publisher predictionout.Publisher, opts ...Option) *Sequencer {
	s := &Sequencer{
		clock:        clk,
		idGen:        idGen,
		publisher:    publisher,
		log:          zap.NewNop(),
		tickInterval: domain.DefaultTickInterval,
		revealAfter:  domain.DefaultRevealAfter,
		messages:     domain.FlavorText(),
		location:     time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start enters Calculating and schedules the message ticker and the reveal.
// It returns ErrSequenceActive unless the session is idle.
func (s *Sequencer) Start(ctx context.Context) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return domain.Session{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return s.state, apperrors.ErrClosed
	}

	now := s.clock.Now()
	next, err := s.state.Begin(s.idGen.New(), now, s.messages[0])
	if err != nil {
		s.log.Debug("start rejected", zap.Stringer("status", s.state.Status), zap.String("run_id", s.state.RunID))
		return s.state, err
	}

	s.stopTimersLocked()
	s.epoch++
	s.state = next

	epoch := s.epoch
	s.reveal = s.clock.AfterFunc(s.revealAfter, func() { s.complete(epoch) })
	s.scheduleTickLocked(epoch, 1)

	s.log.Info("prediction started",
		zap.String("run_id", next.RunID),
		zap.Duration("tick", s.tickInterval),
		zap.Duration("reveal_after", s.revealAfter),
	)
	s.publishLocked(domain.EventStarted, now)
	return s.state, nil
}

// Reset returns a revealed session to idle. From any other status it
// returns ErrNotRevealed and leaves the state untouched.
func (s *Sequencer) Reset(ctx context.Context) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return domain.Session{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return s.state, apperrors.ErrClosed
	}

	next, err := s.state.Clear()
	if err != nil {
		return s.state, err
	}
	s.stopTimersLocked()
	s.epoch++
	s.state = next

	s.log.Info("prediction reset")
	s.publishLocked(domain.EventReset, s.clock.Now())
	return s.state, nil
}

// Close stops any pending timers. Calling it again is a no-op.
func (s *Sequencer) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.stopTimersLocked()
	s.epoch++
	s.log.Debug("sequencer closed", zap.Stringer("status", s.state.Status))
	return nil
}

// Current returns the state record, its revision and the time spent in the
// current calculating phase (zero outside Calculating).
func (s *Sequencer) Current() (domain.Session, uint64, time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var elapsed time.Duration
	if s.state.Status == domain.StatusCalculating {
		elapsed = s.clock.Now().Sub(s.state.StartedAt)
	}
	return s.state, s.revision, elapsed
}

func (s *Sequencer) RevealAfter() time.Duration { return s.revealAfter }

func (s *Sequencer) MessageCount() int { return len(s.messages) }

// scheduleTickLocked arms tick k at StartedAt + k*tickInterval so the cadence
// does not drift with callback latency.
func (s *Sequencer) scheduleTickLocked(epoch uint64, k int) {
	deadline := s.state.StartedAt.Add(time.Duration(k) * s.tickInterval)
	wait := deadline.Sub(s.clock.Now())
	if wait < 0 {
		wait = 0
	}
	s.ticker = s.clock.AfterFunc(wait, func() { s.tick(epoch, k) })
}

func (s *Sequencer) tick(epoch uint64, k int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch || s.state.Status != domain.StatusCalculating {
		return
	}

	if k < len(s.messages) {
		idx, msg := domain.MessageAt(s.messages, time.Duration(k)*s.tickInterval, s.tickInterval)
		if next, changed := s.state.Advance(idx, msg); changed {
			s.state = next
			s.log.Debug("loading message", zap.String("run_id", next.RunID), zap.Int("index", idx))
			s.publishLocked(domain.EventMessage, s.clock.Now())
		}
	}
	// Past the last message ticks are no-ops, but the ticker keeps running
	// until the reveal stops it.
	s.scheduleTickLocked(epoch, k+1)
}

func (s *Sequencer) complete(epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch || s.state.Status != domain.StatusCalculating {
		return
	}
	s.stopTimersLocked()

	now := s.clock.Now()
	prediction := domain.FormatPrediction(domain.Tomorrow(now, s.location))
	next, err := s.state.Reveal(prediction, now)
	if err != nil {
		s.log.Error("reveal failed", zap.Error(err))
		return
	}
	s.state = next

	s.log.Info("prediction revealed",
		zap.String("run_id", next.RunID),
		zap.String("prediction", prediction),
		zap.Duration("elapsed", now.Sub(next.StartedAt)),
	)
	s.publishLocked(domain.EventRevealed, now)
}

func (s *Sequencer) stopTimersLocked() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
	if s.reveal != nil {
		s.reveal.Stop()
		s.reveal = nil
	}
}

func (s *Sequencer) publishLocked(kind domain.EventKind, at time.Time) {
	s.revision++
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(domain.Event{Kind: kind, Session: s.state, Revision: s.revision, At: at})
}
