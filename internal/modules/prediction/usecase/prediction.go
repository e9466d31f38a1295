package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"whatdayisit/internal/modules/prediction/domain"
	predictiondto "whatdayisit/internal/modules/prediction/dto"
	predictionin "whatdayisit/internal/modules/prediction/port/in"
	predictionout "whatdayisit/internal/modules/prediction/port/out"
	"whatdayisit/internal/modules/prediction/service"
)

type Interactor struct {
	svc    *service.Sequencer
	events predictionout.EventSource
	log    *zap.Logger
}

func NewInteractor(svc *service.Sequencer, events predictionout.EventSource, log *zap.Logger) predictionin.Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interactor{svc: svc, events: events, log: log}
}

func (i *Interactor) Start(ctx context.Context) (predictiondto.StartOutput, error) {
	session, err := i.svc.Start(ctx)
	if err != nil {
		i.log.Debug("start refused", zap.Error(err))
		return predictiondto.StartOutput{}, err
	}
	return predictiondto.StartOutput{
		RunID:          session.RunID,
		StartedAt:      session.StartedAt,
		LoadingMessage: session.LoadingMessage,
	}, nil
}

func (i *Interactor) Reset(ctx context.Context) (predictiondto.Snapshot, error) {
	if _, err := i.svc.Reset(ctx); err != nil {
		i.log.Debug("reset refused", zap.Error(err))
		return predictiondto.Snapshot{}, err
	}
	return i.Snapshot(ctx)
}

func (i *Interactor) Snapshot(ctx context.Context) (predictiondto.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return predictiondto.Snapshot{}, err
	}
	session, revision, elapsed := i.svc.Current()
	return i.snapshot(session, revision, elapsed), nil
}

func (i *Interactor) Watch(ctx context.Context) (<-chan predictiondto.Snapshot, error) {
	if i.events == nil {
		return nil, fmt.Errorf("event source is not configured")
	}
	src := i.events.Subscribe(ctx)
	out := make(chan predictiondto.Snapshot, cap(src))
	go func() {
		defer close(out)
		for ev := range src {
			var elapsed time.Duration
			if ev.Session.Status == domain.StatusCalculating {
				elapsed = ev.At.Sub(ev.Session.StartedAt)
			}
			select {
			case out <- i.snapshot(ev.Session, ev.Revision, elapsed):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (i *Interactor) Close() error {
	return i.svc.Close()
}

func (i *Interactor) snapshot(session domain.Session, revision uint64, elapsed time.Duration) predictiondto.Snapshot {
	var progress float64
	switch session.Status {
	case domain.StatusCalculating:
		progress = domain.Progress(elapsed, i.svc.RevealAfter())
	case domain.StatusRevealed:
		progress = 1
	}
	return predictiondto.Snapshot{
		Status:         session.Status.String(),
		LoadingMessage: session.LoadingMessage,
		MessageIndex:   session.MessageIndex,
		MessageCount:   i.svc.MessageCount(),
		PredictedDate:  session.PredictedDate,
		RunID:          session.RunID,
		StartedAt:      session.StartedAt,
		Elapsed:        elapsed,
		Progress:       progress,
		Revision:       revision,
	}
}
