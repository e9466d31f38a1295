package bootstrap

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	predictioninadapter "whatdayisit/internal/modules/prediction/adapter/in"
	predictionoutadapter "whatdayisit/internal/modules/prediction/adapter/out"
	predictionin "whatdayisit/internal/modules/prediction/port/in"
	predictionservice "whatdayisit/internal/modules/prediction/service"
	predictionusecase "whatdayisit/internal/modules/prediction/usecase"
	"whatdayisit/internal/platform/clock"
	"whatdayisit/internal/platform/config"
	"whatdayisit/internal/platform/id"
	uiapp "whatdayisit/internal/ui/app"
)

const feedBuffer = 32

type App struct {
	PredictionCLI predictioninadapter.CLIHandler
	PredictionTUI predictioninadapter.TUIHandler

	usecase predictionin.Usecase
	log     *zap.Logger
}

type Option func(*options)

type options struct {
	clock clock.Clock
	ids   id.Generator
}

// WithClock swaps the wall clock, mainly for tests.
func WithClock(clk clock.Clock) Option {
	return func(o *options) { o.clock = clk }
}

func WithIDGenerator(ids id.Generator) Option {
	return func(o *options) { o.ids = ids }
}

func New(cfg config.Config, log *zap.Logger, opts ...Option) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{clock: clock.SystemClock{}, ids: id.UUID{}}
	for _, opt := range opts {
		opt(&o)
	}

	feed := predictionoutadapter.NewEventFeed(feedBuffer)
	publisher := predictionoutadapter.Fanout(predictionoutadapter.NewZapPublisher(log), feed)

	seq := predictionservice.NewSequencer(o.clock, o.ids, publisher,
		predictionservice.WithTickInterval(cfg.TickInterval),
		predictionservice.WithRevealAfter(cfg.RevealAfter),
		predictionservice.WithMessages(cfg.Messages),
		predictionservice.WithLocation(cfg.Location()),
		predictionservice.WithLogger(log.Named("sequencer")),
	)
	if drift := cfg.TimingDrift(seq.MessageCount()); drift != 0 {
		log.Warn("reveal does not line up with the last message",
			zap.Duration("tick", cfg.TickInterval),
			zap.Duration("reveal_after", cfg.RevealAfter),
			zap.Int("messages", seq.MessageCount()),
			zap.Duration("drift", drift),
		)
	}

	uc := predictionusecase.NewInteractor(seq, feed, log.Named("usecase"))
	return &App{
		PredictionCLI: predictioninadapter.NewCLIHandler(uc),
		PredictionTUI: predictioninadapter.NewTUIHandler(uc),
		usecase:       uc,
		log:           log,
	}, nil
}

// Close stops the sequencer timers. It is safe to call more than once.
func (a *App) Close() error {
	return a.usecase.Close()
}

// RunTUI runs the Bubble Tea program and forwards pushed snapshots to it
// until the program exits or ctx is cancelled.
func RunTUI(ctx context.Context, app *App) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	updates, err := app.PredictionTUI.Watch(ctx)
	if err != nil {
		return err
	}

	program := tea.NewProgram(uiapp.NewModel(app.PredictionTUI), tea.WithAltScreen(), tea.WithContext(ctx))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	})
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case snap, ok := <-updates:
				if !ok {
					return nil
				}
				program.Send(uiapp.SnapshotMsg{Snapshot: snap})
			}
		}
	})

	err = g.Wait()
	app.log.Debug("tui exited", zap.Error(err))
	return err
}
