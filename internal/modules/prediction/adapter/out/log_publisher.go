package out

import (
	"go.uber.org/zap"

	"whatdayisit/internal/modules/prediction/domain"
	predictionout "whatdayisit/internal/modules/prediction/port/out"
)

// ZapPublisher writes one debug entry per state change.
type ZapPublisher struct {
	log *zap.Logger
}

func NewZapPublisher(log *zap.Logger) predictionout.Publisher {
	if log == nil {
		log = zap.NewNop()
	}
	return ZapPublisher{log: log.Named("events")}
}

func (p ZapPublisher) Publish(event domain.Event) {
	p.log.Debug("state change",
		zap.String("kind", string(event.Kind)),
		zap.Uint64("revision", event.Revision),
		zap.Stringer("status", event.Session.Status),
		zap.String("run_id", event.Session.RunID),
		zap.Int("index", event.Session.MessageIndex),
	)
}

type multiPublisher []predictionout.Publisher

// Fanout publishes to each non-nil publisher in order.
func Fanout(publishers ...predictionout.Publisher) predictionout.Publisher {
	out := make(multiPublisher, 0, len(publishers))
	for _, p := range publishers {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

func (m multiPublisher) Publish(event domain.Event) {
	for _, p := range m {
		p.Publish(event)
	}
}
