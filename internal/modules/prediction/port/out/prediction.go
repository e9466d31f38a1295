package out

import (
	"context"

	"whatdayisit/internal/modules/prediction/domain"
)

// Publisher receives every event while the sequencer holds its lock, so
// implementations must not block or call back into the sequencer.
type Publisher interface {
	Publish(event domain.Event)
}

type EventSource interface {
	Subscribe(ctx context.Context) <-chan domain.Event
}
