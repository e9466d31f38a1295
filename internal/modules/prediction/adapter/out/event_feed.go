package out

import (
	"context"
	"sync"

	"whatdayisit/internal/modules/prediction/domain"
	predictionout "whatdayisit/internal/modules/prediction/port/out"
)

const defaultFeedBuffer = 16

// EventFeed fans published events out to subscribers. Publish never blocks:
// a subscriber whose buffer is full loses its oldest pending event.
type EventFeed struct {
	mu     sync.Mutex
	buffer int
	subs   map[chan domain.Event]struct{}
}

func NewEventFeed(buffer int) *EventFeed {
	if buffer <= 0 {
		buffer = defaultFeedBuffer
	}
	return &EventFeed{buffer: buffer, subs: map[chan domain.Event]struct{}{}}
}

// Subscribe returns a channel that receives events published after the call.
// The channel is closed once ctx is done.
func (f *EventFeed) Subscribe(ctx context.Context) <-chan domain.Event {
	ch := make(chan domain.Event, f.buffer)

	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()

	go func() {
		<-ctx.Done()
		f.mu.Lock()
		delete(f.subs, ch)
		close(ch)
		f.mu.Unlock()
	}()
	return ch
}

func (f *EventFeed) Publish(event domain.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs {
		select {
		case ch <- event:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribers reports the number of live subscriptions.
func (f *EventFeed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

var (
	_ predictionout.Publisher   = (*EventFeed)(nil)
	_ predictionout.EventSource = (*EventFeed)(nil)
)
