package domain

import "time"

const (
	DefaultTickInterval = 800 * time.Millisecond
	DefaultRevealAfter  = 4 * time.Second

	// DateLayout renders the long-form date, e.g. "Tuesday, June 11, 2024".
	DateLayout = "Monday, January 2, 2006"
)

var flavorText = []string{
	"Consulting the temporal oracles...",
	"Adjusting for leap seconds...",
	"Aligning planetary retrograde...",
	"Parsing the space-time continuum...",
	"Adding 24 hours to 'Now'...",
}

// FlavorText returns the stock loading messages in display order.
func FlavorText() []string {
	out := make([]string, len(flavorText))
	copy(out, flavorText)
	return out
}

// MessageAt returns the index and text of the message visible after elapsed
// time in the calculating phase. It sticks on the last message once the list
// runs out, and returns -1 for an empty list.
func MessageAt(messages []string, elapsed, tick time.Duration) (int, string) {
	if len(messages) == 0 {
		return -1, ""
	}
	idx := 0
	if elapsed > 0 && tick > 0 {
		idx = int(elapsed / tick)
	}
	if idx >= len(messages) {
		idx = len(messages) - 1
	}
	return idx, messages[idx]
}

// Tomorrow returns midnight of the calendar day after now, in loc. A nil loc
// uses now's own location.
func Tomorrow(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = now.Location()
	}
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, loc)
}

func FormatPrediction(day time.Time) string {
	return day.Format(DateLayout)
}

// Progress is the completed fraction of the calculating phase, clamped to [0, 1].
func Progress(elapsed, total time.Duration) float64 {
	if total <= 0 || elapsed >= total {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / float64(total)
}
