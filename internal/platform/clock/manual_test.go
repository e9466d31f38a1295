package clock_test

import (
	"testing"
	"time"

	"whatdayisit/internal/platform/clock"
)

func TestManualFiresInDeadlineOrder(t *testing.T) {
	t.Parallel()
	start := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	clk := clock.NewManual(start)

	var order []string
	clk.AfterFunc(2*time.Second, func() { order = append(order, "b") })
	clk.AfterFunc(time.Second, func() { order = append(order, "a") })
	clk.AfterFunc(2*time.Second, func() { order = append(order, "c") })

	clk.Advance(1500 * time.Millisecond)
	if len(order) != 1 || order[0] != "a" {
		t.Fatalf("expected only a after 1.5s, got %v", order)
	}
	clk.Advance(time.Second)
	if got := order; len(got) != 3 || got[1] != "b" || got[2] != "c" {
		t.Fatalf("expected a,b,c, got %v", got)
	}
	if !clk.Now().Equal(start.Add(2500 * time.Millisecond)) {
		t.Fatalf("unexpected now: %s", clk.Now())
	}
	if clk.Pending() != 0 {
		t.Fatalf("expected no pending timers, got %d", clk.Pending())
	}
}

func TestManualNowInsideCallbackIsDeadline(t *testing.T) {
	t.Parallel()
	start := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	clk := clock.NewManual(start)

	var seen time.Time
	clk.AfterFunc(800*time.Millisecond, func() { seen = clk.Now() })
	clk.Advance(4 * time.Second)
	if !seen.Equal(start.Add(800 * time.Millisecond)) {
		t.Fatalf("callback saw %s", seen)
	}
}

func TestManualRescheduleDuringAdvance(t *testing.T) {
	t.Parallel()
	clk := clock.NewManual(time.Unix(0, 0))

	ticks := 0
	var tick func()
	tick = func() {
		ticks++
		clk.AfterFunc(time.Second, tick)
	}
	clk.AfterFunc(time.Second, tick)

	clk.Advance(3 * time.Second)
	if ticks != 3 {
		t.Fatalf("expected 3 ticks, got %d", ticks)
	}
	if clk.Pending() != 1 {
		t.Fatalf("expected the next tick pending, got %d", clk.Pending())
	}
}

func TestManualStopIsIdempotent(t *testing.T) {
	t.Parallel()
	clk := clock.NewManual(time.Unix(0, 0))

	fired := false
	timer := clk.AfterFunc(time.Second, func() { fired = true })
	if !timer.Stop() {
		t.Fatalf("first stop should report true")
	}
	if timer.Stop() {
		t.Fatalf("second stop should report false")
	}
	clk.Advance(2 * time.Second)
	if fired {
		t.Fatalf("stopped timer must not fire")
	}

	fires := clk.AfterFunc(time.Second, func() {})
	clk.Advance(time.Second)
	if fires.Stop() {
		t.Fatalf("stopping a fired timer should report false")
	}
}
