package app

import (
	"context"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	predictiondto "whatdayisit/internal/modules/prediction/dto"
	apperrors "whatdayisit/internal/platform/errors"
	"whatdayisit/internal/ui/components"
)

type fakePrediction struct {
	mu     sync.Mutex
	starts int
	resets int
	snap   predictiondto.Snapshot
	err    error
}

func (f *fakePrediction) Start(context.Context) (predictiondto.StartOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts++
	if f.err != nil {
		return predictiondto.StartOutput{}, f.err
	}
	return predictiondto.StartOutput{RunID: "run-1"}, nil
}

func (f *fakePrediction) Reset(context.Context) (predictiondto.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
	if f.err != nil {
		return predictiondto.Snapshot{}, f.err
	}
	return predictiondto.Snapshot{Status: predictiondto.StatusIdle, Revision: f.snap.Revision + 1}, nil
}

func (f *fakePrediction) Snapshot(context.Context) (predictiondto.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap, f.err
}

func keyRune(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

var enterKey = tea.KeyMsg{Type: tea.KeyEnter}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out, cmd
}

func TestEnterWhileIdleStartsPrediction(t *testing.T) {
	fake := &fakePrediction{}
	m := NewModel(fake)

	m, cmd := update(t, m, enterKey)
	if cmd == nil {
		t.Fatalf("expected start command")
	}
	msg := cmd()
	if _, ok := msg.(startedMsg); !ok {
		t.Fatalf("expected startedMsg, got %T", msg)
	}
	if fake.starts != 1 {
		t.Fatalf("expected one start, got %d", fake.starts)
	}

	m, _ = update(t, m, msg)
	if m.status != "consulting the oracle" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestKeysDuringCalculatingAreIgnored(t *testing.T) {
	fake := &fakePrediction{}
	m := NewModel(fake)
	m, _ = update(t, m, SnapshotMsg{Snapshot: predictiondto.Snapshot{Status: predictiondto.StatusCalculating, Revision: 1}})

	m, cmd := update(t, m, enterKey)
	if cmd != nil {
		t.Fatalf("enter while calculating must not issue a command")
	}
	m, cmd = update(t, m, keyRune('r'))
	if cmd != nil {
		t.Fatalf("r while calculating must not issue a command")
	}
	if fake.starts != 0 || fake.resets != 0 {
		t.Fatalf("port must not be called while calculating, starts=%d resets=%d", fake.starts, fake.resets)
	}
	if m.status != "the oracle cannot be rushed" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestResetFromRevealed(t *testing.T) {
	fake := &fakePrediction{snap: predictiondto.Snapshot{Status: predictiondto.StatusRevealed, Revision: 6}}
	m := NewModel(fake)
	m, _ = update(t, m, SnapshotMsg{Snapshot: fake.snap})

	m, cmd := update(t, m, keyRune('r'))
	if cmd == nil {
		t.Fatalf("expected reset command")
	}
	m, _ = update(t, m, cmd())
	if fake.resets != 1 {
		t.Fatalf("expected one reset, got %d", fake.resets)
	}
	if got := m.Snapshot().Status; got != predictiondto.StatusIdle {
		t.Fatalf("expected idle after reset, got %s", got)
	}
}

func TestStaleSnapshotIsIgnored(t *testing.T) {
	m := NewModel(&fakePrediction{})
	m, _ = update(t, m, SnapshotMsg{Snapshot: predictiondto.Snapshot{Status: predictiondto.StatusRevealed, PredictedDate: "Tuesday, June 11, 2024", Revision: 6}})
	m, _ = update(t, m, polledMsg{snap: predictiondto.Snapshot{Status: predictiondto.StatusCalculating, Revision: 4}})

	if got := m.Snapshot(); got.Status != predictiondto.StatusRevealed || got.Revision != 6 {
		t.Fatalf("stale poll replaced newer state: %+v", got)
	}
}

func TestFrameLoopStopsAfterReveal(t *testing.T) {
	m := NewModel(&fakePrediction{})
	m, cmd := update(t, m, SnapshotMsg{Snapshot: predictiondto.Snapshot{Status: predictiondto.StatusCalculating, Revision: 1}})
	if cmd == nil || !m.framing {
		t.Fatalf("entering calculating must start the frame loop")
	}

	m, _ = update(t, m, SnapshotMsg{Snapshot: predictiondto.Snapshot{Status: predictiondto.StatusRevealed, Revision: 6}})
	m, cmd = update(t, m, frameMsg{})
	if m.framing {
		t.Fatalf("frame loop must stop outside calculating")
	}
	if cmd != nil {
		if msg := cmd(); msg != nil {
			t.Fatalf("expected no follow-up frame, got %T", msg)
		}
	}
}

func TestRefusalIsReportedInStatusBar(t *testing.T) {
	m := NewModel(&fakePrediction{})
	m, _ = update(t, m, startedMsg{err: apperrors.ErrSequenceActive})
	if !strings.Contains(m.View(), "the oracle is already busy") {
		t.Fatalf("status bar missing refusal:\n%s", m.View())
	}
}

func TestPalettePredictCommand(t *testing.T) {
	fake := &fakePrediction{}
	m := NewModel(fake)

	m, _ = update(t, m, keyRune(':'))
	if !m.palette.Visible() {
		t.Fatalf("palette should open on ':'")
	}
	for _, r := range "predict" {
		m, _ = update(t, m, keyRune(r))
	}
	m, cmd := update(t, m, enterKey)
	if cmd == nil {
		t.Fatalf("expected palette submit command")
	}
	submit, ok := cmd().(components.PaletteSubmitMsg)
	if !ok || submit.Input != "predict" {
		t.Fatalf("unexpected palette message %#v", submit)
	}

	m, cmd = update(t, m, submit)
	if cmd == nil {
		t.Fatalf("expected start command from palette")
	}
	cmd()
	if fake.starts != 1 {
		t.Fatalf("expected palette to start a prediction, starts=%d", fake.starts)
	}
	_ = m
}

func TestQuitKey(t *testing.T) {
	m := NewModel(&fakePrediction{})
	_, cmd := update(t, m, keyRune('q'))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestViewFramesCard(t *testing.T) {
	m := NewModel(&fakePrediction{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	view := m.View()
	for _, want := range []string{"WHATDAYIS", "IT", Version, "SECURE CONNECTION", "Unsure about the future?"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}

	m, _ = update(t, m, keyRune('?'))
	for _, want := range []string{"About the Oracle", "predict"} {
		if !strings.Contains(m.View(), want) {
			t.Fatalf("help overlay missing %q:\n%s", want, m.View())
		}
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showHelp {
		t.Fatalf("esc should close help")
	}
}

func TestRevealWhilePaletteOpenIsNotLost(t *testing.T) {
	fake := &fakePrediction{}
	m := NewModel(fake)
	m, _ = update(t, m, SnapshotMsg{Snapshot: predictiondto.Snapshot{Status: predictiondto.StatusCalculating, Revision: 2}})

	m, _ = update(t, m, keyRune(':'))
	if !m.palette.Visible() {
		t.Fatalf("palette should open on ':'")
	}
	m, _ = update(t, m, SnapshotMsg{Snapshot: predictiondto.Snapshot{
		Status:        predictiondto.StatusRevealed,
		PredictedDate: "Tuesday, June 11, 2024",
		Revision:      6,
	}})
	m, _ = update(t, m, frameMsg{})
	if got := m.Snapshot().Status; got != predictiondto.StatusRevealed {
		t.Fatalf("reveal dropped while palette open, status=%s", got)
	}
	if m.framing {
		t.Fatalf("frame loop must stop once revealed")
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected palette cancel command")
	}
	m, _ = update(t, m, cmd())
	if m.palette.Visible() {
		t.Fatalf("esc should close the palette")
	}
	view := m.View()
	if !strings.Contains(view, "THE ORACLE DECLARES") || strings.Contains(view, "PROCESSING") {
		t.Fatalf("expected revealed screen after esc:\n%s", view)
	}

	_, cmd = update(t, m, keyRune('r'))
	if cmd == nil {
		t.Fatalf("expected reset command from revealed screen")
	}
	cmd()
	if fake.resets != 1 {
		t.Fatalf("expected one reset, got %d", fake.resets)
	}
}

func TestStatusBarFollowsSnapshotStatus(t *testing.T) {
	m := NewModel(&fakePrediction{})
	m, _ = update(t, m, startedMsg{out: predictiondto.StartOutput{RunID: "run-1"}})
	m, _ = update(t, m, SnapshotMsg{Snapshot: predictiondto.Snapshot{Status: predictiondto.StatusCalculating, Revision: 1}})
	m, _ = update(t, m, SnapshotMsg{Snapshot: predictiondto.Snapshot{Status: predictiondto.StatusRevealed, Revision: 6}})

	if m.status != "the oracle has spoken" {
		t.Fatalf("unexpected status after reveal %q", m.status)
	}
	if strings.Contains(m.View(), "consulting the oracle") {
		t.Fatalf("revealed screen still reports consulting:\n%s", m.View())
	}

	m, _ = update(t, m, resetMsg{snap: predictiondto.Snapshot{Status: predictiondto.StatusIdle, Revision: 7}})
	if m.status != "ready" {
		t.Fatalf("unexpected status after reset %q", m.status)
	}
}

func TestViewFillsWindow(t *testing.T) {
	m := NewModel(&fakePrediction{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	lines := strings.Split(m.View(), "\n")
	if len(lines) != 40 {
		t.Fatalf("expected 40 rows, got %d", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 100 {
			t.Fatalf("row %d is %d cells wide, want 100", i, w)
		}
	}
}
