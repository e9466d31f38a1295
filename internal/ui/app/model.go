package app

import (
	"context"
	_ "embed"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	predictiondto "whatdayisit/internal/modules/prediction/dto"
	apperrors "whatdayisit/internal/platform/errors"
	"whatdayisit/internal/platform/markdown"
	"whatdayisit/internal/ui/components"
	"whatdayisit/internal/ui/theme"
	oracleview "whatdayisit/internal/ui/views/oracle"
)

const (
	Version       = "V 1.0.0"
	frameInterval = 100 * time.Millisecond
)

//go:embed about.md
var aboutPage string

// ─── ports ───────────────────────────────────────────────────────────────────

type predictionPort interface {
	Start(ctx context.Context) (predictiondto.StartOutput, error)
	Reset(ctx context.Context) (predictiondto.Snapshot, error)
	Snapshot(ctx context.Context) (predictiondto.Snapshot, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// SnapshotMsg carries a state change pushed from the prediction feed.
type SnapshotMsg struct{ Snapshot predictiondto.Snapshot }

type startedMsg struct {
	out predictiondto.StartOutput
	err error
}

type resetMsg struct {
	snap predictiondto.Snapshot
	err  error
}

type polledMsg struct {
	snap predictiondto.Snapshot
	err  error
}

type frameMsg time.Time

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Predict key.Binding
	Reset   key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Predict: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "predict")),
		Reset:   key.NewBinding(key.WithKeys("r", "enter"), key.WithHelp("r", "predict another")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Predict, k.Reset, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Predict, k.Reset},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It frames the oracle card, routes key
// presses to the prediction port and keeps the latest snapshot. The port owns
// all state transitions; this model only renders what it is told.
type Model struct {
	prediction predictionPort

	oracle  oracleview.Model
	keys    keyMap
	help    help.Model
	about   string
	palette components.Palette

	snapshot predictiondto.Snapshot
	framing  bool
	showHelp bool
	status   string
	width    int
	height   int
}

func NewModel(prediction predictionPort) Model {
	about := renderAbout(aboutPage)

	return Model{
		prediction: prediction,
		oracle:     oracleview.New(),
		keys:       defaultKeys(),
		help:       help.New(),
		about:      about,
		palette:    components.NewPalette(),
		snapshot:   predictiondto.Snapshot{Status: predictiondto.StatusIdle},
		status:     "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return m.pollCmd()
}

// Snapshot returns the state the model is currently rendering.
func (m Model) Snapshot() predictiondto.Snapshot { return m.snapshot }

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette takes all key presses while open. State and timer messages
	// still reach the model below.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, cmd
		}
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.palette.SetWidth(min(msg.Width-4, 48))
		m.oracle, _ = m.oracle.Update(msg)
		return m, nil

	case SnapshotMsg:
		cmds = append(cmds, m.applySnapshot(msg.Snapshot))

	case polledMsg:
		if msg.err != nil {
			m.status = "oracle unavailable: " + msg.err.Error()
			break
		}
		cmds = append(cmds, m.applySnapshot(msg.snap))

	case startedMsg:
		if msg.err != nil {
			m.status = describeRefusal(msg.err)
			break
		}
		m.status = "consulting the oracle"
		cmds = append(cmds, m.pollCmd())

	case resetMsg:
		if msg.err != nil {
			m.status = describeRefusal(msg.err)
			break
		}
		m.status = "ready"
		cmds = append(cmds, m.applySnapshot(msg.snap))

	case frameMsg:
		if m.snapshot.Status != predictiondto.StatusCalculating {
			m.framing = false
			break
		}
		cmds = append(cmds, m.pollCmd(), frameTick())

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = statusLine(m.snapshot.Status)

	case tea.KeyMsg:
		if m.showHelp {
			if key.Matches(msg, m.keys.Help) || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, m.keys.Palette):
			cmd := m.palette.Open()
			return m, cmd
		}
		cmd := m.actionFor(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.oracle, cmd = m.oracle.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// actionFor maps a key press to the action valid in the current status.
func (m *Model) actionFor(msg tea.KeyMsg) tea.Cmd {
	switch m.snapshot.Status {
	case predictiondto.StatusIdle:
		if key.Matches(msg, m.keys.Predict) {
			return m.startCmd()
		}
	case predictiondto.StatusRevealed:
		if key.Matches(msg, m.keys.Reset) {
			return m.resetCmd()
		}
	case predictiondto.StatusCalculating:
		if key.Matches(msg, m.keys.Predict) || key.Matches(msg, m.keys.Reset) {
			m.status = "the oracle cannot be rushed"
		}
	}
	return nil
}

// applySnapshot keeps the newest state. Older revisions can arrive after newer
// ones because pushes and polls travel separately.
func (m *Model) applySnapshot(s predictiondto.Snapshot) tea.Cmd {
	if s.Revision < m.snapshot.Revision {
		return nil
	}
	if s.Status != m.snapshot.Status {
		m.status = statusLine(s.Status)
	}
	m.snapshot = s
	cmd := m.oracle.SetSnapshot(s)
	if s.Status == predictiondto.StatusCalculating && !m.framing {
		m.framing = true
		return tea.Batch(cmd, frameTick())
	}
	return cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	var body string
	switch {
	case m.showHelp:
		body = lipgloss.JoinVertical(lipgloss.Left, m.about, m.help.FullHelpView(m.keys.FullHelp()))
	case m.palette.Visible():
		body = m.palette.View()
	default:
		body = m.oracle.View()
	}

	card := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		lipgloss.NewStyle().Padding(1, 2).Render(body),
		m.renderFooter(),
	)
	card = theme.Card.Render(card)

	page := lipgloss.JoinVertical(lipgloss.Center, card, m.renderStatusBar())
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, page,
			lipgloss.WithWhitespaceBackground(theme.Paper))
	}
	return page
}

func (m Model) cardWidth() int {
	w := lipgloss.Width(m.oracle.View()) + 4
	if w < 40 {
		w = 40
	}
	return w
}

func (m Model) renderHeader() string {
	title := "WHATDAYIS" + theme.HeaderAccent.Render("IT")
	bolt := "⚡"
	gap := m.cardWidth() - lipgloss.Width(title) - lipgloss.Width(bolt) - 4
	if gap < 1 {
		gap = 1
	}
	return theme.Header.Render(title + strings.Repeat(" ", gap) + bolt)
}

func (m Model) renderFooter() string {
	right := "SECURE CONNECTION"
	gap := m.cardWidth() - len(Version) - len(right) - 2
	if gap < 1 {
		gap = 1
	}
	return theme.Footer.Padding(0, 1).Render(Version + strings.Repeat(" ", gap) + right)
}

func (m Model) renderStatusBar() string {
	return theme.Muted.Render(m.status + "  ·  " + m.help.ShortHelpView(m.keys.ShortHelp()))
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "":
		m.status = "ready"
		return m, nil
	case "predict":
		return m, m.startCmd()
	case "reset":
		return m, m.resetCmd()
	case "help":
		m.showHelp = true
		return m, nil
	case "quit":
		return m, tea.Quit
	default:
		m.status = "unknown command: " + input
		return m, nil
	}
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// renderAbout renders the embedded help page. A page that fails to parse or
// render is shown as raw text.
func renderAbout(page string) string {
	doc, err := markdown.Parse(page)
	if err != nil {
		return page
	}
	width := doc.Width
	if width <= 0 {
		width = 60
	}
	body := doc.Body
	if r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("light"),
		glamour.WithWordWrap(width),
	); err == nil {
		if rendered, err := r.Render(doc.Body); err == nil {
			body = rendered
		}
	}
	if doc.Title == "" {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, theme.Badge.Render(doc.Title), body)
}

func statusLine(status string) string {
	switch status {
	case predictiondto.StatusCalculating:
		return "consulting the oracle"
	case predictiondto.StatusRevealed:
		return "the oracle has spoken"
	default:
		return "ready"
	}
}

func describeRefusal(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrSequenceActive):
		return "the oracle is already busy"
	case errors.Is(err, apperrors.ErrNotRevealed):
		return "nothing to reset yet"
	case errors.Is(err, apperrors.ErrClosed):
		return "the oracle has left the building"
	default:
		return "oracle error: " + err.Error()
	}
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) startCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.prediction.Start(context.Background())
		return startedMsg{out: out, err: err}
	}
}

func (m Model) resetCmd() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.prediction.Reset(context.Background())
		return resetMsg{snap: snap, err: err}
	}
}

func (m Model) pollCmd() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.prediction.Snapshot(context.Background())
		return polledMsg{snap: snap, err: err}
	}
}
