// Package oracle renders the three screens of the prediction sequence. Each
// screen is a function of the latest snapshot; the model only adds the
// spinner and progress bar animation state.
package oracle

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	predictiondto "whatdayisit/internal/modules/prediction/dto"
	"whatdayisit/internal/ui/theme"
)

const (
	maxContentWidth = 56
	pulseFrames     = 5
)

// Model is the Bubble Tea model for the oracle card body.
type Model struct {
	spinner  spinner.Model
	bar      progress.Model
	snapshot predictiondto.Snapshot
	frame    int
	width    int
}

func New() Model {
	sp := spinner.New()
	sp.Spinner = spinner.Globe
	sp.Style = lipgloss.NewStyle().Foreground(theme.Pink)

	bar := progress.New(
		progress.WithSolidFill(string(theme.Pink)),
		progress.WithoutPercentage(),
		progress.WithWidth(maxContentWidth-8),
	)

	return Model{spinner: sp, bar: bar, snapshot: predictiondto.Snapshot{Status: predictiondto.StatusIdle}}
}

// Init is a no-op: the spinner only runs while calculating.
func (m Model) Init() tea.Cmd { return nil }

// Snapshot returns the state currently rendered.
func (m Model) Snapshot() predictiondto.Snapshot { return m.snapshot }

// SetSnapshot swaps the rendered state. Entering the calculating screen
// returns the command that starts the spinner.
func (m *Model) SetSnapshot(s predictiondto.Snapshot) tea.Cmd {
	entering := s.Status == predictiondto.StatusCalculating && m.snapshot.Status != predictiondto.StatusCalculating
	m.snapshot = s
	if entering {
		m.frame = 0
		return m.spinner.Tick
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = m.contentWidth() - 8
		if m.bar.Width < 10 {
			m.bar.Width = 10
		}

	case spinner.TickMsg:
		if m.snapshot.Status != predictiondto.StatusCalculating {
			return m, nil
		}
		m.frame++
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	switch m.snapshot.Status {
	case predictiondto.StatusCalculating:
		return m.renderCalculating()
	case predictiondto.StatusRevealed:
		return m.renderRevealed()
	default:
		return m.renderIdle()
	}
}

func (m Model) contentWidth() int {
	w := m.width - 4
	if w <= 0 || w > maxContentWidth {
		w = maxContentWidth
	}
	return w
}

func (m Model) paragraph(style lipgloss.Style, text string) string {
	return style.Width(m.contentWidth()).Align(lipgloss.Center).Render(text)
}
