package oracle

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"whatdayisit/internal/ui/theme"
)

func (m Model) renderCalculating() string {
	title := theme.Title
	if (m.frame/pulseFrames)%2 == 1 {
		title = title.Faint(true)
	}

	step := ""
	if m.snapshot.MessageCount > 0 {
		step = fmt.Sprintf("%d/%d", m.snapshot.MessageIndex+1, m.snapshot.MessageCount)
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		m.spinner.View(),
		"",
		title.Render("PROCESSING"),
		theme.Flavor.Render(m.snapshot.LoadingMessage),
		"",
		m.bar.ViewAs(m.snapshot.Progress),
		theme.Muted.Render(step),
	)
}
