package oracle

import (
	"github.com/charmbracelet/lipgloss"

	"whatdayisit/internal/ui/theme"
)

const disclaimer = "*Prediction accuracy 99.9%. Void where prohibited by time travel laws."

func (m Model) renderRevealed() string {
	card := theme.Oracle.Render(lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Faint(true).Render("THE ORACLE DECLARES"),
		"",
		m.snapshot.PredictedDate,
	))

	return lipgloss.JoinVertical(lipgloss.Center,
		theme.Sparkle.Render("✦       ✧"),
		card,
		theme.Hot.Render("✧       ✦"),
		"",
		m.paragraph(theme.Muted.Italic(true), disclaimer),
		"",
		theme.Link.Render("↻ Predict Another"),
		theme.Muted.Render("r"),
	)
}
