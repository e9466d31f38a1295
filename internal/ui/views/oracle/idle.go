package oracle

import (
	"github.com/charmbracelet/lipgloss"

	"whatdayisit/internal/ui/theme"
)

const idleBlurb = "Our advanced AI (Artificial Intuition) can predict exactly what day it will be in approximately 24 hours."

func (m Model) renderIdle() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		theme.Badge.Render("[ 31 ]"),
		"",
		theme.Title.Render("Unsure about the future?"),
		m.paragraph(theme.Muted, idleBlurb),
		"",
		theme.Button.Render("PREDICT NOW →"),
		theme.Muted.Render("enter"),
	)
}
