package theme

import "github.com/charmbracelet/lipgloss"

var (
	Ink    = lipgloss.Color("#000000")
	Paper  = lipgloss.Color("#f4f4f0")
	White  = lipgloss.Color("#ffffff")
	Pink   = lipgloss.Color("#ff90e8")
	Teal   = lipgloss.Color("#2a9d8f")
	Yellow = lipgloss.Color("#fde047")
	Blue   = lipgloss.Color("#3b82f6")
	Gray   = lipgloss.Color("#9ca3af")
	Slate  = lipgloss.Color("#4b5563")

	Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(Ink).
		Background(White).
		Foreground(Ink)

	Header = lipgloss.NewStyle().
		Background(Pink).
		Foreground(Ink).
		Bold(true).
		Italic(true).
		Padding(0, 2)

	HeaderAccent = lipgloss.NewStyle().Background(Pink).Foreground(White).Bold(true).Italic(true)

	Footer = lipgloss.NewStyle().Foreground(Gray).Bold(true)

	Title = lipgloss.NewStyle().Foreground(Ink).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Slate)
	Hot   = lipgloss.NewStyle().Foreground(Pink).Bold(true)

	Badge = lipgloss.NewStyle().
		Background(Teal).
		Foreground(White).
		Bold(true).
		Padding(0, 2)

	Button = lipgloss.NewStyle().
		Background(Ink).
		Foreground(White).
		Bold(true).
		Padding(0, 3).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Pink).
		BorderBottom(true).
		BorderRight(true)

	Link = lipgloss.NewStyle().Foreground(Ink).Bold(true).Underline(true)

	Flavor = lipgloss.NewStyle().
		Background(Yellow).
		Foreground(Ink).
		Padding(0, 1)

	Oracle = lipgloss.NewStyle().
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(Ink).
		Background(Blue).
		Foreground(White).
		Bold(true).
		Padding(1, 3).
		Align(lipgloss.Center)

	Sparkle = lipgloss.NewStyle().Foreground(Yellow).Bold(true)
)
