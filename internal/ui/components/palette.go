package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"whatdayisit/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(theme.Pink).
			Background(theme.White).
			Foreground(theme.Ink).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().Foreground(theme.Slate)
)

// Commands must stay in sync with the switch in app/model.go executePalette.
var Commands = []string{"predict", "reset", "help", "quit"}

// Palette is a one-line command prompt backed by bubbles/textinput. Tab
// completes the first matching command.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Prompt = ": "
	ti.Placeholder = strings.Join(Commands, ", ")
	ti.CharLimit = 32
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows the palette with an empty prompt and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			p.hide()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.hide()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "tab":
			if matches := p.matches(); len(matches) > 0 {
				p.input.SetValue(matches[0])
				p.input.CursorEnd()
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	lines := []string{theme.Title.Render("Ask the Oracle"), p.input.View()}
	if matches := p.matches(); len(matches) > 0 {
		lines = append(lines, "")
		for _, c := range matches {
			lines = append(lines, hintStyle.Render("  "+c))
		}
	}

	w := p.width
	if w < 20 {
		w = 40
	}
	return paletteStyle.Width(w - 2).Render(strings.Join(lines, "\n"))
}

func (p *Palette) hide() {
	p.visible = false
	p.input.Blur()
}

func (p Palette) matches() []string {
	prefix := strings.ToLower(strings.TrimSpace(p.input.Value()))
	var out []string
	for _, c := range Commands {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}
