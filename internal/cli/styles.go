package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles render plain text unless w is a color terminal.
type styles struct {
	Title   lipgloss.Style
	Faint   lipgloss.Style
	Success lipgloss.Style
}

func newStyles(w io.Writer) styles {
	base := lipgloss.NewRenderer(w).NewStyle()

	return styles{
		Title:   base.Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		Faint:   base.Faint(true),
		Success: base.Foreground(lipgloss.Color("#22C55E")),
	}
}
