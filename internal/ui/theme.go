// Package ui holds the lipgloss styles, theme switching, and the small
// rendering helpers shared by the CLI commands and the interactive UI.
package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + frame style.
// All rendering helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Done, Help                          lipgloss.Style
	Frame                                         lipgloss.Style
	BoxUnchecked, BoxChecked                      string
	SymDone, SymPending                           string
	BarFilled, BarEmpty                           string
}

var current Theme

func init() { SetTheme("classic") }

var asciiBorder = lipgloss.Border{
	Top: "-", Bottom: "-", Left: "|", Right: "|",
	TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
}

// SetTheme activates a named theme. Unknown names fall back to classic.
// NO_COLOR in the environment forces mono.
func SetTheme(name string) {
	if os.Getenv("NO_COLOR") != "" {
		name = "mono"
	}
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:    lipgloss.NewStyle().Faint(true),
			Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Pending:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
			Done:     lipgloss.NewStyle().Faint(true).Strikethrough(true),
			Help:     lipgloss.NewStyle().Faint(true),
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(0, 1),
			BoxUnchecked: "◻", BoxChecked: "◼",
			SymDone: "✔", SymPending: "•",
			BarFilled: "█", BarEmpty: "░",
		}
	case "mono":
		current = Theme{
			Title:    lipgloss.NewStyle(),
			Muted:    lipgloss.NewStyle(),
			Accent:   lipgloss.NewStyle(),
			Success:  lipgloss.NewStyle(),
			Error:    lipgloss.NewStyle(),
			Pending:  lipgloss.NewStyle(),
			Selected: lipgloss.NewStyle(),
			Done:     lipgloss.NewStyle(),
			Help:     lipgloss.NewStyle(),
			Frame: lipgloss.NewStyle().
				Border(asciiBorder).
				Padding(0, 1),
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			SymDone: "x", SymPending: "-",
			BarFilled: "#", BarEmpty: "-",
		}
	default: // classic
		current = Theme{
			Title:    lipgloss.NewStyle().Bold(true),
			Muted:    lipgloss.NewStyle().Faint(true),
			Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Pending:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
			Done:     lipgloss.NewStyle().Faint(true).Strikethrough(true),
			Help:     lipgloss.NewStyle().Faint(true),
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(0, 1),
			BoxUnchecked: "☐", BoxChecked: "☑",
			SymDone: "✔", SymPending: "•",
			BarFilled: "█", BarEmpty: "░",
		}
	}
}

// Current returns the active theme.
func Current() Theme { return current }
