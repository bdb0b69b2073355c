package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Name      string
	Base      lipgloss.Style
	Border    lipgloss.Color
	Header    lipgloss.Style
	StepDone  lipgloss.Style
	StepNow   lipgloss.Style
	StepTodo  lipgloss.Style
	Project   lipgloss.Style
	Selected  lipgloss.Style
	Cursor    lipgloss.Style
	Amount    lipgloss.Style
	Input     lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Demo      lipgloss.Style
	Focused   lipgloss.Style
	Dim       lipgloss.Style
	Highlight lipgloss.Style
}

var Themes = map[string]Theme{
	"default": {
		Name:      "Default",
		Base:      lipgloss.NewStyle().Margin(1, 2),
		Border:    lipgloss.Color("35"),
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		StepDone:  lipgloss.NewStyle().Foreground(lipgloss.Color("35")),
		StepNow:   lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("28")).Bold(true).Padding(0, 1),
		StepTodo:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Project:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Selected:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		Cursor:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Amount:    lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		Input:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("42")).Padding(0, 1).Width(32),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		Demo:      lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214")).Padding(0, 1),
		Focused:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("35")),
	},
	"mono": {
		Name:      "Mono",
		Base:      lipgloss.NewStyle().Margin(1, 2),
		Border:    lipgloss.Color("250"),
		Header:    lipgloss.NewStyle().Bold(true),
		StepDone:  lipgloss.NewStyle().Faint(true),
		StepNow:   lipgloss.NewStyle().Reverse(true).Bold(true).Padding(0, 1),
		StepTodo:  lipgloss.NewStyle().Faint(true),
		Project:   lipgloss.NewStyle(),
		Selected:  lipgloss.NewStyle().Bold(true),
		Cursor:    lipgloss.NewStyle().Bold(true),
		Amount:    lipgloss.NewStyle().Bold(true),
		Input:     lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).Width(32),
		Warning:   lipgloss.NewStyle().Underline(true),
		Error:     lipgloss.NewStyle().Bold(true).Underline(true),
		Success:   lipgloss.NewStyle().Bold(true),
		Demo:      lipgloss.NewStyle().Reverse(true).Padding(0, 1),
		Focused:   lipgloss.NewStyle().Bold(true),
		Dim:       lipgloss.NewStyle().Faint(true),
		Highlight: lipgloss.NewStyle().Underline(true),
	},
}

// CurrentTheme holds the currently active theme.
var CurrentTheme = Themes["default"]

// Frame wraps a wizard screen.
func Frame() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(CurrentTheme.Border).
		Padding(1, 2)
}

func SetTheme(name string) {
	if t, ok := Themes[name]; ok {
		CurrentTheme = t
	}
}
