package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Name        string
	Base        lipgloss.Style
	Border      lipgloss.Color
	Header      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Banner      lipgloss.Style
	ErrorBanner lipgloss.Style
	Coach       lipgloss.Style
	UserMsg     lipgloss.Style
	Pending     lipgloss.Style
	DoneTask    lipgloss.Style
	Focused     lipgloss.Style
	Dim         lipgloss.Style
	Highlight   lipgloss.Style
	QuotaOK     lipgloss.Style
	QuotaWarn   lipgloss.Style
	QuotaCrit   lipgloss.Style
}

var Themes = map[string]Theme{
	"default": {
		Name:        "Default",
		Base:        lipgloss.NewStyle().Margin(1, 2),
		Border:      lipgloss.Color("63"),
		Header:      lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		TabActive:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Underline(true),
		TabInactive: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Banner:      lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		ErrorBanner: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Coach:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		UserMsg:     lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
		Pending:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
		DoneTask:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true),
		Focused:     lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Dim:         lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
		QuotaOK:     lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		QuotaWarn:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		QuotaCrit:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	},
	"dracula": {
		Name:        "Dracula",
		Base:        lipgloss.NewStyle().Margin(1, 2),
		Border:      lipgloss.Color("62"),
		Header:      lipgloss.NewStyle().Foreground(lipgloss.Color("50")).Bold(true),
		TabActive:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true).Underline(true),
		TabInactive: lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Banner:      lipgloss.NewStyle().Foreground(lipgloss.Color("120")),
		ErrorBanner: lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Coach:       lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		UserMsg:     lipgloss.NewStyle().Foreground(lipgloss.Color("117")),
		Pending:     lipgloss.NewStyle().Foreground(lipgloss.Color("60")).Italic(true),
		DoneTask:    lipgloss.NewStyle().Foreground(lipgloss.Color("60")).Strikethrough(true),
		Focused:     lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		Dim:         lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
		Highlight:   lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
		QuotaOK:     lipgloss.NewStyle().Foreground(lipgloss.Color("120")),
		QuotaWarn:   lipgloss.NewStyle().Foreground(lipgloss.Color("215")).Bold(true),
		QuotaCrit:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
	},
}

// CurrentTheme holds the currently active theme.
// We initialize it to default to avoid nil pointer dereferences.
var CurrentTheme = Themes["default"]

func SetTheme(name string) {
	if t, ok := Themes[name]; ok {
		CurrentTheme = t
	}
}
