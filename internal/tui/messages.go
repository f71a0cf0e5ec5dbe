package tui

import tea "github.com/charmbracelet/bubbletea"

// View identifies a top-level screen behind the tab bar.
type View int

const (
	ViewDashboard View = iota
	ViewGoals
	ViewChat
	ViewCheckin
	ViewInsights
	ViewAnalytics
	ViewProfile
	ViewAdmin
)

var viewNames = map[View]string{
	ViewDashboard: "Dashboard",
	ViewGoals:     "Goals",
	ViewChat:      "Chat",
	ViewCheckin:   "Check-in",
	ViewInsights:  "Insights",
	ViewAnalytics: "Analytics",
	ViewProfile:   "Profile",
	ViewAdmin:     "Admin",
}

// cmdOf wraps a plain message into a command.
func cmdOf(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
