package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	goalStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	focusedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	helpKeyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

// namedColors maps the color names the backend config accepts to
// terminal colors. Hex values pass through untouched.
var namedColors = map[string]string{
	"black":   "0",
	"red":     "1",
	"green":   "2",
	"yellow":  "3",
	"blue":    "4",
	"magenta": "5",
	"cyan":    "6",
	"white":   "7",
	"gray":    "245",
	"grey":    "245",
}

func terminalColor(name string) lipgloss.Color {
	if ansi, ok := namedColors[name]; ok {
		return lipgloss.Color(ansi)
	}
	return lipgloss.Color(name)
}
