package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/stride-app/stride/internal/commandline"
	"github.com/stride-app/stride/internal/models"
)

const (
	indentPerLevel  = 2
	defaultBarWidth = 20
)

func barWidth(windowWidth int) int {
	if windowWidth > 0 && windowWidth < 60 {
		return 10
	}
	return defaultBarWidth
}

func (m Model) View() string {
	var b strings.Builder

	switch {
	case m.goals == nil:
		b.WriteString(dimStyle.Render("Connecting to strided..."))
		b.WriteString("\n")
	case m.activity == models.ActivityHelp:
		b.WriteString(m.helpView())
	default:
		b.WriteString(m.goalsView())
	}

	b.WriteString("\n")
	b.WriteString(m.commandlineView())
	return b.String()
}

func (m Model) goalsView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Goals"))
	b.WriteString("\n\n")

	if len(m.goals.goals) == 0 {
		b.WriteString(dimStyle.Render("No goals yet. Type :c <name> <effort> to create one."))
		b.WriteString("\n")
		return b.String()
	}

	for _, goal := range m.goals.goals {
		m.renderGoal(&b, goal, 0)
	}
	return b.String()
}

func (m Model) renderGoal(b *strings.Builder, goal models.PopulatedGoal, level int) {
	style := goalStyle
	if goal.Complete() {
		style = completedStyle
	}

	marker := "  "
	if m.goals.selected != nil && *m.goals.selected == goal.ID {
		marker = "> "
		style = selectedStyle
	}

	name := goal.Name
	if _, ok := m.goals.focused[goal.ID]; ok {
		name = focusedStyle.Render(name + " *")
	} else {
		name = style.Render(name)
	}

	bar := m.effortBar.ViewAs(effortRatio(goal))
	effort := dimStyle.Render(fmt.Sprintf("%d/%d", goal.EffortToDate, goal.EffortToComplete))

	line := fmt.Sprintf("%s%s%s  %s %s",
		strings.Repeat(" ", level*indentPerLevel), marker, name, bar, effort)
	if m.width > 0 {
		line = ansi.Truncate(line, m.width, "…")
	}
	b.WriteString(line)
	b.WriteString("\n")

	for _, child := range goal.Children {
		m.renderGoal(b, child, level+1)
	}
}

func effortRatio(goal models.PopulatedGoal) float64 {
	if goal.EffortToComplete == 0 {
		return 1
	}
	ratio := float64(goal.EffortToDate) / float64(goal.EffortToComplete)
	if ratio > 1 {
		ratio = 1
	}
	return ratio
}

// commandlineView renders the bottom bar. Colors come from the
// backend-owned display config so all clients of one daemon agree.
func (m Model) commandlineView() string {
	text := commandline.Render(m.cmdline)
	if text == "" {
		return dimStyle.Render("press : to enter a command, :h for help")
	}

	style := lipgloss.NewStyle().
		Background(terminalColor(m.display.BackgroundColor)).
		Foreground(terminalColor(m.display.FontColor))
	if _, isErr := m.cmdline.(commandline.Error); isErr {
		style = style.Bold(true)
	}
	if m.width > 0 {
		style = style.Width(m.width)
	}
	return style.Render(text)
}

func (m Model) helpView() string {
	rows := [][2]string{
		{"h / j / k / l", "move selection out / down / up / in"},
		{":c <name> <effort>", "create a goal"},
		{":r <name> <effort> <removed>", "refine the selected goal into a child"},
		{":e <effort>", "add effort to the selected goal"},
		{":re <effort>", "remove effort from the selected goal"},
		{":rs <effort>", "rescope the selected goal"},
		{":rn <name>", "rename the selected goal"},
		{":d", "delete the selected goal and its subtree"},
		{":f / :uf", "focus / unfocus the selected subtree"},
		{":fs / :ufs", "focus / unfocus the selected goal only"},
		{":dsf <px>", "set commandline font size"},
		{":dcb <color>", "set commandline background color"},
		{":dcf <color>", "set commandline font color"},
		{":export <path>", "export a PDF goal report"},
		{":g / :h", "switch to the goals / help view"},
		{":w", "save"},
		{":q", "quit"},
		{"q", "close this help view"},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Help"))
	b.WriteString("\n\n")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			helpKeyStyle.Render(fmt.Sprintf("%-30s", row[0])), row[1]))
	}
	return b.String()
}
