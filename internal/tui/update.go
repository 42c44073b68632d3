package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stride-app/stride/internal/commandline"
	"github.com/stride-app/stride/internal/config"
	"github.com/stride-app/stride/internal/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.effortBar.Width = barWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case refreshMsg:
		if msg.state != nil {
			m = m.applySnapshot(*msg.state)
		}
		return m, nil

	case dispatchErrMsg:
		m.cmdline = commandline.Error{Message: msg.err.Error()}
		return m, nil
	}

	return m, nil
}

// handleKey dispatches side effects from the pre-transition commandline
// state, then advances the commandline reducer. The order matters: the
// buffer submitted on enter is the one that was on screen when the key
// was pressed.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	var cmd tea.Cmd
	if typing, ok := m.cmdline.(commandline.Typing); ok {
		if key == "enter" {
			content := strings.TrimPrefix(typing.Content, commandline.Marker)
			switch {
			case content == "q":
				return m, tea.Quit
			case content != "":
				cmd = m.submitCmd(content)
			}
		}
	} else {
		switch key {
		case config.KeyCursorOut:
			cmd = m.cursorCmd(models.CursorOut)
		case config.KeyCursorDown:
			cmd = m.cursorCmd(models.CursorDown)
		case config.KeyCursorUp:
			cmd = m.cursorCmd(models.CursorUp)
		case config.KeyCursorIn:
			cmd = m.cursorCmd(models.CursorIn)
		case config.KeyCloseHelp:
			if m.activity == models.ActivityHelp {
				cmd = m.activityCmd(models.ActivityGoals)
			}
		}
	}

	m.cmdline = commandline.Next(m.cmdline, key)
	return m, cmd
}

// applySnapshot replaces every cache from one authoritative snapshot.
// Nothing survives a refresh; a stale selection or focus set is simply
// overwritten.
func (m Model) applySnapshot(state models.FrontendState) Model {
	focused := make(map[models.GoalID]struct{}, len(state.GoalState.FocusedGoals))
	for _, id := range state.GoalState.FocusedGoals {
		focused[id] = struct{}{}
	}
	m.goals = &goalState{
		goals:    state.GoalState.PopulatedGoals,
		selected: state.GoalState.SelectedGoalID,
		focused:  focused,
	}
	m.display = state.GoalState.Config.Display.Commandline
	m.activity = state.ActiveActivity
	return m
}
