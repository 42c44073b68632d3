// Package tui implements the terminal client: a bubbletea model that
// renders backend snapshots and turns key events into gateway calls.
// The backend owns all goal state; this package only caches the latest
// snapshot and replaces it wholesale after every successful mutation.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stride-app/stride/internal/commandline"
	"github.com/stride-app/stride/internal/gateway"
	"github.com/stride-app/stride/internal/models"
)

// goalState caches the goal half of the last snapshot. A nil *goalState
// on the model means no snapshot has arrived yet.
type goalState struct {
	goals    []models.PopulatedGoal
	selected *models.GoalID
	focused  map[models.GoalID]struct{}
}

// Model is the root bubbletea model.
type Model struct {
	gw gateway.Gateway

	cmdline  commandline.State
	goals    *goalState
	display  models.CommandlineDisplayConfig
	activity models.ActiveActivity

	effortBar progress.Model
	width     int
	height    int
}

// New returns a model that will prime the backend on Init.
func New(gw gateway.Gateway) Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.ShowPercentage = false
	return Model{
		gw:        gw,
		cmdline:   commandline.Empty{},
		display:   models.DefaultCommandlineDisplayConfig(),
		activity:  models.ActivityGoals,
		effortBar: bar,
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

// refreshMsg carries a fetched snapshot. A nil state means the backend
// reported nothing; the caches stay as they are.
type refreshMsg struct {
	state *models.FrontendState
}

// dispatchErrMsg carries a failed gateway call. The message is shown in
// the commandline until the user starts typing again.
type dispatchErrMsg struct {
	err error
}

// loadCmd primes the backend and fetches the first snapshot.
func (m Model) loadCmd() tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		ctx := context.Background()
		if err := gw.Load(ctx); err != nil {
			return dispatchErrMsg{err: err}
		}
		return fetchAfter(ctx, gw)
	}
}

// submitCmd sends a commandline buffer, marker already stripped.
func (m Model) submitCmd(command string) tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		ctx := context.Background()
		if _, err := gw.AppCommand(ctx, command); err != nil {
			return dispatchErrMsg{err: err}
		}
		return fetchAfter(ctx, gw)
	}
}

func (m Model) cursorCmd(action models.CursorAction) tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		ctx := context.Background()
		if err := gw.CursorAction(ctx, action); err != nil {
			return dispatchErrMsg{err: err}
		}
		return fetchAfter(ctx, gw)
	}
}

func (m Model) activityCmd(activity models.ActiveActivity) tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		ctx := context.Background()
		if err := gw.SetActiveActivity(ctx, activity); err != nil {
			return dispatchErrMsg{err: err}
		}
		return fetchAfter(ctx, gw)
	}
}

// fetchAfter is the refresh tail shared by every mutating call.
func fetchAfter(ctx context.Context, gw gateway.Gateway) tea.Msg {
	state, err := gw.Fetch(ctx)
	if err != nil {
		return dispatchErrMsg{err: err}
	}
	return refreshMsg{state: state}
}
