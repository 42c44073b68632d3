package tui

import (
	"errors"
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/mock/gomock"

	"github.com/stride-app/stride/internal/commandline"
	"github.com/stride-app/stride/internal/gateway"
	"github.com/stride-app/stride/internal/models"
)

func newTestModel(t *testing.T) (Model, *gateway.MockGateway) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	gw := gateway.NewMockGateway(ctrl)
	return New(gw), gw
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func pressKeys(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, key := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(key))
		m = next.(Model)
	}
	return m, cmd
}

func applyMsg(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func sampleSnapshot() models.FrontendState {
	selected := models.GoalID(1)
	return models.FrontendState{
		GoalState: models.FrontendGoalState{
			PopulatedGoals: []models.PopulatedGoal{
				{ID: 1, Name: "write thesis", EffortToComplete: 10, Children: []models.PopulatedGoal{}},
			},
			SelectedGoalID: &selected,
			FocusedGoals:   []models.GoalID{1},
			Config:         models.DefaultConfig(),
		},
		ActiveActivity: models.ActivityGoals,
	}
}

func TestTypingBuildsBuffer(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = pressKeys(t, m, ":", "h", "e", "l", "p")

	typing, ok := m.cmdline.(commandline.Typing)
	if !ok {
		t.Fatalf("expected typing state, got %T", m.cmdline)
	}
	if typing.Content != ":help" {
		t.Fatalf("expected buffer %q, got %q", ":help", typing.Content)
	}
}

func TestEnterSubmitsStrippedCommandAndClearsBuffer(t *testing.T) {
	m, gw := newTestModel(t)
	snapshot := sampleSnapshot()

	gw.EXPECT().AppCommand(gomock.Any(), "help").Return("ok", nil)
	gw.EXPECT().Fetch(gomock.Any()).Return(&snapshot, nil)

	m, cmd := pressKeys(t, m, ":", "h", "e", "l", "p", "enter")

	if _, ok := m.cmdline.(commandline.Empty); !ok {
		t.Fatalf("enter must clear the buffer, got %T", m.cmdline)
	}
	if cmd == nil {
		t.Fatalf("enter on a non-empty buffer must dispatch")
	}

	msg := cmd()
	refresh, ok := msg.(refreshMsg)
	if !ok {
		t.Fatalf("expected refreshMsg, got %T", msg)
	}
	m = applyMsg(t, m, refresh)
	if m.goals == nil || len(m.goals.goals) != 1 {
		t.Fatalf("snapshot should populate the goal cache")
	}
}

func TestBareMarkerEnterDispatchesNothing(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := pressKeys(t, m, ":", "enter")
	if cmd != nil {
		t.Fatalf("an empty buffer must not be submitted")
	}
	if _, ok := m.cmdline.(commandline.Empty); !ok {
		t.Fatalf("enter must clear the buffer, got %T", m.cmdline)
	}
}

func TestCommandFailureShowsErrorWithoutRefresh(t *testing.T) {
	m, gw := newTestModel(t)

	// No Fetch expectation: a failed command must not refresh.
	gw.EXPECT().AppCommand(gomock.Any(), "zzz").Return("", errors.New("unknown command"))

	m, cmd := pressKeys(t, m, ":", "z", "z", "z", "enter")
	msg := cmd()
	if _, ok := msg.(dispatchErrMsg); !ok {
		t.Fatalf("expected dispatchErrMsg, got %T", msg)
	}

	m = applyMsg(t, m, msg)
	errState, ok := m.cmdline.(commandline.Error)
	if !ok {
		t.Fatalf("expected error state, got %T", m.cmdline)
	}
	if errState.Message != "unknown command" {
		t.Fatalf("error message must pass through verbatim, got %q", errState.Message)
	}
}

func TestQuitCommand(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := pressKeys(t, m, ":", "q", "enter")
	if cmd == nil {
		t.Fatalf("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf(":q must quit without a backend call")
	}
}

func TestNavigationKeyDispatchesCursorAction(t *testing.T) {
	m, gw := newTestModel(t)
	snapshot := sampleSnapshot()

	gw.EXPECT().CursorAction(gomock.Any(), models.CursorDown).Return(nil)
	gw.EXPECT().Fetch(gomock.Any()).Return(&snapshot, nil)

	m, cmd := pressKeys(t, m, "j")
	if cmd == nil {
		t.Fatalf("navigation key must dispatch while the commandline is empty")
	}
	m = applyMsg(t, m, cmd())

	if m.goals == nil || m.goals.selected == nil || *m.goals.selected != 1 {
		t.Fatalf("refresh should overwrite the selection cache")
	}
}

func TestNavigationKeysAreTextWhileTyping(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := pressKeys(t, m, ":", "j")
	if cmd != nil {
		t.Fatalf("j must append to the buffer while typing, not navigate")
	}
	typing := m.cmdline.(commandline.Typing)
	if typing.Content != ":j" {
		t.Fatalf("expected buffer %q, got %q", ":j", typing.Content)
	}
}

func TestCloseHelpKey(t *testing.T) {
	m, gw := newTestModel(t)
	m = m.applySnapshot(models.FrontendState{
		GoalState:      sampleSnapshot().GoalState,
		ActiveActivity: models.ActivityHelp,
	})

	goalsView := sampleSnapshot()
	gw.EXPECT().SetActiveActivity(gomock.Any(), models.ActivityGoals).Return(nil)
	gw.EXPECT().Fetch(gomock.Any()).Return(&goalsView, nil)

	m, cmd := pressKeys(t, m, "q")
	if cmd == nil {
		t.Fatalf("q must close the help view")
	}
	m = applyMsg(t, m, cmd())
	if m.activity != models.ActivityGoals {
		t.Fatalf("expected Goals activity after closing help, got %q", m.activity)
	}
}

func TestCloseHelpKeyInertOnGoalsView(t *testing.T) {
	m, _ := newTestModel(t)
	m = m.applySnapshot(sampleSnapshot())

	_, cmd := pressKeys(t, m, "q")
	if cmd != nil {
		t.Fatalf("q must be inert outside the help view")
	}
}

func TestAbsentFetchLeavesCachesUntouched(t *testing.T) {
	m, _ := newTestModel(t)
	m = m.applySnapshot(sampleSnapshot())
	before := m.goals

	m = applyMsg(t, m, refreshMsg{state: nil})
	if m.goals != before {
		t.Fatalf("an absent snapshot must not touch the caches")
	}
}

func TestSnapshotReplacesCachesWholesale(t *testing.T) {
	m, _ := newTestModel(t)
	m = m.applySnapshot(sampleSnapshot())

	replacement := models.FrontendState{
		GoalState: models.FrontendGoalState{
			PopulatedGoals: []models.PopulatedGoal{
				{ID: 2, Name: "other", EffortToComplete: 5, Children: []models.PopulatedGoal{}},
			},
			FocusedGoals: []models.GoalID{},
			Config:       models.DefaultConfig(),
		},
		ActiveActivity: models.ActivityGoals,
	}
	m = m.applySnapshot(replacement)

	if m.goals.selected != nil {
		t.Fatalf("stale selection must not survive a refresh")
	}
	if len(m.goals.focused) != 0 {
		t.Fatalf("stale focus set must not survive a refresh")
	}
	if len(m.goals.goals) != 1 || m.goals.goals[0].ID != 2 {
		t.Fatalf("goal cache must match the new snapshot")
	}
}

func TestApplySnapshotIsIdempotent(t *testing.T) {
	m, _ := newTestModel(t)
	snapshot := sampleSnapshot()

	once := m.applySnapshot(snapshot)
	twice := once.applySnapshot(snapshot)

	if !reflect.DeepEqual(once.goals, twice.goals) {
		t.Fatalf("applying the same snapshot twice must be a no-op")
	}
	if once.display != twice.display || once.activity != twice.activity {
		t.Fatalf("display and activity caches must be stable")
	}
}

func TestDisplayConfigFlowsFromSnapshot(t *testing.T) {
	m, _ := newTestModel(t)
	snapshot := sampleSnapshot()
	snapshot.GoalState.Config.Display.Commandline = models.CommandlineDisplayConfig{
		FontSizePixels:  18,
		BackgroundColor: "#112233",
		FontColor:       "white",
	}

	m = m.applySnapshot(snapshot)
	if m.display.BackgroundColor != "#112233" || m.display.FontColor != "white" {
		t.Fatalf("display config must come from the snapshot, got %+v", m.display)
	}
}
