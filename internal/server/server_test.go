package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stride-app/stride/internal/models"
	"github.com/stride-app/stride/internal/store"
)

type testDaemon struct {
	t   *testing.T
	srv *httptest.Server
}

func newTestDaemon(t *testing.T) *testDaemon {
	t.Helper()
	return newTestDaemonAt(t, filepath.Join(t.TempDir(), "test.db"))
}

func newTestDaemonAt(t *testing.T, dbPath string) *testDaemon {
	t.Helper()
	st, err := store.Open(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Logf("store close failed: %v", err)
		}
	})
	srv := httptest.NewServer(New(st).Handler())
	t.Cleanup(srv.Close)
	return &testDaemon{t: t, srv: srv}
}

func (d *testDaemon) post(op string, payload any) (*http.Response, string) {
	d.t.Helper()
	if payload == nil {
		payload = struct{}{}
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		d.t.Fatalf("encoding payload: %v", err)
	}
	resp, err := http.Post(d.srv.URL+"/rpc/"+op, "application/json", bytes.NewReader(encoded))
	if err != nil {
		d.t.Fatalf("%s request failed: %v", op, err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		d.t.Fatalf("reading %s response: %v", op, err)
	}
	return resp, string(body)
}

func (d *testDaemon) mustPost(op string, payload any) {
	d.t.Helper()
	resp, body := d.post(op, payload)
	if resp.StatusCode >= 300 {
		d.t.Fatalf("%s failed with %d: %s", op, resp.StatusCode, body)
	}
}

func (d *testDaemon) fetch() *models.FrontendState {
	d.t.Helper()
	resp, body := d.post("fetch", nil)
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		d.t.Fatalf("fetch failed with %d: %s", resp.StatusCode, body)
	}
	var state models.FrontendState
	if err := json.Unmarshal([]byte(body), &state); err != nil {
		d.t.Fatalf("decoding fetch response: %v", err)
	}
	return &state
}

func TestFetchBeforeLoadIsAbsent(t *testing.T) {
	d := newTestDaemon(t)
	if state := d.fetch(); state != nil {
		t.Fatalf("expected absent snapshot before load, got %+v", state)
	}
}

func TestLoadYieldsEmptyProfileOnHelpActivity(t *testing.T) {
	d := newTestDaemon(t)
	d.mustPost("load", nil)
	state := d.fetch()
	if state == nil {
		t.Fatalf("expected a snapshot after load")
	}
	if len(state.GoalState.PopulatedGoals) != 0 {
		t.Fatalf("fresh profile should have no goals, got %+v", state.GoalState.PopulatedGoals)
	}
	if state.ActiveActivity != models.ActivityHelp {
		t.Fatalf("load should land on the help activity, got %q", state.ActiveActivity)
	}
	if state.GoalState.Config != models.DefaultConfig() {
		t.Fatalf("fresh profile should carry default config")
	}
}

func TestCreateAndNavigate(t *testing.T) {
	d := newTestDaemon(t)
	d.mustPost("load", nil)
	d.mustPost("app_command", map[string]string{"command": "c mygoal 10"})

	state := d.fetch()
	if len(state.GoalState.PopulatedGoals) != 1 {
		t.Fatalf("expected 1 goal, got %d", len(state.GoalState.PopulatedGoals))
	}
	if state.GoalState.SelectedGoalID != nil {
		t.Fatalf("nothing should be selected before a cursor action")
	}

	d.mustPost("cursor_action", map[string]string{"cursorAction": "down"})
	state = d.fetch()
	if state.GoalState.SelectedGoalID == nil {
		t.Fatalf("cursor action should select the first goal")
	}
	if *state.GoalState.SelectedGoalID != state.GoalState.PopulatedGoals[0].ID {
		t.Fatalf("selection should reference the first root")
	}
}

func TestTargetedCommandFlow(t *testing.T) {
	d := newTestDaemon(t)
	d.mustPost("load", nil)
	d.mustPost("app_command", map[string]string{"command": "c mygoal 10"})
	d.mustPost("cursor_action", map[string]string{"cursorAction": "down"})
	d.mustPost("app_command", map[string]string{"command": "e 4"})
	d.mustPost("app_command", map[string]string{"command": `r subtask 3 2`})
	d.mustPost("app_command", map[string]string{"command": "f"})

	state := d.fetch()
	root := state.GoalState.PopulatedGoals[0]
	if root.EffortToDate != 4 {
		t.Errorf("expected 4 effort on root, got %d", root.EffortToDate)
	}
	if root.EffortToComplete != 8 {
		t.Errorf("refine should reduce root scope to 8, got %d", root.EffortToComplete)
	}
	if len(root.Children) != 1 || root.Children[0].Name != "subtask" {
		t.Fatalf("expected one child named subtask, got %+v", root.Children)
	}
	if len(state.GoalState.FocusedGoals) != 2 {
		t.Fatalf("focus should cover root and child, got %v", state.GoalState.FocusedGoals)
	}
}

func TestTargetedCommandWithoutSelection(t *testing.T) {
	d := newTestDaemon(t)
	d.mustPost("load", nil)
	resp, body := d.post("app_command", map[string]string{"command": "d"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "no goal selected") {
		t.Fatalf("unexpected error body: %s", body)
	}
}

func TestUnknownCommandRejected(t *testing.T) {
	d := newTestDaemon(t)
	d.mustPost("load", nil)
	resp, body := d.post("app_command", map[string]string{"command": "zzz 1"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "failed to parse command") {
		t.Fatalf("unexpected error body: %s", body)
	}
}

func TestCommandBeforeLoadConflicts(t *testing.T) {
	d := newTestDaemon(t)
	resp, _ := d.post("app_command", map[string]string{"command": "c goal 1"})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 before load, got %d", resp.StatusCode)
	}
}

func TestDeleteClearsSelection(t *testing.T) {
	d := newTestDaemon(t)
	d.mustPost("load", nil)
	d.mustPost("app_command", map[string]string{"command": "c victim 5"})
	d.mustPost("cursor_action", map[string]string{"cursorAction": "down"})
	d.mustPost("app_command", map[string]string{"command": "d"})

	state := d.fetch()
	if len(state.GoalState.PopulatedGoals) != 0 {
		t.Fatalf("goal should be gone, got %+v", state.GoalState.PopulatedGoals)
	}
	if state.GoalState.SelectedGoalID != nil {
		t.Fatalf("selection must not dangle after deletion")
	}
}

func TestDisplayCommandsUpdateConfig(t *testing.T) {
	d := newTestDaemon(t)
	d.mustPost("load", nil)
	d.mustPost("app_command", map[string]string{"command": "dsf 18"})
	d.mustPost("app_command", map[string]string{"command": "dcb #112233"})
	d.mustPost("app_command", map[string]string{"command": "dcf white"})

	cl := d.fetch().GoalState.Config.Display.Commandline
	if cl.FontSizePixels != 18 || cl.BackgroundColor != "#112233" || cl.FontColor != "white" {
		t.Fatalf("unexpected commandline config: %+v", cl)
	}
}

func TestSetActiveActivity(t *testing.T) {
	d := newTestDaemon(t)
	d.mustPost("load", nil)
	d.mustPost("set_active_activity", map[string]string{"newActiveActivity": "Goals"})
	if got := d.fetch().ActiveActivity; got != models.ActivityGoals {
		t.Fatalf("expected Goals activity, got %q", got)
	}

	resp, _ := d.post("set_active_activity", map[string]string{"newActiveActivity": "Nope"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid activity should be rejected, got %d", resp.StatusCode)
	}
}

func TestSavePersistsAcrossRestart(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	d := newTestDaemonAt(t, dbPath)
	d.mustPost("load", nil)
	d.mustPost("app_command", map[string]string{"command": "c durable 7"})
	d.mustPost("app_command", map[string]string{"command": "w"})
	d.srv.Close()

	restarted := newTestDaemonAt(t, dbPath)
	restarted.mustPost("load", nil)
	state := restarted.fetch()
	if len(state.GoalState.PopulatedGoals) != 1 || state.GoalState.PopulatedGoals[0].Name != "durable" {
		t.Fatalf("saved goal should survive a restart, got %+v", state.GoalState.PopulatedGoals)
	}
}

func TestExportWritesPDF(t *testing.T) {
	d := newTestDaemon(t)
	d.mustPost("load", nil)
	d.mustPost("app_command", map[string]string{"command": "c reportme 3"})

	path := filepath.Join(t.TempDir(), "goals.pdf")
	d.mustPost("app_command", map[string]string{"command": "export " + path})

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("report file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("report file is empty")
	}
}
