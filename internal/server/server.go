// Package server implements the daemon side of the wire contract: five
// JSON-over-HTTP operations over one mutex-guarded application state.
// All goal mutations flow through app_command; fetch is the only read.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/stride-app/stride/internal/models"
	"github.com/stride-app/stride/internal/parser"
	"github.com/stride-app/stride/internal/profile"
	"github.com/stride-app/stride/internal/store"
	"github.com/stride-app/stride/internal/util"
)

type phase int

const (
	phaseUnloaded phase = iota
	phaseLoaded
	phaseError
)

// appState mirrors the application's lifecycle: unloaded until the
// first load, then loaded with a live profile, or failed with a
// message that fetch reports.
type appState struct {
	phase     phase
	errMsg    string
	profile   *profile.Profile
	cursor    profile.Cursor
	populated []models.PopulatedGoal
	config    models.Config
	activity  models.ActiveActivity
}

// Server owns the application state and its persistence.
type Server struct {
	mu    sync.Mutex
	state appState
	store *store.Store
}

// New returns a server in the unloaded state.
func New(st *store.Store) *Server {
	return &Server{
		store: st,
		state: appState{activity: models.ActivityGoals},
	}
}

// Handler returns the RPC surface.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /rpc/load", s.handleLoad)
	mux.HandleFunc("POST /rpc/fetch", s.handleFetch)
	mux.HandleFunc("POST /rpc/app_command", s.handleAppCommand)
	mux.HandleFunc("POST /rpc/cursor_action", s.handleCursorAction)
	mux.HandleFunc("POST /rpc/set_active_activity", s.handleSetActiveActivity)
	return mux
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := r.Context()
	p, err := s.store.LoadProfile(ctx)
	if err != nil {
		s.state = appState{phase: phaseError, errMsg: err.Error()}
		util.LogError("loading profile", err)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	cfg, err := s.store.LoadConfig(ctx)
	if err != nil {
		s.state = appState{phase: phaseError, errMsg: err.Error()}
		util.LogError("loading config", err)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s.state = appState{
		phase:     phaseLoaded,
		profile:   p,
		populated: p.Populate(),
		config:    cfg,
		activity:  models.ActivityHelp,
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state.phase {
	case phaseUnloaded:
		w.WriteHeader(http.StatusNoContent)
	case phaseError:
		http.Error(w, s.state.errMsg, http.StatusInternalServerError)
	case phaseLoaded:
		var selected *models.GoalID
		if id, ok := s.state.cursor.SelectedGoalID(s.state.populated); ok {
			selected = &id
		}
		focused := s.state.profile.FocusedGoals()
		if focused == nil {
			focused = []models.GoalID{}
		}
		goals := s.state.populated
		if goals == nil {
			goals = []models.PopulatedGoal{}
		}
		writeJSON(w, models.FrontendState{
			GoalState: models.FrontendGoalState{
				PopulatedGoals: goals,
				SelectedGoalID: selected,
				FocusedGoals:   focused,
				Config:         s.state.config,
			},
			ActiveActivity: s.state.activity,
		})
	}
}

type appCommandRequest struct {
	Command string `json:"command"`
}

type appCommandResponse struct {
	Result string `json:"result"`
}

func (s *Server) handleAppCommand(w http.ResponseWriter, r *http.Request) {
	var req appCommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("decoding request: %v", err), http.StatusBadRequest)
		return
	}

	command, err := parser.Parse(req.Command)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to parse command: %v", err), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.phase != phaseLoaded {
		http.Error(w, "no profile loaded", http.StatusConflict)
		return
	}

	result, err := s.execute(r, command)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, appCommandResponse{Result: result})
}

type cursorActionRequest struct {
	CursorAction models.CursorAction `json:"cursorAction"`
}

func (s *Server) handleCursorAction(w http.ResponseWriter, r *http.Request) {
	var req cursorActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("decoding request: %v", err), http.StatusBadRequest)
		return
	}
	if !req.CursorAction.Valid() {
		http.Error(w, fmt.Sprintf("unknown cursor action %q", req.CursorAction), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.phase != phaseLoaded {
		http.Error(w, "no profile loaded", http.StatusConflict)
		return
	}
	if err := s.state.cursor.HandleAction(req.CursorAction, s.state.populated); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type setActiveActivityRequest struct {
	NewActiveActivity models.ActiveActivity `json:"newActiveActivity"`
}

func (s *Server) handleSetActiveActivity(w http.ResponseWriter, r *http.Request) {
	var req setActiveActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("decoding request: %v", err), http.StatusBadRequest)
		return
	}
	if !req.NewActiveActivity.Valid() {
		http.Error(w, fmt.Sprintf("unknown activity %q", req.NewActiveActivity), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.phase == phaseLoaded {
		s.state.activity = req.NewActiveActivity
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		util.LogError("encoding response", err)
	}
}
