// Package models defines the wire contract shared by the stride client
// and daemon. JSON field names are fixed; both sides marshal these
// structures verbatim.
package models

// GoalID identifies a goal. IDs are allocated by the daemon and are
// stable across fetches.
type GoalID int64

// PopulatedGoal is one node of the fully materialized goal hierarchy.
// MaxChildLayerWidth and MaxChildDepth are layout hints computed by the
// daemon; the client passes them through unchanged.
type PopulatedGoal struct {
	ID                 GoalID          `json:"id"`
	ParentGoalID       *GoalID         `json:"parentGoalId"`
	Name               string          `json:"name"`
	EffortToDate       uint32          `json:"effortToDate"`
	EffortToComplete   uint32          `json:"effortToComplete"`
	MaxChildLayerWidth int             `json:"maxChildLayerWidth"`
	MaxChildDepth      int             `json:"maxChildLayerDepth"`
	Children           []PopulatedGoal `json:"children"`
}

// Complete reports whether the logged effort meets the goal's scope.
func (g PopulatedGoal) Complete() bool {
	return g.EffortToDate >= g.EffortToComplete
}

// CommandlineDisplayConfig holds the presentation parameters of the
// commandline overlay.
type CommandlineDisplayConfig struct {
	FontSizePixels  uint32 `json:"fontSizePixels"`
	BackgroundColor string `json:"backgroundColor"`
	FontColor       string `json:"fontColor"`
}

// DefaultCommandlineDisplayConfig returns the process-wide startup
// defaults used until the first fetch overwrites them.
func DefaultCommandlineDisplayConfig() CommandlineDisplayConfig {
	return CommandlineDisplayConfig{
		FontSizePixels:  14,
		BackgroundColor: "gray",
		FontColor:       "black",
	}
}

// DisplayConfig groups per-surface display configuration.
type DisplayConfig struct {
	Commandline CommandlineDisplayConfig `json:"commandline"`
}

// Config is the backend-owned configuration mirrored into the client.
type Config struct {
	Display DisplayConfig `json:"display"`
}

// DefaultConfig returns the configuration used for a fresh profile.
func DefaultConfig() Config {
	return Config{Display: DisplayConfig{Commandline: DefaultCommandlineDisplayConfig()}}
}

// ActiveActivity selects the top-level view.
type ActiveActivity string

const (
	ActivityGoals ActiveActivity = "Goals"
	ActivityHelp  ActiveActivity = "Help"
)

// Valid reports whether the value is one of the defined activities.
func (a ActiveActivity) Valid() bool {
	return a == ActivityGoals || a == ActivityHelp
}

// CursorAction is a backend-resolved navigation command.
type CursorAction string

const (
	CursorUp   CursorAction = "up"
	CursorDown CursorAction = "down"
	CursorIn   CursorAction = "in"
	CursorOut  CursorAction = "out"
)

// Valid reports whether the value is one of the defined cursor actions.
func (c CursorAction) Valid() bool {
	switch c {
	case CursorUp, CursorDown, CursorIn, CursorOut:
		return true
	}
	return false
}

// FrontendGoalState is the goal-related half of a fetch snapshot.
type FrontendGoalState struct {
	PopulatedGoals []PopulatedGoal `json:"populatedGoals"`
	SelectedGoalID *GoalID         `json:"selectedGoalId"`
	FocusedGoals   []GoalID        `json:"focusedGoals"`
	Config         Config          `json:"config"`
}

// FrontendState is the complete authoritative snapshot returned by
// fetch. The client replaces all of its caches from one of these.
type FrontendState struct {
	GoalState      FrontendGoalState `json:"goalState"`
	ActiveActivity ActiveActivity    `json:"activeActivity"`
}
