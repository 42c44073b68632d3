package server

import (
	"fmt"
	"net/http"

	"github.com/stride-app/stride/internal/models"
	"github.com/stride-app/stride/internal/parser"
)

// execute runs one parsed command against the loaded state. Callers
// hold s.mu. The returned string is the implementation-defined result
// the client logs.
func (s *Server) execute(r *http.Request, command parser.Command) (string, error) {
	switch cmd := command.(type) {
	case parser.GoalCreate:
		id := s.state.profile.Add(cmd.Name, cmd.EffortToComplete)
		s.refreshPopulated()
		return fmt.Sprintf("created goal %d", id), nil

	case parser.GoalDelete:
		id, err := s.selectedGoalID()
		if err != nil {
			return "", err
		}
		if err := s.state.profile.Delete(id); err != nil {
			return "", err
		}
		s.refreshPopulated()
		return fmt.Sprintf("deleted goal %d", id), nil

	case parser.GoalAddEffort:
		id, err := s.selectedGoalID()
		if err != nil {
			return "", err
		}
		if err := s.state.profile.AddEffort(id, cmd.Effort); err != nil {
			return "", err
		}
		s.refreshPopulated()
		return fmt.Sprintf("added %d effort to goal %d", cmd.Effort, id), nil

	case parser.GoalRemoveEffort:
		id, err := s.selectedGoalID()
		if err != nil {
			return "", err
		}
		if err := s.state.profile.RemoveEffort(id, cmd.Effort); err != nil {
			return "", err
		}
		s.refreshPopulated()
		return fmt.Sprintf("removed %d effort from goal %d", cmd.Effort, id), nil

	case parser.GoalRefine:
		parentID, err := s.selectedGoalID()
		if err != nil {
			return "", err
		}
		childID, err := s.state.profile.Refine(parentID, cmd.ChildName, cmd.ChildEffortToComplete, cmd.ParentEffortRemoved)
		if err != nil {
			return "", err
		}
		s.refreshPopulated()
		return fmt.Sprintf("refined goal %d into child %d", parentID, childID), nil

	case parser.GoalFocus:
		id, err := s.selectedGoalID()
		if err != nil {
			return "", err
		}
		if err := s.state.profile.Focus(id); err != nil {
			return "", err
		}
		return fmt.Sprintf("focused goal %d", id), nil

	case parser.GoalUnfocus:
		id, err := s.selectedGoalID()
		if err != nil {
			return "", err
		}
		if err := s.state.profile.Unfocus(id); err != nil {
			return "", err
		}
		return fmt.Sprintf("unfocused goal %d", id), nil

	case parser.GoalFocusSingle:
		id, err := s.selectedGoalID()
		if err != nil {
			return "", err
		}
		if err := s.state.profile.FocusSingle(id); err != nil {
			return "", err
		}
		return fmt.Sprintf("focused goal %d", id), nil

	case parser.GoalUnfocusSingle:
		id, err := s.selectedGoalID()
		if err != nil {
			return "", err
		}
		if err := s.state.profile.UnfocusSingle(id); err != nil {
			return "", err
		}
		return fmt.Sprintf("unfocused goal %d", id), nil

	case parser.GoalRescope:
		id, err := s.selectedGoalID()
		if err != nil {
			return "", err
		}
		if err := s.state.profile.Rescope(id, cmd.NewEffortToComplete); err != nil {
			return "", err
		}
		s.refreshPopulated()
		return fmt.Sprintf("rescoped goal %d to %d", id, cmd.NewEffortToComplete), nil

	case parser.GoalRename:
		id, err := s.selectedGoalID()
		if err != nil {
			return "", err
		}
		if err := s.state.profile.Rename(id, cmd.NewName); err != nil {
			return "", err
		}
		s.refreshPopulated()
		return fmt.Sprintf("renamed goal %d", id), nil

	case parser.DisplayFontSize:
		s.state.config.Display.Commandline.FontSizePixels = cmd.Pixels
		return fmt.Sprintf("font size set to %dpx", cmd.Pixels), nil

	case parser.DisplayBackgroundColor:
		s.state.config.Display.Commandline.BackgroundColor = cmd.Color
		return fmt.Sprintf("background color set to %s", cmd.Color), nil

	case parser.DisplayFontColor:
		s.state.config.Display.Commandline.FontColor = cmd.Color
		return fmt.Sprintf("font color set to %s", cmd.Color), nil

	case parser.Save:
		ctx := r.Context()
		if err := s.store.SaveProfile(ctx, s.state.profile); err != nil {
			return "", fmt.Errorf("saving profile: %w", err)
		}
		if err := s.store.SaveConfig(ctx, s.state.config); err != nil {
			return "", fmt.Errorf("saving config: %w", err)
		}
		return "saved", nil

	case parser.SwitchActivity:
		s.state.activity = cmd.Activity
		return fmt.Sprintf("switched to %s", cmd.Activity), nil

	case parser.Export:
		focused := make(map[models.GoalID]struct{})
		for _, id := range s.state.profile.FocusedGoals() {
			focused[id] = struct{}{}
		}
		if err := writeGoalReport(cmd.Path, s.state.populated, focused); err != nil {
			return "", fmt.Errorf("exporting report: %w", err)
		}
		return fmt.Sprintf("exported report to %s", cmd.Path), nil

	default:
		return "", fmt.Errorf("unhandled command %T", command)
	}
}

func (s *Server) selectedGoalID() (models.GoalID, error) {
	id, ok := s.state.cursor.SelectedGoalID(s.state.populated)
	if !ok {
		return 0, fmt.Errorf("no goal selected")
	}
	return id, nil
}

// refreshPopulated rebuilds the materialized forest after a structural
// mutation and drops a selection that no longer resolves.
func (s *Server) refreshPopulated() {
	s.state.populated = s.state.profile.Populate()
	s.state.cursor.ClearIfInvalid(s.state.populated)
}
