package profile

import (
	"fmt"

	"github.com/stride-app/stride/internal/models"
)

// SelectedGoal addresses one node in the populated forest by its root
// index and the child-index path below that root.
type SelectedGoal struct {
	RootIndex int
	ChildPath []int
}

// Cursor tracks the current selection. A nil Selected means nothing is
// selected.
type Cursor struct {
	Selected *SelectedGoal
}

// Resolve walks the forest to the selected node.
func (s *SelectedGoal) Resolve(goals []models.PopulatedGoal) (*models.PopulatedGoal, error) {
	if s.RootIndex >= len(goals) {
		return nil, fmt.Errorf("root index %d of selected goal does not exist", s.RootIndex)
	}
	current := &goals[s.RootIndex]
	for _, index := range s.ChildPath {
		if index >= len(current.Children) {
			return nil, fmt.Errorf("nonexistent child index %d in goal %d", index, current.ID)
		}
		current = &current.Children[index]
	}
	return current, nil
}

// siblings returns the slice the selected node lives in: either a
// parent's children or the forest roots.
func (s *SelectedGoal) siblings(goals []models.PopulatedGoal) ([]models.PopulatedGoal, error) {
	if len(s.ChildPath) == 0 {
		return goals, nil
	}
	parent := &SelectedGoal{RootIndex: s.RootIndex, ChildPath: s.ChildPath[:len(s.ChildPath)-1]}
	node, err := parent.Resolve(goals)
	if err != nil {
		return nil, err
	}
	return node.Children, nil
}

// selectedIndex returns a pointer to the index that moves for up/down:
// the last path element, or the root index for a root selection.
func (s *SelectedGoal) selectedIndex() *int {
	if len(s.ChildPath) > 0 {
		return &s.ChildPath[len(s.ChildPath)-1]
	}
	return &s.RootIndex
}

// SelectedGoalID resolves the selection to a goal id. The second return
// is false when nothing is selected or the selection no longer resolves
// against the given forest.
func (c *Cursor) SelectedGoalID(goals []models.PopulatedGoal) (models.GoalID, bool) {
	if c.Selected == nil {
		return 0, false
	}
	node, err := c.Selected.Resolve(goals)
	if err != nil {
		return 0, false
	}
	return node.ID, true
}

// ClearIfInvalid drops a selection that no longer resolves, e.g. after
// a deletion.
func (c *Cursor) ClearIfInvalid(goals []models.PopulatedGoal) {
	if c.Selected == nil {
		return
	}
	if _, err := c.Selected.Resolve(goals); err != nil {
		c.Selected = nil
	}
}

// HandleAction applies one navigation step against the current forest.
// With no selection, any action selects the first root (if one exists).
// Down stops at the last sibling, up at the first; in enters the first
// child when there is one; out pops toward the root and finally clears
// the selection.
func (c *Cursor) HandleAction(action models.CursorAction, goals []models.PopulatedGoal) error {
	if c.Selected == nil {
		if len(goals) > 0 {
			c.Selected = &SelectedGoal{RootIndex: 0}
		}
		return nil
	}

	switch action {
	case models.CursorDown:
		siblings, err := c.Selected.siblings(goals)
		if err != nil {
			return err
		}
		index := c.Selected.selectedIndex()
		if *index+1 < len(siblings) {
			*index++
		}
	case models.CursorUp:
		index := c.Selected.selectedIndex()
		if *index > 0 {
			*index--
		}
	case models.CursorIn:
		node, err := c.Selected.Resolve(goals)
		if err != nil {
			return err
		}
		if len(node.Children) > 0 {
			c.Selected.ChildPath = append(c.Selected.ChildPath, 0)
		}
	case models.CursorOut:
		if len(c.Selected.ChildPath) > 0 {
			c.Selected.ChildPath = c.Selected.ChildPath[:len(c.Selected.ChildPath)-1]
		} else {
			c.Selected = nil
		}
	default:
		return fmt.Errorf("unknown cursor action %q", action)
	}
	return nil
}
