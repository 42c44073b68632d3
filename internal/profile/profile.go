// Package profile owns the daemon-side goal hierarchy: a flat id-keyed
// store with ordered child lists, a focus set, and the traversal that
// materializes the wire-level PopulatedGoal forest.
package profile

import (
	"fmt"
	"sort"

	"github.com/stride-app/stride/internal/models"
)

// Goal is the internal representation of a single goal. Children are
// kept in insertion order, which is also display order on the wire.
type Goal struct {
	Name             string
	EffortToDate     uint32
	EffortToComplete uint32

	children []models.GoalID
}

// Finished reports whether logged effort meets the goal's scope.
func (g *Goal) Finished() bool {
	return g.EffortToDate >= g.EffortToComplete
}

// Profile is the complete goal state of one user: every goal, the
// parent/child structure, and the focus set. Ids are allocated from a
// monotonic counter and never reused.
type Profile struct {
	nextID  models.GoalID
	goals   map[models.GoalID]*Goal
	parents map[models.GoalID]models.GoalID
	focused map[models.GoalID]struct{}
	order   []models.GoalID
}

// New returns an empty profile.
func New() *Profile {
	return &Profile{
		nextID:  1,
		goals:   make(map[models.GoalID]*Goal),
		parents: make(map[models.GoalID]models.GoalID),
		focused: make(map[models.GoalID]struct{}),
	}
}

func (p *Profile) get(id models.GoalID) (*Goal, error) {
	g, ok := p.goals[id]
	if !ok {
		return nil, fmt.Errorf("no goal with id %d", id)
	}
	return g, nil
}

func (p *Profile) allocate(g *Goal) models.GoalID {
	id := p.nextID
	p.nextID++
	p.goals[id] = g
	p.order = append(p.order, id)
	return id
}

// Add creates a new root goal and returns its id.
func (p *Profile) Add(name string, effortToComplete uint32) models.GoalID {
	return p.allocate(&Goal{Name: name, EffortToComplete: effortToComplete})
}

// Refine creates a child under parentID, removing parentEffortRemoved
// from the parent's remaining scope.
func (p *Profile) Refine(parentID models.GoalID, childName string, childEffortToComplete, parentEffortRemoved uint32) (models.GoalID, error) {
	parent, err := p.get(parentID)
	if err != nil {
		return 0, err
	}
	childID := p.allocate(&Goal{Name: childName, EffortToComplete: childEffortToComplete})
	parent.EffortToComplete = saturatingSub(parent.EffortToComplete, parentEffortRemoved)
	parent.children = append(parent.children, childID)
	p.parents[childID] = parentID
	return childID, nil
}

// Delete removes a goal and its entire subtree, detaching it from its
// parent's child list.
func (p *Profile) Delete(id models.GoalID) error {
	if _, err := p.get(id); err != nil {
		return err
	}
	if parentID, ok := p.parents[id]; ok {
		if parent, ok := p.goals[parentID]; ok {
			parent.children = removeID(parent.children, id)
		}
	}
	for _, victim := range append(p.descendants(id), id) {
		delete(p.goals, victim)
		delete(p.focused, victim)
		delete(p.parents, victim)
		p.removeFromOrder(victim)
	}
	return nil
}

// AddEffort logs effort against a goal.
func (p *Profile) AddEffort(id models.GoalID, effort uint32) error {
	g, err := p.get(id)
	if err != nil {
		return err
	}
	g.EffortToDate += effort
	return nil
}

// RemoveEffort backs effort out of a goal, saturating at zero.
func (p *Profile) RemoveEffort(id models.GoalID, effort uint32) error {
	g, err := p.get(id)
	if err != nil {
		return err
	}
	g.EffortToDate = saturatingSub(g.EffortToDate, effort)
	return nil
}

// Rescope replaces a goal's effort-to-complete.
func (p *Profile) Rescope(id models.GoalID, newEffortToComplete uint32) error {
	g, err := p.get(id)
	if err != nil {
		return err
	}
	g.EffortToComplete = newEffortToComplete
	return nil
}

// Rename replaces a goal's display name.
func (p *Profile) Rename(id models.GoalID, newName string) error {
	g, err := p.get(id)
	if err != nil {
		return err
	}
	g.Name = newName
	return nil
}

// Focus marks a goal and its whole subtree as focused.
func (p *Profile) Focus(id models.GoalID) error {
	if _, err := p.get(id); err != nil {
		return err
	}
	p.focused[id] = struct{}{}
	for _, child := range p.descendants(id) {
		p.focused[child] = struct{}{}
	}
	return nil
}

// Unfocus clears focus from a goal and its whole subtree.
func (p *Profile) Unfocus(id models.GoalID) error {
	if _, err := p.get(id); err != nil {
		return err
	}
	delete(p.focused, id)
	for _, child := range p.descendants(id) {
		delete(p.focused, child)
	}
	return nil
}

// FocusSingle marks one goal as focused without touching its subtree.
func (p *Profile) FocusSingle(id models.GoalID) error {
	if _, err := p.get(id); err != nil {
		return err
	}
	p.focused[id] = struct{}{}
	return nil
}

// UnfocusSingle clears focus from one goal without touching its subtree.
func (p *Profile) UnfocusSingle(id models.GoalID) error {
	if _, err := p.get(id); err != nil {
		return err
	}
	delete(p.focused, id)
	return nil
}

// FocusedGoals returns the focus set in ascending id order.
func (p *Profile) FocusedGoals() []models.GoalID {
	out := make([]models.GoalID, 0, len(p.focused))
	for id := range p.focused {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// GoalIDs returns every live goal id in ascending order.
func (p *Profile) GoalIDs() []models.GoalID {
	out := make([]models.GoalID, 0, len(p.goals))
	for id := range p.goals {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// descendants collects every goal in id's subtree, excluding id itself.
func (p *Profile) descendants(id models.GoalID) []models.GoalID {
	var out []models.GoalID
	stack := append([]models.GoalID(nil), p.goals[id].children...)
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, current)
		if g, ok := p.goals[current]; ok {
			stack = append(stack, g.children...)
		}
	}
	return out
}

func (p *Profile) removeFromOrder(id models.GoalID) {
	p.order = removeID(p.order, id)
}

func removeID(ids []models.GoalID, id models.GoalID) []models.GoalID {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func saturatingSub(a, b uint32) uint32 {
	if b > a {
		return 0
	}
	return a - b
}
