package profile

import (
	"fmt"
	"sort"

	"github.com/stride-app/stride/internal/models"
)

// GoalRecord is the flat persisted form of one goal, suitable for a
// relational store. Position orders a goal within its parent's child
// list (or among the roots).
type GoalRecord struct {
	ID               models.GoalID
	ParentID         *models.GoalID
	Position         int
	Name             string
	EffortToDate     uint32
	EffortToComplete uint32
	Focused          bool
}

// Records flattens the profile into persistable rows, depth-first.
func (p *Profile) Records() []GoalRecord {
	var out []GoalRecord
	var walk func(id models.GoalID, parentID *models.GoalID, position int)
	walk = func(id models.GoalID, parentID *models.GoalID, position int) {
		g := p.goals[id]
		_, focused := p.focused[id]
		out = append(out, GoalRecord{
			ID:               id,
			ParentID:         parentID,
			Position:         position,
			Name:             g.Name,
			EffortToDate:     g.EffortToDate,
			EffortToComplete: g.EffortToComplete,
			Focused:          focused,
		})
		self := id
		for i, childID := range g.children {
			walk(childID, &self, i)
		}
	}

	rootPosition := 0
	for _, id := range p.order {
		if _, isChild := p.parents[id]; isChild {
			continue
		}
		walk(id, nil, rootPosition)
		rootPosition++
	}
	return out
}

// FromRecords rebuilds a profile from persisted rows.
func FromRecords(records []GoalRecord) (*Profile, error) {
	p := New()
	for _, r := range records {
		if _, dup := p.goals[r.ID]; dup {
			return nil, fmt.Errorf("duplicate goal id %d", r.ID)
		}
		p.goals[r.ID] = &Goal{
			Name:             r.Name,
			EffortToDate:     r.EffortToDate,
			EffortToComplete: r.EffortToComplete,
		}
		if r.Focused {
			p.focused[r.ID] = struct{}{}
		}
		if r.ID >= p.nextID {
			p.nextID = r.ID + 1
		}
	}

	// Attach children ordered by position.
	byParent := make(map[models.GoalID][]GoalRecord)
	for _, r := range records {
		if r.ParentID == nil {
			continue
		}
		if _, ok := p.goals[*r.ParentID]; !ok {
			return nil, fmt.Errorf("goal %d references missing parent %d", r.ID, *r.ParentID)
		}
		p.parents[r.ID] = *r.ParentID
		byParent[*r.ParentID] = append(byParent[*r.ParentID], r)
	}
	for parentID, children := range byParent {
		sort.Slice(children, func(i, j int) bool { return children[i].Position < children[j].Position })
		for _, child := range children {
			p.goals[parentID].children = append(p.goals[parentID].children, child.ID)
		}
	}

	// Ids are monotonic, so ascending id is creation order.
	for _, r := range records {
		p.order = append(p.order, r.ID)
	}
	sort.Slice(p.order, func(i, j int) bool { return p.order[i] < p.order[j] })
	return p, nil
}
