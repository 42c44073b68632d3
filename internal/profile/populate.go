package profile

import (
	"github.com/stride-app/stride/internal/models"
)

// Populate materializes the goal forest for the wire. Roots appear in
// creation order; children in insertion order. Each tree carries the
// layout hints the client passes through to renderers:
// MaxChildDepth is the height of the node's subtree, and
// MaxChildLayerWidth is the widest layer strictly below the node's
// depth within its root tree.
func (p *Profile) Populate() []models.PopulatedGoal {
	var forest []models.PopulatedGoal
	for _, id := range p.order {
		if _, isChild := p.parents[id]; isChild {
			continue
		}
		tree := p.populateTree(id, nil)
		layoutHints(&tree)
		forest = append(forest, tree)
	}
	return forest
}

func (p *Profile) populateTree(id models.GoalID, parentID *models.GoalID) models.PopulatedGoal {
	g := p.goals[id]
	node := models.PopulatedGoal{
		ID:               id,
		ParentGoalID:     parentID,
		Name:             g.Name,
		EffortToDate:     g.EffortToDate,
		EffortToComplete: g.EffortToComplete,
		Children:         []models.PopulatedGoal{},
	}
	self := id
	for _, childID := range g.children {
		node.Children = append(node.Children, p.populateTree(childID, &self))
	}
	return node
}

// layoutHints fills MaxChildDepth and MaxChildLayerWidth for every node
// of one root tree.
func layoutHints(root *models.PopulatedGoal) {
	// widths[d-1] counts the nodes at depth d below the root.
	var widths []int

	var measure func(node *models.PopulatedGoal, depth int) int
	measure = func(node *models.PopulatedGoal, depth int) int {
		if depth > 0 {
			for len(widths) < depth {
				widths = append(widths, 0)
			}
			widths[depth-1]++
		}
		height := 0
		for i := range node.Children {
			if h := measure(&node.Children[i], depth+1) + 1; h > height {
				height = h
			}
		}
		node.MaxChildDepth = height
		return height
	}
	measure(root, 0)

	// Suffix-max so widths[i] is the widest layer at depth >= i+1.
	for i := len(widths) - 2; i >= 0; i-- {
		if widths[i+1] > widths[i] {
			widths[i] = widths[i+1]
		}
	}

	var assign func(node *models.PopulatedGoal, depth int)
	assign = func(node *models.PopulatedGoal, depth int) {
		if depth < len(widths) {
			node.MaxChildLayerWidth = widths[depth]
		} else {
			node.MaxChildLayerWidth = len(node.Children)
		}
		for i := range node.Children {
			assign(&node.Children[i], depth+1)
		}
	}
	assign(root, 0)
}
