package server

import (
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/stride-app/stride/internal/models"
)

// writeGoalReport renders the goal forest to a PDF at path.
func writeGoalReport(path string, goals []models.PopulatedGoal, focused map[models.GoalID]struct{}) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Goal Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	if len(goals) == 0 {
		pdf.Cell(0, 8, "No goals.")
		pdf.Ln(8)
	}

	var walk func(goal models.PopulatedGoal, depth int)
	walk = func(goal models.PopulatedGoal, depth int) {
		marker := "[ ]"
		if goal.Complete() {
			marker = "[x]"
		}
		line := fmt.Sprintf("%s%s %s (%d/%d)",
			strings.Repeat("    ", depth), marker, goal.Name, goal.EffortToDate, goal.EffortToComplete)
		if _, ok := focused[goal.ID]; ok {
			line += " *"
		}
		pdf.Cell(0, 8, line)
		pdf.Ln(8)
		for _, child := range goal.Children {
			walk(child, depth+1)
		}
	}
	for _, goal := range goals {
		walk(goal, 0)
	}

	return pdf.OutputFileAndClose(path)
}
