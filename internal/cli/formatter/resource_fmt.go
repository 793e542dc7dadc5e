package formatter

import (
	"fmt"

	"github.com/jmorand/planline/internal/domain"
)

// FormatResourceList renders the resource table.
func FormatResourceList(resources []*domain.Resource) string {
	headers := []string{"ID", "NAME", "ROLE", "RATE"}
	rows := make([][]string, 0, len(resources))
	for _, r := range resources {
		role := r.Role
		if role == "" {
			role = Dim("--")
		}
		rows = append(rows, []string{
			TruncID(r.ID),
			Bold(r.Name),
			role,
			FormatMoney(r.HourlyRate),
		})
	}
	return RenderBox("Resources", RenderTable(headers, rows))
}

// FormatAssignmentList renders a project's assignments with names resolved
// through the supplied lookups.
func FormatAssignmentList(assignments []*domain.Assignment, resourceNames, taskNames map[string]string) string {
	headers := []string{"ID", "RESOURCE", "TASK", "ALLOC", "PLANNED", "LOGGED"}
	rows := make([][]string, 0, len(assignments))
	for _, a := range assignments {
		rows = append(rows, []string{
			TruncID(a.ID),
			Bold(resourceNames[a.ResourceID]),
			StyleFg.Render(taskNames[a.TaskID]),
			FormatPercent(a.AllocationPercent),
			fmt.Sprintf("%.1fh", a.PlannedHours),
			fmt.Sprintf("%.1fh", a.LoggedHours),
		})
	}
	return RenderBox("Assignments", RenderTable(headers, rows))
}

// FormatCostList renders a project's cost lines with names resolved through
// the supplied task lookup.
func FormatCostList(items []*domain.CostItem, taskNames map[string]string) string {
	headers := []string{"ID", "DESCRIPTION", "TYPE", "TASK", "PLANNED", "ACTUAL", "INCURRED"}
	rows := make([][]string, 0, len(items))
	for _, c := range items {
		task := Dim("--")
		if c.TaskID != nil {
			task = StyleFg.Render(taskNames[*c.TaskID])
		}
		rows = append(rows, []string{
			TruncID(c.ID),
			Bold(c.Description),
			StylePurple.Render(string(c.Type)),
			task,
			FormatMoney(c.PlannedAmount),
			FormatMoney(c.ActualAmount),
			FormatDate(c.IncurredDate),
		})
	}
	return RenderBox("Cost items", RenderTable(headers, rows))
}
