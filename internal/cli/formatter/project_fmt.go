package formatter

import (
	"fmt"
	"strings"

	"github.com/jmorand/planline/internal/domain"
)

// FormatProjectList renders a styled project list inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "NAME", "STATUS", "START", "CALENDAR"}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Name),
			ProjectStatusPill(p.Status),
			FormatDate(p.StartDate),
			Dim(p.CalendarID),
		})
	}

	return RenderBox("Projects", RenderTable(headers, rows))
}

// ProjectInspectData holds everything the project inspect view renders.
type ProjectInspectData struct {
	Project *domain.Project
	Tasks   []*domain.Task
}

// FormatProjectInspect renders a project card with its task table.
func FormatProjectInspect(data ProjectInspectData) string {
	p := data.Project

	var b strings.Builder
	b.WriteString(StyleBold.Render(p.Name) + "\n")
	if p.Description != "" {
		b.WriteString(Dim(p.Description) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("STATUS  "), ProjectStatusPill(p.Status)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ID      "), TruncID(p.ID)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("START   "), FormatDate(p.StartDate)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("CALENDAR"), StyleFg.Render(p.CalendarID)))

	if len(data.Tasks) > 0 {
		b.WriteString("\n" + FormatTaskList(data.Tasks))
	}

	return RenderBox("", b.String())
}
