package formatter

import (
	"fmt"
	"strings"

	"github.com/jmorand/planline/internal/domain"
	"github.com/jmorand/planline/internal/schedule"
)

// FormatTaskList renders a task table with planned progress and computed dates.
func FormatTaskList(tasks []*domain.Task) string {
	headers := []string{"ID", "NAME", "DUR", "STATUS", "PRI", "DONE", "START", "FINISH", "FLOAT"}
	rows := make([][]string, 0, len(tasks))

	for _, t := range tasks {
		dur := fmt.Sprintf("%dd", t.DurationDays)
		if t.IsMilestone() {
			dur = StylePurple.Render("◆")
		}
		float := Dim("--")
		if t.ComputedFloat != nil {
			if *t.ComputedFloat == 0 {
				float = StyleRed.Render("0")
			} else {
				float = fmt.Sprintf("%d", *t.ComputedFloat)
			}
		}
		rows = append(rows, []string{
			TruncID(t.ID),
			Bold(t.Name),
			dur,
			TaskStatusPill(t.Status),
			PriorityBadge(t.Priority),
			FormatPercent(t.PercentComplete),
			FormatDate(t.ComputedStart),
			FormatDate(t.ComputedEnd),
			float,
		})
	}

	return RenderTable(headers, rows)
}

// FormatScheduleResult renders a scheduling run: the task table, the
// critical path, and any deadline overruns.
func FormatScheduleResult(res *schedule.Result, tasks []*domain.Task) string {
	nameByID := make(map[string]string, len(tasks))
	for _, t := range tasks {
		nameByID[t.ID] = t.Name
	}

	var b strings.Builder
	b.WriteString(FormatTaskList(tasks))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("PROJECT FINISH"),
		StyleFg.Render(res.ProjectFinish.Format(domain.DateLayout))))

	if len(res.CriticalPath) > 0 {
		names := make([]string, 0, len(res.CriticalPath))
		for _, id := range res.CriticalPath {
			names = append(names, nameByID[id])
		}
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("CRITICAL PATH "),
			StyleRed.Render(strings.Join(names, " → "))))
	}

	for _, id := range res.Order {
		ts := res.Tasks[id]
		if ts == nil || ts.LateByDays <= 0 {
			continue
		}
		b.WriteString(StyleYellow.Render(
			fmt.Sprintf("⚠ %s misses its deadline by %d working day(s)\n", nameByID[id], ts.LateByDays)))
	}

	return RenderBox("Schedule", b.String())
}

// FormatDependencyList renders a project's dependency edges.
func FormatDependencyList(deps []domain.Dependency, tasks []*domain.Task) string {
	nameByID := make(map[string]string, len(tasks))
	for _, t := range tasks {
		nameByID[t.ID] = t.Name
	}

	headers := []string{"PREDECESSOR", "TYPE", "LAG", "SUCCESSOR"}
	rows := make([][]string, 0, len(deps))
	for _, d := range deps {
		rows = append(rows, []string{
			Bold(nameByID[d.PredecessorID]),
			StylePurple.Render(string(d.Type)),
			fmt.Sprintf("%d", d.LagDays),
			Bold(nameByID[d.SuccessorID]),
		})
	}

	return RenderBox("Dependencies", RenderTable(headers, rows))
}
