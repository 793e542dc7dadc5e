package formatter

import (
	"fmt"
	"strings"

	"github.com/jmorand/planline/internal/domain"
	"github.com/jmorand/planline/internal/leveling"
)

// FormatConflicts renders resource over-allocation ranges. Resource names
// are resolved through the supplied lookup; unknown IDs fall back to the
// truncated ID.
func FormatConflicts(conflicts []leveling.Conflict, resourceNames map[string]string) string {
	if len(conflicts) == 0 {
		return StyleGreen.Render("✔ No resource conflicts.")
	}

	var b strings.Builder
	for i, c := range conflicts {
		if i > 0 {
			b.WriteString("\n")
		}
		name := resourceNames[c.ResourceID]
		if name == "" {
			name = c.ResourceID
			if len(name) > 8 {
				name = name[:8]
			}
		}
		marker := StyleYellow.Render("⚠")
		if c.Unresolved {
			marker = StyleRed.Render("✖")
		}
		b.WriteString(fmt.Sprintf("%s %s %s %s  %s\n",
			marker,
			Bold(name),
			Dim(c.Start.Format(domain.DateLayout)+" .. "+c.End.Format(domain.DateLayout)),
			StyleRed.Render(FormatPercent(c.TotalAllocationPercent)),
			unresolvedTag(c.Unresolved)))
		for _, e := range c.Entries {
			b.WriteString(fmt.Sprintf("    %s %s\n", StyleFg.Render(e.TaskName), Dim(FormatPercent(e.AllocationPercent))))
		}
	}

	return RenderBox("Resource conflicts", strings.TrimRight(b.String(), "\n"))
}

func unresolvedTag(unresolved bool) string {
	if unresolved {
		return StyleRed.Render("unresolved")
	}
	return ""
}

// FormatLevelingResult renders the shifts applied by a leveling run and
// whatever conflicts remain.
func FormatLevelingResult(res *leveling.Result, resourceNames map[string]string) string {
	var b strings.Builder

	if len(res.Actions) == 0 {
		b.WriteString(Dim("No tasks were shifted.") + "\n")
	} else {
		headers := []string{"TASK", "OLD START", "NEW START", "REASON"}
		rows := make([][]string, 0, len(res.Actions))
		for _, a := range res.Actions {
			rows = append(rows, []string{
				Bold(a.TaskName),
				a.OldStart.Format(domain.DateLayout),
				StyleGreen.Render(a.NewStart.Format(domain.DateLayout)),
				Dim(a.Reason),
			})
		}
		b.WriteString(RenderTable(headers, rows))
	}

	b.WriteString("\n" + FormatConflicts(res.Conflicts, resourceNames))
	return b.String()
}
