package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jmorand/planline/internal/domain"
)

var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// FormatCalendarList renders the calendar table.
func FormatCalendarList(calendars []*domain.WorkingCalendar) string {
	headers := []string{"ID", "NAME", "DAYS", "HOURS/DAY", "HOLIDAYS"}
	rows := make([][]string, 0, len(calendars))
	for _, c := range calendars {
		rows = append(rows, []string{
			Dim(c.ID),
			Bold(c.Name),
			weekdaySummary(c.Weekdays),
			fmt.Sprintf("%.1f", c.HoursPerDay),
			fmt.Sprintf("%d", len(c.Holidays)),
		})
	}
	return RenderBox("Calendars", RenderTable(headers, rows))
}

// FormatCalendarInspect renders one calendar with its holiday list.
func FormatCalendarInspect(c *domain.WorkingCalendar) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(c.Name) + "\n\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("DAYS     "), weekdaySummary(c.Weekdays)))
	b.WriteString(fmt.Sprintf("%s  %.1f\n", StyleDim.Render("HOURS/DAY"), c.HoursPerDay))

	if len(c.Holidays) > 0 {
		days := make([]string, 0, len(c.Holidays))
		for d := range c.Holidays {
			days = append(days, d)
		}
		sort.Strings(days)
		b.WriteString("\n" + Header("Holidays") + "\n")
		for _, d := range days {
			b.WriteString(StyleFg.Render(d) + "\n")
		}
	}

	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}

func weekdaySummary(weekdays map[time.Weekday]bool) string {
	parts := make([]string, 0, len(weekdayOrder))
	for _, wd := range weekdayOrder {
		if weekdays[wd] {
			parts = append(parts, wd.String()[:3])
		}
	}
	if len(parts) == 0 {
		return Dim("--")
	}
	return strings.Join(parts, " ")
}
