package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmorand/planline/internal/cli/formatter"
	"github.com/jmorand/planline/internal/domain"
	"github.com/spf13/cobra"
)

var weekdayByName = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday,
	"wed": time.Wednesday, "thu": time.Thursday, "fri": time.Friday,
	"sat": time.Saturday,
}

func parseWeekdays(names []string) (map[time.Weekday]bool, error) {
	out := make(map[time.Weekday]bool, len(names))
	for _, n := range names {
		wd, ok := weekdayByName[strings.ToLower(n)]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q (want mon..sun)", n)
		}
		out[wd] = true
	}
	return out, nil
}

func newCalendarCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Manage working calendars",
	}

	cmd.AddCommand(
		newCalendarAddCmd(app),
		newCalendarListCmd(app),
		newCalendarInspectCmd(app),
		newCalendarHolidayCmd(app),
	)

	return cmd
}

func newCalendarAddCmd(app *App) *cobra.Command {
	var id, name string
	var days []string
	var hoursPerDay float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a working calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			weekdays, err := parseWeekdays(days)
			if err != nil {
				return err
			}

			c := &domain.WorkingCalendar{
				ID:          id,
				Name:        name,
				Weekdays:    weekdays,
				HoursPerDay: hoursPerDay,
				Holidays:    map[string]bool{},
			}
			if err := app.Calendars.Create(context.Background(), c); err != nil {
				return err
			}

			fmt.Printf("Created calendar %s\n", c.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Calendar ID")
	cmd.Flags().StringVar(&name, "name", "", "Calendar name")
	cmd.Flags().StringSliceVar(&days, "days", []string{"mon", "tue", "wed", "thu", "fri"}, "Working weekdays")
	cmd.Flags().Float64Var(&hoursPerDay, "hours", 8, "Working hours per day")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newCalendarListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List working calendars",
		RunE: func(cmd *cobra.Command, args []string) error {
			calendars, err := app.Calendars.List(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatCalendarList(calendars))
			return nil
		},
	}
}

func newCalendarInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show calendar details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Calendars.GetByID(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatCalendarInspect(c))
			return nil
		},
	}
}

func newCalendarHolidayCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holiday",
		Short: "Manage calendar holidays",
	}

	add := &cobra.Command{
		Use:   "add CALENDAR DATE",
		Short: "Add a holiday",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := domain.ParseDate(args[1])
			if err != nil {
				return err
			}
			if err := app.Calendars.AddHoliday(context.Background(), args[0], day); err != nil {
				return err
			}
			fmt.Printf("Added holiday %s to %s\n", args[1], args[0])
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove CALENDAR DATE",
		Short: "Remove a holiday",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := domain.ParseDate(args[1])
			if err != nil {
				return err
			}
			if err := app.Calendars.RemoveHoliday(context.Background(), args[0], day); err != nil {
				return err
			}
			fmt.Printf("Removed holiday %s from %s\n", args[1], args[0])
			return nil
		},
	}

	cmd.AddCommand(add, remove)
	return cmd
}
