package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jmorand/planline/internal/cli/formatter"
	"github.com/jmorand/planline/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskUpdateCmd(app),
		newTaskProgressCmd(app),
		newTaskStartCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var project, name, notes, priority, plannedStart, deadline string
	var duration int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new task",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			task := &domain.Task{
				ProjectID:    projectID,
				Name:         name,
				Notes:        notes,
				DurationDays: duration,
				Priority:     domain.TaskPriority(priority),
			}
			if plannedStart != "" {
				d, err := domain.ParseDate(plannedStart)
				if err != nil {
					return err
				}
				task.PlannedStart = &d
			}
			if deadline != "" {
				d, err := domain.ParseDate(deadline)
				if err != nil {
					return err
				}
				task.Deadline = &d
			}

			if err := app.Tasks.Create(ctx, task); err != nil {
				return err
			}

			fmt.Printf("Created task %s [%s]\n", task.Name, task.ID[:8])
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &project)
	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.Flags().IntVar(&duration, "duration", 1, "Duration in working days (0 = milestone)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (high|medium|low)")
	cmd.Flags().StringVar(&plannedStart, "start", "", "Planned start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			tasks, err := app.Tasks.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}

			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatTaskList(tasks))
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &project)
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var project, name, notes, priority, status, plannedStart, deadline string
	var duration int

	cmd := &cobra.Command{
		Use:   "update TASK",
		Short: "Update a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}
			task, err := app.Tasks.GetByID(ctx, taskID)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				task.Name = name
			}
			if cmd.Flags().Changed("notes") {
				task.Notes = notes
			}
			if cmd.Flags().Changed("duration") {
				task.DurationDays = duration
			}
			if cmd.Flags().Changed("priority") {
				task.Priority = domain.TaskPriority(priority)
			}
			if cmd.Flags().Changed("status") {
				task.Status = domain.TaskStatus(status)
			}
			if cmd.Flags().Changed("start") {
				d, err := domain.ParseDate(plannedStart)
				if err != nil {
					return err
				}
				task.PlannedStart = &d
			}
			if cmd.Flags().Changed("deadline") {
				d, err := domain.ParseDate(deadline)
				if err != nil {
					return err
				}
				task.Deadline = &d
			}

			if err := app.Tasks.Update(ctx, task); err != nil {
				return err
			}

			fmt.Printf("Updated task %s\n", task.Name)
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &project)
	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.Flags().IntVar(&duration, "duration", 0, "Duration in working days")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (high|medium|low)")
	cmd.Flags().StringVar(&status, "status", "", "Status (not_started|in_progress|completed|on_hold)")
	cmd.Flags().StringVar(&plannedStart, "start", "", "Planned start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newTaskProgressCmd(app *App) *cobra.Command {
	var project string
	var percent float64

	cmd := &cobra.Command{
		Use:   "progress TASK",
		Short: "Record task progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}

			if err := app.Tasks.SetProgress(ctx, taskID, percent, time.Now()); err != nil {
				return err
			}

			fmt.Printf("Task %s at %.0f%%\n", taskID[:8], percent)
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &project)
	cmd.Flags().Float64Var(&percent, "percent", 0, "Percent complete (0-100)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("percent")

	return cmd
}

func newTaskStartCmd(app *App) *cobra.Command {
	var project, on string

	cmd := &cobra.Command{
		Use:   "start TASK",
		Short: "Record a task's actual start",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}

			day := time.Now().UTC().Truncate(24 * time.Hour)
			if on != "" {
				day, err = domain.ParseDate(on)
				if err != nil {
					return err
				}
			}

			if err := app.Tasks.Start(ctx, taskID, day); err != nil {
				return err
			}

			fmt.Printf("Started task %s on %s\n", taskID[:8], day.Format(domain.DateLayout))
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &project)
	cmd.Flags().StringVar(&on, "on", "", "Actual start date (YYYY-MM-DD, defaults to today)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "remove TASK",
		Short: "Remove a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Delete(ctx, taskID); err != nil {
				return err
			}
			fmt.Printf("Removed task %s\n", taskID[:8])
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &project)
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
