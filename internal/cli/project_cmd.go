package cli

import (
	"context"
	"fmt"

	"github.com/jmorand/planline/internal/cli/formatter"
	"github.com/jmorand/planline/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectInspectCmd(app),
		newProjectUpdateCmd(app),
		newProjectArchiveCmd(app),
		newProjectRemoveCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, description, start, calendarID string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Project{
				Name:        name,
				Description: description,
				CalendarID:  calendarID,
			}
			if start != "" {
				startDate, err := domain.ParseDate(start)
				if err != nil {
					return err
				}
				p.StartDate = &startDate
			}

			if err := app.Projects.Create(context.Background(), p); err != nil {
				return err
			}

			fmt.Printf("Created project %s [%s]\n", p.Name, p.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&description, "description", "", "Project description")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&calendarID, "calendar", "", "Working calendar ID (defaults to the standard calendar)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background(), all)
			if err != nil {
				return err
			}

			if len(projects) == 0 {
				fmt.Println("No projects found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatProjectList(projects))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived projects")

	return cmd
}

func newProjectInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect PROJECT",
		Short: "Show project details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, projectID)
			if err != nil {
				return err
			}
			tasks, err := app.Tasks.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatProjectInspect(formatter.ProjectInspectData{
				Project: p,
				Tasks:   tasks,
			}))
			return nil
		},
	}
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var name, description, start, status, calendarID string

	cmd := &cobra.Command{
		Use:   "update PROJECT",
		Short: "Update a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, projectID)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				p.Name = name
			}
			if cmd.Flags().Changed("description") {
				p.Description = description
			}
			if cmd.Flags().Changed("start") {
				startDate, err := domain.ParseDate(start)
				if err != nil {
					return err
				}
				p.StartDate = &startDate
			}
			if cmd.Flags().Changed("status") {
				p.Status = domain.ProjectStatus(status)
			}
			if cmd.Flags().Changed("calendar") {
				p.CalendarID = calendarID
			}

			if err := app.Projects.Update(ctx, p); err != nil {
				return err
			}

			fmt.Printf("Updated project %s\n", p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&description, "description", "", "Project description")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&status, "status", "", "Project status (active|on_hold|closed|archived)")
	cmd.Flags().StringVar(&calendarID, "calendar", "", "Working calendar ID")

	return cmd
}

func newProjectArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive PROJECT",
		Short: "Archive a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Archive(ctx, projectID); err != nil {
				return err
			}
			fmt.Printf("Archived project %s\n", projectID[:8])
			return nil
		},
	}
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove PROJECT",
		Short: "Remove a project and everything in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(ctx, projectID, force); err != nil {
				return err
			}
			fmt.Printf("Removed project %s\n", projectID[:8])
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Remove even if the project is not archived")

	return cmd
}
