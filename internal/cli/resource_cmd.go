package cli

import (
	"context"
	"fmt"

	"github.com/jmorand/planline/internal/cli/formatter"
	"github.com/jmorand/planline/internal/domain"
	"github.com/spf13/cobra"
)

func newResourceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resource",
		Short: "Manage resources and assignments",
	}

	cmd.AddCommand(
		newResourceAddCmd(app),
		newResourceListCmd(app),
		newResourceRemoveCmd(app),
		newResourceAssignCmd(app),
		newResourceUnassignCmd(app),
		newResourceAssignmentsCmd(app),
	)

	return cmd
}

func newResourceAddCmd(app *App) *cobra.Command {
	var name, role string
	var rate float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a resource",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := &domain.Resource{Name: name, Role: role, HourlyRate: rate}
			if err := app.Resources.Create(context.Background(), r); err != nil {
				return err
			}
			fmt.Printf("Created resource %s [%s]\n", r.Name, r.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Resource name")
	cmd.Flags().StringVar(&role, "role", "", "Role or trade")
	cmd.Flags().Float64Var(&rate, "rate", 0, "Hourly rate")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newResourceListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			resources, err := app.Resources.List(context.Background())
			if err != nil {
				return err
			}

			if len(resources) == 0 {
				fmt.Println("No resources found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatResourceList(resources))
			return nil
		},
	}
}

func newResourceRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove RESOURCE",
		Short: "Remove a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			resourceID, err := resolveResourceID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Resources.Delete(ctx, resourceID); err != nil {
				return err
			}
			fmt.Printf("Removed resource %s\n", resourceID[:8])
			return nil
		},
	}
}

func newResourceAssignCmd(app *App) *cobra.Command {
	var project string
	var allocation, plannedHours float64

	cmd := &cobra.Command{
		Use:   "assign RESOURCE TASK",
		Short: "Assign a resource to a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			resourceID, err := resolveResourceID(ctx, app, args[0])
			if err != nil {
				return err
			}
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskID(ctx, app, projectID, args[1])
			if err != nil {
				return err
			}

			a := &domain.Assignment{
				ResourceID:        resourceID,
				TaskID:            taskID,
				AllocationPercent: allocation,
				PlannedHours:      plannedHours,
			}
			if err := app.Resources.Assign(ctx, a); err != nil {
				return err
			}

			fmt.Printf("Assigned %s to %s at %.0f%%\n", resourceID[:8], taskID[:8], allocation)
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &project)
	cmd.Flags().Float64Var(&allocation, "allocation", 100, "Allocation percent (0-100)")
	cmd.Flags().Float64Var(&plannedHours, "hours", 0, "Planned hours of work")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newResourceUnassignCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unassign ASSIGNMENT_ID",
		Short: "Remove an assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Resources.Unassign(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed assignment %s\n", args[0])
			return nil
		},
	}
}

func newResourceAssignmentsCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "assignments",
		Short: "List a project's assignments",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			assignments, err := app.Resources.ListAssignmentsByProject(ctx, projectID)
			if err != nil {
				return err
			}

			if len(assignments) == 0 {
				fmt.Println("No assignments found.")
				return nil
			}

			resourceNames, err := resourceNameLookup(ctx, app)
			if err != nil {
				return err
			}
			taskNames, err := taskNameLookup(ctx, app, projectID)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatAssignmentList(assignments, resourceNames, taskNames))
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &project)
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func resourceNameLookup(ctx context.Context, app *App) (map[string]string, error) {
	resources, err := app.Resources.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(resources))
	for _, r := range resources {
		out[r.ID] = r.Name
	}
	return out, nil
}

func taskNameLookup(ctx context.Context, app *App, projectID string) (map[string]string, error) {
	tasks, err := app.Tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(tasks))
	for _, t := range tasks {
		out[t.ID] = t.Name
	}
	return out, nil
}
