package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmorand/planline/internal/cli/formatter"
	"github.com/jmorand/planline/internal/domain"
	"github.com/spf13/cobra"
)

func newDepCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dep",
		Short: "Manage task dependencies",
	}

	cmd.AddCommand(
		newDepAddCmd(app),
		newDepListCmd(app),
		newDepRemoveCmd(app),
	)

	return cmd
}

func newDepAddCmd(app *App) *cobra.Command {
	var project, depType string
	var lag int

	cmd := &cobra.Command{
		Use:   "add PREDECESSOR SUCCESSOR",
		Short: "Link two tasks",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			predID, err := resolveTaskID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}
			succID, err := resolveTaskID(ctx, app, projectID, args[1])
			if err != nil {
				return err
			}

			d := &domain.Dependency{
				PredecessorID: predID,
				SuccessorID:   succID,
				Type:          domain.DependencyType(strings.ToUpper(depType)),
				LagDays:       lag,
			}
			if err := app.Tasks.AddDependency(ctx, d); err != nil {
				return err
			}

			fmt.Printf("Linked %s %s %s\n", predID[:8], d.Type, succID[:8])
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &project)
	cmd.Flags().StringVar(&depType, "type", "FS", "Dependency type (FS|FF|SS|SF)")
	cmd.Flags().IntVar(&lag, "lag", 0, "Lag in working days (negative = lead)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newDepListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			deps, err := app.Tasks.ListDependencies(ctx, projectID)
			if err != nil {
				return err
			}

			if len(deps) == 0 {
				fmt.Println("No dependencies found.")
				return nil
			}

			tasks, err := app.Tasks.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatDependencyList(deps, tasks))
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &project)
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newDepRemoveCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "remove PREDECESSOR SUCCESSOR",
		Short: "Unlink two tasks",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			predID, err := resolveTaskID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}
			succID, err := resolveTaskID(ctx, app, projectID, args[1])
			if err != nil {
				return err
			}

			if err := app.Tasks.RemoveDependency(ctx, predID, succID); err != nil {
				return err
			}

			fmt.Printf("Unlinked %s → %s\n", predID[:8], succID[:8])
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &project)
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
