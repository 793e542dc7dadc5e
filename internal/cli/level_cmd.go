package cli

import (
	"context"
	"fmt"

	"github.com/jmorand/planline/internal/cli/formatter"
	"github.com/jmorand/planline/internal/domain"
	"github.com/spf13/cobra"
)

func newLevelCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "level",
		Short: "Analyze and resolve resource conflicts",
	}

	cmd.AddCommand(
		newLevelAnalyzeCmd(app),
		newLevelAutoCmd(app),
		newLevelShiftCmd(app),
	)

	return cmd
}

func newLevelAnalyzeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze PROJECT",
		Short: "Report resource over-allocation without changing anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			conflicts, err := app.Leveling.Analyze(ctx, projectID)
			if err != nil {
				return err
			}

			resourceNames, err := resourceNameLookup(ctx, app)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatConflicts(conflicts, resourceNames))
			return nil
		},
	}
}

func newLevelAutoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "auto PROJECT",
		Short: "Shift tasks to resolve conflicts and save the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			res, err := app.Leveling.AutoLevel(ctx, projectID)
			if err != nil {
				return err
			}

			resourceNames, err := resourceNameLookup(ctx, app)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatLevelingResult(res, resourceNames))
			return nil
		},
	}
}

func newLevelShiftCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "shift TASK DATE",
		Short: "Move one task to a new start date",
		Args:  cobra.ExactArgs(2),
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
			newStart, err := domain.ParseDate(args[1])
			if err != nil {
				return err
			}

			res, err := app.Leveling.Shift(ctx, projectID, taskID, newStart)
			if err != nil {
				return err
			}

			resourceNames, err := resourceNameLookup(ctx, app)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatLevelingResult(res, resourceNames))
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &project)
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
