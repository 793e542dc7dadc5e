package cli

import (
	"context"
	"fmt"

	"github.com/jmorand/planline/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newBaselineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Manage plan baselines",
	}

	cmd.AddCommand(
		newBaselineCreateCmd(app),
		newBaselineListCmd(app),
		newBaselineRemoveCmd(app),
	)

	return cmd
}

func newBaselineCreateCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create PROJECT",
		Short: "Snapshot the current plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			b, err := app.Baselines.Create(ctx, projectID, name)
			if err != nil {
				return err
			}

			fmt.Printf("Created baseline %s [%s] over %d tasks\n", b.Name, b.ID[:8], len(b.Tasks))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Baseline name")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newBaselineListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT",
		Short: "List a project's baselines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			baselines, err := app.Baselines.List(ctx, projectID)
			if err != nil {
				return err
			}

			if len(baselines) == 0 {
				fmt.Println("No baselines found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatBaselineList(baselines))
			return nil
		},
	}
}

func newBaselineRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove BASELINE_ID",
		Short: "Remove a baseline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Baselines.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed baseline %s\n", args[0])
			return nil
		},
	}
}
