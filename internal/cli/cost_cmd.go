package cli

import (
	"context"
	"fmt"

	"github.com/jmorand/planline/internal/cli/formatter"
	"github.com/jmorand/planline/internal/domain"
	"github.com/spf13/cobra"
)

func newCostCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Manage budget lines",
	}

	cmd.AddCommand(
		newCostAddCmd(app),
		newCostListCmd(app),
		newCostActualCmd(app),
		newCostRemoveCmd(app),
	)

	return cmd
}

func newCostAddCmd(app *App) *cobra.Command {
	var project, task, description, costType string
	var planned float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a budget line",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			c := &domain.CostItem{
				ProjectID:     projectID,
				Description:   description,
				Type:          domain.CostType(costType),
				PlannedAmount: planned,
			}
			if task != "" {
				taskID, err := resolveTaskID(ctx, app, projectID, task)
				if err != nil {
					return err
				}
				c.TaskID = &taskID
			}

			if err := app.Costs.Create(ctx, c); err != nil {
				return err
			}

			fmt.Printf("Created cost item %s [%s]\n", c.Description, c.ID[:8])
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &project)
	cmd.Flags().StringVar(&task, "task", "", "Task the cost belongs to (optional)")
	cmd.Flags().StringVar(&description, "description", "", "Line description")
	cmd.Flags().StringVar(&costType, "type", "other", "Cost type (labor|material|service|other)")
	cmd.Flags().Float64Var(&planned, "planned", 0, "Planned amount")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func newCostListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's budget lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			items, err := app.Costs.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}

			if len(items) == 0 {
				fmt.Println("No cost items found.")
				return nil
			}

			taskNames, err := taskNameLookup(ctx, app, projectID)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatCostList(items, taskNames))
			return nil
		},
	}

	addProjectFlag(cmd.Flags(), &project)
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newCostActualCmd(app *App) *cobra.Command {
	var incurred string
	var amount float64

	cmd := &cobra.Command{
		Use:   "actual COST_ID",
		Short: "Record actual spend on a budget line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := app.Costs.GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			c.ActualAmount = amount
			if incurred != "" {
				day, err := domain.ParseDate(incurred)
				if err != nil {
					return err
				}
				c.IncurredDate = &day
			}

			if err := app.Costs.Update(ctx, c); err != nil {
				return err
			}

			fmt.Printf("Recorded %.2f against %s\n", amount, c.ID[:8])
			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "Actual amount spent")
	cmd.Flags().StringVar(&incurred, "incurred", "", "Date incurred (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newCostRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove COST_ID",
		Short: "Remove a budget line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Costs.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed cost item %s\n", args[0])
			return nil
		},
	}
}
