package cli

import (
	"context"
	"fmt"

	"github.com/jmorand/planline/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	var preview bool

	cmd := &cobra.Command{
		Use:   "schedule PROJECT",
		Short: "Compute the project schedule and critical path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			run := app.Schedule.Reschedule
			if preview {
				run = app.Schedule.Preview
			}
			outcome, err := run(ctx, projectID)
			if err != nil {
				return err
			}

			if len(outcome.Tasks) == 0 {
				fmt.Println("Nothing to schedule.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatScheduleResult(outcome.Result, outcome.Tasks))
			if preview {
				fmt.Println(formatter.Dim("Preview only; nothing was saved."))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&preview, "preview", false, "Compute without saving")

	return cmd
}
