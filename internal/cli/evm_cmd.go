package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmorand/planline/internal/cli/formatter"
	"github.com/jmorand/planline/internal/domain"
	"github.com/jmorand/planline/internal/evm"
	"github.com/spf13/cobra"
)

func newEVMCmd(app *App) *cobra.Command {
	var baselineID, asOf string

	cmd := &cobra.Command{
		Use:   "evm PROJECT",
		Short: "Report earned-value metrics against a baseline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			asOfDate := time.Now().UTC().Truncate(24 * time.Hour)
			if asOf != "" {
				asOfDate, err = domain.ParseDate(asOf)
				if err != nil {
					return err
				}
			}

			m, err := app.EVM.Metrics(ctx, projectID, baselineID, asOfDate)
			if errors.Is(err, evm.ErrNoBaseline) {
				// Missing baseline is guidance, not failure.
				fmt.Fprintln(cmd.OutOrStdout(), "No baseline recorded for this project.")
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Create one with 'planline baseline create' to enable earned-value reporting."))
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatMetrics(m))
			return nil
		},
	}

	cmd.Flags().StringVar(&baselineID, "baseline", "", "Baseline ID (defaults to the latest)")
	cmd.Flags().StringVar(&asOf, "as-of", "", "Status date (YYYY-MM-DD, defaults to today)")

	return cmd
}
