package cli

import (
	"github.com/jmorand/planline/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects  service.ProjectService
	Tasks     service.TaskService
	Calendars service.CalendarService
	Resources service.ResourceService
	Costs     service.CostService
	Schedule  service.ScheduleService
	Leveling  service.LevelingService
	Baselines service.BaselineService
	EVM       service.EVMService
}

// NewRootCmd creates the top-level "planline" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "planline",
		Short: "Calendar-aware project scheduler with resource leveling and earned value",
	}

	root.AddCommand(
		newProjectCmd(app),
		newTaskCmd(app),
		newDepCmd(app),
		newCalendarCmd(app),
		newResourceCmd(app),
		newCostCmd(app),
		newScheduleCmd(app),
		newLevelCmd(app),
		newBaselineCmd(app),
		newEVMCmd(app),
	)

	return root
}
