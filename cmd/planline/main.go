package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmorand/planline/internal/cli"
	"github.com/jmorand/planline/internal/cli/formatter"
	"github.com/jmorand/planline/internal/db"
	"github.com/jmorand/planline/internal/repository"
	"github.com/jmorand/planline/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.planline/planline.db
	dbPath := os.Getenv("PLANLINE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".planline", "planline.db")
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		formatter.DisableColor()
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	depRepo := repository.NewSQLiteDependencyRepo(database)
	calRepo := repository.NewSQLiteCalendarRepo(database)
	resRepo := repository.NewSQLiteResourceRepo(database)
	asgRepo := repository.NewSQLiteAssignmentRepo(database)
	costRepo := repository.NewSQLiteCostRepo(database)
	baseRepo := repository.NewSQLiteBaselineRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Optional service telemetry to stderr
	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if os.Getenv("PLANLINE_LOG") == "1" {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	app := &cli.App{
		Projects:  service.NewProjectService(projectRepo),
		Tasks:     service.NewTaskService(taskRepo, depRepo, observer),
		Calendars: service.NewCalendarService(calRepo),
		Resources: service.NewResourceService(resRepo, asgRepo, taskRepo),
		Costs:     service.NewCostService(costRepo),
		Schedule:  service.NewScheduleService(projectRepo, taskRepo, depRepo, calRepo, uow, observer),
		Leveling:  service.NewLevelingService(projectRepo, taskRepo, depRepo, calRepo, asgRepo, uow, observer),
		Baselines: service.NewBaselineService(projectRepo, taskRepo, depRepo, calRepo, asgRepo, resRepo, costRepo, baseRepo, uow, observer),
		EVM:       service.NewEVMService(projectRepo, taskRepo, calRepo, costRepo, baseRepo, observer),
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
