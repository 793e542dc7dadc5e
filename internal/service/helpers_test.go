package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/jmorand/planline/internal/domain"
	"github.com/jmorand/planline/internal/repository"
	"github.com/jmorand/planline/internal/testutil"
	"github.com/stretchr/testify/require"
)

// env bundles every service over one in-memory database.
type env struct {
	db        *sql.DB
	projects  ProjectService
	tasks     TaskService
	calendars CalendarService
	resources ResourceService
	costs     CostService
	schedule  ScheduleService
	leveling  LevelingService
	baselines BaselineService
	evm       EVMService

	taskRepo repository.TaskRepo
}

func newEnv(t *testing.T) *env {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	projectRepo := repository.NewSQLiteProjectRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	depRepo := repository.NewSQLiteDependencyRepo(database)
	calRepo := repository.NewSQLiteCalendarRepo(database)
	resRepo := repository.NewSQLiteResourceRepo(database)
	asgRepo := repository.NewSQLiteAssignmentRepo(database)
	costRepo := repository.NewSQLiteCostRepo(database)
	baseRepo := repository.NewSQLiteBaselineRepo(database)

	return &env{
		db:        database,
		projects:  NewProjectService(projectRepo),
		tasks:     NewTaskService(taskRepo, depRepo),
		calendars: NewCalendarService(calRepo),
		resources: NewResourceService(resRepo, asgRepo, taskRepo),
		costs:     NewCostService(costRepo),
		schedule:  NewScheduleService(projectRepo, taskRepo, depRepo, calRepo, uow),
		leveling:  NewLevelingService(projectRepo, taskRepo, depRepo, calRepo, asgRepo, uow),
		baselines: NewBaselineService(projectRepo, taskRepo, depRepo, calRepo, asgRepo, resRepo, costRepo, baseRepo, uow),
		evm:       NewEVMService(projectRepo, taskRepo, calRepo, costRepo, baseRepo),
		taskRepo:  taskRepo,
	}
}

// repoSet exposes raw repositories for tests that wire services by hand.
type repoSet struct {
	projects  repository.ProjectRepo
	tasks     repository.TaskRepo
	deps      repository.DependencyRepo
	calendars repository.CalendarRepo
}

func newEnvRepoSet(t *testing.T, database *sql.DB) repoSet {
	t.Helper()
	return repoSet{
		projects:  repository.NewSQLiteProjectRepo(database),
		tasks:     repository.NewSQLiteTaskRepo(database),
		deps:      repository.NewSQLiteDependencyRepo(database),
		calendars: repository.NewSQLiteCalendarRepo(database),
	}
}

func (e *env) seedProject(t *testing.T) *domain.Project {
	t.Helper()
	proj := testutil.NewTestProject("Test Project")
	require.NoError(t, e.projects.Create(context.Background(), proj))
	return proj
}

func (e *env) seedTask(t *testing.T, projectID, name string, days int) *domain.Task {
	t.Helper()
	task := testutil.NewTestTask(projectID, name, testutil.WithDuration(days))
	require.NoError(t, e.tasks.Create(context.Background(), task))
	return task
}
