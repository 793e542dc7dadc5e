package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmorand/planline/internal/db"
	"github.com/jmorand/planline/internal/domain"
)

// SQLiteBaselineRepo implements BaselineRepo over SQLite. A baseline is a
// header row plus its task rows; deletion cascades through the schema.
type SQLiteBaselineRepo struct {
	db db.DBTX
}

// NewSQLiteBaselineRepo creates a new SQLiteBaselineRepo.
func NewSQLiteBaselineRepo(conn db.DBTX) *SQLiteBaselineRepo {
	return &SQLiteBaselineRepo{db: conn}
}

func (r *SQLiteBaselineRepo) Create(ctx context.Context, b *domain.Baseline) error {
	query := `INSERT INTO baselines (id, project_id, name, state_hash, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.ProjectID,
		b.Name,
		hashToString(b.StateHash),
		b.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting baseline: %w", err)
	}

	taskQuery := `INSERT INTO baseline_tasks
		(baseline_id, task_id, task_name, start, finish, duration_days, planned_cost, planned_hours)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for _, t := range b.Tasks {
		_, err := r.db.ExecContext(ctx, taskQuery,
			b.ID,
			t.TaskID,
			t.TaskName,
			nullableTimeToString(t.Start, dateLayout),
			nullableTimeToString(t.Finish, dateLayout),
			t.DurationDays,
			t.PlannedCost,
			t.PlannedHours,
		)
		if err != nil {
			return fmt.Errorf("inserting baseline task %s: %w", t.TaskID, err)
		}
	}
	return nil
}

func (r *SQLiteBaselineRepo) GetByID(ctx context.Context, id string) (*domain.Baseline, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, project_id, name, state_hash, created_at FROM baselines WHERE id = ?`, id)
	b, err := scanBaseline(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("baseline %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadTasks(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *SQLiteBaselineRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Baseline, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, project_id, name, state_hash, created_at
		FROM baselines WHERE project_id = ? ORDER BY created_at DESC, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing baselines: %w", err)
	}
	defer rows.Close()

	var baselines []*domain.Baseline
	for rows.Next() {
		b, err := scanBaseline(rows.Scan)
		if err != nil {
			return nil, err
		}
		baselines = append(baselines, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating baselines: %w", err)
	}
	return baselines, nil
}

func (r *SQLiteBaselineRepo) Latest(ctx context.Context, projectID string) (*domain.Baseline, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, project_id, name, state_hash, created_at
		FROM baselines WHERE project_id = ? ORDER BY created_at DESC, id LIMIT 1`, projectID)
	b, err := scanBaseline(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project %s baseline: %w", projectID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadTasks(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *SQLiteBaselineRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM baselines WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting baseline: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting baseline: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("baseline %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteBaselineRepo) loadTasks(ctx context.Context, b *domain.Baseline) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT baseline_id, task_id, task_name, start, finish, duration_days, planned_cost, planned_hours
		FROM baseline_tasks WHERE baseline_id = ? ORDER BY task_id`, b.ID)
	if err != nil {
		return fmt.Errorf("listing baseline tasks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t domain.BaselineTask
		var start, finish sql.NullString
		if err := rows.Scan(&t.BaselineID, &t.TaskID, &t.TaskName,
			&start, &finish, &t.DurationDays, &t.PlannedCost, &t.PlannedHours); err != nil {
			return fmt.Errorf("scanning baseline task: %w", err)
		}
		t.Start = parseNullableTime(start, dateLayout)
		t.Finish = parseNullableTime(finish, dateLayout)
		b.Tasks = append(b.Tasks, t)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating baseline tasks: %w", err)
	}
	return nil
}

func scanBaseline(scan func(dest ...any) error) (*domain.Baseline, error) {
	var b domain.Baseline
	var hashStr, createdAtStr string
	err := scan(&b.ID, &b.ProjectID, &b.Name, &hashStr, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning baseline: %w", err)
	}
	if b.StateHash, err = stringToHash(hashStr); err != nil {
		return nil, err
	}
	b.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &b, nil
}
