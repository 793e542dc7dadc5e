package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmorand/planline/internal/db"
	"github.com/jmorand/planline/internal/domain"
)

// SQLiteTaskRepo implements TaskRepo over SQLite.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

const taskColumns = `id, project_id, name, notes, duration_days, status, priority, percent_complete,
	planned_start, deadline, actual_start, actual_end,
	computed_start, computed_end, computed_float, created_at, updated_at`

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.ProjectID,
		t.Name,
		t.Notes,
		t.DurationDays,
		string(t.Status),
		string(t.Priority),
		t.PercentComplete,
		nullableTimeToString(t.PlannedStart, dateLayout),
		nullableTimeToString(t.Deadline, dateLayout),
		nullableTimeToString(t.ActualStart, dateLayout),
		nullableTimeToString(t.ActualEnd, dateLayout),
		nullableTimeToString(t.ComputedStart, dateLayout),
		nullableTimeToString(t.ComputedEnd, dateLayout),
		nullableIntToValue(t.ComputedFloat),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	t, err := scanTask(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return t, err
}

func (r *SQLiteTaskRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = ? ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET name = ?, notes = ?, duration_days = ?, status = ?, priority = ?,
		percent_complete = ?, planned_start = ?, deadline = ?, actual_start = ?, actual_end = ?,
		updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		t.Name,
		t.Notes,
		t.DurationDays,
		string(t.Status),
		string(t.Priority),
		t.PercentComplete,
		nullableTimeToString(t.PlannedStart, dateLayout),
		nullableTimeToString(t.Deadline, dateLayout),
		nullableTimeToString(t.ActualStart, dateLayout),
		nullableTimeToString(t.ActualEnd, dateLayout),
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) UpdateComputedDates(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET computed_start = ?, computed_end = ?, computed_float = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		nullableTimeToString(t.ComputedStart, dateLayout),
		nullableTimeToString(t.ComputedEnd, dateLayout),
		nullableIntToValue(t.ComputedFloat),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task computed dates: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return nil
}

func scanTask(scan func(dest ...any) error) (*domain.Task, error) {
	var t domain.Task
	var statusStr, priorityStr, createdAtStr, updatedAtStr string
	var plannedStart, deadline, actualStart, actualEnd, computedStart, computedEnd sql.NullString
	var computedFloat sql.NullInt64

	err := scan(
		&t.ID, &t.ProjectID, &t.Name, &t.Notes,
		&t.DurationDays, &statusStr, &priorityStr, &t.PercentComplete,
		&plannedStart, &deadline, &actualStart, &actualEnd,
		&computedStart, &computedEnd, &computedFloat,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.Status = domain.TaskStatus(statusStr)
	t.Priority = domain.TaskPriority(priorityStr)
	t.PlannedStart = parseNullableTime(plannedStart, dateLayout)
	t.Deadline = parseNullableTime(deadline, dateLayout)
	t.ActualStart = parseNullableTime(actualStart, dateLayout)
	t.ActualEnd = parseNullableTime(actualEnd, dateLayout)
	t.ComputedStart = parseNullableTime(computedStart, dateLayout)
	t.ComputedEnd = parseNullableTime(computedEnd, dateLayout)
	if computedFloat.Valid {
		f := int(computedFloat.Int64)
		t.ComputedFloat = &f
	}

	var parseErr error
	t.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	t.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &t, nil
}
