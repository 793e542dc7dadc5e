package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmorand/planline/internal/db"
	"github.com/jmorand/planline/internal/domain"
)

// SQLiteAssignmentRepo implements AssignmentRepo over SQLite.
type SQLiteAssignmentRepo struct {
	db db.DBTX
}

// NewSQLiteAssignmentRepo creates a new SQLiteAssignmentRepo.
func NewSQLiteAssignmentRepo(conn db.DBTX) *SQLiteAssignmentRepo {
	return &SQLiteAssignmentRepo{db: conn}
}

const assignmentColumns = `id, resource_id, task_id, allocation_percent, planned_hours, logged_hours, created_at, updated_at`

func (r *SQLiteAssignmentRepo) Create(ctx context.Context, a *domain.Assignment) error {
	query := `INSERT INTO assignments (` + assignmentColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.ResourceID,
		a.TaskID,
		a.AllocationPercent,
		a.PlannedHours,
		a.LoggedHours,
		a.CreatedAt.Format(time.RFC3339),
		a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting assignment: %w", err)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) GetByID(ctx context.Context, id string) (*domain.Assignment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+assignmentColumns+` FROM assignments WHERE id = ?`, id)
	a, err := scanAssignment(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("assignment %s: %w", id, ErrNotFound)
	}
	return a, err
}

func (r *SQLiteAssignmentRepo) ListByTask(ctx context.Context, taskID string) ([]*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE task_id = ? ORDER BY created_at, id`
	return r.list(ctx, query, taskID)
}

func (r *SQLiteAssignmentRepo) ListByResource(ctx context.Context, resourceID string) ([]*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE resource_id = ? ORDER BY created_at, id`
	return r.list(ctx, query, resourceID)
}

func (r *SQLiteAssignmentRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Assignment, error) {
	query := `SELECT a.id, a.resource_id, a.task_id, a.allocation_percent, a.planned_hours, a.logged_hours, a.created_at, a.updated_at
		FROM assignments a
		JOIN tasks t ON t.id = a.task_id
		WHERE t.project_id = ?
		ORDER BY a.created_at, a.id`
	return r.list(ctx, query, projectID)
}

func (r *SQLiteAssignmentRepo) Update(ctx context.Context, a *domain.Assignment) error {
	query := `UPDATE assignments SET allocation_percent = ?, planned_hours = ?, logged_hours = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		a.AllocationPercent,
		a.PlannedHours,
		a.LoggedHours,
		a.UpdatedAt.Format(time.RFC3339),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating assignment: %w", err)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM assignments WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting assignment: %w", err)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) list(ctx context.Context, query string, arg string) ([]*domain.Assignment, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	defer rows.Close()

	var assignments []*domain.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows.Scan)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignments: %w", err)
	}
	return assignments, nil
}

func scanAssignment(scan func(dest ...any) error) (*domain.Assignment, error) {
	var a domain.Assignment
	var createdAtStr, updatedAtStr string
	err := scan(&a.ID, &a.ResourceID, &a.TaskID,
		&a.AllocationPercent, &a.PlannedHours, &a.LoggedHours,
		&createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning assignment: %w", err)
	}
	var parseErr error
	a.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	a.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &a, nil
}
