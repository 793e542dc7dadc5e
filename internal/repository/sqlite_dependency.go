package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmorand/planline/internal/db"
	"github.com/jmorand/planline/internal/domain"
)

// SQLiteDependencyRepo implements DependencyRepo over SQLite.
type SQLiteDependencyRepo struct {
	db db.DBTX
}

// NewSQLiteDependencyRepo creates a new SQLiteDependencyRepo.
func NewSQLiteDependencyRepo(conn db.DBTX) *SQLiteDependencyRepo {
	return &SQLiteDependencyRepo{db: conn}
}

const dependencyColumns = `predecessor_id, successor_id, type, lag_days, created_at`

func (r *SQLiteDependencyRepo) Create(ctx context.Context, d *domain.Dependency) error {
	query := `INSERT INTO dependencies (` + dependencyColumns + `) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.PredecessorID,
		d.SuccessorID,
		string(d.Type),
		d.LagDays,
		d.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting dependency: %w", err)
	}
	return nil
}

func (r *SQLiteDependencyRepo) Delete(ctx context.Context, predecessorID, successorID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM dependencies WHERE predecessor_id = ? AND successor_id = ?`,
		predecessorID, successorID)
	if err != nil {
		return fmt.Errorf("deleting dependency: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting dependency: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("dependency %s -> %s: %w", predecessorID, successorID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteDependencyRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Dependency, error) {
	query := `SELECT d.predecessor_id, d.successor_id, d.type, d.lag_days, d.created_at
		FROM dependencies d
		JOIN tasks t ON t.id = d.successor_id
		WHERE t.project_id = ?
		ORDER BY d.created_at, d.predecessor_id, d.successor_id`
	return r.list(ctx, query, projectID)
}

func (r *SQLiteDependencyRepo) ListPredecessors(ctx context.Context, taskID string) ([]domain.Dependency, error) {
	query := `SELECT ` + dependencyColumns + ` FROM dependencies WHERE successor_id = ? ORDER BY created_at`
	return r.list(ctx, query, taskID)
}

func (r *SQLiteDependencyRepo) ListSuccessors(ctx context.Context, taskID string) ([]domain.Dependency, error) {
	query := `SELECT ` + dependencyColumns + ` FROM dependencies WHERE predecessor_id = ? ORDER BY created_at`
	return r.list(ctx, query, taskID)
}

func (r *SQLiteDependencyRepo) list(ctx context.Context, query string, arg string) ([]domain.Dependency, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("listing dependencies: %w", err)
	}
	defer rows.Close()

	var deps []domain.Dependency
	for rows.Next() {
		var d domain.Dependency
		var typeStr, createdAtStr string
		if err := rows.Scan(&d.PredecessorID, &d.SuccessorID, &typeStr, &d.LagDays, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning dependency: %w", err)
		}
		d.Type = domain.DependencyType(typeStr)
		d.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		deps = append(deps, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dependencies: %w", err)
	}
	return deps, nil
}
