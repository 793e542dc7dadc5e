package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmorand/planline/internal/db"
	"github.com/jmorand/planline/internal/domain"
)

// SQLiteResourceRepo implements ResourceRepo over SQLite.
type SQLiteResourceRepo struct {
	db db.DBTX
}

// NewSQLiteResourceRepo creates a new SQLiteResourceRepo.
func NewSQLiteResourceRepo(conn db.DBTX) *SQLiteResourceRepo {
	return &SQLiteResourceRepo{db: conn}
}

const resourceColumns = `id, name, role, hourly_rate, created_at, updated_at`

func (r *SQLiteResourceRepo) Create(ctx context.Context, res *domain.Resource) error {
	query := `INSERT INTO resources (` + resourceColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		res.ID,
		res.Name,
		res.Role,
		res.HourlyRate,
		res.CreatedAt.Format(time.RFC3339),
		res.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting resource: %w", err)
	}
	return nil
}

func (r *SQLiteResourceRepo) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+resourceColumns+` FROM resources WHERE id = ?`, id)
	res, err := scanResource(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("resource %s: %w", id, ErrNotFound)
	}
	return res, err
}

func (r *SQLiteResourceRepo) List(ctx context.Context) ([]*domain.Resource, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+resourceColumns+` FROM resources ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing resources: %w", err)
	}
	defer rows.Close()

	var resources []*domain.Resource
	for rows.Next() {
		res, err := scanResource(rows.Scan)
		if err != nil {
			return nil, err
		}
		resources = append(resources, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating resources: %w", err)
	}
	return resources, nil
}

func (r *SQLiteResourceRepo) Update(ctx context.Context, res *domain.Resource) error {
	query := `UPDATE resources SET name = ?, role = ?, hourly_rate = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		res.Name,
		res.Role,
		res.HourlyRate,
		res.UpdatedAt.Format(time.RFC3339),
		res.ID,
	)
	if err != nil {
		return fmt.Errorf("updating resource: %w", err)
	}
	return nil
}

func (r *SQLiteResourceRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM resources WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting resource: %w", err)
	}
	return nil
}

func scanResource(scan func(dest ...any) error) (*domain.Resource, error) {
	var res domain.Resource
	var createdAtStr, updatedAtStr string
	err := scan(&res.ID, &res.Name, &res.Role, &res.HourlyRate, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning resource: %w", err)
	}
	var parseErr error
	res.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	res.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &res, nil
}
