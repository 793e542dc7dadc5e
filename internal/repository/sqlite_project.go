package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmorand/planline/internal/db"
	"github.com/jmorand/planline/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo over SQLite.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

const dateLayout = "2006-01-02"

const projectColumns = `id, name, description, status, start_date, calendar_id, created_at, updated_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		string(p.Status),
		nullableTimeToString(p.StartDate, dateLayout),
		p.CalendarID,
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	p, err := scanProject(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return p, err
}

func (r *SQLiteProjectRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at`
	if !includeArchived {
		query = `SELECT ` + projectColumns + ` FROM projects WHERE status != 'archived' ORDER BY created_at`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET name = ?, description = ?, status = ?, start_date = ?, calendar_id = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.Description,
		string(p.Status),
		nullableTimeToString(p.StartDate, dateLayout),
		p.CalendarID,
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

func scanProject(scan func(dest ...any) error) (*domain.Project, error) {
	var p domain.Project
	var statusStr, createdAtStr, updatedAtStr string
	var startDateStr sql.NullString

	err := scan(
		&p.ID, &p.Name, &p.Description, &statusStr,
		&startDateStr, &p.CalendarID,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	p.Status = domain.ProjectStatus(statusStr)
	p.StartDate = parseNullableTime(startDateStr, dateLayout)

	var parseErr error
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &p, nil
}
