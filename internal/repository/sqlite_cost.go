package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmorand/planline/internal/db"
	"github.com/jmorand/planline/internal/domain"
)

// SQLiteCostRepo implements CostRepo over SQLite.
type SQLiteCostRepo struct {
	db db.DBTX
}

// NewSQLiteCostRepo creates a new SQLiteCostRepo.
func NewSQLiteCostRepo(conn db.DBTX) *SQLiteCostRepo {
	return &SQLiteCostRepo{db: conn}
}

const costColumns = `id, project_id, task_id, description, type, planned_amount, actual_amount, incurred_date, created_at, updated_at`

func (r *SQLiteCostRepo) Create(ctx context.Context, c *domain.CostItem) error {
	query := `INSERT INTO cost_items (` + costColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.ProjectID,
		nullableString(c.TaskID),
		c.Description,
		string(c.Type),
		c.PlannedAmount,
		c.ActualAmount,
		nullableTimeToString(c.IncurredDate, dateLayout),
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting cost item: %w", err)
	}
	return nil
}

func (r *SQLiteCostRepo) GetByID(ctx context.Context, id string) (*domain.CostItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+costColumns+` FROM cost_items WHERE id = ?`, id)
	c, err := scanCostItem(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("cost item %s: %w", id, ErrNotFound)
	}
	return c, err
}

func (r *SQLiteCostRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.CostItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+costColumns+` FROM cost_items WHERE project_id = ? ORDER BY created_at, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing cost items: %w", err)
	}
	defer rows.Close()

	var items []*domain.CostItem
	for rows.Next() {
		c, err := scanCostItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cost items: %w", err)
	}
	return items, nil
}

func (r *SQLiteCostRepo) Update(ctx context.Context, c *domain.CostItem) error {
	query := `UPDATE cost_items SET task_id = ?, description = ?, type = ?, planned_amount = ?,
		actual_amount = ?, incurred_date = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		nullableString(c.TaskID),
		c.Description,
		string(c.Type),
		c.PlannedAmount,
		c.ActualAmount,
		nullableTimeToString(c.IncurredDate, dateLayout),
		c.UpdatedAt.Format(time.RFC3339),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating cost item: %w", err)
	}
	return nil
}

func (r *SQLiteCostRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cost_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting cost item: %w", err)
	}
	return nil
}

func scanCostItem(scan func(dest ...any) error) (*domain.CostItem, error) {
	var c domain.CostItem
	var typeStr, createdAtStr, updatedAtStr string
	var taskID, incurredDate sql.NullString

	err := scan(&c.ID, &c.ProjectID, &taskID, &c.Description, &typeStr,
		&c.PlannedAmount, &c.ActualAmount, &incurredDate,
		&createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning cost item: %w", err)
	}

	c.Type = domain.CostType(typeStr)
	if taskID.Valid && taskID.String != "" {
		s := taskID.String
		c.TaskID = &s
	}
	c.IncurredDate = parseNullableTime(incurredDate, dateLayout)

	var parseErr error
	c.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	c.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &c, nil
}
