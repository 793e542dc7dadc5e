package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmorand/planline/internal/db"
	"github.com/jmorand/planline/internal/domain"
)

// SQLiteCalendarRepo implements CalendarRepo over SQLite. Holidays live in a
// side table and are loaded with the calendar.
type SQLiteCalendarRepo struct {
	db db.DBTX
}

// NewSQLiteCalendarRepo creates a new SQLiteCalendarRepo.
func NewSQLiteCalendarRepo(conn db.DBTX) *SQLiteCalendarRepo {
	return &SQLiteCalendarRepo{db: conn}
}

func (r *SQLiteCalendarRepo) Create(ctx context.Context, c *domain.WorkingCalendar) error {
	query := `INSERT INTO calendars (id, name, weekdays, hours_per_day, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Name,
		weekdaysToCSV(c.Weekdays),
		c.HoursPerDay,
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting calendar: %w", err)
	}
	return r.replaceHolidays(ctx, c)
}

func (r *SQLiteCalendarRepo) GetByID(ctx context.Context, id string) (*domain.WorkingCalendar, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, weekdays, hours_per_day FROM calendars WHERE id = ?`, id)

	var c domain.WorkingCalendar
	var weekdaysStr string
	err := row.Scan(&c.ID, &c.Name, &weekdaysStr, &c.HoursPerDay)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("calendar %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning calendar: %w", err)
	}
	if c.Weekdays, err = csvToWeekdays(weekdaysStr); err != nil {
		return nil, err
	}

	c.Holidays = map[string]bool{}
	rows, err := r.db.QueryContext(ctx,
		`SELECT day FROM calendar_holidays WHERE calendar_id = ? ORDER BY day`, id)
	if err != nil {
		return nil, fmt.Errorf("listing holidays: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("scanning holiday: %w", err)
		}
		c.Holidays[day] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating holidays: %w", err)
	}
	return &c, nil
}

func (r *SQLiteCalendarRepo) List(ctx context.Context) ([]*domain.WorkingCalendar, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM calendars ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing calendars: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning calendar id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating calendars: %w", err)
	}

	calendars := make([]*domain.WorkingCalendar, 0, len(ids))
	for _, id := range ids {
		c, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		calendars = append(calendars, c)
	}
	return calendars, nil
}

func (r *SQLiteCalendarRepo) Update(ctx context.Context, c *domain.WorkingCalendar) error {
	query := `UPDATE calendars SET name = ?, weekdays = ?, hours_per_day = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		c.Name,
		weekdaysToCSV(c.Weekdays),
		c.HoursPerDay,
		c.UpdatedAt.Format(time.RFC3339),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating calendar: %w", err)
	}
	return r.replaceHolidays(ctx, c)
}

func (r *SQLiteCalendarRepo) AddHoliday(ctx context.Context, calendarID, day string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO calendar_holidays (calendar_id, day) VALUES (?, ?)`,
		calendarID, day)
	if err != nil {
		return fmt.Errorf("adding holiday: %w", err)
	}
	return nil
}

func (r *SQLiteCalendarRepo) RemoveHoliday(ctx context.Context, calendarID, day string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM calendar_holidays WHERE calendar_id = ? AND day = ?`,
		calendarID, day)
	if err != nil {
		return fmt.Errorf("removing holiday: %w", err)
	}
	return nil
}

func (r *SQLiteCalendarRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM calendars WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting calendar: %w", err)
	}
	return nil
}

func (r *SQLiteCalendarRepo) replaceHolidays(ctx context.Context, c *domain.WorkingCalendar) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM calendar_holidays WHERE calendar_id = ?`, c.ID); err != nil {
		return fmt.Errorf("clearing holidays: %w", err)
	}
	for day := range c.Holidays {
		if err := r.AddHoliday(ctx, c.ID, day); err != nil {
			return err
		}
	}
	return nil
}
