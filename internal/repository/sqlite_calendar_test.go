package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jmorand/planline/internal/domain"
	"github.com/jmorand/planline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarRepo_DefaultSeeded(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCalendarRepo(db)

	cal, err := repo.GetByID(context.Background(), "default")
	require.NoError(t, err)
	assert.Equal(t, "Standard", cal.Name)
	assert.Equal(t, 8.0, cal.HoursPerDay)
	assert.True(t, cal.Weekdays[time.Monday])
	assert.True(t, cal.Weekdays[time.Friday])
	assert.False(t, cal.Weekdays[time.Saturday])
	assert.Empty(t, cal.Holidays)
}

func TestCalendarRepo_RoundTripWithHolidays(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCalendarRepo(db)
	ctx := context.Background()

	now := time.Now().UTC()
	cal := &domain.WorkingCalendar{
		ID:   "four-day",
		Name: "Four Day Week",
		Weekdays: map[time.Weekday]bool{
			time.Monday:    true,
			time.Tuesday:   true,
			time.Wednesday: true,
			time.Thursday:  true,
		},
		HoursPerDay: 10,
		Holidays:    map[string]bool{"2025-12-25": true, "2025-01-01": true},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, repo.Create(ctx, cal))

	fetched, err := repo.GetByID(ctx, "four-day")
	require.NoError(t, err)
	assert.Equal(t, cal.Weekdays, fetched.Weekdays)
	assert.Equal(t, 10.0, fetched.HoursPerDay)
	assert.True(t, fetched.Holidays["2025-12-25"])
	assert.True(t, fetched.Holidays["2025-01-01"])
	assert.Len(t, fetched.Holidays, 2)
}

func TestCalendarRepo_AddRemoveHoliday(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCalendarRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.AddHoliday(ctx, "default", "2025-07-04"))
	require.NoError(t, repo.AddHoliday(ctx, "default", "2025-07-04")) // idempotent

	cal, err := repo.GetByID(ctx, "default")
	require.NoError(t, err)
	assert.True(t, cal.Holidays["2025-07-04"])
	assert.Len(t, cal.Holidays, 1)

	require.NoError(t, repo.RemoveHoliday(ctx, "default", "2025-07-04"))
	cal, err = repo.GetByID(ctx, "default")
	require.NoError(t, err)
	assert.Empty(t, cal.Holidays)
}

func TestCalendarRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCalendarRepo(db)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCalendarRepo_List(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCalendarRepo(db)
	ctx := context.Background()

	cal := domain.DefaultCalendar()
	cal.ID = "second"
	cal.Name = "Second"
	require.NoError(t, repo.Create(ctx, cal))

	calendars, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, calendars, 2, "seeded default plus the new one")
}
