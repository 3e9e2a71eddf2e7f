package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"companyevents/internal/domain"
)

var eventCols = []string{"id", "title", "description", "date", "capacity", "company_id", "created_at", "updated_at"}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, 7, 15, 18, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	desc := "Quarterly all-hands"
	capacity := 150
	event := domain.NewEvent("All Hands", &desc, date, &capacity, "co-1", now, now)

	mock.ExpectQuery(`INSERT INTO events`).
		WithArgs("All Hands", &desc, date, &capacity, "co-1", now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("event-1"))

	repo := NewEventRepository(db)
	require.NoError(t, repo.Create(ctx, event))
	require.Equal(t, "event-1", event.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("found with null description and capacity", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM events`).
			WithArgs("event-1").
			WillReturnRows(sqlmock.NewRows(eventCols).
				AddRow("event-1", "All Hands", nil, now, nil, "co-1", now, now))

		repo := NewEventRepository(db)
		event, err := repo.GetByID(ctx, "event-1")
		require.NoError(t, err)
		require.Equal(t, "All Hands", event.Title)
		require.Nil(t, event.Description)
		require.Nil(t, event.Capacity)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM events`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewEventRepository(db)
		_, err = repo.GetByID(ctx, "missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_List(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	p := domain.PaginationParams{Page: 1, Limit: 10}

	t.Run("company filter", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM events`).
			WithArgs("co-1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT (.+) FROM events`).
			WithArgs("co-1", 10, 0).
			WillReturnRows(sqlmock.NewRows(eventCols).
				AddRow("event-1", "All Hands", "desc", now, 100, "co-1", now, now))

		repo := NewEventRepository(db)
		events, total, err := repo.List(ctx, domain.EventFilter{CompanyID: "co-1"}, p)
		require.NoError(t, err)
		require.Equal(t, 1, total)
		require.Len(t, events, 1)
		require.NotNil(t, events[0].Description)
		require.Equal(t, 100, *events[0].Capacity)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("date range filter", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM events`).
			WithArgs(from, to).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT (.+) FROM events`).
			WithArgs(from, to, 10, 0).
			WillReturnRows(sqlmock.NewRows(eventCols))

		repo := NewEventRepository(db)
		events, total, err := repo.List(ctx, domain.EventFilter{DateFrom: &from, DateTo: &to}, p)
		require.NoError(t, err)
		require.Equal(t, 0, total)
		require.Empty(t, events)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_Update(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)

	t.Run("not found zero rows affected", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE events`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewEventRepository(db)
		err = repo.Update(ctx, &domain.Event{ID: "missing", Title: "X", Date: now, UpdatedAt: now})
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM events`).
			WithArgs("event-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewEventRepository(db)
		require.NoError(t, repo.Delete(ctx, "event-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
