package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"digieventos/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var eventCols = []string{
	"id", "title", "description", "location", "start_time", "finish_time", "max_capacity",
	"image_url", "created_by", "created_at", "updated_at", "cancelled_at",
}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		event   *domain.Event
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name: "success",
			event: &domain.Event{
				Title:     "Go Meetup",
				StartTime: start,
				CreatedBy: "user-1",
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WithArgs("Go Meetup", nil, nil, start, nil, nil, nil, "user-1").
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("ev-1", now, now))
			},
		},
		{
			name: "db error",
			event: &domain.Event{
				Title:     "Go Meetup",
				StartTime: start,
				CreatedBy: "user-1",
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)

			repo := NewEventRepository(db)
			err = repo.Create(ctx, tt.event)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				require.Equal(t, "ev-1", tt.event.ID)
				require.Equal(t, now, tt.event.CreatedAt)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetActiveByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM events WHERE id = \$1 AND cancelled_at IS NULL`).
			WithArgs("ev-1").
			WillReturnRows(sqlmock.NewRows(eventCols).
				AddRow("ev-1", "Go Meetup", "Talks", "Berlin", start, nil, 50, nil, "user-1", now, now, nil))

		repo := NewEventRepository(db)
		e, err := repo.GetActiveByID(ctx, "ev-1")
		require.NoError(t, err)
		require.Equal(t, "Go Meetup", e.Title)
		require.Equal(t, "Talks", *e.Description)
		require.Equal(t, 50, *e.MaxCapacity)
		require.Nil(t, e.FinishTime)
		require.Nil(t, e.CancelledAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cancelled event reads as not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM events WHERE id = \$1 AND cancelled_at IS NULL`).
			WithArgs("ev-1").
			WillReturnError(sql.ErrNoRows)

		repo := NewEventRepository(db)
		_, err = repo.GetActiveByID(ctx, "ev-1")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_Update(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

	t.Run("partial update sets only given fields", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		title := "Renamed"
		capacity := 25
		mock.ExpectQuery(`UPDATE events SET updated_at = NOW\(\), title = \$1, max_capacity = \$2`).
			WithArgs("Renamed", 25, "ev-1").
			WillReturnRows(sqlmock.NewRows(eventCols).
				AddRow("ev-1", "Renamed", nil, nil, start, nil, 25, nil, "user-1", now, now, nil))

		repo := NewEventRepository(db)
		e, err := repo.Update(ctx, "ev-1", &domain.EventUpdate{Title: &title, MaxCapacity: &capacity})
		require.NoError(t, err)
		require.Equal(t, "Renamed", e.Title)
		require.Equal(t, 25, *e.MaxCapacity)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("clear image nulls the column without an arg", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`UPDATE events SET updated_at = NOW\(\), image_url = NULL`).
			WithArgs("ev-1").
			WillReturnRows(sqlmock.NewRows(eventCols).
				AddRow("ev-1", "Go Meetup", nil, nil, start, nil, nil, nil, "user-1", now, now, nil))

		repo := NewEventRepository(db)
		e, err := repo.Update(ctx, "ev-1", &domain.EventUpdate{ClearImage: true})
		require.NoError(t, err)
		require.Nil(t, e.ImageURL)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing event", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		title := "Renamed"
		mock.ExpectQuery(`UPDATE events SET`).
			WillReturnError(sql.ErrNoRows)

		repo := NewEventRepository(db)
		_, err = repo.Update(ctx, "ev-missing", &domain.EventUpdate{Title: &title})
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_SetCancelled(t *testing.T) {
	ctx := context.Background()

	t.Run("active event is cancelled", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE events`).
			WithArgs("ev-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewEventRepository(db)
		require.NoError(t, repo.SetCancelled(ctx, "ev-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already cancelled reads as not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE events`).
			WithArgs("ev-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewEventRepository(db)
		require.ErrorIs(t, repo.SetCancelled(ctx, "ev-1"), domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_ReplaceCategories(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the set", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM event_category`).
			WithArgs("ev-1").
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`INSERT INTO event_category`).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		repo := NewEventRepository(db)
		require.NoError(t, repo.ReplaceCategories(ctx, "ev-1", []string{"cat-1", "cat-2"}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty set clears all links", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM event_category`).
			WithArgs("ev-1").
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		repo := NewEventRepository(db)
		require.NoError(t, repo.ReplaceCategories(ctx, "ev-1", nil))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
