package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"ctfwatch/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testStartsAt = time.Date(2025, 6, 4, 18, 30, 0, 0, time.UTC)
	testChecked  = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
)

func TestTrackedEventRepository_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		id      string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.TrackedEvent
		wantErr error
	}{
		{
			name: "found",
			id:   "42",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, slug, starts_at, checked, reminder_sent`).
					WithArgs("42").
					WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "starts_at", "checked", "reminder_sent"}).
						AddRow("42", "spring-ctf", testStartsAt, testChecked, false))
			},
			want: &domain.TrackedEvent{
				ID:           "42",
				Slug:         "spring-ctf",
				StartsAt:     testStartsAt,
				LastChecked:  testChecked,
				ReminderSent: false,
			},
		},
		{
			name: "not found",
			id:   "999",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, slug, starts_at, checked, reminder_sent`).
					WithArgs("999").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "db error",
			id:   "42",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, slug, starts_at, checked, reminder_sent`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewTrackedEventRepository(db)
			got, err := repo.Get(ctx, tt.id)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTrackedEventRepository_All(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, slug, starts_at, checked, reminder_sent`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "starts_at", "checked", "reminder_sent"}).
			AddRow("1", "a-ctf", testStartsAt, testChecked, false).
			AddRow("2", "b-ctf", testStartsAt, testChecked, true))

	repo := NewTrackedEventRepository(db)
	recs, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "a-ctf", recs[0].Slug)
	assert.True(t, recs[1].ReminderSent)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTrackedEventRepository_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO tracked_events \(id, slug, starts_at, checked, reminder_sent\)`).
		WithArgs("42", "spring-ctf", testStartsAt, testChecked, true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewTrackedEventRepository(db)
	err = repo.Upsert(context.Background(), &domain.TrackedEvent{
		ID:           "42",
		Slug:         "spring-ctf",
		StartsAt:     testStartsAt.Add(500 * time.Millisecond), // truncated to seconds on write
		LastChecked:  testChecked,
		ReminderSent: true,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTrackedEventRepository_FlushIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTrackedEventRepository(db)
	require.NoError(t, repo.Flush(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
