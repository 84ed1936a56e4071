package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ctfwatch/internal/domain"
)

// trackedEventRepository stores tracked events in a single table:
//
//	CREATE TABLE tracked_events (
//	    id            TEXT PRIMARY KEY,
//	    slug          TEXT NOT NULL,
//	    starts_at     TIMESTAMPTZ NOT NULL,
//	    checked       TIMESTAMPTZ NOT NULL,
//	    reminder_sent BOOLEAN NOT NULL DEFAULT FALSE
//	);
//
// Each upsert is individually durable, so Flush is a no-op.
type trackedEventRepository struct {
	DB *sql.DB
}

func NewTrackedEventRepository(db *sql.DB) domain.TrackedEventStore {
	return &trackedEventRepository{
		DB: db,
	}
}

func (r *trackedEventRepository) Get(ctx context.Context, id string) (*domain.TrackedEvent, error) {
	query := `
		SELECT id, slug, starts_at, checked, reminder_sent
		FROM tracked_events
		WHERE id = $1
	`
	rec := &domain.TrackedEvent{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&rec.ID, &rec.Slug, &rec.StartsAt, &rec.LastChecked, &rec.ReminderSent,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (r *trackedEventRepository) All(ctx context.Context) ([]*domain.TrackedEvent, error) {
	query := `
		SELECT id, slug, starts_at, checked, reminder_sent
		FROM tracked_events
		ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.TrackedEvent
	for rows.Next() {
		rec := &domain.TrackedEvent{}
		if err := rows.Scan(&rec.ID, &rec.Slug, &rec.StartsAt, &rec.LastChecked, &rec.ReminderSent); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *trackedEventRepository) Upsert(ctx context.Context, rec *domain.TrackedEvent) error {
	query := `
		INSERT INTO tracked_events (id, slug, starts_at, checked, reminder_sent)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET slug = EXCLUDED.slug,
		    starts_at = EXCLUDED.starts_at,
		    checked = EXCLUDED.checked,
		    reminder_sent = EXCLUDED.reminder_sent
	`
	_, err := r.DB.ExecContext(ctx, query,
		rec.ID,
		rec.Slug,
		rec.StartsAt.UTC().Truncate(time.Second),
		rec.LastChecked.UTC().Truncate(time.Second),
		rec.ReminderSent,
	)
	return err
}

func (r *trackedEventRepository) Flush(_ context.Context) error {
	return nil
}
