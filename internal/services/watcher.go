package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"ctfwatch/internal/domain"
)

// Watcher runs one polling pass over the upstream event feed: a reminder
// sweep for already-tracked events, then discovery of newly listed ones.
// The store is mutated only after a confirmed successful send, so a crashed
// or failed pass is retried naturally by the next scheduled run.
type Watcher struct {
	feed        domain.EventFeed
	notifier    domain.Notifier
	store       domain.TrackedEventStore
	logger      *slog.Logger
	detailDelay time.Duration

	now func() time.Time
}

// NewWatcher wires a Watcher. detailDelay is the polite pause observed
// between consecutive per-event detail fetches during discovery.
func NewWatcher(feed domain.EventFeed, notifier domain.Notifier, store domain.TrackedEventStore, logger *slog.Logger, detailDelay time.Duration) *Watcher {
	return &Watcher{
		feed:        feed,
		notifier:    notifier,
		store:       store,
		logger:      logger,
		detailDelay: detailDelay,
		now:         time.Now,
	}
}

// Run performs exactly one pass: Phase 1 (reminder sweep) then Phase 2
// (new-event discovery). Reminders run first so they are never starved by
// discovery work. A list-fetch failure aborts Phase 2 only; Phase 1 results
// stand. Per-event fetch or send failures are logged and skipped.
func (w *Watcher) Run(ctx context.Context) error {
	w.sweepReminders(ctx)
	return w.discover(ctx)
}

func (w *Watcher) sweepReminders(ctx context.Context) {
	recs, err := w.store.All(ctx)
	if err != nil {
		w.logger.Error("reminder sweep: reading tracked events", "error", err)
		return
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].ID < recs[j].ID })

	now := w.now().UTC()
	for _, rec := range recs {
		if !ReminderDue(rec, now) {
			continue
		}
		detail, err := w.feed.Detail(ctx, rec.Slug)
		if err != nil {
			w.logger.Warn("reminder sweep: detail fetch failed, will retry next run",
				"id", rec.ID, "slug", rec.Slug, "error", err)
			continue
		}
		if err := w.notifier.Send(ctx, domain.NotificationReminder, detail, ""); err != nil {
			w.logger.Warn("reminder sweep: send failed, will retry next run",
				"id", rec.ID, "slug", rec.Slug, "error", err)
			continue
		}
		rec.ReminderSent = true
		rec.LastChecked = now.Truncate(time.Second)
		if err := w.store.Upsert(ctx, rec); err != nil {
			w.logger.Error("reminder sweep: upsert failed", "id", rec.ID, "error", err)
			continue
		}
		if err := w.store.Flush(ctx); err != nil {
			w.logger.Error("reminder sweep: flush failed", "id", rec.ID, "error", err)
		}
		w.logger.Info("reminder sent", "id", rec.ID, "slug", rec.Slug, "starts_at", rec.StartsAt)
	}
}

func (w *Watcher) discover(ctx context.Context) error {
	summaries, err := w.feed.List(ctx)
	if err != nil {
		w.logger.Error("discovery: list fetch failed", "error", err)
		return fmt.Errorf("fetch event list: %w", err)
	}

	var alerted int
	first := true
	for _, sum := range summaries {
		if sum.ID == "" {
			continue
		}
		if _, err := w.store.Get(ctx, sum.ID); err == nil {
			continue
		} else if !errors.Is(err, domain.ErrNotFound) {
			w.logger.Error("discovery: store lookup failed", "id", sum.ID, "error", err)
			continue
		}
		if !first && w.detailDelay > 0 {
			time.Sleep(w.detailDelay)
		}
		first = false

		detail, err := w.feed.Detail(ctx, sum.Slug)
		if err != nil {
			w.logger.Warn("discovery: detail fetch failed", "id", sum.ID, "slug", sum.Slug, "error", err)
			continue
		}
		decision := Classify(detail.Access, detail.TextFields())
		if !decision.Alert() {
			w.logger.Debug("discovery: skipped", "id", sum.ID, "slug", sum.Slug, "access", detail.Access)
			continue
		}
		if err := w.notifier.Send(ctx, domain.NotificationInitial, detail, decision.Token); err != nil {
			w.logger.Warn("discovery: send failed, event stays untracked", "id", sum.ID, "slug", sum.Slug, "error", err)
			continue
		}
		now := w.now().UTC().Truncate(time.Second)
		rec := &domain.TrackedEvent{
			ID:           sum.ID,
			Slug:         sum.Slug,
			StartsAt:     detail.StartsAt.UTC().Truncate(time.Second),
			LastChecked:  now,
			ReminderSent: false,
		}
		if err := w.store.Upsert(ctx, rec); err != nil {
			w.logger.Error("discovery: upsert failed", "id", sum.ID, "error", err)
			continue
		}
		if err := w.store.Flush(ctx); err != nil {
			w.logger.Error("discovery: flush failed", "id", sum.ID, "error", err)
		}
		alerted++
		w.logger.Info("new event alerted", "id", sum.ID, "slug", sum.Slug, "decision", decision.Kind)
	}

	if alerted > 0 {
		w.logger.Info("discovery finished", "new_alerts", alerted)
	} else {
		w.logger.Info("discovery finished, no new events")
	}
	return nil
}
