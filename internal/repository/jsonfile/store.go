// Package jsonfile persists tracked events as a single JSON snapshot on disk,
// keyed by event id. The whole snapshot is loaded once at construction and
// written atomically on Flush, so a crash mid-write leaves either the old or
// the new file, never a torn one.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"ctfwatch/internal/domain"
)

type Store struct {
	path    string
	logger  *slog.Logger
	records map[string]*domain.TrackedEvent
}

// NewStore opens the snapshot at path. A missing or corrupt file yields an
// empty store: corruption must never block notification, it only risks one
// duplicate alert on the next run.
func NewStore(path string, logger *slog.Logger) *Store {
	s := &Store{
		path:    path,
		logger:  logger,
		records: make(map[string]*domain.TrackedEvent),
	}
	s.load()
	return s
}

func (s *Store) load() {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("cache unreadable, starting empty", "path", s.path, "error", err)
		}
		return
	}
	var snapshot map[string]*domain.TrackedEvent
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		s.logger.Warn("cache corrupt, starting empty", "path", s.path, "error", err)
		return
	}
	for id, rec := range snapshot {
		if rec == nil {
			continue
		}
		rec.ID = id
		s.records[id] = rec
	}
}

func (s *Store) Get(_ context.Context, id string) (*domain.TrackedEvent, error) {
	rec, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *Store) All(_ context.Context) ([]*domain.TrackedEvent, error) {
	out := make([]*domain.TrackedEvent, 0, len(s.records))
	for _, rec := range s.records {
		cp := *rec
		out = append(out, &cp)
	}
	return out, nil
}

// Upsert replaces the record for rec.ID in the working copy. Timestamps are
// normalized to UTC second precision so the snapshot round-trips exactly.
func (s *Store) Upsert(_ context.Context, rec *domain.TrackedEvent) error {
	if rec == nil || rec.ID == "" {
		return errors.New("tracked event id is required")
	}
	cp := *rec
	cp.StartsAt = cp.StartsAt.UTC().Truncate(time.Second)
	cp.LastChecked = cp.LastChecked.UTC().Truncate(time.Second)
	s.records[cp.ID] = &cp
	return nil
}

// Flush writes the full snapshot with write-to-temp-then-rename discipline.
func (s *Store) Flush(_ context.Context) error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+"-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
