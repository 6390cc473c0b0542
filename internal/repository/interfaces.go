package repository

import (
	"context"
	"errors"

	"github.com/haithamsoil/nasgh/internal/domain"
)

// ErrNotFound signals a missing row or key. Callers distinguish it from
// infrastructure failures with errors.Is.
var ErrNotFound = errors.New("not found")

// RangeStore persists generated target-range tables so the expensive
// generation call runs at most once per (plant, stage) key per
// lifetime of the stored record. Put is an upsert with last-write-wins
// semantics; concurrent writers for the same key are acceptable because
// independently generated tables for one key are near-identical.
type RangeStore interface {
	Get(ctx context.Context, key domain.TargetKey) (domain.RangeRecord, error)
	Put(ctx context.Context, key domain.TargetKey, rec domain.RangeRecord) error
}

// ReadingLog stores ingested device readings in a bounded recent
// window, newest first.
type ReadingLog interface {
	Append(ctx context.Context, e *domain.ReadingLogEntry) error
	Latest(ctx context.Context) (*domain.ReadingLogEntry, error)
	Recent(ctx context.Context, limit int) ([]*domain.ReadingLogEntry, error)
}

// SessionStore persists complete advisory sessions, newest first, in a
// bounded window.
type SessionStore interface {
	Save(ctx context.Context, s *domain.SoilSession) error
	Recent(ctx context.Context, limit int) ([]*domain.SoilSession, error)
}
