package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/haithamsoil/nasgh/internal/db"
	"github.com/haithamsoil/nasgh/internal/domain"
)

// SQLiteRangeStore implements RangeStore on the local SQLite database.
type SQLiteRangeStore struct {
	db db.DBTX
}

// NewSQLiteRangeStore creates a RangeStore over the given connection.
func NewSQLiteRangeStore(conn db.DBTX) *SQLiteRangeStore {
	return &SQLiteRangeStore{db: conn}
}

func (s *SQLiteRangeStore) Get(ctx context.Context, key domain.TargetKey) (domain.RangeRecord, error) {
	query := `SELECT targets FROM target_ranges WHERE plant_key = ? AND stage = ?`
	row := s.db.QueryRowContext(ctx, query, key.PlantKey, string(key.Stage))

	var raw string
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("targets for %s/%s: %w", key.PlantKey, key.Stage, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning targets: %w", err)
	}

	var rec domain.RangeRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("decoding stored targets: %w", err)
	}
	return rec, nil
}

func (s *SQLiteRangeStore) Put(ctx context.Context, key domain.TargetKey, rec domain.RangeRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding targets: %w", err)
	}

	query := `INSERT OR REPLACE INTO target_ranges (plant_key, stage, targets, created_at)
		VALUES (?, ?, ?, ?)`
	_, err = s.db.ExecContext(ctx, query,
		key.PlantKey,
		string(key.Stage),
		string(raw),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting targets: %w", err)
	}
	return nil
}
