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

// DefaultRetention is how many recent readings or sessions are kept.
const DefaultRetention = 100

// SQLiteReadingLog implements ReadingLog with a fixed retention window.
type SQLiteReadingLog struct {
	db        db.DBTX
	retention int
}

// NewSQLiteReadingLog creates a ReadingLog keeping the most recent
// retention entries; retention <= 0 uses DefaultRetention.
func NewSQLiteReadingLog(conn db.DBTX, retention int) *SQLiteReadingLog {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &SQLiteReadingLog{db: conn, retention: retention}
}

func (l *SQLiteReadingLog) Append(ctx context.Context, e *domain.ReadingLogEntry) error {
	raw, err := json.Marshal(e.Reading)
	if err != nil {
		return fmt.Errorf("encoding reading: %w", err)
	}
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now().UTC()
	}

	query := `INSERT INTO soil_readings (device_id, reading, stage_label, advice, recorded_at)
		VALUES (?, ?, ?, ?, ?)`
	res, err := l.db.ExecContext(ctx, query,
		e.DeviceID, string(raw), e.StageLabel, e.Advice,
		e.RecordedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting reading: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		e.ID = id
	}

	// Trim beyond the retention window. Losing old readings is fine;
	// the dashboard only ever shows the recent history.
	trim := `DELETE FROM soil_readings WHERE id NOT IN (
		SELECT id FROM soil_readings ORDER BY id DESC LIMIT ?)`
	if _, err := l.db.ExecContext(ctx, trim, l.retention); err != nil {
		return fmt.Errorf("trimming reading log: %w", err)
	}
	return nil
}

func (l *SQLiteReadingLog) Latest(ctx context.Context) (*domain.ReadingLogEntry, error) {
	entries, err := l.Recent(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("latest reading: %w", ErrNotFound)
	}
	return entries[0], nil
}

func (l *SQLiteReadingLog) Recent(ctx context.Context, limit int) ([]*domain.ReadingLogEntry, error) {
	if limit <= 0 || limit > l.retention {
		limit = l.retention
	}
	query := `SELECT id, device_id, reading, stage_label, advice, recorded_at
		FROM soil_readings ORDER BY id DESC LIMIT ?`
	rows, err := l.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing readings: %w", err)
	}
	defer rows.Close()

	var out []*domain.ReadingLogEntry
	for rows.Next() {
		e, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanReading(rows *sql.Rows) (*domain.ReadingLogEntry, error) {
	var (
		e        domain.ReadingLogEntry
		raw      string
		recorded string
	)
	if err := rows.Scan(&e.ID, &e.DeviceID, &raw, &e.StageLabel, &e.Advice, &recorded); err != nil {
		return nil, fmt.Errorf("scanning reading: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &e.Reading); err != nil {
		return nil, fmt.Errorf("decoding stored reading: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, recorded); err == nil {
		e.RecordedAt = t
	}
	return &e, nil
}
