package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/haithamsoil/nasgh/internal/db"
	"github.com/haithamsoil/nasgh/internal/domain"
)

// SQLiteSessionStore implements SessionStore with a fixed retention
// window.
type SQLiteSessionStore struct {
	db        db.DBTX
	retention int
}

// NewSQLiteSessionStore creates a SessionStore keeping the most recent
// retention sessions; retention <= 0 uses DefaultRetention.
func NewSQLiteSessionStore(conn db.DBTX, retention int) *SQLiteSessionStore {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &SQLiteSessionStore{db: conn, retention: retention}
}

func (s *SQLiteSessionStore) Save(ctx context.Context, sess *domain.SoilSession) error {
	if sess.Reading == nil {
		return fmt.Errorf("session has no reading")
	}
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now().UTC()
	}

	reading, err := json.Marshal(sess.Reading)
	if err != nil {
		return fmt.Errorf("encoding session reading: %w", err)
	}
	targets, err := marshalNullable(sess.Targets)
	if err != nil {
		return fmt.Errorf("encoding session targets: %w", err)
	}
	summary, err := marshalNullable(sess.StatusSummary)
	if err != nil {
		return fmt.Errorf("encoding session status summary: %w", err)
	}

	query := `INSERT OR REPLACE INTO soil_sessions
		(id, created_at, reading, plant_name, stage_label, targets, status_summary, advice)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = s.db.ExecContext(ctx, query,
		sess.ID,
		sess.CreatedAt.UTC().Format(time.RFC3339),
		string(reading),
		sess.PlantName,
		sess.StageLabel,
		targets,
		summary,
		sess.Advice,
	)
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	trim := `DELETE FROM soil_sessions WHERE id NOT IN (
		SELECT id FROM soil_sessions ORDER BY created_at DESC, rowid DESC LIMIT ?)`
	if _, err := s.db.ExecContext(ctx, trim, s.retention); err != nil {
		return fmt.Errorf("trimming sessions: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) Recent(ctx context.Context, limit int) ([]*domain.SoilSession, error) {
	if limit <= 0 || limit > s.retention {
		limit = s.retention
	}
	query := `SELECT id, created_at, reading, plant_name, stage_label, targets, status_summary, advice
		FROM soil_sessions ORDER BY created_at DESC, rowid DESC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var out []*domain.SoilSession
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

func scanSession(rows *sql.Rows) (*domain.SoilSession, error) {
	var (
		sess             domain.SoilSession
		created, reading string
		targets, summary sql.NullString
	)
	if err := rows.Scan(&sess.ID, &created, &reading, &sess.PlantName,
		&sess.StageLabel, &targets, &summary, &sess.Advice); err != nil {
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, created); err == nil {
		sess.CreatedAt = t
	}
	if err := json.Unmarshal([]byte(reading), &sess.Reading); err != nil {
		return nil, fmt.Errorf("decoding session reading: %w", err)
	}
	if targets.Valid && targets.String != "" {
		if err := json.Unmarshal([]byte(targets.String), &sess.Targets); err != nil {
			return nil, fmt.Errorf("decoding session targets: %w", err)
		}
	}
	if summary.Valid && summary.String != "" {
		if err := json.Unmarshal([]byte(summary.String), &sess.StatusSummary); err != nil {
			return nil, fmt.Errorf("decoding session status summary: %w", err)
		}
	}
	return &sess, nil
}

// marshalNullable returns SQL NULL for nil maps instead of "null" text.
func marshalNullable(v any) (any, error) {
	switch x := v.(type) {
	case domain.RangeRecord:
		if x == nil {
			return nil, nil
		}
	case domain.StatusSummary:
		if x == nil {
			return nil, nil
		}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}
