package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/anthropics/blocksworld-engine/internal/domain"
)

// SessionRepo handles persistence for Session records.
type SessionRepo struct{}

// Insert records one processed utterance.
func (r *SessionRepo) Insert(ctx context.Context, db *sql.DB, s domain.Session) error {
	const q = `INSERT INTO sessions (session_id, world, utterance, goal, plan_json, status, error, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, q,
		s.SessionID,
		s.World,
		s.Utterance,
		s.Goal,
		s.PlanJSON,
		s.Status,
		s.Error,
		s.CreatedAt,
	)
	if err != nil {
		return domain.WrapEngineError(domain.ErrStoreWrite.Code, "insert session", err)
	}
	return nil
}

// GetByID loads a single session.
func (r *SessionRepo) GetByID(ctx context.Context, db *sql.DB, id string) (*domain.Session, error) {
	const q = `SELECT session_id, world, utterance, goal, plan_json, status, error, created_at
FROM sessions WHERE session_id = ?`

	var s domain.Session
	err := db.QueryRowContext(ctx, q, id).Scan(
		&s.SessionID, &s.World, &s.Utterance, &s.Goal, &s.PlanJSON, &s.Status, &s.Error, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &s, nil
}

// ListRecent returns the most recent sessions, newest first.
func (r *SessionRepo) ListRecent(ctx context.Context, db *sql.DB, limit int) ([]domain.Session, error) {
	const q = `SELECT session_id, world, utterance, goal, plan_json, status, error, created_at
FROM sessions ORDER BY created_at DESC, session_id LIMIT ?`

	rows, err := db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		var s domain.Session
		if err := rows.Scan(&s.SessionID, &s.World, &s.Utterance, &s.Goal, &s.PlanJSON, &s.Status, &s.Error, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
