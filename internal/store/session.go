package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session represents one pipeline run.
type Session struct {
	ID        string     `json:"id"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

// Event is one recorded gesture transition with the interaction state
// observed at that moment. OffsetMs is milliseconds since session start.
type Event struct {
	ID        int64   `json:"id"`
	SessionID string  `json:"session_id"`
	Label     string  `json:"label"`
	Focus     string  `json:"focus"`
	Zoom      float64 `json:"zoom"`
	RotX      float64 `json:"rot_x"`
	RotY      float64 `json:"rot_y"`
	OffsetMs  int64   `json:"offset_ms"`
}

// SessionStore provides access to session telemetry.
type SessionStore struct {
	db *sql.DB
}

// Begin creates a new session row and returns it.
func (ss *SessionStore) Begin() (*Session, error) {
	session := &Session{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}

	_, err := ss.db.Exec(
		"INSERT INTO sessions (id, started_at) VALUES (?, ?)",
		session.ID, session.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// End marks a session as finished.
func (ss *SessionStore) End(id string) error {
	result, err := ss.db.Exec(
		"UPDATE sessions SET ended_at = ? WHERE id = ?",
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("session not found: %s", id)
	}

	return nil
}

// List returns all sessions, newest first.
func (ss *SessionStore) List() ([]Session, error) {
	rows, err := ss.db.Query(
		"SELECT id, started_at, ended_at FROM sessions ORDER BY started_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		var endedAt sql.NullTime
		if err := rows.Scan(&s.ID, &s.StartedAt, &endedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		if endedAt.Valid {
			t := endedAt.Time
			s.EndedAt = &t
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

// RecordEvent appends one gesture transition to a session.
func (ss *SessionStore) RecordEvent(ev *Event) error {
	result, err := ss.db.Exec(
		`INSERT INTO gesture_events (session_id, label, focus, zoom, rot_x, rot_y, offset_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ev.SessionID, ev.Label, ev.Focus, ev.Zoom, ev.RotX, ev.RotY, ev.OffsetMs,
	)
	if err != nil {
		return fmt.Errorf("failed to record event: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		ev.ID = id
	}

	return nil
}

// Events returns all events for a session in recording order.
func (ss *SessionStore) Events(sessionID string) ([]Event, error) {
	rows, err := ss.db.Query(
		`SELECT id, session_id, label, focus, zoom, rot_x, rot_y, offset_ms
		 FROM gesture_events WHERE session_id = ? ORDER BY offset_ms`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.ID, &ev.SessionID, &ev.Label, &ev.Focus,
			&ev.Zoom, &ev.RotX, &ev.RotY, &ev.OffsetMs); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, ev)
	}

	return events, rows.Err()
}
