package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Sessions table - one row per pipeline run
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			ended_at DATETIME
		)`,

		// Gesture events table - one row per gesture transition, with the
		// interaction state observed at that moment
		`CREATE TABLE IF NOT EXISTS gesture_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			label TEXT NOT NULL,
			focus TEXT NOT NULL,
			zoom REAL NOT NULL,
			rot_x REAL NOT NULL DEFAULT 0,
			rot_y REAL NOT NULL DEFAULT 0,
			offset_ms INTEGER NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_gesture_events_session
			ON gesture_events(session_id, offset_ms)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
