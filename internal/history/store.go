// Package history persists evaluated calculator lines in SQLite.
package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Entry is one evaluated line.
type Entry struct {
	ID        int64
	SessionID string
	Input     string
	Output    string
	Failed    bool
	CreatedAt time.Time
}

// row mirrors the table; timestamps are stored as unix nanoseconds.
type row struct {
	ID        int64  `db:"id"`
	SessionID string `db:"session_id"`
	Input     string `db:"input"`
	Output    string `db:"output"`
	Failed    bool   `db:"failed"`
	CreatedAt int64  `db:"created_at"`
}

// Store wraps a SQLite connection holding the history table.
type Store struct {
	conn *sqlx.DB
	now  func() time.Time
}

// Open opens or creates a history database at path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	s := &Store{conn: conn, now: time.Now}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate history db: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		input TEXT NOT NULL,
		output TEXT NOT NULL,
		failed INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_history_session ON history(session_id);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Record appends e. SessionID must be a UUID; a zero CreatedAt is set to now.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	if _, err := uuid.Parse(e.SessionID); err != nil {
		return 0, fmt.Errorf("invalid session id %q: %w", e.SessionID, err)
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}

	res, err := s.conn.NamedExecContext(ctx,
		`INSERT INTO history (session_id, input, output, failed, created_at)
		 VALUES (:session_id, :input, :output, :failed, :created_at)`,
		row{
			SessionID: e.SessionID,
			Input:     e.Input,
			Output:    e.Output,
			Failed:    e.Failed,
			CreatedAt: e.CreatedAt.UnixNano(),
		},
	)
	if err != nil {
		return 0, fmt.Errorf("record history entry: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns the last n entries across all sessions, oldest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, errors.New("history limit must be positive")
	}

	var rows []row
	err := s.conn.SelectContext(ctx, &rows,
		`SELECT id, session_id, input, output, failed, created_at
		 FROM history ORDER BY id DESC LIMIT ?`,
		n,
	)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	out := make([]Entry, len(rows))
	for i, r := range rows {
		out[len(rows)-1-i] = Entry{
			ID:        r.ID,
			SessionID: r.SessionID,
			Input:     r.Input,
			Output:    r.Output,
			Failed:    r.Failed,
			CreatedAt: time.Unix(0, r.CreatedAt),
		}
	}
	return out, nil
}

// Session returns every entry of one session, oldest first.
func (s *Store) Session(ctx context.Context, sessionID string) ([]Entry, error) {
	var rows []row
	err := s.conn.SelectContext(ctx, &rows,
		`SELECT id, session_id, input, output, failed, created_at
		 FROM history WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("read session history: %w", err)
	}

	out := make([]Entry, 0, len(rows))
	for _, r := range rows {
		out = append(out, Entry{
			ID:        r.ID,
			SessionID: r.SessionID,
			Input:     r.Input,
			Output:    r.Output,
			Failed:    r.Failed,
			CreatedAt: time.Unix(0, r.CreatedAt),
		})
	}
	return out, nil
}
