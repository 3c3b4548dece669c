// Package journal records every request line sent to a game so a session
// can be listed and replayed later. It stores to SQLite by default and to
// PostgreSQL when configured.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/lawnchairsociety/mcpi/internal/logger"
)

// Journal is an open command journal.
type Journal struct {
	db      *sql.DB
	dialect Dialect
	qb      *QueryBuilder
}

// SessionInfo summarizes a recorded session.
type SessionInfo struct {
	ID        string
	Address   string
	StartedAt time.Time
	Commands  int
}

// Open opens or creates the journal described by cfg.
func Open(cfg Config) (*Journal, error) {
	dialect := NewDialect(DialectType(cfg.Driver))

	var dsn string
	switch dialect.(type) {
	case postgresDialect:
		dsn = cfg.Postgres.DSN()
	default:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create journal directory: %w", err)
			}
		}
		dsn = cfg.SQLitePath
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	if _, ok := dialect.(postgresDialect); ok {
		db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to journal: %w", err)
	}

	j := &Journal{db: db, dialect: dialect, qb: NewQueryBuilder(dialect)}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return j, nil
}

func (j *Journal) migrate() error {
	statements := append(j.dialect.InitStatements(), j.qb.Schema()...)
	for _, s := range statements {
		if _, err := j.db.Exec(s); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, s)
		}
	}
	for _, s := range j.qb.Upgrades() {
		_, _ = j.db.Exec(s) // column may already exist
	}
	return nil
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// StartSession opens a new session for a connection to address.
func (j *Journal) StartSession(address string) (*Session, error) {
	s := &Session{
		journal:   j,
		ID:        uuid.NewString(),
		Address:   address,
		StartedAt: time.Now(),
	}
	_, err := j.db.Exec(
		j.qb.Build("INSERT INTO sessions (id, address, started_at) VALUES (?, ?, ?)"),
		s.ID, s.Address, s.StartedAt.UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	logger.Info("Journal session started", "session", s.ID, "address", address)
	return s, nil
}

// Sessions lists every recorded session, oldest first.
func (j *Journal) Sessions() ([]SessionInfo, error) {
	rows, err := j.db.Query(`
		SELECT s.id, s.address, s.started_at, COUNT(c.id)
		FROM sessions s
		LEFT JOIN commands c ON c.session_id = s.id
		GROUP BY s.id, s.address, s.started_at
		ORDER BY s.started_at, s.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionInfo
	for rows.Next() {
		var (
			info    SessionInfo
			started int64
		)
		if err := rows.Scan(&info.ID, &info.Address, &started, &info.Commands); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		info.StartedAt = time.UnixMilli(started)
		sessions = append(sessions, info)
	}
	return sessions, rows.Err()
}

// Lines returns every request line of session id in the order sent.
func (j *Journal) Lines(id string) ([]string, error) {
	return j.lines(id, "SELECT line FROM commands WHERE session_id = ? ORDER BY seq")
}

// Commands returns the lines of session id that expected no reply, in the
// order sent. These are the lines that can be replayed blind.
func (j *Journal) Commands(id string) ([]string, error) {
	return j.lines(id, "SELECT line FROM commands WHERE session_id = ? AND is_query = 0 ORDER BY seq")
}

func (j *Journal) lines(id, query string) ([]string, error) {
	rows, err := j.db.Query(j.qb.Build(query), id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("failed to scan command: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// Session records the lines of one connection. It satisfies
// connection.Recorder.
type Session struct {
	journal *Journal

	ID        string
	Address   string
	StartedAt time.Time

	mu  sync.Mutex
	seq int
	err error
}

// Record appends line to the session; query marks lines that expected a
// reply. A failed insert is logged and kept for Err; recording never
// interrupts the connection.
func (s *Session) Record(line string, query bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	isQuery := 0
	if query {
		isQuery = 1
	}
	s.seq++
	_, err := s.journal.db.Exec(
		s.journal.qb.Build("INSERT INTO commands (session_id, seq, line, is_query, sent_at) VALUES (?, ?, ?, ?, ?)"),
		s.ID, s.seq, line, isQuery, time.Now().UnixMilli(),
	)
	if err != nil {
		logger.Warning("Failed to journal command", "session", s.ID, "line", line, "error", err)
		if s.err == nil {
			s.err = err
		}
	}
}

// Err returns the first recording failure, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
