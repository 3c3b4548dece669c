package journal

import "fmt"

// Dialect hides the SQL differences between SQLite and PostgreSQL.
type Dialect interface {
	// DriverName returns the database/sql driver name.
	DriverName() string

	// Placeholder returns the parameter placeholder for a 1-based position.
	Placeholder(position int) string

	// AutoIncrementKey returns the column definition of a generated
	// integer primary key.
	AutoIncrementKey() string

	// InitStatements run once after the database is opened.
	InitStatements() []string
}

// DialectType identifies a Dialect.
type DialectType string

const (
	DialectSQLite   DialectType = "sqlite"
	DialectPostgres DialectType = "postgres"
)

// NewDialect returns the Dialect for t. Unknown types fall back to SQLite.
func NewDialect(t DialectType) Dialect {
	if t == DialectPostgres {
		return postgresDialect{}
	}
	return sqliteDialect{}
}

type sqliteDialect struct{}

func (sqliteDialect) DriverName() string       { return "sqlite" }
func (sqliteDialect) Placeholder(int) string   { return "?" }
func (sqliteDialect) AutoIncrementKey() string { return "INTEGER PRIMARY KEY AUTOINCREMENT" }
func (sqliteDialect) InitStatements() []string {
	return []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
}

type postgresDialect struct{}

func (postgresDialect) DriverName() string              { return "postgres" }
func (postgresDialect) Placeholder(position int) string { return fmt.Sprintf("$%d", position) }
func (postgresDialect) AutoIncrementKey() string        { return "BIGSERIAL PRIMARY KEY" }
func (postgresDialect) InitStatements() []string        { return nil }
