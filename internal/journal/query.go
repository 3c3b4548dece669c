package journal

import "strings"

// QueryBuilder rewrites queries written with ? placeholders for a dialect.
type QueryBuilder struct {
	dialect Dialect
}

// NewQueryBuilder returns a QueryBuilder for dialect.
func NewQueryBuilder(dialect Dialect) *QueryBuilder {
	return &QueryBuilder{dialect: dialect}
}

// Build replaces each ? with the dialect's placeholder:
//
//	input:    "SELECT line FROM commands WHERE session_id = ? AND seq > ?"
//	SQLite:   unchanged
//	Postgres: "SELECT line FROM commands WHERE session_id = $1 AND seq > $2"
func (qb *QueryBuilder) Build(query string) string {
	if qb.dialect.Placeholder(1) == "?" {
		return query
	}

	var b strings.Builder
	position := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			b.WriteString(qb.dialect.Placeholder(position))
			position++
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// Schema returns the CREATE statements for the journal tables.
func (qb *QueryBuilder) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			address TEXT NOT NULL,
			started_at BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS commands (
			id ` + qb.dialect.AutoIncrementKey() + `,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			line TEXT NOT NULL,
			is_query INTEGER NOT NULL DEFAULT 0,
			sent_at BIGINT NOT NULL,
			UNIQUE(session_id, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_commands_session_id ON commands(session_id)`,
	}
}

// Upgrades returns ALTER statements for journals created by older versions.
// They fail harmlessly when the column already exists.
func (qb *QueryBuilder) Upgrades() []string {
	return []string{
		`ALTER TABLE commands ADD COLUMN is_query INTEGER NOT NULL DEFAULT 0`,
	}
}
