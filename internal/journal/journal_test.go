package journal

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/lawnchairsociety/mcpi/connection"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(DefaultConfig(filepath.Join(t.TempDir(), "journal", "mcpi.db")))
	if err != nil {
		t.Fatalf("Failed to open journal: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestSessionImplementsRecorder(t *testing.T) {
	var _ connection.Recorder = (*Session)(nil)
}

func TestRecordAndReplay(t *testing.T) {
	j := openTestJournal(t)

	s, err := j.StartSession("127.0.0.1:4711")
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	want := []string{
		"chat.post(hello)",
		"world.setBlock(0,0,0,1)",
		"player.getPos()",
	}
	for _, line := range want {
		s.Record(line, line == "player.getPos()")
	}
	if err := s.Err(); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	got, err := j.Lines(s.ID)
	if err != nil {
		t.Fatalf("Lines failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestSessionsAreSeparate(t *testing.T) {
	j := openTestJournal(t)

	a, err := j.StartSession("a:4711")
	if err != nil {
		t.Fatal(err)
	}
	b, err := j.StartSession("b:4711")
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == b.ID {
		t.Fatal("Expected distinct session IDs")
	}
	a.Record("chat.post(a)", false)
	b.Record("chat.post(b1)", false)
	b.Record("chat.post(b2)", false)

	sessions, err := j.Sessions()
	if err != nil {
		t.Fatalf("Sessions failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("Expected 2 sessions, got %d", len(sessions))
	}
	counts := map[string]int{}
	for _, info := range sessions {
		counts[info.Address] = info.Commands
		if info.StartedAt.IsZero() {
			t.Errorf("Session %s has no start time", info.ID)
		}
	}
	if counts["a:4711"] != 1 || counts["b:4711"] != 2 {
		t.Errorf("Unexpected command counts: %v", counts)
	}

	lines, err := j.Lines(a.ID)
	if err != nil || !reflect.DeepEqual(lines, []string{"chat.post(a)"}) {
		t.Errorf("Lines(a) = %v, %v", lines, err)
	}
}

func TestCommandsSkipQueries(t *testing.T) {
	j := openTestJournal(t)

	s, err := j.StartSession("127.0.0.1:4711")
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	s.Record("world.setBlock(0,0,0,1)", false)
	s.Record("world.getBlock(0,0,0)", true)
	s.Record("chat.post(done)", false)

	got, err := j.Commands(s.ID)
	if err != nil {
		t.Fatalf("Commands failed: %v", err)
	}
	want := []string{"world.setBlock(0,0,0,1)", "chat.post(done)"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if all, _ := j.Lines(s.ID); len(all) != 3 {
		t.Errorf("Expected Lines to keep all 3 lines, got %v", all)
	}
}

func TestLinesUnknownSession(t *testing.T) {
	j := openTestJournal(t)

	lines, err := j.Lines("missing")
	if err != nil || len(lines) != 0 {
		t.Errorf("Lines(missing) = %v, %v", lines, err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcpi.db")

	j, err := Open(DefaultConfig(path))
	if err != nil {
		t.Fatal(err)
	}
	s, err := j.StartSession("x:1")
	if err != nil {
		t.Fatal(err)
	}
	s.Record("events.clear()", false)
	j.Close()

	j, err = Open(DefaultConfig(path))
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer j.Close()
	lines, err := j.Lines(s.ID)
	if err != nil || len(lines) != 1 {
		t.Errorf("Lines after reopen = %v, %v", lines, err)
	}
}

func TestQueryBuilder(t *testing.T) {
	query := "SELECT line FROM commands WHERE session_id = ? AND seq > ?"

	if got := NewQueryBuilder(NewDialect(DialectSQLite)).Build(query); got != query {
		t.Errorf("SQLite Build changed the query: %q", got)
	}
	want := "SELECT line FROM commands WHERE session_id = $1 AND seq > $2"
	if got := NewQueryBuilder(NewDialect(DialectPostgres)).Build(query); got != want {
		t.Errorf("Postgres Build = %q, want %q", got, want)
	}
}

func TestSchemaPerDialect(t *testing.T) {
	tests := []struct {
		dialect DialectType
		key     string
	}{
		{DialectSQLite, "INTEGER PRIMARY KEY AUTOINCREMENT"},
		{DialectPostgres, "BIGSERIAL PRIMARY KEY"},
		{"unknown", "INTEGER PRIMARY KEY AUTOINCREMENT"},
	}
	for _, tt := range tests {
		schema := NewQueryBuilder(NewDialect(tt.dialect)).Schema()
		if !strings.Contains(schema[1], tt.key) {
			t.Errorf("%s: commands table missing %q", tt.dialect, tt.key)
		}
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := DefaultPostgresConfig()
	cfg.Password = "secret"
	want := "host=localhost port=5432 user=mcpi password=secret dbname=mcpi sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}
