package smoke

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/lawnchairsociety/mcpi/geom"
	"github.com/lawnchairsociety/mcpi/internal/testserver"
)

// fakeWorld is just enough of a game for the scenarios.
type fakeWorld struct {
	mu         sync.Mutex
	blocks     map[geom.Tile][2]int
	checkpoint map[geom.Tile][2]int
	player     geom.Tile
	brokenRead bool
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{blocks: make(map[geom.Tile][2]int), player: geom.T(0, 64, 0)}
}

func args(line string) []int {
	open, end := strings.IndexByte(line, '('), strings.LastIndexByte(line, ')')
	var out []int
	for _, f := range strings.Split(line[open+1:end], ",") {
		if n, err := strconv.Atoi(f); err == nil {
			out = append(out, n)
		}
	}
	return out
}

func (w *fakeWorld) handle(line string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	a := args(line)
	switch testserver.CommandName(line) {
	case "world.setBlock":
		data := 0
		if len(a) > 4 {
			data = a[4]
		}
		w.blocks[geom.T(a[0], a[1], a[2])] = [2]int{a[3], data}
	case "world.getBlock":
		b := w.blocks[geom.T(a[0], a[1], a[2])]
		if w.brokenRead {
			b[0]++
		}
		return strconv.Itoa(b[0]), true
	case "world.getBlockWithData":
		b := w.blocks[geom.T(a[0], a[1], a[2])]
		return strconv.Itoa(b[0]) + "," + strconv.Itoa(b[1]), true
	case "world.getPlayerEntityIds":
		return "1", true
	case "world.checkpoint.save":
		w.checkpoint = make(map[geom.Tile][2]int, len(w.blocks))
		for k, v := range w.blocks {
			w.checkpoint[k] = v
		}
	case "world.checkpoint.restore":
		w.blocks = w.checkpoint
	case "player.getTile":
		return w.player.String(), true
	case "player.setTile":
		w.player = geom.T(a[0], a[1], a[2])
	case "events.block.hits":
		return "", true
	}
	return "", false
}

func startWorld(t *testing.T) (*fakeWorld, *testserver.Server) {
	t.Helper()
	w := newFakeWorld()
	srv, err := testserver.New(w.handle)
	if err != nil {
		t.Fatalf("Failed to start test server: %v", err)
	}
	t.Cleanup(func() { srv.Close() })
	return w, srv
}

func TestAllScenariosPass(t *testing.T) {
	w, srv := startWorld(t)
	r := &Runner{Addr: srv.Addr(), Origin: geom.T(10, 70, 10)}

	results := r.RunAll(context.Background())
	if len(results) != len(scenarios) {
		t.Fatalf("Expected %d results, got %d", len(scenarios), len(results))
	}
	for _, res := range results {
		if !res.Passed {
			t.Errorf("%s failed: %s", res.Name, res.Message)
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.blocks) != 0 {
		t.Errorf("Expected world restored to empty, found %d blocks", len(w.blocks))
	}
}

func TestScenarioReportsWrongBlock(t *testing.T) {
	w, srv := startWorld(t)
	w.brokenRead = true
	r := &Runner{Addr: srv.Addr(), Origin: geom.T(0, 70, 0)}

	res := r.runOne(context.Background(), scenario{"Line Drawing", scenarioLine})
	if res.Passed {
		t.Fatal("Expected line scenario to fail when reads disagree")
	}
	if !strings.Contains(res.Message, "expected") {
		t.Errorf("Unexpected message %q", res.Message)
	}
}

func TestUnreachableGame(t *testing.T) {
	_, srv := startWorld(t)
	addr := srv.Addr()
	srv.Close()

	r := &Runner{Addr: addr}
	for _, res := range r.RunAll(context.Background()) {
		if res.Passed || !strings.HasPrefix(res.Message, "Failed to connect") {
			t.Errorf("%s: expected connect failure, got %+v", res.Name, res)
		}
	}
}
