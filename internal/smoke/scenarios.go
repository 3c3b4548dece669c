// Package smoke runs end-to-end scenarios against a live game. Each
// scenario opens its own connection and leaves the world as it found it.
package smoke

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lawnchairsociety/mcpi/block"
	"github.com/lawnchairsociety/mcpi/connection"
	"github.com/lawnchairsociety/mcpi/geom"
	"github.com/lawnchairsociety/mcpi/minecraft"
	"github.com/lawnchairsociety/mcpi/raster"
)

// Verbose controls whether each scenario step is printed.
var Verbose = false

// Result is the outcome of one scenario.
type Result struct {
	Name    string
	Passed  bool
	Message string
}

// Runner runs scenarios against one game address.
type Runner struct {
	Addr string

	// Origin is where scenarios build; it should be open sky.
	Origin geom.Tile

	Options     []connection.Option
	DialTimeout time.Duration
}

type scenario struct {
	name string
	run  func(r *Runner, mc *minecraft.Minecraft) (string, error)
}

var scenarios = []scenario{
	{"Basic Connection", scenarioPlayers},
	{"Chat", scenarioChat},
	{"Block Round Trip", scenarioBlockRoundTrip},
	{"Player Tile Round Trip", scenarioPlayerTile},
	{"Line Drawing", scenarioLine},
	{"Batched Writes", scenarioBatched},
	{"Block Hit Events", scenarioEvents},
	{"Concurrent Queries", scenarioConcurrent},
}

// RunAll runs every scenario in order.
func (r *Runner) RunAll(ctx context.Context) []Result {
	results := make([]Result, 0, len(scenarios))
	for _, s := range scenarios {
		results = append(results, r.runOne(ctx, s))
	}
	return results
}

func (r *Runner) runOne(ctx context.Context, s scenario) Result {
	timeout := r.DialTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logAction(s.name, "Connecting to "+r.Addr)
	mc, err := minecraft.Connect(dialCtx, r.Addr, r.Options...)
	if err != nil {
		return Result{Name: s.name, Message: fmt.Sprintf("Failed to connect: %v", err)}
	}
	defer mc.Close()

	msg, err := s.run(r, mc)
	if err != nil {
		return Result{Name: s.name, Message: err.Error()}
	}
	return Result{Name: s.name, Passed: true, Message: msg}
}

// PrintResults writes a summary table to stdout.
func PrintResults(results []Result) {
	passed := 0
	for _, r := range results {
		status := "PASS"
		if r.Passed {
			passed++
		} else {
			status = "FAIL"
		}
		fmt.Printf("[%s] %-24s %s\n", status, r.Name, r.Message)
	}
	fmt.Printf("\n%d/%d scenarios passed\n", passed, len(results))
}

func logAction(name, action string) {
	if Verbose {
		fmt.Printf("  [%s] %s\n", name, action)
	}
}

func scenarioPlayers(_ *Runner, mc *minecraft.Minecraft) (string, error) {
	ids, err := mc.GetPlayerEntityIDs()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d players online", len(ids)), nil
}

func scenarioChat(_ *Runner, mc *minecraft.Minecraft) (string, error) {
	if err := mc.PostToChat("mcpi smoke test"); err != nil {
		return "", err
	}
	return "message posted", nil
}

// withCheckpoint runs fn between a checkpoint save and restore.
func withCheckpoint(mc *minecraft.Minecraft, fn func() error) error {
	if err := mc.SaveCheckpoint(); err != nil {
		return err
	}
	err := fn()
	if rerr := mc.RestoreCheckpoint(); err == nil {
		err = rerr
	}
	return err
}

func scenarioBlockRoundTrip(r *Runner, mc *minecraft.Minecraft) (string, error) {
	want := block.Of(block.Wool).WithData(14)
	err := withCheckpoint(mc, func() error {
		logAction("Block Round Trip", "Placing red wool at "+r.Origin.String())
		if err := mc.SetBlock(r.Origin, want); err != nil {
			return err
		}
		got, err := mc.GetBlockWithData(r.Origin)
		if err != nil {
			return err
		}
		if got != want {
			return fmt.Errorf("read back %s, expected %s", got, want)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return "set and read back " + want.String(), nil
}

func scenarioPlayerTile(_ *Runner, mc *minecraft.Minecraft) (string, error) {
	start, err := mc.GetTilePos()
	if err != nil {
		return "", err
	}
	if err := mc.SetTilePos(start); err != nil {
		return "", err
	}
	end, err := mc.GetTilePos()
	if err != nil {
		return "", err
	}
	if end != start {
		return "", fmt.Errorf("player moved from %s to %s", start, end)
	}
	return "player stayed at " + start.String(), nil
}

func scenarioLine(r *Runner, mc *minecraft.Minecraft) (string, error) {
	from := r.Origin
	to := r.Origin.Add(geom.T(6, 2, -2))
	b := block.Of(block.GoldBlock)

	var placed int
	err := withCheckpoint(mc, func() error {
		n, err := minecraft.NewDrawing(mc).Line(b, from, to)
		if err != nil {
			return err
		}
		placed = n
		for _, p := range raster.Line(from, to) {
			got, err := mc.GetBlock(p)
			if err != nil {
				return err
			}
			if got.ID != b.ID {
				return fmt.Errorf("block at %s is %s, expected %s", p, got, b)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d blocks placed and verified", placed), nil
}

func scenarioBatched(r *Runner, mc *minecraft.Minecraft) (string, error) {
	const count = 32
	err := withCheckpoint(mc, func() error {
		if err := mc.SetAutoFlush(false); err != nil {
			return err
		}
		for i := 0; i < count; i++ {
			if err := mc.SetBlock(r.Origin.Add(geom.T(0, i, 0)), block.Of(block.Glass)); err != nil {
				return err
			}
		}
		if err := mc.SetAutoFlush(true); err != nil {
			return err
		}
		top, err := mc.GetBlock(r.Origin.Add(geom.T(0, count-1, 0)))
		if err != nil {
			return err
		}
		if top.ID != block.Glass {
			return fmt.Errorf("top of column is %s, expected glass", top)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d batched blocks delivered", count), nil
}

func scenarioEvents(_ *Runner, mc *minecraft.Minecraft) (string, error) {
	if err := mc.ClearEvents(); err != nil {
		return "", err
	}
	events, err := mc.PollBlockHits()
	if err != nil {
		return "", err
	}
	if len(events) != 0 {
		return "", fmt.Errorf("expected no hits after clear, got %d", len(events))
	}
	return "event queue cleared", nil
}

// scenarioConcurrent shares one connection between goroutines; every
// reply must still match its own query.
func scenarioConcurrent(r *Runner, mc *minecraft.Minecraft) (string, error) {
	const workers = 4
	columns := make([]geom.Tile, workers)
	for i := range columns {
		columns[i] = r.Origin.Add(geom.T(i*2, 0, 3))
	}

	err := withCheckpoint(mc, func() error {
		for i, c := range columns {
			if err := mc.SetBlock(c, block.Of(block.Wool).WithData(i)); err != nil {
				return err
			}
		}

		var wg sync.WaitGroup
		errs := make(chan error, workers)
		for i, c := range columns {
			wg.Add(1)
			go func(i int, c geom.Tile) {
				defer wg.Done()
				for n := 0; n < 10; n++ {
					got, err := mc.GetBlockWithData(c)
					if err != nil {
						errs <- err
						return
					}
					if got.Data != i {
						errs <- fmt.Errorf("worker %d read data %d", i, got.Data)
						return
					}
				}
			}(i, c)
		}
		wg.Wait()
		close(errs)
		return <-errs
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d workers shared one connection", workers), nil
}
