package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/lawnchairsociety/mcpi/block"
	"github.com/lawnchairsociety/mcpi/connection"
	"github.com/lawnchairsociety/mcpi/geom"
	"github.com/lawnchairsociety/mcpi/internal/config"
	"github.com/lawnchairsociety/mcpi/internal/journal"
	"github.com/lawnchairsociety/mcpi/internal/logger"
	"github.com/lawnchairsociety/mcpi/minecraft"
)

var errUsage = errors.New("wrong number of arguments")

// app carries what every command may need. mc is set only for commands
// that talk to the game.
type app struct {
	cfg     *config.ClientConfig
	addr    string
	palette *block.Palette
	journal *journal.Journal
	out     io.Writer

	mc *minecraft.Minecraft
}

type command struct {
	name    string
	args    string
	help    string
	nargs   int // -1 for any number >= 1
	offline bool
	// unjournaled commands are not recorded even with the journal on.
	unjournaled bool
	run         func(a *app, args []string) error
}

var commands = []command{
	{name: "chat", args: "MSG...", help: "post a chat message", nargs: -1, run: cmdChat},
	{name: "getblock", args: "X Y Z", help: "print the block at a position", nargs: 3, run: cmdGetBlock},
	{name: "setblock", args: "X Y Z BLOCK", help: "place a block", nargs: 4, run: cmdSetBlock},
	{name: "line", args: "X1 Y1 Z1 X2 Y2 Z2 BLOCK", help: "draw a line of blocks", nargs: 7, run: cmdLine},
	{name: "pos", help: "print the host player position", run: cmdPos},
	{name: "tp", args: "X Y Z", help: "move the host player", nargs: 3, run: cmdTeleport},
	{name: "height", args: "X Z", help: "print the highest solid y of a column", nargs: 2, run: cmdHeight},
	{name: "hits", help: "print and clear queued block hits", run: cmdHits},
	{name: "blocks", help: "list known block names", offline: true, run: cmdBlocks},
	{name: "sessions", help: "list journaled sessions", offline: true, run: cmdSessions},
	{name: "replay", args: "SESSION", help: "resend the commands of a journaled session", nargs: 1, unjournaled: true, run: cmdReplay},
}

func findCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// run executes args[0] with the remaining arguments.
func (a *app) run(ctx context.Context, args []string) error {
	c, ok := findCommand(args[0])
	if !ok {
		return fmt.Errorf("unknown command %q", args[0])
	}
	rest := args[1:]
	if (c.nargs >= 0 && len(rest) != c.nargs) || (c.nargs < 0 && len(rest) == 0) {
		return fmt.Errorf("%w: usage: %s %s", errUsage, c.name, c.args)
	}
	if c.offline {
		return c.run(a, rest)
	}

	if err := a.connect(ctx, a.journal != nil && !c.unjournaled); err != nil {
		return err
	}
	defer a.mc.Close()
	return c.run(a, rest)
}

func (a *app) connect(ctx context.Context, record bool) error {
	opts := a.cfg.ConnectionOptions()
	if record {
		session, err := a.journal.StartSession(a.addr)
		if err != nil {
			return err
		}
		opts = append(opts, connection.WithRecorder(session))
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Connection.DialTimeout)
	defer cancel()
	mc, err := minecraft.Connect(ctx, a.addr, opts...)
	if err != nil {
		return err
	}
	a.mc = mc
	return nil
}

func cmdChat(a *app, args []string) error {
	return a.mc.PostToChat(strings.Join(args, " "))
}

func cmdGetBlock(a *app, args []string) error {
	t, err := parseTile(args)
	if err != nil {
		return err
	}
	b, err := a.mc.GetBlockWithData(t)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, b)
	return nil
}

func cmdSetBlock(a *app, args []string) error {
	t, err := parseTile(args[:3])
	if err != nil {
		return err
	}
	b, err := a.palette.Resolve(args[3])
	if err != nil {
		return err
	}
	return a.mc.SetBlock(t, b)
}

func cmdLine(a *app, args []string) error {
	from, err := parseTile(args[0:3])
	if err != nil {
		return err
	}
	to, err := parseTile(args[3:6])
	if err != nil {
		return err
	}
	b, err := a.palette.Resolve(args[6])
	if err != nil {
		return err
	}

	start := time.Now()
	n, err := minecraft.NewDrawing(a.mc).Line(b, from, to)
	if err != nil {
		return err
	}
	logger.Info("Line drawn", "from", from, "to", to, "block", b, "blocks", n, "elapsed", time.Since(start))
	fmt.Fprintf(a.out, "%d blocks placed\n", n)
	return nil
}

func cmdPos(a *app, _ []string) error {
	pos, err := a.mc.GetPos()
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, pos)
	return nil
}

func cmdTeleport(a *app, args []string) error {
	var v geom.Vec3
	for i, dst := range []*float64{&v.X, &v.Y, &v.Z} {
		f, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return fmt.Errorf("coordinate %q: %w", args[i], err)
		}
		*dst = f
	}
	return a.mc.SetPos(v)
}

func cmdHeight(a *app, args []string) error {
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("coordinate %q: %w", args[0], err)
	}
	z, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("coordinate %q: %w", args[1], err)
	}
	y, err := a.mc.GetHeight(x, z)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, y)
	return nil
}

func cmdHits(a *app, _ []string) error {
	events, err := a.mc.PollBlockHits()
	if err != nil {
		return err
	}
	for _, e := range events {
		fmt.Fprintln(a.out, e)
	}
	return nil
}

func cmdBlocks(a *app, _ []string) error {
	for _, name := range a.palette.Names() {
		b, _ := a.palette.Lookup(name)
		fmt.Fprintf(a.out, "%-24s %s\n", name, b)
	}
	return nil
}

func cmdSessions(a *app, _ []string) error {
	if a.journal == nil {
		return errors.New("journal is not enabled")
	}
	sessions, err := a.journal.Sessions()
	if err != nil {
		return err
	}
	for _, s := range sessions {
		fmt.Fprintf(a.out, "%s  %s  %-21s %d commands\n",
			s.ID, s.StartedAt.Format(time.RFC3339), s.Address, s.Commands)
	}
	return nil
}

// cmdReplay resends a session's commands in one batch. Queries are skipped
// since nobody would read their replies.
func cmdReplay(a *app, args []string) error {
	if a.journal == nil {
		return errors.New("journal is not enabled")
	}
	lines, err := a.journal.Commands(args[0])
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return fmt.Errorf("session %s has no commands", args[0])
	}

	if err := a.mc.SetAutoFlush(false); err != nil {
		return err
	}
	for _, line := range lines {
		if err := a.mc.Conn().SendRaw(line); err != nil {
			return err
		}
	}
	if err := a.mc.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d commands replayed\n", len(lines))
	return nil
}

func parseTile(args []string) (geom.Tile, error) {
	var v [3]int
	for i := range v {
		n, err := strconv.Atoi(args[i])
		if err != nil {
			return geom.Tile{}, fmt.Errorf("coordinate %q: %w", args[i], err)
		}
		v[i] = n
	}
	return geom.T(v[0], v[1], v[2]), nil
}
