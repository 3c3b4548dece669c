// mcpi talks to a running Minecraft Pi Edition game from the command line.
//
// Usage:
//
//	mcpi [flags] chat "Hello World!"
//	mcpi [flags] line -1 1 1 5 3 -1 gold_block
//	mcpi -journal sessions
//	mcpi -journal replay <session-id>
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/lawnchairsociety/mcpi/block"
	"github.com/lawnchairsociety/mcpi/internal/config"
	"github.com/lawnchairsociety/mcpi/internal/journal"
	"github.com/lawnchairsociety/mcpi/internal/logger"
)

func main() {
	configFile := flag.String("config", "data/mcpi.yaml", "Path to client config YAML file")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	addr := flag.String("addr", "", "Game address (host:port or ws:// URL), overrides the config file")
	useJournal := flag.Bool("journal", false, "Record sent commands in the journal (also enables sessions and replay)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	logConfig, err := logger.LoadConfig(*loggingConfig)
	if err != nil {
		log.Printf("Failed to load logging config, using defaults: %v", err)
	}
	if err := logger.Initialize(logConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *useJournal {
		cfg.Journal.Enabled = true
	}

	palette := block.NewPalette()
	if cfg.Palette != "" {
		palette, err = block.LoadPaletteFromYAML(cfg.Palette)
		if err != nil {
			log.Fatalf("Failed to load palette: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{
		cfg:     cfg,
		addr:    *addr,
		palette: palette,
		out:     os.Stdout,
	}
	if a.addr == "" {
		a.addr = cfg.Address()
	}

	if cfg.Journal.Enabled {
		a.journal, err = journal.Open(cfg.Journal.Config)
		if err != nil {
			log.Fatalf("Failed to open journal: %v", err)
		}
		defer a.journal.Close()
	}

	if err := a.run(ctx, flag.Args()); err != nil {
		stop()
		if a.journal != nil {
			a.journal.Close()
		}
		log.Fatalf("%s: %v", flag.Arg(0), err)
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <command> [args]\n\nCommands:\n", os.Args[0])
	for _, c := range commands {
		fmt.Fprintf(flag.CommandLine.Output(), "  %-40s %s\n", c.name+" "+c.args, c.help)
	}
	fmt.Fprintln(flag.CommandLine.Output(), "\nFlags:")
	flag.PrintDefaults()
}
