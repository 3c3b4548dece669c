// smoketest runs end-to-end scenarios against a running game.
//
// Usage:
//
//	go run ./cmd/smoketest -addr 127.0.0.1:4711 -origin 0,80,0
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/lawnchairsociety/mcpi/geom"
	"github.com/lawnchairsociety/mcpi/internal/config"
	"github.com/lawnchairsociety/mcpi/internal/logger"
	"github.com/lawnchairsociety/mcpi/internal/smoke"
)

func main() {
	configFile := flag.String("config", "data/mcpi.yaml", "Path to client config YAML file")
	addr := flag.String("addr", "", "Game address, overrides the config file")
	origin := flag.String("origin", "0,100,0", "Block position where scenarios build (x,y,z)")
	verbose := flag.Bool("v", false, "Verbose output - show each scenario step")
	flag.Parse()

	logConfig := logger.DefaultConfig()
	if *verbose {
		logConfig.Level = "DEBUG"
	}
	if err := logger.Initialize(logConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *addr == "" {
		*addr = cfg.Address()
	}
	start, err := geom.ParseTile(*origin)
	if err != nil {
		log.Fatalf("Invalid -origin: %v", err)
	}

	smoke.Verbose = *verbose
	fmt.Printf("Running smoke scenarios against %s\n", *addr)
	fmt.Println("Make sure the game is running and a world is loaded!")
	fmt.Println()

	r := &smoke.Runner{
		Addr:        *addr,
		Origin:      start,
		Options:     cfg.ConnectionOptions(),
		DialTimeout: cfg.Connection.DialTimeout,
	}
	results := r.RunAll(context.Background())
	smoke.PrintResults(results)

	for _, result := range results {
		if !result.Passed {
			os.Exit(1)
		}
	}
}
