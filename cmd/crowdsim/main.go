package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zeusync/crowdsim/internal/config"
	"github.com/zeusync/crowdsim/internal/core/avoidance"
	"github.com/zeusync/crowdsim/internal/injector"
	"github.com/zeusync/crowdsim/internal/scenario"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML configuration file")
	strategy := flag.String("strategy", "", "override engine.strategy (sampled, orca, cone)")
	kind := flag.String("scenario", "", "override scenario.kind (crossing, swap, circle)")
	ticks := flag.Uint64("ticks", 0, "override simulation.ticks")
	serve := flag.String("serve", "", "stream frames over websocket on this address")
	printConfig := flag.Bool("print-config", false, "print the effective configuration and exit")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}
	if *strategy != "" {
		cfg.Engine.Strategy = avoidance.Strategy(*strategy)
	}
	if *kind != "" {
		cfg.Scenario.Kind = scenario.Kind(*kind)
	}
	if *ticks > 0 {
		cfg.Simulation.Ticks = *ticks
	}
	if *serve != "" {
		cfg.Server.Enabled = true
		cfg.Server.Addr = *serve
	}
	if err = cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Invalid config:", err)
		os.Exit(1)
	}

	if *printConfig {
		if err = cfg.Encode(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, "Error printing config:", err)
			os.Exit(1)
		}
		return
	}

	app, err := injector.InitializeApp(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = app.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Simulation failed:", err)
		stop()
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := config.Default()
		return &cfg, nil
	}
	return config.Load(path)
}
