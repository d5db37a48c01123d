package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/config"
	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/game"
	"github.com/lox/blackjack-cli/internal/simulator"
)

// SimulateCmd plays bot-only rounds and summarises the results
type SimulateCmd struct {
	Rounds  int    `default:"10000" help:"Number of rounds to simulate"`
	Players int    `default:"1" help:"Seats at the table (1-4)"`
	Agent   string `default:"dealer" enum:"dealer,stand,random,mixed" help:"Bot type: dealer, stand, random, mixed"`
	Seed    *int64 `help:"Deterministic RNG seed (optional)"`
	Decks   int    `default:"6" help:"Decks in the shoe"`
	Bet     int    `default:"10" help:"Flat bet per round"`
	Balance int    `default:"500" help:"Starting balance per seat"`
	Output  string `short:"o" help:"Write a JSON report to this file" type:"path"`
	Verbose bool   `help:"Log every round at debug level"`
}

func (c *SimulateCmd) Run() error {
	level := log.WarnLevel
	if c.Verbose {
		level = log.DebugLevel
	}
	logger := newLogger(os.Stderr, level, "SIM")

	if c.Players < 1 || c.Players > config.MaxPlayers {
		return fmt.Errorf("players must be between 1 and %d, got %d", config.MaxPlayers, c.Players)
	}
	if c.Decks < 1 || c.Decks > config.MaxDecks {
		return fmt.Errorf("decks must be between 1 and %d, got %d", config.MaxDecks, c.Decks)
	}

	seed := deck.SeedFromTime()
	if c.Seed != nil {
		seed = *c.Seed
	}

	rules := game.DefaultRules()
	rules.Decks = c.Decks

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting simulation", "rounds", c.Rounds, "players", c.Players, "agent", c.Agent, "seed", seed)
	report, err := simulator.New(simulator.Config{
		Rounds:          c.Rounds,
		Players:         c.Players,
		Agent:           c.Agent,
		Seed:            seed,
		Rules:           rules,
		StartingBalance: c.Balance,
		BetUnit:         c.Bet,
		Logger:          logger,
	}).Run(ctx)
	if err != nil {
		return err
	}

	simulator.PrintSummary(os.Stdout, report)

	if c.Output != "" {
		if err := report.WriteJSON(c.Output); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		logger.Info("Report written", "file", c.Output)
	}
	return nil
}
