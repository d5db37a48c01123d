package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/bot"
	"github.com/lox/blackjack-cli/internal/config"
	"github.com/lox/blackjack-cli/internal/console"
	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/game"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

// PlayCmd runs an interactive game
type PlayCmd struct {
	Config  string         `short:"c" default:"blackjack.hcl" help:"Table configuration file" type:"path"`
	Decks   int            `help:"Decks in the shoe (overrides config)"`
	Player  []string       `short:"p" help:"Seat a human player by name, repeatable (overrides config)"`
	Seed    *int64         `help:"Deterministic RNG seed (optional)"`
	Delay   *time.Duration `help:"Pause after each dealer draw (overrides config)"`
	NoDelay bool           `help:"Deal the dealer's cards without pausing"`
	NoColor bool           `help:"Disable colored output"`
	History string         `help:"Readline history file" type:"path"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Decks > 0 {
		cfg.Table.Decks = c.Decks
	}
	if len(c.Player) > 0 {
		cfg.SetPlayers(c.Player, config.AgentHuman)
	}
	delay := cfg.DealerDelay()
	if c.Delay != nil {
		delay = *c.Delay
	}
	if c.NoDelay {
		delay = 0
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()
	logger := newLogger(logFile, cfg.LogLevel(), "PLAY")

	seed := deck.SeedFromTime()
	if c.Seed != nil {
		seed = *c.Seed
	}
	logger.Info("Starting game", "seed", seed, "decks", cfg.Table.Decks, "players", len(cfg.Players), "delay", delay)

	history := c.History
	if history == "" {
		history = filepath.Join(os.TempDir(), "blackjack.history")
	}
	rl, err := console.NewReadline(history)
	if err != nil {
		return fmt.Errorf("failed to create line reader: %w", err)
	}
	defer func() {
		if err := rl.Close(); err != nil {
			logger.Error("Failed to close line reader", "error", err)
		}
	}()

	out := rl.Stdout()
	styles := console.NewStyles(out, !c.NoColor)
	rng := deck.NewRand(seed)

	engine := game.NewEngine(logger, game.WithDealerDelay(delay))
	engine.EventBus().Subscribe(console.NewRenderer(out, styles))
	table := game.NewTable(cfg.Rules(), rng, engine, logger)

	for _, p := range cfg.Players {
		var agent game.Agent
		if p.Agent == config.AgentHuman {
			agent = console.NewHuman(p.Name, rl, out, styles, logger)
		} else {
			agent, err = bot.New(p.Agent, bot.Options{BetUnit: cfg.Table.MinBet, RNG: rng, Logger: logger})
			if err != nil {
				return err
			}
		}
		if err := table.AddPlayer(game.NewPlayer(p.Name, p.Balance), agent); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, titleStyle.Render(" ♠ ♥ Blackjack ♦ ♣ "))
	console.Banner(out, styles)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := console.NewSession(table, rl, out, styles, logger).Run(ctx); err != nil {
		return err
	}
	logger.Info("Game over", "rounds", table.Rounds(), "balances", table.Balances())
	return nil
}
