package config

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjack-cli/internal/game"
)

// Agent kinds a player block may name
const (
	AgentHuman  = "human"
	AgentDealer = "dealer"
	AgentStand  = "stand"
	AgentRandom = "random"
)

// Table limits enforced by Validate
const (
	MaxDecks   = 8
	MaxPlayers = 4
)

// Config represents the complete table configuration
type Config struct {
	Table   TableSettings
	Players []PlayerSettings
	Log     LogSettings
}

// TableSettings contains the house rules
type TableSettings struct {
	Decks            int `hcl:"decks,optional"`
	MinBet           int `hcl:"min_bet,optional"`
	StartingBalance  int `hcl:"starting_balance,optional"`
	MaxPlayers       int `hcl:"max_players,optional"`
	ReshufflePerDeck int `hcl:"reshuffle_per_deck,optional"`
	DealerDelayMs    int `hcl:"dealer_delay_ms,optional"`
}

// PlayerSettings defines a seat at the table
type PlayerSettings struct {
	Name    string `hcl:"name,label"`
	Balance int    `hcl:"balance,optional"`
	Agent   string `hcl:"agent,optional"`
}

// LogSettings controls where and how much the game logs
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// file mirrors the HCL layout; every block is optional
type file struct {
	Table   *TableSettings   `hcl:"table,block"`
	Players []PlayerSettings `hcl:"player,block"`
	Log     *LogSettings     `hcl:"log,block"`
}

// DefaultConfig returns a six-deck table with a single human player
func DefaultConfig() *Config {
	return &Config{
		Table: TableSettings{
			Decks:            6,
			MinBet:           2,
			StartingBalance:  500,
			MaxPlayers:       MaxPlayers,
			ReshufflePerDeck: 10,
			DealerDelayMs:    2000,
		},
		Players: []PlayerSettings{
			{Name: "Player 1", Balance: 500, Agent: AgentHuman},
		},
		Log: LogSettings{
			Level: "info",
			File:  "blackjack.log",
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(f)
}

// Parse parses configuration from HCL source
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(f)
}

func decode(f *hcl.File) (*Config, error) {
	var raw file
	if diags := gohcl.DecodeBody(f.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := &Config{Players: raw.Players}
	if raw.Table != nil {
		config.Table = *raw.Table
	}
	if raw.Log != nil {
		config.Log = *raw.Log
	}
	config.applyDefaults()
	return config, nil
}

// applyDefaults fills zero values from DefaultConfig
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Table.Decks == 0 {
		c.Table.Decks = defaults.Table.Decks
	}
	if c.Table.MinBet == 0 {
		c.Table.MinBet = defaults.Table.MinBet
	}
	if c.Table.StartingBalance == 0 {
		c.Table.StartingBalance = defaults.Table.StartingBalance
	}
	if c.Table.MaxPlayers == 0 {
		c.Table.MaxPlayers = defaults.Table.MaxPlayers
	}
	if c.Table.ReshufflePerDeck == 0 {
		c.Table.ReshufflePerDeck = defaults.Table.ReshufflePerDeck
	}
	if c.Table.DealerDelayMs == 0 {
		c.Table.DealerDelayMs = defaults.Table.DealerDelayMs
	}

	if len(c.Players) == 0 {
		c.Players = defaults.Players
	}
	for i := range c.Players {
		if c.Players[i].Balance == 0 {
			c.Players[i].Balance = c.Table.StartingBalance
		}
		if c.Players[i].Agent == "" {
			c.Players[i].Agent = AgentHuman
		}
	}

	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.File == "" {
		c.Log.File = defaults.Log.File
	}
}

// SetPlayers replaces the configured seats with the given names, all
// starting on the table's starting balance.
func (c *Config) SetPlayers(names []string, agent string) {
	c.Players = make([]PlayerSettings, len(names))
	for i, name := range names {
		c.Players[i] = PlayerSettings{Name: name, Balance: c.Table.StartingBalance, Agent: agent}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Table.Decks < 1 || c.Table.Decks > MaxDecks {
		return fmt.Errorf("decks must be between 1 and %d, got %d", MaxDecks, c.Table.Decks)
	}
	if c.Table.MinBet < 2 || c.Table.MinBet%2 != 0 {
		return fmt.Errorf("minimum bet must be an even number of at least 2, got %d", c.Table.MinBet)
	}
	if c.Table.MaxPlayers < 1 || c.Table.MaxPlayers > MaxPlayers {
		return fmt.Errorf("max players must be between 1 and %d, got %d", MaxPlayers, c.Table.MaxPlayers)
	}
	if c.Table.ReshufflePerDeck < 0 {
		return fmt.Errorf("reshuffle threshold cannot be negative")
	}
	if c.Table.DealerDelayMs < 0 {
		return fmt.Errorf("dealer delay cannot be negative")
	}

	if len(c.Players) == 0 {
		return fmt.Errorf("at least one player must be configured")
	}
	if len(c.Players) > c.Table.MaxPlayers {
		return fmt.Errorf("%d players configured, table seats %d", len(c.Players), c.Table.MaxPlayers)
	}

	validAgents := map[string]bool{
		AgentHuman:  true,
		AgentDealer: true,
		AgentStand:  true,
		AgentRandom: true,
	}
	seen := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("player name is required")
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate player name %q", p.Name)
		}
		seen[p.Name] = true

		if p.Balance < c.Table.MinBet {
			return fmt.Errorf("player %s: balance %d is below the minimum bet", p.Name, p.Balance)
		}
		if !validAgents[p.Agent] {
			return fmt.Errorf("player %s: invalid agent %s", p.Name, p.Agent)
		}
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	return nil
}

// Rules converts the table settings into game rules
func (c *Config) Rules() game.Rules {
	return game.Rules{
		Decks:            c.Table.Decks,
		MinBet:           c.Table.MinBet,
		MaxPlayers:       c.Table.MaxPlayers,
		ReshufflePerDeck: c.Table.ReshufflePerDeck,
		DealerDelay:      c.DealerDelay(),
	}
}

// DealerDelay returns the pause after each dealer draw
func (c *Config) DealerDelay() time.Duration {
	return time.Duration(c.Table.DealerDelayMs) * time.Millisecond
}

// LogLevel returns the parsed log level, falling back to info
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// HasHumans reports whether any seat is played interactively
func (c *Config) HasHumans() bool {
	for _, p := range c.Players {
		if p.Agent == AgentHuman {
			return true
		}
	}
	return false
}
