// Package game implements the core blackjack round logic.
//
// The main type is Engine, which runs a single round from the deal through
// settlement: bets, insurance, naturals, player turns with doubling and
// splitting, the dealer's fixed hit-soft-17 policy and per-hand payouts.
//
// # Basic Usage
//
// A Table sequences rounds over a shared shoe:
//
//	engine := game.NewEngine(logger)
//	table := game.NewTable(game.DefaultRules(), deck.NewRand(42), engine, logger)
//	table.AddPlayer(game.NewPlayer("Alice", 500), agent)
//	result, err := table.PlayRound(ctx)
//
// # Money
//
// Wagers belong to hands, never to players. A player's balance is only
// debited or credited when a hand (or an insurance side bet) is settled, and
// every settlement is recorded in the round's ledger. After each round the
// engine checks that the ledger matches the change in player balances and
// that every hand dealt was settled exactly once.
//
// # Deterministic Testing
//
// Use deck.NewShoeFromCards to stack the shoe and scripted Agents to drive
// decisions. The dealer pacing delay runs on an injected quartz.Clock and is
// disabled when the delay is zero.
package game
