package game

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/deck"
)

// Rules are the house settings for a table
type Rules struct {
	Decks            int
	MinBet           int
	MaxPlayers       int
	ReshufflePerDeck int
	DealerDelay      time.Duration
}

// DefaultRules returns a six-deck table for up to four players
func DefaultRules() Rules {
	return Rules{
		Decks:            6,
		MinBet:           2,
		MaxPlayers:       4,
		ReshufflePerDeck: 10,
		DealerDelay:      2 * time.Second,
	}
}

// Table sequences rounds over a shared shoe. Players keep their balances
// across rounds; a player who can no longer cover the minimum bet sits out.
type Table struct {
	rules   Rules
	rng     *rand.Rand
	shoe    *deck.Shoe
	engine  *Engine
	logger  *log.Logger
	players []*Player
	agents  map[string]Agent
	rounds  int
	shuffle int
}

// NewTable creates a table with a freshly shuffled shoe
func NewTable(rules Rules, rng *rand.Rand, engine *Engine, logger *log.Logger) *Table {
	return &Table{
		rules:  rules,
		rng:    rng,
		shoe:   deck.NewShoe(rules.Decks, rng),
		engine: engine,
		logger: logger,
		agents: make(map[string]Agent),
	}
}

// Rules returns the table's rules
func (t *Table) Rules() Rules {
	return t.rules
}

// Engine returns the engine used for rounds
func (t *Table) Engine() *Engine {
	return t.engine
}

// AddPlayer seats a player with the agent that decides for them
func (t *Table) AddPlayer(p *Player, agent Agent) error {
	if t.rules.MaxPlayers > 0 && len(t.players) >= t.rules.MaxPlayers {
		return fmt.Errorf("%w: %d seats", ErrTableFull, t.rules.MaxPlayers)
	}
	if _, exists := t.agents[p.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicatePlayer, p.Name)
	}
	t.players = append(t.players, p)
	t.agents[p.Name] = agent
	return nil
}

// Players returns every seated player in seat order
func (t *Table) Players() []*Player {
	players := make([]*Player, len(t.players))
	copy(players, t.players)
	return players
}

// EligiblePlayers returns the players who can cover the minimum bet
func (t *Table) EligiblePlayers() []*Player {
	var eligible []*Player
	for _, p := range t.players {
		if p.Eligible(t.rules.MinBet) {
			eligible = append(eligible, p)
		}
	}
	return eligible
}

// Balances returns every seated player's balance keyed by name
func (t *Table) Balances() map[string]int {
	balances := make(map[string]int, len(t.players))
	for _, p := range t.players {
		balances[p.Name] = p.balance
	}
	return balances
}

// Rounds returns the number of completed rounds
func (t *Table) Rounds() int {
	return t.rounds
}

// Shuffles returns how many times the shoe has been replaced
func (t *Table) Shuffles() int {
	return t.shuffle
}

// ShoeSize returns the number of cards left in the shoe
func (t *Table) ShoeSize() int {
	return t.shoe.Size()
}

// PlayRound plays one round with every eligible player, then replaces the
// shoe if it has run low.
func (t *Table) PlayRound(ctx context.Context) (*RoundResult, error) {
	players := t.EligiblePlayers()
	if len(players) == 0 {
		return nil, ErrNoPlayers
	}

	t.ReplenishShoe()
	result, err := t.engine.PlayRound(ctx, players, t.shoe, t.agents)
	if err != nil {
		return nil, err
	}
	t.rounds++
	t.ReplenishShoe()
	return result, nil
}

// ReplenishShoe swaps in a fresh shuffled shoe when fewer than
// Decks*ReshufflePerDeck cards remain. It reports whether it did.
func (t *Table) ReplenishShoe() bool {
	if !t.shoe.NeedsReshuffle(t.rules.ReshufflePerDeck) {
		return false
	}
	t.logger.Info("Shoe low, reshuffling", "remaining", t.shoe.Size(), "decks", t.rules.Decks)
	t.shoe = deck.NewShoe(t.rules.Decks, t.rng)
	t.shuffle++
	return true
}
