// Package bot provides automated blackjack agents for simulations and
// unattended seats.
package bot

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/game"
)

// Kinds accepted by New
const (
	KindDealer = "dealer"
	KindStand  = "stand"
	KindRandom = "random"
)

// Kinds lists every bot kind in help-text order
var Kinds = []string{KindDealer, KindStand, KindRandom}

// Options configures a bot
type Options struct {
	// BetUnit is the flat wager a bot places each round
	BetUnit int
	// RNG drives random bots; required for KindRandom
	RNG    *rand.Rand
	Logger *log.Logger
}

// New creates a bot of the given kind
func New(kind string, opts Options) (game.Agent, error) {
	if opts.BetUnit <= 0 {
		opts.BetUnit = 2
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	switch kind {
	case KindDealer:
		return NewDealerBot(opts.BetUnit, opts.Logger), nil
	case KindStand:
		return NewStandBot(opts.BetUnit, opts.Logger), nil
	case KindRandom:
		if opts.RNG == nil {
			return nil, fmt.Errorf("random bot needs an rng")
		}
		return NewRandomBot(opts.BetUnit, opts.RNG, opts.Logger), nil
	default:
		return nil, fmt.Errorf("unknown bot kind %q", kind)
	}
}

// flatBet returns want capped to what the player can still cover, rounded
// down to an even amount.
func flatBet(state game.TableState, want int) int {
	p := state.ActingPlayer()
	available := p.Balance - p.Committed
	if want > available {
		want = available
	}
	return want - want%2
}

// pick returns action when it is legal, otherwise Stand
func pick(action game.Action, validActions game.ActionSet) game.Action {
	if validActions.Has(action) {
		return action
	}
	return game.Stand
}
