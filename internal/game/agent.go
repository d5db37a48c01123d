package game

import (
	"context"

	"github.com/lox/blackjack-cli/internal/deck"
)

// Decision is an agent's chosen action with reasoning for the logs
type Decision struct {
	Action    Action
	Reasoning string
}

// HandState is a read-only view of a hand. Cards are empty while bets are
// being collected.
type HandState struct {
	Cards   []deck.Card
	Total   int
	Wager   int
	Doubled bool
}

// PlayerState is a read-only view of a player
type PlayerState struct {
	Name      string
	Balance   int
	Committed int
	Insurance int
	Hands     []HandState
}

// TableState is the read-only state handed to agents. The dealer's up-card
// is only set once bets are in; the hole card is never exposed.
type TableState struct {
	RoundID         string
	DealerUpCard    deck.Card
	UpCardVisible   bool
	Players         []PlayerState
	ActingPlayerIdx int
	ActingHandIdx   int // -1 outside of player turns
}

// ActingPlayer returns the state of the player being asked to decide
func (ts TableState) ActingPlayer() PlayerState {
	return ts.Players[ts.ActingPlayerIdx]
}

// ActingHand returns the hand being decided on. ok is false outside of
// player turns.
func (ts TableState) ActingHand() (HandState, bool) {
	p := ts.ActingPlayer()
	if ts.ActingHandIdx < 0 || ts.ActingHandIdx >= len(p.Hands) {
		return HandState{}, false
	}
	return p.Hands[ts.ActingHandIdx], true
}

// Agent represents any entity (human or bot) that makes decisions for a
// player. Agents receive immutable state and never mutate the round; the
// engine validates and applies what they return, asking again when a bet or
// action is rejected.
type Agent interface {
	// PlaceBet returns the wager for the player's initial hand
	PlaceBet(ctx context.Context, state TableState) (int, error)

	// TakeInsurance is asked only when the dealer shows an ace
	TakeInsurance(ctx context.Context, state TableState) (bool, error)

	// MakeDecision picks one of validActions for the acting hand
	MakeDecision(ctx context.Context, state TableState, validActions ActionSet) (Decision, error)
}
