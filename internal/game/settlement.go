package game

import (
	"fmt"

	"github.com/lox/blackjack-cli/internal/deck"
)

// Outcome is how a hand or side bet was resolved
type Outcome int

const (
	Win Outcome = iota
	Lose
	Push
	Blackjack
	Bust
	DealerBlackjackLoss
	DealerBlackjackPush
	InsuranceWin
	InsuranceLoss
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Lose:
		return "lose"
	case Push:
		return "push"
	case Blackjack:
		return "blackjack"
	case Bust:
		return "bust"
	case DealerBlackjackLoss:
		return "dealer blackjack"
	case DealerBlackjackPush:
		return "blackjack push"
	case InsuranceWin:
		return "insurance win"
	case InsuranceLoss:
		return "insurance loss"
	default:
		return "unknown"
	}
}

// IsInsurance reports whether the outcome settles an insurance side bet
func (o Outcome) IsInsurance() bool {
	return o == InsuranceWin || o == InsuranceLoss
}

// Settlement is one ledger entry: a hand or insurance bet resolved against
// the house. Delta is the change applied to the player's balance.
type Settlement struct {
	Player    string
	HandIndex int // -1 for insurance
	Outcome   Outcome
	Wager     int
	Delta     int
	Doubled   bool
	Cards     []deck.Card
	Total     int
}

// String returns a compact description for logs
func (s Settlement) String() string {
	return fmt.Sprintf("%s hand %d: %s (wager %d, %+d)", s.Player, s.HandIndex, s.Outcome, s.Wager, s.Delta)
}

// PlayerResult summarises one player's round
type PlayerResult struct {
	Name   string
	Before int
	After  int
}

// Net returns the balance change over the round
func (pr PlayerResult) Net() int {
	return pr.After - pr.Before
}

// RoundResult contains the results of a completed round
type RoundResult struct {
	RoundID         string
	DealerCards     []deck.Card
	DealerTotal     int
	DealerBust      bool
	DealerBlackjack bool
	DealerPlayed    bool
	Settlements     []Settlement
	Players         []PlayerResult
}

// Player returns the result for the named player
func (r *RoundResult) Player(name string) (PlayerResult, bool) {
	for _, pr := range r.Players {
		if pr.Name == name {
			return pr, true
		}
	}
	return PlayerResult{}, false
}

// SettlementsFor returns the ledger entries belonging to the named player
func (r *RoundResult) SettlementsFor(name string) []Settlement {
	var out []Settlement
	for _, s := range r.Settlements {
		if s.Player == name {
			out = append(out, s)
		}
	}
	return out
}

// HouseNet returns the house's take for the round (negative when it paid out)
func (r *RoundResult) HouseNet() int {
	net := 0
	for _, s := range r.Settlements {
		net -= s.Delta
	}
	return net
}

// validateLedger checks that every player's balance moved by exactly the sum
// of that player's ledger entries.
func (r *RoundResult) validateLedger() error {
	for _, pr := range r.Players {
		sum := 0
		for _, s := range r.SettlementsFor(pr.Name) {
			sum += s.Delta
		}
		if sum != pr.Net() {
			return fmt.Errorf("ledger mismatch for %s: entries sum to %d, balance moved %d", pr.Name, sum, pr.Net())
		}
	}
	return nil
}
