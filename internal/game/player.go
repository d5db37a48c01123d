package game

import "fmt"

// Player is a seat at the table. The balance carries over between rounds;
// hands only live for the duration of a round.
type Player struct {
	Name      string
	balance   int
	hands     []*Hand
	insurance int
}

// NewPlayer creates a player with a starting balance
func NewPlayer(name string, balance int) *Player {
	return &Player{Name: name, balance: balance}
}

// Balance returns the player's current balance
func (p *Player) Balance() int {
	return p.balance
}

// Hands returns the player's active hands in play order
func (p *Player) Hands() []*Hand {
	hands := make([]*Hand, len(p.hands))
	copy(hands, p.hands)
	return hands
}

// Insurance returns the insurance stake for the current round
func (p *Player) Insurance() int {
	return p.insurance
}

// CommittedWagers returns the sum of wagers across active hands
func (p *Player) CommittedWagers() int {
	total := 0
	for _, h := range p.hands {
		total += h.wager
	}
	return total
}

// PlaceBet attaches amount as the wager of hand. Bets must be positive, even
// and covered by the balance left after wagers already committed this round.
// The balance itself is not touched until the hand settles.
func (p *Player) PlaceBet(amount int, hand *Hand) error {
	if amount <= 0 {
		return ErrBetNotPositive
	}
	if amount%2 != 0 {
		return ErrBetNotEven
	}
	available := p.balance - (p.CommittedWagers() - hand.wager)
	if amount > available {
		return fmt.Errorf("%w: bet %d, available %d", ErrInsufficientFunds, amount, available)
	}
	hand.wager = amount
	return nil
}

// Credit adds amount to the balance
func (p *Player) Credit(amount int) {
	p.balance += amount
}

// Debit removes amount from the balance
func (p *Player) Debit(amount int) {
	p.balance -= amount
}

// HasNaturalBlackjack reports whether the player holds a single two-card 21
func (p *Player) HasNaturalBlackjack() bool {
	return len(p.hands) == 1 && p.hands[0].IsNatural()
}

// CanCoverDoubling reports whether the balance covers twice every active wager
func (p *Player) CanCoverDoubling() bool {
	return 2*p.CommittedWagers() <= p.balance
}

// Eligible reports whether the player can afford the table minimum
func (p *Player) Eligible(minBet int) bool {
	return p.balance >= minBet
}

func (p *Player) handIndex(h *Hand) int {
	for i, candidate := range p.hands {
		if candidate == h {
			return i
		}
	}
	return -1
}

func (p *Player) insertHandAfter(h, added *Hand) {
	idx := p.handIndex(h)
	if idx < 0 {
		p.hands = append(p.hands, added)
		return
	}
	p.hands = append(p.hands, nil)
	copy(p.hands[idx+2:], p.hands[idx+1:])
	p.hands[idx+1] = added
}

func (p *Player) removeHand(h *Hand) {
	if idx := p.handIndex(h); idx >= 0 {
		p.hands = append(p.hands[:idx], p.hands[idx+1:]...)
	}
}

func (p *Player) resetRound() {
	p.hands = nil
	p.insurance = 0
}
