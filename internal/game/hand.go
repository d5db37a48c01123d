package game

import (
	"fmt"
	"strings"

	"github.com/lox/blackjack-cli/internal/deck"
)

const (
	blackjackTotal = 21
	dealerStand    = 17
)

// CardSource supplies cards to the round. deck.Shoe satisfies it.
type CardSource interface {
	Draw() (deck.Card, bool)
	Size() int
}

// Hand is an ordered set of cards plus the wager riding on it. The total is
// always derived from the cards and never stored.
type Hand struct {
	cards     []deck.Card
	wager     int
	fromSplit bool
	doubled   bool
	settled   bool
}

// NewHand creates an empty hand with no wager
func NewHand() *Hand {
	return &Hand{cards: make([]deck.Card, 0, 4)}
}

// NewHandWithCards creates a hand holding the given cards
func NewHandWithCards(cards ...deck.Card) *Hand {
	h := NewHand()
	for _, c := range cards {
		h.Deal(c)
	}
	return h
}

// Deal appends a card to the hand
func (h *Hand) Deal(card deck.Card) {
	h.cards = append(h.cards, card)
}

// Cards returns a copy of the cards in deal order
func (h *Hand) Cards() []deck.Card {
	cards := make([]deck.Card, len(h.cards))
	copy(cards, h.cards)
	return cards
}

// Len returns the number of cards in the hand
func (h *Hand) Len() int {
	return len(h.cards)
}

// Wager returns the amount riding on the hand
func (h *Hand) Wager() int {
	return h.wager
}

// Doubled reports whether the wager was doubled down
func (h *Hand) Doubled() bool {
	return h.doubled
}

// FromSplit reports whether the hand came out of a split
func (h *Hand) FromSplit() bool {
	return h.fromSplit
}

// Settled reports whether the hand's wager has been paid or collected
func (h *Hand) Settled() bool {
	return h.settled
}

// Total returns the hand value. Aces count 11 and are demoted to 1, one at a
// time, while the total is over 21.
func (h *Hand) Total() int {
	total, _ := h.demote(blackjackTotal)
	return total
}

// IsBust reports whether the total is over 21
func (h *Hand) IsBust() bool {
	return h.Total() > blackjackTotal
}

// IsSoft17 reports whether the hand totals 17 with exactly one ace still
// counted as 11.
func (h *Hand) IsSoft17() bool {
	total, aces := h.sum()
	for total > dealerStand && aces > 1 {
		total -= 10
		aces--
	}
	return total == dealerStand && aces == 1
}

// IsNatural reports whether the hand is a two-card 21 that did not come
// from a split.
func (h *Hand) IsNatural() bool {
	return len(h.cards) == 2 && !h.fromSplit && h.Total() == blackjackTotal
}

// CanSplit reports whether the hand holds exactly two cards of equal value
func (h *Hand) CanSplit() bool {
	return len(h.cards) == 2 && h.cards[0].Value() == h.cards[1].Value()
}

// Split moves the second card into a new hand carrying the same wager, then
// deals one card to each hand from src. The receiver is unchanged on error.
func (h *Hand) Split(src CardSource) (*Hand, error) {
	if !h.CanSplit() {
		return nil, ErrCannotSplit
	}
	if src.Size() < 2 {
		return nil, ErrShoeEmpty
	}

	first, _ := src.Draw()
	second, _ := src.Draw()

	split := &Hand{
		cards:     []deck.Card{h.cards[1], second},
		wager:     h.wager,
		fromSplit: true,
	}
	h.cards = append(h.cards[:1], first)
	h.fromSplit = true

	return split, nil
}

// String renders the hand as bracketed cards, e.g. [A♠][K♥]
func (h *Hand) String() string {
	var sb strings.Builder
	for _, c := range h.cards {
		fmt.Fprintf(&sb, "[%s]", c)
	}
	return sb.String()
}

func (h *Hand) sum() (total, aces int) {
	for _, c := range h.cards {
		total += c.Value()
		if c.IsAce() {
			aces++
		}
	}
	return total, aces
}

func (h *Hand) demote(limit int) (total, softAces int) {
	total, softAces = h.sum()
	for total > limit && softAces > 0 {
		total -= 10
		softAces--
	}
	return total, softAces
}

func (h *Hand) double() {
	h.wager *= 2
	h.doubled = true
}

func (h *Hand) markSettled() error {
	if h.settled {
		return ErrHandSettled
	}
	h.settled = true
	return nil
}
