package deck

import (
	rand "math/rand/v2"
)

// CardsPerDeck is the size of a single standard deck
const CardsPerDeck = 52

// Shoe is one or more shuffled decks dealt from the end of the slice.
type Shoe struct {
	cards []Card
	decks int
}

// NewShoe creates a shoe of decks*52 cards shuffled with rng
func NewShoe(decks int, rng *rand.Rand) *Shoe {
	if decks < 1 {
		decks = 1
	}

	shoe := &Shoe{
		cards: make([]Card, 0, decks*CardsPerDeck),
		decks: decks,
	}

	for range decks {
		for _, suit := range Suits {
			for _, rank := range Ranks {
				shoe.cards = append(shoe.cards, NewCard(suit, rank))
			}
		}
	}

	rng.Shuffle(len(shoe.cards), func(i, j int) {
		shoe.cards[i], shoe.cards[j] = shoe.cards[j], shoe.cards[i]
	})

	return shoe
}

// NewShoeFromCards builds an unshuffled shoe that deals the given cards in
// order, first card first. The deck count used for reshuffle checks is 1.
func NewShoeFromCards(drawOrder []Card) *Shoe {
	cards := make([]Card, len(drawOrder))
	for i, c := range drawOrder {
		cards[len(drawOrder)-1-i] = c
	}
	return &Shoe{cards: cards, decks: 1}
}

// Draw removes and returns the top card of the shoe
func (s *Shoe) Draw() (Card, bool) {
	if len(s.cards) == 0 {
		return Card{}, false
	}

	last := len(s.cards) - 1
	card := s.cards[last]
	s.cards = s.cards[:last]
	return card, true
}

// Size returns the number of cards left in the shoe
func (s *Shoe) Size() int {
	return len(s.cards)
}

// Decks returns the number of decks the shoe was built from
func (s *Shoe) Decks() int {
	return s.decks
}

// NeedsReshuffle reports whether fewer than decks*perDeck cards remain.
func (s *Shoe) NeedsReshuffle(perDeck int) bool {
	return len(s.cards) < s.decks*perDeck
}
