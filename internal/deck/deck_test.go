package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShoeComposition(t *testing.T) {
	shoe := NewShoe(2, NewRand(42))
	require.Equal(t, 104, shoe.Size())
	assert.Equal(t, 2, shoe.Decks())

	counts := make(map[Card]int)
	for shoe.Size() > 0 {
		card, ok := shoe.Draw()
		require.True(t, ok)
		counts[card]++
	}

	assert.Len(t, counts, 52)
	for card, n := range counts {
		assert.Equal(t, 2, n, "card %s", card)
	}

	_, ok := shoe.Draw()
	assert.False(t, ok, "empty shoe must not deal")
}

func TestNewShoeDeterministic(t *testing.T) {
	a := NewShoe(1, NewRand(7))
	b := NewShoe(1, NewRand(7))
	c := NewShoe(1, NewRand(8))

	sameAsC := true
	for a.Size() > 0 {
		ca, _ := a.Draw()
		cb, _ := b.Draw()
		cc, _ := c.Draw()
		assert.Equal(t, ca, cb)
		if ca != cc {
			sameAsC = false
		}
	}
	assert.False(t, sameAsC, "different seeds should produce different orders")
}

func TestNewShoeFromCardsDrawOrder(t *testing.T) {
	cards := MustParseCards("AsKh2c")
	shoe := NewShoeFromCards(cards)

	for _, want := range cards {
		got, ok := shoe.Draw()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, 0, shoe.Size())
}

func TestNeedsReshuffle(t *testing.T) {
	shoe := NewShoe(1, NewRand(1))
	assert.False(t, shoe.NeedsReshuffle(10))

	for shoe.Size() > 10 {
		shoe.Draw()
	}
	assert.False(t, shoe.NeedsReshuffle(10), "exactly at threshold is still playable")

	shoe.Draw()
	assert.True(t, shoe.NeedsReshuffle(10))
}
