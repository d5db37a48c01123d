package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionSet(t *testing.T) {
	s := NewActionSet(Hit, Double)
	assert.True(t, s.Has(Hit))
	assert.True(t, s.Has(Double))
	assert.False(t, s.Has(Stand))
	assert.False(t, s.Has(Split))
	assert.Equal(t, []Action{Hit, Double}, s.Actions())
	assert.Equal(t, "hit/double", s.String())
}

func TestLegalActions(t *testing.T) {
	tests := []struct {
		name    string
		balance int
		wager   int
		cards   string
		want    []Action
	}{
		{name: "pair with funds", balance: 500, wager: 10, cards: "8s8h", want: []Action{Hit, Stand, Double, Split}},
		{name: "equal value faces", balance: 500, wager: 10, cards: "KsJh", want: []Action{Hit, Stand, Double, Split}},
		{name: "non pair", balance: 500, wager: 10, cards: "8s9h", want: []Action{Hit, Stand, Double}},
		{name: "three cards", balance: 500, wager: 10, cards: "2s3h4c", want: []Action{Hit, Stand}},
		{name: "cannot cover double", balance: 30, wager: 20, cards: "8s8h", want: []Action{Hit, Stand}},
		{name: "exactly covers double", balance: 40, wager: 20, cards: "5s6h", want: []Action{Hit, Stand, Double}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer("Alice", tt.balance)
			h := handOf(tt.cards)
			h.wager = tt.wager
			p.hands = []*Hand{h}

			assert.Equal(t, tt.want, LegalActions(p, h).Actions())
		})
	}
}

func TestLegalActionsConsidersAllActiveHands(t *testing.T) {
	p := NewPlayer("Alice", 70)
	first, second := handOf("8s3h"), handOf("8h4c")
	first.wager, second.wager = 20, 20
	p.hands = []*Hand{first, second}

	// Doubling every active wager needs 80.
	assert.False(t, LegalActions(p, first).Has(Double))
}
