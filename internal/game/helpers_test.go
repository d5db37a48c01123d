package game

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/deck"
)

var errScriptExhausted = errors.New("script exhausted")

// scriptedAgent replays fixed bets, insurance answers and actions
type scriptedAgent struct {
	bets      []int
	insurance []bool
	actions   []Action

	betCalls       int
	insuranceCalls int
	decisionCalls  int
	decisionStates []TableState
	offered        []ActionSet
}

func (a *scriptedAgent) PlaceBet(ctx context.Context, state TableState) (int, error) {
	if a.betCalls >= len(a.bets) {
		return 0, errScriptExhausted
	}
	bet := a.bets[a.betCalls]
	a.betCalls++
	return bet, nil
}

func (a *scriptedAgent) TakeInsurance(ctx context.Context, state TableState) (bool, error) {
	defer func() { a.insuranceCalls++ }()
	if a.insuranceCalls >= len(a.insurance) {
		return false, nil
	}
	return a.insurance[a.insuranceCalls], nil
}

func (a *scriptedAgent) MakeDecision(ctx context.Context, state TableState, validActions ActionSet) (Decision, error) {
	a.decisionStates = append(a.decisionStates, state)
	a.offered = append(a.offered, validActions)
	if a.decisionCalls >= len(a.actions) {
		a.decisionCalls++
		return Decision{Action: Stand, Reasoning: "script exhausted"}, nil
	}
	action := a.actions[a.decisionCalls]
	a.decisionCalls++
	return Decision{Action: action, Reasoning: "scripted"}, nil
}

// randomAgent bets and plays uniformly at random among legal choices
type randomAgent struct {
	rng interface{ IntN(int) int }
}

func (a *randomAgent) PlaceBet(ctx context.Context, state TableState) (int, error) {
	balance := state.ActingPlayer().Balance
	units := balance / 2
	if units > 25 {
		units = 25
	}
	return 2 * (1 + a.rng.IntN(units)), nil
}

func (a *randomAgent) TakeInsurance(ctx context.Context, state TableState) (bool, error) {
	return a.rng.IntN(2) == 0, nil
}

func (a *randomAgent) MakeDecision(ctx context.Context, state TableState, validActions ActionSet) (Decision, error) {
	actions := validActions.Actions()
	return Decision{Action: actions[a.rng.IntN(len(actions))], Reasoning: "random"}, nil
}

type fixedID string

func (f fixedID) Generate() string { return string(f) }

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestEngine(opts ...EngineOption) (*Engine, *EventRecorder) {
	recorder := &EventRecorder{}
	bus := NewEventBus()
	bus.Subscribe(recorder)

	base := []EngineOption{WithEventBus(bus), WithIDGenerator(fixedID("round-1"))}
	return NewEngine(discardLogger(), append(base, opts...)...), recorder
}

// stackedShoe deals cards in the order written
func stackedShoe(cards string) *deck.Shoe {
	return deck.NewShoeFromCards(deck.MustParseCards(cards))
}

func agentsFor(pairs ...any) map[string]Agent {
	agents := make(map[string]Agent)
	for i := 0; i+1 < len(pairs); i += 2 {
		agents[pairs[i].(string)] = pairs[i+1].(Agent)
	}
	return agents
}
