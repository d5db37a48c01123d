package game

import (
	"time"

	"github.com/lox/blackjack-cli/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for round events
const (
	EventTypeRoundStart      EventType = "round_start"
	EventTypeBetPlaced       EventType = "bet_placed"
	EventTypeBetRejected     EventType = "bet_rejected"
	EventTypeInitialDeal     EventType = "initial_deal"
	EventTypeInsurance       EventType = "insurance"
	EventTypeDealerBlackjack EventType = "dealer_blackjack"
	EventTypeNatural         EventType = "natural_blackjack"
	EventTypePlayerAction    EventType = "player_action"
	EventTypeActionRejected  EventType = "action_rejected"
	EventTypeHandBust        EventType = "hand_bust"
	EventTypeDealerReveal    EventType = "dealer_reveal"
	EventTypeDealerDraw      EventType = "dealer_draw"
	EventTypeHandSettled     EventType = "hand_settled"
	EventTypeRoundEnd        EventType = "round_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents anything that happens during a round
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

type stamp struct {
	at time.Time
}

func (s stamp) Timestamp() time.Time { return s.at }

// RoundStartEvent is published once the participants of a round are fixed
type RoundStartEvent struct {
	stamp
	RoundID string
	Players []string
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }

// BetPlacedEvent is published when a wager is accepted
type BetPlacedEvent struct {
	stamp
	Player  string
	Amount  int
	Balance int
}

func (e BetPlacedEvent) EventType() EventType { return EventTypeBetPlaced }

// BetRejectedEvent is published when a wager fails validation
type BetRejectedEvent struct {
	stamp
	Player  string
	Amount  int
	Balance int
	Err     error
}

func (e BetRejectedEvent) EventType() EventType { return EventTypeBetRejected }

// InitialDealEvent reveals the dealer's up-card and every player's hand
type InitialDealEvent struct {
	stamp
	DealerUpCard deck.Card
	Players      []PlayerState
}

func (e InitialDealEvent) EventType() EventType { return EventTypeInitialDeal }

// InsuranceEvent records a player's insurance answer
type InsuranceEvent struct {
	stamp
	Player string
	Amount int
	Taken  bool
	Reason string
}

func (e InsuranceEvent) EventType() EventType { return EventTypeInsurance }

// DealerBlackjackEvent is published when the dealer's first two cards total 21
type DealerBlackjackEvent struct {
	stamp
	DealerCards []deck.Card
}

func (e DealerBlackjackEvent) EventType() EventType { return EventTypeDealerBlackjack }

// NaturalBlackjackEvent is published when a player is paid for a natural
type NaturalBlackjackEvent struct {
	stamp
	Player string
	Cards  []deck.Card
	Payout int
}

func (e NaturalBlackjackEvent) EventType() EventType { return EventTypeNatural }

// PlayerActionEvent is published after an action is applied to a hand
type PlayerActionEvent struct {
	stamp
	Player    string
	HandIndex int
	Action    Action
	Cards     []deck.Card
	Total     int
	Wager     int
	Reasoning string
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }

// ActionRejectedEvent is published when an agent picks an unavailable action
type ActionRejectedEvent struct {
	stamp
	Player    string
	HandIndex int
	Action    Action
	Valid     ActionSet
}

func (e ActionRejectedEvent) EventType() EventType { return EventTypeActionRejected }

// HandBustEvent is published when a hand goes over 21 and its wager is lost
type HandBustEvent struct {
	stamp
	Player    string
	HandIndex int
	Cards     []deck.Card
	Total     int
	Wager     int
}

func (e HandBustEvent) EventType() EventType { return EventTypeHandBust }

// DealerRevealEvent is published when the hole card is turned over
type DealerRevealEvent struct {
	stamp
	Cards []deck.Card
	Total int
}

func (e DealerRevealEvent) EventType() EventType { return EventTypeDealerReveal }

// DealerDrawEvent is published after each card the dealer draws
type DealerDrawEvent struct {
	stamp
	Card  deck.Card
	Cards []deck.Card
	Total int
}

func (e DealerDrawEvent) EventType() EventType { return EventTypeDealerDraw }

// HandSettledEvent is published for every ledger entry
type HandSettledEvent struct {
	stamp
	Settlement Settlement
	Balance    int
}

func (e HandSettledEvent) EventType() EventType { return EventTypeHandSettled }

// RoundEndEvent is published after settlement with the full result
type RoundEndEvent struct {
	stamp
	Result *RoundResult
}

func (e RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber
type EventSubscriberFunc func(event GameEvent)

// OnEvent calls f(event)
func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a synchronous in-memory event bus
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber. Function subscribers cannot be compared
// and must stay subscribed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	if _, ok := subscriber.(EventSubscriberFunc); ok {
		return
	}
	for i, sub := range bus.subscribers {
		if _, ok := sub.(EventSubscriberFunc); ok {
			continue
		}
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			return
		}
	}
}

// Publish delivers the event to every subscriber in subscription order
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

// EventRecorder is a subscriber that keeps every event it receives
type EventRecorder struct {
	Events []GameEvent
}

// OnEvent records the event
func (r *EventRecorder) OnEvent(event GameEvent) {
	r.Events = append(r.Events, event)
}

// OfType returns the recorded events of the given type in order
func (r *EventRecorder) OfType(t EventType) []GameEvent {
	var out []GameEvent
	for _, e := range r.Events {
		if e.EventType() == t {
			out = append(out, e)
		}
	}
	return out
}
