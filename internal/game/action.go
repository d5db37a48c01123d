package game

import "strings"

// Action is a decision a player can make on a hand
type Action int

const (
	Hit Action = iota
	Stand
	Double
	Split
)

var allActions = [...]Action{Hit, Stand, Double, Split}

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case Double:
		return "double"
	case Split:
		return "split"
	default:
		return "unknown"
	}
}

// ActionSet is the set of actions legal at a decision point
type ActionSet uint8

// NewActionSet builds a set from the given actions
func NewActionSet(actions ...Action) ActionSet {
	var s ActionSet
	for _, a := range actions {
		s = s.With(a)
	}
	return s
}

// With returns the set with a added
func (s ActionSet) With(a Action) ActionSet {
	return s | 1<<uint(a)
}

// Has reports whether a is in the set
func (s ActionSet) Has(a Action) bool {
	return s&(1<<uint(a)) != 0
}

// Actions lists the members in Hit, Stand, Double, Split order
func (s ActionSet) Actions() []Action {
	actions := make([]Action, 0, len(allActions))
	for _, a := range allActions {
		if s.Has(a) {
			actions = append(actions, a)
		}
	}
	return actions
}

// String returns e.g. "hit/stand/double"
func (s ActionSet) String() string {
	names := make([]string, 0, len(allActions))
	for _, a := range s.Actions() {
		names = append(names, a.String())
	}
	return strings.Join(names, "/")
}

// LegalActions computes the actions available to p on hand h. Hit and stand
// are always offered. Doubling and splitting need a two-card hand and a
// balance that covers doubling every active wager; splitting also needs two
// cards of equal value.
func LegalActions(p *Player, h *Hand) ActionSet {
	set := NewActionSet(Hit, Stand)
	if h.Len() != 2 || !p.CanCoverDoubling() {
		return set
	}
	set = set.With(Double)
	if h.CanSplit() {
		set = set.With(Split)
	}
	return set
}
