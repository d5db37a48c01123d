package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/roundid"
)

// maxAgentAttempts bounds how often an agent may be re-asked after a
// rejected bet or action.
const maxAgentAttempts = 100

// IDGenerator produces round identifiers
type IDGenerator interface {
	Generate() string
}

// Engine runs blackjack rounds. It holds no per-round state; everything a
// round needs lives in a value created by PlayRound and dropped at its end.
type Engine struct {
	logger      *log.Logger
	clock       quartz.Clock
	dealerDelay time.Duration
	eventBus    EventBus
	ids         IDGenerator
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithClock sets the clock used for dealer pacing and event timestamps
func WithClock(clock quartz.Clock) EngineOption {
	return func(e *Engine) { e.clock = clock }
}

// WithDealerDelay sets the pause after each dealer draw. Zero disables it.
func WithDealerDelay(d time.Duration) EngineOption {
	return func(e *Engine) { e.dealerDelay = d }
}

// WithEventBus sets the bus round events are published to
func WithEventBus(bus EventBus) EngineOption {
	return func(e *Engine) { e.eventBus = bus }
}

// WithIDGenerator sets the round ID source
func WithIDGenerator(ids IDGenerator) EngineOption {
	return func(e *Engine) { e.ids = ids }
}

// NewEngine creates a new engine
func NewEngine(logger *log.Logger, opts ...EngineOption) *Engine {
	e := &Engine{
		logger:   logger,
		clock:    quartz.NewReal(),
		eventBus: NewEventBus(),
		ids:      roundid.NewGenerator(nil),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EventBus returns the bus for subscribing to round events
func (e *Engine) EventBus() EventBus {
	return e.eventBus
}

// round is the state of a single round. It is discarded when PlayRound returns.
type round struct {
	*Engine
	ctx     context.Context
	id      string
	players []*Player
	agents  map[string]Agent
	shoe    CardSource
	dealer  *Hand
	dealt   []*Hand
	result  *RoundResult
	upShown bool
}

// PlayRound runs one complete round for players, drawing from shoe. Every
// player needs an agent keyed by name. Balances are only changed through
// settlements; all hands are discarded when the round returns, even on error.
func (e *Engine) PlayRound(ctx context.Context, players []*Player, shoe CardSource, agents map[string]Agent) (*RoundResult, error) {
	if len(players) == 0 {
		return nil, ErrNoPlayers
	}
	for _, p := range players {
		if agents[p.Name] == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAgent, p.Name)
		}
		if len(p.hands) > 0 {
			return nil, fmt.Errorf("player %s still holds hands from a previous round", p.Name)
		}
	}

	r := &round{
		Engine:  e,
		ctx:     ctx,
		id:      e.ids.Generate(),
		players: players,
		agents:  agents,
		shoe:    shoe,
		dealer:  NewHand(),
		result:  &RoundResult{},
	}
	r.result.RoundID = r.id
	for _, p := range players {
		r.result.Players = append(r.result.Players, PlayerResult{Name: p.Name, Before: p.balance})
	}
	defer r.teardown()

	if err := r.run(); err != nil {
		e.logger.Error("Round aborted", "round", r.id, "error", err)
		return nil, err
	}
	return r.result, nil
}

func (r *round) run() error {
	names := make([]string, len(r.players))
	for i, p := range r.players {
		names[i] = p.Name
	}
	r.logger.Info("Starting round", "round", r.id, "players", names, "shoe", r.shoe.Size())
	r.publish(RoundStartEvent{stamp: r.stamp(), RoundID: r.id, Players: names})

	if err := r.deal(); err != nil {
		return err
	}
	if err := r.collectBets(); err != nil {
		return err
	}

	r.upShown = true
	r.publish(InitialDealEvent{stamp: r.stamp(), DealerUpCard: r.upCard(), Players: r.playerStates(true)})

	if r.upCard().IsAce() {
		if err := r.offerInsurance(); err != nil {
			return err
		}
	}

	if r.dealer.Total() == blackjackTotal {
		if err := r.settleDealerBlackjack(); err != nil {
			return err
		}
		return r.finish()
	}
	if err := r.collectInsurance(); err != nil {
		return err
	}

	remaining, err := r.payNaturals()
	if err != nil {
		return err
	}

	for _, p := range remaining {
		if err := r.playerTurn(p); err != nil {
			return err
		}
	}

	surviving := r.survivingHands(remaining)
	r.revealDealer()
	if len(surviving) > 0 {
		if err := r.dealerTurn(); err != nil {
			return err
		}
	} else {
		r.logger.Debug("Skipping dealer turn, no hands left to beat", "round", r.id)
	}

	if err := r.settleShowdown(surviving); err != nil {
		return err
	}
	return r.finish()
}

// deal gives each player a fresh hand and deals two passes, players before
// the dealer on each pass.
func (r *round) deal() error {
	for _, p := range r.players {
		h := NewHand()
		p.hands = []*Hand{h}
		r.dealt = append(r.dealt, h)
	}
	for pass := 0; pass < 2; pass++ {
		for _, p := range r.players {
			if err := r.drawInto(p.hands[0]); err != nil {
				return err
			}
		}
		if err := r.drawInto(r.dealer); err != nil {
			return err
		}
	}
	r.logger.Debug("Dealt initial cards", "round", r.id, "upcard", r.upCard())
	return nil
}

func (r *round) collectBets() error {
	for i, p := range r.players {
		hand := p.hands[0]
		accepted := false
		for attempt := 0; attempt < maxAgentAttempts; attempt++ {
			amount, err := r.agents[p.Name].PlaceBet(r.ctx, r.tableState(i, -1))
			if err != nil {
				return fmt.Errorf("bet from %s: %w", p.Name, err)
			}
			if err := p.PlaceBet(amount, hand); err != nil {
				r.logger.Debug("Bet rejected", "player", p.Name, "amount", amount, "error", err)
				r.publish(BetRejectedEvent{stamp: r.stamp(), Player: p.Name, Amount: amount, Balance: p.balance, Err: err})
				continue
			}
			accepted = true
			break
		}
		if !accepted {
			return fmt.Errorf("bet from %s: %w", p.Name, ErrTooManyAttempts)
		}
		r.logger.Debug("Bet placed", "player", p.Name, "amount", hand.wager)
		r.publish(BetPlacedEvent{stamp: r.stamp(), Player: p.Name, Amount: hand.wager, Balance: p.balance})
	}
	return nil
}

// offerInsurance asks every player for an insurance side bet of half their
// wager. Nothing is debited here; the stake settles with the dealer check.
func (r *round) offerInsurance() error {
	for i, p := range r.players {
		take, err := r.agents[p.Name].TakeInsurance(r.ctx, r.tableState(i, -1))
		if err != nil {
			return fmt.Errorf("insurance from %s: %w", p.Name, err)
		}
		if !take {
			continue
		}

		wager := p.hands[0].wager
		stake := wager / 2
		if stake <= 0 || wager+stake > p.balance {
			r.publish(InsuranceEvent{stamp: r.stamp(), Player: p.Name, Amount: stake, Reason: "not enough funds"})
			continue
		}
		p.insurance = stake
		r.logger.Debug("Insurance placed", "player", p.Name, "amount", stake)
		r.publish(InsuranceEvent{stamp: r.stamp(), Player: p.Name, Amount: stake, Taken: true})
	}
	return nil
}

// settleDealerBlackjack ends the round: insurance pays 2:1, a player 21
// pushes and every other hand loses its wager.
func (r *round) settleDealerBlackjack() error {
	r.result.DealerBlackjack = true
	r.logger.Debug("Dealer has blackjack", "round", r.id, "cards", r.dealer.String())
	r.publish(DealerBlackjackEvent{stamp: r.stamp(), DealerCards: r.dealer.Cards()})

	for _, p := range r.players {
		if p.insurance > 0 {
			r.settleInsurance(p, InsuranceWin, 2*p.insurance)
		}
		hand := p.hands[0]
		if hand.Total() == blackjackTotal {
			if err := r.settle(p, hand, DealerBlackjackPush, 0); err != nil {
				return err
			}
			continue
		}
		if err := r.settle(p, hand, DealerBlackjackLoss, -hand.wager); err != nil {
			return err
		}
	}
	return nil
}

// collectInsurance takes the insurance stakes once the dealer is known not
// to hold blackjack.
func (r *round) collectInsurance() error {
	for _, p := range r.players {
		if p.insurance > 0 {
			r.settleInsurance(p, InsuranceLoss, -p.insurance)
		}
	}
	return nil
}

// payNaturals pays 3:2 on natural blackjacks and returns the players who
// still have to act.
func (r *round) payNaturals() ([]*Player, error) {
	remaining := make([]*Player, 0, len(r.players))
	for _, p := range r.players {
		if !p.HasNaturalBlackjack() {
			remaining = append(remaining, p)
			continue
		}
		hand := p.hands[0]
		payout := hand.wager * 3 / 2
		r.logger.Debug("Natural blackjack", "player", p.Name, "payout", payout)
		r.publish(NaturalBlackjackEvent{stamp: r.stamp(), Player: p.Name, Cards: hand.Cards(), Payout: payout})
		if err := r.settle(p, hand, Blackjack, payout); err != nil {
			return nil, err
		}
	}
	return remaining, nil
}

// playerTurn plays every hand of p in order. Splits insert the new hand
// right after the one being played so it is played next.
func (r *round) playerTurn(p *Player) error {
	queue := p.Hands()
	for i := 0; i < len(queue); i++ {
		added, err := r.playHand(p, queue[i])
		if err != nil {
			return err
		}
		if len(added) > 0 {
			tail := append(added, queue[i+1:]...)
			queue = append(queue[:i+1], tail...)
		}
	}
	return nil
}

// playHand runs the decision loop for one hand and returns any hands split
// off it. A hand stops taking actions at 21 or above; a bust loses its
// wager immediately and leaves the player's active hands.
func (r *round) playHand(p *Player, h *Hand) ([]*Hand, error) {
	var added []*Hand
	done := false

	for !done && h.Total() < blackjackTotal {
		valid := LegalActions(p, h)
		decision, err := r.decide(p, h, valid)
		if err != nil {
			return nil, err
		}

		switch decision.Action {
		case Hit:
			if err := r.drawInto(h); err != nil {
				return nil, err
			}
		case Stand:
			done = true
		case Double:
			h.double()
			if err := r.drawInto(h); err != nil {
				return nil, err
			}
			done = true
		case Split:
			split, err := h.Split(r.shoe)
			if err != nil {
				return nil, fmt.Errorf("split for %s: %w", p.Name, err)
			}
			p.insertHandAfter(h, split)
			r.dealt = append(r.dealt, split)
			added = append([]*Hand{split}, added...)
		}

		r.logger.Debug("Player action",
			"player", p.Name,
			"hand", p.handIndex(h),
			"action", decision.Action,
			"cards", h.String(),
			"total", h.Total(),
			"reasoning", decision.Reasoning)
		r.publish(PlayerActionEvent{
			stamp:     r.stamp(),
			Player:    p.Name,
			HandIndex: p.handIndex(h),
			Action:    decision.Action,
			Cards:     h.Cards(),
			Total:     h.Total(),
			Wager:     h.wager,
			Reasoning: decision.Reasoning,
		})
	}

	if h.IsBust() {
		idx := p.handIndex(h)
		r.publish(HandBustEvent{stamp: r.stamp(), Player: p.Name, HandIndex: idx, Cards: h.Cards(), Total: h.Total(), Wager: h.wager})
		if err := r.settleAt(p, h, idx, Bust, -h.wager); err != nil {
			return nil, err
		}
		p.removeHand(h)
	}
	return added, nil
}

func (r *round) decide(p *Player, h *Hand, valid ActionSet) (Decision, error) {
	playerIdx := r.playerIndex(p)
	handIdx := p.handIndex(h)
	for attempt := 0; attempt < maxAgentAttempts; attempt++ {
		decision, err := r.agents[p.Name].MakeDecision(r.ctx, r.tableState(playerIdx, handIdx), valid)
		if err != nil {
			return Decision{}, fmt.Errorf("decision from %s: %w", p.Name, err)
		}
		if valid.Has(decision.Action) {
			return decision, nil
		}
		r.logger.Debug("Action rejected", "player", p.Name, "action", decision.Action, "valid", valid)
		r.publish(ActionRejectedEvent{stamp: r.stamp(), Player: p.Name, HandIndex: handIdx, Action: decision.Action, Valid: valid})
	}
	return Decision{}, fmt.Errorf("decision from %s: %w", p.Name, ErrTooManyAttempts)
}

func (r *round) revealDealer() {
	r.publish(DealerRevealEvent{stamp: r.stamp(), Cards: r.dealer.Cards(), Total: r.dealer.Total()})
}

// dealerTurn hits below 17 and on soft 17, pausing after every draw.
func (r *round) dealerTurn() error {
	r.result.DealerPlayed = true
	for r.dealer.Total() < dealerStand || r.dealer.IsSoft17() {
		card, ok := r.shoe.Draw()
		if !ok {
			return ErrShoeEmpty
		}
		r.dealer.Deal(card)
		if err := r.pause(); err != nil {
			return err
		}
		r.logger.Debug("Dealer draws", "card", card, "total", r.dealer.Total())
		r.publish(DealerDrawEvent{stamp: r.stamp(), Card: card, Cards: r.dealer.Cards(), Total: r.dealer.Total()})
	}
	return nil
}

func (r *round) pause() error {
	if r.dealerDelay <= 0 {
		return nil
	}
	timer := r.clock.NewTimer(r.dealerDelay, "dealer", "draw")
	defer timer.Stop()

	select {
	case <-r.ctx.Done():
		return r.ctx.Err()
	case <-timer.C:
		return nil
	}
}

// survivingHands lists the unsettled hands still in play
func (r *round) survivingHands(players []*Player) []*Hand {
	var hands []*Hand
	for _, p := range players {
		for _, h := range p.hands {
			if !h.settled {
				hands = append(hands, h)
			}
		}
	}
	return hands
}

// settleShowdown pays every surviving hand even money against a busted
// dealer, otherwise compares totals; equal totals push.
func (r *round) settleShowdown(surviving []*Hand) error {
	dealerTotal := r.dealer.Total()
	dealerBust := r.dealer.IsBust()
	r.result.DealerBust = dealerBust

	for _, p := range r.players {
		for _, h := range p.hands {
			if h.settled || !containsHand(surviving, h) {
				continue
			}

			var (
				outcome Outcome
				delta   int
			)
			switch {
			case dealerBust || h.Total() > dealerTotal:
				outcome, delta = Win, h.wager
			case h.Total() < dealerTotal:
				outcome, delta = Lose, -h.wager
			default:
				outcome, delta = Push, 0
			}
			if err := r.settle(p, h, outcome, delta); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *round) settle(p *Player, h *Hand, outcome Outcome, delta int) error {
	return r.settleAt(p, h, p.handIndex(h), outcome, delta)
}

func (r *round) settleAt(p *Player, h *Hand, idx int, outcome Outcome, delta int) error {
	if err := h.markSettled(); err != nil {
		return fmt.Errorf("%s hand %d: %w", p.Name, idx, err)
	}
	r.apply(p, delta)
	r.record(p, Settlement{
		Player:    p.Name,
		HandIndex: idx,
		Outcome:   outcome,
		Wager:     h.wager,
		Delta:     delta,
		Doubled:   h.doubled,
		Cards:     h.Cards(),
		Total:     h.Total(),
	})
	return nil
}

func (r *round) settleInsurance(p *Player, outcome Outcome, delta int) {
	stake := p.insurance
	p.insurance = 0
	r.apply(p, delta)
	r.record(p, Settlement{Player: p.Name, HandIndex: -1, Outcome: outcome, Wager: stake, Delta: delta})
}

func (r *round) apply(p *Player, delta int) {
	if delta >= 0 {
		p.Credit(delta)
	} else {
		p.Debit(-delta)
	}
}

func (r *round) record(p *Player, s Settlement) {
	r.result.Settlements = append(r.result.Settlements, s)
	r.logger.Debug("Settled", "round", r.id, "settlement", s.String(), "balance", p.balance)
	r.publish(HandSettledEvent{stamp: r.stamp(), Settlement: s, Balance: p.balance})
}

// finish fills in the result, checks money and hand accounting and
// publishes the end of the round.
func (r *round) finish() error {
	r.result.DealerCards = r.dealer.Cards()
	r.result.DealerTotal = r.dealer.Total()
	for i, p := range r.players {
		r.result.Players[i].After = p.balance
	}

	var errs []error
	for _, h := range r.dealt {
		if !h.settled {
			errs = append(errs, fmt.Errorf("hand %s was never settled", h))
		}
	}
	if err := r.result.validateLedger(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		r.logger.Error("Round accounting violation", "round", r.id, "error", err)
		return fmt.Errorf("round accounting: %w", err)
	}

	r.logger.Info("Round complete",
		"round", r.id,
		"dealer", r.dealer.String(),
		"dealer_total", r.result.DealerTotal,
		"house_net", r.result.HouseNet())
	r.publish(RoundEndEvent{stamp: r.stamp(), Result: r.result})
	return nil
}

// teardown drops every hand and insurance stake so nothing outlives the round
func (r *round) teardown() {
	for _, p := range r.players {
		p.resetRound()
	}
	r.dealer = nil
	r.dealt = nil
}

func (r *round) drawInto(h *Hand) error {
	card, ok := r.shoe.Draw()
	if !ok {
		return ErrShoeEmpty
	}
	h.Deal(card)
	return nil
}

// upCard is the dealer's second card; the first stays face down.
func (r *round) upCard() deck.Card {
	return r.dealer.cards[1]
}

func (r *round) playerIndex(p *Player) int {
	for i, candidate := range r.players {
		if candidate == p {
			return i
		}
	}
	return -1
}

func (r *round) playerStates(showCards bool) []PlayerState {
	states := make([]PlayerState, len(r.players))
	for i, p := range r.players {
		ps := PlayerState{
			Name:      p.Name,
			Balance:   p.balance,
			Committed: p.CommittedWagers(),
			Insurance: p.insurance,
			Hands:     make([]HandState, len(p.hands)),
		}
		for j, h := range p.hands {
			hs := HandState{Wager: h.wager, Doubled: h.doubled}
			if showCards {
				hs.Cards = h.Cards()
				hs.Total = h.Total()
			}
			ps.Hands[j] = hs
		}
		states[i] = ps
	}
	return states
}

func (r *round) tableState(playerIdx, handIdx int) TableState {
	ts := TableState{
		RoundID:         r.id,
		UpCardVisible:   r.upShown,
		Players:         r.playerStates(r.upShown),
		ActingPlayerIdx: playerIdx,
		ActingHandIdx:   handIdx,
	}
	if r.upShown {
		ts.DealerUpCard = r.upCard()
	}
	return ts
}

func (r *round) stamp() stamp {
	return stamp{at: r.clock.Now()}
}

func (r *round) publish(event GameEvent) {
	if r.eventBus != nil {
		r.eventBus.Publish(event)
	}
}

func containsHand(hands []*Hand, h *Hand) bool {
	for _, candidate := range hands {
		if candidate == h {
			return true
		}
	}
	return false
}
