package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lox/blackjack-cli/internal/game"
)

const welcomeText = "WELCOME TO BLACKJACK!! (CASINO RULE EDITION)"

// Renderer prints round events to the terminal. It subscribes to the
// engine's event bus and never touches game state.
type Renderer struct {
	out    io.Writer
	styles *Styles
	round  int

	insuranceCollected bool
}

// NewRenderer creates a renderer writing to out
func NewRenderer(out io.Writer, styles *Styles) *Renderer {
	return &Renderer{out: out, styles: styles}
}

// OnEvent implements game.EventSubscriber
func (r *Renderer) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.RoundStartEvent:
		r.round++
		r.insuranceCollected = false
		r.println("")
		r.println(r.styles.Header.Render(fmt.Sprintf("*** ROUND %d ***", r.round)))

	case game.BetRejectedEvent:
		if errors.Is(e.Err, game.ErrInsufficientFunds) {
			r.println(r.styles.Error.Render(fmt.Sprintf("Insufficient funds to bet %d.", e.Amount)))
			r.println(r.styles.Info.Render(fmt.Sprintf("Current Balance: %d", e.Balance)))
			return
		}
		r.println(r.styles.Error.Render("Must be a positive even wager."))

	case game.InitialDealEvent:
		r.println("")
		r.println(fmt.Sprintf("%s %s%s", r.styles.Dealer.Render("Dealer:"), r.styles.HiddenCard(), r.styles.Card(e.DealerUpCard)))
		r.println("")
		for _, p := range e.Players {
			r.println(r.styles.Player.Render(p.Name))
			for _, h := range p.Hands {
				r.println(fmt.Sprintf("%s  %s", r.styles.Cards(h.Cards), r.styles.Money.Render(fmt.Sprintf("bet %d", h.Wager))))
			}
		}
		r.println("")

	case game.InsuranceEvent:
		if e.Taken {
			r.println(r.styles.Info.Render("Insurance bet placed."))
		} else if e.Reason != "" {
			r.println(r.styles.Warning.Render("Sorry, not enough funds."))
		}

	case game.DealerBlackjackEvent:
		r.println(r.styles.Warning.Render("Dealer has Blackjack!") + "  " + r.styles.Cards(e.DealerCards))

	case game.NaturalBlackjackEvent:
		r.println(r.styles.Success.Render(e.Player + " hit Blackjack!"))
		r.println(r.styles.Money.Render(fmt.Sprintf("Rewarded %d", e.Payout)))
		r.println("")

	case game.PlayerActionEvent:
		switch e.Action {
		case game.Hit, game.Double, game.Split:
			r.println(fmt.Sprintf("%s: %s", r.styles.Player.Render(e.Player), r.styles.Cards(e.Cards)))
		}
		if e.Total == 21 {
			r.println(r.styles.Success.Render("21!"))
		}

	case game.HandBustEvent:
		r.println(r.styles.Error.Render("Bust!"))

	case game.DealerRevealEvent:
		r.println(fmt.Sprintf("%s %s", r.styles.Dealer.Render("Dealer:"), r.styles.Cards(e.Cards)))

	case game.DealerDrawEvent:
		r.println(fmt.Sprintf("%s %s", r.styles.Dealer.Render("Dealer:"), r.styles.Cards(e.Cards)))
		if e.Total > 21 {
			r.println(r.styles.Success.Render("Dealer busts!"))
		}

	case game.HandSettledEvent:
		r.settled(e.Settlement)
	}
}

func (r *Renderer) settled(s game.Settlement) {
	switch s.Outcome {
	case game.InsuranceLoss:
		if !r.insuranceCollected {
			r.insuranceCollected = true
			r.println(r.styles.Info.Render("Dealer does not have Blackjack, insurance bets collected."))
		}
	case game.InsuranceWin:
		r.println(r.styles.Success.Render(fmt.Sprintf("%s's insurance pays %d", s.Player, s.Delta)))
	case game.Win:
		r.println(r.styles.Success.Render(fmt.Sprintf("%s wins %d", s.Player, s.Delta)))
	case game.Lose, game.DealerBlackjackLoss:
		r.println(r.styles.Error.Render(fmt.Sprintf("%s loses %d", s.Player, -s.Delta)))
	case game.Push, game.DealerBlackjackPush:
		r.println(r.styles.Info.Render(s.Player + " pushes!"))
	}
}

func (r *Renderer) println(s string) {
	fmt.Fprintln(r.out, s)
}

// Banner prints the welcome message with the win conditions
func Banner(w io.Writer, styles *Styles) {
	rule := strings.Repeat("#", len(welcomeText))
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, styles.Title.Render(welcomeText))
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
	fmt.Fprintln(w, " - Get 21 points on the player's first two cards (called a 'blackjack', without a dealer blackjack")
	fmt.Fprintln(w, " - Reach a final score higher than the dealer without exceeding 21")
	fmt.Fprintln(w, " - Let the dealer draw additional cards until their hand exceeds 21 ('busted')")
	fmt.Fprintln(w)
}

// BalanceTable prints every player's balance, name truncated to 15 characters
func BalanceTable(w io.Writer, styles *Styles, players []*game.Player) {
	fmt.Fprintln(w)
	for _, p := range players {
		fmt.Fprintf(w, "%-17.15s%s\n", p.Name, styles.Money.Render(fmt.Sprintf("%6d", p.Balance())))
	}
	fmt.Fprintln(w)
}

// GameOver prints the final balances
func GameOver(w io.Writer, styles *Styles, players []*game.Player) {
	fmt.Fprintln(w, styles.Header.Render("GAME OVER!"))
	fmt.Fprintln(w, "The final balances are:")
	BalanceTable(w, styles, players)
}
