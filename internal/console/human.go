package console

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/game"
)

// choice is a menu entry for an action with the words that select it
type choice struct {
	action game.Action
	label  string
	words  []string
}

var choices = []choice{
	{action: game.Hit, label: "[H]it", words: []string{"h", "hit"}},
	{action: game.Stand, label: "[S]tay", words: []string{"s", "stay", "stand"}},
	{action: game.Double, label: "[D]ouble-down", words: []string{"d", "double", "double-down"}},
	{action: game.Split, label: "Sp[l]it", words: []string{"l", "split"}},
}

// Human is an agent that asks a person at the terminal. Several humans can
// share one reader for hot-seat play.
type Human struct {
	name   string
	in     LineReader
	out    io.Writer
	styles *Styles
	logger *log.Logger
}

// NewHuman creates a human agent for the named player
func NewHuman(name string, in LineReader, out io.Writer, styles *Styles, logger *log.Logger) *Human {
	return &Human{name: name, in: in, out: out, styles: styles, logger: logger}
}

// PlaceBet asks for a wager until an integer is entered. Range and parity
// are checked by the engine, which asks again on rejection.
func (h *Human) PlaceBet(ctx context.Context, state game.TableState) (int, error) {
	balance := state.ActingPlayer().Balance
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		answer, err := ask(h.in, h.styles.Prompt.Render(fmt.Sprintf("%s, what is your bet? ", h.name)))
		if err != nil {
			return 0, err
		}
		bet, err := strconv.Atoi(answer)
		if err != nil {
			fmt.Fprintln(h.out, h.styles.Error.Render(fmt.Sprintf("Must be an integer between 2 - %d.", balance)))
			continue
		}
		h.logger.Debug("Human bet", "player", h.name, "bet", bet)
		return bet, nil
	}
}

// TakeInsurance asks once; only y or yes takes it
func (h *Human) TakeInsurance(ctx context.Context, state game.TableState) (bool, error) {
	fmt.Fprintln(h.out, h.styles.Info.Render("Insurance? Type [y]es or press enter to pass..."))
	answer, err := ask(h.in, h.styles.Prompt.Render(h.name+"? "))
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// MakeDecision shows the hand and a menu of the legal actions, asking again
// until one of them is picked.
func (h *Human) MakeDecision(ctx context.Context, state game.TableState, validActions game.ActionSet) (game.Decision, error) {
	if hand, ok := state.ActingHand(); ok {
		fmt.Fprintf(h.out, "%s: %s\n", h.styles.Player.Render(h.name), h.styles.Cards(hand.Cards))
	}

	var labels []string
	for _, c := range choices {
		if validActions.Has(c.action) {
			labels = append(labels, c.label)
		}
	}
	prompt := h.styles.Prompt.Render(strings.Join(labels, " / ") + ": ")

	for {
		if err := ctx.Err(); err != nil {
			return game.Decision{}, err
		}
		answer, err := ask(h.in, prompt)
		if err != nil {
			return game.Decision{}, err
		}
		if action, ok := parseChoice(answer, validActions); ok {
			return game.Decision{Action: action, Reasoning: "human choice"}, nil
		}
	}
}

func parseChoice(answer string, validActions game.ActionSet) (game.Action, bool) {
	answer = strings.ToLower(strings.TrimSpace(answer))
	for _, c := range choices {
		if !validActions.Has(c.action) {
			continue
		}
		for _, w := range c.words {
			if answer == w {
				return c.action, true
			}
		}
	}
	return 0, false
}

// AskContinue asks whether to play another round; "end" finishes
func AskContinue(in LineReader, styles *Styles) (bool, error) {
	answer, err := ask(in, styles.Prompt.Render("Press enter to play again, or type 'end' to finish: "))
	if err != nil {
		return false, err
	}
	return strings.ToLower(answer) != "end", nil
}
