package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/game"
)

// scriptedReader answers prompts from a fixed list, then reports EOF
type scriptedReader struct {
	lines   []string
	prompts []string
}

func (s *scriptedReader) SetPrompt(prompt string) { s.prompts = append(s.prompts, prompt) }

func (s *scriptedReader) Readline() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

// promptReader answers each prompt with a function of the prompt text
type promptReader struct {
	prompt string
	answer func(prompt string) (string, error)
}

func (p *promptReader) SetPrompt(prompt string) { p.prompt = prompt }

func (p *promptReader) Readline() (string, error) { return p.answer(p.prompt) }

func plainStyles() *Styles {
	return NewStyles(io.Discard, false)
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

func betState(balance int) game.TableState {
	return game.TableState{
		Players:       []game.PlayerState{{Name: "Alice", Balance: balance, Hands: []game.HandState{{}}}},
		ActingHandIdx: -1,
	}
}

func TestHuman_PlaceBet(t *testing.T) {
	var out bytes.Buffer
	in := &scriptedReader{lines: []string{"lots", " 20 "}}
	h := NewHuman("Alice", in, &out, plainStyles(), discardLogger())

	bet, err := h.PlaceBet(context.Background(), betState(500))
	require.NoError(t, err)
	assert.Equal(t, 20, bet)
	assert.Contains(t, out.String(), "Must be an integer between 2 - 500.")
	assert.Len(t, in.prompts, 2)
	assert.Contains(t, in.prompts[0], "Alice, what is your bet?")
}

func TestHuman_PlaceBetQuit(t *testing.T) {
	h := NewHuman("Alice", &scriptedReader{}, io.Discard, plainStyles(), discardLogger())

	_, err := h.PlaceBet(context.Background(), betState(500))
	assert.ErrorIs(t, err, ErrQuit)
}

func TestHuman_TakeInsurance(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{"y", true},
		{"YES", true},
		{"", false},
		{"no", false},
		{"yep", false},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			var out bytes.Buffer
			h := NewHuman("Alice", &scriptedReader{lines: []string{tt.answer}}, &out, plainStyles(), discardLogger())

			got, err := h.TakeInsurance(context.Background(), betState(500))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Insurance? Type [y]es or press enter to pass...")
		})
	}
}

func TestHuman_MakeDecisionOffersOnlyLegalActions(t *testing.T) {
	var out bytes.Buffer
	in := &scriptedReader{lines: []string{"d", "fold", "S"}}
	h := NewHuman("Alice", in, &out, plainStyles(), discardLogger())

	state := game.TableState{
		Players: []game.PlayerState{{
			Name:  "Alice",
			Hands: []game.HandState{{Cards: deck.MustParseCards("10s7h8c"), Total: 25}},
		}},
		ActingHandIdx: 0,
	}
	decision, err := h.MakeDecision(context.Background(), state, game.NewActionSet(game.Hit, game.Stand))
	require.NoError(t, err)

	assert.Equal(t, game.Stand, decision.Action)
	assert.Len(t, in.prompts, 3, "illegal choices are asked again")
	assert.Contains(t, in.prompts[0], "[H]it / [S]tay: ")
	assert.NotContains(t, in.prompts[0], "Double")
	assert.Contains(t, out.String(), "[10♠][7♥][8♣]")
}

func TestHuman_MakeDecisionFullMenu(t *testing.T) {
	in := &scriptedReader{lines: []string{"l"}}
	h := NewHuman("Alice", in, io.Discard, plainStyles(), discardLogger())

	valid := game.NewActionSet(game.Hit, game.Stand, game.Double, game.Split)
	decision, err := h.MakeDecision(context.Background(), game.TableState{
		Players:       []game.PlayerState{{Name: "Alice", Hands: []game.HandState{{Cards: deck.MustParseCards("8s8h")}}}},
		ActingHandIdx: 0,
	}, valid)
	require.NoError(t, err)
	assert.Equal(t, game.Split, decision.Action)
	assert.Contains(t, in.prompts[0], "[H]it / [S]tay / [D]ouble-down / Sp[l]it: ")
}

func TestParseChoice(t *testing.T) {
	all := game.NewActionSet(game.Hit, game.Stand, game.Double, game.Split)
	tests := []struct {
		answer string
		valid  game.ActionSet
		want   game.Action
		ok     bool
	}{
		{"h", all, game.Hit, true},
		{"HIT", all, game.Hit, true},
		{"stay", all, game.Stand, true},
		{"stand", all, game.Stand, true},
		{"double-down", all, game.Double, true},
		{"split", all, game.Split, true},
		{"l", game.NewActionSet(game.Hit, game.Stand), 0, false},
		{"x", all, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			got, ok := parseChoice(tt.answer, tt.valid)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAskContinue(t *testing.T) {
	again, err := AskContinue(&scriptedReader{lines: []string{""}}, plainStyles())
	require.NoError(t, err)
	assert.True(t, again)

	again, err = AskContinue(&scriptedReader{lines: []string{"END"}}, plainStyles())
	require.NoError(t, err)
	assert.False(t, again)

	_, err = AskContinue(&scriptedReader{}, plainStyles())
	assert.ErrorIs(t, err, ErrQuit)
}

func TestRenderer(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, plainStyles())

	r.OnEvent(game.RoundStartEvent{RoundID: "r1", Players: []string{"Alice", "Bob"}})
	r.OnEvent(game.BetRejectedEvent{Player: "Alice", Amount: 600, Balance: 500, Err: game.ErrInsufficientFunds})
	r.OnEvent(game.BetRejectedEvent{Player: "Alice", Amount: 3, Balance: 500, Err: game.ErrBetNotEven})
	r.OnEvent(game.InitialDealEvent{
		DealerUpCard: deck.MustParseCards("Ac")[0],
		Players: []game.PlayerState{{Name: "Alice", Hands: []game.HandState{{Cards: deck.MustParseCards("10s7h"), Wager: 20}}}},
	})
	r.OnEvent(game.InsuranceEvent{Player: "Alice", Amount: 10, Taken: true})
	r.OnEvent(game.InsuranceEvent{Player: "Bob", Amount: 10, Reason: "not enough funds"})
	r.OnEvent(game.HandSettledEvent{Settlement: game.Settlement{Player: "Alice", HandIndex: -1, Outcome: game.InsuranceLoss, Delta: -10}})
	r.OnEvent(game.HandSettledEvent{Settlement: game.Settlement{Player: "Bob", HandIndex: -1, Outcome: game.InsuranceLoss, Delta: -5}})
	r.OnEvent(game.PlayerActionEvent{Player: "Alice", Action: game.Hit, Cards: deck.MustParseCards("10s7h4d"), Total: 21})
	r.OnEvent(game.HandBustEvent{Player: "Bob"})
	r.OnEvent(game.DealerRevealEvent{Cards: deck.MustParseCards("6dAc"), Total: 17})
	r.OnEvent(game.DealerDrawEvent{Cards: deck.MustParseCards("6dAc9s"), Total: 26})
	r.OnEvent(game.HandSettledEvent{Settlement: game.Settlement{Player: "Alice", Outcome: game.Win, Delta: 20}})

	text := out.String()
	assert.Contains(t, text, "*** ROUND 1 ***")
	assert.Contains(t, text, "Insufficient funds to bet 600.")
	assert.Contains(t, text, "Current Balance: 500")
	assert.Contains(t, text, "Must be a positive even wager.")
	assert.Contains(t, text, "[??]")
	assert.Contains(t, text, "[A♣]")
	assert.Contains(t, text, "bet 20")
	assert.Contains(t, text, "Insurance bet placed.")
	assert.Contains(t, text, "Sorry, not enough funds.")
	assert.Equal(t, 1, strings.Count(text, "insurance bets collected"), "announced once per round")
	assert.Contains(t, text, "21!")
	assert.Contains(t, text, "Bust!")
	assert.Contains(t, text, "Dealer busts!")
	assert.Contains(t, text, "Alice wins 20")
}

func TestRenderer_DealerBlackjack(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, plainStyles())

	r.OnEvent(game.DealerBlackjackEvent{DealerCards: deck.MustParseCards("KdAs")})
	r.OnEvent(game.HandSettledEvent{Settlement: game.Settlement{Player: "Alice", HandIndex: -1, Outcome: game.InsuranceWin, Delta: 10}})
	r.OnEvent(game.HandSettledEvent{Settlement: game.Settlement{Player: "Alice", Outcome: game.DealerBlackjackLoss, Delta: -10}})
	r.OnEvent(game.HandSettledEvent{Settlement: game.Settlement{Player: "Bob", Outcome: game.DealerBlackjackPush}})
	r.OnEvent(game.NaturalBlackjackEvent{Player: "Carol", Payout: 30})

	text := out.String()
	assert.Contains(t, text, "Dealer has Blackjack!")
	assert.Contains(t, text, "Alice's insurance pays 10")
	assert.Contains(t, text, "Alice loses 10")
	assert.Contains(t, text, "Bob pushes!")
	assert.Contains(t, text, "Carol hit Blackjack!")
	assert.Contains(t, text, "Rewarded 30")
}

func TestBannerAndTables(t *testing.T) {
	var out bytes.Buffer
	styles := plainStyles()
	Banner(&out, styles)
	GameOver(&out, styles, []*game.Player{game.NewPlayer("Alexandria-the-Great", 515), game.NewPlayer("Bob", 0)})

	text := out.String()
	assert.Contains(t, text, "WELCOME TO BLACKJACK!! (CASINO RULE EDITION)")
	assert.Contains(t, text, strings.Repeat("#", len(welcomeText)))
	assert.Contains(t, text, "GAME OVER!")
	assert.Contains(t, text, "The final balances are:")
	assert.Contains(t, text, "Alexandria-the-"+strings.Repeat(" ", 5)+"515", "names are truncated to 15 characters")
	assert.Contains(t, text, "Bob"+strings.Repeat(" ", 19)+"0")
}

func newSessionTable(t *testing.T, balance int, agentFor func(*game.Player) game.Agent) (*game.Table, *game.Player) {
	t.Helper()
	engine := game.NewEngine(discardLogger())
	table := game.NewTable(game.DefaultRules(), deck.NewRand(3), engine, discardLogger())
	p := game.NewPlayer("Alice", balance)
	require.NoError(t, table.AddPlayer(p, agentFor(p)))
	return table, p
}

func TestSession_PlaysUntilEnd(t *testing.T) {
	var out bytes.Buffer
	styles := plainStyles()
	rounds := 0
	in := &promptReader{answer: func(prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "what is your bet"):
			return "10", nil
		case strings.Contains(prompt, "[H]it"):
			return "s", nil
		case strings.Contains(prompt, "play again"):
			rounds++
			if rounds == 3 {
				return "end", nil
			}
			return "", nil
		default:
			return "", nil
		}
	}}

	table, alice := newSessionTable(t, 500, func(p *game.Player) game.Agent {
		return NewHuman(p.Name, in, &out, styles, discardLogger())
	})
	table.Engine().EventBus().Subscribe(NewRenderer(&out, styles))

	require.NoError(t, NewSession(table, in, &out, styles, discardLogger()).Run(context.Background()))
	assert.Equal(t, 3, table.Rounds())
	assert.Contains(t, out.String(), "*** ROUND 3 ***")
	assert.Contains(t, out.String(), "GAME OVER!")
	assert.GreaterOrEqual(t, alice.Balance(), 500-3*10*2)
}

func TestSession_QuitMidRound(t *testing.T) {
	var out bytes.Buffer
	styles := plainStyles()
	in := &promptReader{answer: func(prompt string) (string, error) {
		if strings.Contains(prompt, "what is your bet") {
			return "", io.EOF
		}
		return "", nil
	}}

	table, alice := newSessionTable(t, 500, func(p *game.Player) game.Agent {
		return NewHuman(p.Name, in, &out, styles, discardLogger())
	})

	require.NoError(t, NewSession(table, in, &out, styles, discardLogger()).Run(context.Background()))
	assert.Equal(t, 0, table.Rounds())
	assert.Equal(t, 500, alice.Balance())
	assert.Empty(t, alice.Hands())
	assert.Contains(t, out.String(), "GAME OVER!")
}

func TestSession_EndsWhenNobodyCanBet(t *testing.T) {
	var out bytes.Buffer
	styles := plainStyles()
	in := &scriptedReader{lines: []string{""}}

	table, _ := newSessionTable(t, 1, func(p *game.Player) game.Agent {
		return NewHuman(p.Name, in, &out, styles, discardLogger())
	})

	require.NoError(t, NewSession(table, in, &out, styles, discardLogger()).Run(context.Background()))
	assert.Equal(t, 0, table.Rounds())
	assert.Contains(t, out.String(), "No players left with enough funds.")
	assert.Contains(t, out.String(), "GAME OVER!")
}
