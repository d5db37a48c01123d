package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/game"
)

// DealerBot plays its hands by the house rule: hit below 17 and on soft 17.
// It never doubles, splits or insures.
type DealerBot struct {
	unit   int
	logger *log.Logger
}

// NewDealerBot creates a new DealerBot instance
func NewDealerBot(unit int, logger *log.Logger) *DealerBot {
	return &DealerBot{unit: unit, logger: logger}
}

func (d *DealerBot) PlaceBet(ctx context.Context, state game.TableState) (int, error) {
	return flatBet(state, d.unit), nil
}

func (d *DealerBot) TakeInsurance(ctx context.Context, state game.TableState) (bool, error) {
	return false, nil
}

func (d *DealerBot) MakeDecision(ctx context.Context, state game.TableState, validActions game.ActionSet) (game.Decision, error) {
	hs, ok := state.ActingHand()
	if !ok {
		return game.Decision{Action: game.Stand, Reasoning: "dealer-bot has no hand"}, nil
	}

	hand := game.NewHandWithCards(hs.Cards...)
	if hand.Total() < 17 {
		return game.Decision{Action: pick(game.Hit, validActions), Reasoning: "dealer-bot hits below 17"}, nil
	}
	if hand.IsSoft17() {
		return game.Decision{Action: pick(game.Hit, validActions), Reasoning: "dealer-bot hits soft 17"}, nil
	}
	d.logger.Debug("Dealer bot stands", "cards", hand.String(), "total", hand.Total())
	return game.Decision{Action: game.Stand, Reasoning: "dealer-bot stands on 17 or more"}, nil
}
