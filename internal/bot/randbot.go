package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/game"
)

// RandomBot bets between one and five units and picks uniformly among the
// legal actions. It takes insurance half of the time.
type RandomBot struct {
	unit   int
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandomBot creates a new RandomBot instance
func NewRandomBot(unit int, rng *rand.Rand, logger *log.Logger) *RandomBot {
	return &RandomBot{unit: unit, rng: rng, logger: logger}
}

func (r *RandomBot) PlaceBet(ctx context.Context, state game.TableState) (int, error) {
	return flatBet(state, r.unit*(1+r.rng.IntN(5))), nil
}

func (r *RandomBot) TakeInsurance(ctx context.Context, state game.TableState) (bool, error) {
	return r.rng.IntN(2) == 0, nil
}

func (r *RandomBot) MakeDecision(ctx context.Context, state game.TableState, validActions game.ActionSet) (game.Decision, error) {
	actions := validActions.Actions()
	if len(actions) == 0 {
		return game.Decision{Action: game.Stand, Reasoning: "random-bot no valid actions"}, nil
	}
	return game.Decision{Action: actions[r.rng.IntN(len(actions))], Reasoning: "random-bot random action"}, nil
}
