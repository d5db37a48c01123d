package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/game"
)

// StandBot bets a flat unit, declines insurance and stands on every hand
type StandBot struct {
	unit   int
	logger *log.Logger
}

// NewStandBot creates a new StandBot instance
func NewStandBot(unit int, logger *log.Logger) *StandBot {
	return &StandBot{unit: unit, logger: logger}
}

func (s *StandBot) PlaceBet(ctx context.Context, state game.TableState) (int, error) {
	return flatBet(state, s.unit), nil
}

func (s *StandBot) TakeInsurance(ctx context.Context, state game.TableState) (bool, error) {
	return false, nil
}

func (s *StandBot) MakeDecision(ctx context.Context, state game.TableState, validActions game.ActionSet) (game.Decision, error) {
	return game.Decision{Action: game.Stand, Reasoning: "stand-bot always stands"}, nil
}
