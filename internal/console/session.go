package console

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/game"
)

// Session runs rounds at a table until the players end the game or nobody
// can cover the minimum bet.
type Session struct {
	table  *game.Table
	in     LineReader
	out    io.Writer
	styles *Styles
	logger *log.Logger
}

// NewSession creates a session for table reading prompts from in
func NewSession(table *game.Table, in LineReader, out io.Writer, styles *Styles, logger *log.Logger) *Session {
	return &Session{table: table, in: in, out: out, styles: styles, logger: logger}
}

// Run plays until the game ends. Quitting at any prompt abandons the
// current round without moving any chips and ends the game normally.
func (s *Session) Run(ctx context.Context) error {
	if _, err := ask(s.in, s.styles.Prompt.Render("Let's play some Blackjack!! Press enter when ready...")); err != nil {
		if errors.Is(err, ErrQuit) {
			return nil
		}
		return err
	}
	BalanceTable(s.out, s.styles, s.table.Players())

	defer GameOver(s.out, s.styles, s.table.Players())

	for {
		if len(s.table.EligiblePlayers()) == 0 {
			s.logger.Info("No players can cover the minimum bet")
			fmt.Fprintln(s.out, s.styles.Warning.Render("No players left with enough funds."))
			return nil
		}

		if _, err := s.table.PlayRound(ctx); err != nil {
			if errors.Is(err, ErrQuit) || errors.Is(err, context.Canceled) {
				s.logger.Info("Game ended mid-round", "error", err)
				return nil
			}
			return err
		}
		BalanceTable(s.out, s.styles, s.table.Players())

		again, err := AskContinue(s.in, s.styles)
		if errors.Is(err, ErrQuit) || (err == nil && !again) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
