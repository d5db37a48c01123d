package game

import "errors"

var (
	ErrBetNotPositive    = errors.New("bet must be positive")
	ErrBetNotEven        = errors.New("bet must be an even amount")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrCannotSplit       = errors.New("hand cannot be split")
	ErrIllegalAction     = errors.New("action not available")
	ErrHandSettled       = errors.New("hand already settled")
	ErrShoeEmpty         = errors.New("shoe is empty")
	ErrNoPlayers         = errors.New("no eligible players")
	ErrUnknownAgent      = errors.New("no agent for player")
	ErrTooManyAttempts   = errors.New("agent exceeded retry limit")
	ErrTableFull         = errors.New("table is full")
	ErrDuplicatePlayer   = errors.New("player name already seated")
)
