package game

import (
	"errors"
	"fmt"
)

// Recoverable validation errors. The offending request is rejected and
// no state mutates.
var (
	ErrOutOfTurn           = errors.New("not this player's turn")
	ErrGameNotStarted      = errors.New("game has not started")
	ErrGameAlreadyStarted  = errors.New("game has already started")
	ErrHandInProgress      = errors.New("a hand is still in progress")
	ErrMatchOver           = errors.New("match is over, reset to play again")
	ErrNoGameWinner        = errors.New("reset requires a decided match")
	ErrInsufficientPlayers = errors.New("need at least 2 active players")
	ErrNotSeated           = errors.New("player is not seated in this game")
)

// IllegalMoveTypeError rejects a move type that the current turn
// options do not permit.
type IllegalMoveTypeError struct {
	Move    MoveType
	Options TurnOptions
}

func (e *IllegalMoveTypeError) Error() string {
	return fmt.Sprintf("move %q is not legal under %q", e.Move, e.Options)
}

// IllegalBetError rejects a negative bet or one that would push the
// player's hand contribution past the all-in ceiling.
type IllegalBetError struct {
	PlayerID string
	Amount   int64
	Ceiling  int64
}

func (e *IllegalBetError) Error() string {
	return fmt.Sprintf("player %s cannot bet %d (hand ceiling %d)", e.PlayerID, e.Amount, e.Ceiling)
}

// InvariantError marks a programming-logic fault (duplicate cards,
// negative chips, broken pot accounting). The in-flight transition must
// be aborted without persisting.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return "game invariant violated: " + e.Reason
}

func invariantf(format string, args ...any) *InvariantError {
	return &InvariantError{Reason: fmt.Sprintf(format, args...)}
}
