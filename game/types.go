// Package game implements the Texas Hold'em state machine: seating and
// rotation, the betting round, showdown settlement, and the Game
// aggregate that a room serializes all moves through.
package game

// Stage is the phase of the current hand.
type Stage int

const (
	StageNotDealt Stage = iota
	StagePreflop
	StageFlop
	StageTurn
	StageRiver
	StageShowdown
)

func (s Stage) String() string {
	switch s {
	case StageNotDealt:
		return "not-dealt"
	case StagePreflop:
		return "pre-flop"
	case StageFlop:
		return "flop"
	case StageTurn:
		return "turn"
	case StageRiver:
		return "river"
	case StageShowdown:
		return "showdown"
	}
	return "invalid"
}

// TurnOptions gates which move types the next actor may play.
type TurnOptions string

const (
	// TurnOptionsNone means no action is pending.
	TurnOptionsNone TurnOptions = ""
	// TurnOptionsBeforeBets: nobody has contributed this stage yet.
	TurnOptionsBeforeBets TurnOptions = "before-bets"
	// TurnOptionsAfterBets: at least one contribution stands.
	TurnOptionsAfterBets TurnOptions = "after-bets"
	// TurnOptionsEndNotCalled: the hand ended by folds and the sole
	// winner may reveal or muck.
	TurnOptionsEndNotCalled TurnOptions = "end-not-called"
)

// HandPhase tells clients whether betting action is in flight.
type HandPhase string

const (
	HandPhaseActive           HandPhase = "active"
	HandPhaseAwaitingNextHand HandPhase = "awaiting_next_hand"
)

// MoveType is an action taken by the player whose turn it is.
type MoveType string

const (
	MoveFold      MoveType = "fold"
	MoveCheck     MoveType = "check"
	MoveBet       MoveType = "bet"
	MoveCall      MoveType = "call"
	MoveRaiseBet  MoveType = "raiseBet"
	MoveShowCards MoveType = "showCards"
	MoveMuckCards MoveType = "muckCards"
)

// Move is an inbound action. Amount is in currency minor units and is
// only meaningful for bet and raiseBet.
type Move struct {
	Type   MoveType `json:"type"`
	Amount int64    `json:"amount,omitempty"`
}

// allowed reports whether a move type is legal under the option set.
func (o TurnOptions) allowed(t MoveType) bool {
	switch o {
	case TurnOptionsBeforeBets:
		return t == MoveFold || t == MoveCheck || t == MoveBet
	case TurnOptionsAfterBets:
		return t == MoveFold || t == MoveCall || t == MoveRaiseBet
	case TurnOptionsEndNotCalled:
		return t == MoveShowCards || t == MoveMuckCards
	}
	return false
}
