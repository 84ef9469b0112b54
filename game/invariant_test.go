package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateCatchesDuplicateCards(t *testing.T) {
	g := startedGame(t, 2, 5)
	require.NoError(t, g.Deal())

	g.Players[0].Cards[0] = g.Players[1].Cards[0]
	var inv *InvariantError
	require.ErrorAs(t, g.Validate(), &inv)
}

func TestValidateCatchesNegativeChips(t *testing.T) {
	g := startedGame(t, 2, 5)
	g.Players[0].Chips = -1
	var inv *InvariantError
	require.ErrorAs(t, g.Validate(), &inv)
}

func TestValidateCatchesPotMismatch(t *testing.T) {
	g := startedGame(t, 2, 5)
	require.NoError(t, g.Deal())
	g.Pot += 7
	var inv *InvariantError
	require.ErrorAs(t, g.Validate(), &inv)
}

func TestValidateCatchesDuplicatePositions(t *testing.T) {
	g := startedGame(t, 3, 5)
	g.Players[2].Position = g.Players[0].Position
	var inv *InvariantError
	require.ErrorAs(t, g.Validate(), &inv)
}

func TestDeckIntegrityAcrossAFullHand(t *testing.T) {
	g := startedGame(t, 4, 99)
	require.NoError(t, g.Deal())

	for g.Stage != StageShowdown {
		require.NoError(t, g.Validate())
		mv := Move{Type: MoveCheck}
		if g.TurnOptions == TurnOptionsAfterBets {
			mv = Move{Type: MoveCall}
		}
		require.NoError(t, g.ApplyMove(g.NextToAct, mv))
	}
	require.NoError(t, g.Validate())
	require.Len(t, g.BoardCards, 5)
	require.Len(t, g.Deck, 52-5-4*2)
}
