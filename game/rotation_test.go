package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fourSeatGame() *Game {
	return &Game{
		Started: true,
		Dealer:  "p1",
		Players: []*Player{
			{ID: "p1", Position: 1},
			{ID: "p2", Position: 2},
			{ID: "p3", Position: 3},
			{ID: "p4", Position: 4},
		},
	}
}

func TestNextDealerAdvancesClockwise(t *testing.T) {
	g := fourSeatGame()
	require.Equal(t, "p2", g.nextDealer())

	g.Dealer = "p4"
	require.Equal(t, "p1", g.nextDealer(), "wraps past the last seat")
}

func TestNextDealerSkipsEliminated(t *testing.T) {
	g := fourSeatGame()
	g.Players[1].Out = true
	require.Equal(t, "p3", g.nextDealer())
}

func TestNextDealerOnFreshGame(t *testing.T) {
	g := fourSeatGame()
	g.Dealer = ""
	require.Equal(t, "p1", g.nextDealer(), "button starts at the lowest seat")
}

func TestBlinds(t *testing.T) {
	g := fourSeatGame()
	small, big, err := g.blinds()
	require.NoError(t, err)
	require.Equal(t, "p2", small)
	require.Equal(t, "p3", big)

	g.Dealer = "p4"
	small, big, err = g.blinds()
	require.NoError(t, err)
	require.Equal(t, "p1", small)
	require.Equal(t, "p2", big)
}

func TestBlindsHeadsUp(t *testing.T) {
	g := fourSeatGame()
	g.Players[2].Out = true
	g.Players[3].Out = true
	small, big, err := g.blinds()
	require.NoError(t, err)
	require.Equal(t, "p2", small)
	require.Equal(t, "p1", big, "big blind wraps back to the dealer")
}

func TestBlindsNeedTwoActive(t *testing.T) {
	g := fourSeatGame()
	for _, p := range g.Players[1:] {
		p.Out = true
	}
	_, _, err := g.blinds()
	require.ErrorIs(t, err, ErrInsufficientPlayers)
}

func TestNextEligibleSkipsFolded(t *testing.T) {
	g := fourSeatGame()
	g.Players[1].Folded = true

	require.Equal(t, "p3", g.nextEligible("p1"))
	// A folded seat can still be walked from while its own fold is
	// being resolved.
	require.Equal(t, "p3", g.nextEligible("p2"))
	require.Equal(t, "p1", g.nextEligible("p4"))
}

func TestRotationFromDealsSmallBlindFirst(t *testing.T) {
	g := fourSeatGame()
	order := g.rotationFrom("p1")
	ids := make([]string, len(order))
	for i, p := range order {
		ids[i] = p.ID
	}
	require.Equal(t, []string{"p2", "p3", "p4", "p1"}, ids)
}
