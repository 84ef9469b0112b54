package card

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFreshOrder(t *testing.T) {
	d := Fresh()
	require.Len(t, d, 52)
	require.Equal(t, "ace clubs", d[0].String())
	require.Equal(t, "king clubs", d[12].String())
	require.Equal(t, "ace diamonds", d[13].String())
	require.Equal(t, "king spades", d[51].String())
}

func TestDrawExhaustsDeck(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	d := Fresh()
	d.Shuffle(rng)

	seen := map[Card]bool{}
	for i := 0; i < 52; i++ {
		c, err := d.Draw(rng)
		require.NoError(t, err)
		require.False(t, seen[c])
		seen[c] = true
	}
	require.Empty(t, d)

	_, err := d.Draw(rng)
	require.ErrorIs(t, err, ErrEmptyDeck)
}

func TestShuffleIsSeedDeterministic(t *testing.T) {
	a := Fresh()
	a.Shuffle(rand.New(rand.NewSource(42)))
	b := Fresh()
	b.Shuffle(rand.New(rand.NewSource(42)))
	require.Equal(t, a, b)
}
