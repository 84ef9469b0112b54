package card

import (
	"errors"
	"math/rand"
)

// ErrEmptyDeck is returned by Draw when no cards remain.
var ErrEmptyDeck = errors.New("card: deck is empty")

// Deck is an ordered pile of cards. The zero value is an empty deck.
type Deck []Card

// Fresh returns all 52 cards in canonical order: clubs ace through
// king, then diamonds, hearts, spades.
func Fresh() Deck {
	d := make(Deck, 0, 52)
	for s := Clubs; s <= Spades; s++ {
		for r := Ace; r <= King; r++ {
			d = append(d, New(s, r))
		}
	}
	return d
}

// Shuffle permutes the deck in place using rng.
func (d Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// Draw removes and returns a uniformly random card from the deck.
func (d *Deck) Draw(rng *rand.Rand) (Card, error) {
	n := len(*d)
	if n == 0 {
		return 0, ErrEmptyDeck
	}
	i := rng.Intn(n)
	c := (*d)[i]
	*d = append((*d)[:i], (*d)[i+1:]...)
	return c, nil
}
