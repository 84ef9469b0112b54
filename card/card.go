// Package card implements the 52-card deck model: a byte-encoded Card,
// long and compact string forms, and a Deck with shuffle and uniform draw.
package card

import (
	"fmt"
	"strings"
)

// Card is a single playing card.
//
// Encoding:
// - high 4 bits: suit (0:Clubs, 1:Diamonds, 2:Hearts, 3:Spades)
// - low 4 bits: rank (1:ace, 2..9, 10:ten, 11:jack, 12:queen, 13:king)
type Card byte

// Back is the face-down placeholder sent to viewers who may not see a
// hole card. It is never part of a deck.
const Back Card = 0xFF

// Suit constants in deck order.
const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Suit is a card suit, 0..3.
type Suit byte

var suitNames = [4]string{"clubs", "diamonds", "hearts", "spades"}

func (s Suit) String() string {
	if s > Spades {
		return "invalid"
	}
	return suitNames[s]
}

// Rank is a card rank, ace=1 through king=13.
type Rank byte

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

var rankNames = [14]string{"", "ace", "two", "three", "four", "five", "six",
	"seven", "eight", "nine", "ten", "jack", "queen", "king"}

func (r Rank) String() string {
	if r < Ace || r > King {
		return "invalid"
	}
	return rankNames[r]
}

// New builds a card from a suit and rank. It panics on out-of-range
// inputs; callers construct cards from the fixed constants below.
func New(s Suit, r Rank) Card {
	if s > Spades || r < Ace || r > King {
		panic(fmt.Sprintf("card: invalid suit/rank %d/%d", s, r))
	}
	return Card(byte(s)<<4 | byte(r))
}

// Rank returns the card's rank, ace=1 through king=13.
func (c Card) Rank() Rank {
	return Rank(c & 0x0F)
}

// Suit returns the card's suit.
func (c Card) Suit() Suit {
	return Suit(c >> 4)
}

// Valid reports whether c encodes one of the 52 cards.
func (c Card) Valid() bool {
	return c.Suit() <= Spades && c.Rank() >= Ace && c.Rank() <= King
}

// String returns the long form, e.g. "ace clubs".
func (c Card) String() string {
	if c == Back {
		return "back"
	}
	if !c.Valid() {
		return "invalid"
	}
	return c.Rank().String() + " " + c.Suit().String()
}

// Compact returns the two-character evaluator form, e.g. "ac" or "ts".
func (c Card) Compact() string {
	if !c.Valid() {
		return "??"
	}
	return compactRanks[c.Rank()] + compactSuits[c.Suit()]
}

var compactRanks = [14]string{"", "a", "2", "3", "4", "5", "6", "7", "8", "9", "t", "j", "q", "k"}

var compactSuits = [4]string{"c", "d", "h", "s"}

// Parse accepts either the long form ("ace clubs") or the compact form
// ("ac"), plus the face-down marker "back".
func Parse(s string) (Card, error) {
	if s == "back" {
		return Back, nil
	}
	if rankWord, suitWord, ok := strings.Cut(s, " "); ok {
		r, okR := rankByName[rankWord]
		su, okS := suitByName[suitWord]
		if !okR || !okS {
			return 0, fmt.Errorf("card: unknown card %q", s)
		}
		return New(su, r), nil
	}
	if len(s) == 2 {
		r, okR := rankByCompact[s[:1]]
		su, okS := suitByCompact[s[1:]]
		if okR && okS {
			return New(su, r), nil
		}
	}
	return 0, fmt.Errorf("card: unknown card %q", s)
}

var rankByName = func() map[string]Rank {
	m := make(map[string]Rank, 13)
	for r := Ace; r <= King; r++ {
		m[r.String()] = r
	}
	return m
}()

var suitByName = map[string]Suit{
	"clubs": Clubs, "diamonds": Diamonds, "hearts": Hearts, "spades": Spades,
}

var rankByCompact = func() map[string]Rank {
	m := make(map[string]Rank, 13)
	for r := Ace; r <= King; r++ {
		m[compactRanks[r]] = r
	}
	return m
}()

var suitByCompact = map[string]Suit{"c": Clubs, "d": Diamonds, "h": Hearts, "s": Spades}

// MarshalJSON encodes the card as its long form string.
func (c Card) MarshalJSON() ([]byte, error) {
	if c != Back && !c.Valid() {
		return nil, fmt.Errorf("card: cannot marshal invalid card %#02x", byte(c))
	}
	return []byte(`"` + c.String() + `"`), nil
}

// UnmarshalJSON decodes either string form.
func (c *Card) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("card: expected string, got %s", data)
	}
	parsed, err := Parse(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
