package game

import (
	"github.com/paulhankin/poker"

	"github.com/benhickson/goroom-poker-njs/card"
)

// evalCard maps a card into the evaluator's encoding. Suit order
// (clubs, diamonds, hearts, spades) and ace-low ranks line up, so the
// mapping is a direct cast.
func evalCard(c card.Card) (poker.Card, error) {
	return poker.MakeCard(poker.Suit(c.Suit()), poker.Rank(c.Rank()))
}

// scoreHand scores a contender's best five cards out of the board plus
// hole cards. Higher scores beat lower; equal scores are exact ties.
func scoreHand(board, hole []card.Card) (int, string, error) {
	if len(board) != 5 || len(hole) != 2 {
		return 0, "", invariantf("scoring needs 5 board and 2 hole cards, got %d/%d", len(board), len(hole))
	}
	var hand [7]poker.Card
	for i, c := range board {
		pc, err := evalCard(c)
		if err != nil {
			return 0, "", invariantf("bad board card %s: %v", c, err)
		}
		hand[i] = pc
	}
	for i, c := range hole {
		pc, err := evalCard(c)
		if err != nil {
			return 0, "", invariantf("bad hole card %s: %v", c, err)
		}
		hand[5+i] = pc
	}
	score := poker.Eval7(&hand)
	name, err := poker.Describe(hand[:])
	if err != nil {
		return 0, "", invariantf("describe failed: %v", err)
	}
	return int(score), name, nil
}
