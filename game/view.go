package game

import "github.com/benhickson/goroom-poker-njs/card"

// ViewFor returns a deep copy of the game safe to send to one viewer:
// every other player's unrevealed hole cards are replaced with
// face-down markers and the undealt deck is emptied. Before the game
// starts there is nothing to hide.
func (g *Game) ViewFor(viewerID string) *Game {
	v := g.Clone()
	if !v.Started {
		return v
	}
	for _, p := range v.Players {
		if p.ID == viewerID || p.ShowCards {
			continue
		}
		for i := range p.Cards {
			p.Cards[i] = card.Back
		}
	}
	v.Deck = card.Deck{}
	return v
}
