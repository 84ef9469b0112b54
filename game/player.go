package game

import "github.com/benhickson/goroom-poker-njs/card"

// PendingPlayer is a room member waiting for the game to start.
type PendingPlayer struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Player is a seated player. Position is the fixed seat number assigned
// at start; rotation order is ascending position among non-out players.
type Player struct {
	ID              string      `json:"id"`
	DisplayName     string      `json:"display_name"`
	Position        int         `json:"position"`
	Chips           int64       `json:"chips"`
	Cards           []card.Card `json:"cards"`
	CurrentStageBet int64       `json:"current_stage_bet"`
	CurrentHandBet  int64       `json:"current_hand_bet"`
	Folded          bool        `json:"folded"`
	Out             bool        `json:"out"`
	ShowCards       bool        `json:"show_cards"`
}

// clone deep-copies the player.
func (p *Player) clone() *Player {
	cp := *p
	if p.Cards != nil {
		cp.Cards = append([]card.Card(nil), p.Cards...)
	}
	return &cp
}

// inHand reports whether the player is still contending for the pot.
func (p *Player) inHand() bool {
	return !p.Out && !p.Folded
}
