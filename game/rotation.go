package game

import "sort"

// orderedActive returns the non-eliminated players sorted by seat
// position ascending. Folded players are included; they still hold
// seats for rotation purposes.
func (g *Game) orderedActive() []*Player {
	active := make([]*Player, 0, len(g.Players))
	for _, p := range g.Players {
		if !p.Out {
			active = append(active, p)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].Position < active[j].Position
	})
	return active
}

// indexIn finds id in the ordered list, or -1. Walking from -1 starts
// the scan at the first seat, which is how a vacated reference seat
// (fresh game, eliminated dealer) is skipped over.
func indexIn(ordered []*Player, id string) int {
	for i, p := range ordered {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// nextDealer returns the active seat clockwise of the current dealer,
// wrapping past the last seat.
func (g *Game) nextDealer() string {
	active := g.orderedActive()
	if len(active) == 0 {
		return ""
	}
	i := indexIn(active, g.Dealer)
	return active[(i+1+len(active))%len(active)].ID
}

// blinds returns the small and big blind seats, the two active seats
// clockwise of the dealer.
func (g *Game) blinds() (small, big string, err error) {
	active := g.orderedActive()
	if len(active) < 2 {
		return "", "", ErrInsufficientPlayers
	}
	i := indexIn(active, g.Dealer)
	n := len(active)
	smallIdx := (i + 1 + n) % n
	bigIdx := (smallIdx + 1) % n
	return active[smallIdx].ID, active[bigIdx].ID, nil
}

// nextEligible returns the next seat clockwise of fromID that can still
// act: active and not folded. fromID itself may be folded or absent.
// Returns "" when nobody is eligible.
func (g *Game) nextEligible(fromID string) string {
	active := g.orderedActive()
	n := len(active)
	if n == 0 {
		return ""
	}
	i := indexIn(active, fromID)
	for k := 1; k <= n; k++ {
		cand := active[(i+k+n)%n]
		if !cand.Folded {
			return cand.ID
		}
	}
	return ""
}

// rotationFrom returns the active players in acting order starting with
// the seat after fromID, wrapping all the way around.
func (g *Game) rotationFrom(fromID string) []*Player {
	active := g.orderedActive()
	n := len(active)
	if n == 0 {
		return nil
	}
	i := indexIn(active, fromID)
	out := make([]*Player, 0, n)
	for k := 1; k <= n; k++ {
		out = append(out, active[(i+k+n)%n])
	}
	return out
}

// contenders returns the players still in the hand.
func (g *Game) contenders() []*Player {
	var in []*Player
	for _, p := range g.orderedActive() {
		if !p.Folded {
			in = append(in, p)
		}
	}
	return in
}
