package game

// Validate checks the aggregate's structural invariants. A non-nil
// result is an *InvariantError: the in-flight transition is a logic
// fault and must not be persisted.
func (g *Game) Validate() error {
	if g.Pot < 0 {
		return invariantf("negative pot %d", g.Pot)
	}

	seen := make(map[int]string)
	for _, p := range g.Players {
		if p.Chips < 0 {
			return invariantf("player %s has negative chips %d", p.ID, p.Chips)
		}
		if other, dup := seen[p.Position]; dup {
			return invariantf("players %s and %s share position %d", other, p.ID, p.Position)
		}
		seen[p.Position] = p.ID
	}

	// From deal to deal the deck, board, and hole cards partition the
	// 52-card set exactly.
	held := len(g.Deck) + len(g.BoardCards)
	cards := make(map[string]bool, 52)
	for _, c := range g.Deck {
		cards[c.String()] = true
	}
	for _, c := range g.BoardCards {
		cards[c.String()] = true
	}
	for _, p := range g.Players {
		held += len(p.Cards)
		for _, c := range p.Cards {
			cards[c.String()] = true
		}
	}
	if held == 0 {
		return nil
	}
	if held != 52 || len(cards) != 52 {
		return invariantf("card set broken: %d cards held, %d distinct", held, len(cards))
	}

	// Mid-hand the pot must be exactly what players have put in.
	if g.Stage >= StagePreflop && g.Stage < StageShowdown {
		var contributed int64
		for _, p := range g.Players {
			contributed += p.CurrentHandBet
		}
		if g.Pot != contributed {
			return invariantf("pot %d != hand contributions %d", g.Pot, contributed)
		}
	}
	return nil
}
