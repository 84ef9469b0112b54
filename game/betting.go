package game

// ApplyMove validates and applies a move from playerID. Validation
// failures leave the game untouched.
func (g *Game) ApplyMove(playerID string, mv Move) error {
	if g.Player(playerID) == nil {
		return ErrNotSeated
	}
	if g.NextToAct == "" || playerID != g.NextToAct {
		return ErrOutOfTurn
	}
	if !g.TurnOptions.allowed(mv.Type) {
		return &IllegalMoveTypeError{Move: mv.Type, Options: g.TurnOptions}
	}

	switch mv.Type {
	case MoveFold:
		// Folding never shifts the bet leader.
		g.Player(playerID).Folded = true
		return g.finishTurn()

	case MoveCheck:
		// The first checker of an unopened round becomes the
		// provisional bet leader so an all-check round still closes
		// when action returns to them.
		if g.BetLeader == "" {
			g.BetLeader = playerID
		}
		return g.finishTurn()

	case MoveBet, MoveRaiseBet:
		if err := g.placeBet(playerID, mv.Amount); err != nil {
			return err
		}
		return g.finishTurn()

	case MoveCall:
		if err := g.placeBet(playerID, g.CostToCall); err != nil {
			return err
		}
		return g.finishTurn()

	case MoveShowCards, MoveMuckCards:
		g.Player(playerID).ShowCards = mv.Type == MoveShowCards
		g.NextToAct = ""
		g.TurnOptions = TurnOptionsNone
		return nil
	}
	return &IllegalMoveTypeError{Move: mv.Type, Options: g.TurnOptions}
}

// placeBet moves amount from the player's stack into the pot and
// updates the round targets. A contribution larger than the cost to
// call makes the bettor the new bet leader and raises the per-player
// target by the excess.
func (g *Game) placeBet(playerID string, amount int64) error {
	p := g.Player(playerID)
	if p == nil {
		return ErrNotSeated
	}
	if amount < 0 || p.CurrentHandBet+amount > g.MaxBetForHand {
		return &IllegalBetError{PlayerID: playerID, Amount: amount, Ceiling: g.MaxBetForHand}
	}

	p.Chips -= amount
	p.CurrentStageBet += amount
	p.CurrentHandBet += amount
	g.Pot += amount

	if amount > g.CostToCall {
		g.BetLeader = playerID
		g.AmountToStay += amount - g.CostToCall
	}
	g.TurnOptions = TurnOptionsAfterBets
	return nil
}

// finishTurn runs after every accepted betting move: hand the action to
// the next seat, or close the round and advance the stage when action
// has returned to the bet leader.
func (g *Game) finishTurn() error {
	if len(g.contenders()) < 2 {
		// Everyone else folded; no more betting is possible.
		g.Stage = StageShowdown
		return g.settle()
	}

	next := g.nextEligible(g.NextToAct)
	if next == g.BetLeader {
		g.Stage++
		g.NextToAct = g.nextEligible(g.Dealer)
		if err := g.advanceStage(); err != nil {
			return err
		}
		if g.Stage == StageShowdown {
			return g.settle()
		}
	} else {
		g.NextToAct = next
	}
	g.pointCostsAtNextActor()
	return nil
}

// advanceStage deals the board cards owed to the new stage and resets
// the per-round bookkeeping.
func (g *Game) advanceStage() error {
	rng := g.random()
	switch g.Stage {
	case StageFlop:
		for i := 0; i < 3; i++ {
			c, err := g.Deck.Draw(rng)
			if err != nil {
				return invariantf("deck exhausted on flop: %v", err)
			}
			g.BoardCards = append(g.BoardCards, c)
		}
	case StageTurn, StageRiver:
		c, err := g.Deck.Draw(rng)
		if err != nil {
			return invariantf("deck exhausted on %s: %v", g.Stage, err)
		}
		g.BoardCards = append(g.BoardCards, c)
	}

	for _, p := range g.Players {
		p.CurrentStageBet = 0
	}
	g.AmountToStay = 0
	g.CostToCall = 0
	g.BetLeader = ""
	g.TurnOptions = TurnOptionsBeforeBets
	return nil
}

// pointCostsAtNextActor recomputes the call gap and all-in headroom for
// whoever acts next.
func (g *Game) pointCostsAtNextActor() {
	p := g.Player(g.NextToAct)
	if p == nil {
		g.CostToCall = 0
		g.MaxBetNextPlayer = 0
		return
	}
	cost := g.AmountToStay - p.CurrentStageBet
	if cost < 0 {
		cost = 0
	}
	g.CostToCall = cost
	g.MaxBetNextPlayer = g.MaxBetForHand - p.CurrentHandBet
}
