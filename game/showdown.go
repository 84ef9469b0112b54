package game

// HandWinner is one entry in the settled-hand result.
type HandWinner struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
	HandName    string `json:"hand_name"`
	Payout      int64  `json:"payout_amount"`
}

// settle resolves stage 5: pick the winners, pay the pot, eliminate
// busted players, and detect the match winner.
func (g *Game) settle() error {
	in := g.contenders()
	if len(in) == 0 {
		return invariantf("showdown reached with no contenders")
	}

	if len(g.BoardCards) < 5 {
		// The hand ended by folds before the river. The last player
		// standing takes the pot without an evaluation and chooses
		// whether to reveal.
		if len(in) > 1 {
			return invariantf("short board at showdown with %d contenders", len(in))
		}
		w := in[0]
		w.Chips += g.Pot
		g.HandWinners = []HandWinner{{
			ID:          w.ID,
			DisplayName: w.DisplayName,
			HandName:    "uncontested",
			Payout:      g.Pot,
		}}
		g.finishHand()
		g.NextToAct = w.ID
		g.TurnOptions = TurnOptionsEndNotCalled
		return nil
	}

	// Score every contender's best five of seven and keep the
	// strict-equal top group; ties split the pot.
	best := make(map[string]HandWinner)
	var topScore int
	for _, p := range in {
		score, name, err := scoreHand(g.BoardCards, p.Cards)
		if err != nil {
			return err
		}
		hw := HandWinner{ID: p.ID, DisplayName: p.DisplayName, Score: score, HandName: name}
		switch {
		case len(best) == 0 || score > topScore:
			best = map[string]HandWinner{p.ID: hw}
			topScore = score
		case score == topScore:
			best[p.ID] = hw
		}
	}

	// Pay in seat order starting clockwise of the dealer; the first
	// winners in that order absorb any odd remainder, one minor unit
	// each.
	var winners []HandWinner
	for _, p := range g.rotationFrom(g.Dealer) {
		if hw, ok := best[p.ID]; ok {
			winners = append(winners, hw)
		}
	}
	base := g.Pot / int64(len(winners))
	remainder := g.Pot % int64(len(winners))
	for i := range winners {
		pay := base
		if int64(i) < remainder {
			pay++
		}
		winners[i].Payout = pay
		g.Player(winners[i].ID).Chips += pay
	}
	g.HandWinners = winners

	for _, p := range g.Players {
		p.ShowCards = true
	}
	g.finishHand()
	g.NextToAct = ""
	g.TurnOptions = TurnOptionsNone
	return nil
}

// finishHand zeroes the hand accounting, eliminates busted players, and
// ends the match when only one player still has chips.
func (g *Game) finishHand() {
	g.Pot = 0
	g.AmountToStay = 0
	g.CostToCall = 0
	g.BetLeader = ""
	g.MaxBetNextPlayer = 0
	for _, p := range g.Players {
		p.CurrentStageBet = 0
		p.CurrentHandBet = 0
		if p.Chips <= 0 {
			p.Out = true
		}
	}

	var last *Player
	remaining := 0
	for _, p := range g.Players {
		if !p.Out {
			remaining++
			last = p
		}
	}
	if remaining == 1 {
		g.GameWinner = last.ID
	}
	g.HandPhase = HandPhaseAwaitingNextHand
}
