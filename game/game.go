package game

import (
	"math/rand"
	"time"

	"github.com/benhickson/goroom-poker-njs/card"
)

// Default stakes, in currency minor units.
const (
	DefaultStartingStack int64 = 20000
	DefaultBigBlind      int64 = 500
	DefaultSmallBlind    int64 = 250
)

// Config sets the stakes for a new game. Zero fields take defaults.
type Config struct {
	SmallBlind    int64
	BigBlind      int64
	StartingStack int64
	// Seed, when non-zero, makes shuffles and draws deterministic.
	Seed int64
}

func (c Config) withDefaults() Config {
	if c.SmallBlind == 0 {
		c.SmallBlind = DefaultSmallBlind
	}
	if c.BigBlind == 0 {
		c.BigBlind = DefaultBigBlind
	}
	if c.StartingStack == 0 {
		c.StartingStack = DefaultStartingStack
	}
	return c
}

// Game is the per-room aggregate. All mutation goes through its
// methods, called under the room's single-writer discipline.
type Game struct {
	ID             string          `json:"id"`
	RoomID         string          `json:"room_id"`
	Started        bool            `json:"started"`
	CreatedAt      time.Time       `json:"created_at"`
	StartedAt      *time.Time      `json:"started_at,omitempty"`
	CreatedBy      string          `json:"created_by"`
	PendingPlayers []PendingPlayer `json:"pending_players"`
	Players        []*Player       `json:"players"`
	Pot            int64           `json:"pot"`
	Deck           card.Deck       `json:"deck"`
	BoardCards     []card.Card     `json:"board_cards"`
	Dealer         string          `json:"dealer"`
	NextToAct      string          `json:"next_player"`
	MaxBetForHand  int64           `json:"max_bet_for_hand"`
	// MaxBetNextPlayer is the room left under the hand ceiling for
	// whoever acts next.
	MaxBetNextPlayer int64        `json:"max_bet_next_player"`
	BetLeader        string       `json:"bet_leader"`
	Stage            Stage        `json:"stage"`
	SmallBlind       int64        `json:"small_blind"`
	BigBlind         int64        `json:"big_blind"`
	StartingStack    int64        `json:"starting_stack"`
	AmountToStay     int64        `json:"amount_to_stay"`
	CostToCall       int64        `json:"cost_to_call"`
	TurnOptions      TurnOptions  `json:"turn_options"`
	HandPhase        HandPhase    `json:"hand_phase"`
	HandWinners      []HandWinner `json:"hand_winners"`
	GameWinner       string       `json:"game_winner"`

	rng *rand.Rand
}

// New creates an unstarted game for a room.
func New(roomID, createdBy string, cfg Config, now time.Time) *Game {
	cfg = cfg.withDefaults()
	g := &Game{
		RoomID:        roomID,
		CreatedAt:     now,
		CreatedBy:     createdBy,
		SmallBlind:    cfg.SmallBlind,
		BigBlind:      cfg.BigBlind,
		StartingStack: cfg.StartingStack,
		Stage:         StageNotDealt,
		HandPhase:     HandPhaseAwaitingNextHand,
	}
	if cfg.Seed != 0 {
		g.rng = rand.New(rand.NewSource(cfg.Seed))
	}
	return g
}

// SetRand overrides the game's randomness source.
func (g *Game) SetRand(rng *rand.Rand) {
	g.rng = rng
}

func (g *Game) random() *rand.Rand {
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g.rng
}

// Player returns the seated player with the given id, or nil.
func (g *Game) Player(id string) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Join registers a room member. Before start it adds them to the
// pending roster; after start only a seated player may re-join.
func (g *Game) Join(id, displayName string) error {
	if g.Started {
		if g.Player(id) == nil {
			return ErrGameAlreadyStarted
		}
		return nil
	}
	for _, pp := range g.PendingPlayers {
		if pp.ID == id {
			return nil
		}
	}
	g.PendingPlayers = append(g.PendingPlayers, PendingPlayer{ID: id, DisplayName: displayName})
	return nil
}

// Start promotes the pending roster to seated players with the
// starting stack. Seats are assigned in join order.
func (g *Game) Start(now time.Time) error {
	if g.Started {
		return ErrGameAlreadyStarted
	}
	if len(g.PendingPlayers) < 2 {
		return ErrInsufficientPlayers
	}
	g.Players = make([]*Player, 0, len(g.PendingPlayers))
	for i, pp := range g.PendingPlayers {
		g.Players = append(g.Players, &Player{
			ID:          pp.ID,
			DisplayName: pp.DisplayName,
			Position:    i + 1,
			Chips:       g.StartingStack,
		})
	}
	g.Started = true
	g.StartedAt = &now
	return nil
}

// Deal starts a new hand: rotates the button, posts blinds, deals hole
// cards, and hands the action to the seat after the big blind.
func (g *Game) Deal() error {
	if !g.Started {
		return ErrGameNotStarted
	}
	if g.GameWinner != "" {
		return ErrMatchOver
	}
	if g.Stage != StageNotDealt && g.Stage != StageShowdown {
		return ErrHandInProgress
	}

	active := g.orderedActive()
	if len(active) < 2 {
		return ErrInsufficientPlayers
	}

	g.Pot = 0
	g.BoardCards = nil
	g.HandWinners = nil
	g.AmountToStay = 0
	g.CostToCall = 0
	g.BetLeader = ""
	for _, p := range g.Players {
		p.Cards = nil
		p.CurrentStageBet = 0
		p.CurrentHandBet = 0
		p.Folded = false
		p.ShowCards = false
	}

	g.Dealer = g.nextDealer()

	// Everyone's hand contribution is capped at the shortest active
	// stack, measured before blinds are posted.
	g.MaxBetForHand = active[0].Chips
	for _, p := range active[1:] {
		if p.Chips < g.MaxBetForHand {
			g.MaxBetForHand = p.Chips
		}
	}

	rng := g.random()
	deck := card.Fresh()
	deck.Shuffle(rng)
	g.Deck = deck

	g.Stage = StagePreflop
	g.HandPhase = HandPhaseActive

	smallID, bigID, err := g.blinds()
	if err != nil {
		return err
	}

	// Two hole cards per seat, dealt starting at the small blind.
	order := g.rotationFrom(g.Dealer)
	for round := 0; round < 2; round++ {
		for _, p := range order {
			c, err := g.Deck.Draw(rng)
			if err != nil {
				return invariantf("deck exhausted while dealing: %v", err)
			}
			p.Cards = append(p.Cards, c)
		}
	}

	smallBlind := min(g.SmallBlind, g.MaxBetForHand)
	bigBlind := min(g.BigBlind, g.MaxBetForHand)
	if err := g.placeBet(smallID, smallBlind); err != nil {
		return err
	}
	g.CostToCall = g.AmountToStay - g.Player(bigID).CurrentStageBet
	if err := g.placeBet(bigID, bigBlind); err != nil {
		return err
	}

	// The big blind is the forced opener: action closes when it comes
	// back around unraised.
	g.BetLeader = bigID

	g.NextToAct = g.nextEligible(bigID)
	g.pointCostsAtNextActor()
	return nil
}

// Reset starts a new match with the same roster after a game winner has
// been decided. Everyone is back in with a fresh starting stack.
func (g *Game) Reset() error {
	if g.GameWinner == "" {
		return ErrNoGameWinner
	}
	g.GameWinner = ""
	g.HandWinners = nil
	g.Pot = 0
	g.Deck = nil
	g.BoardCards = nil
	g.Dealer = ""
	g.NextToAct = ""
	g.BetLeader = ""
	g.Stage = StageNotDealt
	g.MaxBetForHand = 0
	g.MaxBetNextPlayer = 0
	g.AmountToStay = 0
	g.CostToCall = 0
	g.TurnOptions = TurnOptionsNone
	g.HandPhase = HandPhaseAwaitingNextHand
	for _, p := range g.Players {
		p.Chips = g.StartingStack
		p.Cards = nil
		p.CurrentStageBet = 0
		p.CurrentHandBet = 0
		p.Folded = false
		p.Out = false
		p.ShowCards = false
	}
	return nil
}

// Clone deep-copies the aggregate. The copy shares no mutable state
// with the original; the randomness source is not carried.
func (g *Game) Clone() *Game {
	cp := *g
	cp.rng = nil
	if g.PendingPlayers != nil {
		cp.PendingPlayers = append([]PendingPlayer(nil), g.PendingPlayers...)
	}
	if g.Players != nil {
		cp.Players = make([]*Player, len(g.Players))
		for i, p := range g.Players {
			cp.Players[i] = p.clone()
		}
	}
	if g.Deck != nil {
		cp.Deck = append(card.Deck(nil), g.Deck...)
	}
	if g.BoardCards != nil {
		cp.BoardCards = append([]card.Card(nil), g.BoardCards...)
	}
	if g.HandWinners != nil {
		cp.HandWinners = append([]HandWinner(nil), g.HandWinners...)
	}
	return &cp
}
