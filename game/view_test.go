package game

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/benhickson/goroom-poker-njs/card"
)

func TestViewHidesOtherHoleCardsAndDeck(t *testing.T) {
	g := startedGame(t, 3, 11)
	require.NoError(t, g.Deal())

	v := g.ViewFor("p2")
	require.Equal(t, g.Player("p2").Cards, v.Player("p2").Cards)
	require.Equal(t, []card.Card{card.Back, card.Back}, v.Player("p1").Cards)
	require.Equal(t, []card.Card{card.Back, card.Back}, v.Player("p3").Cards)
	require.Empty(t, v.Deck)

	// The canonical aggregate is untouched.
	require.Len(t, g.Deck, 52-6)
	require.NoError(t, g.Validate())
}

func TestViewRespectsShowCards(t *testing.T) {
	g := startedGame(t, 2, 11)
	require.NoError(t, g.Deal())
	g.Player("p1").ShowCards = true

	v := g.ViewFor("p2")
	require.Equal(t, g.Player("p1").Cards, v.Player("p1").Cards)
}

func TestViewBeforeStartHidesNothing(t *testing.T) {
	g := New("room-1", "p1", Config{}, time.Now())
	require.NoError(t, g.Join("p1", "Alice"))
	v := g.ViewFor("p1")
	require.Len(t, v.PendingPlayers, 1)
}

func TestViewSerializesWithSnakeCaseFields(t *testing.T) {
	g := startedGame(t, 2, 11)
	require.NoError(t, g.Deal())

	b, err := json.Marshal(g.ViewFor("p1"))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))
	for _, key := range []string{
		"room_id", "started", "pending_players", "players", "pot", "deck",
		"board_cards", "dealer", "next_player", "max_bet_for_hand",
		"max_bet_next_player", "bet_leader", "stage", "big_blind",
		"small_blind", "amount_to_stay", "cost_to_call", "turn_options",
		"hand_phase", "hand_winners", "game_winner",
	} {
		require.Contains(t, doc, key)
	}

	players := doc["players"].([]any)
	p2 := players[1].(map[string]any)
	require.Equal(t, []any{"back", "back"}, p2["cards"])
}
