package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/benhickson/goroom-poker-njs/game"
)

// contract runs the GameStore behavior shared by every backend.
func contract(t *testing.T, s GameStore) {
	ctx := context.Background()

	_, _, err := s.FetchByRoom(ctx, "room-1")
	require.ErrorIs(t, err, ErrGameNotFound)

	g := game.New("room-1", "p1", game.Config{}, time.Now())
	require.NoError(t, g.Join("p1", "Alice"))
	require.NoError(t, g.Join("p2", "Bob"))

	v, err := s.Create(ctx, g)
	require.NoError(t, err)
	require.Equal(t, uint64(1), v)
	require.NotEmpty(t, g.ID, "create assigns an id")

	_, err = s.Create(ctx, g)
	require.ErrorIs(t, err, ErrGameAlreadyExists)

	got, gotV, err := s.FetchByRoom(ctx, "room-1")
	require.NoError(t, err)
	require.Equal(t, uint64(1), gotV)
	require.Equal(t, g.ID, got.ID)
	require.Equal(t, "room-1", got.RoomID)
	require.Len(t, got.PendingPlayers, 2)

	require.NoError(t, got.Start(time.Now()))
	v2, err := s.Save(ctx, got, gotV)
	require.NoError(t, err)
	require.Equal(t, uint64(2), v2)

	// A writer holding the old version must lose.
	_, err = s.Save(ctx, got, gotV)
	require.ErrorIs(t, err, ErrVersionConflict)

	reloaded, v3, err := s.FetchByRoom(ctx, "room-1")
	require.NoError(t, err)
	require.Equal(t, uint64(2), v3)
	require.True(t, reloaded.Started)
	require.Len(t, reloaded.Players, 2)

	// A full mid-hand document survives the round trip.
	g2 := game.New("room-2", "p1", game.Config{Seed: 4}, time.Now())
	require.NoError(t, g2.Join("p1", "Alice"))
	require.NoError(t, g2.Join("p2", "Bob"))
	require.NoError(t, g2.Start(time.Now()))
	require.NoError(t, g2.Deal())
	_, err = s.Create(ctx, g2)
	require.NoError(t, err)
	back, _, err := s.FetchByRoom(ctx, "room-2")
	require.NoError(t, err)
	require.NoError(t, back.Validate())
	require.Equal(t, g2.Deck, back.Deck)
	require.Equal(t, g2.Player("p1").Cards, back.Player("p1").Cards)
	require.Equal(t, g2.Pot, back.Pot)

	missing := game.New("room-9", "p1", game.Config{}, time.Now())
	_, err = s.Save(ctx, missing, 1)
	require.ErrorIs(t, err, ErrGameNotFound)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemory()
	defer s.Close()
	contract(t, s)
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer s.Close()
	contract(t, s)
}

func TestMemoryStoreIsolation(t *testing.T) {
	s := NewMemory()
	defer s.Close()
	ctx := context.Background()

	g := game.New("room-1", "p1", game.Config{}, time.Now())
	require.NoError(t, g.Join("p1", "Alice"))
	_, err := s.Create(ctx, g)
	require.NoError(t, err)

	// Mutating the caller's aggregate must not touch the stored copy.
	g.Pot = 999
	got, _, err := s.FetchByRoom(ctx, "room-1")
	require.NoError(t, err)
	require.Zero(t, got.Pot)
}

func TestOpenSelectsDriver(t *testing.T) {
	s, err := Open("memory", "")
	require.NoError(t, err)
	require.IsType(t, &Memory{}, s)

	_, err = Open("bolt", "")
	require.ErrorContains(t, err, "unknown driver")
}
