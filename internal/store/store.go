// Package store persists one game record per room as a JSON document
// with an optimistic version token. The room actor is the only writer
// for a live room; the version check catches the restart/failover case
// where two processes briefly both believe they own a room.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/benhickson/goroom-poker-njs/game"
)

var (
	ErrGameNotFound      = errors.New("store: no game for room")
	ErrGameAlreadyExists = errors.New("store: room already has a game")
	ErrVersionConflict   = errors.New("store: version conflict")
)

// GameStore is the persistence contract for game records.
type GameStore interface {
	// FetchByRoom returns the room's game and its current version.
	FetchByRoom(ctx context.Context, roomID string) (*game.Game, uint64, error)
	// Create stores a brand-new game at version 1, assigning an id if
	// the aggregate has none.
	Create(ctx context.Context, g *game.Game) (uint64, error)
	// Save overwrites the room's record if the stored version still
	// equals expected, returning the new version.
	Save(ctx context.Context, g *game.Game, expected uint64) (uint64, error)
	Close() error
}

// Open builds a GameStore for the configured driver: memory, sqlite,
// or postgres.
func Open(driver, dsn string) (GameStore, error) {
	switch driver {
	case "memory":
		return NewMemory(), nil
	case "sqlite":
		return OpenSQLite(dsn)
	case "postgres":
		return OpenPostgres(dsn)
	default:
		return nil, fmt.Errorf("store: unknown driver %q", driver)
	}
}
