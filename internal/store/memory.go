package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"github.com/benhickson/goroom-poker-njs/game"
)

// Memory keeps game records in process. Records round-trip through
// JSON so callers never share mutable state with the store.
type Memory struct {
	mu    sync.Mutex
	games map[string]memoryRecord // room id -> record
}

type memoryRecord struct {
	doc     []byte
	version uint64
}

func NewMemory() *Memory {
	return &Memory{games: make(map[string]memoryRecord)}
}

func (m *Memory) FetchByRoom(_ context.Context, roomID string) (*game.Game, uint64, error) {
	m.mu.Lock()
	rec, ok := m.games[roomID]
	m.mu.Unlock()
	if !ok {
		return nil, 0, ErrGameNotFound
	}
	var g game.Game
	if err := json.Unmarshal(rec.doc, &g); err != nil {
		return nil, 0, err
	}
	return &g, rec.version, nil
}

func (m *Memory) Create(_ context.Context, g *game.Game) (uint64, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	doc, err := json.Marshal(g)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.games[g.RoomID]; exists {
		return 0, ErrGameAlreadyExists
	}
	m.games[g.RoomID] = memoryRecord{doc: doc, version: 1}
	return 1, nil
}

func (m *Memory) Save(_ context.Context, g *game.Game, expected uint64) (uint64, error) {
	doc, err := json.Marshal(g)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.games[g.RoomID]
	if !ok {
		return 0, ErrGameNotFound
	}
	if rec.version != expected {
		return 0, ErrVersionConflict
	}
	next := expected + 1
	m.games[g.RoomID] = memoryRecord{doc: doc, version: next}
	return next, nil
}

func (m *Memory) Close() error { return nil }
