package room

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/benhickson/goroom-poker-njs/game"
	"github.com/benhickson/goroom-poker-njs/internal/store"
)

// Manager keeps the registry of live room actors and reaps the idle
// ones. Game state survives reaping in the store; the next command for
// a reaped room re-hydrates it.
type Manager struct {
	store   store.GameStore
	bcast   Broadcaster
	log     *log.Logger
	clock   quartz.Clock
	cfg     game.Config
	idleTTL time.Duration

	mu    sync.Mutex
	rooms map[string]*Room
}

func NewManager(st store.GameStore, bcast Broadcaster, logger *log.Logger, clock quartz.Clock, cfg game.Config, idleTTL time.Duration) *Manager {
	return &Manager{
		store:   st,
		bcast:   bcast,
		log:     logger.WithPrefix("rooms"),
		clock:   clock,
		cfg:     cfg,
		idleTTL: idleTTL,
		rooms:   make(map[string]*Room),
	}
}

// Room returns the live actor for a room, starting one if needed.
func (m *Manager) Room(roomID string) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rooms[roomID]; ok {
		return r
	}
	r := New(roomID, m.store, m.bcast, m.log, m.clock, m.cfg)
	m.rooms[roomID] = r
	return r
}

// RunReaper ticks until ctx is done, stopping rooms that have seen no
// commands for the idle TTL.
func (m *Manager) RunReaper(ctx context.Context) error {
	waiter := m.clock.TickerFunc(ctx, m.idleTTL, func() error {
		m.reap()
		return nil
	}, "room-reaper")
	return waiter.Wait()
}

func (m *Manager) reap() {
	cutoff := m.clock.Now().Add(-m.idleTTL)

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, r := range m.rooms {
		if r.IdleSince().After(cutoff) {
			continue
		}
		r.Stop()
		delete(m.rooms, id)
		m.log.Info("idle room reaped", "room", id)
	}
}

// Close stops every live room actor.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, r := range m.rooms {
		r.Stop()
		delete(m.rooms, id)
	}
}
