// Package room serializes all game mutations for a room through one
// actor goroutine: fetch, validate, mutate, persist, broadcast, in
// arrival order. Rejections go back to the originating caller only.
package room

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/benhickson/goroom-poker-njs/game"
	"github.com/benhickson/goroom-poker-njs/internal/store"
)

// ErrClosed is returned for commands submitted after the room stopped.
var ErrClosed = errors.New("room: closed")

// Broadcaster fans room events out to connected members. PublishState
// implementations must filter the aggregate per viewer before sending.
type Broadcaster interface {
	PublishState(roomID string, g *game.Game)
	PublishPrivateStateAvailable(roomID string)
	PublishPlayersJoined(roomID string, pending []game.PendingPlayer)
}

type commandKind int

const (
	cmdJoin commandKind = iota
	cmdStart
	cmdDeal
	cmdReset
	cmdMove
	cmdView
)

type command struct {
	kind     commandKind
	playerID string
	name     string
	move     game.Move
	reply    chan result
}

type result struct {
	view *game.Game
	err  error
}

// Room is the single writer for one room's game.
type Room struct {
	ID string

	store store.GameStore
	bcast Broadcaster
	log   *log.Logger
	clock quartz.Clock
	cfg   game.Config

	cmds     chan command
	done     chan struct{}
	stopOnce sync.Once

	// Owned by the actor goroutine after start.
	game    *game.Game
	version uint64

	mu         sync.Mutex
	lastActive time.Time
}

// New creates a room actor and starts its goroutine.
func New(id string, st store.GameStore, bcast Broadcaster, logger *log.Logger, clock quartz.Clock, cfg game.Config) *Room {
	r := &Room{
		ID:         id,
		store:      st,
		bcast:      bcast,
		log:        logger.WithPrefix("room." + id),
		clock:      clock,
		cfg:        cfg,
		cmds:       make(chan command, 64),
		done:       make(chan struct{}),
		lastActive: clock.Now(),
	}
	go r.run()
	return r
}

// Join adds the player to the pending roster, or re-admits a seated
// player to a started game.
func (r *Room) Join(ctx context.Context, playerID, displayName string) error {
	_, err := r.submit(ctx, command{kind: cmdJoin, playerID: playerID, name: displayName})
	return err
}

// Start promotes the pending roster to seated players.
func (r *Room) Start(ctx context.Context, playerID string) error {
	_, err := r.submit(ctx, command{kind: cmdStart, playerID: playerID})
	return err
}

// Deal begins the next hand.
func (r *Room) Deal(ctx context.Context, playerID string) error {
	_, err := r.submit(ctx, command{kind: cmdDeal, playerID: playerID})
	return err
}

// Reset starts a fresh match once a game winner is decided.
func (r *Room) Reset(ctx context.Context, playerID string) error {
	_, err := r.submit(ctx, command{kind: cmdReset, playerID: playerID})
	return err
}

// Move applies a betting-round action from the player.
func (r *Room) Move(ctx context.Context, playerID string, mv game.Move) error {
	_, err := r.submit(ctx, command{kind: cmdMove, playerID: playerID, move: mv})
	return err
}

// View returns the player's filtered snapshot of the current state.
func (r *Room) View(ctx context.Context, playerID string) (*game.Game, error) {
	res, err := r.submit(ctx, command{kind: cmdView, playerID: playerID})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Stop shuts the actor down. Pending commands are answered ErrClosed.
func (r *Room) Stop() {
	r.stopOnce.Do(func() { close(r.done) })
}

// IdleSince reports the time of the last processed command.
func (r *Room) IdleSince() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastActive
}

func (r *Room) touch() {
	r.mu.Lock()
	r.lastActive = r.clock.Now()
	r.mu.Unlock()
}

func (r *Room) submit(ctx context.Context, cmd command) (*game.Game, error) {
	cmd.reply = make(chan result, 1)
	select {
	case r.cmds <- cmd:
	case <-r.done:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case res := <-cmd.reply:
		return res.view, res.err
	case <-r.done:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (r *Room) run() {
	for {
		select {
		case cmd := <-r.cmds:
			r.touch()
			res := r.handle(cmd)
			if res.err != nil {
				r.log.Debug("command rejected", "kind", cmd.kind, "player", cmd.playerID, "err", res.err)
			}
			cmd.reply <- res
		case <-r.done:
			return
		}
	}
}

func (r *Room) handle(cmd command) result {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := r.hydrate(ctx, cmd); err != nil {
		return result{err: err}
	}

	if cmd.kind == cmdView {
		return result{view: r.game.ViewFor(cmd.playerID)}
	}

	wasStarted := r.game.Started
	if err := r.apply(cmd); err != nil {
		var inv *game.InvariantError
		if errors.As(err, &inv) {
			// The aggregate may be half-mutated. Drop it and reload
			// the last persisted state.
			r.log.Error("invariant violation, reloading room", "err", err)
			r.game = nil
			return result{err: err}
		}
		return result{err: err}
	}
	if err := r.game.Validate(); err != nil {
		r.log.Error("post-transition validation failed, reloading room", "err", err)
		r.game = nil
		return result{err: err}
	}

	v, err := r.store.Save(ctx, r.game, r.version)
	if err != nil {
		// Another writer or a storage fault; the in-memory aggregate
		// can no longer be trusted.
		r.game = nil
		return result{err: fmt.Errorf("persist room %s: %w", r.ID, err)}
	}
	r.version = v

	r.broadcast(cmd, wasStarted)
	return result{}
}

// hydrate loads the room's game on first use. A join against a room
// with no game yet creates one with the joiner as creator.
func (r *Room) hydrate(ctx context.Context, cmd command) error {
	if r.game != nil {
		return nil
	}
	g, v, err := r.store.FetchByRoom(ctx, r.ID)
	switch {
	case err == nil:
		r.game, r.version = g, v
		return nil
	case errors.Is(err, store.ErrGameNotFound):
		if cmd.kind != cmdJoin {
			return err
		}
		g := game.New(r.ID, cmd.playerID, r.cfg, time.Now())
		v, err := r.store.Create(ctx, g)
		if err != nil && !errors.Is(err, store.ErrGameAlreadyExists) {
			return err
		}
		if errors.Is(err, store.ErrGameAlreadyExists) {
			g, v, err = r.store.FetchByRoom(ctx, r.ID)
			if err != nil {
				return err
			}
		}
		r.game, r.version = g, v
		r.log.Info("game created", "creator", cmd.playerID)
		return nil
	default:
		return err
	}
}

func (r *Room) apply(cmd command) error {
	switch cmd.kind {
	case cmdJoin:
		return r.game.Join(cmd.playerID, cmd.name)
	case cmdStart:
		return r.game.Start(time.Now())
	case cmdDeal:
		return r.game.Deal()
	case cmdReset:
		return r.game.Reset()
	case cmdMove:
		return r.game.ApplyMove(cmd.playerID, cmd.move)
	}
	return fmt.Errorf("room: unknown command %d", cmd.kind)
}

func (r *Room) broadcast(cmd command, wasStarted bool) {
	switch cmd.kind {
	case cmdJoin:
		if wasStarted {
			// Re-join: the member refetches their filtered view.
			r.bcast.PublishPrivateStateAvailable(r.ID)
			return
		}
		r.bcast.PublishPlayersJoined(r.ID, r.game.PendingPlayers)
	case cmdDeal:
		// Hole cards are private; members pull their own views.
		r.bcast.PublishPrivateStateAvailable(r.ID)
	default:
		r.bcast.PublishState(r.ID, r.game)
	}
}
