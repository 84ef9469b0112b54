// Package gateway exposes the game over websockets: one connection per
// room member, JSON envelopes in both directions, and per-viewer
// filtered fan-out of room broadcasts.
package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/benhickson/goroom-poker-njs/game"
	"github.com/benhickson/goroom-poker-njs/internal/codec"
	"github.com/benhickson/goroom-poker-njs/internal/room"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 65536
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: Restrict in production
	},
}

// SessionResolver turns an opaque session token into an identity.
type SessionResolver interface {
	ResolveSession(token string) (accountID uint64, username string, ok bool)
}

// Rooms is the slice of the room registry the gateway needs.
type Rooms interface {
	Room(roomID string) *room.Room
}

// Connection is one websocket client bound to a room.
type Connection struct {
	userID string
	name   string
	roomID string
	conn   *websocket.Conn
	send   chan []byte
	gw     *Gateway
}

// Gateway manages websocket connections and implements the room
// Broadcaster contract.
type Gateway struct {
	sessions SessionResolver
	log      *log.Logger

	mu      sync.RWMutex
	rooms   Rooms
	members map[string]map[*Connection]bool // room id -> connections
}

func New(sessions SessionResolver, logger *log.Logger) *Gateway {
	return &Gateway{
		sessions: sessions,
		log:      logger.WithPrefix("gateway"),
		members:  make(map[string]map[*Connection]bool),
	}
}

// BindRooms wires the room registry in after construction; the
// registry needs the gateway as its broadcaster first.
func (g *Gateway) BindRooms(rooms Rooms) {
	g.mu.Lock()
	g.rooms = rooms
	g.mu.Unlock()
}

func (g *Gateway) room(roomID string) *room.Room {
	g.mu.RLock()
	rooms := g.rooms
	g.mu.RUnlock()
	return rooms.Room(roomID)
}

// HandleWebSocket upgrades /ws?room_id=N&token=... connections. The
// member joins the room's game as a side effect of connecting.
func (g *Gateway) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("room_id")
	if roomID == "" {
		http.Error(w, "missing room_id", http.StatusBadRequest)
		return
	}
	token := r.URL.Query().Get("token")
	accountID, username, ok := g.sessions.ResolveSession(token)
	if !ok {
		http.Error(w, "invalid session token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Warn("upgrade failed", "err", err)
		return
	}

	c := &Connection{
		userID: strconv.FormatUint(accountID, 10),
		name:   username,
		roomID: roomID,
		conn:   conn,
		send:   make(chan []byte, 256),
		gw:     g,
	}

	g.mu.Lock()
	if g.members[roomID] == nil {
		g.members[roomID] = make(map[*Connection]bool)
	}
	g.members[roomID][c] = true
	total := len(g.members[roomID])
	g.mu.Unlock()

	g.log.Info("member connected", "room", roomID, "user", c.userID, "members", total)

	go c.writePump()
	go c.readPump()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	rm := g.room(roomID)
	if err := rm.Join(ctx, c.userID, c.name); err != nil {
		c.sendEnvelope(codec.GameError(roomID, err))
		return
	}
	if view, err := rm.View(ctx, c.userID); err == nil {
		c.sendEnvelope(codec.GameState(roomID, view))
	}
}

func (g *Gateway) removeConnection(c *Connection) {
	g.mu.Lock()
	if conns := g.members[c.roomID]; conns != nil {
		delete(conns, c)
		if len(conns) == 0 {
			delete(g.members, c.roomID)
		}
	}
	g.mu.Unlock()
	g.log.Info("member disconnected", "room", c.roomID, "user", c.userID)
}

// roomMembers snapshots the connections currently bound to a room.
func (g *Gateway) roomMembers(roomID string) []*Connection {
	g.mu.RLock()
	defer g.mu.RUnlock()
	conns := make([]*Connection, 0, len(g.members[roomID]))
	for c := range g.members[roomID] {
		conns = append(conns, c)
	}
	return conns
}

// PublishState fans the new state out with a per-viewer filtered copy.
func (g *Gateway) PublishState(roomID string, gm *game.Game) {
	for _, c := range g.roomMembers(roomID) {
		c.sendEnvelope(codec.GameState(roomID, gm.ViewFor(c.userID)))
	}
}

// PublishPrivateStateAvailable tells members to pull their own views.
func (g *Gateway) PublishPrivateStateAvailable(roomID string) {
	env := codec.PrivateStateAvailable(roomID)
	for _, c := range g.roomMembers(roomID) {
		c.sendEnvelope(env)
	}
}

// PublishPlayersJoined announces the pre-start roster.
func (g *Gateway) PublishPlayersJoined(roomID string, pending []game.PendingPlayer) {
	env := codec.PlayersJoined(roomID, pending)
	for _, c := range g.roomMembers(roomID) {
		c.sendEnvelope(env)
	}
}

func (c *Connection) sendEnvelope(env codec.ServerEnvelope) {
	data, err := json.Marshal(env)
	if err != nil {
		c.gw.log.Error("marshal envelope", "err", err)
		return
	}
	select {
	case c.send <- data:
	default:
		// Slow consumer; drop rather than stall the room.
	}
}

func (c *Connection) readPump() {
	defer func() {
		c.gw.removeConnection(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.gw.log.Warn("read error", "user", c.userID, "err", err)
			}
			return
		}
		c.handleMessage(message)
	}
}

func (c *Connection) handleMessage(data []byte) {
	env, err := codec.DecodeClient(data)
	if err != nil {
		c.sendEnvelope(codec.GameError(c.roomID, err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rm := c.gw.room(c.roomID)

	switch env.Type {
	case codec.ClientJoin:
		err = rm.Join(ctx, c.userID, c.name)
	case codec.ClientStart:
		err = rm.Start(ctx, c.userID)
	case codec.ClientDeal:
		err = rm.Deal(ctx, c.userID)
	case codec.ClientReset:
		err = rm.Reset(ctx, c.userID)
	case codec.ClientMove:
		err = rm.Move(ctx, c.userID, *env.Move)
	case codec.ClientFetchState:
		var view *game.Game
		view, err = rm.View(ctx, c.userID)
		if err == nil {
			c.sendEnvelope(codec.GameState(c.roomID, view))
		}
	}
	if err != nil {
		// Rejections go to the offending member only.
		c.sendEnvelope(codec.GameError(c.roomID, err))
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
