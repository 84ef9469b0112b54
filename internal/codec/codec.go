// Package codec defines the JSON wire protocol between clients and the
// websocket gateway.
package codec

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/benhickson/goroom-poker-njs/game"
)

// Client command types.
const (
	ClientJoin       = "join"
	ClientStart      = "start"
	ClientDeal       = "deal"
	ClientReset      = "reset"
	ClientFetchState = "fetch_state"
	ClientMove       = "move"
)

// Server event types.
const (
	ServerGameState        = "game_state"
	ServerPrivateAvailable = "private_state_available"
	ServerPlayersJoined    = "players_joined"
	ServerGameError        = "game_error"
)

// ClientEnvelope is one inbound command.
type ClientEnvelope struct {
	Type string     `json:"type"`
	Move *game.Move `json:"move,omitempty"`
}

// ServerEnvelope is one outbound event. Game carries the per-viewer
// filtered state for game_state; PendingPlayers rides players_joined;
// Error rides game_error.
type ServerEnvelope struct {
	Type           string               `json:"type"`
	TsMs           int64                `json:"ts_ms"`
	RoomID         string               `json:"room_id,omitempty"`
	Game           *game.Game           `json:"game,omitempty"`
	PendingPlayers []game.PendingPlayer `json:"pending_players,omitempty"`
	Error          string               `json:"error,omitempty"`
}

// DecodeClient parses and validates an inbound command frame.
func DecodeClient(data []byte) (*ClientEnvelope, error) {
	var env ClientEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("codec: bad frame: %w", err)
	}
	switch env.Type {
	case ClientJoin, ClientStart, ClientDeal, ClientReset, ClientFetchState:
		if env.Move != nil {
			return nil, fmt.Errorf("codec: %s carries no move", env.Type)
		}
	case ClientMove:
		if env.Move == nil || env.Move.Type == "" {
			return nil, fmt.Errorf("codec: move command without a move")
		}
	default:
		return nil, fmt.Errorf("codec: unknown command %q", env.Type)
	}
	return &env, nil
}

func stamp(env ServerEnvelope) ServerEnvelope {
	env.TsMs = time.Now().UnixMilli()
	return env
}

// GameState wraps a filtered snapshot for one viewer.
func GameState(roomID string, g *game.Game) ServerEnvelope {
	return stamp(ServerEnvelope{Type: ServerGameState, RoomID: roomID, Game: g})
}

// PrivateStateAvailable tells room members to re-request their own
// filtered snapshot instead of receiving private data in a broadcast.
func PrivateStateAvailable(roomID string) ServerEnvelope {
	return stamp(ServerEnvelope{Type: ServerPrivateAvailable, RoomID: roomID})
}

// PlayersJoined carries the pending roster before the game starts.
func PlayersJoined(roomID string, pending []game.PendingPlayer) ServerEnvelope {
	return stamp(ServerEnvelope{Type: ServerPlayersJoined, RoomID: roomID, PendingPlayers: pending})
}

// GameError reports a rejected command to the originating caller only.
func GameError(roomID string, err error) ServerEnvelope {
	return stamp(ServerEnvelope{Type: ServerGameError, RoomID: roomID, Error: err.Error()})
}
