package codec

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/benhickson/goroom-poker-njs/game"
)

func TestDecodeClientCommands(t *testing.T) {
	env, err := DecodeClient([]byte(`{"type":"join"}`))
	require.NoError(t, err)
	require.Equal(t, ClientJoin, env.Type)

	env, err = DecodeClient([]byte(`{"type":"move","move":{"type":"raiseBet","amount":500}}`))
	require.NoError(t, err)
	require.Equal(t, game.MoveRaiseBet, env.Move.Type)
	require.Equal(t, int64(500), env.Move.Amount)
}

func TestDecodeClientRejectsMalformed(t *testing.T) {
	cases := []string{
		`{`,
		`{"type":"dance"}`,
		`{"type":"move"}`,
		`{"type":"move","move":{}}`,
		`{"type":"deal","move":{"type":"fold"}}`,
	}
	for _, raw := range cases {
		_, err := DecodeClient([]byte(raw))
		require.Error(t, err, "input %s", raw)
	}
}

func TestServerEnvelopes(t *testing.T) {
	env := PrivateStateAvailable("42")
	require.Equal(t, ServerPrivateAvailable, env.Type)
	require.Equal(t, "42", env.RoomID)
	require.NotZero(t, env.TsMs)
	b, err := json.Marshal(env)
	require.NoError(t, err)
	require.NotContains(t, string(b), `"game"`)

	env = GameError("42", errors.New("not this player's turn"))
	require.Equal(t, "not this player's turn", env.Error)

	env = PlayersJoined("42", []game.PendingPlayer{{ID: "p1", DisplayName: "Alice"}})
	b, err = json.Marshal(env)
	require.NoError(t, err)
	require.Contains(t, string(b), `"display_name":"Alice"`)
}
