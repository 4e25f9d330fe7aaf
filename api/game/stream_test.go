package gameapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/beka-birhanu/maze3d/game"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialStream(t *testing.T, srv *httptest.Server, id, token string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/sessions/" + id + "/ws"
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	return websocket.DefaultDialer.Dial(url, header)
}

func TestStream(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t))
	defer srv.Close()
	s := createSession(t, srv.Config.Handler)

	ws, _, err := dialStream(t, srv, s.ID, s.Token)
	require.NoError(t, err)
	defer ws.Close()

	send := func(t *testing.T, msg StreamMessage) StreamReply {
		t.Helper()
		require.NoError(t, ws.WriteJSON(msg))
		var reply StreamReply
		require.NoError(t, ws.ReadJSON(&reply))
		return reply
	}

	t.Run("State", func(t *testing.T) {
		reply := send(t, StreamMessage{Type: "state"})
		require.NotNil(t, reply.State)
		assert.Empty(t, reply.Error)
		assert.Equal(t, 16, reply.State.Width)
	})

	t.Run("Move", func(t *testing.T) {
		reply := send(t, StreamMessage{Type: "move", Direction: "up", DT: 1})
		require.NotNil(t, reply.State)
		assert.InDelta(t, game.DefaultSpeed, reply.Allowed[1], 1e-5)
	})

	t.Run("Displace", func(t *testing.T) {
		reply := send(t, StreamMessage{Type: "displace", Delta: [3]float32{0, -1, 0}})
		require.NotNil(t, reply.State)
		assert.Equal(t, float32(-1), reply.Allowed[1])
	})

	t.Run("Rotate and zoom", func(t *testing.T) {
		reply := send(t, StreamMessage{Type: "rotate", DY: -5000})
		require.NotNil(t, reply.State)
		assert.Equal(t, float32(-89), reply.State.Pitch)

		reply = send(t, StreamMessage{Type: "zoom", DY: 5})
		require.NotNil(t, reply.State)
		assert.Equal(t, float32(40), reply.State.Zoom)
	})

	t.Run("Bad input keeps the stream open", func(t *testing.T) {
		reply := send(t, StreamMessage{Type: "jump"})
		assert.Equal(t, errUnknownMessage.Error(), reply.Error)

		reply = send(t, StreamMessage{Type: "move", Direction: "sideways", DT: 1})
		assert.Contains(t, reply.Error, game.ErrUnknownDirection.Error())

		reply = send(t, StreamMessage{Type: "state"})
		assert.NotNil(t, reply.State)
	})

	t.Run("Out of range values are refused", func(t *testing.T) {
		before := send(t, StreamMessage{Type: "state"})
		require.NotNil(t, before.State)

		for _, msg := range []StreamMessage{
			{Type: "move", Direction: "up", DT: 1e38},
			{Type: "move", Direction: "up"},
			{Type: "displace", Delta: [3]float32{0, 3e38, 0}},
			{Type: "rotate", DX: 3e38},
			{Type: "zoom", DY: -3e38},
		} {
			reply := send(t, msg)
			assert.NotEmpty(t, reply.Error, "%+v", msg)
			assert.Nil(t, reply.State)
		}

		after := send(t, StreamMessage{Type: "state"})
		require.NotNil(t, after.State)
		assert.Equal(t, before.State.Position, after.State.Position)
		assert.Equal(t, before.State.Yaw, after.State.Yaw)
	})
}

func TestStreamAuthorization(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t))
	defer srv.Close()
	s := createSession(t, srv.Config.Handler)

	_, resp, err := dialStream(t, srv, s.ID, "")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStreamMessageEncoding(t *testing.T) {
	raw, err := json.Marshal(StreamMessage{Type: "state"})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"delta":[0,0,0]`)
	assert.NotContains(t, string(raw), `"dt"`)
}
