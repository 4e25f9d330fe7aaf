package gameapi

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/beka-birhanu/maze3d/game"
	"github.com/beka-birhanu/maze3d/service"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	streamReadLimit   = 1 << 16
	streamIdleTimeout = 60 * time.Second
	streamWriteWait   = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// stream upgrades to a websocket on which every input message is answered
// with the resulting state.
func (sc *SessionController) stream(ctx *gin.Context) {
	id := sessionID(ctx)
	if _, err := sc.gameSessionManager.Snapshot(id); err != nil {
		sc.fail(ctx, err)
		return
	}

	ws, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		sc.logger.Warnw("websocket upgrade", "session", id, "error", err)
		return
	}
	defer ws.Close()

	ws.SetReadLimit(streamReadLimit)
	_ = ws.SetReadDeadline(time.Now().Add(streamIdleTimeout))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(streamIdleTimeout))
	})

	sc.logger.Infow("input stream opened", "session", id)
	for {
		var msg StreamMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				sc.logger.Warnw("input stream closed", "session", id, "error", err)
			}
			return
		}
		_ = ws.SetReadDeadline(time.Now().Add(streamIdleTimeout))

		reply, err := sc.apply(id, msg)
		if err != nil {
			reply = StreamReply{Error: err.Error()}
		}

		_ = ws.SetWriteDeadline(time.Now().Add(streamWriteWait))
		if err := ws.WriteJSON(reply); err != nil {
			return
		}
		if errors.Is(err, service.ErrSessionNotFound) {
			return
		}
	}
}

// apply runs one input message against a session.
func (sc *SessionController) apply(id uuid.UUID, msg StreamMessage) (StreamReply, error) {
	var reply StreamReply
	if err := binding.Validator.ValidateStruct(&msg); err != nil {
		return reply, err
	}

	switch strings.ToLower(msg.Type) {
	case "move":
		if msg.DT <= 0 {
			return reply, fmt.Errorf("%w: move needs a positive dt", game.ErrInvalidInput)
		}
		d, err := game.ParseDirection(msg.Direction)
		if err != nil {
			return reply, err
		}
		step, err := sc.gameSessionManager.Move(id, d, msg.DT)
		if err != nil {
			return reply, err
		}
		reply.Allowed = step.Allowed
	case "displace":
		step, err := sc.gameSessionManager.Displace(id, mgl32.Vec3(msg.Delta))
		if err != nil {
			return reply, err
		}
		reply.Allowed = step.Allowed
	case "rotate":
		if err := sc.gameSessionManager.Rotate(id, msg.DX, msg.DY); err != nil {
			return reply, err
		}
	case "zoom":
		if err := sc.gameSessionManager.Zoom(id, msg.DY); err != nil {
			return reply, err
		}
	case "state":
	default:
		return reply, errUnknownMessage
	}

	s, err := sc.gameSessionManager.Snapshot(id)
	if err != nil {
		return reply, err
	}
	state := toStateResponse(s)
	reply.State = &state
	return reply, nil
}
