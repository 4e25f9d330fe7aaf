// Package gameapi provides the request and response bodies of the session routes.
package gameapi

import (
	"errors"

	"github.com/beka-birhanu/maze3d/game"
)

var errUnknownMessage = errors.New("unknown message type")

// NewSessionResponse is returned when a session is created.
type NewSessionResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

// MoveRequest asks to move in a direction for dt seconds.
type MoveRequest struct {
	Direction string  `json:"direction" binding:"required"`
	DT        float32 `json:"dt" binding:"required,gt=0,lte=1"`
}

// MoveResponse reports what was asked for and what the walls allowed.
type MoveResponse struct {
	Requested [3]float32    `json:"requested"`
	Allowed   [3]float32    `json:"allowed"`
	State     StateResponse `json:"state"`
}

// RotateRequest is a look offset in input units.
type RotateRequest struct {
	DX float32 `json:"dx" binding:"gte=-10000,lte=10000"`
	DY float32 `json:"dy" binding:"gte=-10000,lte=10000"`
}

// ZoomRequest is a scroll offset.
type ZoomRequest struct {
	DY float32 `json:"dy" binding:"gte=-100,lte=100"`
}

// ResetRequest asks for a new maze. Without a seed one is picked by the server.
type ResetRequest struct {
	Seed *int64 `json:"seed"`
}

// ResetResponse reports the seed the new maze was built from.
type ResetResponse struct {
	Seed  int64         `json:"seed"`
	State StateResponse `json:"state"`
}

// StreamMessage is one input sent over the session websocket.
// Type is one of move, displace, rotate, zoom or state.
// Values are bounded like their REST counterparts; a move needs a positive dt.
type StreamMessage struct {
	Type      string     `json:"type" binding:"required"`
	Direction string     `json:"direction,omitempty"`
	DT        float32    `json:"dt,omitempty" binding:"gte=0,lte=1"`
	DX        float32    `json:"dx,omitempty" binding:"gte=-10000,lte=10000"`
	DY        float32    `json:"dy,omitempty" binding:"gte=-10000,lte=10000"`
	Delta     [3]float32 `json:"delta" binding:"dive,gte=-10,lte=10"`
}

// StreamReply answers a StreamMessage.
type StreamReply struct {
	Allowed [3]float32     `json:"allowed"`
	State   *StateResponse `json:"state,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// StateResponse is the JSON view of a game.State.
type StateResponse struct {
	Generation int64       `json:"generation"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Position   [3]float32  `json:"position"`
	Front      [3]float32  `json:"front"`
	Yaw        float32     `json:"yaw"`
	Pitch      float32     `json:"pitch"`
	Zoom       float32     `json:"zoom"`
	CellX      int         `json:"cell_x"`
	CellY      int         `json:"cell_y"`
	View       [16]float32 `json:"view"`
}

// MazeResponse is the wall grid of a session.
type MazeResponse struct {
	Generation int64    `json:"generation"`
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	Walls      [][]bool `json:"walls"`
}

func toStateResponse(s game.State) StateResponse {
	return StateResponse{
		Generation: s.Generation,
		Width:      s.Grid.Width(),
		Height:     s.Grid.Height(),
		Position:   s.Position,
		Front:      s.Front,
		Yaw:        s.Yaw,
		Pitch:      s.Pitch,
		Zoom:       s.Zoom,
		CellX:      s.Cell.X,
		CellY:      s.Cell.Y,
		View:       s.View,
	}
}

func toMazeResponse(s game.State) MazeResponse {
	return MazeResponse{
		Generation: s.Generation,
		Width:      s.Grid.Width(),
		Height:     s.Grid.Height(),
		Walls:      s.Grid.Matrix(),
	}
}
