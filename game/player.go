package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Default camera values.
const (
	DefaultSpeed       float32 = 2.5
	DefaultSensitivity float32 = 0.1
	DefaultZoom        float32 = 45
	defaultPitch       float32 = 0

	maxPitch float32 = 89
	minZoom  float32 = 1
	maxZoom  float32 = 45
)

// Player is the first person viewer moving through the maze.
// Front, Right and Up are derived from Yaw and Pitch.
type Player struct {
	Position    mgl32.Vec3
	Front       mgl32.Vec3
	Up          mgl32.Vec3
	Right       mgl32.Vec3
	WorldUp     mgl32.Vec3
	Yaw         float32 // Degrees, 0 faces +x
	Pitch       float32 // Degrees, clamped to +-89 when constrained
	Zoom        float32 // Field of view in degrees
	Speed       float32 // World units per second
	Sensitivity float32 // Degrees per rotation unit
}

// newPlayer creates a player at pos facing yaw.
func newPlayer(pos mgl32.Vec3, yaw, speed, sensitivity float32) Player {
	p := Player{
		Position:    pos,
		WorldUp:     mgl32.Vec3{0, 1, 0},
		Yaw:         yaw,
		Pitch:       defaultPitch,
		Zoom:        DefaultZoom,
		Speed:       speed,
		Sensitivity: sensitivity,
	}
	p.updateVectors()
	return p
}

// ViewMatrix returns the look-at matrix for the current position and orientation.
func (p *Player) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(p.Position, p.Position.Add(p.Front), p.Up)
}

// desiredMovement converts a direction held for dt seconds into a world displacement.
// Forward and backward stay on the horizontal plane regardless of pitch.
func (p *Player) desiredMovement(d Direction, dt float32) mgl32.Vec3 {
	velocity := p.Speed * dt
	front := mgl32.Vec3{p.Front.X(), 0, p.Front.Z()}
	if front.Len() > 0 {
		front = front.Normalize()
	}

	switch d {
	case Forward:
		return front.Mul(velocity)
	case Backward:
		return front.Mul(-velocity)
	case Left:
		return p.Right.Mul(-velocity)
	case Right:
		return p.Right.Mul(velocity)
	case Up:
		return p.WorldUp.Mul(velocity)
	case Down:
		return p.WorldUp.Mul(-velocity)
	default:
		return mgl32.Vec3{}
	}
}

// rotate applies a look offset scaled by the sensitivity.
func (p *Player) rotate(dx, dy float32, constrainPitch bool) {
	p.Yaw = wrapDegrees(p.Yaw + dx*p.Sensitivity)
	p.Pitch += dy * p.Sensitivity

	// Keep the view from flipping over.
	if constrainPitch {
		p.Pitch = mgl32.Clamp(p.Pitch, -maxPitch, maxPitch)
	}
	p.updateVectors()
}

// zoom narrows or widens the field of view.
func (p *Player) zoom(dy float32) {
	p.Zoom = mgl32.Clamp(p.Zoom-dy, minZoom, maxZoom)
}

// updateVectors recalculates Front, Right and Up from the Euler angles.
func (p *Player) updateVectors() {
	yaw := float64(mgl32.DegToRad(p.Yaw))
	pitch := float64(mgl32.DegToRad(p.Pitch))

	front := mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}
	p.Front = front.Normalize()
	p.Right = p.Front.Cross(p.WorldUp).Normalize()
	p.Up = p.Right.Cross(p.Front).Normalize()
}

// wrapDegrees maps an angle into [0, 360).
func wrapDegrees(a float32) float32 {
	w := float32(math.Mod(float64(a), 360))
	if w < 0 {
		w += 360
	}
	if w >= 360 {
		w = 0
	}
	return w
}

// finite reports whether every value is a real number.
func finite(vs ...float32) bool {
	for _, v := range vs {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
