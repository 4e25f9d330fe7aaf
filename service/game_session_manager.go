package service

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/beka-birhanu/maze3d/game"
	"github.com/beka-birhanu/maze3d/infrastruture/metrics"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultMaxSessions = 256

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrTooManySessions   = errors.New("too many sessions")
	ErrMissingDependency = errors.New("missing dependency")
)

// GameSessionManager keeps the live games, one per session ID.
type GameSessionManager struct {
	sessions    map[uuid.UUID]*game.Game
	gameConfig  game.Config
	seed        func() int64
	maxSessions int
	logger      *zap.SugaredLogger
	metrics     *metrics.Game
	sync.RWMutex
}

// Config holds the dependencies of a GameSessionManager.
type Config struct {
	GameConfig  game.Config        // Tuning of every new game
	Seed        func() int64       // Seed source for new and reset mazes; defaults to the clock
	MaxSessions int                // Upper bound on live sessions; defaults to 256
	Logger      *zap.SugaredLogger // Required
	Metrics     *metrics.Game      // Required
}

// NewGameSessionManager creates a manager with no sessions.
func NewGameSessionManager(c *Config) (*GameSessionManager, error) {
	if c.Logger == nil || c.Metrics == nil {
		return nil, ErrMissingDependency
	}

	seed := c.Seed
	if seed == nil {
		seed = func() int64 { return time.Now().UnixNano() }
	}
	maxSessions := c.MaxSessions
	if maxSessions <= 0 {
		maxSessions = defaultMaxSessions
	}

	return &GameSessionManager{
		sessions:    make(map[uuid.UUID]*game.Game),
		gameConfig:  c.GameConfig,
		seed:        seed,
		maxSessions: maxSessions,
		logger:      c.Logger,
		metrics:     c.Metrics,
	}, nil
}

// NewSession generates a maze for a new session and returns its ID.
// The maze is generated before the session map is locked.
func (g *GameSessionManager) NewSession() (uuid.UUID, error) {
	if g.Count() >= g.maxSessions {
		return uuid.Nil, g.refuse()
	}

	seed := g.seed()
	start := time.Now()
	gm, err := game.New(g.gameConfig, rand.New(rand.NewSource(seed)))
	if err != nil {
		g.logger.Errorw("creating game", "error", err)
		return uuid.Nil, err
	}
	g.metrics.ObserveGeneration(time.Since(start).Seconds())

	g.Lock()
	defer g.Unlock()

	// Others may have filled the last slots while this maze was generated.
	if len(g.sessions) >= g.maxSessions {
		return uuid.Nil, g.refuse()
	}

	sessionID := uuid.New()
	for {
		if _, ok := g.sessions[sessionID]; !ok {
			break
		}
		sessionID = uuid.New()
	}
	g.sessions[sessionID] = gm
	g.metrics.SessionStarted()

	g.logger.Infow("started new game session", "session", sessionID, "seed", seed,
		"width", g.gameConfig.Width, "height", g.gameConfig.Height)
	return sessionID, nil
}

func (g *GameSessionManager) refuse() error {
	g.logger.Errorw("refusing new session", "max", g.maxSessions, "error", ErrTooManySessions)
	return ErrTooManySessions
}

// session looks up a live game.
func (g *GameSessionManager) session(id uuid.UUID) (*game.Game, error) {
	g.RLock()
	defer g.RUnlock()
	gm, ok := g.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return gm, nil
}

// Snapshot returns the current state of a session.
func (g *GameSessionManager) Snapshot(id uuid.UUID) (game.State, error) {
	gm, err := g.session(id)
	if err != nil {
		return game.State{}, err
	}
	return gm.Snapshot(), nil
}

// Move applies a movement held for dt seconds.
func (g *GameSessionManager) Move(id uuid.UUID, d game.Direction, dt float32) (game.Step, error) {
	gm, err := g.session(id)
	if err != nil {
		return game.Step{}, err
	}

	step, err := gm.Move(d, dt)
	if err != nil {
		return game.Step{}, err
	}

	rejectedX := step.Requested.X() != 0 && step.Allowed.X() == 0
	rejectedZ := step.Requested.Z() != 0 && step.Allowed.Z() == 0
	g.metrics.ObserveStep(d.String(), rejectedX, rejectedZ)
	return step, nil
}

// Displace resolves a raw displacement supplied by an input layer that combines keys itself.
func (g *GameSessionManager) Displace(id uuid.UUID, delta mgl32.Vec3) (game.Step, error) {
	gm, err := g.session(id)
	if err != nil {
		return game.Step{}, err
	}

	step, err := gm.Displace(delta)
	if err != nil {
		return game.Step{}, err
	}
	rejectedX := step.Requested.X() != 0 && step.Allowed.X() == 0
	rejectedZ := step.Requested.Z() != 0 && step.Allowed.Z() == 0
	g.metrics.ObserveStep("free", rejectedX, rejectedZ)
	return step, nil
}

// Rotate turns the player's view, keeping the pitch constrained.
func (g *GameSessionManager) Rotate(id uuid.UUID, dx, dy float32) error {
	gm, err := g.session(id)
	if err != nil {
		return err
	}
	return gm.Rotate(dx, dy, true)
}

// Zoom changes the player's field of view.
func (g *GameSessionManager) Zoom(id uuid.UUID, dy float32) error {
	gm, err := g.session(id)
	if err != nil {
		return err
	}
	return gm.ZoomBy(dy)
}

// Reset replaces the maze of a session and returns the seed used.
func (g *GameSessionManager) Reset(id uuid.UUID, seed *int64) (int64, error) {
	gm, err := g.session(id)
	if err != nil {
		return 0, err
	}

	s := g.seed()
	if seed != nil {
		s = *seed
	}

	start := time.Now()
	if err := gm.Reset(rand.New(rand.NewSource(s))); err != nil {
		g.logger.Errorw("resetting maze", "session", id, "error", err)
		return 0, err
	}
	g.metrics.ObserveGeneration(time.Since(start).Seconds())

	g.logger.Infow("reset maze", "session", id, "seed", s)
	return s, nil
}

// End removes a session.
func (g *GameSessionManager) End(id uuid.UUID) error {
	g.Lock()
	defer g.Unlock()
	if _, ok := g.sessions[id]; !ok {
		return ErrSessionNotFound
	}

	delete(g.sessions, id)
	g.metrics.SessionEnded()
	g.logger.Infow("ended game session", "session", id)
	return nil
}

// Count returns the number of live sessions.
func (g *GameSessionManager) Count() int {
	g.RLock()
	defer g.RUnlock()
	return len(g.sessions)
}

// StopAll drops every session.
func (g *GameSessionManager) StopAll() {
	g.Lock()
	defer g.Unlock()

	for id := range g.sessions {
		delete(g.sessions, id)
		g.metrics.SessionEnded()
	}
	g.logger.Info("stopped all game sessions")
}
