package service

import (
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/beka-birhanu/maze3d/game"
	logger "github.com/beka-birhanu/maze3d/infrastruture/log"
	"github.com/beka-birhanu/maze3d/infrastruture/metrics"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, maxSessions int) *GameSessionManager {
	t.Helper()
	var seed atomic.Int64
	gsm, err := NewGameSessionManager(&Config{
		GameConfig:  game.DefaultConfig(),
		Seed:        func() int64 { return seed.Add(1) },
		MaxSessions: maxSessions,
		Logger:      logger.Nop(),
		Metrics:     metrics.NewGame(prometheus.NewRegistry()),
	})
	require.NoError(t, err)
	return gsm
}

func TestNewGameSessionManager(t *testing.T) {
	_, err := NewGameSessionManager(&Config{GameConfig: game.DefaultConfig()})
	assert.ErrorIs(t, err, ErrMissingDependency)
}

func TestSessionLifecycle(t *testing.T) {
	gsm := newTestManager(t, 0)

	id, err := gsm.NewSession()
	require.NoError(t, err)
	assert.Equal(t, 1, gsm.Count())

	t.Run("Snapshot of a fresh session", func(t *testing.T) {
		state, err := gsm.Snapshot(id)
		require.NoError(t, err)
		assert.NoError(t, state.Grid.Validate())
		assert.Equal(t, int64(1), state.Generation)
	})

	t.Run("Move and rotate", func(t *testing.T) {
		step, err := gsm.Move(id, game.Up, 1)
		require.NoError(t, err)
		assert.InDelta(t, game.DefaultSpeed, step.Allowed.Y(), 1e-6)

		require.NoError(t, gsm.Rotate(id, 100, 0))
		require.NoError(t, gsm.Zoom(id, 5))
		state, err := gsm.Snapshot(id)
		require.NoError(t, err)
		assert.Equal(t, float32(40), state.Zoom)
	})

	t.Run("Displace passes height through", func(t *testing.T) {
		step, err := gsm.Displace(id, mgl32.Vec3{0, -0.5, 0})
		require.NoError(t, err)
		assert.Equal(t, mgl32.Vec3{0, -0.5, 0}, step.Allowed)

		_, err = gsm.Displace(uuid.New(), mgl32.Vec3{})
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("Reset with an explicit seed is reproducible", func(t *testing.T) {
		seed := int64(99)
		used, err := gsm.Reset(id, &seed)
		require.NoError(t, err)
		assert.Equal(t, seed, used)
		first, _ := gsm.Snapshot(id)

		_, err = gsm.Reset(id, &seed)
		require.NoError(t, err)
		second, _ := gsm.Snapshot(id)

		assert.Equal(t, first.Grid.Matrix(), second.Grid.Matrix())
		assert.Equal(t, first.Generation+1, second.Generation)
	})

	t.Run("Reset without a seed uses the seed source", func(t *testing.T) {
		used, err := gsm.Reset(id, nil)
		require.NoError(t, err)
		assert.NotZero(t, used)
	})

	t.Run("End removes the session", func(t *testing.T) {
		require.NoError(t, gsm.End(id))
		assert.Equal(t, 0, gsm.Count())
		assert.ErrorIs(t, gsm.End(id), ErrSessionNotFound)
	})
}

func TestUnknownSession(t *testing.T) {
	gsm := newTestManager(t, 0)
	id := uuid.New()

	_, err := gsm.Snapshot(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = gsm.Move(id, game.Forward, 1)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, gsm.Rotate(id, 1, 1), ErrSessionNotFound)
	assert.ErrorIs(t, gsm.Zoom(id, 1), ErrSessionNotFound)
	_, err = gsm.Reset(id, nil)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionLimit(t *testing.T) {
	gsm := newTestManager(t, 2)

	_, err := gsm.NewSession()
	require.NoError(t, err)
	_, err = gsm.NewSession()
	require.NoError(t, err)
	_, err = gsm.NewSession()
	assert.ErrorIs(t, err, ErrTooManySessions)

	gsm.StopAll()
	assert.Equal(t, 0, gsm.Count())
	_, err = gsm.NewSession()
	assert.NoError(t, err)
}

func TestSessionsAreIndependent(t *testing.T) {
	gsm := newTestManager(t, 0)
	a, err := gsm.NewSession()
	require.NoError(t, err)
	b, err := gsm.NewSession()
	require.NoError(t, err)

	_, err = gsm.Move(a, game.Up, 1)
	require.NoError(t, err)

	sa, _ := gsm.Snapshot(a)
	sb, _ := gsm.Snapshot(b)
	assert.NotEqual(t, sa.Position.Y(), sb.Position.Y())
	assert.NotSame(t, sa.Grid, sb.Grid)
}

func TestNewSessionDoesNotBlockLookups(t *testing.T) {
	release := make(chan struct{})
	generating := make(chan struct{}, 1)
	blocking := false

	gsm, err := NewGameSessionManager(&Config{
		GameConfig: game.DefaultConfig(),
		Seed: func() int64 {
			if blocking {
				generating <- struct{}{}
				<-release
			}
			return 1
		},
		Logger:  logger.Nop(),
		Metrics: metrics.NewGame(prometheus.NewRegistry()),
	})
	require.NoError(t, err)

	existing, err := gsm.NewSession()
	require.NoError(t, err)
	blocking = true

	done := make(chan error, 1)
	go func() {
		_, err := gsm.NewSession()
		done <- err
	}()
	<-generating

	looked := make(chan error, 1)
	go func() {
		_, err := gsm.Snapshot(existing)
		looked <- err
	}()

	select {
	case err := <-looked:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("lookup waited for a new session to be generated")
	}

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 2, gsm.Count())
}

func TestConcurrentNewSessionsRespectTheLimit(t *testing.T) {
	gsm := newTestManager(t, 5)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		refused int
	)
	for n := 0; n < 20; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := gsm.NewSession()
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				created++
			} else if assert.ErrorIs(t, err, ErrTooManySessions) {
				refused++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, created)
	assert.Equal(t, 15, refused)
	assert.Equal(t, 5, gsm.Count())
}

func TestInvalidInputLeavesSessionUsable(t *testing.T) {
	gsm := newTestManager(t, 0)
	id, err := gsm.NewSession()
	require.NoError(t, err)

	_, err = gsm.Move(id, game.Up, float32(math.Inf(1)))
	assert.ErrorIs(t, err, game.ErrInvalidInput)
	_, err = gsm.Displace(id, mgl32.Vec3{float32(math.NaN()), 0, 0})
	assert.ErrorIs(t, err, game.ErrInvalidInput)
	assert.ErrorIs(t, gsm.Rotate(id, float32(math.Inf(-1)), 0), game.ErrInvalidInput)
	assert.ErrorIs(t, gsm.Zoom(id, float32(math.NaN())), game.ErrInvalidInput)

	state, err := gsm.Snapshot(id)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(float64(state.Front.X())))
}
