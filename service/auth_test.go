package service

import (
	"testing"
	"time"

	"github.com/beka-birhanu/maze3d/infrastruture/token"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	tokenizer := token.NewJwtService("test-secret", "maze3d")
	auth, err := NewAuthService(tokenizer, time.Minute)
	require.NoError(t, err)

	t.Run("Issued token resolves to its session", func(t *testing.T) {
		id := uuid.New()
		tok, err := auth.Issue(id)
		require.NoError(t, err)

		got, err := auth.Authenticate(tok)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	})

	t.Run("Garbage token", func(t *testing.T) {
		_, err := auth.Authenticate("garbage")
		assert.ErrorIs(t, err, ErrInvalidSessionToken)
	})

	t.Run("Token without a session claim", func(t *testing.T) {
		tok, err := tokenizer.Generate(map[string]interface{}{"user": "x"}, time.Minute)
		require.NoError(t, err)
		_, err = auth.Authenticate(tok)
		assert.ErrorIs(t, err, ErrInvalidSessionToken)
	})

	t.Run("Expired token", func(t *testing.T) {
		expired, err := NewAuthService(tokenizer, time.Nanosecond)
		require.NoError(t, err)
		tok, err := expired.Issue(uuid.New())
		require.NoError(t, err)
		time.Sleep(1100 * time.Millisecond)
		_, err = auth.Authenticate(tok)
		assert.ErrorIs(t, err, ErrInvalidSessionToken)
	})

	t.Run("Missing tokenizer", func(t *testing.T) {
		_, err := NewAuthService(nil, time.Minute)
		assert.ErrorIs(t, err, ErrMissingDependency)
	})
}
