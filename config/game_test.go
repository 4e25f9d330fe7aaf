package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGame(t *testing.T) {
	t.Run("Empty path gives defaults", func(t *testing.T) {
		cfg, err := LoadGame("")
		require.NoError(t, err)
		assert.Equal(t, DefaultGame(), cfg)
	})

	t.Run("Partial file keeps remaining defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "game.yaml")
		data := []byte("maze:\n  width: 30\n  height: 20\nplayer:\n  speed: 4\n")
		require.NoError(t, os.WriteFile(path, data, 0o600))

		cfg, err := LoadGame(path)
		require.NoError(t, err)
		assert.Equal(t, 30, cfg.Maze.Width)
		assert.Equal(t, 20, cfg.Maze.Height)
		assert.Equal(t, float32(4), cfg.Player.Speed)
		assert.Equal(t, DefaultGame().World, cfg.World)
		assert.Equal(t, DefaultGame().Player.Sensitivity, cfg.Player.Sensitivity)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadGame(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("Malformed YAML", func(t *testing.T) {
		_, err := ParseGame([]byte("maze: [1, 2"))
		assert.Error(t, err)
	})

	t.Run("Invalid values", func(t *testing.T) {
		for _, doc := range []string{
			"maze:\n  width: 0\n",
			"world:\n  wall_size: -1\n",
			"player:\n  speed: 0\n",
		} {
			_, err := ParseGame([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalidGameConfig, doc)
		}
	})
}
