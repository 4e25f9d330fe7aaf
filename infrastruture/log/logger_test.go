package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Writes the coloured name and message", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("APP", "\033[32m", &buf)
		require.NoError(t, err)

		l.Infow("maze generated", "width", 16)
		require.NoError(t, l.Sync())

		out := buf.String()
		assert.Contains(t, out, "\033[32m[APP]")
		assert.Contains(t, out, "maze generated")
		assert.Contains(t, out, "width")
	})

	t.Run("Nil writer", func(t *testing.T) {
		_, err := New("APP", "", nil)
		assert.ErrorIs(t, err, ErrNoWriter)
	})

	t.Run("Tees into the rotating file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		SetFile(FileOptions{Path: path, MaxSizeMB: 1})
		defer func() {
			_ = CloseFile()
			SetFile(FileOptions{})
		}()

		var buf bytes.Buffer
		l, err := New("SESSION-MANAGER", "\033[36m", &buf)
		require.NoError(t, err)
		l.Warn("reset requested")
		require.NoError(t, l.Sync())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "[SESSION-MANAGER]")
		assert.NotContains(t, string(data), "\033[36m")
		assert.Contains(t, buf.String(), "reset requested")
	})
}
