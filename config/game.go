package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrInvalidGameConfig = errors.New("invalid game config")

// Game holds the tuning of mazes and players.
type Game struct {
	Maze   MazeConfig   `yaml:"maze"`
	World  WorldConfig  `yaml:"world"`
	Player PlayerConfig `yaml:"player"`
}

// MazeConfig sets the maze dimensions in cells.
type MazeConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// WorldConfig sets the world-unit constants.
type WorldConfig struct {
	WallSize      float32 `yaml:"wall_size"`
	WallThickness float32 `yaml:"wall_thickness"`
	Margin        float32 `yaml:"margin"`
}

// PlayerConfig sets the player handling.
type PlayerConfig struct {
	Speed       float32 `yaml:"speed"`
	Sensitivity float32 `yaml:"sensitivity"`
}

// DefaultGame returns the stock tuning.
func DefaultGame() Game {
	return Game{
		Maze:   MazeConfig{Width: 16, Height: 12},
		World:  WorldConfig{WallSize: 1.5, WallThickness: 0.2, Margin: 0.1},
		Player: PlayerConfig{Speed: 2.5, Sensitivity: 0.1},
	}
}

// LoadGame reads the YAML tuning file at path over the defaults.
// An empty path returns the defaults.
func LoadGame(path string) (Game, error) {
	cfg := DefaultGame()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Game{}, fmt.Errorf("reading game config: %w", err)
	}
	return ParseGame(data)
}

// ParseGame decodes YAML tuning over the defaults and validates it.
func ParseGame(data []byte) (Game, error) {
	cfg := DefaultGame()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Game{}, fmt.Errorf("decoding game config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Game{}, err
	}
	return cfg, nil
}

// Validate rejects tuning the maze and motion code cannot work with.
func (g Game) Validate() error {
	switch {
	case g.Maze.Width < 1 || g.Maze.Height < 1:
		return fmt.Errorf("%w: maze %dx%d", ErrInvalidGameConfig, g.Maze.Width, g.Maze.Height)
	case g.World.WallSize <= 0 || g.World.WallThickness < 0 || g.World.Margin < 0:
		return fmt.Errorf("%w: world %+v", ErrInvalidGameConfig, g.World)
	case g.Player.Speed <= 0 || g.Player.Sensitivity <= 0:
		return fmt.Errorf("%w: player %+v", ErrInvalidGameConfig, g.Player)
	}
	return nil
}
