package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// overrides holds the config path and preset chosen on the command line or
// in the settings screen. Games read them on Reset.
var overrides = struct {
	sync.RWMutex
	paths  map[string]string
	preset DifficultyPreset
}{paths: make(map[string]string), preset: DifficultyNormal}

// SetConfigPath sets a custom config file for one game. Empty clears it.
func SetConfigPath(gameID, path string) {
	overrides.Lock()
	defer overrides.Unlock()
	if path == "" {
		delete(overrides.paths, gameID)
		return
	}
	overrides.paths[gameID] = path
}

// SetDifficultyPreset sets the preset applied to every loaded config.
func SetDifficultyPreset(preset DifficultyPreset) {
	overrides.Lock()
	defer overrides.Unlock()
	overrides.preset = preset
}

// CurrentPreset returns the active difficulty preset.
func CurrentPreset() DifficultyPreset {
	overrides.RLock()
	defer overrides.RUnlock()
	return overrides.preset
}

func configPathFor(gameID string) string {
	overrides.RLock()
	defer overrides.RUnlock()
	return overrides.paths[gameID]
}

// Load reads configuration for gameID into a value of type T.
// Search order: customPath -> ~/.arcade/configs/<id>.yaml ->
// ./configs/<id>.yaml -> embedded default -> fallback().
// An unreadable customPath and any malformed file met on the way are
// reported as errors; a usable config is returned either way.
func Load[T any](gameID, customPath string, fallback func() T) (T, error) {
	var cfg T

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fallback(), fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fallback(), fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	filename := gameID + ".yaml"
	// A malformed file is skipped in favour of the next source, but the
	// caller still hears about it.
	var skipped []error
	tryFile := func(path string) bool {
		data, err := os.ReadFile(path)
		if err != nil {
			return false
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			skipped = append(skipped, fmt.Errorf("config: parse %s: %w", path, err))
			cfg = *new(T)
			return false
		}
		return true
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" && tryFile(userCfgPath) {
		return cfg, nil
	}

	// Try local configs directory
	if tryFile(filepath.Join("configs", filename)) {
		return cfg, errors.Join(skipped...)
	}

	// Use embedded default YAML
	if data := GetDefaultYAML(gameID); data != nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, errors.Join(skipped...)
		}
	}
	return fallback(), errors.Join(skipped...)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// loadWithOverrides loads a game config using the registered path and
// applies the active preset to its difficulty block.
func loadWithOverrides[T any](gameID string, fallback func() T, difficulty func(*T) *DifficultyConfig) (T, error) {
	cfg, err := Load(gameID, configPathFor(gameID), fallback)
	ApplyPreset(difficulty(&cfg), CurrentPreset())
	return cfg, err
}

// LoadSnake loads Snake configuration with the active overrides.
func LoadSnake() (SnakeConfig, error) {
	return loadWithOverrides("snake", DefaultSnakeConfig, func(c *SnakeConfig) *DifficultyConfig { return &c.Difficulty })
}

// LoadPong loads Pong configuration with the active overrides.
func LoadPong() (PongConfig, error) {
	return loadWithOverrides("pong", DefaultPongConfig, func(c *PongConfig) *DifficultyConfig { return &c.Difficulty })
}

// LoadBreakout loads Breakout configuration with the active overrides.
func LoadBreakout() (BreakoutConfig, error) {
	return loadWithOverrides("breakout", DefaultBreakoutConfig, func(c *BreakoutConfig) *DifficultyConfig { return &c.Difficulty })
}

// LoadTetris loads Tetris configuration with the active overrides.
func LoadTetris() (TetrisConfig, error) {
	return loadWithOverrides("tetris", DefaultTetrisConfig, func(c *TetrisConfig) *DifficultyConfig { return &c.Difficulty })
}

// LoadInvaders loads Space Invaders configuration with the active overrides.
func LoadInvaders() (InvadersConfig, error) {
	return loadWithOverrides("invaders", DefaultInvadersConfig, func(c *InvadersConfig) *DifficultyConfig { return &c.Difficulty })
}

// LoadRunner loads tunnel runner configuration with the active overrides.
func LoadRunner() (RunnerConfig, error) {
	return loadWithOverrides("runner", DefaultRunnerConfig, func(c *RunnerConfig) *DifficultyConfig { return &c.Difficulty })
}

// LoadMaze loads maze-chase configuration with the active overrides.
func LoadMaze() (MazeConfig, error) {
	return loadWithOverrides("maze", DefaultMazeConfig, func(c *MazeConfig) *DifficultyConfig { return &c.Difficulty })
}
