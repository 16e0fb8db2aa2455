package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	tests := []struct {
		id   string
		into any
		want any
	}{
		{"snake", &SnakeConfig{}, DefaultSnakeConfig()},
		{"pong", &PongConfig{}, DefaultPongConfig()},
		{"breakout", &BreakoutConfig{}, DefaultBreakoutConfig()},
		{"tetris", &TetrisConfig{}, DefaultTetrisConfig()},
		{"invaders", &InvadersConfig{}, DefaultInvadersConfig()},
		{"runner", &RunnerConfig{}, DefaultRunnerConfig()},
		{"maze", &MazeConfig{}, DefaultMazeConfig()},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			data := GetDefaultYAML(tc.id)
			if data == nil {
				t.Fatalf("no embedded yaml for %s", tc.id)
			}
			if err := yaml.Unmarshal(data, tc.into); err != nil {
				t.Fatalf("embedded yaml does not parse: %v", err)
			}
			got := reflect.ValueOf(tc.into).Elem().Interface()
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("embedded %s differs from hardcoded default:\n got  %+v\n want %+v", tc.id, got, tc.want)
			}
		})
	}
}

func TestGameIDsHaveDefaults(t *testing.T) {
	for _, id := range GameIDs {
		if GetDefaultYAML(id) == nil {
			t.Errorf("GameIDs lists %q without an embedded default", id)
		}
	}
	if GetDefaultYAML("nope") != nil {
		t.Error("unknown game should have no default")
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pong.yaml")
	if err := os.WriteFile(path, []byte("gameplay:\n  win_score: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("pong", path, DefaultPongConfig)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Gameplay.WinScore != 3 {
		t.Errorf("WinScore = %d, expected 3", cfg.Gameplay.WinScore)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load("pong", filepath.Join(dir, "missing.yaml"), DefaultPongConfig)
	if err == nil {
		t.Error("missing custom path should be an error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("gameplay: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load("pong", bad, DefaultPongConfig)
	if err == nil {
		t.Error("malformed custom config should be an error")
	}
	if cfg.Gameplay.WinScore != DefaultPongConfig().Gameplay.WinScore {
		t.Error("a failed load should still return usable defaults")
	}
}

func TestLoadReportsMalformedUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".arcade", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "maze.yaml"), []byte("timing: {scatter: ["), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("maze", "", DefaultMazeConfig)
	if err == nil || !strings.Contains(err.Error(), "maze.yaml") {
		t.Errorf("expected an error naming the bad file, got %v", err)
	}
	if cfg.Gameplay.Lives != DefaultMazeConfig().Gameplay.Lives {
		t.Error("the embedded default should still be loaded")
	}
}

func TestLoadWithOverridesAppliesPreset(t *testing.T) {
	t.Cleanup(func() { SetDifficultyPreset(DifficultyNormal) })

	SetDifficultyPreset(DifficultyHard)
	cfg, err := LoadTetris()
	if err != nil {
		t.Fatalf("LoadTetris() error: %v", err)
	}
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset not applied: %+v", cfg.Difficulty)
	}

	SetDifficultyPreset(DifficultyFixed)
	cfg2, _ := LoadSnake()
	if cfg2.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}
}

func TestParsePreset(t *testing.T) {
	for _, s := range []string{"", "easy", "normal", "hard", "fixed"} {
		if _, ok := ParsePreset(s); !ok {
			t.Errorf("ParsePreset(%q) should be valid", s)
		}
	}
	if _, ok := ParsePreset("nightmare"); ok {
		t.Error("unknown preset should be rejected")
	}
}

func TestDifficultyManager(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0, GapReduction: 4, SpacingReduction: 10},
	})

	if got := dm.Level(0, 0); got != 0.2 {
		t.Errorf("Level(0) = %v, expected initial 0.2", got)
	}
	if got := dm.Level(100, 0); got != 1.0 {
		t.Errorf("Level(max) = %v, expected 1.0", got)
	}
	if got := dm.Level(1000, 0); got != 1.0 {
		t.Errorf("Level should clamp at 1.0, got %v", got)
	}
	if got := dm.Speed(10, 100, 0); got != 20 {
		t.Errorf("Speed at max = %v, expected 20", got)
	}
	if got := dm.Interval(1, 100, 0); got != 0.5 {
		t.Errorf("Interval at max = %v, expected 0.5", got)
	}
	if got := dm.GapSize(6, 100, 0); got != 4 {
		t.Errorf("GapSize should not drop below 4, got %d", got)
	}
	if got := dm.Spacing(40, 100, 0); got != 30 {
		t.Errorf("Spacing at max = %d, expected 30", got)
	}

	dist := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "distance", MaxAt: 1000},
	})
	if got := dist.Level(0, 500); got != 0.5 {
		t.Errorf("distance Level = %v, expected 0.5", got)
	}

	dm.SetEnabled(false)
	if dm.IsEnabled() || dm.Level(100, 0) != 0.2 {
		t.Error("disabled manager should stay at the initial level")
	}
}
