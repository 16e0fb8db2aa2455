package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/platform/tui"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

var flagConfig string

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Move, steer, rotate
  Space        - Start, fire, thrust, hard drop
  C            - Hold piece (tetris)
  B            - Bomb (runner); back to menu when paused or over
  P/Esc        - Pause
  R            - Restart (after game over)
  Ctrl+S       - Save a text screenshot
  Q/Ctrl+C     - Quit

The mouse acts as a touch screen: click to tap, drag to swipe.

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play snake
  arcade play tetris --difficulty easy
  arcade play invaders --seed 42
  arcade play runner --config ./my-runner.yaml`,
	Args: cobra.ExactArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var ids []string
		for _, g := range registry.List() {
			ids = append(ids, g.ID)
		}
		return ids, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		return fmt.Errorf("unknown game %q", gameID)
	}

	// A bad --config fails here rather than silently inside the game.
	if flagConfig != "" {
		if _, err := os.Stat(flagConfig); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	config.SetConfigPath(gameID, flagConfig)

	sess := openLocalSession()
	defer sess.Close()

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	sess.logger.Info("playing", "game", gameID, "fps", flagFPS, "seed", flagSeed)
	if err := tui.Run(game, tui.GameOptions{
		Store:  sess.store,
		Audio:  sess.player,
		Logger: sess.logger.WithPrefix(gameID),
		Config: runtimeConfig(),
	}); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
