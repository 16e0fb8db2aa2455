package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
After a game ends, press B or Esc to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - High scores
  O            - Settings
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	sess := openLocalSession()
	defer sess.Close()

	err := tui.RunSession(tui.SessionOptions{
		Store:  sess.store,
		Audio:  sess.player,
		Logger: sess.logger,
		Config: runtimeConfig(),
	})
	if err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	return nil
}
