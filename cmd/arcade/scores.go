package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the top high scores for the specified game, or a summary of
every game when no game is given.

Examples:
  arcade scores
  arcade scores tetris
  arcade scores snake --limit 25
  arcade scores pong --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores of the game")
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()
	store.SetLogger(stderrLogger("storage"))

	if len(args) == 0 {
		if flagScoresClear {
			return errors.New("--clear needs a game")
		}
		return printSummary(store)
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		return fmt.Errorf("unknown game %q", gameID)
	}
	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		fmt.Printf("Cleared scores for %s.\n", gameID)
		return nil
	}
	return printScores(store, gameID)
}

func printScores(store *storage.Store, gameID string) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	best, err := store.HighScore(gameID)
	if err != nil {
		return fmt.Errorf("retrieving high score: %w", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	fmt.Println()
	rec := store.LoadStats().Games[gameID]
	if rec.Plays == 0 {
		fmt.Printf("Best: %d\n", best)
		return nil
	}
	fmt.Printf("Best: %d  Plays: %d  Average: %.0f\n",
		best, rec.Plays, float64(rec.TotalScore)/float64(rec.Plays))
	return nil
}

func printSummary(store *storage.Store) error {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}

	fmt.Printf("  %-16s  %-8s  %-8s  %s\n", "Game", "Best", "Rounds", "Last played")
	fmt.Printf("  %-16s  %-8s  %-8s  %s\n", "----", "----", "------", "-----------")
	for _, g := range registry.List() {
		st, ok := stats[g.ID]
		if !ok || st.GamesCount == 0 {
			fmt.Printf("  %-16s  %-8s  %-8d  %s\n", g.Title, "-", 0, "never")
			continue
		}
		fmt.Printf("  %-16s  %-8d  %-8d  %s\n", g.Title, st.HighScore, st.GamesCount,
			st.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
