package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/storage"
)

var flagListQuiet bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the games with their records",
	Long: `List every game in the arcade with its best score and play count.

Examples:
  arcade list
  arcade list --quiet    # IDs only, one per line`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVarP(&flagListQuiet, "quiet", "q", false, "Print game IDs only")
}

func runList(_ *cobra.Command, _ []string) error {
	games := registry.List()
	if flagListQuiet {
		for _, g := range games {
			fmt.Println(g.ID)
		}
		return nil
	}
	if len(games) == 0 {
		fmt.Println("No games available.")
		return nil
	}

	// Records are optional; an unreadable database lists games without them.
	stats := storage.DefaultStats()
	if store := openStore(stderrLogger("storage")); store != nil {
		stats = store.LoadStats()
		store.Close()
	}

	if err := writeGameTable(os.Stdout, games, stats); err != nil {
		return err
	}
	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
	return nil
}

// writeGameTable prints one aligned row per game. Unplayed games show "-".
func writeGameTable(out io.Writer, games []registry.GameInfo, stats storage.Stats) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tGame\tBest\tPlays")
	fmt.Fprintln(w, "  --\t----\t----\t-----")
	for _, g := range games {
		rec, ok := stats.Games[g.ID]
		if !ok || rec.Plays == 0 {
			fmt.Fprintf(w, "  %s\t%s\t-\t0\n", g.ID, g.Title)
			continue
		}
		fmt.Fprintf(w, "  %s\t%s\t%d\t%d\n", g.ID, g.Title, rec.HighScore, rec.Plays)
	}
	return w.Flush()
}
