package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tokengrid/internal/platform/tui"
	"github.com/vovakirdan/tokengrid/internal/registry"
	"github.com/vovakirdan/tokengrid/internal/storage"
)

var (
	flagBrowse bool
	flagRecent bool
	flagClear  bool
	flagLimit  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show the best runs for a variant",
	Long: `Display the best recorded runs for the specified variant (default: tokens).

Runs are ranked by the largest token crafted, then by score, then by the
fewest moves.

Examples:
  tokengrid scores
  tokengrid scores tokens_classic --limit 20
  tokengrid scores --recent
  tokengrid scores tokens_classic --clear
  tokengrid scores --browse`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Browse the run log interactively")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the latest runs of every variant")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded runs of the variant")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := "tokens"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tokengrid list' to see available variants.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run log: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagBrowse:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		err = tui.RunScoreboard(store, gameID, width, height)
	case flagClear:
		err = clearScores(os.Stdout, store, gameID, title)
	case flagRecent:
		err = showRecent(os.Stdout, store, flagLimit)
	default:
		err = showScores(os.Stdout, store, gameID, title, flagLimit)
	}

	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// showScores prints the best runs of a variant.
func showScores(w io.Writer, store *storage.Store, gameID, title string, limit int) error {
	runs, err := store.TopRuns(gameID, limit)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Best Runs - %s\n\n", title)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Play 'tokengrid play %s' and craft a token to record a run!\n", gameID)
		return nil
	}

	writeRunTable(w, runs, false)

	fmt.Fprintln(w)
	if best, err := store.BestToken(gameID); err == nil {
		fmt.Fprintf(w, "Best token: %d\n", best)
	}
	return nil
}

// showRecent prints the latest runs across all variants.
func showRecent(w io.Writer, store *storage.Store, limit int) error {
	runs, err := store.RecentRuns(limit)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Recent Runs\n\n")

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		return nil
	}

	writeRunTable(w, runs, true)
	return nil
}

// clearScores deletes the runs of a variant.
func clearScores(w io.Writer, store *storage.Store, gameID, title string) error {
	if err := store.ClearRuns(gameID); err != nil {
		return err
	}
	fmt.Fprintf(w, "Cleared all runs for %s.\n", title)
	return nil
}

// writeRunTable prints runs in rank order, optionally with their variant.
func writeRunTable(w io.Writer, runs []storage.Run, showVariant bool) {
	variantCol := func(s string) string {
		if !showVariant {
			return ""
		}
		return fmt.Sprintf("%-15s  ", s)
	}

	fmt.Fprintf(w, "  %-4s  %s%-6s  %-7s  %-6s  %-4s  %-12s  %s\n",
		"Rank", variantCol("Variant"), "Best", "Score", "Moves", "Goal", "Player", "Date")
	fmt.Fprintf(w, "  %-4s  %s%-6s  %-7s  %-6s  %-4s  %-12s  %s\n",
		"----", variantCol("-------"), "----", "-----", "-----", "----", "------", "----")

	for i, r := range runs {
		goal := "-"
		if r.GoalReached {
			goal = "yes"
		}
		fmt.Fprintf(w, "  %-4d  %s%-6d  %-7d  %-6d  %-4s  %-12s  %s\n",
			i+1, variantCol(r.Variant), r.BestToken, r.Score, r.Moves, goal, r.Player,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
