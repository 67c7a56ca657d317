package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tokengrid/internal/world"
)

var (
	flagPeekAt     string
	flagPeekRadius int
)

var peekCmd = &cobra.Command{
	Use:   "peek",
	Short: "Print the generated cell values around a coordinate",
	Long: `Print the token values the generator places around a coordinate,
without starting a run. North is at the top, east is to the right.

Values are deterministic: the same coordinate always yields the same
token for the same spawn settings.

Examples:
  tokengrid peek
  tokengrid peek --at 10,-4 --radius 3
  tokengrid peek --preset casual`,
	Args: cobra.NoArgs,
	Run:  runPeek,
}

func init() {
	peekCmd.Flags().StringVar(&flagPeekAt, "at", "0,0", "Center coordinate as i,j")
	peekCmd.Flags().IntVar(&flagPeekRadius, "radius", 4, "Number of cells shown on each side of the center")
}

func runPeek(cmd *cobra.Command, args []string) {
	center, err := world.ParseCoord(flagPeekAt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagPeekRadius < 0 {
		fmt.Fprintln(os.Stderr, "Error: radius must not be negative")
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	session, err := cfg.Session()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(peekGrid(session.Spawn, center, flagPeekRadius))
}

// peekGrid renders the generated values of the square window around center,
// one row per line from north to south.
func peekGrid(rules world.SpawnRules, center world.Coord, radius int) string {
	var b strings.Builder
	count := 0

	fmt.Fprintf(&b, "Cells around %s (radius %d)\n\n", center, radius)
	window := world.WindowFor(center, radius)
	for n, c := range window {
		if n == 0 || c.I != window[n-1].I {
			b.WriteString(" ")
		}
		v := rules.ValueAt(c)
		switch {
		case c == center && v == 0:
			b.WriteString("   @")
		case v == 0:
			b.WriteString("   ·")
		default:
			fmt.Fprintf(&b, "%4d", v)
			count++
		}
		if n == len(window)-1 || window[n+1].I != c.I {
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "\n%d of %d cells hold a token\n", count, len(window))
	return b.String()
}
