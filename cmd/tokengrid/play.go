package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tokengrid/internal/core"
	"github.com/vovakirdan/tokengrid/internal/games/tokens"
	"github.com/vovakirdan/tokengrid/internal/platform/tui"
	"github.com/vovakirdan/tokengrid/internal/registry"
	"github.com/vovakirdan/tokengrid/internal/storage"
	"github.com/vovakirdan/tokengrid/internal/world"
)

var flagStart string

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play locally",
	Long: `Start a run of the given variant (default: tokens).

Controls:
  Arrows/WASD  - Move the player
  H/J/K/L      - Move the aim cursor
  Enter/Space  - Pick up or craft at the cursor
  Mouse click  - Pick up or craft at the clicked cell
  P/Esc        - Pause
  R            - Restart (after reaching the goal)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Variants:
  tokens          - Cells remember pickups and crafts after scrolling away
  tokens_classic  - Cells are regenerated every time they scroll back in

Examples:
  tokengrid play
  tokengrid play tokens_classic
  tokengrid play --preset hard
  tokengrid play --start 120,-45
  tokengrid play --config ./my-tokens.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagStart, "start", "0,0", "Starting coordinate as i,j")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := string(tokens.VariantStandard)
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tokengrid list' to see available variants.")
		os.Exit(1)
	}

	start, err := world.ParseCoord(flagStart)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	tokens.SetStart(start)

	// Fail before taking over the terminal
	if _, err := loadConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := fileLogger("tokengrid")
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run log: %v\n", err)
		logger.Warn("playing without a run log", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, cfg, os.Getenv("USER"), logger)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
