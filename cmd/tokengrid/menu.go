package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tokengrid/internal/config"
	"github.com/vovakirdan/tokengrid/internal/core"
	"github.com/vovakirdan/tokengrid/internal/games/tokens"
	"github.com/vovakirdan/tokengrid/internal/platform/tui"
	"github.com/vovakirdan/tokengrid/internal/registry"
	"github.com/vovakirdan/tokengrid/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant and rules from a menu",
	Long: `Start tokengrid in interactive menu mode.

Pick a variant, then a rule preset. After a run ends you return to the
menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Esc          - Back
  Tab          - Browse the run log
  Q            - Quit

Examples:
  tokengrid menu
  tokengrid menu --fps 60`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	// Fail before taking over the terminal
	if _, err := loadConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := fileLogger("tokengrid")
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run log: %v\n", err)
		store = nil
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}

	preset, _ := config.ParsePreset(flagPreset)
	variant := string(tokens.VariantStandard)

	for {
		menuResult, err := tui.RunMenu(store, cfg, preset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			if sbErr := tui.RunScoreboard(store, variant, cfg.ScreenW, cfg.ScreenH); sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			continue
		}

		variant = menuResult.GameID
		preset = menuResult.Preset
		tokens.SetPreset(preset)

		game, err := registry.Create(variant)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		if err := tui.Run(game, store, cfg, os.Getenv("USER"), logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}

	if store != nil {
		store.Close()
	}
}
