// tokengrid is a terminal game about collecting and crafting tokens on an
// endless grid.
//
// Usage:
//
//	tokengrid list                 - List available variants
//	tokengrid menu                 - Pick a variant and rules from a menu
//	tokengrid play [variant]       - Play locally
//	tokengrid serve                - Start SSH server for remote play
//	tokengrid scores [variant]     - Show the run log
//	tokengrid peek --at i,j        - Print generated cell values around a coordinate
//	tokengrid config               - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 30)
//	--db <path>        - Set database path (default: ~/.tokengrid/runs.db)
//	--config <path>    - Use a custom YAML config
//	--preset <name>    - Rule preset: standard, casual, hard
//	--log-file <path>  - Log file for local play (default: ~/.tokengrid/tokengrid.log)
//	--debug            - Enable debug logging
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tokengrid/internal/config"
	"github.com/vovakirdan/tokengrid/internal/games/tokens"
	"github.com/vovakirdan/tokengrid/internal/platform/tui"
)

var (
	// Global flags
	flagFPS     int
	flagDBPath  string
	flagConfig  string
	flagPreset  string
	flagLogFile string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tokengrid",
	Short: "Token Grid - collect and craft tokens in your terminal",
	Long: `Token Grid is a single-player terminal game on an endless grid.

Walk around, pick up the power-of-two tokens lying in nearby cells and
drop a token on a cell holding the same value to craft one of double value.
Craft the goal token to finish a run.

Available commands:
  list     - Show available variants
  menu     - Pick a variant and rules from a menu
  play     - Play locally
  serve    - Start SSH server for remote play
  scores   - View the run log
  peek     - Inspect generated cell values
  config   - Print the effective configuration

Examples:
  tokengrid play
  tokengrid play tokens_classic --preset casual
  tokengrid serve --ssh :2222
  tokengrid peek --at 10,-4 --radius 3`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		preset, err := config.ParsePreset(flagPreset)
		if err != nil {
			return err
		}
		tokens.SetConfigPath(flagConfig)
		tokens.SetPreset(preset)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tokengrid/runs.db", "Path to run log database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "standard", "Rule preset: standard, casual, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.tokengrid/tokengrid.log", "Log file for local play (empty disables)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(peekCmd)
	rootCmd.AddCommand(configCmd)
}

// fileLogger returns a logger writing to --log-file, and a close func.
// Logging is disabled when the file cannot be opened.
func fileLogger(prefix string) (*log.Logger, func()) {
	if flagLogFile == "" {
		return tui.NewLogger(io.Discard, prefix, flagDebug), func() {}
	}
	f, err := tui.OpenLogFile(flagLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return tui.NewLogger(io.Discard, prefix, flagDebug), func() {}
	}
	return tui.NewLogger(f, prefix, flagDebug), func() { f.Close() }
}

// loadConfig loads the effective config the same way a run does.
func loadConfig() (config.TokensConfig, error) {
	cfg, err := config.LoadTokens(flagConfig)
	if err != nil {
		return config.TokensConfig{}, err
	}
	preset, err := config.ParsePreset(flagPreset)
	if err != nil {
		return config.TokensConfig{}, err
	}
	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return config.TokensConfig{}, err
	}
	return cfg, nil
}
