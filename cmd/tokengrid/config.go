package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tokengrid/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a run would use, after the custom file,
the user file (~/.tokengrid/configs/tokens.yaml) and the preset are applied.

The output is valid YAML and can be saved as a starting point:
  tokengrid config > ~/.tokengrid/configs/tokens.yaml

Examples:
  tokengrid config
  tokengrid config --preset hard
  tokengrid config --config ./my-tokens.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}
