package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tokengrid/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagVariant     string
	flagIdleTimeout int
	flagMaxPerIP    int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tokengrid SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own independent run; nothing about the world
is shared between players. Finished runs go to the server's run log.

Clients may name a variant as the SSH command:
  ssh -t localhost -p 23235 tokens_classic

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.tokengrid/host_key

Examples:
  tokengrid serve                           # Listen on :23235 with auto-generated key
  tokengrid serve --ssh :2222               # Listen on port 2222
  tokengrid serve --host-key ./my_host_key  # Use specific host key
  tokengrid serve --db ./runs.db            # Use specific database`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagVariant, "variant", "tokens", "Variant played when the client names none")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagMaxPerIP, "max-per-ip", 4, "Max concurrent sessions per client IP (0 = unlimited)")
}

func runServe(_ *cobra.Command, _ []string) {
	if _, err := loadConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		Variant:     flagVariant,
		TickRate:    flagFPS,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,

		MaxSessionsPerIP: flagMaxPerIP,
	}

	logger := tui.NewLogger(os.Stderr, "tokengrid-ssh", flagDebug)

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting tokengrid SSH server on %s\n", server.Addr())
	fmt.Printf("Connect with: ssh -t localhost -p %s\n", portOf(server.Addr()))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
