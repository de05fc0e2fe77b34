// Package cli wires the application together and exposes its commands.
package cli

import (
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

// Persistent flags shared by all commands.
var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "deskhub",
	Short: "Personal productivity dashboard server",
	Long: `DeskHub serves a personal productivity dashboard over your Google
Workspace account: paginated email, calendar, docs and sheets views,
image/PDF text extraction, and a single-turn chat endpoint.

Start the server with:
  deskhub serve

Configuration is read from ~/.deskhub/config.toml (override with
--config). Secrets can also come from the environment:
  DESKHUB_GOOGLE_CLIENT_SECRET
  DESKHUB_ANTHROPIC_API_KEY`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&configPath, "config", "", "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
