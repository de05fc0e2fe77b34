package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/deskhub/internal/adapters/driven/config/file"
	storefile "github.com/custodia-labs/deskhub/internal/adapters/driven/store/file"
	"github.com/custodia-labs/deskhub/internal/core/domain"
	"github.com/custodia-labs/deskhub/internal/logger"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Inspect the linked Google account",
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored credential's state",
	RunE:  runAuthStatus,
}

func init() {
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthStatus(cmd *cobra.Command, _ []string) error {
	cfg, err := configfile.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	store, err := storefile.NewCredentialsStore(cfg.DataDir, logger.New(verbose))
	if err != nil {
		return fmt.Errorf("opening credential store: %w", err)
	}

	creds, err := store.Load(context.Background())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			cmd.Println("No account linked.")
			cmd.Println("Start the server and visit /auth/google to link one.")
			return nil
		}
		return fmt.Errorf("reading credentials: %w", err)
	}

	cmd.Println("Account linked.")
	switch {
	case creds.Expiry.IsZero():
		cmd.Println("  Expiry: none (token treated as never expiring)")
	case creds.IsExpired():
		cmd.Printf("  Expiry: %s (stale, will refresh on next use)\n",
			creds.Expiry.Format(time.RFC3339))
	default:
		cmd.Printf("  Expiry: %s\n", creds.Expiry.Format(time.RFC3339))
	}
	cmd.Printf("  Refresh token: %v\n", creds.HasRefreshToken())
	if len(creds.Scopes) > 0 {
		cmd.Printf("  Scopes: %s\n", strings.Join(creds.Scopes, ", "))
	}
	return nil
}
