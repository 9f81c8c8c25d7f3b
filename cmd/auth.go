package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/teemow/homecal/internal/google"
)

func newAuthCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize a Google account for calendar import",
		Long: `Run the OAuth2 authorization-code flow for a Google account.

Requires GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET in the environment
(or a .env file). The command prints an authorization URL to open in a
browser and reads the resulting code from stdin. The token is stored
per account under the user cache directory and only grants read-only
calendar access.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			// Move any pre-multi-account token to its per-account name.
			if err := google.MigrateDefaultToken(); err != nil {
				return fmt.Errorf("failed to migrate legacy token: %w", err)
			}

			if google.HasTokenForAccount(account) {
				fmt.Printf("Account %q is already authorized. Re-authorizing replaces the stored token.\n", account)
			}

			authURL, err := google.GetAuthURL()
			if err != nil {
				return err
			}

			fmt.Printf("Open the following URL in your browser and approve access:\n\n%s\n\n", authURL)
			fmt.Print("Enter the authorization code: ")

			reader := bufio.NewReader(os.Stdin)
			code, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read authorization code: %w", err)
			}
			code = strings.TrimSpace(code)
			if code == "" {
				return fmt.Errorf("no authorization code provided")
			}

			if err := google.SaveTokenForAccount(context.Background(), account, code); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Printf("Token stored for account %q. Run 'homecal sync' to import events.\n", account)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account name to authorize (default: 'default')")

	return cmd
}
