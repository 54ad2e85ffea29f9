// Command devtoken mints access tokens for local development, signed with the
// same secret the server verifies.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/journalkeeper/internal/auth"
	"github.com/dmitrijs2005/journalkeeper/internal/server/config"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	defaults := &config.Config{}
	defaults.LoadDefaults()

	var (
		userID   string
		secret   string
		validity time.Duration
	)

	cmd := &cobra.Command{
		Use:   "devtoken",
		Short: "Mint a journalkeeper access token",
		Long: `Mint an HS256 access token for the journal server.

The token's subject is the user id every journal request is scoped to.
Without --user a fresh UUID is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" {
				userID = uuid.NewString()
			}
			if secret == "" {
				if s := os.Getenv("JWT_SECRET"); s != "" {
					secret = s
				} else {
					secret = defaults.SecretKey
				}
			}
			tok, err := auth.GenerateToken(userID, []byte(secret), validity)
			if err != nil {
				return fmt.Errorf("generate token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "user id (default: random UUID)")
	cmd.Flags().StringVarP(&secret, "secret", "s", "", "signing secret (default: $JWT_SECRET or the server default)")
	cmd.Flags().DurationVarP(&validity, "validity", "t", defaults.AccessTokenValidityDuration, "token lifetime")

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
