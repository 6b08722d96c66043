package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gamereviews/backend/internal/config"
	"gamereviews/backend/pkg/jwt"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the game reviews API",
		Long: `Mint a bearer token signed with JWT_SECRET. The token lives for TOKEN_TTL
and unlocks mutations and /admin routes when the server runs with the same secret.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if !cfg.AuthEnabled() {
				return errors.New("JWT_SECRET is not set")
			}

			token, err := jwt.GenerateToken(subject, cfg.JWTSecret, cfg.TokenTTL)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVarP(&subject, "subject", "s", "admin", "subject the token is issued to")

	return cmd
}
