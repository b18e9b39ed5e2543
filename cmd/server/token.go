package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/phrazzld/minimono-api/internal/config"
	"github.com/phrazzld/minimono-api/internal/service/auth"
)

// newTokenCmd issues an access token. Accounts live outside this service,
// so operators use it to mint tokens for local testing.
func newTokenCmd() *cobra.Command {
	var (
		userID string
		name   string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for a user id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := uuid.Parse(userID)
			if err != nil || id == uuid.Nil {
				return fmt.Errorf("--user must be a non-nil UUID")
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			jwtService, err := auth.NewJWTService(cfg.Auth)
			if err != nil {
				return fmt.Errorf("failed to create JWT service: %w", err)
			}

			token, err := jwtService.GenerateToken(cmd.Context(), id, name)
			if err != nil {
				return fmt.Errorf("failed to generate token: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id the token is issued for")
	cmd.Flags().StringVar(&name, "name", "", "display name carried in the token")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
