package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/regaudit-backend/internal/auth"
	"github.com/heartmarshall/regaudit-backend/internal/domain"
)

type tokenOptions struct {
	user string
	role string
	ttl  time.Duration
}

// NewTokenCmd creates the token subcommand, which mints an access token
// signed with the configured secret. Meant for local development and smoke
// tests against a running server.
func NewTokenCmd() *cobra.Command {
	opts := &tokenOptions{}

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, role, err := opts.parse()
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ttl := cfg.Auth.AccessTokenTTL
			if opts.ttl > 0 {
				ttl = opts.ttl
			}

			token, err := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, ttl).
				GenerateAccessToken(userID, role)
			if err != nil {
				return fmt.Errorf("issue token: %w", err)
			}

			cmd.Println(token)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.user, "user", "", "user id (uuid); a random one is generated when empty")
	cmd.Flags().StringVar(&opts.role, "role", string(domain.UserRoleUser), "role: user or admin")
	cmd.Flags().DurationVar(&opts.ttl, "ttl", 0, "token lifetime (default: auth.access_token_ttl)")

	return cmd
}

func (o *tokenOptions) parse() (uuid.UUID, domain.UserRole, error) {
	role := domain.UserRole(o.role)
	if !role.IsValid() {
		return uuid.Nil, "", fmt.Errorf("invalid --role %q: must be user or admin", o.role)
	}

	if o.user == "" {
		return uuid.New(), role, nil
	}

	id, err := uuid.Parse(o.user)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("invalid --user %q: %w", o.user, err)
	}
	return id, role, nil
}
