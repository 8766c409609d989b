package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/johnquangdev/meetmind/pkg/config"
	"github.com/johnquangdev/meetmind/pkg/jwt"
)

var (
	tokenUser   string
	tokenEmail  string
	tokenExpiry time.Duration
	tokenScopes []string
)

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "User ID (UUID); a new one is generated when empty")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "Email recorded in the token (required)")
	tokenCmd.Flags().DurationVar(&tokenExpiry, "expiry", 0, "Token lifetime (defaults to JWT_ACCESS_EXPIRY)")
	tokenCmd.Flags().StringSliceVar(&tokenScopes, "scope", []string{jwt.ScopeHistory}, "Scopes to grant: history, archive")

	_ = tokenCmd.MarkFlagRequired("email")
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an access token for the meeting history API",
	Long: `Sign an access token with JWT_ACCESS_SECRET. Meetings summarized with the
token are listed only for that user.

The history scope opens /api/v1/meetings; the archive scope opens the raw
output archive and is meant for operators.

Examples:
  meetmindctl token --email ann@example.com
  meetmindctl token --email ops@example.com --scope history,archive --expiry 1h`,
	Args: cobra.NoArgs,
	RunE: runToken,
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadEnv()
	if err != nil {
		return err
	}
	if cfg.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is not set")
	}

	userID := uuid.New()
	if tokenUser != "" {
		userID, err = uuid.Parse(tokenUser)
		if err != nil {
			return fmt.Errorf("invalid --user: %w", err)
		}
	}

	for _, scope := range tokenScopes {
		if scope != jwt.ScopeHistory && scope != jwt.ScopeArchive {
			return fmt.Errorf("unknown scope %q", scope)
		}
	}

	token, err := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry, cfg.JWT.Issuer).Issue(jwt.TokenRequest{
		UserID: userID,
		Email:  tokenEmail,
		Scopes: tokenScopes,
		TTL:    tokenExpiry,
	})
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
