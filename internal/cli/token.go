package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	"github.com/SscSPs/commerce_lifecycle_app/internal/utils"
)

// NewTokenCommand creates the token command. Identity is issued elsewhere in
// production; this mints bearer tokens for local testing.
func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		userID string
		role   string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for local testing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := domain.Role(strings.ToUpper(role))
			if r != domain.RoleAdmin && r != domain.RoleCustomer {
				return fmt.Errorf("invalid role %q: must be %s or %s", role, domain.RoleCustomer, domain.RoleAdmin)
			}
			logger := newLogger(rootOpts)
			cfg, err := loadConfig(logger)
			if err != nil {
				return err
			}
			if cfg.IsProduction {
				return fmt.Errorf("refusing to mint tokens in production")
			}
			if userID == "" {
				userID = uuid.NewString()
			}
			token, err := utils.GenerateJWT(userID, r, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "subject user id (random when empty)")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleCustomer), "CUSTOMER or ADMIN")

	return cmd
}
