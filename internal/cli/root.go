// Package cli provides the cobra commands of the marina console.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/marina/internal/ctxutil"
	"github.com/example/marina/internal/models"
	"github.com/example/marina/internal/wire"
)

// Global flags, bound on the root command by AddGlobalFlags.
var (
	flagConfig string
	flagRole   string
	flagVessel string
)

// AddGlobalFlags registers the persistent flags every command understands.
func AddGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.marina/config.json)")
	root.PersistentFlags().StringVar(&flagRole, "role", "", "issue commands as GUEST, CAPTAIN or GENERAL_MANAGER")
	root.PersistentFlags().StringVar(&flagVessel, "vessel", "", "vessel commanded by the operator")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		wire.SetConfigPath(flagConfig)
	}
}

// stack returns the wired console or a wrapped error.
func stack() (*wire.Stack, error) {
	s, err := wire.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to start console: %w", err)
	}
	return s, nil
}

// operator returns the configured operator with flag overrides applied.
func operator(s *wire.Stack) (models.UserProfile, error) {
	user := s.Operator
	if flagRole != "" {
		role := models.Role(strings.ToUpper(flagRole))
		if !role.Valid() {
			return models.UserProfile{}, fmt.Errorf("invalid role %q", flagRole)
		}
		user.Role = role
		user.ClearanceLevel = role.Clearance()
	}
	if flagVessel != "" {
		user.VesselName = flagVessel
	}
	return user, nil
}

// NewContext returns a background context carrying the operator as actor.
func NewContext(user models.UserProfile) context.Context {
	return ctxutil.WithActorID(context.Background(), user.ID)
}
