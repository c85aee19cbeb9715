package app

import (
	"context"
	"fmt"

	"github.com/example/marina/internal/core/access"
	"github.com/example/marina/internal/core/effects"
	"github.com/example/marina/internal/core/fleet"
	"github.com/example/marina/internal/models"
	"github.com/example/marina/internal/ports/secondary"
)

// findVessel resolves a name or alias to a registered vessel: exact alias
// first, then the first registry entry whose name contains the query.
func findVessel(ctx context.Context, repo secondary.FleetRepository, name string) (models.VesselRecord, error) {
	if imo, ok := repo.Aliases().Lookup(name); ok {
		v, err := repo.GetByIMO(ctx, imo)
		if err == nil {
			return *v, nil
		}
	}

	vessels, err := repo.List(ctx)
	if err != nil {
		return models.VesselRecord{}, fmt.Errorf("failed to list fleet: %w", err)
	}
	if v, ok := fleet.Locate(vessels, name); ok {
		return v, nil
	}
	if bare := models.BareName(name); bare != "" && bare != models.NormalizeName(name) {
		if v, ok := fleet.Locate(vessels, bare); ok {
			return v, nil
		}
	}
	return models.VesselRecord{}, effects.NotFound("vessel %q is not in the registry", name)
}

// ledgerKey returns the ledger key for a vessel name, preferring the
// registered name so aliases share one entry.
func ledgerKey(ctx context.Context, repo secondary.FleetRepository, name string) (string, string) {
	if v, err := findVessel(ctx, repo, name); err == nil {
		return models.NormalizeName(v.Name), v.Name
	}
	return models.NormalizeName(name), name
}

// authorize runs the access check and wraps a denial.
func authorize(policy access.Policy, op access.Operation, user models.UserProfile) error {
	if res := access.CheckAccess(policy, op, user); !res.Allowed {
		return effects.Denied(res.Reason)
	}
	return nil
}
