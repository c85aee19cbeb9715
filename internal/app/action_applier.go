package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/marina/internal/core/effects"
	"github.com/example/marina/internal/core/finance"
	"github.com/example/marina/internal/logging"
	"github.com/example/marina/internal/models"
	"github.com/example/marina/internal/ports/secondary"
)

// StoreApplier implements ActionApplier against the state store.
// This is the only place emitted actions change state.
type StoreApplier struct {
	store  secondary.StateStore
	logger *zap.Logger
	now    func() time.Time
}

// NewActionApplier creates a new StoreApplier.
func NewActionApplier(store secondary.StateStore, logger *zap.Logger) *StoreApplier {
	return &StoreApplier{
		store:  store,
		logger: logging.OrNop(logger).Named("applier"),
		now:    time.Now,
	}
}

// Apply processes actions in order and returns how many changed state.
// It stops at the first failure.
func (a *StoreApplier) Apply(ctx context.Context, actions []effects.Action) (int, error) {
	applied := 0
	for _, act := range actions {
		changed, err := a.applyOne(ctx, act)
		if err != nil {
			return applied, fmt.Errorf("failed to apply %s: %w", act.Name, err)
		}
		if changed {
			applied++
		}
	}
	return applied, nil
}

func (a *StoreApplier) applyOne(ctx context.Context, act effects.Action) (bool, error) {
	switch act.Name {
	case ActPaymentProcessed:
		return a.applyPayment(ctx, act)
	case ActBerthAssigned:
		if act.Bool("relocation") || act.String("zone") == "" {
			return false, nil
		}
		return true, a.store.Berths().Occupy(ctx, act.String("zone"))
	case ActTenderDispatched:
		assignment := fmt.Sprintf("%s %s", act.String("mission"), act.String("vessel"))
		return true, a.store.Tenders().Assign(ctx, act.String("tenderId"), assignment)
	case ActLogMovement:
		return true, a.applyMovement(ctx, act)
	case ActJobCompleted:
		if act.Float("cost") <= 0 {
			return false, nil
		}
		key, _ := ledgerKey(ctx, a.store.Fleet(), act.String("vessel"))
		_, err := a.store.Ledger().Charge(ctx, key, act.Float("cost"))
		return err == nil, err
	case ActFlagVessel:
		return true, a.store.Fleet().Update(ctx, act.String("imo"), func(v *models.VesselRecord) {
			v.LegalStatus = act.String("status")
		})
	default:
		return false, nil
	}
}

func (a *StoreApplier) applyPayment(ctx context.Context, act effects.Action) (bool, error) {
	vessel, err := findVessel(ctx, a.store.Fleet(), act.String("vessel"))
	key := models.NormalizeName(act.String("vessel"))
	if err == nil {
		key = models.NormalizeName(vessel.Name)
	}

	if !act.Bool("ledgerApplied") {
		_, credited, cerr := a.store.Ledger().Credit(ctx, key, act.String("reference"), act.Float("amount"))
		if cerr != nil {
			return false, cerr
		}
		if !credited {
			return false, nil
		}
	}

	if err == nil {
		if uerr := a.store.Fleet().Update(ctx, vessel.IMO, func(v *models.VesselRecord) {
			v.LoyaltyScore += finance.PointsPerPayment
			v.LoyaltyTier = finance.LoyaltyTier(v.LoyaltyScore)
			v.PaymentHistoryStatus = models.PaymentRegular
		}); uerr != nil {
			return false, uerr
		}
	}
	a.logger.Debug("payment applied", zap.String("vessel", key), zap.Float64("amount", act.Float("amount")))
	return true, nil
}

func (a *StoreApplier) applyMovement(ctx context.Context, act effects.Action) error {
	entry := models.RegistryEntry{
		Timestamp: a.now(),
		Vessel:    act.String("vessel"),
		Action:    act.String("action"),
		Location:  act.String("location"),
		Status:    act.String("status"),
	}
	if err := a.store.Registry().Append(ctx, entry); err != nil {
		return err
	}
	if imo := act.String("imo"); imo != "" {
		return a.store.Fleet().Update(ctx, imo, func(v *models.VesselRecord) {
			v.Status = entry.Status
			v.Location = entry.Location
		})
	}
	return nil
}
