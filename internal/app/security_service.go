package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/marina/internal/core/access"
	"github.com/example/marina/internal/core/effects"
	"github.com/example/marina/internal/logging"
	"github.com/example/marina/internal/models"
	"github.com/example/marina/internal/ports/primary"
	"github.com/example/marina/internal/ports/secondary"
)

const (
	// PatrolUnit is dispatched to every incident.
	PatrolUnit = "Patrol-1"
	// FootageWindow is how far back a CCTV review looks.
	FootageWindow = 30 * time.Minute
	// RestrictionDepartureBan is set on flagged vessels.
	RestrictionDepartureBan = "DEPARTURE_BAN"
)

// Incident priorities.
const (
	PriorityRoutine   = "ROUTINE"
	PriorityUrgent    = "URGENT"
	PriorityEmergency = "EMERGENCY"
)

// SecurityServiceImpl implements the SecurityService interface.
type SecurityServiceImpl struct {
	store   secondary.StateStore
	cameras secondary.Surveillance
	policy  access.Policy
	logger  *zap.Logger
}

// NewSecurityService creates a new SecurityService with injected dependencies.
func NewSecurityService(store secondary.StateStore, cameras secondary.Surveillance, policy access.Policy, logger *zap.Logger) *SecurityServiceImpl {
	return &SecurityServiceImpl{
		store:   store,
		cameras: cameras,
		policy:  policy,
		logger:  logging.OrNop(logger).Named("security"),
	}
}

// ReviewCCTV reviews recent footage at a location. The review is not cancellable.
func (s *SecurityServiceImpl) ReviewCCTV(ctx context.Context, location string) (*primary.CCTVResult, error) {
	location = displayOr(location, "Marina Perimeter")
	out := effects.NewOutcome(NodeSecurity)
	out.Trace(effects.StepToolExecution, effects.PersonaWorker, "Accessing surveillance network (NVR-04) for %s", location)

	footage, err := s.cameras.ReviewFootage(context.WithoutCancel(ctx), location, FootageWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to review footage: %w", err)
	}

	out.Trace(effects.StepToolExecution, effects.PersonaWorker, "Running object detection on the last %s", FootageWindow)
	if footage.Confirmed {
		out.Trace(effects.StepCodeOutput, effects.PersonaWorker, "Detected: %s (evidence %s)", footage.Details, footage.EvidenceID)
	} else {
		out.Trace(effects.StepCodeOutput, effects.PersonaWorker, "Nothing detected at %s", location)
	}
	out.Emit(effects.KindInternal, ActCCTVReview, map[string]any{
		"location":   location,
		"confirmed":  footage.Confirmed,
		"evidenceId": footage.EvidenceID,
		"details":    footage.Details,
	})
	return &primary.CCTVResult{Outcome: *out, Footage: *footage}, nil
}

// DispatchGuard sends the patrol unit to a location.
func (s *SecurityServiceImpl) DispatchGuard(ctx context.Context, location, priority string) (*effects.Outcome, error) {
	switch priority {
	case PriorityRoutine, PriorityUrgent, PriorityEmergency:
	case "":
		priority = PriorityRoutine
	default:
		return nil, effects.Invalid("unknown priority %q", priority)
	}
	location = displayOr(location, "Marina Perimeter")

	out := effects.NewOutcome(NodeSecurity)
	out.Trace(effects.StepToolExecution, effects.PersonaWorker, "Dispatching %s to %s (%s)", PatrolUnit, location, priority)
	out.Emit(effects.KindExternal, ActSecurityDispatch, map[string]any{
		"unit":     PatrolUnit,
		"location": location,
		"priority": priority,
	})
	s.logger.Info("guard dispatched", zap.String("location", location), zap.String("priority", priority))
	return out, nil
}

// FlagVessel places a vessel under legal hold with a departure ban.
func (s *SecurityServiceImpl) FlagVessel(ctx context.Context, vessel, reason string, user models.UserProfile) (*effects.Outcome, error) {
	if err := authorize(s.policy, access.OpFlagVessel, user); err != nil {
		return nil, err
	}
	v, err := findVessel(ctx, s.store.Fleet(), vessel)
	if err != nil {
		return nil, err
	}
	reason = displayOr(reason, "security hold")

	out := effects.NewOutcome(NodeSecurity)
	out.Trace(effects.StepAnalysis, effects.PersonaExpert, "Flagging %s: %s", v.Name, reason)
	out.Emit(effects.KindInternal, ActFlagVessel, map[string]any{
		"vessel":      v.Name,
		"imo":         v.IMO,
		"status":      models.LegalRed,
		"restriction": RestrictionDepartureBan,
		"reason":      reason,
	})
	s.logger.Warn("vessel flagged", zap.String("vessel", v.Name), zap.String("reason", reason))
	return out, nil
}
