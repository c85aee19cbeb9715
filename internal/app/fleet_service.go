package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"go.uber.org/zap"

	"github.com/example/marina/internal/core/access"
	"github.com/example/marina/internal/core/berth"
	"github.com/example/marina/internal/core/effects"
	"github.com/example/marina/internal/core/finance"
	"github.com/example/marina/internal/core/fleet"
	"github.com/example/marina/internal/logging"
	"github.com/example/marina/internal/models"
	"github.com/example/marina/internal/ports/primary"
	"github.com/example/marina/internal/ports/secondary"
)

const (
	// DefaultScanRadiusNm is the radar range used when none is given.
	DefaultScanRadiusNm = 20.0
	// TrafficHoldRadiusNm is the distance within which commercial traffic
	// holds departures.
	TrafficHoldRadiusNm = 2.0
	// Anchorage receives arrivals when no tender can pilot them in.
	Anchorage = "Sector Zulu"
	// GroundStop is reported when no tender is available for a departure.
	GroundStop = "Ground Stop"
)

// Tender missions.
const (
	MissionDepartureEscort = "DEPARTURE_ESCORT"
	MissionArrivalPilot    = "ARRIVAL_PILOT"
)

// FleetServiceImpl implements the FleetService interface.
type FleetServiceImpl struct {
	store    secondary.StateStore
	ais      secondary.AisProvider
	payments secondary.PaymentGateway
	policy   access.Policy
	logger   *zap.Logger
	squawk   func() int
}

// NewFleetService creates a new FleetService with injected dependencies.
func NewFleetService(
	store secondary.StateStore,
	ais secondary.AisProvider,
	payments secondary.PaymentGateway,
	policy access.Policy,
	logger *zap.Logger,
) *FleetServiceImpl {
	return &FleetServiceImpl{
		store:    store,
		ais:      ais,
		payments: payments,
		policy:   policy,
		logger:   logging.OrNop(logger).Named("fleet"),
		squawk:   func() int { return rand.IntN(512) },
	}
}

// GetVesselIntelligence returns a vessel record with its live debt.
func (s *FleetServiceImpl) GetVesselIntelligence(ctx context.Context, name string, user models.UserProfile) (*primary.IntelligenceResult, error) {
	if err := authorize(s.policy, access.OpFleetIntelligence, user); err != nil {
		return nil, err
	}
	v, err := findVessel(ctx, s.store.Fleet(), name)
	if err != nil {
		return nil, err
	}
	entry, err := s.store.Ledger().Get(ctx, models.NormalizeName(v.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}
	debt := finance.Assess(entry)
	v.OutstandingDebt = debt.Amount
	v.PaymentHistoryStatus = debt.PaymentHistoryStatus

	out := effects.NewOutcome(NodeMarina)
	out.Trace(effects.StepToolExecution, effects.PersonaWorker, "Registry lookup: %s (IMO %s)", v.Name, v.IMO)
	out.Trace(effects.StepAnalysis, effects.PersonaExpert, "%s at %s, debt %s %.2f EUR", v.Status, v.Location, debt.Status, debt.Amount)
	out.Emit(effects.KindInternal, ActVesselIntel, map[string]any{
		"vessel":     v.Name,
		"imo":        v.IMO,
		"type":       v.Type,
		"flag":       v.Flag,
		"loa":        v.LOA,
		"status":     v.Status,
		"location":   v.Location,
		"lastPort":   v.Voyage.LastPort,
		"nextPort":   v.Voyage.NextPort,
		"eta":        v.Voyage.ETA,
		"debt":       debt.Amount,
		"debtStatus": debt.Status,
		"tier":       v.LoyaltyTier,
	})
	return &primary.IntelligenceResult{Outcome: *out, Vessel: v, Debt: debt}, nil
}

// RegisterVessel adds a vessel to the registry.
func (s *FleetServiceImpl) RegisterVessel(ctx context.Context, req primary.RegisterVesselRequest) (*primary.RegisterVesselResult, error) {
	if err := authorize(s.policy, access.OpRegistration, req.User); err != nil {
		return nil, err
	}

	v := req.Vessel
	if v.Status == "" {
		v.Status = models.VesselInbound
	}
	if v.PaymentHistoryStatus == "" {
		v.PaymentHistoryStatus = models.PaymentRegular
	}
	if v.LoyaltyTier == "" {
		v.LoyaltyTier = finance.LoyaltyTier(v.LoyaltyScore)
	}

	if err := s.store.Fleet().Register(ctx, v); err != nil {
		return nil, err
	}

	out := effects.NewOutcome(NodeMarina)
	out.MarkMutated()
	out.Trace(effects.StepToolExecution, effects.PersonaWorker, "Registered %s (IMO %s, %.1fm)", v.Name, v.IMO, v.LOA)
	out.Emit(effects.KindInternal, ActVesselRegistered, map[string]any{
		"vessel": v.Name,
		"imo":    v.IMO,
		"type":   v.Type,
		"flag":   v.Flag,
		"loa":    v.LOA,
	})
	s.logger.Info("vessel registered", zap.String("vessel", v.Name), zap.String("imo", v.IMO))
	return &primary.RegisterVesselResult{Outcome: *out, Vessel: v}, nil
}

// QueryFleet locates one vessel by name or filters the fleet by length.
func (s *FleetServiceImpl) QueryFleet(ctx context.Context, q primary.FleetQuery) (*primary.FleetQueryResult, error) {
	vessels, err := s.store.Fleet().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list fleet: %w", err)
	}

	out := effects.NewOutcome(NodeMarina)
	var found []models.VesselRecord
	query := q.Name

	switch q.Mode {
	case primary.QueryLocate:
		if strings.TrimSpace(q.Name) == "" {
			return nil, effects.Invalid("locate query needs a vessel name")
		}
		if v, ok := fleet.Locate(vessels, q.Name); ok {
			found = append(found, v)
		} else if v, err := findVessel(ctx, s.store.Fleet(), q.Name); err == nil {
			found = append(found, v)
		}
	case primary.QueryFilter:
		found = fleet.LongerThan(vessels, q.MinLength)
		query = fmt.Sprintf("LOA > %.1fm", q.MinLength)
	default:
		return nil, effects.Invalid("unknown fleet query mode %q", q.Mode)
	}

	out.Trace(effects.StepToolExecution, effects.PersonaWorker, "%s %s: %d of %d vessels", q.Mode, query, len(found), len(vessels))

	names := make([]string, 0, len(found))
	locations := make([]string, 0, len(found))
	for _, v := range found {
		names = append(names, v.Name)
		locations = append(locations, fmt.Sprintf("%s (%.1fm, %s, %s)", v.Name, v.LOA, v.Status, v.Location))
	}
	out.Emit(effects.KindInternal, ActFleetQuery, map[string]any{
		"mode":      q.Mode,
		"query":     query,
		"vessels":   names,
		"summaries": locations,
		"count":     len(found),
	})
	return &primary.FleetQueryResult{Outcome: *out, Vessels: found}, nil
}

// AllocateBerth walks the berth ladder for the given dimensions.
func (s *FleetServiceImpl) AllocateBerth(ctx context.Context, specs berth.Specs) (*primary.BerthResult, error) {
	out, alloc, err := s.allocate(ctx, "", specs)
	if err != nil {
		return nil, err
	}
	return &primary.BerthResult{Outcome: *out, Allocation: alloc}, nil
}

func (s *FleetServiceImpl) allocate(ctx context.Context, vessel string, specs berth.Specs) (*effects.Outcome, berth.Allocation, error) {
	if specs.LOA <= 0 {
		return nil, berth.Allocation{}, effects.Invalid("berth allocation needs the vessel length (LOA)")
	}
	zones, err := s.store.Berths().List(ctx)
	if err != nil {
		return nil, berth.Allocation{}, fmt.Errorf("failed to list berths: %w", err)
	}

	alloc := berth.Allocate(specs, zones)
	out := effects.NewOutcome(NodeMarina)
	out.Trace(effects.StepThinking, effects.PersonaExpert, "Berth request: LOA %.1fm, beam %.1fm, draft %.1fm", specs.LOA, specs.Beam, specs.Draft)
	for _, r := range alloc.Rejected {
		out.Trace(effects.StepAnalysis, effects.PersonaWorker, "Rejected %s", r)
	}
	out.Trace(effects.StepCodeOutput, effects.PersonaWorker, "Assigned %s: %s", alloc.Berth(), alloc.Reason)
	out.Emit(effects.KindInternal, ActBerthAssigned, map[string]any{
		"vessel":     vessel,
		"zone":       alloc.ZoneID,
		"berth":      alloc.Berth(),
		"relocation": alloc.Relocation,
		"reason":     alloc.Reason,
		"loa":        specs.LOA,
	})
	return out, alloc, nil
}

// FetchLiveAisData returns the current AIS picture.
func (s *FleetServiceImpl) FetchLiveAisData(ctx context.Context) ([]fleet.Target, error) {
	targets, err := s.ais.LiveTargets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch AIS data: %w", err)
	}
	return targets, nil
}

// FindVesselsNear returns AIS contacts within radiusNm of center, nearest first.
func (s *FleetServiceImpl) FindVesselsNear(ctx context.Context, center models.Coordinates, radiusNm float64) ([]fleet.Contact, error) {
	if radiusNm <= 0 {
		return nil, effects.Invalid("radius must be positive")
	}
	targets, err := s.FetchLiveAisData(ctx)
	if err != nil {
		return nil, err
	}
	return fleet.Near(targets, center, radiusNm), nil
}

// ScanSector returns the radar picture around the marina.
func (s *FleetServiceImpl) ScanSector(ctx context.Context, radiusNm float64) (*primary.ScanResult, error) {
	if radiusNm <= 0 {
		radiusNm = DefaultScanRadiusNm
	}
	contacts, err := s.FindVesselsNear(ctx, models.MarinaPosition, radiusNm)
	if err != nil {
		return nil, err
	}

	out := effects.NewOutcome(NodeMarina)
	out.Trace(effects.StepToolExecution, effects.PersonaWorker, "Radar sweep %.1fnm: %d contacts", radiusNm, len(contacts))
	lines := make([]string, 0, len(contacts))
	for _, c := range contacts {
		lines = append(lines, fmt.Sprintf("%s (%s) %.1fnm, %.1fkn, P%d", c.Vessel, c.Type, c.DistanceNm, c.SpeedKnots, c.Priority))
	}
	out.Emit(effects.KindInternal, ActRadarScan, map[string]any{
		"radiusNm": radiusNm,
		"count":    len(contacts),
		"contacts": lines,
	})
	return &primary.ScanResult{Outcome: *out, Contacts: contacts}, nil
}

// ProcessDeparture clears a vessel for departure.
// Order: role, legal hold, debt, commercial traffic, tender.
func (s *FleetServiceImpl) ProcessDeparture(ctx context.Context, req primary.MovementRequest) (*primary.MovementResult, error) {
	if err := authorize(s.policy, access.OpDeparture, req.User); err != nil {
		return nil, err
	}
	v, err := findVessel(ctx, s.store.Fleet(), req.Vessel)
	if err != nil {
		return nil, err
	}
	if hold := access.CheckLegalHold(access.LegalHoldContext{User: req.User, Vessel: v}); !hold.Allowed {
		return nil, effects.Denied(hold.Reason)
	}

	res := &primary.MovementResult{Outcome: *effects.NewOutcome(NodeMarina), Vessel: v}
	out := &res.Outcome
	out.Trace(effects.StepThinking, effects.PersonaExpert, "[ATC] Departure request: %s, priority %d", v.Name, fleet.TrafficPriority(v.Type, v.Status))

	entry, err := s.store.Ledger().Get(ctx, models.NormalizeName(v.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}
	if debt := finance.Assess(entry); debt.Status == finance.StatusDebt {
		if req.User.Role != models.RoleGeneralManager {
			return s.denyForDebt(ctx, res, debt)
		}
		res.Warning = fmt.Sprintf("outstanding balance of %.2f EUR authorized by %s", debt.Amount, req.User.Role)
		out.Trace(effects.StepAnalysis, effects.PersonaExpert, "Debt override: %s", res.Warning)
	}

	targets, err := s.FetchLiveAisData(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range fleet.Near(targets, models.MarinaPosition, TrafficHoldRadiusNm) {
		if fleet.IsCommercial(c.Target) {
			return s.deny(res, fmt.Sprintf("traffic conflict: %s (%s) %.1fnm from the entrance, hold position", c.Vessel, c.Type, c.DistanceNm))
		}
	}

	tender, ok, err := s.availableTender(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return s.deny(res, GroundStop+": no tender available, standby for sequence")
	}

	squawk := fleet.Squawk(s.squawk())
	out.Trace(effects.StepToolExecution, effects.PersonaWorker, "[ATC-GND] Dispatching %s to %s", tender.Name, v.Name)
	out.Emit(effects.KindExternal, ActTenderDispatched, map[string]any{
		"tenderId": tender.ID,
		"tender":   tender.Name,
		"vessel":   v.Name,
		"mission":  MissionDepartureEscort,
	})
	out.Emit(effects.KindInternal, ActTrafficStatus, map[string]any{
		"vessel": v.Name,
		"status": "TAXIING",
		"squawk": squawk,
	})
	out.Emit(effects.KindInternal, ActLogMovement, map[string]any{
		"vessel":   v.Name,
		"imo":      v.IMO,
		"action":   models.RegistryCheckOut,
		"location": "Sea",
		"status":   models.VesselDeparted,
	})
	out.Emit(effects.KindInternal, ActDepartureCleared, map[string]any{
		"vessel":  v.Name,
		"tender":  tender.Name,
		"squawk":  squawk,
		"warning": res.Warning,
	})

	res.Cleared = true
	res.Tender = tender.Name
	s.logger.Info("departure cleared", zap.String("vessel", v.Name), zap.String("tender", tender.ID))
	return res, nil
}

func (s *FleetServiceImpl) denyForDebt(ctx context.Context, res *primary.MovementResult, debt finance.DebtStatus) (*primary.MovementResult, error) {
	v := res.Vessel
	invoiceID := "DEBT-" + v.IMO
	link, err := s.payments.CreatePaymentLink(ctx, invoiceID, debt.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment link: %w", err)
	}
	res.Outcome.Trace(effects.StepAnalysis, effects.PersonaExpert, "Outstanding balance %.2f EUR blocks departure", debt.Amount)
	res.Outcome.Emit(effects.KindExternal, ActPaymentLink, map[string]any{
		"vessel":    v.Name,
		"invoiceId": invoiceID,
		"linkId":    link.ID,
		"url":       link.URL,
		"amount":    debt.Amount,
	})
	return s.deny(res, fmt.Sprintf("outstanding balance of %.2f EUR must be settled before departure", debt.Amount))
}

func (s *FleetServiceImpl) deny(res *primary.MovementResult, reason string) (*primary.MovementResult, error) {
	res.Reason = reason
	res.Outcome.Trace(effects.StepAnalysis, effects.PersonaWorker, "[ATC] Departure held: %s", reason)
	res.Outcome.Emit(effects.KindInternal, ActDepartureDenied, map[string]any{
		"vessel": res.Vessel.Name,
		"reason": reason,
	})
	return res, nil
}

// ProcessArrival approves an arrival: berth, pilot tender, traffic status
// and check-in. Debt is noted but does not block.
func (s *FleetServiceImpl) ProcessArrival(ctx context.Context, req primary.MovementRequest) (*primary.MovementResult, error) {
	if err := authorize(s.policy, access.OpArrival, req.User); err != nil {
		return nil, err
	}
	v, err := findVessel(ctx, s.store.Fleet(), req.Vessel)
	if err != nil {
		return nil, err
	}

	res := &primary.MovementResult{Outcome: *effects.NewOutcome(NodeMarina), Vessel: v}
	out := &res.Outcome
	out.Trace(effects.StepThinking, effects.PersonaExpert, "[ATC-APP] Radar contact: %s inbound", v.Name)

	entry, err := s.store.Ledger().Get(ctx, models.NormalizeName(v.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}
	if debt := finance.Assess(entry); debt.Status == finance.StatusDebt {
		res.Warning = fmt.Sprintf("outstanding balance of %.2f EUR on file", debt.Amount)
		out.Trace(effects.StepAnalysis, effects.PersonaExpert, "Note: %s", res.Warning)
	}

	tender, ok, err := s.availableTender(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		res.Reason = "no tender available to pilot the approach"
		out.Trace(effects.StepAnalysis, effects.PersonaWorker, "[ATC-APP] No approach assets, diverting to %s", Anchorage)
		out.Emit(effects.KindInternal, ActArrivalDiverted, map[string]any{
			"vessel":   v.Name,
			"location": Anchorage,
			"reason":   res.Reason,
		})
		return res, nil
	}

	berthOut, alloc, err := s.allocate(ctx, v.Name, berth.Specs{LOA: v.LOA, Beam: v.Beam, Draft: v.Draft})
	if err != nil {
		return nil, err
	}
	out.Merge(berthOut)

	squawk := fleet.Squawk(s.squawk())
	out.Trace(effects.StepToolExecution, effects.PersonaWorker, "[ATC-APP] %s piloting %s to %s", tender.Name, v.Name, alloc.Berth())
	out.Emit(effects.KindExternal, ActTenderDispatched, map[string]any{
		"tenderId": tender.ID,
		"tender":   tender.Name,
		"vessel":   v.Name,
		"mission":  MissionArrivalPilot,
	})
	out.Emit(effects.KindInternal, ActTrafficStatus, map[string]any{
		"vessel": v.Name,
		"status": models.VesselInbound,
		"squawk": squawk,
	})
	out.Emit(effects.KindInternal, ActLogMovement, map[string]any{
		"vessel":   v.Name,
		"imo":      v.IMO,
		"action":   models.RegistryCheckIn,
		"location": alloc.Berth(),
		"status":   models.VesselDocked,
	})
	out.Emit(effects.KindInternal, ActArrivalApproved, map[string]any{
		"vessel":     v.Name,
		"berth":      alloc.Berth(),
		"tender":     tender.Name,
		"relocation": alloc.Relocation,
		"squawk":     squawk,
		"warning":    res.Warning,
	})

	res.Cleared = true
	res.Berth = alloc.Berth()
	res.Tender = tender.Name
	s.logger.Info("arrival approved", zap.String("vessel", v.Name), zap.String("berth", res.Berth))
	return res, nil
}

func (s *FleetServiceImpl) availableTender(ctx context.Context) (models.Tender, bool, error) {
	tenders, err := s.store.Tenders().List(ctx)
	if err != nil {
		return models.Tender{}, false, fmt.Errorf("failed to list tenders: %w", err)
	}
	for _, t := range tenders {
		if t.Status == models.TenderAvailable {
			return t, true, nil
		}
	}
	return models.Tender{}, false, nil
}
