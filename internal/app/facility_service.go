package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/marina/internal/core/access"
	"github.com/example/marina/internal/core/effects"
	"github.com/example/marina/internal/core/facility"
	"github.com/example/marina/internal/logging"
	"github.com/example/marina/internal/models"
	"github.com/example/marina/internal/ports/primary"
	"github.com/example/marina/internal/ports/secondary"
)

// WasteAuditDay is the day of the month the ministry zero waste audit falls on.
const WasteAuditDay = 15

// FacilityServiceImpl implements the FacilityService interface.
type FacilityServiceImpl struct {
	sensors secondary.FacilitySensors
	policy  access.Policy
	logger  *zap.Logger
	now     func() time.Time
}

// NewFacilityService creates a new FacilityService with injected dependencies.
func NewFacilityService(sensors secondary.FacilitySensors, policy access.Policy, logger *zap.Logger) *FacilityServiceImpl {
	return &FacilityServiceImpl{
		sensors: sensors,
		policy:  policy,
		logger:  logging.OrNop(logger).Named("facility"),
		now:     time.Now,
	}
}

// InfrastructureStatus scans pedestals and utility lines.
func (s *FacilityServiceImpl) InfrastructureStatus(ctx context.Context, user models.UserProfile) (*primary.InfrastructureResult, error) {
	if err := authorize(s.policy, access.OpFacilityReport, user); err != nil {
		return nil, err
	}
	out := effects.NewOutcome(NodeTechnic)

	scan, err := s.sensors.Infrastructure(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read SCADA: %w", err)
	}
	out.Trace(effects.StepThinking, effects.PersonaExpert, "Running diagnostic scan on %d pedestals and utility grids", scan.Pedestals)

	status := facility.InfrastructureStatus(scan)
	out.Trace(effects.StepToolExecution, effects.PersonaWorker, "SCADA: %.0f%% operational, %d alert(s)", scan.Operational, len(scan.Alerts))
	if status == facility.StatusDegraded {
		out.Trace(effects.StepAnalysis, effects.PersonaWorker, "Infrastructure degraded below %.0f%%", facility.DegradedBelow)
	}

	out.Emit(effects.KindInternal, ActInfrastructure, map[string]any{
		"status":      status,
		"operational": scan.Operational,
		"alerts":      scan.Alerts,
	})
	return &primary.InfrastructureResult{Outcome: *out, Status: status, Scan: scan}, nil
}

// GridStatus reads the power load and decides on load shedding.
func (s *FacilityServiceImpl) GridStatus(ctx context.Context, user models.UserProfile) (*primary.GridResult, error) {
	if err := authorize(s.policy, access.OpFacilityReport, user); err != nil {
		return nil, err
	}
	out := effects.NewOutcome(NodeTechnic)
	out.Trace(effects.StepThinking, effects.PersonaExpert, "Analyzing real-time power consumption")

	load, err := s.sensors.GridLoad(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read grid load: %w", err)
	}

	plan := facility.PlanGrid(load)
	if plan.Shedding {
		out.Trace(effects.StepAnalysis, effects.PersonaWorker, "Peak load detected (%d%%); initiating eco-mode", load)
		s.logger.Warn("grid peak load", zap.Int("load", load))
	} else {
		out.Trace(effects.StepOutput, effects.PersonaWorker, "Grid load %d%%, systems nominal", load)
	}

	out.Emit(effects.KindInternal, ActGridStatus, map[string]any{
		"load":         plan.Load,
		"shedding":     plan.Shedding,
		"optimization": plan.Optimization,
	})
	return &primary.GridResult{Outcome: *out, Plan: plan}, nil
}

// ZeroWasteReport compiles the monthly recycling compliance report.
func (s *FacilityServiceImpl) ZeroWasteReport(ctx context.Context, user models.UserProfile) (*primary.ZeroWasteResult, error) {
	if err := authorize(s.policy, access.OpFacilityReport, user); err != nil {
		return nil, err
	}
	out := effects.NewOutcome(NodeTechnic)
	out.Trace(effects.StepThinking, effects.PersonaExpert, "Compiling zero waste compliance report")

	stats, err := s.sensors.Waste(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read waste scales: %w", err)
	}

	report := facility.AssessWaste(stats)
	out.Trace(effects.StepToolExecution, effects.PersonaWorker, "Total %.0fkg, recyclables %.0fkg", report.Total, report.Recycled)

	next := nextAudit(s.now())
	out.Emit(effects.KindInternal, ActZeroWasteReport, map[string]any{
		"compliance":    report.Compliance,
		"recyclingRate": report.RecyclingRate,
		"target":        facility.RecyclingTarget,
		"hazardous":     stats.Hazardous,
		"nextAudit":     next,
	})
	return &primary.ZeroWasteResult{Outcome: *out, Report: report, Stats: stats, NextAudit: next}, nil
}

// WaterQuality checks the latest bathing water sample against Blue Flag limits.
func (s *FacilityServiceImpl) WaterQuality(ctx context.Context, user models.UserProfile) (*primary.WaterQualityResult, error) {
	if err := authorize(s.policy, access.OpFacilityReport, user); err != nil {
		return nil, err
	}
	out := effects.NewOutcome(NodeTechnic)
	out.Trace(effects.StepThinking, effects.PersonaExpert, "Retrieving latest sea water analysis")

	sample, err := s.sensors.WaterSample(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read lab results: %w", err)
	}
	out.Trace(effects.StepToolExecution, effects.PersonaWorker, "Lab report: E. coli %d, enterococci %d", sample.EColi, sample.Enterococci)

	status := facility.BlueFlagStatus(sample)
	if status == facility.FlagRed {
		out.Trace(effects.StepAnalysis, effects.PersonaWorker, "Bathing water over limits at %s; beach closed", sample.Location)
	}

	out.Emit(effects.KindInternal, ActWaterQuality, map[string]any{
		"status":      status,
		"date":        sample.Date,
		"location":    sample.Location,
		"eColi":       sample.EColi,
		"enterococci": sample.Enterococci,
	})
	return &primary.WaterQualityResult{Outcome: *out, Status: status, Sample: sample}, nil
}

// AuditHSE scores the latest health, safety and environment checklist.
func (s *FacilityServiceImpl) AuditHSE(ctx context.Context, user models.UserProfile) (*primary.HSEAuditResult, error) {
	if err := authorize(s.policy, access.OpFacilityReport, user); err != nil {
		return nil, err
	}
	out := effects.NewOutcome(NodeTechnic)
	out.Trace(effects.StepThinking, effects.PersonaExpert, "Initiating HSE digital audit")

	findings, err := s.sensors.HSEFindings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read HSE checklist: %w", err)
	}

	score, open := facility.ScoreHSE(findings)
	issues := make([]string, 0, len(findings))
	for _, f := range findings {
		issues = append(issues, f.Area+": "+f.Note)
	}
	out.Trace(effects.StepOutput, effects.PersonaWorker, "HSE score %d/100, %d open issue(s)", score, open)

	out.Emit(effects.KindInternal, ActHSEAudit, map[string]any{
		"score":  score,
		"open":   open,
		"issues": issues,
	})
	return &primary.HSEAuditResult{Outcome: *out, Score: score, Issues: issues}, nil
}

func nextAudit(now time.Time) string {
	audit := time.Date(now.Year(), now.Month(), WasteAuditDay, 0, 0, 0, 0, now.Location())
	if !audit.After(now) {
		audit = audit.AddDate(0, 1, 0)
	}
	return audit.Format(time.DateOnly)
}
