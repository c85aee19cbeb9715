package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/example/marina/internal/core/access"
	"github.com/example/marina/internal/core/effects"
	"github.com/example/marina/internal/core/maintenance"
	"github.com/example/marina/internal/logging"
	"github.com/example/marina/internal/models"
	"github.com/example/marina/internal/ports/primary"
	"github.com/example/marina/internal/ports/secondary"
)

// TechnicServiceImpl implements the TechnicService interface.
type TechnicServiceImpl struct {
	store  secondary.StateStore
	policy access.Policy
	logger *zap.Logger
}

// NewTechnicService creates a new TechnicService with injected dependencies.
func NewTechnicService(store secondary.StateStore, policy access.Policy, logger *zap.Logger) *TechnicServiceImpl {
	return &TechnicServiceImpl{
		store:  store,
		policy: policy,
		logger: logging.OrNop(logger).Named("technic"),
	}
}

// ScheduleService books a job after checking travel lift availability.
func (s *TechnicServiceImpl) ScheduleService(ctx context.Context, req primary.ScheduleRequest) (*primary.JobResult, error) {
	jobs, err := s.store.Jobs().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	vessel := req.Vessel
	if vessel != "" {
		if v, err := findVessel(ctx, s.store.Fleet(), vessel); err == nil {
			vessel = v.Name
		}
	}

	out := effects.NewOutcome(NodeTechnic)
	out.Trace(effects.StepThinking, effects.PersonaExpert, "Booking %s for %s on %s", req.JobType, vessel, req.Date)

	check := maintenance.CanScheduleService(maintenance.ScheduleContext{
		VesselName: vessel,
		JobType:    req.JobType,
		Date:       req.Date,
		Jobs:       jobs,
	})
	if !check.Allowed {
		return nil, effects.Invalid("%s", check.Reason)
	}

	job, err := s.store.Jobs().Create(ctx, models.MaintenanceJob{
		VesselName:    vessel,
		JobType:       req.JobType,
		Status:        models.JobScheduled,
		ScheduledDate: req.Date,
		Contractor:    maintenance.DefaultContractor,
		PartsStatus:   "N/A",
		Notes:         req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	out.MarkMutated()
	out.Trace(effects.StepToolExecution, effects.PersonaWorker, "%s created with %s", job.ID, job.Contractor)
	out.Emit(effects.KindInternal, ActServiceScheduled, map[string]any{
		"jobId":      job.ID,
		"vessel":     job.VesselName,
		"jobType":    job.JobType,
		"date":       job.ScheduledDate,
		"contractor": job.Contractor,
	})
	s.logger.Info("service scheduled", zap.String("job", job.ID), zap.String("vessel", vessel))
	return &primary.JobResult{Outcome: *out, Job: job}, nil
}

// CheckStatus lists the jobs booked for a vessel.
func (s *TechnicServiceImpl) CheckStatus(ctx context.Context, vessel string) (*primary.JobStatusResult, error) {
	jobs, err := s.store.Jobs().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	name := vessel
	if vessel != "" {
		if v, err := findVessel(ctx, s.store.Fleet(), vessel); err == nil {
			name = v.Name
		}
	}

	var matched []models.MaintenanceJob
	for _, j := range jobs {
		if vessel == "" || jobBelongsTo(j, name) {
			matched = append(matched, j)
		}
	}

	out := effects.NewOutcome(NodeTechnic)
	out.Trace(effects.StepToolExecution, effects.PersonaWorker, "%d jobs on file for %s", len(matched), displayOr(name, "all vessels"))

	lines := make([]string, 0, len(matched))
	for _, j := range matched {
		lines = append(lines, fmt.Sprintf("%s %s %s (%s, %s)", j.ID, j.VesselName, j.JobType, j.Status, j.ScheduledDate))
	}
	out.Emit(effects.KindInternal, ActStatusReport, map[string]any{
		"vessel": displayOr(name, "all vessels"),
		"count":  len(matched),
		"jobs":   lines,
	})
	return &primary.JobStatusResult{Outcome: *out, Jobs: matched}, nil
}

// CompleteJob closes a job; the applier charges its cost to the ledger.
func (s *TechnicServiceImpl) CompleteJob(ctx context.Context, req primary.CompleteJobRequest) (*primary.JobResult, error) {
	if err := authorize(s.policy, access.OpCompleteJob, req.User); err != nil {
		return nil, err
	}

	jobs, err := s.store.Jobs().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	name := req.Vessel
	if req.Vessel != "" {
		if v, err := findVessel(ctx, s.store.Fleet(), req.Vessel); err == nil {
			name = v.Name
		}
	}

	var job models.MaintenanceJob
	found := false
	for _, j := range jobs {
		if req.JobID != "" && strings.EqualFold(j.ID, req.JobID) {
			job, found = j, true
			break
		}
		if req.JobID == "" && name != "" && j.Status != models.JobCompleted && jobBelongsTo(j, name) {
			job, found = j, true
			break
		}
	}
	if !found {
		return nil, effects.NotFound("no open job for %s", displayOr(req.JobID, name))
	}
	if job.Status == models.JobCompleted {
		return nil, effects.Invalid("%s is already completed", job.ID)
	}

	if err := s.store.Jobs().Update(ctx, job.ID, func(j *models.MaintenanceJob) {
		j.Status = models.JobCompleted
	}); err != nil {
		return nil, fmt.Errorf("failed to complete job: %w", err)
	}
	job.Status = models.JobCompleted
	cost := maintenance.CompletionCost(job.JobType)

	out := effects.NewOutcome(NodeTechnic)
	out.MarkMutated()
	out.Trace(effects.StepToolExecution, effects.PersonaWorker, "%s completed for %s", job.ID, job.VesselName)
	out.Trace(effects.StepAnalysis, effects.PersonaExpert, "%s tariff %.2f EUR forwarded to finance", job.JobType, cost)
	out.Emit(effects.KindInternal, ActJobCompleted, map[string]any{
		"jobId":   job.ID,
		"vessel":  job.VesselName,
		"jobType": job.JobType,
		"cost":    cost,
	})
	return &primary.JobResult{Outcome: *out, Job: job, Cost: cost}, nil
}

func jobBelongsTo(j models.MaintenanceJob, vessel string) bool {
	return models.NormalizeName(j.VesselName) == models.NormalizeName(vessel) ||
		strings.Contains(models.NormalizeName(j.VesselName), models.BareName(vessel))
}

func displayOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
