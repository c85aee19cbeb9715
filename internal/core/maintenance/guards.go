// Package maintenance contains the pure rules for technical service
// bookings: haul-out conflicts, job type parsing and completion costs.
package maintenance

import (
	"fmt"
	"strings"

	"github.com/example/marina/internal/models"
)

// DefaultContractor performs jobs booked through the console.
const DefaultContractor = "WIM Tech Services"

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// ScheduleContext carries the booking request and the current job list.
type ScheduleContext struct {
	VesselName string
	JobType    string
	Date       string
	Jobs       []models.MaintenanceJob
}

// CanScheduleService evaluates a booking request.
// Rules: vessel, job type and date are required; a haul-out conflicts only
// with another open haul-out on the same date (the travel lift is shared).
func CanScheduleService(ctx ScheduleContext) GuardResult {
	var missing []string
	if strings.TrimSpace(ctx.VesselName) == "" {
		missing = append(missing, "vessel")
	}
	if ctx.JobType == "" {
		missing = append(missing, "job type")
	}
	if strings.TrimSpace(ctx.Date) == "" {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return GuardResult{Reason: fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", "))}
	}

	if ctx.JobType != models.JobHaulOut {
		return GuardResult{Allowed: true}
	}
	for _, job := range ctx.Jobs {
		if job.JobType != models.JobHaulOut || job.Status == models.JobCompleted {
			continue
		}
		if strings.HasPrefix(job.ScheduledDate, ctx.Date) {
			return GuardResult{
				Reason: fmt.Sprintf("travel lift already booked on %s for %s (%s)", ctx.Date, job.VesselName, job.ID),
			}
		}
	}
	return GuardResult{Allowed: true}
}

// ParseJobType maps free text to a job type, or "" when nothing matches.
func ParseJobType(text string) string {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "haul out"), strings.Contains(t, "haul-out"), strings.Contains(t, "haulout"), strings.Contains(t, "lift out"):
		return models.JobHaulOut
	case strings.Contains(t, "engine"):
		return models.JobEngineService
	case strings.Contains(t, "hull clean"), strings.Contains(t, "antifouling"):
		return models.JobHullCleaning
	case strings.Contains(t, "repair"), strings.Contains(t, "service"), strings.Contains(t, "fix"):
		return models.JobGeneralRepair
	}
	return ""
}

var completionCosts = map[string]float64{
	models.JobHaulOut:       3500,
	models.JobEngineService: 1200,
}

// BaseCost is charged for job types without a specific tariff.
const BaseCost = 500.0

// CompletionCost returns the fixed tariff for a completed job type.
func CompletionCost(jobType string) float64 {
	if cost, ok := completionCosts[jobType]; ok {
		return cost
	}
	return BaseCost
}
