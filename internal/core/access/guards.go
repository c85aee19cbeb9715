// Package access contains the pure access rules of the console:
// per-operation minimum roles and the legal-hold gate on departures.
// This is part of the Functional Core - no I/O, only pure functions.
package access

import (
	"fmt"

	"github.com/example/marina/internal/models"
)

// Operation names a skill operation that carries an access rule.
type Operation string

const (
	OpGeneralInquiry      Operation = "GENERAL_INQUIRY"
	OpRadarScan           Operation = "RADAR_SCAN"
	OpArrival             Operation = "ARRIVAL"
	OpDeparture           Operation = "DEPARTURE"
	OpDebtCheck           Operation = "DEBT_CHECK"
	OpPaymentConfirmation Operation = "PAYMENT_CONFIRMATION"
	OpCreateInvoice       Operation = "CREATE_INVOICE"
	OpBerthAllocation     Operation = "BERTH_ALLOCATION"
	OpFleetQuery          Operation = "FLEET_QUERY"
	OpScheduleService     Operation = "SCHEDULE_SERVICE"
	OpJobStatus           Operation = "JOB_STATUS"
	OpSecurityIncident    Operation = "SECURITY_INCIDENT"
	OpIssuePass           Operation = "ISSUE_PASS"
	OpRegistration        Operation = "REGISTRATION"
	OpLegalConsultation   Operation = "LEGAL_CONSULTATION"
	OpFleetIntelligence   Operation = "FLEET_INTELLIGENCE"
	OpDailySettlement     Operation = "DAILY_SETTLEMENT"
	OpPaymentPlan         Operation = "PAYMENT_PLAN"
	OpCompleteJob         Operation = "COMPLETE_JOB"
	OpFlagVessel          Operation = "FLAG_VESSEL"
	OpFacilityReport      Operation = "FACILITY_REPORT"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// CheckAccess evaluates whether user may run op under policy.
// Rule: the user's clearance must reach the clearance of the operation's minimum role.
func CheckAccess(policy Policy, op Operation, user models.UserProfile) GuardResult {
	required := policy.MinRole(op)
	if clearanceOf(user) >= required.Clearance() {
		return GuardResult{Allowed: true}
	}
	return GuardResult{
		Allowed: false,
		Reason: fmt.Sprintf("%s requires %s clearance (level %d); %s has %s (level %d)",
			op, required, required.Clearance(), displayName(user), user.Role, clearanceOf(user)),
	}
}

// LegalHoldContext carries the legal status inputs for a departure.
type LegalHoldContext struct {
	User   models.UserProfile
	Vessel models.VesselRecord
}

// CheckLegalHold evaluates the legal-hold gate for a departure.
// Rule: a RED legal status on the user or the vessel blocks departure for every role.
func CheckLegalHold(ctx LegalHoldContext) GuardResult {
	if ctx.Vessel.OnLegalHold() {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("%s is under legal hold (status RED); departure is blocked", ctx.Vessel.Name),
		}
	}
	if ctx.User.OnLegalHold() {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("legal status of %s is RED; departure is blocked", displayName(ctx.User)),
		}
	}
	return GuardResult{Allowed: true}
}

// clearanceOf trusts the lower of the stored level and the role's level,
// so a profile cannot claim more than its role grants. A zero level means unset.
func clearanceOf(user models.UserProfile) int {
	level := user.Role.Clearance()
	if user.ClearanceLevel > 0 && user.ClearanceLevel < level {
		return user.ClearanceLevel
	}
	return level
}

func displayName(user models.UserProfile) string {
	if user.Name != "" {
		return user.Name
	}
	if user.ID != "" {
		return user.ID
	}
	return "user"
}
