package primary

import (
	"context"
	"time"

	"github.com/example/marina/internal/core/berth"
	"github.com/example/marina/internal/core/effects"
	"github.com/example/marina/internal/core/facility"
	"github.com/example/marina/internal/core/finance"
	"github.com/example/marina/internal/core/fleet"
	"github.com/example/marina/internal/core/legal"
	"github.com/example/marina/internal/models"
	"github.com/example/marina/internal/ports/secondary"
)

// FinanceService is the finance skill.
type FinanceService interface {
	CheckDebt(ctx context.Context, vessel string) (*DebtCheckResult, error)
	CreateInvoice(ctx context.Context, req InvoiceRequest) (*InvoiceResult, error)
	ProcessPayment(ctx context.Context, req PaymentRequest) (*PaymentResult, error)
	FetchDailySettlement(ctx context.Context, user models.UserProfile) (*SettlementResult, error)
	ProposePaymentPlan(ctx context.Context, vessel string, user models.UserProfile) (*PaymentPlanResult, error)
}

// DebtCheckResult is the debt snapshot of a vessel.
type DebtCheckResult struct {
	effects.Outcome
	Vessel string
	Debt   finance.DebtStatus
}

// LineItem is one invoiced service.
type LineItem struct {
	Description string
	Amount      float64
}

// InvoiceRequest bills a vessel. Items take precedence over Amount.
type InvoiceRequest struct {
	Vessel      string
	Items       []LineItem
	Amount      float64
	ServiceType string
	User        models.UserProfile
}

// InvoiceResult carries the invoice and its payment link.
type InvoiceResult struct {
	effects.Outcome
	Invoice *secondary.Invoice
	Link    *secondary.PaymentLink
	Balance float64
}

// PaymentRequest records a received payment.
type PaymentRequest struct {
	Vessel    string
	Reference string
	Amount    float64
}

// PaymentResult carries the payment action for the caller to apply.
type PaymentResult struct {
	effects.Outcome
}

// SettlementResult summarizes a settlement run.
type SettlementResult struct {
	effects.Outcome
	Matched    int
	Skipped    int
	Duplicates int
	Total      float64
}

// PaymentPlanResult is a proposed repayment schedule.
type PaymentPlanResult struct {
	effects.Outcome
	Vessel string
	Plan   finance.Plan
}

// FleetService is the marina and fleet skill.
type FleetService interface {
	GetVesselIntelligence(ctx context.Context, name string, user models.UserProfile) (*IntelligenceResult, error)
	RegisterVessel(ctx context.Context, req RegisterVesselRequest) (*RegisterVesselResult, error)
	QueryFleet(ctx context.Context, q FleetQuery) (*FleetQueryResult, error)
	AllocateBerth(ctx context.Context, specs berth.Specs) (*BerthResult, error)
	FetchLiveAisData(ctx context.Context) ([]fleet.Target, error)
	FindVesselsNear(ctx context.Context, center models.Coordinates, radiusNm float64) ([]fleet.Contact, error)
	ScanSector(ctx context.Context, radiusNm float64) (*ScanResult, error)
	ProcessDeparture(ctx context.Context, req MovementRequest) (*MovementResult, error)
	ProcessArrival(ctx context.Context, req MovementRequest) (*MovementResult, error)
}

// IntelligenceResult is a vessel record with its live debt snapshot.
type IntelligenceResult struct {
	effects.Outcome
	Vessel models.VesselRecord
	Debt   finance.DebtStatus
}

// RegisterVesselRequest adds a vessel to the registry.
type RegisterVesselRequest struct {
	Vessel models.VesselRecord
	User   models.UserProfile
}

// RegisterVesselResult is a successful registration.
type RegisterVesselResult struct {
	effects.Outcome
	Vessel models.VesselRecord
}

// Fleet query modes.
const (
	QueryLocate = "LOCATE"
	QueryFilter = "FILTER"
)

// FleetQuery is a LOCATE (by name) or FILTER (by length) query.
type FleetQuery struct {
	Mode      string
	Name      string
	MinLength float64
}

// FleetQueryResult lists matching vessels. LOCATE yields at most one.
type FleetQueryResult struct {
	effects.Outcome
	Vessels []models.VesselRecord
}

// BerthResult is the allocation for a vessel.
type BerthResult struct {
	effects.Outcome
	Allocation berth.Allocation
}

// ScanResult is the radar picture around the marina.
type ScanResult struct {
	effects.Outcome
	Contacts []fleet.Contact
}

// MovementRequest asks for a departure or arrival clearance.
type MovementRequest struct {
	Vessel string
	User   models.UserProfile
}

// MovementResult is a clearance decision. Denials that carry follow-up
// actions (a payment link) are results, not errors.
type MovementResult struct {
	effects.Outcome
	Vessel  models.VesselRecord
	Cleared bool
	Warning string
	Reason  string
	Berth   string
	Tender  string
}

// LegalService is the legal counsel skill.
type LegalService interface {
	Consult(ctx context.Context, query string, user models.UserProfile) (*ConsultationResult, error)
}

// ConsultationResult is the retrieved advice.
type ConsultationResult struct {
	effects.Outcome
	Document   string
	Sections   []legal.Section
	Deflected  bool
	References []string
}

// TechnicService is the maintenance skill.
type TechnicService interface {
	ScheduleService(ctx context.Context, req ScheduleRequest) (*JobResult, error)
	CheckStatus(ctx context.Context, vessel string) (*JobStatusResult, error)
	CompleteJob(ctx context.Context, req CompleteJobRequest) (*JobResult, error)
}

// ScheduleRequest books a technical job.
type ScheduleRequest struct {
	Vessel  string
	JobType string
	Date    string
	Notes   string
}

// CompleteJobRequest closes a job by ID, or the vessel's first open job.
type CompleteJobRequest struct {
	Vessel string
	JobID  string
	User   models.UserProfile
}

// JobResult is a created or completed job.
type JobResult struct {
	effects.Outcome
	Job  models.MaintenanceJob
	Cost float64
}

// JobStatusResult lists a vessel's jobs.
type JobStatusResult struct {
	effects.Outcome
	Jobs []models.MaintenanceJob
}

// FacilityService reports on marina infrastructure and environmental
// compliance. Every report is read-only.
type FacilityService interface {
	InfrastructureStatus(ctx context.Context, user models.UserProfile) (*InfrastructureResult, error)
	GridStatus(ctx context.Context, user models.UserProfile) (*GridResult, error)
	ZeroWasteReport(ctx context.Context, user models.UserProfile) (*ZeroWasteResult, error)
	WaterQuality(ctx context.Context, user models.UserProfile) (*WaterQualityResult, error)
	AuditHSE(ctx context.Context, user models.UserProfile) (*HSEAuditResult, error)
}

// InfrastructureResult is a pedestal and utility line scan.
type InfrastructureResult struct {
	effects.Outcome
	Status string
	Scan   facility.InfrastructureScan
}

// GridResult is the smart-grid load decision.
type GridResult struct {
	effects.Outcome
	Plan facility.GridPlan
}

// ZeroWasteResult is the monthly zero waste compliance report.
type ZeroWasteResult struct {
	effects.Outcome
	Report    facility.WasteReport
	Stats     facility.WasteStats
	NextAudit string
}

// WaterQualityResult is the Blue Flag bathing water check.
type WaterQualityResult struct {
	effects.Outcome
	Status string
	Sample facility.WaterSample
}

// HSEAuditResult is a health, safety and environment audit.
type HSEAuditResult struct {
	effects.Outcome
	Score  int
	Issues []string
}

// CustomerService is the information desk.
type CustomerService interface {
	Inquire(ctx context.Context, query string) (*InquiryResult, error)
}

// InquiryResult is an information desk answer.
type InquiryResult struct {
	effects.Outcome
	Topic  string
	Answer string
}

// SecurityService is the security skill.
type SecurityService interface {
	ReviewCCTV(ctx context.Context, location string) (*CCTVResult, error)
	DispatchGuard(ctx context.Context, location, priority string) (*effects.Outcome, error)
	FlagVessel(ctx context.Context, vessel, reason string, user models.UserProfile) (*effects.Outcome, error)
}

// CCTVResult is a footage review.
type CCTVResult struct {
	effects.Outcome
	Footage secondary.Footage
}

// PasskitService issues access passes.
type PasskitService interface {
	IssuePass(ctx context.Context, req PassRequest) (*PassResult, error)
}

// PassRequest asks for a wallet pass.
type PassRequest struct {
	Vessel string
	Holder string
	Type   string
}

// PassResult is an issued pass.
type PassResult struct {
	effects.Outcome
	PassID      string
	URL         string
	AccessLevel string
	ExpiresAt   time.Time
}
