package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/example/marina/internal/core/access"
	"github.com/example/marina/internal/core/berth"
	"github.com/example/marina/internal/core/effects"
	"github.com/example/marina/internal/core/facility"
	"github.com/example/marina/internal/core/intent"
	"github.com/example/marina/internal/core/maintenance"
	"github.com/example/marina/internal/core/passkit"
	"github.com/example/marina/internal/logging"
	"github.com/example/marina/internal/models"
	"github.com/example/marina/internal/ports/primary"
	"github.com/example/marina/internal/ports/secondary"
	"github.com/example/marina/internal/telemetry"
)

// SystemErrorText answers any request that panicked.
const SystemErrorText = "System error: the request could not be completed."

// DefaultHealthTimeout bounds the remote core health check.
const DefaultHealthTimeout = 2 * time.Second

// RouterDeps are the collaborators of the Router. Remote is optional.
type RouterDeps struct {
	Store    secondary.StateStore
	Policy   access.Policy
	Finance  primary.FinanceService
	Fleet    primary.FleetService
	Legal    primary.LegalService
	Technic  primary.TechnicService
	Customer primary.CustomerService
	Security primary.SecurityService
	Passkit  primary.PasskitService
	Facility primary.FacilityService

	Remote        secondary.RemoteCore
	HealthTimeout time.Duration

	Metrics *telemetry.Metrics
	Tracer  trace.Tracer
	Logger  *zap.Logger
}

// command is a classified request on its way to a skill.
type command struct {
	text   string
	rule   intent.Rule
	user   models.UserProfile
	params intent.Params
	vessel string
}

type handler func(ctx context.Context, c *command) (*effects.Outcome, error)

// Router implements RouterService: classify, authorize, dispatch, narrate.
type Router struct {
	deps     RouterDeps
	logger   *zap.Logger
	handlers map[access.Operation]handler
}

// NewRouter creates a Router.
func NewRouter(deps RouterDeps) *Router {
	if deps.Metrics == nil {
		deps.Metrics = telemetry.Default()
	}
	if deps.Tracer == nil {
		deps.Tracer = telemetry.Tracer()
	}
	if deps.HealthTimeout <= 0 {
		deps.HealthTimeout = DefaultHealthTimeout
	}
	r := &Router{deps: deps, logger: logging.OrNop(deps.Logger).Named("router")}
	r.handlers = r.handlerTable()
	return r
}

// ProcessRequest handles one command. It never returns an error: failures
// become text and ERROR traces.
func (r *Router) ProcessRequest(ctx context.Context, req primary.Request) (resp *primary.Response) {
	ctx, span := telemetry.StartSpan(ctx, r.deps.Tracer, "router.ProcessRequest")
	defer span.End()

	resp = &primary.Response{}
	defer func() {
		if rec := recover(); rec != nil {
			resp.Text = SystemErrorText
			resp.Actions = nil
			resp.Traces = append(resp.Traces, effects.NewTrace(NodeOrchestrator, effects.StepError, effects.PersonaOrchestrator,
				fmt.Sprintf("recovered from panic: %v", rec)))
			span.SetStatus(codes.Error, "panic")
			r.logger.Error("request panicked", zap.Any("panic", rec), zap.String("rule", resp.Rule))
		}
	}()

	r.deps.Metrics.Requests.Add(ctx, 1)

	if r.deps.Remote != nil && r.forward(ctx, req, resp) {
		span.SetAttributes(telemetry.AttrRemote.Bool(true))
		return resp
	}

	r.processLocal(ctx, req, resp)
	span.SetAttributes(
		telemetry.AttrIntent.String(resp.Rule),
		telemetry.AttrOperation.String(string(resp.Operation)),
		telemetry.AttrDenied.Bool(resp.Denied),
	)
	return resp
}

// forward sends the request to the remote core when it answers its health
// check in time. Any failure falls back to local processing.
func (r *Router) forward(ctx context.Context, req primary.Request, resp *primary.Response) bool {
	healthCtx, cancel := context.WithTimeout(ctx, r.deps.HealthTimeout)
	healthy := r.deps.Remote.Healthy(healthCtx)
	cancel()

	if !healthy {
		r.note(resp, effects.StepAnalysis, "remote core offline, local mode")
		return false
	}

	remote, err := r.deps.Remote.Process(ctx, req.Text, req.User)
	if err != nil {
		r.note(resp, effects.StepAnalysis, "remote core offline, local mode (%v)", err)
		r.logger.Warn("remote core failed", zap.Error(err))
		return false
	}

	r.note(resp, effects.StepRouting, "remote")
	resp.Text = remote.Text
	resp.Remote = true
	return true
}

func (r *Router) processLocal(ctx context.Context, req primary.Request, resp *primary.Response) {
	text := strings.TrimSpace(req.Text)
	_, registered, hasVessel := r.deps.Store.Fleet().Aliases().Resolve(text)

	rule, ok := intent.Classify(text, hasVessel)
	if !ok {
		r.note(resp, effects.StepRouting, "No intent rule matched; handing over to the chat fallback")
		return
	}
	resp.Rule = rule.Name
	resp.Operation = rule.Operation
	r.note(resp, effects.StepRouting, "Intent %s (%s)", rule.Name, rule.Operation)

	if check := access.CheckAccess(r.deps.Policy, rule.Operation, req.User); !check.Allowed {
		r.deny(ctx, resp, check.Reason)
		return
	}

	params := intent.Extract(text)
	cmd := &command{
		text:   text,
		rule:   rule,
		user:   req.User,
		params: params,
		vessel: firstNonEmpty(registered, params.Name, req.User.VesselName),
	}

	h, ok := r.handlers[rule.Operation]
	if !ok {
		r.fail(ctx, resp, fmt.Errorf("no handler for %s", rule.Operation))
		return
	}

	out, err := h(ctx, cmd)
	if err != nil {
		r.fail(ctx, resp, err)
		return
	}

	resp.Actions = append(resp.Actions, out.Actions...)
	resp.Traces = append(resp.Traces, out.Traces...)
	resp.Mutated = out.Mutated
	resp.Text = Narrate(out.Actions)
	r.note(resp, effects.StepOutput, "%s produced %d action(s)", out.Node, len(out.Actions))
}

func (r *Router) note(resp *primary.Response, step effects.Step, format string, args ...any) {
	resp.Traces = append(resp.Traces, effects.NewTrace(NodeOrchestrator, step, effects.PersonaOrchestrator, fmt.Sprintf(format, args...)))
}

// deny turns an access failure into a text-only response.
func (r *Router) deny(ctx context.Context, resp *primary.Response, reason string) {
	resp.Denied = true
	resp.Actions = nil
	resp.Text = "Access denied: " + reason
	resp.Traces = append(resp.Traces, effects.NewTrace(NodeOrchestrator, effects.StepError, effects.PersonaExpert, resp.Text))
	r.deps.Metrics.AccessDenials.Add(ctx, 1)
	r.logger.Info("access denied", zap.String("rule", resp.Rule), zap.String("reason", reason))
}

func (r *Router) fail(ctx context.Context, resp *primary.Response, err error) {
	if errors.Is(err, effects.ErrAccessDenied) {
		r.deny(ctx, resp, strings.TrimPrefix(err.Error(), effects.ErrAccessDenied.Error()+": "))
		return
	}

	switch {
	case errors.Is(err, effects.ErrValidation):
		resp.Text = "Request rejected: " + strings.TrimPrefix(err.Error(), effects.ErrValidation.Error()+": ")
	case errors.Is(err, effects.ErrNotFound):
		resp.Text = "Not found: " + strings.TrimPrefix(err.Error(), effects.ErrNotFound.Error()+": ")
	default:
		resp.Text = "Request failed: " + err.Error()
		r.logger.Error("skill failed", zap.String("rule", resp.Rule), zap.Error(err))
	}
	resp.Traces = append(resp.Traces, effects.NewTrace(NodeOrchestrator, effects.StepError, effects.PersonaWorker, err.Error()))
}

func (r *Router) handlerTable() map[access.Operation]handler {
	d := r.deps
	return map[access.Operation]handler{
		access.OpRegistration: func(ctx context.Context, c *command) (*effects.Outcome, error) {
			p := c.params
			res, err := d.Fleet.RegisterVessel(ctx, primary.RegisterVesselRequest{
				Vessel: models.VesselRecord{
					Name: p.Name, IMO: p.IMO, Type: p.VesselType, Flag: p.Flag,
					LOA: p.LOA, Beam: p.Beam, Draft: p.Draft,
				},
				User: c.user,
			})
			return outcomeOf(res, err)
		},
		access.OpDailySettlement: func(ctx context.Context, c *command) (*effects.Outcome, error) {
			res, err := d.Finance.FetchDailySettlement(ctx, c.user)
			return outcomeOf(res, err)
		},
		access.OpPaymentConfirmation: func(ctx context.Context, c *command) (*effects.Outcome, error) {
			if err := needVessel(c); err != nil {
				return nil, err
			}
			res, err := d.Finance.ProcessPayment(ctx, primary.PaymentRequest{
				Vessel: c.vessel, Reference: c.params.Reference, Amount: c.params.Amount,
			})
			return outcomeOf(res, err)
		},
		access.OpCreateInvoice: func(ctx context.Context, c *command) (*effects.Outcome, error) {
			if err := needVessel(c); err != nil {
				return nil, err
			}
			res, err := d.Finance.CreateInvoice(ctx, primary.InvoiceRequest{
				Vessel: c.vessel, Amount: c.params.Amount, ServiceType: serviceType(c.text), User: c.user,
			})
			return outcomeOf(res, err)
		},
		access.OpPaymentPlan: func(ctx context.Context, c *command) (*effects.Outcome, error) {
			if err := needVessel(c); err != nil {
				return nil, err
			}
			res, err := d.Finance.ProposePaymentPlan(ctx, c.vessel, c.user)
			return outcomeOf(res, err)
		},
		access.OpDebtCheck: func(ctx context.Context, c *command) (*effects.Outcome, error) {
			if err := needVessel(c); err != nil {
				return nil, err
			}
			res, err := d.Finance.CheckDebt(ctx, c.vessel)
			return outcomeOf(res, err)
		},
		access.OpDeparture: func(ctx context.Context, c *command) (*effects.Outcome, error) {
			if err := needVessel(c); err != nil {
				return nil, err
			}
			res, err := d.Fleet.ProcessDeparture(ctx, primary.MovementRequest{Vessel: c.vessel, User: c.user})
			return outcomeOf(res, err)
		},
		access.OpArrival: func(ctx context.Context, c *command) (*effects.Outcome, error) {
			if err := needVessel(c); err != nil {
				return nil, err
			}
			res, err := d.Fleet.ProcessArrival(ctx, primary.MovementRequest{Vessel: c.vessel, User: c.user})
			return outcomeOf(res, err)
		},
		access.OpBerthAllocation: func(ctx context.Context, c *command) (*effects.Outcome, error) {
			specs := berth.Specs{LOA: c.params.LOA, Beam: c.params.Beam, Draft: c.params.Draft}
			if specs.LOA == 0 && c.vessel != "" {
				if v, err := findVessel(ctx, d.Store.Fleet(), c.vessel); err == nil {
					specs = berth.Specs{LOA: v.LOA, Beam: v.Beam, Draft: v.Draft}
				}
			}
			res, err := d.Fleet.AllocateBerth(ctx, specs)
			return outcomeOf(res, err)
		},
		access.OpFleetIntelligence: func(ctx context.Context, c *command) (*effects.Outcome, error) {
			if err := needVessel(c); err != nil {
				return nil, err
			}
			res, err := d.Fleet.GetVesselIntelligence(ctx, c.vessel, c.user)
			return outcomeOf(res, err)
		},
		access.OpFleetQuery: func(ctx context.Context, c *command) (*effects.Outcome, error) {
			q := primary.FleetQuery{Mode: primary.QueryLocate, Name: c.vessel}
			if c.rule.Name == "fleet-filter" {
				q = primary.FleetQuery{Mode: primary.QueryFilter, MinLength: c.params.MinLength}
			}
			res, err := d.Fleet.QueryFleet(ctx, q)
			return outcomeOf(res, err)
		},
		access.OpRadarScan: func(ctx context.Context, c *command) (*effects.Outcome, error) {
			res, err := d.Fleet.ScanSector(ctx, c.params.RadiusNm)
			return outcomeOf(res, err)
		},
		access.OpCompleteJob: func(ctx context.Context, c *command) (*effects.Outcome, error) {
			res, err := d.Technic.CompleteJob(ctx, primary.CompleteJobRequest{Vessel: c.vessel, JobID: c.params.JobID, User: c.user})
			return outcomeOf(res, err)
		},
		access.OpJobStatus: func(ctx context.Context, c *command) (*effects.Outcome, error) {
			res, err := d.Technic.CheckStatus(ctx, c.vessel)
			return outcomeOf(res, err)
		},
		access.OpScheduleService: func(ctx context.Context, c *command) (*effects.Outcome, error) {
			res, err := d.Technic.ScheduleService(ctx, primary.ScheduleRequest{
				Vessel: c.vessel, JobType: maintenance.ParseJobType(c.text), Date: c.params.Date, Notes: c.text,
			})
			return outcomeOf(res, err)
		},
		access.OpFlagVessel: func(ctx context.Context, c *command) (*effects.Outcome, error) {
			if err := needVessel(c); err != nil {
				return nil, err
			}
			return d.Security.FlagVessel(ctx, c.vessel, c.text, c.user)
		},
		access.OpSecurityIncident: func(ctx context.Context, c *command) (*effects.Outcome, error) {
			review, err := d.Security.ReviewCCTV(ctx, c.params.Location)
			if err != nil {
				return nil, err
			}
			dispatch, err := d.Security.DispatchGuard(ctx, c.params.Location, c.params.Priority)
			if err != nil {
				return nil, err
			}
			out := effects.NewOutcome(NodeSecurity)
			out.Merge(&review.Outcome)
			out.Merge(dispatch)
			return out, nil
		},
		access.OpIssuePass: func(ctx context.Context, c *command) (*effects.Outcome, error) {
			res, err := d.Passkit.IssuePass(ctx, primary.PassRequest{
				Vessel: c.vessel, Holder: c.params.Holder, Type: passkit.ParseType(c.text),
			})
			return outcomeOf(res, err)
		},
		access.OpFacilityReport: func(ctx context.Context, c *command) (*effects.Outcome, error) {
			switch facility.ParseTopic(c.text) {
			case facility.TopicGrid:
				return outcomeOf(d.Facility.GridStatus(ctx, c.user))
			case facility.TopicZeroWaste:
				return outcomeOf(d.Facility.ZeroWasteReport(ctx, c.user))
			case facility.TopicWaterQuality:
				return outcomeOf(d.Facility.WaterQuality(ctx, c.user))
			case facility.TopicHSE:
				return outcomeOf(d.Facility.AuditHSE(ctx, c.user))
			}
			return outcomeOf(d.Facility.InfrastructureStatus(ctx, c.user))
		},
		access.OpLegalConsultation: func(ctx context.Context, c *command) (*effects.Outcome, error) {
			res, err := d.Legal.Consult(ctx, c.text, c.user)
			return outcomeOf(res, err)
		},
		access.OpGeneralInquiry: func(ctx context.Context, c *command) (*effects.Outcome, error) {
			res, err := d.Customer.Inquire(ctx, c.text)
			return outcomeOf(res, err)
		},
	}
}

// outcomeOf unwraps the Outcome embedded in a skill result.
func outcomeOf(res interface{ Result() *effects.Outcome }, err error) (*effects.Outcome, error) {
	if err != nil {
		return nil, err
	}
	return res.Result(), nil
}

func needVessel(c *command) error {
	if c.vessel == "" {
		return effects.Invalid("%s needs a vessel name", c.rule.Name)
	}
	return nil
}

func serviceType(text string) string {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "berth"), strings.Contains(t, "mooring"):
		return "BERTHING"
	case strings.Contains(t, "fuel"), strings.Contains(t, "diesel"):
		return "FUEL"
	case strings.Contains(t, "electric"), strings.Contains(t, "water"):
		return "UTILITIES"
	case strings.Contains(t, "haul"), strings.Contains(t, "repair"), strings.Contains(t, "engine"):
		return "TECHNICAL"
	}
	return "MARINA_SERVICES"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
