package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/example/marina/internal/core/access"
	"github.com/example/marina/internal/core/effects"
	"github.com/example/marina/internal/core/finance"
	"github.com/example/marina/internal/logging"
	"github.com/example/marina/internal/models"
	"github.com/example/marina/internal/ports/primary"
	"github.com/example/marina/internal/ports/secondary"
	"github.com/example/marina/internal/telemetry"
)

// FinanceServiceImpl implements the FinanceService interface.
type FinanceServiceImpl struct {
	store    secondary.StateStore
	invoices secondary.InvoiceProvider
	payments secondary.PaymentGateway
	bank     secondary.BankFeed
	policy   access.Policy
	metrics  *telemetry.Metrics
	logger   *zap.Logger
}

// NewFinanceService creates a new FinanceService with injected dependencies.
func NewFinanceService(
	store secondary.StateStore,
	invoices secondary.InvoiceProvider,
	payments secondary.PaymentGateway,
	bank secondary.BankFeed,
	policy access.Policy,
	metrics *telemetry.Metrics,
	logger *zap.Logger,
) *FinanceServiceImpl {
	if metrics == nil {
		metrics = telemetry.Default()
	}
	return &FinanceServiceImpl{
		store:    store,
		invoices: invoices,
		payments: payments,
		bank:     bank,
		policy:   policy,
		metrics:  metrics,
		logger:   logging.OrNop(logger).Named("finance"),
	}
}

// CheckDebt reads the ledger entry of a vessel. It never mutates.
func (s *FinanceServiceImpl) CheckDebt(ctx context.Context, vessel string) (*primary.DebtCheckResult, error) {
	key, name := ledgerKey(ctx, s.store.Fleet(), vessel)
	out := effects.NewOutcome(NodeFinance)
	out.Trace(effects.StepToolExecution, effects.PersonaWorker, "Querying ledger for %s", name)

	entry, err := s.store.Ledger().Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}
	debt := finance.Assess(entry)
	out.Trace(effects.StepAnalysis, effects.PersonaExpert, "%s: %s %.2f EUR, history %s", name, debt.Status, debt.Amount, debt.PaymentHistoryStatus)
	out.Emit(effects.KindInternal, ActDebtStatus, map[string]any{
		"vessel":  name,
		"status":  debt.Status,
		"amount":  debt.Amount,
		"history": debt.PaymentHistoryStatus,
	})

	return &primary.DebtCheckResult{Outcome: *out, Vessel: name, Debt: debt}, nil
}

// CreateInvoice issues an invoice, charges the ledger and generates a payment link.
func (s *FinanceServiceImpl) CreateInvoice(ctx context.Context, req primary.InvoiceRequest) (*primary.InvoiceResult, error) {
	if err := authorize(s.policy, access.OpCreateInvoice, req.User); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Vessel) == "" {
		return nil, effects.Invalid("invoice requires a vessel")
	}

	amount := req.Amount
	if len(req.Items) > 0 {
		amount = 0
		for _, item := range req.Items {
			amount += item.Amount
		}
	}
	if amount <= 0 {
		return nil, effects.Invalid("invoice amount must be greater than zero")
	}
	serviceType := req.ServiceType
	if serviceType == "" {
		serviceType = "MARINA_SERVICES"
	}

	key, name := ledgerKey(ctx, s.store.Fleet(), req.Vessel)
	out := effects.NewOutcome(NodeFinance)
	out.Trace(effects.StepPlanning, effects.PersonaExpert, "Billing %s %.2f EUR for %s", name, amount, serviceType)

	invoice, err := s.invoices.CreateInvoice(ctx, secondary.InvoiceDraft{Vessel: name, ServiceType: serviceType, Amount: amount})
	if err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}
	out.Trace(effects.StepToolExecution, effects.PersonaWorker, "%s draft %s created", invoice.Provider, invoice.ID)

	link, err := s.payments.CreatePaymentLink(ctx, invoice.ID, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment link: %w", err)
	}
	out.Trace(effects.StepToolExecution, effects.PersonaWorker, "Payment link %s issued", link.ID)

	// The charge goes last so a failed provider call leaves the ledger untouched.
	entry, err := s.store.Ledger().Charge(ctx, key, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to charge ledger: %w", err)
	}
	out.MarkMutated()

	out.Emit(effects.KindInternal, ActInvoiceCreated, map[string]any{
		"vessel":      name,
		"invoiceId":   invoice.ID,
		"provider":    invoice.Provider,
		"amount":      amount,
		"serviceType": serviceType,
		"balance":     entry.Balance,
	})
	out.Emit(effects.KindExternal, ActPaymentLink, map[string]any{
		"vessel":    name,
		"invoiceId": invoice.ID,
		"linkId":    link.ID,
		"url":       link.URL,
		"amount":    amount,
	})

	s.logger.Info("invoice created", zap.String("vessel", name), zap.String("invoice", invoice.ID), zap.Float64("amount", amount))
	return &primary.InvoiceResult{Outcome: *out, Invoice: invoice, Link: link, Balance: entry.Balance}, nil
}

// ProcessPayment records a received payment as an action. The ledger is
// changed when the action is applied.
func (s *FinanceServiceImpl) ProcessPayment(ctx context.Context, req primary.PaymentRequest) (*primary.PaymentResult, error) {
	if req.Amount <= 0 {
		return nil, effects.Invalid("payment amount must be greater than zero")
	}
	_, name := ledgerKey(ctx, s.store.Fleet(), req.Vessel)
	out := effects.NewOutcome(NodeFinance)
	out.Trace(effects.StepToolExecution, effects.PersonaWorker, "Payment of %.2f EUR from %s (ref %s)", req.Amount, name, req.Reference)
	out.Emit(effects.KindExternal, ActPaymentProcessed, paymentParams(name, req.Reference, req.Amount, false))
	return &primary.PaymentResult{Outcome: *out}, nil
}

func paymentParams(vessel, reference string, amount float64, applied bool) map[string]any {
	return map[string]any{
		"vessel":        vessel,
		"amount":        amount,
		"reference":     reference,
		"ledgerApplied": applied,
	}
}

// FetchDailySettlement reconciles the bank feed against the ledger.
// Unmatched lines are skipped with an ERROR trace; the batch continues.
func (s *FinanceServiceImpl) FetchDailySettlement(ctx context.Context, user models.UserProfile) (*primary.SettlementResult, error) {
	if err := authorize(s.policy, access.OpDailySettlement, user); err != nil {
		return nil, err
	}

	txs, err := s.bank.Transactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bank feed: %w", err)
	}

	res := &primary.SettlementResult{Outcome: *effects.NewOutcome(NodeFinance)}
	out := &res.Outcome
	out.Trace(effects.StepToolExecution, effects.PersonaWorker, "Bank feed returned %d transactions", len(txs))

	for _, tx := range txs {
		vessel, err := s.resolveTransaction(ctx, tx)
		if err != nil {
			res.Skipped++
			s.metrics.SettlementSkipped.Add(ctx, 1)
			out.Fail("Skipped %s: %v", tx.Reference, err)
			s.logger.Warn("settlement line unmatched", zap.String("reference", tx.Reference), zap.Error(err))
			continue
		}

		entry, applied, err := s.store.Ledger().Credit(ctx, models.NormalizeName(vessel.Name), tx.Reference, tx.Amount)
		if err != nil {
			res.Skipped++
			out.Fail("Ledger credit for %s failed: %v", tx.Reference, err)
			continue
		}
		if !applied {
			res.Duplicates++
			out.Trace(effects.StepAnalysis, effects.PersonaWorker, "%s already settled for %s", tx.Reference, vessel.Name)
			continue
		}

		out.MarkMutated()
		res.Matched++
		res.Total += tx.Amount
		out.Trace(effects.StepCodeOutput, effects.PersonaWorker, "Matched %s to %s: %.2f EUR, balance %.2f", tx.Reference, vessel.Name, tx.Amount, entry.Balance)
		out.Emit(effects.KindExternal, ActPaymentProcessed, paymentParams(vessel.Name, tx.Reference, tx.Amount, true))
	}

	out.Emit(effects.KindInternal, ActSettlementReport, map[string]any{
		"matched":    res.Matched,
		"skipped":    res.Skipped,
		"duplicates": res.Duplicates,
		"total":      res.Total,
	})
	s.logger.Info("daily settlement", zap.Int("matched", res.Matched), zap.Int("skipped", res.Skipped), zap.Int("duplicates", res.Duplicates))
	return res, nil
}

func (s *FinanceServiceImpl) resolveTransaction(ctx context.Context, tx secondary.BankTransaction) (models.VesselRecord, error) {
	fleetRepo := s.store.Fleet()
	if imo, _, ok := fleetRepo.Aliases().Resolve(tx.Description); ok {
		if v, err := fleetRepo.GetByIMO(ctx, imo); err == nil {
			return *v, nil
		}
	}
	if tx.VesselIMO != "" {
		if v, err := fleetRepo.GetByIMO(ctx, tx.VesselIMO); err == nil {
			return *v, nil
		}
	}
	return models.VesselRecord{}, effects.Unreconciled("no vessel matches %q", tx.Description)
}

// ProposePaymentPlan offers a repayment schedule for the vessel's balance.
func (s *FinanceServiceImpl) ProposePaymentPlan(ctx context.Context, vessel string, user models.UserProfile) (*primary.PaymentPlanResult, error) {
	if err := authorize(s.policy, access.OpPaymentPlan, user); err != nil {
		return nil, err
	}
	v, err := findVessel(ctx, s.store.Fleet(), vessel)
	if err != nil {
		return nil, err
	}

	entry, err := s.store.Ledger().Get(ctx, models.NormalizeName(v.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}
	debt := finance.Assess(entry)

	out := effects.NewOutcome(NodeFinance)
	out.Trace(effects.StepAnalysis, effects.PersonaExpert, "%s owes %.2f EUR; history %s, loyalty %s", v.Name, debt.Amount, debt.PaymentHistoryStatus, v.LoyaltyTier)
	if debt.Status == finance.StatusClear {
		return nil, effects.Invalid("%s has no outstanding balance", v.Name)
	}

	plan := finance.ProposePlan(debt.Amount, debt.PaymentHistoryStatus, v.LoyaltyTier)
	out.Trace(effects.StepPlanning, effects.PersonaExpert, "%s", plan.Summary())
	out.Emit(effects.KindInternal, ActPaymentPlan, map[string]any{
		"vessel":            v.Name,
		"balance":           debt.Amount,
		"strictness":        plan.Strictness,
		"installments":      plan.Installments,
		"depositPct":        plan.DepositPct,
		"deposit":           plan.Deposit,
		"installmentAmount": plan.InstallmentAmount,
		"reason":            plan.Reason,
	})
	return &primary.PaymentPlanResult{Outcome: *out, Vessel: v.Name, Plan: plan}, nil
}
