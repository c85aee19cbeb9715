// Package finance contains the pure ledger rules: debt classification,
// payment plan strictness and loyalty tiers.
package finance

import (
	"fmt"
	"math"

	"github.com/example/marina/internal/models"
)

// Debt statuses.
const (
	StatusClear = "CLEAR"
	StatusDebt  = "DEBT"
)

// DebtStatus is the read model of a ledger entry.
type DebtStatus struct {
	Status               string
	Amount               float64
	PaymentHistoryStatus string
}

// Assess classifies a ledger entry. Any positive balance is debt.
func Assess(entry models.LedgerEntry) DebtStatus {
	status := StatusClear
	if entry.Balance > 0 {
		status = StatusDebt
	}
	history := entry.PaymentHistoryStatus
	if history == "" {
		history = models.PaymentRegular
	}
	return DebtStatus{Status: status, Amount: entry.Balance, PaymentHistoryStatus: history}
}

// Plan strictness levels.
const (
	PlanFlexible = "FLEXIBLE"
	PlanStandard = "STANDARD"
	PlanStrict   = "STRICT"
)

// Plan is a proposed repayment schedule.
type Plan struct {
	Strictness        string
	Installments      int
	DepositPct        float64
	Deposit           float64
	InstallmentAmount float64
	Reason            string
}

// ProposePlan picks a plan for an outstanding balance.
// Rule: VIP loyalty always gets the flexible plan; otherwise strictness
// follows payment history (regular, recently late, chronically late).
func ProposePlan(balance float64, history, tier string) Plan {
	var p Plan
	switch {
	case tier == models.TierVIP:
		p = Plan{Strictness: PlanFlexible, Installments: 3, DepositPct: 0,
			Reason: "VIP loyalty tier overrides payment history"}
	case history == models.PaymentChronicallyLate:
		p = Plan{Strictness: PlanStrict, Installments: 1, DepositPct: 100,
			Reason: "chronically late payer: full settlement before further services"}
	case history == models.PaymentRecentlyLate:
		p = Plan{Strictness: PlanStandard, Installments: 2, DepositPct: 30,
			Reason: "recently late payer: deposit required"}
	default:
		p = Plan{Strictness: PlanFlexible, Installments: 3, DepositPct: 0,
			Reason: "regular payment history"}
	}

	amount := math.Max(balance, 0)
	p.Deposit = round2(amount * p.DepositPct / 100)
	remaining := amount - p.Deposit
	switch {
	case remaining <= 0:
		p.InstallmentAmount = 0
	case p.DepositPct > 0:
		p.InstallmentAmount = round2(remaining / float64(p.Installments))
	default:
		p.InstallmentAmount = round2(amount / float64(p.Installments))
	}
	return p
}

// Summary renders the plan terms on one line.
func (p Plan) Summary() string {
	if p.DepositPct >= 100 {
		return fmt.Sprintf("%s: full payment of %.2f due now", p.Strictness, p.Deposit)
	}
	return fmt.Sprintf("%s: %.0f%% deposit (%.2f) then %d x %.2f",
		p.Strictness, p.DepositPct, p.Deposit, p.Installments, p.InstallmentAmount)
}

// PointsPerPayment is the loyalty score earned by each processed payment.
const PointsPerPayment = 10

// LoyaltyTier maps a loyalty score to a tier.
func LoyaltyTier(score int) string {
	switch {
	case score >= 80:
		return models.TierVIP
	case score >= 50:
		return models.TierGold
	}
	return models.TierStandard
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
