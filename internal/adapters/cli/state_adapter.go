package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/example/marina/internal/core/finance"
	"github.com/example/marina/internal/models"
	"github.com/example/marina/internal/ports/secondary"
)

const rule = "────────────────────────────────────────────────────────────────"

var printer = message.NewPrinter(language.English)

// StateAdapter prints tables of the marina state and the audit log.
type StateAdapter struct {
	store secondary.StateStore
	audit secondary.AuditLog
	out   io.Writer
}

// NewStateAdapter creates a new StateAdapter. audit may be nil.
func NewStateAdapter(store secondary.StateStore, audit secondary.AuditLog, out io.Writer) *StateAdapter {
	return &StateAdapter{store: store, audit: audit, out: out}
}

// Fleet lists registered vessels, optionally only those longer than minLOA.
func (a *StateAdapter) Fleet(ctx context.Context, minLOA float64) error {
	vessels, err := a.store.Fleet().List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list fleet: %w", err)
	}

	fmt.Fprintf(a.out, "\n%-10s %-20s %-7s %-10s %s\n", "IMO", "NAME", "LOA", "STATUS", "LOCATION")
	fmt.Fprintln(a.out, rule)
	for _, v := range vessels {
		if v.LOA <= minLOA {
			continue
		}
		name := v.Name
		if v.OnLegalHold() {
			name += color.New(color.FgRed).Sprint(" [RED]")
		}
		fmt.Fprintf(a.out, "%-10s %-20s %-7.1f %-10s %s\n", v.IMO, name, v.LOA, v.Status, v.Location)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Ledger lists balances, debtors first.
func (a *StateAdapter) Ledger(ctx context.Context) error {
	entries, err := a.store.Ledger().All(ctx)
	if err != nil {
		return fmt.Errorf("failed to read ledger: %w", err)
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		bi, bj := entries[keys[i]].Balance, entries[keys[j]].Balance
		if bi != bj {
			return bi > bj
		}
		return keys[i] < keys[j]
	})

	fmt.Fprintf(a.out, "\n%-22s %12s  %s\n", "VESSEL", "BALANCE", "HISTORY")
	fmt.Fprintln(a.out, rule)
	for _, k := range keys {
		debt := finance.Assess(entries[k])
		amount := printer.Sprintf("€%.2f", debt.Amount)
		if debt.Status == finance.StatusDebt {
			amount = color.New(color.FgYellow).Sprint(amount)
		}
		fmt.Fprintf(a.out, "%-22s %12s  %s\n", k, amount, debt.PaymentHistoryStatus)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Jobs lists maintenance jobs.
func (a *StateAdapter) Jobs(ctx context.Context) error {
	jobs, err := a.store.Jobs().List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list jobs: %w", err)
	}
	if len(jobs) == 0 {
		fmt.Fprintln(a.out, "No jobs found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-9s %-16s %-15s %-14s %s\n", "ID", "VESSEL", "TYPE", "STATUS", "DATE")
	fmt.Fprintln(a.out, rule)
	for _, j := range jobs {
		status := j.Status
		if status == models.JobCompleted {
			status = color.New(color.FgHiGreen).Sprint(status)
		}
		fmt.Fprintf(a.out, "%-9s %-16s %-15s %-14s %s\n", j.ID, j.VesselName, j.JobType, status, j.ScheduledDate)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Audit lists the most recent console requests.
func (a *StateAdapter) Audit(ctx context.Context, limit int) error {
	if a.audit == nil {
		return fmt.Errorf("audit log is not configured")
	}
	records, err := a.audit.Recent(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to read audit log: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(a.out, "No requests logged")
		return nil
	}

	for _, r := range records {
		outcome := strings.Join(r.Actions, ", ")
		if r.Denied {
			outcome = color.New(color.FgRed).Sprint("denied")
		} else if outcome == "" {
			outcome = "-"
		}
		fmt.Fprintf(a.out, "%s  %-10s %-20s %q\n    %s\n",
			r.Timestamp.Local().Format("2006-01-02 15:04:05"), r.ActorID, r.Rule, r.Command, outcome)
	}
	return nil
}
