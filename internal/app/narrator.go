package app

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/example/marina/internal/core/effects"
	"github.com/example/marina/internal/core/facility"
)

var printer = message.NewPrinter(language.English)

// money formats an amount in euros with thousands separators.
func money(amount float64) string {
	return printer.Sprintf("€%.2f", amount)
}

type narrator func(a effects.Action) string

// narrators derive response text from actions. Actions without an entry
// are bookkeeping for the applier and add no text.
var narrators = map[string]narrator{
	ActDebtStatus: func(a effects.Action) string {
		if a.String("status") == "CLEAR" {
			return fmt.Sprintf("%s has no outstanding balance.", a.String("vessel"))
		}
		return fmt.Sprintf("%s has an outstanding balance of %s (payment history: %s).",
			a.String("vessel"), money(a.Float("amount")), a.String("history"))
	},
	ActInvoiceCreated: func(a effects.Action) string {
		return fmt.Sprintf("Invoice %s issued to %s for %s (%s). Balance now %s.",
			a.String("invoiceId"), a.String("vessel"), money(a.Float("amount")), a.String("serviceType"), money(a.Float("balance")))
	},
	ActPaymentLink: func(a effects.Action) string {
		return fmt.Sprintf("Payment link for %s: %s", money(a.Float("amount")), a.String("url"))
	},
	ActPaymentProcessed: func(a effects.Action) string {
		ref := ""
		if r := a.String("reference"); r != "" {
			ref = " (ref " + r + ")"
		}
		return fmt.Sprintf("Payment of %s received from %s%s.", money(a.Float("amount")), a.String("vessel"), ref)
	},
	ActSettlementReport: func(a effects.Action) string {
		return fmt.Sprintf("Daily settlement: %d matched (%s), %d skipped, %d already settled.",
			a.Int("matched"), money(a.Float("total")), a.Int("skipped"), a.Int("duplicates"))
	},
	ActPaymentPlan: func(a effects.Action) string {
		if a.Float("depositPct") >= 100 {
			return fmt.Sprintf("Payment plan for %s (%s): full settlement of %s required. %s.",
				a.String("vessel"), a.String("strictness"), money(a.Float("balance")), a.String("reason"))
		}
		return fmt.Sprintf("Payment plan for %s (%s): deposit %s, then %d installments of %s. %s.",
			a.String("vessel"), a.String("strictness"), money(a.Float("deposit")),
			a.Int("installments"), money(a.Float("installmentAmount")), a.String("reason"))
	},
	ActVesselIntel: func(a effects.Action) string {
		var b strings.Builder
		fmt.Fprintf(&b, "%s (IMO %s), %s, flag %s, LOA %.1fm. Status %s at %s.",
			a.String("vessel"), a.String("imo"), a.String("type"), a.String("flag"), a.Float("loa"),
			a.String("status"), a.String("location"))
		if last, next := a.String("lastPort"), a.String("nextPort"); last != "" || next != "" {
			fmt.Fprintf(&b, " Voyage %s to %s", displayOr(last, "?"), displayOr(next, "?"))
			if eta := a.String("eta"); eta != "" {
				fmt.Fprintf(&b, ", ETA %s", eta)
			}
			b.WriteString(".")
		}
		fmt.Fprintf(&b, " Balance %s, loyalty %s.", money(a.Float("debt")), a.String("tier"))
		return b.String()
	},
	ActVesselRegistered: func(a effects.Action) string {
		return fmt.Sprintf("%s registered (IMO %s, LOA %.1fm).", a.String("vessel"), a.String("imo"), a.Float("loa"))
	},
	ActFleetQuery: func(a effects.Action) string {
		summaries := a.Strings("summaries")
		if len(summaries) == 0 {
			if a.String("mode") == "LOCATE" {
				return fmt.Sprintf("No contact for %q.", a.String("query"))
			}
			return fmt.Sprintf("No vessels with %s.", a.String("query"))
		}
		return fmt.Sprintf("%d vessel(s) for %s:\n- %s", len(summaries), a.String("query"), strings.Join(summaries, "\n- "))
	},
	ActBerthAssigned: func(a effects.Action) string {
		s := fmt.Sprintf("Berth assigned: %s. %s.", a.String("berth"), a.String("reason"))
		if a.Bool("relocation") {
			s += " Relocation required within 24h."
		}
		return s
	},
	ActRadarScan: func(a effects.Action) string {
		contacts := a.Strings("contacts")
		if len(contacts) == 0 {
			return fmt.Sprintf("Radar scan %.0fnm: no contacts.", a.Float("radiusNm"))
		}
		return fmt.Sprintf("Radar scan %.0fnm: %d contacts.\n- %s", a.Float("radiusNm"), len(contacts), strings.Join(contacts, "\n- "))
	},
	ActDepartureCleared: func(a effects.Action) string {
		s := fmt.Sprintf("%s cleared for departure. Tender %s assigned, squawk %s.",
			a.String("vessel"), a.String("tender"), a.String("squawk"))
		if w := a.String("warning"); w != "" {
			s += " Warning: " + w + "."
		}
		return s
	},
	ActDepartureDenied: func(a effects.Action) string {
		return fmt.Sprintf("Departure denied for %s: %s.", a.String("vessel"), a.String("reason"))
	},
	ActArrivalApproved: func(a effects.Action) string {
		s := fmt.Sprintf("Arrival approved for %s. Proceed to %s with pilot %s, squawk %s.",
			a.String("vessel"), a.String("berth"), a.String("tender"), a.String("squawk"))
		if w := a.String("warning"); w != "" {
			s += " Note: " + w + "."
		}
		return s
	},
	ActArrivalDiverted: func(a effects.Action) string {
		return fmt.Sprintf("Approach denied for %s: %s. Proceed to %s (holding area) and monitor Ch 14.",
			a.String("vessel"), a.String("reason"), a.String("location"))
	},
	ActLegalConsultation: func(a effects.Action) string {
		if a.Bool("deflected") {
			return a.String("advice")
		}
		refs := a.Strings("references")
		if len(refs) == 0 {
			return a.String("advice")
		}
		return fmt.Sprintf("According to %s (%s):\n\n%s", a.String("document"), strings.Join(refs, ", "), a.String("advice"))
	},
	ActServiceScheduled: func(a effects.Action) string {
		return fmt.Sprintf("%s booked: %s for %s on %s with %s.",
			a.String("jobId"), a.String("jobType"), a.String("vessel"), a.String("date"), a.String("contractor"))
	},
	ActStatusReport: func(a effects.Action) string {
		jobs := a.Strings("jobs")
		if len(jobs) == 0 {
			return fmt.Sprintf("No technical jobs on file for %s.", a.String("vessel"))
		}
		return fmt.Sprintf("Technical jobs for %s:\n- %s", a.String("vessel"), strings.Join(jobs, "\n- "))
	},
	ActJobCompleted: func(a effects.Action) string {
		return fmt.Sprintf("%s (%s) completed for %s. %s charged to the account.",
			a.String("jobId"), a.String("jobType"), a.String("vessel"), money(a.Float("cost")))
	},
	ActInfrastructure: func(a effects.Action) string {
		alerts := a.Strings("alerts")
		s := fmt.Sprintf("Infrastructure %s: %.0f%% operational, %d alert(s).", a.String("status"), a.Float("operational"), len(alerts))
		if len(alerts) > 0 {
			s += "\n- " + strings.Join(alerts, "\n- ")
		}
		return s
	},
	ActGridStatus: func(a effects.Action) string {
		return fmt.Sprintf("Grid load %d%%: %s.", a.Int("load"), a.String("optimization"))
	},
	ActZeroWasteReport: func(a effects.Action) string {
		return fmt.Sprintf("Zero waste report: %s, recycling rate %d%% (target >%d%%), hazardous %.0fkg declared. Next audit %s.",
			a.String("compliance"), a.Int("recyclingRate"), a.Int("target"), a.Float("hazardous"), a.String("nextAudit"))
	},
	ActWaterQuality: func(a effects.Action) string {
		verdict := "Blue Flag active"
		if a.String("status") != facility.FlagBlue {
			verdict = "beach closed"
		}
		return fmt.Sprintf("Water quality %s (%s): E. coli %d, enterococci %d cfu/100ml at %s. %s.",
			a.String("status"), a.String("date"), a.Int("eColi"), a.Int("enterococci"), a.String("location"), verdict)
	},
	ActHSEAudit: func(a effects.Action) string {
		s := fmt.Sprintf("HSE score %d/100, %d open issue(s).", a.Int("score"), a.Int("open"))
		if issues := a.Strings("issues"); len(issues) > 0 {
			s += "\n- " + strings.Join(issues, "\n- ")
		}
		return s
	},
	ActCustomerInfo: func(a effects.Action) string {
		return a.String("answer")
	},
	ActCCTVReview: func(a effects.Action) string {
		if !a.Bool("confirmed") {
			return fmt.Sprintf("CCTV review at %s: nothing detected.", a.String("location"))
		}
		return fmt.Sprintf("CCTV review at %s: %s Evidence %s.", a.String("location"), a.String("details"), a.String("evidenceId"))
	},
	ActSecurityDispatch: func(a effects.Action) string {
		return fmt.Sprintf("%s dispatched to %s (%s).", a.String("unit"), a.String("location"), a.String("priority"))
	},
	ActFlagVessel: func(a effects.Action) string {
		return fmt.Sprintf("%s flagged %s: %s (%s).", a.String("vessel"), a.String("status"), a.String("restriction"), a.String("reason"))
	},
	ActPassIssued: func(a effects.Action) string {
		return fmt.Sprintf("%s pass %s issued to %s (%s), valid until %s: %s",
			a.String("type"), a.String("passId"), a.String("holder"), a.String("accessLevel"), a.String("expiresAt"), a.String("url"))
	},
}

// Narrate derives response text from actions, one line per narrated action.
func Narrate(actions []effects.Action) string {
	var lines []string
	for _, a := range actions {
		if n, ok := narrators[a.Name]; ok {
			if line := n(a); line != "" {
				lines = append(lines, line)
			}
		}
	}
	return strings.Join(lines, "\n")
}
