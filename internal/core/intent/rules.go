// Package intent classifies operator commands with an ordered rule table.
// The first matching rule wins; there is no scoring, so overlapping
// rules are resolved by their position in the table.
package intent

import (
	"regexp"
	"strings"

	"github.com/example/marina/internal/core/access"
	"github.com/example/marina/internal/core/customer"
)

// Input is what a rule predicate sees.
type Input struct {
	Text      string // lower-cased command
	HasVessel bool   // the command names a registered vessel
}

// Rule maps a predicate to an operation.
type Rule struct {
	Name      string
	Operation access.Operation
	Match     func(in Input) bool
}

var vesselWord = regexp.MustCompile(`\b(?:s/y|m/y|m/v|m/t|s/v|vessel|yacht|boat)\b`)

func contains(words ...string) func(Input) bool {
	return func(in Input) bool {
		for _, w := range words {
			if strings.Contains(in.Text, w) {
				return true
			}
		}
		return false
	}
}

func matches(pattern string) func(Input) bool {
	re := regexp.MustCompile(pattern)
	return func(in Input) bool { return re.MatchString(in.Text) }
}

func both(a, b func(Input) bool) func(Input) bool {
	return func(in Input) bool { return a(in) && b(in) }
}

func namesVessel(in Input) bool {
	return in.HasVessel || vesselWord.MatchString(in.Text)
}

var table = []Rule{
	{"registration", access.OpRegistration,
		both(matches(`\bregist(?:er|ration)\b`), matches(`\b(?:vessel|yacht|boat|imo|s/y|m/y)\b`))},
	{"daily-settlement", access.OpDailySettlement,
		contains("settlement", "reconcile", "bank feed")},
	{"payment-confirmation", access.OpPaymentConfirmation,
		matches(`\b(?:payment received|confirm(?:ed)? (?:the )?payment|paid)\b`)},
	{"invoice", access.OpCreateInvoice,
		matches(`\b(?:invoice|bill)\b`)},
	{"payment-plan", access.OpPaymentPlan,
		contains("payment plan", "installment", "instalment")},
	{"facility-report", access.OpFacilityReport,
		matches(`facilit|pedestal|\bgrid\b|blue flag|zero waste|\bhse\b|infrastructure|water quality|recycl`)},
	{"debt-check", access.OpDebtCheck,
		matches(`\b(?:debt|balance|owe[sd]?|outstanding|pay)\b`)},
	{"departure", access.OpDeparture,
		contains("depart", "leaving", "cast off")},
	{"arrival", access.OpArrival,
		contains("arriv", "approach", "inbound")},
	{"berth", access.OpBerthAllocation,
		contains("berth", "mooring")},
	{"fleet-intelligence", access.OpFleetIntelligence,
		both(contains("intel", "profile", "dossier"), namesVessel)},
	{"fleet-filter", access.OpFleetQuery,
		matches(`(?:longer|larger|greater|bigger)\s+than\s+\d|\bover\s+\d+(?:\.\d+)?\s*m\b`)},
	{"fleet-locate", access.OpFleetQuery,
		both(contains("where is", "locate", "find", "position of"), namesVessel)},
	{"radar-scan", access.OpRadarScan,
		contains("scan", "radar", "traffic", "nearby")},
	{"job-completion", access.OpCompleteJob,
		matches(`\bcomplete(?:d)?\s+(?:the\s+)?job\b|\bjob\s+(?:done|complete(?:d)?)\b|\bjob-\d+\s+(?:is\s+)?(?:done|complete(?:d)?)\b`)},
	{"job-status", access.OpJobStatus,
		matches(`\b(?:job|maintenance|technical|service)\s+status\b`)},
	{"service-scheduling", access.OpScheduleService,
		contains("haul out", "haul-out", "haulout", "engine service", "repair", "hull clean", "schedule service", "maintenance")},
	{"flag-vessel", access.OpFlagVessel,
		matches(`\bflag\b.*\b(?:vessel|yacht|boat)\b|\bsecurity hold\b|\bdetain`)},
	{"security-incident", access.OpSecurityIncident,
		contains("cctv", "incident", "damage", "intruder", "theft", "suspicious")},
	{"pass-issuance", access.OpIssuePass,
		matches(`\bpass(?:es)?\b|access card|key card`)},
	{"legal-consultation", access.OpLegalConsultation,
		matches(`regulation|\brules?\b|contract|penalt|legal|\blaws?\b|\bfees?\b|kvkk|gdpr|privacy|colregs|setur`)},
	{"general-inquiry", access.OpGeneralInquiry,
		func(in Input) bool { return customer.Mentions(in.Text) }},
}

// Rules returns the rule table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(table))
	copy(out, table)
	return out
}

// Classify returns the first rule matching the command.
func Classify(text string, hasVessel bool) (Rule, bool) {
	in := Input{Text: strings.ToLower(text), HasVessel: hasVessel}
	for _, r := range table {
		if r.Match(in) {
			return r, true
		}
	}
	return Rule{}, false
}
