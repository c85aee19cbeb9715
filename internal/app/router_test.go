package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/marina/internal/core/effects"
	"github.com/example/marina/internal/models"
	"github.com/example/marina/internal/ports/primary"
)

func TestRouter_GuestDeniedWithoutMutation(t *testing.T) {
	commands := []string{
		"S/Y Phisedelia is arriving",
		"M/Y Blue Horizon requests departure",
		"invoice M/Y Lady Sarah 300 EUR",
		"payment received from M/Y Blue Horizon 850 EUR",
		"run the daily settlement",
		`register vessel "Sea Breeze" IMO 9876543 LOA 12`,
		"complete job JOB-1023",
		"flag vessel S/Y Karayel",
		"show vessels longer than 20m",
		"what is the balance of S/Y Mistral",
		"run the HSE audit",
	}

	for _, cmd := range commands {
		t.Run(cmd, func(t *testing.T) {
			h := newHarness(t)
			before := h.store.Snapshot()

			resp := h.ask(t, testGuest, cmd)

			require.True(t, resp.Denied, "rule %s should deny a guest", resp.Rule)
			assert.Empty(t, resp.Actions)
			assert.True(t, strings.HasPrefix(resp.Text, "Access denied: "), resp.Text)

			last := resp.Traces[len(resp.Traces)-1]
			assert.True(t, last.IsError)
			assert.Equal(t, effects.PersonaExpert, last.Persona)
			assert.Equal(t, before, h.store.Snapshot())
		})
	}
}

func TestRouter_CaptainDeniedManagerOperations(t *testing.T) {
	h := newHarness(t)

	resp := h.ask(t, testCaptain, "run the daily settlement")

	assert.True(t, resp.Denied)
	assert.Contains(t, resp.Text, "GENERAL_MANAGER")
	assert.Equal(t, 850.0, h.balance(t, "M/Y Blue Horizon").Balance)
}

func TestRouter_LegalHoldBlocksDeparture(t *testing.T) {
	t.Run("vessel flagged RED blocks the general manager", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.store.Fleet().Update(context.Background(), "555666777", func(v *models.VesselRecord) {
			v.LegalStatus = models.LegalRed
		}))

		resp := h.ask(t, testGM, "S/Y Mistral departing now")

		assert.True(t, resp.Denied)
		assert.Contains(t, resp.Text, "legal hold")
		assert.Empty(t, resp.Actions)
	})

	t.Run("user with RED status is blocked", func(t *testing.T) {
		h := newHarness(t)
		gm := testGM
		gm.LegalStatus = models.LegalRed

		resp := h.ask(t, gm, "M/Y Lady Sarah departing")

		assert.True(t, resp.Denied)
		assert.Contains(t, resp.Text, "RED")
	})

	t.Run("flag then depart", func(t *testing.T) {
		h := newHarness(t)

		flagged := h.ask(t, testGM, "flag vessel S/Y Karayel for unsettled damages")
		require.Equal(t, []string{ActFlagVessel}, actionNames(flagged))
		assert.Equal(t, models.LegalRed, h.vessel(t, "444555666").LegalStatus)

		resp := h.ask(t, testGM, "S/Y Karayel departing")
		assert.True(t, resp.Denied)
		assert.Equal(t, models.VesselDocked, h.vessel(t, "444555666").Status)
	})
}

func TestRouter_InvoiceIsAdditive(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	before, err := h.finance.CheckDebt(ctx, "M/Y Lady Sarah")
	require.NoError(t, err)

	resp := h.ask(t, testCaptain, "invoice M/Y Lady Sarah 300 EUR for berthing")
	require.False(t, resp.Denied, resp.Text)
	assert.Equal(t, []string{ActInvoiceCreated, ActPaymentLink}, actionNames(resp))

	after, err := h.finance.CheckDebt(ctx, "M/Y Lady Sarah")
	require.NoError(t, err)
	assert.Equal(t, before.Debt.Amount+300, after.Debt.Amount)
	assert.Equal(t, "DEBT", string(after.Debt.Status))
	assert.Contains(t, resp.Text, "€300.00")
}

func TestRouter_PaymentIsSubtractive(t *testing.T) {
	h := newHarness(t)

	resp := h.ask(t, testCaptain, "payment received from M/Y Blue Horizon 500 EUR ref WIRE-77")
	require.Equal(t, []string{ActPaymentProcessed}, actionNames(resp))

	entry := h.balance(t, "M/Y Blue Horizon")
	assert.Equal(t, 350.0, entry.Balance)
	assert.Equal(t, models.PaymentRegular, entry.PaymentHistoryStatus)

	v := h.vessel(t, "123456789")
	assert.Equal(t, 40, v.LoyaltyScore)
	assert.Equal(t, models.PaymentRegular, v.PaymentHistoryStatus)

	// Same reference again does not double-credit.
	h.ask(t, testCaptain, "payment received from M/Y Blue Horizon 500 EUR ref WIRE-77")
	assert.Equal(t, 350.0, h.balance(t, "M/Y Blue Horizon").Balance)
	assert.Equal(t, 40, h.vessel(t, "123456789").LoyaltyScore)
}

func TestRouter_PhisedeliaArrival(t *testing.T) {
	h := newHarness(t)

	resp := h.ask(t, testCaptain, "S/Y Phisedelia is arriving")

	require.False(t, resp.Denied, resp.Text)
	assert.Equal(t, "arrival", resp.Rule)
	assert.Equal(t, []string{ActBerthAssigned, ActTenderDispatched, ActTrafficStatus, ActLogMovement, ActArrivalApproved}, actionNames(resp))
	assert.Zero(t, effects.CountErrors(resp.Traces))
	assert.Contains(t, resp.Text, "Arrival approved for S/Y Phisedelia")
	assert.Contains(t, resp.Text, "Pontoon B (B-43)")
	assert.Contains(t, resp.Text, "squawk 4042")

	v := h.vessel(t, "987654321")
	assert.Equal(t, models.VesselDocked, v.Status)
	assert.Equal(t, "Pontoon B (B-43)", v.Location)

	ctx := context.Background()
	tenders, err := h.store.Tenders().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.TenderBusy, tenders[0].Status)
	assert.Equal(t, "ARRIVAL_PILOT S/Y Phisedelia", tenders[0].Assignment)

	zones, err := h.store.Berths().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 43, zones[1].Occupied)

	registry, err := h.store.Registry().List(ctx)
	require.NoError(t, err)
	require.Len(t, registry, 1)
	assert.Equal(t, models.RegistryCheckIn, registry[0].Action)
}

func TestRouter_ArrivalDivertedWithoutTender(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	require.NoError(t, h.store.Tenders().Assign(ctx, "T-01", "busy"))
	require.NoError(t, h.store.Tenders().Assign(ctx, "T-02", "busy"))

	resp := h.ask(t, testCaptain, "M/Y Solaris arriving")

	assert.Equal(t, []string{ActArrivalDiverted}, actionNames(resp))
	assert.Contains(t, resp.Text, Anchorage)
	assert.Equal(t, models.VesselInbound, h.vessel(t, "111222333").Status)
}

func TestRouter_DepartureWithDebt(t *testing.T) {
	t.Run("captain is denied with a payment link", func(t *testing.T) {
		h := newHarness(t)

		resp := h.ask(t, testCaptain, "M/Y Blue Horizon requests departure")

		assert.False(t, resp.Denied)
		assert.Equal(t, []string{ActPaymentLink, ActDepartureDenied}, actionNames(resp))
		assert.Contains(t, resp.Text, "https://iyzi.co/pay/DEBT-123456789")
		assert.Contains(t, resp.Text, "Departure denied for M/Y Blue Horizon")
		assert.Equal(t, 850.0, h.balance(t, "M/Y Blue Horizon").Balance)
		assert.Equal(t, models.VesselDocked, h.vessel(t, "123456789").Status)
	})

	t.Run("general manager is cleared with a warning", func(t *testing.T) {
		h := newHarness(t)

		resp := h.ask(t, testGM, "M/Y Blue Horizon requests departure")

		cleared, ok := effects.Find(resp.Actions, ActDepartureCleared)
		require.True(t, ok, "actions: %v", actionNames(resp))
		assert.Contains(t, cleared.String("warning"), "850.00 EUR")
		assert.Contains(t, resp.Text, "Warning:")

		v := h.vessel(t, "123456789")
		assert.Equal(t, models.VesselDeparted, v.Status)
		assert.Equal(t, "Sea", v.Location)
	})
}

func TestRouter_FleetFilter(t *testing.T) {
	h := newHarness(t)

	resp := h.ask(t, testCaptain, "show vessels longer than 20m")

	assert.Equal(t, "fleet-filter", resp.Rule)
	act, ok := effects.Find(resp.Actions, ActFleetQuery)
	require.True(t, ok)
	assert.Equal(t, []string{"M/Y Blue Horizon", "M/Y Poseidon", "M/Y Solaris", "M/Y Lady Sarah"}, act.Strings("vessels"))
	assert.Contains(t, resp.Text, "4 vessel(s)")
}

func TestRouter_Registration(t *testing.T) {
	h := newHarness(t)

	resp := h.ask(t, testGM, `register vessel "S/Y Sea Breeze" IMO 9876543 LOA 12.5 flag TR`)
	require.Equal(t, []string{ActVesselRegistered}, actionNames(resp), resp.Text)

	v := h.vessel(t, "9876543")
	assert.Equal(t, "S/Y Sea Breeze", v.Name)
	assert.Equal(t, models.VesselInbound, v.Status)

	dup := h.ask(t, testGM, `register vessel "S/Y Copycat" IMO 987654321 LOA 10`)
	assert.Empty(t, dup.Actions)
	assert.Contains(t, dup.Text, "S/Y Phisedelia")
	assert.Equal(t, 1, effects.CountErrors(dup.Traces))
}

func TestRouter_DailySettlement(t *testing.T) {
	h := newHarness(t)

	first := h.ask(t, testGM, "run the daily settlement")

	assert.Contains(t, first.Text, "2 matched")
	assert.Contains(t, first.Text, "1 skipped")
	assert.Equal(t, 1, effects.CountErrors(first.Traces))
	assert.Equal(t, 0.0, h.balance(t, "M/Y Blue Horizon").Balance)
	assert.Equal(t, 800.0, h.balance(t, "S/Y Mistral").Balance)
	assert.Equal(t, 40, h.vessel(t, "123456789").LoyaltyScore)

	second := h.ask(t, testGM, "run the daily settlement")

	assert.Contains(t, second.Text, "0 matched")
	assert.Contains(t, second.Text, "2 already settled")
	assert.Equal(t, 0.0, h.balance(t, "M/Y Blue Horizon").Balance)
	assert.Equal(t, 800.0, h.balance(t, "S/Y Mistral").Balance)
	assert.Equal(t, 40, h.vessel(t, "123456789").LoyaltyScore)
}

func TestRouter_ClassifierOrder(t *testing.T) {
	h := newHarness(t)

	resp := h.ask(t, testGM, "what are the berth fees")

	assert.Equal(t, "berth", resp.Rule)
	assert.Contains(t, resp.Text, "Request rejected")
}

func TestRouter_BerthUsesVesselSpecs(t *testing.T) {
	h := newHarness(t)

	resp := h.ask(t, testCaptain, "find a berth for M/Y Solaris")

	act, ok := effects.Find(resp.Actions, ActBerthAssigned)
	require.True(t, ok, resp.Text)
	assert.Equal(t, "VIP", act.String("zone"))
}

func TestRouter_SecurityIncident(t *testing.T) {
	h := newHarness(t)

	resp := h.ask(t, testCaptain, "suspicious person at pontoon A")

	assert.Equal(t, []string{ActCCTVReview, ActSecurityDispatch}, actionNames(resp))
	assert.Contains(t, resp.Text, PatrolUnit)
}

func TestRouter_GeneralInquiryForGuests(t *testing.T) {
	h := newHarness(t)

	resp := h.ask(t, testGuest, "what is the wifi password")

	assert.False(t, resp.Denied)
	assert.Contains(t, resp.Text, "WIM_GUEST")
}

func TestRouter_NoMatchLeavesTextEmpty(t *testing.T) {
	h := newHarness(t)

	resp := h.ask(t, testGM, "xyzzy plugh")

	assert.Empty(t, resp.Text)
	assert.Empty(t, resp.Rule)
	require.Len(t, resp.Traces, 1)
	assert.Equal(t, effects.StepRouting, resp.Traces[0].Step)
}

func TestRouter_RecoversFromPanic(t *testing.T) {
	h := newHarnessWith(t, func(d *RouterDeps) { d.Customer = panickingCustomer{} })

	resp := h.router.ProcessRequest(context.Background(), primary.Request{Text: "where is the gym", User: testGuest})

	assert.Equal(t, SystemErrorText, resp.Text)
	assert.Empty(t, resp.Actions)
	assert.True(t, resp.Traces[len(resp.Traces)-1].IsError)
}

func TestRouter_SkillErrorBecomesText(t *testing.T) {
	h := newHarnessWith(t, func(d *RouterDeps) { d.Customer = failingCustomer{} })

	resp := h.router.ProcessRequest(context.Background(), primary.Request{Text: "where is the gym", User: testGuest})

	assert.Equal(t, "Request failed: knowledge base offline", resp.Text)
	last := resp.Traces[len(resp.Traces)-1]
	assert.True(t, last.IsError)
	assert.Equal(t, effects.PersonaWorker, last.Persona)
}

func TestRouter_NotFoundVessel(t *testing.T) {
	h := newHarness(t)

	resp := h.ask(t, testCaptain, `"Flying Dutchman" is arriving`)

	assert.True(t, strings.HasPrefix(resp.Text, "Not found: "), resp.Text)
}

func TestRouter_RemoteCore(t *testing.T) {
	t.Run("healthy remote answers", func(t *testing.T) {
		remote := &mockRemote{healthy: true, text: "handled remotely"}
		h := newHarnessWith(t, func(d *RouterDeps) { d.Remote = remote })

		resp := h.ask(t, testCaptain, "S/Y Phisedelia is arriving")

		assert.True(t, resp.Remote)
		assert.Equal(t, "handled remotely", resp.Text)
		assert.Empty(t, resp.Actions)
		assert.Equal(t, models.VesselInbound, h.vessel(t, "987654321").Status)
	})

	t.Run("unhealthy remote falls back to local", func(t *testing.T) {
		remote := &mockRemote{healthy: false}
		h := newHarnessWith(t, func(d *RouterDeps) { d.Remote = remote })

		resp := h.ask(t, testCaptain, "S/Y Phisedelia is arriving")

		assert.False(t, resp.Remote)
		assert.Zero(t, remote.calls)
		assert.Equal(t, effects.StepAnalysis, resp.Traces[0].Step)
		assert.Contains(t, resp.Traces[0].Content, "remote core offline, local mode")
		assert.Contains(t, resp.Text, "Arrival approved")
	})

	t.Run("remote error falls back to local", func(t *testing.T) {
		remote := &mockRemote{healthy: true, processErr: errors.New("502 bad gateway")}
		h := newHarnessWith(t, func(d *RouterDeps) { d.Remote = remote })

		resp := h.ask(t, testCaptain, "S/Y Phisedelia is arriving")

		assert.False(t, resp.Remote)
		assert.Equal(t, 1, remote.calls)
		assert.Contains(t, resp.Text, "Arrival approved")
	})
}

func TestRouter_FacilityReportsByTopic(t *testing.T) {
	tests := []struct {
		text   string
		action string
		want   string
	}{
		{"Check pedestal status", ActInfrastructure, "Pedestal B-12: Breaker Trip"},
		{"What is the smart grid load?", ActGridStatus, "Grid load 85%: Normal Operation."},
		{"Generate the zero waste report", ActZeroWasteReport, "recycling rate 83%"},
		{"Is the Blue Flag still active?", ActWaterQuality, "Blue Flag active"},
		{"Run the HSE audit", ActHSEAudit, "HSE score 95/100, 1 open issue(s)."},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			h := newHarness(t)
			before := h.store.Snapshot()

			resp := h.ask(t, testGM, tt.text)

			assert.Equal(t, "facility-report", resp.Rule)
			assert.Equal(t, []string{tt.action}, actionNames(resp))
			assert.Contains(t, resp.Text, tt.want)
			assert.False(t, resp.Mutated)
			assert.Equal(t, before, h.store.Snapshot())
		})
	}
}

func TestRouter_FacilityReportNeedsManager(t *testing.T) {
	h := newHarness(t)

	resp := h.ask(t, testCaptain, "pedestal status on pontoon B")

	assert.True(t, resp.Denied)
	assert.Contains(t, resp.Text, "FACILITY_REPORT")
}
