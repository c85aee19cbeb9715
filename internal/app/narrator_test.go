package app

import (
	"testing"

	"github.com/example/marina/internal/core/effects"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "€0.00"},
		{850, "€850.00"},
		{12500.5, "€12,500.50"},
		{-40, "€-40.00"},
	}
	for _, tt := range tests {
		if got := money(tt.amount); got != tt.want {
			t.Errorf("money(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestNarrate(t *testing.T) {
	actions := []effects.Action{
		effects.NewAction(effects.KindExternal, ActTenderDispatched, map[string]any{"tender": "ada.sea.wimAlfa"}),
		effects.NewAction(effects.KindInternal, ActDebtStatus, map[string]any{"vessel": "M/Y Lady Sarah", "status": "CLEAR"}),
		effects.NewAction(effects.KindInternal, ActDepartureDenied, map[string]any{"vessel": "M/Y Lady Sarah", "reason": "Ground Stop"}),
	}

	got := Narrate(actions)

	want := "M/Y Lady Sarah has no outstanding balance.\nDeparture denied for M/Y Lady Sarah: Ground Stop."
	if got != want {
		t.Errorf("Narrate() = %q, want %q", got, want)
	}
}

func TestNarrate_Empty(t *testing.T) {
	if got := Narrate(nil); got != "" {
		t.Errorf("Narrate(nil) = %q, want empty", got)
	}
}

func TestNarrate_PaymentPlanFullSettlement(t *testing.T) {
	got := Narrate([]effects.Action{effects.NewAction(effects.KindInternal, ActPaymentPlan, map[string]any{
		"vessel":     "S/Y Mistral",
		"strictness": "STRICT",
		"balance":    1200.0,
		"depositPct": 100.0,
		"reason":     "chronically late payer",
	})})

	want := "Payment plan for S/Y Mistral (STRICT): full settlement of €1,200.00 required. chronically late payer."
	if got != want {
		t.Errorf("Narrate() = %q, want %q", got, want)
	}
}
