package berth

import (
	"strings"
	"testing"

	"github.com/example/marina/internal/models"
)

func zonesWith(mutate func(map[string]*models.BerthZone)) []models.BerthZone {
	zones := models.SeedBerths()
	byID := make(map[string]*models.BerthZone, len(zones))
	for i := range zones {
		byID[zones[i].ID] = &zones[i]
	}
	if mutate != nil {
		mutate(byID)
	}
	return zones
}

func TestAllocate(t *testing.T) {
	tests := []struct {
		name           string
		specs          Specs
		zones          []models.BerthZone
		wantLabel      string
		wantRelocation bool
	}{
		{
			name:      "superyacht goes to VIP quay",
			specs:     Specs{LOA: 45, Beam: 8.9, Draft: 3.8},
			zones:     zonesWith(nil),
			wantLabel: "VIP Quay",
		},
		{
			name:  "superyacht with VIP full goes to transit",
			specs: Specs{LOA: 45, Draft: 3.8},
			zones: zonesWith(func(z map[string]*models.BerthZone) {
				z["VIP"].Status = models.ZoneFull
			}),
			wantLabel:      TransitQuay,
			wantRelocation: true,
		},
		{
			name:           "VIP too shallow for draft",
			specs:          Specs{LOA: 60, Draft: 9.0},
			zones:          zonesWith(nil),
			wantLabel:      TransitQuay,
			wantRelocation: true,
		},
		{
			name:      "small boat skips full C and lands on B",
			specs:     Specs{LOA: 12.8, Draft: 1.9},
			zones:     zonesWith(nil),
			wantLabel: "Pontoon B",
		},
		{
			name:      "small boat takes C when it has room",
			specs:     Specs{LOA: 12.8, Draft: 1.9},
			zones:     zonesWith(func(z map[string]*models.BerthZone) { z["C"].Status = models.ZoneAvailable; z["C"].Occupied = 10 }),
			wantLabel: "Pontoon C",
		},
		{
			name:      "18m yacht never assigned the 15m zone",
			specs:     Specs{LOA: 18.4, Draft: 2.8},
			zones:     zonesWith(func(z map[string]*models.BerthZone) { z["C"].Status = models.ZoneAvailable; z["C"].Occupied = 0 }),
			wantLabel: "Pontoon B",
		},
		{
			name:      "24m yacht goes to A",
			specs:     Specs{LOA: 24, Draft: 2.2},
			zones:     zonesWith(nil),
			wantLabel: "Pontoon A",
		},
		{
			name:      "24m yacht climbs to T-Head when A is at capacity",
			specs:     Specs{LOA: 24, Draft: 2.2},
			zones:     zonesWith(func(z map[string]*models.BerthZone) { z["A"].Occupied = 40 }),
			wantLabel: "T-Head",
		},
		{
			name:      "32m yacht does not try VIP first",
			specs:     Specs{LOA: 32.5, Draft: 3.0},
			zones:     zonesWith(nil),
			wantLabel: "T-Head",
		},
		{
			name:  "deep draft skips shallow pontoon",
			specs: Specs{LOA: 19, Draft: 5.0},
			zones: zonesWith(nil),
			// B depth 4.5 < 5.0, A depth 5.5 ok
			wantLabel: "Pontoon A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Allocate(tt.specs, tt.zones)

			if got.Label != tt.wantLabel {
				t.Errorf("expected %q, got %q (reason: %s, rejected: %v)", tt.wantLabel, got.Label, got.Reason, got.Rejected)
			}
			if got.Relocation != tt.wantRelocation {
				t.Errorf("expected relocation=%v, got %v", tt.wantRelocation, got.Relocation)
			}
		})
	}
}

func TestAllocate_AscendingOrderRegardlessOfTableOrder(t *testing.T) {
	zones := models.SeedBerths()
	// reverse the table
	for i, j := 0, len(zones)-1; i < j; i, j = i+1, j-1 {
		zones[i], zones[j] = zones[j], zones[i]
	}

	got := Allocate(Specs{LOA: 16, Draft: 2}, zones)
	if got.Label != "Pontoon B" {
		t.Errorf("expected Pontoon B, got %s", got.Label)
	}
}

func TestAllocate_RecordsRejectedZones(t *testing.T) {
	zones := zonesWith(func(z map[string]*models.BerthZone) { z["VIP"].Status = models.ZoneClosed })

	got := Allocate(Specs{LOA: 45, Draft: 3}, zones)
	if len(got.Rejected) != 1 || !strings.Contains(got.Rejected[0], "VIP Quay CLOSED") {
		t.Errorf("expected VIP rejection recorded, got %v", got.Rejected)
	}
	if got.Berth() != TransitQuay {
		t.Errorf("expected transit quay display, got %q", got.Berth())
	}
}

func TestAllocation_SlotNumbering(t *testing.T) {
	got := Allocate(Specs{LOA: 24, Draft: 2}, models.SeedBerths())
	if got.Slot != "A-37" {
		t.Errorf("expected slot A-37, got %q", got.Slot)
	}
	if got.Berth() != "Pontoon A (A-37)" {
		t.Errorf("unexpected display %q", got.Berth())
	}
}
