package facility

import "testing"

func TestParseTopic(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Generate the zero waste report", TopicZeroWaste},
		{"What is our recycling rate?", TopicZeroWaste},
		{"Is the Blue Flag still active?", TopicWaterQuality},
		{"sea water analysis please", TopicWaterQuality},
		{"Run the HSE audit", TopicHSE},
		{"Smart grid load", TopicGrid},
		{"Pedestal status on pontoon B", TopicInfrastructure},
		{"facility check", TopicInfrastructure},
	}
	for _, tt := range tests {
		if got := ParseTopic(tt.text); got != tt.want {
			t.Errorf("ParseTopic(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}

func TestInfrastructureStatus(t *testing.T) {
	if got := InfrastructureStatus(InfrastructureScan{Operational: 98}); got != StatusOperational {
		t.Errorf("98%% online = %s, want %s", got, StatusOperational)
	}
	if got := InfrastructureStatus(InfrastructureScan{Operational: 85}); got != StatusDegraded {
		t.Errorf("85%% online = %s, want %s", got, StatusDegraded)
	}
}

func TestPlanGrid(t *testing.T) {
	if plan := PlanGrid(85); plan.Shedding || plan.Optimization != "Normal Operation" {
		t.Errorf("PlanGrid(85) = %+v, want normal operation", plan)
	}
	if plan := PlanGrid(PeakLoad); plan.Shedding {
		t.Errorf("load at the peak threshold should not shed")
	}
	if plan := PlanGrid(93); !plan.Shedding {
		t.Errorf("PlanGrid(93) should shed load")
	}
}

func TestAssessWaste(t *testing.T) {
	report := AssessWaste(WasteStats{Paper: 1250, Plastic: 840, Metal: 320, Glass: 450, Organic: 600, Hazardous: 45})
	if report.Total != 3505 {
		t.Errorf("total = %v, want 3505", report.Total)
	}
	if report.RecyclingRate != 83 {
		t.Errorf("rate = %d, want 83", report.RecyclingRate)
	}
	if report.Compliance != Compliant {
		t.Errorf("compliance = %s, want %s", report.Compliance, Compliant)
	}

	mostlyOrganic := AssessWaste(WasteStats{Paper: 10, Organic: 90})
	if mostlyOrganic.Compliance != NonCompliant {
		t.Errorf("10%% recycled should be non-compliant, got %s", mostlyOrganic.Compliance)
	}

	if empty := AssessWaste(WasteStats{}); empty.RecyclingRate != 0 || empty.Compliance != NonCompliant {
		t.Errorf("empty month = %+v", empty)
	}
}

func TestBlueFlagStatus(t *testing.T) {
	tests := []struct {
		name   string
		sample WaterSample
		want   string
	}{
		{"clean", WaterSample{EColi: 12, Enterococci: 5}, FlagBlue},
		{"e. coli at the limit", WaterSample{EColi: EColiLimit, Enterococci: 5}, FlagRed},
		{"enterococci over", WaterSample{EColi: 12, Enterococci: 140}, FlagRed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BlueFlagStatus(tt.sample); got != tt.want {
				t.Errorf("BlueFlagStatus = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestScoreHSE(t *testing.T) {
	score, open := ScoreHSE([]HSEFinding{
		{Area: "Pontoon B", Note: "Life buoy housing cracked"},
		{Area: "Workshop", Note: "PPE spot check", Passed: true},
	})
	if score != 95 || open != 1 {
		t.Errorf("ScoreHSE = %d/%d, want 95/1", score, open)
	}

	many := make([]HSEFinding, 30)
	if score, _ := ScoreHSE(many); score != 0 {
		t.Errorf("score should floor at 0, got %d", score)
	}
}
