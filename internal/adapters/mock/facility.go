package mock

import (
	"context"
	"slices"
	"time"

	"github.com/example/marina/internal/core/facility"
)

// FacilitySensors replays fixed SCADA, smart-grid, waste scale and lab
// readings. Tests may overwrite the fields.
type FacilitySensors struct {
	Scan     facility.InfrastructureScan
	Load     int
	Stats    facility.WasteStats
	Sample   facility.WaterSample
	Findings []facility.HSEFinding

	now func() time.Time
}

// NewFacilitySensors returns sensors reporting a healthy month.
func NewFacilitySensors() *FacilitySensors {
	return &FacilitySensors{
		Scan: facility.InfrastructureScan{
			Pedestals:   350,
			Operational: 98,
			Alerts:      []string{"Pedestal B-12: Breaker Trip", "Water Line C: Pressure Drop"},
		},
		Load:  85,
		Stats: facility.WasteStats{Paper: 1250, Plastic: 840, Metal: 320, Glass: 450, Organic: 600, Hazardous: 45},
		Sample: facility.WaterSample{
			Location:     "Kumsal Beach Sample Point 1",
			EColi:        12,
			Enterococci:  5,
			PH:           8.1,
			Transparency: "Clear > 2m",
		},
		Findings: []facility.HSEFinding{
			{Area: "Pontoon B", Note: "Life buoy housing cracked"},
			{Area: "Workshop", Note: "PPE compliance spot check passed", Passed: true},
		},
		now: time.Now,
	}
}

// Infrastructure returns the pedestal and utility line scan.
func (f *FacilitySensors) Infrastructure(ctx context.Context) (facility.InfrastructureScan, error) {
	scan := f.Scan
	scan.Alerts = slices.Clone(f.Scan.Alerts)
	return scan, nil
}

// GridLoad returns the current power load in percent.
func (f *FacilitySensors) GridLoad(ctx context.Context) (int, error) {
	return f.Load, nil
}

// Waste returns this month's waste weights.
func (f *FacilitySensors) Waste(ctx context.Context) (facility.WasteStats, error) {
	return f.Stats, nil
}

// WaterSample returns the latest lab result, dated today when undated.
func (f *FacilitySensors) WaterSample(ctx context.Context) (facility.WaterSample, error) {
	s := f.Sample
	if s.Date == "" {
		s.Date = f.now().Format(time.DateOnly)
	}
	return s, nil
}

// HSEFindings returns the latest audit checklist.
func (f *FacilitySensors) HSEFindings(ctx context.Context) ([]facility.HSEFinding, error) {
	return slices.Clone(f.Findings), nil
}
