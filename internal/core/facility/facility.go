// Package facility contains the pure rules of marina infrastructure
// reporting: grid load shedding, recycling rate, Blue Flag water limits
// and the HSE audit score.
package facility

import (
	"math"
	"strings"
)

// Report topics.
const (
	TopicInfrastructure = "INFRASTRUCTURE"
	TopicGrid           = "GRID"
	TopicZeroWaste      = "ZERO_WASTE"
	TopicWaterQuality   = "WATER_QUALITY"
	TopicHSE            = "HSE"
)

// ParseTopic maps free text to a report topic. Pedestal and general
// facility questions fall back to the infrastructure scan.
func ParseTopic(text string) string {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "zero waste"), strings.Contains(t, "recycl"), strings.Contains(t, "sıfır atık"):
		return TopicZeroWaste
	case strings.Contains(t, "blue flag"), strings.Contains(t, "water quality"), strings.Contains(t, "sea water"):
		return TopicWaterQuality
	case strings.Contains(t, "hse"), strings.Contains(t, "safety audit"):
		return TopicHSE
	case strings.Contains(t, "grid"), strings.Contains(t, "power load"), strings.Contains(t, "load shedding"):
		return TopicGrid
	}
	return TopicInfrastructure
}

// InfrastructureScan is a SCADA reading of pedestals and utility lines.
type InfrastructureScan struct {
	Pedestals   int
	Operational float64 // percent of systems online
	Alerts      []string
}

// Infrastructure statuses.
const (
	StatusOperational = "OPERATIONAL"
	StatusDegraded    = "DEGRADED"
)

// DegradedBelow is the operational percentage under which the
// infrastructure is reported degraded.
const DegradedBelow = 90.0

// InfrastructureStatus classifies a scan.
func InfrastructureStatus(scan InfrastructureScan) string {
	if scan.Operational < DegradedBelow {
		return StatusDegraded
	}
	return StatusOperational
}

// PeakLoad is the grid load percentage above which load shedding starts.
const PeakLoad = 90

// GridPlan is the smart-grid response to a load reading.
type GridPlan struct {
	Load         int
	Shedding     bool
	Optimization string
}

// PlanGrid decides load shedding for the current load.
func PlanGrid(load int) GridPlan {
	if load > PeakLoad {
		return GridPlan{Load: load, Shedding: true, Optimization: "Load Shedding Active (non-critical systems dimmed)"}
	}
	return GridPlan{Load: load, Optimization: "Normal Operation"}
}

// WasteStats are monthly waste weights in kilograms.
type WasteStats struct {
	Paper     float64
	Plastic   float64
	Metal     float64
	Glass     float64
	Organic   float64
	Hazardous float64
}

// Total returns the combined weight.
func (w WasteStats) Total() float64 {
	return w.Paper + w.Plastic + w.Metal + w.Glass + w.Organic + w.Hazardous
}

// RecyclingTarget is the minimum recycling rate in percent.
const RecyclingTarget = 40

// Compliance verdicts.
const (
	Compliant    = "COMPLIANT"
	NonCompliant = "NON_COMPLIANT"
)

// WasteReport is the zero waste compliance summary.
type WasteReport struct {
	Total         float64
	Recycled      float64
	RecyclingRate int
	Compliance    string
}

// AssessWaste computes the recycling rate. Everything except organic
// waste counts as recycled; an empty month is non-compliant.
func AssessWaste(stats WasteStats) WasteReport {
	total := stats.Total()
	report := WasteReport{Total: total, Compliance: NonCompliant}
	if total <= 0 {
		return report
	}
	report.Recycled = total - stats.Organic
	report.RecyclingRate = int(math.Round(report.Recycled / total * 100))
	if report.RecyclingRate > RecyclingTarget {
		report.Compliance = Compliant
	}
	return report
}

// Bathing water limits in cfu/100ml.
const (
	EColiLimit       = 250
	EnterococciLimit = 100
)

// WaterSample is a laboratory analysis of a bathing water sample point.
type WaterSample struct {
	Date         string
	Location     string
	EColi        int
	Enterococci  int
	PH           float64
	Transparency string
}

// Blue Flag statuses.
const (
	FlagBlue = "BLUE"
	FlagRed  = "RED"
)

// BlueFlagStatus is BLUE while both bacteria counts stay under their limits.
func BlueFlagStatus(s WaterSample) string {
	if s.EColi < EColiLimit && s.Enterococci < EnterococciLimit {
		return FlagBlue
	}
	return FlagRed
}

// HSEFinding is one item of a health, safety and environment audit.
type HSEFinding struct {
	Area   string
	Note   string
	Passed bool
}

// HSEPenalty is deducted from a perfect score per failed finding.
const HSEPenalty = 5

// ScoreHSE returns the audit score out of 100 and the number of open issues.
func ScoreHSE(findings []HSEFinding) (score, open int) {
	score = 100
	for _, f := range findings {
		if !f.Passed {
			open++
			score -= HSEPenalty
		}
	}
	if score < 0 {
		score = 0
	}
	return score, open
}
