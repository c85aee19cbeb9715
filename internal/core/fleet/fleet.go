// Package fleet contains the pure fleet rules: registration checks,
// name lookup, length filters, distances and traffic priority.
package fleet

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/example/marina/internal/models"
)

// EarthRadiusNm is the mean Earth radius in nautical miles.
const EarthRadiusNm = 3440.065

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

var imoPattern = regexp.MustCompile(`^\d{7,9}$`)

// CanRegisterVessel validates a candidate record against the existing fleet.
// Rules: name, IMO (7-9 digits) and a positive LOA are required; the IMO
// must not already be registered.
func CanRegisterVessel(candidate models.VesselRecord, existing []models.VesselRecord) GuardResult {
	var missing []string
	if strings.TrimSpace(candidate.Name) == "" {
		missing = append(missing, "name")
	}
	if candidate.IMO == "" {
		missing = append(missing, "imo")
	}
	if candidate.LOA <= 0 {
		missing = append(missing, "loa")
	}
	if len(missing) > 0 {
		return GuardResult{Reason: fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", "))}
	}
	if !imoPattern.MatchString(candidate.IMO) {
		return GuardResult{Reason: fmt.Sprintf("IMO %q must be 7 to 9 digits", candidate.IMO)}
	}
	for _, v := range existing {
		if v.IMO == candidate.IMO {
			return GuardResult{Reason: fmt.Sprintf("IMO %s is already registered to %s", v.IMO, v.Name)}
		}
	}
	return GuardResult{Allowed: true}
}

// Locate returns the first vessel, in registry order, whose name contains
// query (case-insensitive). Several vessels may match; only the first is
// returned.
func Locate(vessels []models.VesselRecord, query string) (models.VesselRecord, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return models.VesselRecord{}, false
	}
	for _, v := range vessels {
		if strings.Contains(strings.ToLower(v.Name), q) {
			return v, true
		}
	}
	return models.VesselRecord{}, false
}

// LongerThan returns the vessels with LOA strictly greater than minLength,
// keeping registry order.
func LongerThan(vessels []models.VesselRecord, minLength float64) []models.VesselRecord {
	out := make([]models.VesselRecord, 0, len(vessels))
	for _, v := range vessels {
		if v.LOA > minLength {
			out = append(out, v)
		}
	}
	return out
}

// DistanceNm returns the great-circle distance between two positions.
func DistanceNm(a, b models.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * EarthRadiusNm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Target is one AIS contact.
type Target struct {
	Vessel     string  `json:"vessel"`
	IMO        string  `json:"imo,omitempty"`
	Type       string  `json:"type"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	SpeedKnots float64 `json:"speed_knots"`
	Course     float64 `json:"course"`
	Status     string  `json:"status,omitempty"`
}

// Contact is a target with its distance from a reference point.
type Contact struct {
	Target
	DistanceNm float64
	Priority   int
}

// Near returns the targets within radiusNm of center, nearest first.
func Near(targets []Target, center models.Coordinates, radiusNm float64) []Contact {
	var out []Contact
	for _, t := range targets {
		d := DistanceNm(center, models.Coordinates{Lat: t.Lat, Lng: t.Lng})
		if d <= radiusNm {
			out = append(out, Contact{Target: t, DistanceNm: d, Priority: TrafficPriority(t.Type, t.Status)})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceNm < out[j].DistanceNm })
	return out
}

// TrafficPriority ranks a contact for harbour traffic control; lower goes first.
// Medical emergencies and state vessels 1, fuel emergencies 2,
// superyachts 4, everyone else 5.
func TrafficPriority(vesselType, status string) int {
	t := strings.ToLower(vesselType + " " + status)
	switch {
	case strings.Contains(t, "medical"), strings.Contains(t, "coast guard"), strings.Contains(t, "state"):
		return 1
	case strings.Contains(t, "fuel"):
		return 2
	case strings.Contains(t, "superyacht"):
		return 4
	}
	return 5
}

// IsCommercial reports whether a target is large commercial traffic that
// holds small-craft movements in the approach channel.
func IsCommercial(t Target) bool {
	kind := strings.ToLower(t.Type)
	return strings.Contains(kind, "container") || strings.Contains(kind, "tanker") || strings.Contains(kind, "cargo")
}

// Squawk formats a four-digit transponder code in the 4xxx block from n.
// Each digit is octal as on real transponders.
func Squawk(n int) string {
	if n < 0 {
		n = -n
	}
	n %= 512
	return fmt.Sprintf("4%d%d%d", (n>>6)&7, (n>>3)&7, n&7)
}
