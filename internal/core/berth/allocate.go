// Package berth contains the berth allocation rule ladder.
// This is part of the Functional Core - no I/O, only pure functions.
package berth

import (
	"fmt"
	"sort"

	"github.com/example/marina/internal/models"
)

const (
	// VIPZoneID identifies the VIP quay in the zone table.
	VIPZoneID = "VIP"
	// VIPThreshold is the length above which the VIP quay is tried first.
	VIPThreshold = 40.0
	// TransitQuay is the fallback berth when nothing else fits.
	TransitQuay = "Transit Quay"
)

// Specs are the dimensions of the vessel to berth, in metres.
type Specs struct {
	LOA   float64
	Beam  float64
	Draft float64
}

// Allocation is the outcome of the ladder.
type Allocation struct {
	ZoneID     string
	Label      string
	Slot       string
	Relocation bool     // transit quay: vessel must move within 24h
	Reason     string   // why this berth was chosen
	Rejected   []string // zones considered and rejected, in order
}

// Berth returns a display string for the allocation.
func (a Allocation) Berth() string {
	if a.Slot == "" {
		return a.Label
	}
	return fmt.Sprintf("%s (%s)", a.Label, a.Slot)
}

// Allocate walks the berth ladder for a vessel.
// Rules, in order:
//  1. LOA above VIPThreshold tries the VIP quay when it has room and enough depth.
//  2. Pontoon zones are tried in ascending MaxLOA order, skipping any zone
//     smaller than the vessel; a zone must have room and enough depth.
//  3. Otherwise the transit quay, flagged for relocation within 24h.
func Allocate(specs Specs, zones []models.BerthZone) Allocation {
	var rejected []string

	if specs.LOA > VIPThreshold {
		for _, z := range zones {
			if z.ID != VIPZoneID {
				continue
			}
			if reason := unfit(z, specs); reason != "" {
				rejected = append(rejected, reason)
				break
			}
			return assign(z, fmt.Sprintf("LOA %.1fm exceeds %.0fm; VIP quay depth %.1fm clears draft %.1fm",
				specs.LOA, VIPThreshold, z.Depth, specs.Draft), rejected)
		}
	}

	for _, z := range pontoons(zones) {
		if z.MaxLOA < specs.LOA {
			continue
		}
		if reason := unfit(z, specs); reason != "" {
			rejected = append(rejected, reason)
			continue
		}
		return assign(z, fmt.Sprintf("smallest open zone for LOA %.1fm (limit %.0fm)", specs.LOA, z.MaxLOA), rejected)
	}

	return Allocation{
		ZoneID:     "TRANSIT",
		Label:      TransitQuay,
		Relocation: true,
		Reason:     fmt.Sprintf("no zone fits LOA %.1fm / draft %.1fm; mandatory relocation within 24h", specs.LOA, specs.Draft),
		Rejected:   rejected,
	}
}

func assign(z models.BerthZone, reason string, rejected []string) Allocation {
	return Allocation{
		ZoneID:   z.ID,
		Label:    z.Label,
		Slot:     fmt.Sprintf("%s-%02d", z.ID, z.Occupied+1),
		Reason:   reason,
		Rejected: rejected,
	}
}

// unfit returns why z cannot take the vessel, or "" when it can.
func unfit(z models.BerthZone, specs Specs) string {
	switch {
	case z.Status != models.ZoneAvailable:
		return fmt.Sprintf("%s %s", z.Label, z.Status)
	case z.Occupied >= z.Capacity:
		return fmt.Sprintf("%s at capacity (%d/%d)", z.Label, z.Occupied, z.Capacity)
	case z.Depth < specs.Draft:
		return fmt.Sprintf("%s depth %.1fm below draft %.1fm", z.Label, z.Depth, specs.Draft)
	}
	return ""
}

// pontoons returns the non-VIP zones sorted by ascending size class.
func pontoons(zones []models.BerthZone) []models.BerthZone {
	out := make([]models.BerthZone, 0, len(zones))
	for _, z := range zones {
		if z.ID != VIPZoneID {
			out = append(out, z)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MaxLOA < out[j].MaxLOA })
	return out
}
