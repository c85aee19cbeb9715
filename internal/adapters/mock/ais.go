package mock

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/example/marina/internal/core/fleet"
	"github.com/example/marina/internal/models"
	"github.com/example/marina/internal/ports/secondary"
)

// CommercialTraffic is injected into every AIS picture.
var CommercialTraffic = []fleet.Target{
	{Vessel: "M/V MSC Gulsun", Type: "Container Ship", Lat: 40.90, Lng: 28.70, SpeedKnots: 14.2, Course: 270},
	{Vessel: "M/T Torm Republican", Type: "Chemical Tanker", Lat: 40.88, Lng: 28.55, SpeedKnots: 11.8, Course: 95},
}

// AisFeed synthesizes a traffic picture from the fleet registry,
// jittering each vessel's position, speed and course.
type AisFeed struct {
	fleet      secondary.FleetRepository
	commercial []fleet.Target

	mu  sync.Mutex
	rng *rand.Rand
}

// NewAisFeed returns a feed over the fleet. rng may be nil.
func NewAisFeed(vessels secondary.FleetRepository, rng *rand.Rand) *AisFeed {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &AisFeed{fleet: vessels, commercial: CommercialTraffic, rng: rng}
}

// WithCommercial replaces the injected commercial traffic.
func (f *AisFeed) WithCommercial(targets []fleet.Target) *AisFeed {
	f.commercial = targets
	return f
}

// LiveTargets returns one target per vessel plus the commercial traffic.
func (f *AisFeed) LiveTargets(ctx context.Context) ([]fleet.Target, error) {
	vessels, err := f.fleet.List(ctx)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	targets := make([]fleet.Target, 0, len(vessels)+len(f.commercial))
	for _, v := range vessels {
		t := fleet.Target{
			Vessel: v.Name,
			IMO:    v.IMO,
			Type:   v.Type,
			Lat:    v.Coordinates.Lat + f.jitter(0.001),
			Lng:    v.Coordinates.Lng + f.jitter(0.001),
			Status: v.Status,
			Course: f.rng.Float64() * 360,
		}
		if v.Status == models.VesselInbound {
			t.SpeedKnots = 6 + f.rng.Float64()*4
		} else {
			t.SpeedKnots = f.rng.Float64() * 0.3
		}
		targets = append(targets, t)
	}
	return append(targets, f.commercial...), nil
}

func (f *AisFeed) jitter(span float64) float64 {
	return (f.rng.Float64()*2 - 1) * span
}
