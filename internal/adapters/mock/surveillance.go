package mock

import (
	"context"
	"fmt"
	"time"

	"github.com/example/marina/internal/ports/secondary"
)

// Surveillance simulates the NVR camera network. Reviews take Delay and
// are not cancellable.
type Surveillance struct {
	Delay time.Duration
	now   func() time.Time
}

// NewSurveillance returns a camera network with the given review latency.
func NewSurveillance(delay time.Duration) *Surveillance {
	return &Surveillance{Delay: delay, now: time.Now}
}

// ReviewFootage scans footage for the location.
func (s *Surveillance) ReviewFootage(ctx context.Context, location string, window time.Duration) (*secondary.Footage, error) {
	if s.Delay > 0 {
		time.Sleep(s.Delay)
	}
	return &secondary.Footage{
		Confirmed:  true,
		EvidenceID: fmt.Sprintf("EVD-%d", s.now().UnixMilli()),
		Details:    fmt.Sprintf("Visual confirmation of hull contact by a manoeuvring vessel at %s (last %s).", location, window),
	}, nil
}
