package app

import (
	"context"
	"fmt"

	"github.com/example/marina/internal/ports/secondary"
)

// Persisted state slots.
const (
	SlotFleet    = "fleet"
	SlotLedger   = "ledger"
	SlotTenders  = "tenders"
	SlotRegistry = "registry"
	SlotJobs     = "jobs"
	SlotBerths   = "berths"
)

// Snapshotter is a state store that can be copied out and replaced wholesale.
type Snapshotter interface {
	Snapshot() secondary.Snapshot
	Restore(snap secondary.Snapshot)
}

// LoadState overlays every persisted slot onto the current contents of
// state. Missing slots keep their current (seed) values. It reports how many
// slots were found.
func LoadState(ctx context.Context, slots secondary.SlotStore, state Snapshotter) (int, error) {
	snap := state.Snapshot()
	targets := []struct {
		key string
		dst any
	}{
		{SlotFleet, &snap.Fleet},
		{SlotLedger, &snap.Ledger},
		{SlotTenders, &snap.Tenders},
		{SlotRegistry, &snap.Registry},
		{SlotJobs, &snap.Jobs},
		{SlotBerths, &snap.Berths},
	}

	found := 0
	for _, t := range targets {
		ok, err := slots.Load(ctx, t.key, t.dst)
		if err != nil {
			return found, fmt.Errorf("failed to load slot %s: %w", t.key, err)
		}
		if ok {
			found++
		}
	}
	state.Restore(snap)
	return found, nil
}

// SaveState writes every slot from the current contents of state.
func SaveState(ctx context.Context, slots secondary.SlotStore, state Snapshotter) error {
	snap := state.Snapshot()
	values := []struct {
		key string
		v   any
	}{
		{SlotFleet, snap.Fleet},
		{SlotLedger, snap.Ledger},
		{SlotTenders, snap.Tenders},
		{SlotRegistry, snap.Registry},
		{SlotJobs, snap.Jobs},
		{SlotBerths, snap.Berths},
	}
	for _, s := range values {
		if err := slots.Save(ctx, s.key, s.v); err != nil {
			return fmt.Errorf("failed to save slot %s: %w", s.key, err)
		}
	}
	return nil
}
