// Package memory provides the in-memory domain state store.
// Vessel-level state sits behind one RWMutex; ledger balances are locked
// per vessel key so concurrent settlements on different vessels do not
// serialize and a single entry is never double-applied.
package memory

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/example/marina/internal/core/effects"
	"github.com/example/marina/internal/core/fleet"
	"github.com/example/marina/internal/models"
	"github.com/example/marina/internal/ports/secondary"
)

// Store implements secondary.StateStore.
type Store struct {
	mu       sync.RWMutex
	vessels  []models.VesselRecord
	tenders  []models.Tender
	registry []models.RegistryEntry
	jobs     []models.MaintenanceJob
	berths   []models.BerthZone
	nextJob  int

	aliases atomic.Pointer[fleet.AliasIndex]

	ledgerMu sync.Mutex
	ledger   map[string]models.LedgerEntry
	keyLocks map[string]*sync.Mutex
}

// New returns an empty store.
func New() *Store {
	s := &Store{
		ledger:   make(map[string]models.LedgerEntry),
		keyLocks: make(map[string]*sync.Mutex),
		nextJob:  1000,
	}
	s.aliases.Store(fleet.BuildAliasIndex(nil))
	return s
}

// NewSeeded returns a store holding the default marina data.
func NewSeeded() *Store {
	s := New()
	s.Restore(SeedSnapshot())
	return s
}

// SeedSnapshot returns the default marina data as a snapshot.
func SeedSnapshot() secondary.Snapshot {
	return secondary.Snapshot{
		Fleet:   models.SeedFleet(),
		Ledger:  models.SeedLedger(),
		Tenders: models.SeedTenders(),
		Jobs:    models.SeedJobs(),
		Berths:  models.SeedBerths(),
	}
}

// Restore replaces the store content with a snapshot.
func (s *Store) Restore(snap secondary.Snapshot) {
	s.mu.Lock()
	s.vessels = append([]models.VesselRecord(nil), snap.Fleet...)
	s.tenders = append([]models.Tender(nil), snap.Tenders...)
	s.registry = append([]models.RegistryEntry(nil), snap.Registry...)
	s.jobs = append([]models.MaintenanceJob(nil), snap.Jobs...)
	s.berths = append([]models.BerthZone(nil), snap.Berths...)
	s.nextJob = 1000
	for _, j := range s.jobs {
		if n := jobNumber(j.ID); n > s.nextJob {
			s.nextJob = n
		}
	}
	s.aliases.Store(fleet.BuildAliasIndex(s.vessels))
	s.mu.Unlock()

	s.ledgerMu.Lock()
	s.ledger = make(map[string]models.LedgerEntry, len(snap.Ledger))
	for k, e := range snap.Ledger {
		s.ledger[k] = copyEntry(e)
	}
	s.ledgerMu.Unlock()
}

// Snapshot returns a deep copy of the store content.
func (s *Store) Snapshot() secondary.Snapshot {
	s.mu.RLock()
	snap := secondary.Snapshot{
		Fleet:    append([]models.VesselRecord(nil), s.vessels...),
		Tenders:  append([]models.Tender(nil), s.tenders...),
		Registry: append([]models.RegistryEntry(nil), s.registry...),
		Jobs:     append([]models.MaintenanceJob(nil), s.jobs...),
		Berths:   append([]models.BerthZone(nil), s.berths...),
	}
	s.mu.RUnlock()

	s.ledgerMu.Lock()
	snap.Ledger = make(map[string]models.LedgerEntry, len(s.ledger))
	for k, e := range s.ledger {
		snap.Ledger[k] = copyEntry(e)
	}
	s.ledgerMu.Unlock()
	return snap
}

// Fleet returns the vessel repository.
func (s *Store) Fleet() secondary.FleetRepository { return (*fleetRepo)(s) }

// Ledger returns the ledger repository.
func (s *Store) Ledger() secondary.LedgerRepository { return (*ledgerRepo)(s) }

// Tenders returns the tender repository.
func (s *Store) Tenders() secondary.TenderRepository { return (*tenderRepo)(s) }

// Registry returns the movement log.
func (s *Store) Registry() secondary.RegistryRepository { return (*registryRepo)(s) }

// Jobs returns the maintenance job repository.
func (s *Store) Jobs() secondary.JobRepository { return (*jobRepo)(s) }

// Berths returns the berth zone repository.
func (s *Store) Berths() secondary.BerthRepository { return (*berthRepo)(s) }

type fleetRepo Store

func (r *fleetRepo) List(ctx context.Context) ([]models.VesselRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.VesselRecord(nil), r.vessels...), nil
}

func (r *fleetRepo) GetByIMO(ctx context.Context, imo string) (*models.VesselRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, v := range r.vessels {
		if v.IMO == imo {
			found := v
			return &found, nil
		}
	}
	return nil, effects.NotFound("vessel with IMO %s", imo)
}

func (r *fleetRepo) Register(ctx context.Context, vessel models.VesselRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if guard := fleet.CanRegisterVessel(vessel, r.vessels); !guard.Allowed {
		return effects.Invalid("%s", guard.Reason)
	}
	r.vessels = append(r.vessels, vessel)
	r.aliases.Store(fleet.BuildAliasIndex(r.vessels))
	return nil
}

func (r *fleetRepo) Update(ctx context.Context, imo string, fn func(*models.VesselRecord)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.vessels {
		if r.vessels[i].IMO == imo {
			name := r.vessels[i].Name
			fn(&r.vessels[i])
			r.vessels[i].IMO = imo
			if r.vessels[i].Name != name {
				r.aliases.Store(fleet.BuildAliasIndex(r.vessels))
			}
			return nil
		}
	}
	return effects.NotFound("vessel with IMO %s", imo)
}

func (r *fleetRepo) Aliases() *fleet.AliasIndex {
	return r.aliases.Load()
}

type ledgerRepo Store

// lockKey returns the mutex serializing balance changes for one vessel.
func (r *ledgerRepo) lockKey(key string) *sync.Mutex {
	r.ledgerMu.Lock()
	defer r.ledgerMu.Unlock()
	m, ok := r.keyLocks[key]
	if !ok {
		m = &sync.Mutex{}
		r.keyLocks[key] = m
	}
	return m
}

func (r *ledgerRepo) read(key string) (models.LedgerEntry, bool) {
	r.ledgerMu.Lock()
	defer r.ledgerMu.Unlock()
	e, ok := r.ledger[key]
	return copyEntry(e), ok
}

func (r *ledgerRepo) write(key string, e models.LedgerEntry) {
	r.ledgerMu.Lock()
	defer r.ledgerMu.Unlock()
	r.ledger[key] = e
}

func (r *ledgerRepo) Get(ctx context.Context, key string) (models.LedgerEntry, error) {
	e, _ := r.read(models.NormalizeName(key))
	return e, nil
}

func (r *ledgerRepo) Charge(ctx context.Context, key string, amount float64) (models.LedgerEntry, error) {
	if amount < 0 {
		return models.LedgerEntry{}, effects.Invalid("charge amount %.2f is negative", amount)
	}
	key = models.NormalizeName(key)
	m := r.lockKey(key)
	m.Lock()
	defer m.Unlock()

	e, ok := r.read(key)
	if !ok || e.PaymentHistoryStatus == "" {
		e.PaymentHistoryStatus = models.PaymentRegular
	}
	e.Balance += amount
	r.write(key, e)
	return copyEntry(e), nil
}

func (r *ledgerRepo) Credit(ctx context.Context, key, ref string, amount float64) (models.LedgerEntry, bool, error) {
	if amount < 0 {
		return models.LedgerEntry{}, false, effects.Invalid("credit amount %.2f is negative", amount)
	}
	key = models.NormalizeName(key)
	m := r.lockKey(key)
	m.Lock()
	defer m.Unlock()

	e, _ := r.read(key)
	if ref != "" && e.SettledRefs[ref] {
		return e, false, nil
	}
	e.Balance -= amount
	e.PaymentHistoryStatus = models.PaymentRegular
	if ref != "" {
		if e.SettledRefs == nil {
			e.SettledRefs = make(map[string]bool)
		}
		e.SettledRefs[ref] = true
	}
	r.write(key, e)
	return copyEntry(e), true, nil
}

func (r *ledgerRepo) All(ctx context.Context) (map[string]models.LedgerEntry, error) {
	r.ledgerMu.Lock()
	defer r.ledgerMu.Unlock()
	out := make(map[string]models.LedgerEntry, len(r.ledger))
	for k, e := range r.ledger {
		out[k] = copyEntry(e)
	}
	return out, nil
}

type tenderRepo Store

func (r *tenderRepo) List(ctx context.Context) ([]models.Tender, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Tender(nil), r.tenders...), nil
}

func (r *tenderRepo) Assign(ctx context.Context, id, assignment string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tenders {
		if r.tenders[i].ID != id {
			continue
		}
		if r.tenders[i].Status != models.TenderAvailable {
			return fmt.Errorf("tender %s is %s", id, r.tenders[i].Status)
		}
		r.tenders[i].Status = models.TenderBusy
		r.tenders[i].Assignment = assignment
		return nil
	}
	return effects.NotFound("tender %s", id)
}

func (r *tenderRepo) Release(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tenders {
		if r.tenders[i].ID == id {
			r.tenders[i].Status = models.TenderAvailable
			r.tenders[i].Assignment = ""
			return nil
		}
	}
	return effects.NotFound("tender %s", id)
}

type registryRepo Store

func (r *registryRepo) Append(ctx context.Context, entry models.RegistryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry.ID == "" {
		entry.ID = fmt.Sprintf("REG-%04d", len(r.registry)+1)
	}
	r.registry = append(r.registry, entry)
	return nil
}

func (r *registryRepo) List(ctx context.Context) ([]models.RegistryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.RegistryEntry(nil), r.registry...), nil
}

type jobRepo Store

func (r *jobRepo) List(ctx context.Context) ([]models.MaintenanceJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.MaintenanceJob(nil), r.jobs...), nil
}

func (r *jobRepo) Create(ctx context.Context, job models.MaintenanceJob) (models.MaintenanceJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextJob++
	job.ID = fmt.Sprintf("JOB-%04d", r.nextJob)
	r.jobs = append(r.jobs, job)
	return job, nil
}

func (r *jobRepo) Update(ctx context.Context, id string, fn func(*models.MaintenanceJob)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.jobs {
		if r.jobs[i].ID == id {
			fn(&r.jobs[i])
			r.jobs[i].ID = id
			return nil
		}
	}
	return effects.NotFound("job %s", id)
}

type berthRepo Store

func (r *berthRepo) List(ctx context.Context) ([]models.BerthZone, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.BerthZone(nil), r.berths...), nil
}

func (r *berthRepo) Occupy(ctx context.Context, zoneID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.berths {
		z := &r.berths[i]
		if z.ID != zoneID {
			continue
		}
		if z.Occupied >= z.Capacity {
			return fmt.Errorf("zone %s is at capacity", zoneID)
		}
		z.Occupied++
		if z.Occupied >= z.Capacity {
			z.Status = models.ZoneFull
		}
		return nil
	}
	return effects.NotFound("berth zone %s", zoneID)
}

func copyEntry(e models.LedgerEntry) models.LedgerEntry {
	if e.SettledRefs != nil {
		refs := make(map[string]bool, len(e.SettledRefs))
		for k, v := range e.SettledRefs {
			refs[k] = v
		}
		e.SettledRefs = refs
	}
	return e
}

func jobNumber(id string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(id, "JOB-"))
	if err != nil {
		return 0
	}
	return n
}
