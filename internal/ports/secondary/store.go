// Package secondary defines the driven ports: the domain state store and
// the outside collaborators the console depends on.
package secondary

import (
	"context"
	"time"

	"github.com/example/marina/internal/core/fleet"
	"github.com/example/marina/internal/models"
)

// StateStore is the explicit handle on all mutable marina state.
type StateStore interface {
	Fleet() FleetRepository
	Ledger() LedgerRepository
	Tenders() TenderRepository
	Registry() RegistryRepository
	Jobs() JobRepository
	Berths() BerthRepository
}

// FleetRepository holds vessel records in registration order.
type FleetRepository interface {
	// List returns all vessels in insertion order.
	List(ctx context.Context) ([]models.VesselRecord, error)

	// GetByIMO returns the vessel with the given IMO.
	GetByIMO(ctx context.Context, imo string) (*models.VesselRecord, error)

	// Register appends a vessel. Fails if the IMO is taken.
	Register(ctx context.Context, vessel models.VesselRecord) error

	// Update applies fn to the vessel under the store lock.
	Update(ctx context.Context, imo string, fn func(*models.VesselRecord)) error

	// Aliases returns the current alias index.
	Aliases() *fleet.AliasIndex
}

// LedgerRepository holds balances keyed by normalized vessel name.
// Every balance change writes the payment history status with it.
type LedgerRepository interface {
	// Get returns the entry for key, or a zero entry if none exists.
	Get(ctx context.Context, key string) (models.LedgerEntry, error)

	// Charge adds amount to the balance, keeping the history status.
	Charge(ctx context.Context, key string, amount float64) (models.LedgerEntry, error)

	// Credit subtracts amount and marks the history REGULAR. A non-empty
	// ref is applied at most once per key; applied is false for repeats.
	Credit(ctx context.Context, key, ref string, amount float64) (entry models.LedgerEntry, applied bool, err error)

	// All returns a copy of every entry.
	All(ctx context.Context) (map[string]models.LedgerEntry, error)
}

// TenderRepository holds the tender boats.
type TenderRepository interface {
	List(ctx context.Context) ([]models.Tender, error)

	// Assign marks an Available tender Busy with an assignment.
	Assign(ctx context.Context, id, assignment string) error

	// Release returns a tender to Available.
	Release(ctx context.Context, id string) error
}

// RegistryRepository is the append-only movement log.
type RegistryRepository interface {
	Append(ctx context.Context, entry models.RegistryEntry) error
	List(ctx context.Context) ([]models.RegistryEntry, error)
}

// JobRepository holds maintenance jobs.
type JobRepository interface {
	List(ctx context.Context) ([]models.MaintenanceJob, error)

	// Create assigns the next JOB-#### ID and appends the job.
	Create(ctx context.Context, job models.MaintenanceJob) (models.MaintenanceJob, error)

	// Update applies fn to the job under the store lock.
	Update(ctx context.Context, id string, fn func(*models.MaintenanceJob)) error
}

// BerthRepository holds the berth zone table.
type BerthRepository interface {
	List(ctx context.Context) ([]models.BerthZone, error)

	// Occupy takes one place in a zone, marking it FULL when it fills up.
	Occupy(ctx context.Context, zoneID string) error
}

// Snapshot is the persisted form of the state store.
type Snapshot struct {
	Fleet    []models.VesselRecord         `json:"fleet"`
	Ledger   map[string]models.LedgerEntry `json:"ledger"`
	Tenders  []models.Tender               `json:"tenders"`
	Registry []models.RegistryEntry        `json:"registry"`
	Jobs     []models.MaintenanceJob       `json:"jobs"`
	Berths   []models.BerthZone            `json:"berths"`
}

// SlotStore is key/value persistence over a small set of named slots.
type SlotStore interface {
	// Load decodes the slot into dst. found is false when the slot is empty.
	Load(ctx context.Context, key string, dst any) (found bool, err error)

	// Save encodes v into the slot.
	Save(ctx context.Context, key string, v any) error
}

// AuditRecord is one processed console request.
type AuditRecord struct {
	ID         string
	Timestamp  time.Time
	ActorID    string
	Command    string
	Rule       string
	Operation  string
	Denied     bool
	Actions    []string
	ErrorCount int
}

// AuditLog is the append-only request log.
type AuditLog interface {
	Append(ctx context.Context, record AuditRecord) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]AuditRecord, error)
}
