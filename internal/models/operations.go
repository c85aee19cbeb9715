package models

import "time"

// LedgerEntry is the running balance of a vessel, keyed by normalized name.
// A positive balance is debt; a negative one is an overpayment.
type LedgerEntry struct {
	Balance              float64         `json:"balance"`
	PaymentHistoryStatus string          `json:"payment_history_status"`
	SettledRefs          map[string]bool `json:"settled_refs,omitempty"`
}

// Tender status values.
const (
	TenderAvailable   = "Available"
	TenderBusy        = "Busy"
	TenderMaintenance = "Maintenance"
)

// Tender is a marina service boat.
type Tender struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	Assignment string `json:"assignment,omitempty"`
}

// Registry actions.
const (
	RegistryCheckIn  = "CHECK-IN"
	RegistryCheckOut = "CHECK-OUT"
)

// RegistryEntry is one line of the vessel movement log.
type RegistryEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Vessel    string    `json:"vessel"`
	Action    string    `json:"action"`
	Location  string    `json:"location"`
	Status    string    `json:"status"`
}

// Maintenance job types.
const (
	JobHaulOut       = "HAUL_OUT"
	JobEngineService = "ENGINE_SERVICE"
	JobGeneralRepair = "GENERAL_REPAIR"
	JobHullCleaning  = "HULL_CLEANING"
)

// Maintenance job statuses.
const (
	JobScheduled    = "SCHEDULED"
	JobWaitingParts = "WAITING_PARTS"
	JobInProgress   = "IN_PROGRESS"
	JobCompleted    = "COMPLETED"
)

// MaintenanceJob is a technical service booking.
type MaintenanceJob struct {
	ID            string `json:"id"`
	VesselName    string `json:"vessel_name"`
	JobType       string `json:"job_type"`
	Status        string `json:"status"`
	ScheduledDate string `json:"scheduled_date"`
	Contractor    string `json:"contractor"`
	PartsStatus   string `json:"parts_status,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// Berth zone statuses.
const (
	ZoneAvailable = "AVAILABLE"
	ZoneFull      = "FULL"
	ZoneClosed    = "CLOSED"
)

// BerthZone is one section of the marina with a length limit and a depth.
type BerthZone struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	MaxLOA   float64 `json:"max_loa"`
	Depth    float64 `json:"depth"`
	Capacity int     `json:"capacity"`
	Occupied int     `json:"occupied"`
	Status   string  `json:"status"`
}

// HasRoom reports whether the zone accepts another vessel.
func (z BerthZone) HasRoom() bool {
	return z.Status == ZoneAvailable && z.Occupied < z.Capacity
}
