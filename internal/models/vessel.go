package models

import (
	"regexp"
	"strings"
)

// Payment history status values.
const (
	PaymentRegular         = "REGULAR"
	PaymentRecentlyLate    = "RECENTLY_LATE"
	PaymentChronicallyLate = "CHRONICALLY_LATE"
)

// Loyalty tiers.
const (
	TierStandard = "STANDARD"
	TierGold     = "GOLD"
	TierVIP      = "VIP"
)

// Vessel status values.
const (
	VesselInbound  = "INBOUND"
	VesselDocked   = "DOCKED"
	VesselAnchored = "AT_ANCHOR"
	VesselDeparted = "DEPARTED"
	VesselUnknown  = "UNKNOWN"
)

// Coordinates is a WGS84 position in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Voyage describes the current passage of a vessel.
type Voyage struct {
	LastPort string `json:"last_port"`
	NextPort string `json:"next_port"`
	ETA      string `json:"eta"`
}

// VesselRecord is a fleet registry entry. IMO is the canonical identity.
type VesselRecord struct {
	IMO                  string      `json:"imo"`
	Name                 string      `json:"name"`
	Type                 string      `json:"type"`
	Flag                 string      `json:"flag"`
	LOA                  float64     `json:"loa"`
	Beam                 float64     `json:"beam"`
	Draft                float64     `json:"draft"`
	DWT                  float64     `json:"dwt"`
	Status               string      `json:"status"`
	Location             string      `json:"location"`
	Coordinates          Coordinates `json:"coordinates"`
	Voyage               Voyage      `json:"voyage"`
	OutstandingDebt      float64     `json:"outstanding_debt"`
	PaymentHistoryStatus string      `json:"payment_history_status"`
	LoyaltyScore         int         `json:"loyalty_score"`
	LoyaltyTier          string      `json:"loyalty_tier"`
	LegalStatus          string      `json:"legal_status,omitempty"`
	OwnerName            string      `json:"owner_name,omitempty"`
}

// OnLegalHold reports whether the vessel has been flagged RED.
func (v VesselRecord) OnLegalHold() bool {
	return v.LegalStatus == LegalRed
}

var (
	spacePattern  = regexp.MustCompile(`\s+`)
	prefixPattern = regexp.MustCompile(`(?i)^(?:s/y|m/y|m/v|m/t|s/v|y/t)\s+`)
)

// NormalizeName lower-cases a vessel name and collapses whitespace.
// The result is the ledger key for that vessel.
func NormalizeName(name string) string {
	return spacePattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), " ")
}

// BareName strips the vessel-type prefix (S/Y, M/Y, ...) from a normalized name.
func BareName(name string) string {
	return prefixPattern.ReplaceAllString(NormalizeName(name), "")
}
