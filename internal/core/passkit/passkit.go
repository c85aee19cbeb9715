// Package passkit computes the terms of marina access passes.
package passkit

import (
	"strings"
	"time"
)

// Pass types.
const (
	TypeGuest = "GUEST"
	TypeOwner = "OWNER"
	TypeCrew  = "CREW"
)

// Access levels.
const (
	AccessAllAreas    = "ALL_AREAS"
	AccessPontoonOnly = "PONTOON_ONLY"
)

// WalletURL is the base of digital wallet links.
const WalletURL = "https://wallet.wim.network/p/"

// Terms are the validity and reach of a pass.
type Terms struct {
	Type        string
	AccessLevel string
	ExpiresAt   time.Time
}

// ParseType maps free text to a pass type; guest is the default.
func ParseType(text string) string {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "owner"):
		return TypeOwner
	case strings.Contains(t, "crew"):
		return TypeCrew
	}
	return TypeGuest
}

// TermsFor returns the terms of a pass issued at issuedAt.
// Guest passes last one day; owner and crew passes a year. Only owners
// reach every area.
func TermsFor(passType string, issuedAt time.Time) Terms {
	days := 365
	if passType == TypeGuest {
		days = 1
	}
	access := AccessPontoonOnly
	if passType == TypeOwner {
		access = AccessAllAreas
	}
	return Terms{
		Type:        passType,
		AccessLevel: access,
		ExpiresAt:   issuedAt.AddDate(0, 0, days),
	}
}
