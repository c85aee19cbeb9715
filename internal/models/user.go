// Package models holds the marina domain records shared by the core,
// the ports and the adapters.
package models

// Role is an operator role. Roles are ordered by clearance level.
type Role string

const (
	RoleGuest          Role = "GUEST"
	RoleCaptain        Role = "CAPTAIN"
	RoleGeneralManager Role = "GENERAL_MANAGER"
)

// Legal status values. RED places the holder under legal hold.
const (
	LegalGreen = "GREEN"
	LegalRed   = "RED"
)

// Clearance returns the clearance level for a role (unknown roles get 0).
func (r Role) Clearance() int {
	switch r {
	case RoleGeneralManager:
		return 5
	case RoleCaptain:
		return 3
	default:
		return 0
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleCaptain, RoleGeneralManager:
		return true
	}
	return false
}

// UserProfile identifies the operator issuing a request.
// It is treated as immutable for the duration of a request.
type UserProfile struct {
	ID             string
	Name           string
	Role           Role
	ClearanceLevel int
	LegalStatus    string
	ContractID     string
	VesselName     string // vessel commanded by the user, used when a command names none
}

// NewUser builds a profile with clearance derived from role and GREEN legal status.
func NewUser(id, name string, role Role) UserProfile {
	return UserProfile{
		ID:             id,
		Name:           name,
		Role:           role,
		ClearanceLevel: role.Clearance(),
		LegalStatus:    LegalGreen,
	}
}

// OnLegalHold reports whether the user's legal status blocks departures.
func (u UserProfile) OnLegalHold() bool {
	return u.LegalStatus == LegalRed
}
