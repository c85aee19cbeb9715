package access

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/example/marina/internal/models"
)

// Policy maps operations to their minimum role.
type Policy struct {
	MinRoles map[Operation]models.Role `yaml:"min_roles"`
}

var defaultMinRoles = map[Operation]models.Role{
	OpGeneralInquiry:      models.RoleGuest,
	OpRadarScan:           models.RoleGuest,
	OpArrival:             models.RoleCaptain,
	OpDeparture:           models.RoleCaptain,
	OpDebtCheck:           models.RoleCaptain,
	OpPaymentConfirmation: models.RoleCaptain,
	OpCreateInvoice:       models.RoleCaptain,
	OpBerthAllocation:     models.RoleCaptain,
	OpFleetQuery:          models.RoleCaptain,
	OpScheduleService:     models.RoleCaptain,
	OpJobStatus:           models.RoleCaptain,
	OpSecurityIncident:    models.RoleCaptain,
	OpIssuePass:           models.RoleCaptain,
	OpRegistration:        models.RoleGeneralManager,
	OpLegalConsultation:   models.RoleGeneralManager,
	OpFleetIntelligence:   models.RoleGeneralManager,
	OpDailySettlement:     models.RoleGeneralManager,
	OpPaymentPlan:         models.RoleGeneralManager,
	OpCompleteJob:         models.RoleGeneralManager,
	OpFlagVessel:          models.RoleGeneralManager,
	OpFacilityReport:      models.RoleGeneralManager,
}

// Default returns the built-in policy.
func Default() Policy {
	roles := make(map[Operation]models.Role, len(defaultMinRoles))
	for op, role := range defaultMinRoles {
		roles[op] = role
	}
	return Policy{MinRoles: roles}
}

// MinRole returns the minimum role for op. Unknown operations require
// GENERAL_MANAGER.
func (p Policy) MinRole(op Operation) models.Role {
	if role, ok := p.MinRoles[op]; ok {
		return role
	}
	if role, ok := defaultMinRoles[op]; ok {
		return role
	}
	return models.RoleGeneralManager
}

// Operations lists every known operation in name order.
func Operations() []Operation {
	ops := make([]Operation, 0, len(defaultMinRoles))
	for op := range defaultMinRoles {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}

// Load reads a YAML policy file and overlays it on the defaults.
// An empty path or a missing file yields the defaults.
func Load(path string) (Policy, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Policy{}, fmt.Errorf("read policy: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML policy data and overlays it on the defaults.
func Parse(data []byte) (Policy, error) {
	var overrides Policy
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return Policy{}, fmt.Errorf("parse policy: %w", err)
	}
	if err := overrides.validate(); err != nil {
		return Policy{}, err
	}
	p := Default()
	for op, role := range overrides.MinRoles {
		p.MinRoles[op] = role
	}
	return p, nil
}

func (p Policy) validate() error {
	for op, role := range p.MinRoles {
		if _, ok := defaultMinRoles[op]; !ok {
			return fmt.Errorf("policy: unknown operation %q", op)
		}
		if !role.Valid() {
			return fmt.Errorf("policy: unknown role %q for %s", role, op)
		}
	}
	return nil
}
