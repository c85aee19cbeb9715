package app

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/marina/internal/core/effects"
	"github.com/example/marina/internal/core/passkit"
	"github.com/example/marina/internal/ports/primary"
	"github.com/example/marina/internal/ports/secondary"
)

// PasskitServiceImpl implements the PasskitService interface.
type PasskitServiceImpl struct {
	store secondary.StateStore
	now   func() time.Time
}

// NewPasskitService creates a new PasskitService.
func NewPasskitService(store secondary.StateStore) *PasskitServiceImpl {
	return &PasskitServiceImpl{store: store, now: time.Now}
}

// IssuePass issues a digital wallet pass.
func (s *PasskitServiceImpl) IssuePass(ctx context.Context, req primary.PassRequest) (*primary.PassResult, error) {
	passType := strings.ToUpper(req.Type)
	switch passType {
	case passkit.TypeGuest, passkit.TypeOwner, passkit.TypeCrew:
	case "":
		passType = passkit.TypeGuest
	default:
		return nil, effects.Invalid("unknown pass type %q", req.Type)
	}

	vessel := req.Vessel
	if vessel != "" {
		if v, err := findVessel(ctx, s.store.Fleet(), vessel); err == nil {
			vessel = v.Name
		}
	}
	holder := displayOr(req.Holder, "Guest")

	terms := passkit.TermsFor(passType, s.now())
	id := "PASS-" + strings.ToUpper(uuid.NewString()[:8])
	url := passkit.WalletURL + id

	out := effects.NewOutcome(NodePasskit)
	out.Trace(effects.StepToolExecution, effects.PersonaWorker, "Issuing %s pass %s for %s", passType, id, holder)
	out.Emit(effects.KindExternal, ActPassIssued, map[string]any{
		"passId":      id,
		"vessel":      vessel,
		"holder":      holder,
		"type":        passType,
		"accessLevel": terms.AccessLevel,
		"url":         url,
		"expiresAt":   terms.ExpiresAt.Format(time.RFC3339),
	})
	return &primary.PassResult{
		Outcome:     *out,
		PassID:      id,
		URL:         url,
		AccessLevel: terms.AccessLevel,
		ExpiresAt:   terms.ExpiresAt,
	}, nil
}
