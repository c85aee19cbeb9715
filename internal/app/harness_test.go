package app

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/example/marina/internal/adapters/memory"
	"github.com/example/marina/internal/adapters/mock"
	"github.com/example/marina/internal/core/access"
	"github.com/example/marina/internal/models"
	"github.com/example/marina/internal/ports/primary"
	"github.com/example/marina/internal/ports/secondary"
)

// ============================================================================
// Test Users
// ============================================================================

var (
	testGM      = models.NewUser("gm-01", "Levent Baktir", models.RoleGeneralManager)
	testCaptain = models.NewUser("cpt-07", "Capt. Demir", models.RoleCaptain)
	testGuest   = models.NewUser("guest-1", "Visitor", models.RoleGuest)
)

// ============================================================================
// Harness
// ============================================================================

// harness wires every skill over a seeded in-memory store and mock providers.
type harness struct {
	store    *memory.Store
	finance  *FinanceServiceImpl
	fleet    *FleetServiceImpl
	legal    *LegalServiceImpl
	technic  *TechnicServiceImpl
	customer *CustomerServiceImpl
	security *SecurityServiceImpl
	passkit  *PasskitServiceImpl
	facility *FacilityServiceImpl
	applier  *StoreApplier
	router   *Router
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWith(t, func(*RouterDeps) {})
}

func newHarnessWith(t *testing.T, tweak func(*RouterDeps)) *harness {
	t.Helper()
	store := memory.NewSeeded()
	policy := access.Default()
	logger := zap.NewNop()

	h := &harness{store: store}
	h.finance = NewFinanceService(store, mock.NewInvoiceProvider(), mock.NewPaymentGateway(""), mock.NewBankFeed(nil), policy, nil, logger)
	h.fleet = NewFleetService(store, mock.NewAisFeed(store.Fleet(), rand.New(rand.NewPCG(1, 2))), mock.NewPaymentGateway(""), policy, logger)
	h.fleet.squawk = func() int { return 0o42 }
	h.legal = NewLegalService(mock.NewDocuments(), policy, logger)
	h.technic = NewTechnicService(store, policy, logger)
	h.customer = NewCustomerService()
	h.security = NewSecurityService(store, mock.NewSurveillance(0), policy, logger)
	h.passkit = NewPasskitService(store)
	h.facility = NewFacilityService(mock.NewFacilitySensors(), policy, logger)
	h.applier = NewActionApplier(store, logger)

	deps := RouterDeps{
		Store:    store,
		Policy:   policy,
		Finance:  h.finance,
		Fleet:    h.fleet,
		Legal:    h.legal,
		Technic:  h.technic,
		Customer: h.customer,
		Security: h.security,
		Passkit:  h.passkit,
		Facility: h.facility,
		Logger:   logger,
	}
	tweak(&deps)
	h.router = NewRouter(deps)
	return h
}

// ask routes a command and applies its actions.
func (h *harness) ask(t *testing.T, user models.UserProfile, text string) *primary.Response {
	t.Helper()
	resp := h.router.ProcessRequest(context.Background(), primary.Request{Text: text, User: user})
	if _, err := h.applier.Apply(context.Background(), resp.Actions); err != nil {
		t.Fatalf("Apply(%q) failed: %v", text, err)
	}
	return resp
}

func (h *harness) balance(t *testing.T, vessel string) models.LedgerEntry {
	t.Helper()
	entry, err := h.store.Ledger().Get(context.Background(), models.NormalizeName(vessel))
	if err != nil {
		t.Fatalf("ledger Get(%s) failed: %v", vessel, err)
	}
	return entry
}

func (h *harness) vessel(t *testing.T, imo string) models.VesselRecord {
	t.Helper()
	v, err := h.store.Fleet().GetByIMO(context.Background(), imo)
	if err != nil {
		t.Fatalf("GetByIMO(%s) failed: %v", imo, err)
	}
	return *v
}

func actionNames(resp *primary.Response) []string {
	names := make([]string, len(resp.Actions))
	for i, a := range resp.Actions {
		names[i] = a.Name
	}
	return names
}

// ============================================================================
// Mock Implementations
// ============================================================================

// mockRemote implements secondary.RemoteCore.
type mockRemote struct {
	healthy    bool
	processErr error
	text       string
	calls      int
}

func (m *mockRemote) Healthy(ctx context.Context) bool { return m.healthy }

func (m *mockRemote) Process(ctx context.Context, text string, user models.UserProfile) (*secondary.RemoteResponse, error) {
	m.calls++
	if m.processErr != nil {
		return nil, m.processErr
	}
	return &secondary.RemoteResponse{Text: m.text}, nil
}

// mockChat implements secondary.ChatFallback by replaying chunks.
type mockChat struct {
	chunks []secondary.ChatChunk
	err    error
	last   secondary.ChatRequest
}

func (m *mockChat) Stream(ctx context.Context, req secondary.ChatRequest, onChunk func(secondary.ChatChunk)) error {
	m.last = req
	for _, c := range m.chunks {
		onChunk(c)
	}
	return m.err
}

// mockSlots implements secondary.SlotStore over a map of JSON blobs.
type mockSlots struct {
	mu      sync.Mutex
	data    map[string][]byte
	saveErr error
	saves   int
}

func newMockSlots() *mockSlots {
	return &mockSlots{data: make(map[string][]byte)}
}

func (m *mockSlots) Load(ctx context.Context, key string, dst any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (m *mockSlots) Save(ctx context.Context, key string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.data[key] = raw
	m.saves++
	return nil
}

// mockAudit implements secondary.AuditLog.
type mockAudit struct {
	records   []secondary.AuditRecord
	appendErr error
}

func (m *mockAudit) Append(ctx context.Context, record secondary.AuditRecord) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.records = append(m.records, record)
	return nil
}

func (m *mockAudit) Recent(ctx context.Context, limit int) ([]secondary.AuditRecord, error) {
	return m.records, nil
}

// mockLive implements secondary.LiveSession.
type mockLive struct {
	onTurn func(userText, modelText string)
}

func (m *mockLive) Status() secondary.LiveStatus { return secondary.LiveConnected }

func (m *mockLive) OnTurnComplete(fn func(userText, modelText string)) { m.onTurn = fn }

// panickingCustomer implements primary.CustomerService and always panics.
type panickingCustomer struct{}

func (panickingCustomer) Inquire(ctx context.Context, query string) (*primary.InquiryResult, error) {
	panic("knowledge base corrupted")
}

// failingCustomer implements primary.CustomerService and always errors.
type failingCustomer struct{}

func (failingCustomer) Inquire(ctx context.Context, query string) (*primary.InquiryResult, error) {
	return nil, errors.New("knowledge base offline")
}
