package secondary

import (
	"context"
	"time"

	"github.com/example/marina/internal/core/facility"
	"github.com/example/marina/internal/core/fleet"
	"github.com/example/marina/internal/models"
)

// PaymentLink is a hosted checkout page for an invoice.
type PaymentLink struct {
	ID     string
	URL    string
	Status string
}

// PaymentGateway creates payment links.
type PaymentGateway interface {
	CreatePaymentLink(ctx context.Context, invoiceID string, amount float64) (*PaymentLink, error)
}

// InvoiceDraft is the input to an invoicing provider.
type InvoiceDraft struct {
	Vessel      string
	ServiceType string
	Amount      float64
}

// Invoice is an invoice created by a provider.
type Invoice struct {
	ID       string
	Provider string
	Status   string
	Amount   float64
}

// InvoiceProvider issues invoices.
type InvoiceProvider interface {
	CreateInvoice(ctx context.Context, draft InvoiceDraft) (*Invoice, error)
}

// BankTransaction is one incoming bank transfer.
type BankTransaction struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Reference   string  `json:"reference"`
	VesselIMO   string  `json:"vessel_imo,omitempty"`
}

// BankFeed lists the transfers of the current settlement day.
type BankFeed interface {
	Transactions(ctx context.Context) ([]BankTransaction, error)
}

// AisProvider returns a live traffic picture.
type AisProvider interface {
	LiveTargets(ctx context.Context) ([]fleet.Target, error)
}

// DocumentStore serves named markdown documents.
type DocumentStore interface {
	Document(ctx context.Context, name string) (string, error)
}

// Footage is the result of a CCTV review.
type Footage struct {
	Confirmed  bool
	EvidenceID string
	Details    string
}

// Surveillance reviews camera footage. Reviews run to completion.
type Surveillance interface {
	ReviewFootage(ctx context.Context, location string, window time.Duration) (*Footage, error)
}

// FacilitySensors reads the marina's utility and environmental telemetry.
type FacilitySensors interface {
	Infrastructure(ctx context.Context) (facility.InfrastructureScan, error)
	GridLoad(ctx context.Context) (int, error)
	Waste(ctx context.Context) (facility.WasteStats, error)
	WaterSample(ctx context.Context) (facility.WaterSample, error)
	HSEFindings(ctx context.Context) ([]facility.HSEFinding, error)
}

// RemoteResponse is the reply of a remote console core.
type RemoteResponse struct {
	Text string `json:"text"`
}

// RemoteCore is an optional backend that can process commands instead of
// the local router.
type RemoteCore interface {
	// Healthy checks the backend within a bounded time. It never errors.
	Healthy(ctx context.Context) bool

	Process(ctx context.Context, text string, user models.UserProfile) (*RemoteResponse, error)
}
