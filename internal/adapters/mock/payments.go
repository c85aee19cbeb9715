// Package mock contains in-process stand-ins for the marina's outside
// providers. Each satisfies the same port a production client would.
package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/example/marina/internal/core/effects"
	"github.com/example/marina/internal/ports/secondary"
)

// PaymentGateway issues hosted payment links.
type PaymentGateway struct {
	BaseURL string
}

// NewPaymentGateway returns a gateway issuing links under baseURL.
func NewPaymentGateway(baseURL string) *PaymentGateway {
	if baseURL == "" {
		baseURL = "https://iyzi.co/pay/"
	}
	return &PaymentGateway{BaseURL: baseURL}
}

// CreatePaymentLink returns a pending link for an invoice.
func (g *PaymentGateway) CreatePaymentLink(ctx context.Context, invoiceID string, amount float64) (*secondary.PaymentLink, error) {
	if invoiceID == "" {
		return nil, effects.Invalid("invoice ID is required for a payment link")
	}
	if amount <= 0 {
		return nil, effects.Invalid("payment link amount must be positive, got %.2f", amount)
	}
	return &secondary.PaymentLink{
		ID:     "PL-" + invoiceID,
		URL:    g.BaseURL + invoiceID,
		Status: "PENDING",
	}, nil
}

// InvoiceProvider issues sequential draft invoices.
type InvoiceProvider struct {
	mu   sync.Mutex
	next int
}

// NewInvoiceProvider returns a provider whose first invoice is INV-1001.
func NewInvoiceProvider() *InvoiceProvider {
	return &InvoiceProvider{next: 1000}
}

// CreateInvoice drafts an invoice.
func (p *InvoiceProvider) CreateInvoice(ctx context.Context, draft secondary.InvoiceDraft) (*secondary.Invoice, error) {
	if draft.Amount <= 0 {
		return nil, effects.Invalid("invoice amount must be positive, got %.2f", draft.Amount)
	}
	p.mu.Lock()
	p.next++
	id := fmt.Sprintf("INV-%d", p.next)
	p.mu.Unlock()

	return &secondary.Invoice{
		ID:       id,
		Provider: "PARASUT",
		Status:   "DRAFT",
		Amount:   draft.Amount,
	}, nil
}

// BankFeed serves a fixed batch of transfers.
type BankFeed struct {
	mu           sync.Mutex
	transactions []secondary.BankTransaction
}

// NewBankFeed returns a feed serving txs; nil uses the default batch.
func NewBankFeed(txs []secondary.BankTransaction) *BankFeed {
	if txs == nil {
		txs = DefaultTransactions()
	}
	return &BankFeed{transactions: txs}
}

// DefaultTransactions is a settlement day with two matchable transfers
// and one that names no vessel.
func DefaultTransactions() []secondary.BankTransaction {
	return []secondary.BankTransaction{
		{Amount: 850, Description: "EFT BLUE HORIZON BERTH FEE NOV", Reference: "TX-20251120-001"},
		{Amount: 400, Description: "SWIFT MISTRAL YACHTING LTD", Reference: "TX-20251120-002", VesselIMO: "555666777"},
		{Amount: 120, Description: "CARD SETTLEMENT POS-7 RESTAURANT", Reference: "TX-20251120-003"},
	}
}

// Transactions returns a copy of the batch.
func (f *BankFeed) Transactions(ctx context.Context) ([]secondary.BankTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]secondary.BankTransaction(nil), f.transactions...), nil
}
