package app

import (
	"context"

	"github.com/example/marina/internal/core/customer"
	"github.com/example/marina/internal/core/effects"
	"github.com/example/marina/internal/ports/primary"
)

// CustomerServiceImpl implements the CustomerService interface.
type CustomerServiceImpl struct{}

// NewCustomerService creates a new CustomerService.
func NewCustomerService() *CustomerServiceImpl {
	return &CustomerServiceImpl{}
}

// Inquire answers from the information desk knowledge base.
func (s *CustomerServiceImpl) Inquire(ctx context.Context, query string) (*primary.InquiryResult, error) {
	out := effects.NewOutcome(NodeCustomer)
	topic, ok := customer.Lookup(query)

	answer := customer.NotFound
	if ok {
		answer = topic.Answer
		out.Trace(effects.StepToolExecution, effects.PersonaWorker, "Knowledge base topic: %s", topic.Key)
	} else {
		out.Trace(effects.StepAnalysis, effects.PersonaWorker, "No knowledge base topic matched")
	}

	out.Emit(effects.KindInternal, ActCustomerInfo, map[string]any{
		"topic":  topic.Key,
		"answer": answer,
	})
	return &primary.InquiryResult{Outcome: *out, Topic: topic.Key, Answer: answer}, nil
}
