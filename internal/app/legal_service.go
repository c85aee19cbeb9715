package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/example/marina/internal/core/access"
	"github.com/example/marina/internal/core/effects"
	"github.com/example/marina/internal/core/legal"
	"github.com/example/marina/internal/logging"
	"github.com/example/marina/internal/models"
	"github.com/example/marina/internal/ports/primary"
	"github.com/example/marina/internal/ports/secondary"
)

// MaxLegalSections is how many articles a consultation cites.
const MaxLegalSections = 3

// NoMatchingArticle is the advice when no article scores.
const NoMatchingArticle = "No matching article was found in the marina documents. Please rephrase or contact the legal office."

// LegalServiceImpl implements the LegalService interface.
type LegalServiceImpl struct {
	docs   secondary.DocumentStore
	policy access.Policy
	logger *zap.Logger
}

// NewLegalService creates a new LegalService with injected dependencies.
func NewLegalService(docs secondary.DocumentStore, policy access.Policy, logger *zap.Logger) *LegalServiceImpl {
	return &LegalServiceImpl{
		docs:   docs,
		policy: policy,
		logger: logging.OrNop(logger).Named("legal"),
	}
}

// Consult answers a question from the matching marina document.
func (s *LegalServiceImpl) Consult(ctx context.Context, query string, user models.UserProfile) (*primary.ConsultationResult, error) {
	if err := authorize(s.policy, access.OpLegalConsultation, user); err != nil {
		return nil, err
	}

	res := &primary.ConsultationResult{Outcome: *effects.NewOutcome(NodeLegal)}
	out := &res.Outcome

	if legal.IsCompetitorQuery(query) {
		res.Deflected = true
		out.Trace(effects.StepThinking, effects.PersonaExpert, "Question concerns another marina operator; deflecting")
		out.Emit(effects.KindInternal, ActLegalConsultation, map[string]any{
			"deflected":  true,
			"references": []string{},
			"advice":     legal.Deflection,
		})
		return res, nil
	}

	res.Document = legal.SelectDocument(query)
	out.Trace(effects.StepPlanning, effects.PersonaExpert, "Selected %s", res.Document)

	doc, err := s.docs.Document(ctx, res.Document)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", res.Document, err)
	}

	res.Sections = legal.Retrieve(doc, query, MaxLegalSections)
	out.Trace(effects.StepToolExecution, effects.PersonaWorker, "Retrieved %d matching sections", len(res.Sections))

	advice := NoMatchingArticle
	if len(res.Sections) > 0 {
		parts := make([]string, 0, len(res.Sections))
		for _, sec := range res.Sections {
			res.References = append(res.References, sec.Label)
			parts = append(parts, sec.Text)
		}
		advice = strings.Join(parts, "\n\n")
	}
	if res.References == nil {
		res.References = []string{}
	}

	out.Emit(effects.KindInternal, ActLegalConsultation, map[string]any{
		"document":   res.Document,
		"references": res.References,
		"advice":     advice,
		"deflected":  false,
	})
	s.logger.Debug("legal consultation", zap.String("document", res.Document), zap.Strings("references", res.References))
	return res, nil
}
