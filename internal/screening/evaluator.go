package screening

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/yourhome-ai/yourhome/internal/domain"
	"github.com/yourhome-ai/yourhome/internal/storage"
	"github.com/yourhome-ai/yourhome/internal/textenc"
)

// EvalInput carries everything the single-document pass needs.
type EvalInput struct {
	Tenant       string // display name
	Address      string
	DocumentType string
	Text         string
}

// Evaluator runs the screening passes against the language model.
type Evaluator struct {
	llm    ChatClient
	store  storage.Store
	logger *zap.Logger
}

// NewEvaluator creates a screening evaluator.
func NewEvaluator(llm ChatClient, store storage.Store, logger *zap.Logger) *Evaluator {
	return &Evaluator{llm: llm, store: store, logger: logger}
}

const evaluatorPersona = "You are a critical property manager and are currently evaluating a prospective tenant named %s for a rental property located at %s. " +
	"Your goal is to evaluate the tenant and determine whether they are a good fit for the property. " +
	"Pay close attention to key metrics like credit score, income level and job stability. " +
	"Be highly suspect of any red flags."

const evaluatorTask = "Based on the following document from %s with document type %s, " +
	"provide a concise summary of all meaningful aspects of the document for your manager. " +
	"Be sure to highlight key numerical variables in your analysis. " +
	"The information you provide should help to determine whether %s is a good fit as a tenant. " +
	"Finally, provide commentary on whether you believe this tenant is a strong candidate.\n\n```%s```"

// EvaluateDocument runs one completion over a single document and returns the
// escaped narrative commentary. A model failure is surfaced, never an empty
// success.
func (e *Evaluator) EvaluateDocument(ctx context.Context, in EvalInput) (string, error) {
	system := fmt.Sprintf(evaluatorPersona, in.Tenant, in.Address)
	user := fmt.Sprintf(evaluatorTask, in.Tenant, in.DocumentType, in.Tenant, in.Text)

	text, err := e.llm.Complete(ctx, system, user)
	if err != nil {
		return "", fmt.Errorf("document evaluation for %s (%s): %w", in.Tenant, in.DocumentType, err)
	}
	return EscapeMarkdown(text), nil
}

// EvaluateCategory finds the tenant document matching a category and evaluates
// it. Returns domain.ErrNotFound when no text document carries that category.
func (e *Evaluator) EvaluateCategory(ctx context.Context, address, tenant, category string) (*domain.DocumentEvaluation, error) {
	files, err := e.store.Files(ctx, address, tenant, true)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if !domain.SameDocType(f.DocType(), category) {
			continue
		}
		data, err := e.store.Download(ctx, f.Key)
		if err != nil {
			return nil, err
		}
		commentary, err := e.EvaluateDocument(ctx, EvalInput{
			Tenant:       domain.TenantDisplayName(tenant),
			Address:      address,
			DocumentType: f.DocType(),
			Text:         textenc.DecodeText(data),
		})
		if err != nil {
			return nil, err
		}
		return &domain.DocumentEvaluation{
			Key:          f.Key,
			DocumentType: f.DocType(),
			Commentary:   commentary,
		}, nil
	}
	return nil, domain.ErrNotFound
}
