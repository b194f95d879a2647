package screening

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/yourhome-ai/yourhome/internal/domain"
	"github.com/yourhome-ai/yourhome/internal/textenc"
)

const synthesisPersona = "You are a highly detail-oriented property manager and are currently evaluating a prospective tenant. " +
	"Your goal is to evaluate the tenant and determine whether they are a good fit for the property based on several reports provided to you. " +
	"Pay close attention to key metrics like credit score, income level, and job stability. " +
	"Be highly suspect of any red flags."

const synthesisTask = "You are provided with several key summaries of the documents provided by the prospective tenant named %s for a rental property located at %s. " +
	"Based on these documents, write the following report with 4 sections:\n\n" +
	"Section 1 (Key Information): A summary of all the information provided to you.\n" +
	"Section 2 (Numerical Analysis): A summary of the key numerical variables in the documents.\n" +
	"Section 3 (Tenant Evaluation and Recommendation): A summary of whether you believe this tenant is a strong candidate or not.\n" +
	"Section 4 (Final Summary): Final bullet point summary of the most important metrics and information from your analysis.\n\n```%s```"

// TenantReport evaluates every text document for one tenant and synthesizes
// the four-section report. The per-document map stage records failures without
// stopping; only a synthesis failure or zero successful evaluations aborts the
// report. Nothing is persisted: the report is recomputed per request.
func (e *Evaluator) TenantReport(ctx context.Context, address, tenant string) (*domain.TenantReport, error) {
	files, err := e.store.Files(ctx, address, tenant, true)
	if err != nil {
		return nil, err
	}

	name := domain.TenantDisplayName(tenant)
	report := &domain.TenantReport{Address: address, Tenant: tenant}
	var transcript strings.Builder
	evaluated := 0

	for _, f := range files {
		docType := f.DocType()
		eval := domain.DocumentEvaluation{Key: f.Key, DocumentType: docType}

		data, err := e.store.Download(ctx, f.Key)
		if err != nil {
			eval.Error = err.Error()
			e.logger.Warn("skipping document after download failure",
				zap.String("key", f.Key), zap.Error(err))
			report.Evaluations = append(report.Evaluations, eval)
			continue
		}

		commentary, err := e.EvaluateDocument(ctx, EvalInput{
			Tenant:       name,
			Address:      address,
			DocumentType: docType,
			Text:         textenc.DecodeText(data),
		})
		if err != nil {
			eval.Error = err.Error()
			e.logger.Warn("skipping document after evaluation failure",
				zap.String("key", f.Key), zap.Error(err))
			report.Evaluations = append(report.Evaluations, eval)
			continue
		}

		eval.Commentary = commentary
		report.Evaluations = append(report.Evaluations, eval)
		evaluated++
		fmt.Fprintf(&transcript,
			"The following is a report analyzing the document provided by %s with document type %s:\n\n%s\n",
			name, docType, commentary)
	}

	if evaluated == 0 {
		return nil, domain.ErrNoDocuments
	}

	system := synthesisPersona
	user := fmt.Sprintf(synthesisTask, name, address, transcript.String())
	text, err := e.llm.Complete(ctx, system, user)
	if err != nil {
		return nil, fmt.Errorf("report synthesis for %s: %w", name, err)
	}

	report.Report = EscapeMarkdown(text)
	e.logger.Info("tenant report produced",
		zap.String("address", address),
		zap.String("tenant", tenant),
		zap.Int("documents", len(files)),
		zap.Int("evaluated", evaluated))
	return report, nil
}
