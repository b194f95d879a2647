package screening

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourhome-ai/yourhome/internal/domain"
	"github.com/yourhome-ai/yourhome/internal/storage"
)

func reportStore(t *testing.T) *storage.Memory {
	t.Helper()
	store := storage.NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Upload(ctx, "documents/12 Oak St/Jane_Doe/a_credit.txt",
		[]byte("score: 720"),
		map[string]string{domain.MetadataKeyDocumentType: "credit score"}))
	require.NoError(t, store.Upload(ctx, "documents/12 Oak St/Jane_Doe/b_income.txt",
		[]byte("income: 4000"),
		map[string]string{domain.MetadataKeyDocumentType: "income verification"}))
	// Binary upload is skipped by the text-only filter
	require.NoError(t, store.Upload(ctx, "documents/12 Oak St/Jane_Doe/c_photo.png",
		[]byte{0x89, 0x50}, nil))
	return store
}

func TestTenantReport(t *testing.T) {
	llm := &fakeLLM{}
	e := NewEvaluator(llm, reportStore(t), zap.NewNop())

	report, err := e.TenantReport(context.Background(), "12 Oak St", "Jane_Doe")
	require.NoError(t, err)

	// Two per-document calls plus one synthesis call
	assert.Equal(t, 3, llm.callCount())
	require.Len(t, report.Evaluations, 2)
	assert.Equal(t, "credit score", report.Evaluations[0].DocumentType)
	assert.Equal(t, "income verification", report.Evaluations[1].DocumentType)
	assert.NotEmpty(t, report.Report)

	synthesis := llm.lastCall()
	assert.Contains(t, synthesis, "Section 1 (Key Information)")
	assert.Contains(t, synthesis, "Section 4 (Final Summary)")
	assert.Contains(t, synthesis,
		"The following is a report analyzing the document provided by Jane Doe with document type credit score:")
}

func TestTenantReportNoDocuments(t *testing.T) {
	llm := &fakeLLM{}
	e := NewEvaluator(llm, storage.NewMemory(), zap.NewNop())

	_, err := e.TenantReport(context.Background(), "12 Oak St", "Jane_Doe")
	assert.ErrorIs(t, err, domain.ErrNoDocuments)
	// No synthesis call without evaluable documents
	assert.Equal(t, 0, llm.callCount())
}

func TestTenantReportPartialFailure(t *testing.T) {
	store := reportStore(t)
	ctx := context.Background()
	// This document trips the fake model; its failure must not block the rest
	require.NoError(t, store.Upload(ctx, "documents/12 Oak St/Jane_Doe/0_bad.txt",
		[]byte(failMarker),
		map[string]string{domain.MetadataKeyDocumentType: "references"}))

	llm := &fakeLLM{}
	e := NewEvaluator(llm, store, zap.NewNop())

	report, err := e.TenantReport(ctx, "12 Oak St", "Jane_Doe")
	require.NoError(t, err)
	require.Len(t, report.Evaluations, 3)

	failed := report.Evaluations[0]
	assert.Equal(t, "references", failed.DocumentType)
	assert.NotEmpty(t, failed.Error)
	assert.Empty(t, failed.Commentary)

	assert.NotEmpty(t, report.Evaluations[1].Commentary)
	assert.NotEmpty(t, report.Evaluations[2].Commentary)
	assert.NotEmpty(t, report.Report)
}

func TestTenantReportAllDocumentsFail(t *testing.T) {
	store := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, store.Upload(ctx, "documents/12 Oak St/Jane_Doe/bad.txt",
		[]byte(failMarker),
		map[string]string{domain.MetadataKeyDocumentType: "references"}))

	llm := &fakeLLM{}
	e := NewEvaluator(llm, store, zap.NewNop())

	_, err := e.TenantReport(ctx, "12 Oak St", "Jane_Doe")
	assert.ErrorIs(t, err, domain.ErrNoDocuments)
	// Only the failed per-document call; no synthesis
	assert.Equal(t, 1, llm.callCount())
}
