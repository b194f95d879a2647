// Package chat provides retrieval-augmented chat sessions scoped to a single
// tenant's document set. Each session owns a private retrieval index, so one
// tenant's content can never surface in another tenant's conversation.
package chat

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	ragoconfig "github.com/liliang-cn/rago/v2/pkg/config"
	ragodomain "github.com/liliang-cn/rago/v2/pkg/domain"
	"github.com/liliang-cn/rago/v2/pkg/providers"
	"github.com/liliang-cn/rago/v2/pkg/rag"

	"github.com/yourhome-ai/yourhome/internal/config"
	"github.com/yourhome-ai/yourhome/internal/domain"
)

// Retriever is the retrieval surface a session depends on. The production
// implementation is a rago client over a session-private index database.
type Retriever interface {
	IngestText(ctx context.Context, text, source string, metadata map[string]any) error
	Retrieve(ctx context.Context, query string) ([]domain.Source, error)
	Close() error
}

// ragoIndex implements Retriever with a private vector database per session.
type ragoIndex struct {
	client *rag.Client
	cfg    config.RAGConfig
	dbPath string
}

func newRagoIndex(ctx context.Context, ragCfg config.RAGConfig, llmCfg config.LLMConfig, sessionID string) (*ragoIndex, error) {
	if err := os.MkdirAll(ragCfg.IndexDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}
	dbPath := filepath.Join(ragCfg.IndexDir, sessionID+".db")

	ragoCfg := &ragoconfig.Config{
		Sqvect: ragoconfig.SqvectConfig{
			DBPath:    dbPath,
			IndexType: "hnsw",
		},
		Chunker: ragoconfig.ChunkerConfig{
			ChunkSize: ragCfg.ChunkSize,
			Overlap:   ragCfg.ChunkOverlap,
		},
		Ingest: ragoconfig.IngestConfig{
			MetadataExtraction: ragoconfig.MetadataExtractionConfig{Enable: false},
		},
	}

	factory := providers.NewFactory()
	providerCfg := &ragodomain.OpenAIProviderConfig{
		BaseURL:        llmCfg.BaseURL,
		APIKey:         llmCfg.APIKey,
		EmbeddingModel: llmCfg.EmbeddingModel,
		LLMModel:       llmCfg.Model,
	}

	embedder, err := factory.CreateEmbedderProvider(ctx, providerCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}
	llmProvider, err := factory.CreateLLMProvider(ctx, providerCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}

	client, err := rag.NewClient(ragoCfg, embedder, llmProvider, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create retrieval client: %w", err)
	}

	return &ragoIndex{client: client, cfg: ragCfg, dbPath: dbPath}, nil
}

func (i *ragoIndex) IngestText(ctx context.Context, text, source string, metadata map[string]any) error {
	opts := &rag.IngestOptions{
		ChunkSize: i.cfg.ChunkSize,
		Overlap:   i.cfg.ChunkOverlap,
		Metadata:  metadata,
	}
	if _, err := i.client.IngestText(ctx, text, source, opts); err != nil {
		return fmt.Errorf("failed to index %q: %w", source, err)
	}
	return nil
}

func (i *ragoIndex) Retrieve(ctx context.Context, query string) ([]domain.Source, error) {
	opts := &rag.QueryOptions{
		TopK:        i.cfg.TopK,
		Temperature: 0,
		MaxTokens:   0,
		ShowSources: true,
	}
	resp, err := i.client.Query(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}

	sources := make([]domain.Source, len(resp.Sources))
	for n, src := range resp.Sources {
		sources[n] = domain.Source{
			DocumentID: src.DocumentID,
			Content:    src.Content,
			Score:      src.Score,
		}
		if src.Metadata != nil {
			if filename, ok := src.Metadata["filename"].(string); ok {
				sources[n].Filename = filename
			}
		}
	}
	return sources, nil
}

// Close discards the session-private index database.
func (i *ragoIndex) Close() error {
	return os.Remove(i.dbPath)
}
