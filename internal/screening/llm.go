// Package screening runs AI tenant screening: a per-document evaluation pass
// and a cross-document synthesis pass producing the four-section report.
package screening

import (
	"context"
	"fmt"
	"math"

	openai "github.com/sashabaranov/go-openai"

	"github.com/yourhome-ai/yourhome/internal/config"
)

// ChatClient is the completion surface the screening passes depend on. The
// production implementation calls an OpenAI-compatible endpoint; tests swap in
// a canned fake.
type ChatClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// OpenAIClient implements ChatClient with deterministic sampling. Temperature
// is pinned to zero so identical input text yields reproducible evaluations.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient builds a client from the LLM configuration. BaseURL may
// point at any OpenAI-compatible endpoint.
func NewOpenAIClient(cfg config.LLMConfig) *OpenAIClient {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

// Complete issues exactly one chat completion and returns the response text.
func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		// A literal 0 is dropped by the field's omitempty and the provider
		// would fall back to its own default; the smallest positive float
		// still serializes and samples deterministically.
		Temperature: math.SmallestNonzeroFloat32,
	})
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
