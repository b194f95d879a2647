package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	openai "github.com/sashabaranov/go-openai"

	"github.com/yourhome-ai/yourhome/internal/config"
	"github.com/yourhome-ai/yourhome/internal/domain"
)

// Streamer produces a chat answer incrementally. onDelta is invoked once per
// text chunk as it arrives; the full answer is returned when the stream ends.
type Streamer interface {
	StreamAnswer(ctx context.Context, system string, history []domain.Message, question string, onDelta func(string)) (string, error)
}

// openAIStreamer implements Streamer over the chat-completion streaming API.
type openAIStreamer struct {
	client *openai.Client
	model  string
}

// NewOpenAIStreamer builds a streaming answer generator.
func NewOpenAIStreamer(cfg config.LLMConfig) Streamer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &openAIStreamer{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

func (s *openAIStreamer) StreamAnswer(ctx context.Context, system string, history []domain.Message, question string, onDelta func(string)) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: system,
	})
	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: question,
	})

	stream, err := s.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:    s.model,
		Messages: messages,
		// Smallest positive value instead of 0: a literal zero is dropped by
		// the field's omitempty and the provider default would apply.
		Temperature: math.SmallestNonzeroFloat32,
		Stream:      true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to open answer stream: %w", err)
	}
	defer stream.Close()

	var full string
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return full, nil
		}
		if err != nil {
			return "", fmt.Errorf("answer stream failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			continue
		}
		delta := resp.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		full += delta
		if onDelta != nil {
			onDelta(delta)
		}
	}
}
