package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yourhome-ai/yourhome/internal/domain"
)

// Session is one tenant-scoped conversation. The transcript is append-only
// conversational state held in memory; Reset clears it while the underlying
// retrieval index persists until the session is closed.
type Session struct {
	ID      string
	Address string
	Tenant  string

	index    Retriever
	streamer Streamer
	logger   *zap.Logger

	mu         sync.Mutex
	transcript []domain.Message
}

const chatPersona = "You are a helpful assistant working for a property manager. " +
	"You answer questions about the application documents submitted by the prospective tenant %s " +
	"for the rental property at %s. Answer using only the document excerpts provided with each " +
	"question. If the excerpts do not contain the answer, say so instead of guessing."

// Ask relays a question to the bot and returns a lazily produced sequence of
// answer chunks. The consumer may cancel via ctx; the stream closes without
// requiring the producer to finish. The completed question/answer pair is
// appended to the transcript.
func (s *Session) Ask(ctx context.Context, question string) (<-chan domain.StreamChunk, error) {
	if strings.TrimSpace(question) == "" {
		return nil, domain.ErrInvalidRequest
	}

	sources, err := s.index.Retrieve(ctx, question)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	history := make([]domain.Message, len(s.transcript))
	copy(history, s.transcript)
	s.mu.Unlock()

	system := fmt.Sprintf(chatPersona, domain.TenantDisplayName(s.Tenant), s.Address)
	user := buildQuestion(question, sources)

	ch := make(chan domain.StreamChunk, 100)
	go func() {
		defer close(ch)

		answer, err := s.streamer.StreamAnswer(ctx, system, history, user, func(delta string) {
			select {
			case ch <- domain.StreamChunk{Type: "content", Content: delta}:
			case <-ctx.Done():
			}
		})
		if err != nil {
			s.logger.Error("chat answer failed",
				zap.String("session_id", s.ID), zap.Error(err))
			select {
			case ch <- domain.StreamChunk{Type: "error", Content: err.Error()}:
			case <-ctx.Done():
			}
			return
		}

		now := time.Now()
		s.mu.Lock()
		s.transcript = append(s.transcript,
			domain.Message{Role: "user", Content: question, CreatedAt: now},
			domain.Message{Role: "assistant", Content: answer, CreatedAt: time.Now()},
		)
		s.mu.Unlock()

		select {
		case ch <- domain.StreamChunk{Type: "done"}:
		case <-ctx.Done():
		}
	}()

	return ch, nil
}

// Transcript returns a copy of the visible conversation.
func (s *Session) Transcript() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Reset clears the visible transcript. The retrieval index is retained.
func (s *Session) Reset() {
	s.mu.Lock()
	s.transcript = nil
	s.mu.Unlock()
}

func buildQuestion(question string, sources []domain.Source) string {
	if len(sources) == 0 {
		return question
	}
	var b strings.Builder
	b.WriteString("Document excerpts:\n")
	for _, src := range sources {
		b.WriteString("---\n")
		if src.Filename != "" {
			fmt.Fprintf(&b, "From %s:\n", src.Filename)
		}
		b.WriteString(src.Content)
		b.WriteString("\n")
	}
	b.WriteString("---\n\nQuestion: ")
	b.WriteString(question)
	return b.String()
}
