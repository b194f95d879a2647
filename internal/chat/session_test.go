package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourhome-ai/yourhome/internal/domain"
)

// fakeRetriever serves canned sources and records ingested documents.
type fakeRetriever struct {
	mu       sync.Mutex
	ingested []string
	sources  []domain.Source
	closed   bool
}

func (f *fakeRetriever) IngestText(ctx context.Context, text, source string, metadata map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ingested = append(f.ingested, source)
	return nil
}

func (f *fakeRetriever) Retrieve(ctx context.Context, query string) ([]domain.Source, error) {
	return f.sources, nil
}

func (f *fakeRetriever) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// fakeStreamer emits the answer in fixed-size pieces and records prompts.
type fakeStreamer struct {
	mu      sync.Mutex
	answer  string
	err     error
	system  string
	history []domain.Message
	prompt  string
}

func (f *fakeStreamer) StreamAnswer(ctx context.Context, system string, history []domain.Message, question string, onDelta func(string)) (string, error) {
	f.mu.Lock()
	f.system = system
	f.history = append([]domain.Message(nil), history...)
	f.prompt = question
	f.mu.Unlock()

	if f.err != nil {
		return "", f.err
	}
	for _, word := range strings.SplitAfter(f.answer, " ") {
		onDelta(word)
	}
	return f.answer, nil
}

func newTestSession(r Retriever, s Streamer) *Session {
	return &Session{
		ID:       "session-1",
		Address:  "12 Oak St",
		Tenant:   "Jane_Doe",
		index:    r,
		streamer: s,
		logger:   zap.NewNop(),
	}
}

func collect(t *testing.T, ch <-chan domain.StreamChunk) (string, domain.StreamChunk) {
	t.Helper()
	var b strings.Builder
	var last domain.StreamChunk
	for chunk := range ch {
		last = chunk
		if chunk.Type == "content" {
			b.WriteString(chunk.Content)
		}
	}
	return b.String(), last
}

func TestSessionAskStreamsAndRecords(t *testing.T) {
	retriever := &fakeRetriever{sources: []domain.Source{
		{Filename: "credit.txt", Content: "score: 720"},
	}}
	streamer := &fakeStreamer{answer: "The credit score is 720."}
	s := newTestSession(retriever, streamer)

	ch, err := s.Ask(context.Background(), "What is the credit score?")
	require.NoError(t, err)

	answer, last := collect(t, ch)
	assert.Equal(t, "The credit score is 720.", answer)
	assert.Equal(t, "done", last.Type)

	assert.Contains(t, streamer.system, "Jane Doe")
	assert.Contains(t, streamer.system, "12 Oak St")
	assert.Contains(t, streamer.prompt, "Document excerpts:")
	assert.Contains(t, streamer.prompt, "From credit.txt:")
	assert.Contains(t, streamer.prompt, "score: 720")
	assert.Contains(t, streamer.prompt, "Question: What is the credit score?")

	transcript := s.Transcript()
	require.Len(t, transcript, 2)
	assert.Equal(t, "user", transcript[0].Role)
	assert.Equal(t, "What is the credit score?", transcript[0].Content)
	assert.Equal(t, "assistant", transcript[1].Role)
	assert.Equal(t, "The credit score is 720.", transcript[1].Content)
}

func TestSessionAskWithoutSources(t *testing.T) {
	streamer := &fakeStreamer{answer: "I do not know."}
	s := newTestSession(&fakeRetriever{}, streamer)

	ch, err := s.Ask(context.Background(), "Anything?")
	require.NoError(t, err)
	collect(t, ch)

	// No excerpt framing when retrieval returns nothing
	assert.Equal(t, "Anything?", streamer.prompt)
}

func TestSessionAskCarriesHistory(t *testing.T) {
	streamer := &fakeStreamer{answer: "Second answer."}
	s := newTestSession(&fakeRetriever{}, streamer)

	ch, err := s.Ask(context.Background(), "First?")
	require.NoError(t, err)
	collect(t, ch)

	ch, err = s.Ask(context.Background(), "Second?")
	require.NoError(t, err)
	collect(t, ch)

	require.Len(t, streamer.history, 2)
	assert.Equal(t, "First?", streamer.history[0].Content)
	require.Len(t, s.Transcript(), 4)
}

func TestSessionAskBlankQuestion(t *testing.T) {
	s := newTestSession(&fakeRetriever{}, &fakeStreamer{})
	_, err := s.Ask(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestSessionAskStreamFailure(t *testing.T) {
	streamer := &fakeStreamer{err: errors.New("upstream closed")}
	s := newTestSession(&fakeRetriever{}, streamer)

	ch, err := s.Ask(context.Background(), "Question?")
	require.NoError(t, err)

	_, last := collect(t, ch)
	assert.Equal(t, "error", last.Type)
	assert.Contains(t, last.Content, "upstream closed")
	// Failed exchanges never enter the transcript
	assert.Empty(t, s.Transcript())
}

func TestSessionReset(t *testing.T) {
	streamer := &fakeStreamer{answer: "ok"}
	s := newTestSession(&fakeRetriever{}, streamer)

	ch, err := s.Ask(context.Background(), "Question?")
	require.NoError(t, err)
	collect(t, ch)
	require.NotEmpty(t, s.Transcript())

	s.Reset()
	assert.Empty(t, s.Transcript())
}
