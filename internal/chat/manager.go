package chat

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourhome-ai/yourhome/internal/config"
	"github.com/yourhome-ai/yourhome/internal/domain"
	"github.com/yourhome-ai/yourhome/internal/storage"
	"github.com/yourhome-ai/yourhome/internal/textenc"
)

// Manager creates and tracks chat sessions. One session serves one user
// conversation; sessions are never shared across conversations.
type Manager struct {
	store    storage.Store
	streamer Streamer
	logger   *zap.Logger

	// newIndex builds the session-private retrieval index. Swapped in tests.
	newIndex func(ctx context.Context, sessionID string) (Retriever, error)

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a session manager backed by rago indexes.
func NewManager(store storage.Store, ragCfg config.RAGConfig, llmCfg config.LLMConfig, logger *zap.Logger) *Manager {
	return &Manager{
		store:    store,
		streamer: NewOpenAIStreamer(llmCfg),
		logger:   logger,
		newIndex: func(ctx context.Context, sessionID string) (Retriever, error) {
			return newRagoIndex(ctx, ragCfg, llmCfg, sessionID)
		},
		sessions: make(map[string]*Session),
	}
}

// Create indexes one tenant's text documents into a fresh private index and
// returns the session handle.
func (m *Manager) Create(ctx context.Context, address, tenant string) (*Session, error) {
	files, err := m.store.Files(ctx, address, tenant, true)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	index, err := m.newIndex(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, f := range files {
		data, err := m.store.Download(ctx, f.Key)
		if err != nil {
			index.Close()
			return nil, fmt.Errorf("failed to fetch %q for indexing: %w", f.Key, err)
		}
		metadata := map[string]any{
			"filename":                     f.Name,
			domain.MetadataKeyDocumentType: f.DocType(),
		}
		if err := index.IngestText(ctx, textenc.DecodeText(data), f.Name, metadata); err != nil {
			index.Close()
			return nil, err
		}
	}

	session := &Session{
		ID:       id,
		Address:  address,
		Tenant:   tenant,
		index:    index,
		streamer: m.streamer,
		logger:   m.logger,
	}

	m.mu.Lock()
	m.sessions[id] = session
	m.mu.Unlock()

	m.logger.Info("chat session created",
		zap.String("session_id", id),
		zap.String("address", address),
		zap.String("tenant", tenant),
		zap.Int("documents", len(files)))
	return session, nil
}

// Get returns a live session handle.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return session, nil
}

// Close discards a session and its retrieval index.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	session, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return domain.ErrNotFound
	}
	if err := session.index.Close(); err != nil {
		m.logger.Warn("failed to remove session index",
			zap.String("session_id", id), zap.Error(err))
	}
	return nil
}
