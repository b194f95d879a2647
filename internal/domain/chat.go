package domain

import "time"

// Message represents one entry in a chat session transcript.
type Message struct {
	Role      string    `json:"role"` // user, assistant
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatRequest is the request to send a chat message.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// CreateChatRequest is the request to open a chat session for one tenant.
type CreateChatRequest struct {
	Address string `json:"address" binding:"required"`
	Tenant  string `json:"tenant" binding:"required"`
}

// StreamChunk represents a chunk in an SSE answer stream.
type StreamChunk struct {
	Type    string `json:"type"` // content, done, error
	Content string `json:"content,omitempty"`
}

// Source represents a retrieved document snippet backing an answer.
type Source struct {
	DocumentID string  `json:"document_id"`
	Filename   string  `json:"filename"`
	Content    string  `json:"content"`
	Score      float64 `json:"score"`
}
