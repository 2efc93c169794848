package domain

import (
	"context"
)

// ProfileWithScore pairs a profile with a similarity score against a
// reference profile's factor vector.
type ProfileWithScore struct {
	UserProfile
	Score float64 `json:"score"`
}

// ProfileStore persists user profiles. Implementations: Postgres (pgx) and a
// local SQLite fallback. Last write wins; no cross-request locking.
type ProfileStore interface {
	Create(ctx context.Context, p *UserProfile) error
	GetBySessionID(ctx context.Context, sessionID string) (*UserProfile, error)
	List(ctx context.Context) ([]UserProfile, error)
	AppendMessage(ctx context.Context, sessionID string, m ChatMessage) error
	UpdateEvaluation(ctx context.Context, sessionID string, eval Evaluation, factors map[string]float64) error
	ClearHistory(ctx context.Context, sessionID string) error
	// FindSimilar ranks other profiles by factor-vector similarity to the
	// given session's most recent full evaluation.
	FindSimilar(ctx context.Context, sessionID string, limit int) ([]ProfileWithScore, error)
	Close()
}

// Message is the role/content pair sent to a model backend.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatClient generates a reply from an external model backend.
type ChatClient interface {
	// Chat sends the system prompt and conversation and returns the reply.
	Chat(ctx context.Context, system string, messages []Message) (string, error)
	// ListModels reports the models the backend has available. Used as a
	// reachability probe; an error means the backend is unreachable.
	ListModels(ctx context.Context) ([]string, error)
}
