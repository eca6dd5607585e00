package repository

import (
	"context"

	"homestyle-ai/internal/domain/model"
)

// HistoryCap is the most sessions kept per user; the least-recently-updated
// session is evicted first.
const HistoryCap = 50

// -----------------------------
// Chat history
// -----------------------------

// ChatHistoryRepository is the client-owned store of past consultant
// sessions. Upsert keys on session ID and refreshes the recency index.
type ChatHistoryRepository interface {
	Upsert(ctx context.Context, userID string, s *model.ChatSession) error
	// List returns sessions sorted by updated timestamp descending.
	List(ctx context.Context, userID string) ([]*model.ChatSession, error)
	Find(ctx context.Context, userID, sessionID string) (*model.ChatSession, error)
	Delete(ctx context.Context, userID, sessionID string) error
}
