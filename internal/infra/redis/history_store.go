package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"homestyle-ai/internal/domain"
	"homestyle-ai/internal/domain/model"
	"homestyle-ai/internal/domain/ports/repository"
	"homestyle-ai/internal/infra/security"
)

// Compile-time check
var _ repository.ChatHistoryRepository = (*HistoryStore)(nil)

// HistoryStore keeps each user's past consultant sessions: one JSON value
// per session plus a zset index scored by updated-timestamp. The index is
// trimmed to repository.HistoryCap on every upsert, evicting the
// least-recently-updated sessions first. Payloads are optionally encrypted
// at rest.
type HistoryStore struct {
	client *redClient
	enc    *security.EncryptionService // nil disables at-rest encryption
}

func NewHistoryStore(client *redClient, enc *security.EncryptionService) *HistoryStore {
	return &HistoryStore{client: client, enc: enc}
}

func historyIndexKey(userID string) string { return "chat_history:" + userID + ":index" }
func historySessKey(userID, id string) string {
	return "chat_history:" + userID + ":sess:" + id
}

func (h *HistoryStore) Upsert(ctx context.Context, userID string, s *model.ChatSession) error {
	if s.Empty() {
		return domain.ErrInvalidArgument
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	payload := string(data)
	if h.enc != nil {
		payload, err = h.enc.Encrypt(payload)
		if err != nil {
			return fmt.Errorf("encrypt session: %w", err)
		}
	}

	if err := h.client.cli.Set(ctx, historySessKey(userID, s.ID), payload, 0).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	idx := historyIndexKey(userID)
	if err := h.client.cli.ZAdd(ctx, idx, &redis.Z{
		Score:  float64(s.UpdatedAt.UnixMilli()),
		Member: s.ID,
	}).Err(); err != nil {
		return fmt.Errorf("index session: %w", err)
	}
	return h.trim(ctx, userID)
}

// trim evicts beyond-cap sessions, lowest updated-timestamp first.
func (h *HistoryStore) trim(ctx context.Context, userID string) error {
	idx := historyIndexKey(userID)
	card, err := h.client.cli.ZCard(ctx, idx).Result()
	if err != nil {
		return err
	}
	excess := card - int64(repository.HistoryCap)
	if excess <= 0 {
		return nil
	}
	evicted, err := h.client.cli.ZRange(ctx, idx, 0, excess-1).Result()
	if err != nil {
		return err
	}
	for _, id := range evicted {
		_ = h.client.cli.Del(ctx, historySessKey(userID, id)).Err()
	}
	return h.client.cli.ZRemRangeByRank(ctx, idx, 0, excess-1).Err()
}

func (h *HistoryStore) List(ctx context.Context, userID string) ([]*model.ChatSession, error) {
	ids, err := h.client.cli.ZRevRange(ctx, historyIndexKey(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]*model.ChatSession, 0, len(ids))
	for _, id := range ids {
		s, err := h.Find(ctx, userID, id)
		if err != nil {
			// Dangling index entries are skipped, not fatal.
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (h *HistoryStore) Find(ctx context.Context, userID, sessionID string) (*model.ChatSession, error) {
	payload, err := h.client.cli.Get(ctx, historySessKey(userID, sessionID)).Result()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if h.enc != nil {
		payload, err = h.enc.Decrypt(payload)
		if err != nil {
			return nil, fmt.Errorf("decrypt session: %w", err)
		}
	}
	var s model.ChatSession
	if err := json.Unmarshal([]byte(payload), &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &s, nil
}

func (h *HistoryStore) Delete(ctx context.Context, userID, sessionID string) error {
	if err := h.client.cli.Del(ctx, historySessKey(userID, sessionID)).Err(); err != nil {
		return err
	}
	return h.client.cli.ZRem(ctx, historyIndexKey(userID), sessionID).Err()
}
